package email

// PreviewData holds sample data for every template, used by the
// "tacomemo email preview" command.
var PreviewData = map[Template]any{
	TemplateContact: ContactMessage{
		Name:    "Sofía Hernández",
		Email:   "sofia@example.com",
		Subject: "Réservation pour samedi",
		Message: "Bonjour,\nest-il possible de réserver une table pour six personnes ?",
	},
}
