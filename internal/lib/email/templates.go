package email

import (
	"embed"
	"text/template"
)

// Template names a plain-text body template under templates/.
type Template string

const (
	TemplateContact Template = "contact"
)

//go:embed templates/*.txt
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.txt"))
