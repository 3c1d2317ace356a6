package main

import (
	"context"
	"fmt"

	"github.com/deppfellow/tacomemo/internal/lib/email"
	"github.com/urfave/cli/v3"
)

func emailCmd() *cli.Command {
	return &cli.Command{
		Name:  "email",
		Usage: "Email template tools",
		Commands: []*cli.Command{
			{
				Name:      "preview",
				Usage:     "Render a template with sample data",
				ArgsUsage: "<template>",
				Action:    previewEmail,
			},
		},
	}
}

func previewEmail(_ context.Context, cmd *cli.Command) error {
	name := email.Template(cmd.Args().First())
	if name == "" {
		name = email.TemplateContact
	}

	data, ok := email.PreviewData[name]
	if !ok {
		return fmt.Errorf("no preview data for template %q", name)
	}

	body, err := email.Render(name, data)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.Root().Writer, body)
	return err
}
