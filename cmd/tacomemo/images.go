package main

import (
	"context"
	"fmt"

	"github.com/deppfellow/tacomemo/internal/config"
	"github.com/deppfellow/tacomemo/internal/database"
	"github.com/deppfellow/tacomemo/internal/lib/utils"
	"github.com/deppfellow/tacomemo/internal/logger"
	"github.com/deppfellow/tacomemo/internal/repository"
	"github.com/urfave/cli/v3"
)

func imagesCmd() *cli.Command {
	return &cli.Command{
		Name:  "images",
		Usage: "Inspect carousel images",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List carousel image records",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print records as JSON",
					},
				},
				Action: listImages,
			},
		},
	}
}

func listImages(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log := logger.NewLogger(cfg.Observability)

	db, err := database.New(cfg, &log)
	if err != nil {
		return err
	}
	defer db.Close()

	images, err := repository.NewCarouselRepository(db).ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list carousel images: %w", err)
	}

	if cmd.Bool("json") {
		return utils.PrintJSON(cmd.Root().Writer, images)
	}

	for _, img := range images {
		fmt.Fprintf(cmd.Root().Writer, "%d\t%s\n", img.ID, img.ImagePath)
	}

	return nil
}
