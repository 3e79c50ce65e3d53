package main

import (
	"context"
	"fmt"

	"fundpath/internal/leads"
	"fundpath/internal/seed"

	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Insert demo leads through the submission client",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger := newLogger(cfg)
		ctx := context.Background()

		backend, closeBackend, err := newBackend(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect lead backend: %w", err)
		}
		defer closeBackend()

		logger.WithField("backend", cfg.LeadBackend).Info("Connected to lead backend")

		ids, err := seed.SeedLeads(ctx, logger, leads.NewClient(backend, logger))
		if err != nil {
			return fmt.Errorf("failed to seed leads: %w", err)
		}

		logger.WithField("count", len(ids)).Info("Leads seeded successfully")

		return nil
	},
}
