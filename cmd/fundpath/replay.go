package main

import (
	"context"
	"fmt"
	"time"

	"fundpath/internal/leads"
	"fundpath/internal/relay"

	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"
)

var replayCommand = &cli.Command{
	Name:  "replay",
	Usage: "Append one stored lead to the spreadsheet, e.g. after a failed webhook",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "lead-id",
			Aliases:  []string{"l"},
			Usage:    "ID of the lead to relay",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Print the row instead of appending it",
		},
	},
	Action: replay,
}

func replay(c *cli.Context) error {
	config, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(config)
	ctx := context.Background()

	backend, closeBackend, err := newBackend(ctx, config)
	if err != nil {
		return err
	}
	defer closeBackend()

	lead, err := leads.NewClient(backend, logger).Lead(ctx, c.String("lead-id"))
	if err != nil {
		return err
	}

	record := relay.RecordFromLead(lead)

	if c.Bool("dry-run") {
		location, err := time.LoadLocation(config.RelayTimeZone)
		if err != nil {
			return fmt.Errorf("load RELAY_TIME_ZONE %q: %w", config.RelayTimeZone, err)
		}

		row := relay.FormatRow(record, location, lead.CreatedAt)
		columns := make(map[string]string, len(row))
		for i, value := range row {
			columns[relay.SheetHeader[i]] = value
		}
		_, err = pp.Println(columns)
		return err
	}

	r, err := newRelay(config, logger)
	if err != nil {
		return err
	}

	return r.Relay(ctx, record)
}
