package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "fundpath",
		Usage: "Lead capture site and spreadsheet relay",
		Commands: []*cli.Command{
			serveCommand,
			relayCommand,
			replayCommand,
			seedCommand,
			migrateCommand,
			keysCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
