package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fundpath/internal/funnel"
	"fundpath/internal/leads"
	"fundpath/internal/server"

	"github.com/urfave/cli/v2"
)

const sessionSweepInterval = time.Minute

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the site HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(config)

	backend, closeBackend, err := newBackend(ctx, config)
	if err != nil {
		return err
	}
	defer closeBackend()

	sessions := funnel.NewSessions(time.Duration(config.SessionMaxAgeSec) * time.Second)
	go sessions.Run(ctx, sessionSweepInterval)

	srv, err := server.New(
		config,
		logger,
		leads.NewClient(backend, logger),
		sessions,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
