package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fundpath/internal/relay"

	"github.com/urfave/cli/v2"
)

var relayCommand = &cli.Command{
	Name:   "relay",
	Usage:  "Start the webhook relay that appends new leads to the spreadsheet",
	Action: serveRelay,
}

func serveRelay(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(config)

	r, err := newRelay(config, logger)
	if err != nil {
		return err
	}

	if config.WebhookSecret == "" {
		logger.Warn("WEBHOOK_SECRET not set, the webhook endpoint accepts unauthenticated calls")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.RelayPort),
		Handler:           relay.NewHandler(r, config.WebhookSecret, logger).Routes(),
		ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.WithField("port", config.RelayPort).Infof("relay starting http://localhost:%d", config.RelayPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("relay failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
