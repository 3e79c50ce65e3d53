package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"fundpath/internal/db"
	"fundpath/internal/leads"
	"fundpath/internal/relay"
	"fundpath/internal/storage"
	"fundpath/internal/store"
	"fundpath/pkg/types"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	backendPostgres = "postgres"
	backendSupabase = "supabase"
	backendMemory   = "memory"
)

func loadConfig() (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	return c, nil
}

// validateLeadBackend checks the settings of the selected lead backend.
func validateLeadBackend(c *types.Config) error {
	switch c.LeadBackend {
	case backendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("set DATABASE_URL")
		}
	case backendSupabase:
		if c.SupabaseURL == "" || c.SupabaseServiceKey == "" {
			return fmt.Errorf("set SUPABASE_URL and SUPABASE_SERVICE_KEY")
		}
	case backendMemory:
	default:
		return fmt.Errorf("unknown LEAD_BACKEND %q, expected postgres, supabase or memory", c.LeadBackend)
	}

	return nil
}

func validateRelay(c *types.Config) error {
	if c.GoogleServiceAccountJSON == "" {
		return fmt.Errorf("set GOOGLE_SERVICE_ACCOUNT_JSON")
	}

	if c.SpreadsheetID == "" {
		return fmt.Errorf("set SPREADSHEET_ID")
	}

	return nil
}

func newLogger(c *types.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logger.WithError(err).Warn("invalid LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

// newHTTPClient builds the client for outbound calls. A zero
// HTTP_TIMEOUT_SEC leaves timeouts to the transport.
func newHTTPClient(c *types.Config) *http.Client {
	return &http.Client{Timeout: time.Duration(c.HTTPTimeoutSec) * time.Second}
}

// newBackend connects the configured lead backend. The returned func
// releases its resources.
func newBackend(ctx context.Context, c *types.Config) (leads.Backend, func(), error) {
	if err := validateLeadBackend(c); err != nil {
		return nil, nil, err
	}

	switch c.LeadBackend {
	case backendSupabase:
		return storage.NewSupabaseTable(c.SupabaseURL, c.SupabaseServiceKey, c.SupabaseTable, newHTTPClient(c)), func() {}, nil
	case backendMemory:
		return leads.NewMemoryBackend(), func() {}, nil
	}

	pool, err := db.Connect(ctx, c)
	if err != nil {
		return nil, nil, err
	}

	return store.NewLeadRepository(pool), pool.Close, nil
}

// newRelay builds the spreadsheet relay from the service account settings.
func newRelay(c *types.Config, logger *logrus.Logger) (*relay.Relay, error) {
	if err := validateRelay(c); err != nil {
		return nil, err
	}

	account, err := relay.ParseServiceAccount([]byte(c.GoogleServiceAccountJSON))
	if err != nil {
		return nil, err
	}

	httpClient := newHTTPClient(c)

	tokens, err := relay.NewTokenSource(account, httpClient)
	if err != nil {
		return nil, err
	}

	location, err := time.LoadLocation(c.RelayTimeZone)
	if err != nil {
		return nil, fmt.Errorf("load RELAY_TIME_ZONE %q: %w", c.RelayTimeZone, err)
	}

	sheets := relay.NewSheetsClient(c.SheetsBaseURL, c.SpreadsheetID, c.SheetRange, httpClient)

	return relay.New(tokens, sheets, location, logger, relay.WithTable(c.SupabaseTable)), nil
}
