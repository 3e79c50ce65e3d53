package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"fundpath/internal/metrics"

	"github.com/sirupsen/logrus"
)

type Code string

const (
	CodeInvalidPayload Code = "invalid_payload"
	CodeAuthFailed     Code = "auth_failed"
	CodeAppendFailed   Code = "append_failed"
)

// Error is a terminal relay failure. Code says which stage failed.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Event is the payload a database webhook posts on row changes.
type Event struct {
	Type   string          `json:"type"`
	Table  string          `json:"table"`
	Schema string          `json:"schema"`
	Record json.RawMessage `json:"record"`
}

type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

type Appender interface {
	Append(ctx context.Context, accessToken string, row []string) error
}

// Relay copies lead records into the spreadsheet. It holds no per-call
// state, so one value serves concurrent invocations.
type Relay struct {
	table    string
	tokens   TokenProvider
	sheets   Appender
	location *time.Location
	logger   *logrus.Logger
	now      func() time.Time
}

// DefaultTable is the table whose INSERT events are relayed.
const DefaultTable = "leads"

type Option func(*Relay)

// WithTable relays events for table instead of DefaultTable.
func WithTable(table string) Option {
	return func(r *Relay) {
		if table != "" {
			r.table = table
		}
	}
}

func New(tokens TokenProvider, sheets Appender, location *time.Location, logger *logrus.Logger, opts ...Option) *Relay {
	if location == nil {
		location = time.UTC
	}

	r := &Relay{
		table:    DefaultTable,
		tokens:   tokens,
		sheets:   sheets,
		location: location,
		logger:   logger,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// HandleEvent relays INSERT events on the relay's table. Other events are
// acknowledged and skipped; skipped reports whether that happened.
func (r *Relay) HandleEvent(ctx context.Context, event Event) (skipped bool, err error) {

	if !strings.EqualFold(event.Type, "INSERT") || (event.Table != "" && event.Table != r.table) {
		r.logger.WithFields(logrus.Fields{
			"type":  event.Type,
			"table": event.Table,
		}).Info("skipping webhook event")
		metrics.RecordRelay("skipped")
		return true, nil
	}

	if len(event.Record) == 0 || string(event.Record) == "null" {
		err := &Error{Code: CodeInvalidPayload, Err: errors.New("event has no record")}
		metrics.RecordRelay(string(err.Code))
		return false, err
	}

	var record Record
	if err := json.Unmarshal(event.Record, &record); err != nil {
		err := &Error{Code: CodeInvalidPayload, Err: fmt.Errorf("failed to decode record: %w", err)}
		metrics.RecordRelay(string(err.Code))
		return false, err
	}

	return false, r.Relay(ctx, record)
}

// Relay performs one token exchange and one append for record.
func (r *Relay) Relay(ctx context.Context, record Record) error {

	entry := r.logger.WithField("lead_id", record.ID)

	token, err := r.tokens.Token(ctx)
	if err != nil {
		entry.WithError(err).Error("failed to obtain sheets access token")
		metrics.RecordRelay(string(CodeAuthFailed))
		return &Error{Code: CodeAuthFailed, Err: err}
	}

	row := FormatRow(record, r.location, r.now())

	err = r.sheets.Append(ctx, token, row)
	if err != nil {
		entry.WithError(err).Error("failed to append lead to sheet")
		metrics.RecordRelay(string(CodeAppendFailed))
		return &Error{Code: CodeAppendFailed, Err: err}
	}

	entry.Info("lead appended to sheet")
	metrics.RecordRelay("appended")

	return nil
}

// Row returns the values Relay would append for record without sending them.
func (r *Relay) Row(record Record) []string {
	return FormatRow(record, r.location, r.now())
}
