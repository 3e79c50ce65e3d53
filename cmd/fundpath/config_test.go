package main

import (
	"testing"

	"fundpath/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLeadBackend(t *testing.T) {
	tests := []struct {
		name    string
		config  types.Config
		wantErr bool
	}{
		{name: "postgres with url", config: types.Config{LeadBackend: backendPostgres, DatabaseURL: "postgres://localhost/fundpath"}},
		{name: "postgres without url", config: types.Config{LeadBackend: backendPostgres}, wantErr: true},
		{name: "supabase", config: types.Config{LeadBackend: backendSupabase, SupabaseURL: "https://x.supabase.co", SupabaseServiceKey: "k"}},
		{name: "supabase without key", config: types.Config{LeadBackend: backendSupabase, SupabaseURL: "https://x.supabase.co"}, wantErr: true},
		{name: "memory", config: types.Config{LeadBackend: backendMemory}},
		{name: "unknown", config: types.Config{LeadBackend: "mysql"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLeadBackend(&tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateRelay(t *testing.T) {
	assert.Error(t, validateRelay(&types.Config{SpreadsheetID: "sheet"}))
	assert.Error(t, validateRelay(&types.Config{GoogleServiceAccountJSON: "{}"}))
	assert.NoError(t, validateRelay(&types.Config{GoogleServiceAccountJSON: "{}", SpreadsheetID: "sheet"}))
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("LEAD_BACKEND", "memory")

	c, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, uint(8080), c.ServerPort)
	assert.Equal(t, uint(8081), c.RelayPort)
	assert.Equal(t, "Leads!A:L", c.SheetRange)
	assert.Equal(t, "America/New_York", c.RelayTimeZone)
	assert.Equal(t, 3600, c.SessionMaxAgeSec)
}
