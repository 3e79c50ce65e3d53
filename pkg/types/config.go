package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	RelayPort       uint   `envconfig:"RELAY_PORT" default:"8081"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`
	HTTPTimeoutSec  uint   `envconfig:"HTTP_TIMEOUT_SEC" default:"0"` // 0 leaves outbound calls to the transport
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`

	// Lead storage: "postgres" talks to DATABASE_URL directly,
	// "supabase" goes through the hosted REST API.
	LeadBackend string `envconfig:"LEAD_BACKEND" default:"postgres"`
	DatabaseURL string `envconfig:"DATABASE_URL"`

	SupabaseURL        string `envconfig:"SUPABASE_URL"`
	SupabaseServiceKey string `envconfig:"SUPABASE_SERVICE_KEY"`
	SupabaseTable      string `envconfig:"SUPABASE_TABLE" default:"leads"`

	// Form sessions
	CookieName       string `envconfig:"SESSION_COOKIE_NAME" default:"fp_session"`
	SessionMaxAgeSec int    `envconfig:"SESSION_MAX_AGE_SEC" default:"3600"`

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes

	// Spreadsheet relay
	GoogleServiceAccountJSON string `envconfig:"GOOGLE_SERVICE_ACCOUNT_JSON"`
	SpreadsheetID            string `envconfig:"SPREADSHEET_ID"`
	SheetRange               string `envconfig:"SHEET_RANGE" default:"Leads!A:L"`
	SheetsBaseURL            string `envconfig:"SHEETS_BASE_URL" default:"https://sheets.googleapis.com"`
	RelayTimeZone            string `envconfig:"RELAY_TIME_ZONE" default:"America/New_York"`
	WebhookSecret            string `envconfig:"WEBHOOK_SECRET"`
}
