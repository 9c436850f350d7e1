package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Provider exposes read-only access to the application configuration.
// Components depend on this interface rather than on the concrete Config so
// tests can hand in small fakes.
type Provider interface {
	GetDBURL() string
	GetDBNs() string
	GetDBDb() string
	GetDBUser() string
	GetDBPass() string
	GetDBQueryTimeout() time.Duration
	GetDBExecuteTimeout() time.Duration

	GetServerAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetSessionMaxAge() int

	GetGoogleClientID() string
	GetGoogleClientSecret() string
	GetGoogleRedirectURL() string
	GetOAuthBridgeSecret() string
	GetAuthRateLimit() int

	GetEmailProvider() string
	GetEmailAPIKey() string
	GetEmailSender() string

	GetConfirmationDelay() time.Duration
	GetWorkspaceIdleTTL() time.Duration
	GetCatalogDir() string

	GetLogFormat() string
	GetLogLevel() string
}

// Config holds all configuration for the application.
type Config struct {
	DBUrl            string        `toml:"surreal_url"`
	DBNs             string        `toml:"surreal_ns"`
	DBDb             string        `toml:"surreal_db"`
	DBUser           string        `toml:"surreal_user"`
	DBPass           string        `toml:"surreal_pass"`
	DBQueryTimeout   time.Duration `toml:"db_query_timeout"`
	DBExecuteTimeout time.Duration `toml:"db_execute_timeout"`

	ServerAddr    string `toml:"server_addr"`
	AppBaseURL    string `toml:"app_base_url"`
	SessionSecret string `toml:"session_secret"`
	SessionMaxAge int    `toml:"session_max_age"`

	GoogleClientID     string `toml:"google_client_id"`
	GoogleClientSecret string `toml:"google_client_secret"`
	GoogleRedirectURL  string `toml:"google_redirect_url"`
	OAuthBridgeSecret  string `toml:"oauth_bridge_secret"`
	AuthRateLimit      int    `toml:"auth_rate_limit"`

	EmailProvider string `toml:"email_provider"`
	EmailAPIKey   string `toml:"email_api_key"`
	EmailSender   string `toml:"email_sender"`

	ConfirmationDelay time.Duration `toml:"confirmation_delay"`
	WorkspaceIdleTTL  time.Duration `toml:"workspace_idle_ttl"`
	CatalogDir        string        `toml:"catalog_dir"`

	LogFormat string `toml:"log_format"`
	LogLevel  string `toml:"log_level"`
}

// Defaults returns a Config populated with development defaults.
func Defaults() *Config {
	return &Config{
		DBQueryTimeout:    5 * time.Second,
		DBExecuteTimeout:  10 * time.Second,
		ServerAddr:        ":8080",
		AppBaseURL:        "http://localhost:8080",
		SessionMaxAge:     86400 * 7,
		AuthRateLimit:     10,
		EmailProvider:     "log",
		EmailSender:       "ZippyTrip <bookings@zippytrip.local>",
		ConfirmationDelay: 3 * time.Second,
		WorkspaceIdleTTL:  30 * time.Minute,
		LogFormat:         "text",
		LogLevel:          "debug",
	}
}

// New loads configuration from (in increasing precedence) built-in defaults,
// the TOML file named by ZIPPY_CONFIG, a .env file and the process environment.
// It exits the process when required database settings are missing.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := Load(os.Getenv("ZIPPY_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.DBUrl == "" || cfg.DBNs == "" || cfg.DBDb == "" {
		log.Fatal("Required environment variables SURREAL_URL, SURREAL_NS, or SURREAL_DB are not set.")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("Required environment variable SESSION_SECRET is not set.")
	}
	if cfg.OAuthBridgeSecret == "" {
		log.Fatal("Required environment variable OAUTH_BRIDGE_SECRET is not set.")
	}

	return cfg
}

// Load builds a Config from defaults, an optional TOML file and the environment.
// Unlike New it never exits and performs no required-field checks.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.DBUrl, "SURREAL_URL")
	setString(&c.DBNs, "SURREAL_NS")
	setString(&c.DBDb, "SURREAL_DB")
	setString(&c.DBUser, "SURREAL_USER")
	setString(&c.DBPass, "SURREAL_PASS")
	setString(&c.ServerAddr, "SERVER_ADDR")
	setString(&c.AppBaseURL, "APP_BASE_URL")
	setString(&c.SessionSecret, "SESSION_SECRET")
	setString(&c.GoogleClientID, "GOOGLE_CLIENT_ID")
	setString(&c.GoogleClientSecret, "GOOGLE_CLIENT_SECRET")
	setString(&c.GoogleRedirectURL, "GOOGLE_REDIRECT_URL")
	setString(&c.OAuthBridgeSecret, "OAUTH_BRIDGE_SECRET")
	setString(&c.EmailProvider, "EMAIL_PROVIDER")
	setString(&c.EmailAPIKey, "EMAIL_API_KEY")
	setString(&c.EmailSender, "EMAIL_SENDER")
	setString(&c.CatalogDir, "CATALOG_DIR")
	setString(&c.LogFormat, "LOG_FORMAT")
	setString(&c.LogLevel, "LOG_LEVEL")

	durations := map[string]*time.Duration{
		"DB_QUERY_TIMEOUT":   &c.DBQueryTimeout,
		"DB_EXECUTE_TIMEOUT": &c.DBExecuteTimeout,
		"CONFIRMATION_DELAY": &c.ConfirmationDelay,
		"WORKSPACE_IDLE_TTL": &c.WorkspaceIdleTTL,
	}
	for key, dst := range durations {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s must be a duration: %w", key, err)
			}
			*dst = d
		}
	}

	ints := map[string]*int{
		"SESSION_MAX_AGE": &c.SessionMaxAge,
		"AUTH_RATE_LIMIT": &c.AuthRateLimit,
	}
	for key, dst := range ints {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s must be an integer: %w", key, err)
			}
			*dst = n
		}
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func (c *Config) GetDBURL() string                   { return c.DBUrl }
func (c *Config) GetDBNs() string                    { return c.DBNs }
func (c *Config) GetDBDb() string                    { return c.DBDb }
func (c *Config) GetDBUser() string                  { return c.DBUser }
func (c *Config) GetDBPass() string                  { return c.DBPass }
func (c *Config) GetDBQueryTimeout() time.Duration   { return c.DBQueryTimeout }
func (c *Config) GetDBExecuteTimeout() time.Duration { return c.DBExecuteTimeout }
func (c *Config) GetServerAddr() string              { return c.ServerAddr }
func (c *Config) GetAppBaseURL() string              { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string           { return c.SessionSecret }
func (c *Config) GetSessionMaxAge() int              { return c.SessionMaxAge }
func (c *Config) GetGoogleClientID() string          { return c.GoogleClientID }
func (c *Config) GetGoogleClientSecret() string      { return c.GoogleClientSecret }
func (c *Config) GetGoogleRedirectURL() string       { return c.GoogleRedirectURL }
func (c *Config) GetOAuthBridgeSecret() string       { return c.OAuthBridgeSecret }
func (c *Config) GetAuthRateLimit() int              { return c.AuthRateLimit }
func (c *Config) GetEmailProvider() string           { return c.EmailProvider }
func (c *Config) GetEmailAPIKey() string             { return c.EmailAPIKey }
func (c *Config) GetEmailSender() string             { return c.EmailSender }
func (c *Config) GetConfirmationDelay() time.Duration {
	return c.ConfirmationDelay
}
func (c *Config) GetWorkspaceIdleTTL() time.Duration { return c.WorkspaceIdleTTL }
func (c *Config) GetCatalogDir() string              { return c.CatalogDir }
func (c *Config) GetLogFormat() string               { return c.LogFormat }
func (c *Config) GetLogLevel() string                { return c.LogLevel }
