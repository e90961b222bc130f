// Package config manages environment variables.
//
// It reads variables (optionally from a `.env` file), loads them into
// structured Go types and validates that required values are present, so the
// process fails fast on bad or missing configuration.
//
// Variables are read with the prefix WEDDING_ and nested with ".":
//
//	WEDDING_SERVER.PORT=8080          -> Config.Server.Port
//	WEDDING_STORE.DRIVER=postgres     -> Config.Store.Driver
//	WEDDING_FIREBASE.PROJECT_ID=...   -> Config.Firebase.ProjectID
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env, if present,
	// before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "WEDDING_"

// Store drivers.
const (
	DriverPostgres  = "postgres"
	DriverFirestore = "firestore"
	DriverMemory    = "memory"
)

// Config is the root configuration object for the application.
//
// Database is only required with the postgres store driver; Observability is
// optional and gets defaults when absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Store         StoreConfig          `koanf:"store" validate:"required"`
	Database      *DatabaseConfig      `koanf:"database"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth"`
	Firebase      FirebaseConfig       `koanf:"firebase" validate:"required"`
	Media         MediaConfig          `koanf:"media" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Invitation    InvitationConfig     `koanf:"invitation" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RequestTimeout bounds every request, including the outstanding calls
	// to the store, identity provider and asset host.
	RequestTimeout int `koanf:"request_timeout" validate:"gte=0"`

	// BodyLimit caps request bodies, e.g. "60M". It must stay above the
	// largest media policy (audio, 50 MB).
	BodyLimit string `koanf:"body_limit"`

	// LoginRatePerMinute is the number of login attempts allowed per client IP.
	LoginRatePerMinute int `koanf:"login_rate_per_minute" validate:"gte=0"`
}

// StoreConfig selects the document store driver.
type StoreConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=postgres firestore memory"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details. Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig controls the account endpoints.
//
// AllowSignup is off by default: the admin account is normally created once
// and the public sign-up route is closed afterwards.
type AuthConfig struct {
	AllowSignup bool `koanf:"allow_signup"`
}

// FirebaseConfig holds the identity provider (and optional Firestore) settings.
//
// CredentialsFile is a service account JSON; when empty, Application Default
// Credentials are used. WebAPIKey is the public key used for password sign-in.
type FirebaseConfig struct {
	ProjectID          string `koanf:"project_id" validate:"required"`
	CredentialsFile    string `koanf:"credentials_file"`
	WebAPIKey          string `koanf:"web_api_key" validate:"required"`
	IdentityToolkitURL string `koanf:"identity_toolkit_url" validate:"omitempty,url"`
}

// MediaConfig holds the asset host (Cloudinary) credentials.
type MediaConfig struct {
	CloudName string `koanf:"cloud_name" validate:"required"`
	APIKey    string `koanf:"api_key" validate:"required"`
	APISecret string `koanf:"api_secret" validate:"required"`
	Folder    string `koanf:"folder"`
}

// IntegrationConfig holds third-party integrations that are optional.
//
// RSVP notifications are only sent when both ResendAPIKey and NotifyEmail
// are set.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
	NotifyEmail  string `koanf:"notify_email" validate:"omitempty,email"`
}

// InvitationConfig describes the public invitation site.
//
// BaseURL is used to build each guest's personal referral link.
type InvitationConfig struct {
	BaseURL string `koanf:"base_url" validate:"required,url"`
}

// RSVPNotificationsEnabled reports whether new RSVPs are e-mailed to the couple.
func (c *Config) RSVPNotificationsEnabled() bool {
	return c.Integration.ResendAPIKey != "" && c.Integration.NotifyEmail != ""
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, applies defaults and validates the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load initial env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.applyDefaults()

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// Validate runs the struct-tag rules and the cross-field rules the tags
// cannot express.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.Store.Driver == DriverPostgres {
		if c.Database == nil {
			return fmt.Errorf("config validation failed: database block is required with the %s store driver", DriverPostgres)
		}
	}

	if c.Observability == nil {
		return fmt.Errorf("config validation failed: observability defaults were not applied")
	}

	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = 15
	}
	if c.Server.BodyLimit == "" {
		c.Server.BodyLimit = "60M"
	}
	if c.Server.LoginRatePerMinute == 0 {
		c.Server.LoginRatePerMinute = 10
	}
	if c.Firebase.IdentityToolkitURL == "" {
		c.Firebase.IdentityToolkitURL = "https://identitytoolkit.googleapis.com/v1"
	}
	if c.Media.Folder == "" {
		c.Media.Folder = "wedding"
	}
	if c.Integration.EmailFrom == "" {
		c.Integration.EmailFrom = "Wedding <onboarding@resend.dev>"
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config so
	// logs and traces are tagged consistently.
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env
}

// hostname is used in the New Relic host display name.
func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
