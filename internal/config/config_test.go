package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()

	vars := map[string]string{
		"WEDDING_PRIMARY.ENV":                 "development",
		"WEDDING_SERVER.PORT":                 "8080",
		"WEDDING_SERVER.READ_TIMEOUT":         "30",
		"WEDDING_SERVER.WRITE_TIMEOUT":        "30",
		"WEDDING_SERVER.IDLE_TIMEOUT":         "60",
		"WEDDING_SERVER.CORS_ALLOWED_ORIGINS": "http://127.0.0.1:5500",
		"WEDDING_STORE.DRIVER":                "memory",
		"WEDDING_REDIS.ADDRESS":               "localhost:6379",
		"WEDDING_FIREBASE.PROJECT_ID":         "web-undangan",
		"WEDDING_FIREBASE.WEB_API_KEY":        "web-key",
		"WEDDING_MEDIA.CLOUD_NAME":            "cloud",
		"WEDDING_MEDIA.API_KEY":               "key",
		"WEDDING_MEDIA.API_SECRET":            "secret",
		"WEDDING_INVITATION.BASE_URL":         "https://undangan.example.com",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://127.0.0.1:5500"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, 15, cfg.Server.RequestTimeout)
	assert.Equal(t, "60M", cfg.Server.BodyLimit)
	assert.Equal(t, "https://identitytoolkit.googleapis.com/v1", cfg.Firebase.IdentityToolkitURL)
	assert.False(t, cfg.Auth.AllowSignup)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Equal(t, 5*time.Second, cfg.Observability.HealthChecks.Timeout)
}

func TestLoadConfig_PostgresNeedsDatabase(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("WEDDING_STORE.DRIVER", "postgres")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database block is required")
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("WEDDING_STORE.DRIVER", "mysql")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Driver")
}

func TestLoadConfig_MissingInvitationBaseURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("WEDDING_INVITATION.BASE_URL", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BaseURL")
}

func TestRSVPNotificationsEnabled(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.RSVPNotificationsEnabled())

	cfg.Integration.ResendAPIKey = "re_123"
	assert.False(t, cfg.RSVPNotificationsEnabled())

	cfg.Integration.NotifyEmail = "couple@example.com"
	assert.True(t, cfg.RSVPNotificationsEnabled())
}

func TestObservabilityConfig_Validate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.ErrorContains(t, cfg.Validate(), "invalid logging level")

	cfg = DefaultObservabilityConfig()
	cfg.HealthChecks.Checks = []string{"database"}
	assert.ErrorContains(t, cfg.Validate(), "unknown health check")
}

func TestObservabilityConfig_HasCheck(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.True(t, cfg.HasCheck("store"))
	assert.True(t, cfg.HasCheck("redis"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.HasCheck("store"))
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""
	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())
}
