package testutil

import (
	"testing"

	"github.com/deppfellow/wedding-backend/internal/config"
	"github.com/deppfellow/wedding-backend/internal/repository"
	"github.com/deppfellow/wedding-backend/internal/server"
	"github.com/rs/zerolog"
)

// TestConfig is a valid configuration using the memory store.
func TestConfig() *config.Config {
	obs := config.DefaultObservabilityConfig()
	obs.Environment = "test"
	obs.HealthChecks.Checks = []string{"store"}

	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"http://localhost:5173"},
			RequestTimeout:     15,
			BodyLimit:          "60M",
			LoginRatePerMinute: 10,
		},
		Store:         config.StoreConfig{Driver: config.DriverMemory},
		Auth:          config.AuthConfig{AllowSignup: true},
		Firebase:      config.FirebaseConfig{ProjectID: "wedding-test", WebAPIKey: "key"},
		Media:         config.MediaConfig{CloudName: "demo", APIKey: "k", APISecret: "s", Folder: "wedding"},
		Invitation:    config.InvitationConfig{BaseURL: "https://wedding.example.com/"},
		Observability: obs,
	}
}

// TestServer bundles a Server with the fakes behind it.
type TestServer struct {
	*server.Server
	Auth   *FakeIdentity
	Assets *FakeMediaHost
	Docs   *repository.MemoryStore
}

// NewTestServer returns a Server wired to in-memory fakes. No redis, no
// job queue.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	logger := zerolog.Nop()
	fakeIdentity := NewFakeIdentity()
	fakeMedia := NewFakeMediaHost()
	store := repository.NewMemoryStore()

	return &TestServer{
		Server: &server.Server{
			Config:   TestConfig(),
			Logger:   &logger,
			Store:    store,
			Media:    fakeMedia,
			Identity: fakeIdentity,
		},
		Auth:   fakeIdentity,
		Assets: fakeMedia,
		Docs:   store,
	}
}
