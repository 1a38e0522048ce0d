package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		env     map[string]string
		noFile  bool
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:   "success - defaults without file",
			noFile: true,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "8080", cfg.Server.Port)
				assert.Equal(t, 300, cfg.Server.RateLimit)
				assert.Equal(t, "http://localhost:8081", cfg.Backend.URL)
				assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
				assert.Equal(t, "/login", cfg.Backend.HealthPath)
				assert.Equal(t, "USD", cfg.UI.Currency)
				assert.Equal(t, 5*time.Second, cfg.UI.BannerLifetime)
				assert.Equal(t, 30*time.Minute, cfg.Sessions.IdleTimeout)
			},
		},
		{
			name: "success - file values",
			body: "server:\n  port: \"9090\"\nbackend:\n  url: \"http://api:8081\"\n  timeout: 3s\nui:\n  currency: EUR\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "9090", cfg.Server.Port)
				assert.Equal(t, "http://api:8081", cfg.Backend.URL)
				assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
				assert.Equal(t, "EUR", cfg.UI.Currency)
				assert.Equal(t, ":9090", cfg.GetServerAddr())
			},
		},
		{
			name: "success - env overrides file",
			body: "backend:\n  url: \"http://api:8081\"\n",
			env:  map[string]string{"TASKBOARD_BACKEND_URL": "http://other:8081", "TASKBOARD_SERVER_HOST": "127.0.0.1"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://other:8081", cfg.Backend.URL)
				assert.Equal(t, "127.0.0.1:8080", cfg.GetServerAddr())
			},
		},
		{
			name:    "error - broken yaml",
			body:    "server: [\n",
			wantErr: true,
		},
		{
			name:    "error - non positive timeout",
			body:    "backend:\n  timeout: 0s\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := filepath.Join(t.TempDir(), "missing.yml")
			if !tt.noFile {
				path = writeConfig(t, tt.body)
			}

			cfg, err := Load(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Backend:  BackendConfig{URL: "http://x", Timeout: time.Second},
		UI:       UIConfig{BannerLifetime: time.Second},
		Sessions: SessionsConfig{SweepInterval: time.Second},
	}
	assert.NoError(t, cfg.Validate())

	cfg.Backend.URL = ""
	assert.Error(t, cfg.Validate())
}
