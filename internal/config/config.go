// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Backend  BackendConfig  `mapstructure:"backend"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	UI       UIConfig       `mapstructure:"ui"`
	Sessions SessionsConfig `mapstructure:"sessions"`
}

type ServerConfig struct {
	Port      string `mapstructure:"port"`
	Host      string `mapstructure:"host"`
	RateLimit int    `mapstructure:"rate_limit"` // запросов в минуту с одного IP
}

type BackendConfig struct {
	URL          string        `mapstructure:"url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
	HealthPath   string        `mapstructure:"health_path"`
}

type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

type UIConfig struct {
	MessagesFile   string        `mapstructure:"messages_file"`
	Currency       string        `mapstructure:"currency"`
	BannerLifetime time.Duration `mapstructure:"banner_lifetime"`
}

type SessionsConfig struct {
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.rate_limit", 300)
	v.SetDefault("backend.url", "http://localhost:8081")
	v.SetDefault("backend.timeout", 10*time.Second)
	v.SetDefault("backend.probe_timeout", 30*time.Second)
	v.SetDefault("backend.health_path", "/login")
	v.SetDefault("logging.development", false)
	v.SetDefault("ui.messages_file", "")
	v.SetDefault("ui.currency", "USD")
	v.SetDefault("ui.banner_lifetime", 5*time.Second)
	v.SetDefault("sessions.idle_timeout", 30*time.Minute)
	v.SetDefault("sessions.sweep_interval", time.Second)
}

// Load читает config.yml (если он есть) и переменные окружения TASKBOARD_*.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TASKBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("ошибка чтения %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return errors.New("backend.url не может быть пустым")
	}
	if c.Backend.Timeout <= 0 {
		return errors.New("backend.timeout должен быть положительным")
	}
	if c.Sessions.SweepInterval <= 0 {
		return errors.New("sessions.sweep_interval должен быть положительным")
	}
	if c.UI.BannerLifetime <= 0 {
		return errors.New("ui.banner_lifetime должен быть положительным")
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
