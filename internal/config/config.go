package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"

	"github.com/pgspaces/pgspaces/internal/domain"
)

type Config struct {
	App      AppConfig         `mapstructure:"app"`
	Database DatabaseConfig    `mapstructure:"database"`
	Store    ObjectStoreConfig `mapstructure:"store"`
	Backup   BackupConfig      `mapstructure:"backup"`
	Telegram TelegramConfig    `mapstructure:"telegram"`
}

type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSL      bool   `mapstructure:"ssl"`
}

// SSLMode maps the boolean TLS switch onto libpq sslmode values:
// plain connections when off, relaxed-verification TLS when on.
func (d *DatabaseConfig) SSLMode() string {
	if d.SSL {
		return "require"
	}
	return "disable"
}

// DSN builds a connection string suitable for pgx.Connect.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(d.User),
		url.QueryEscape(d.Password),
		d.Host,
		d.Port,
		url.PathEscape(d.Name),
		d.SSLMode(),
	)
}

type ObjectStoreConfig struct {
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	Prefix    string `mapstructure:"prefix"`
}

type BackupConfig struct {
	Compress      bool `mapstructure:"compress"`
	RetentionDays int  `mapstructure:"retention_days"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

func (t *TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// Load reads configuration from PGSPACES_* environment variables,
// applies defaults, and validates required values.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PGSPACES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_file", "")

	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl", false)

	v.SetDefault("store.access_key", "")
	v.SetDefault("store.secret_key", "")
	v.SetDefault("store.bucket", "")
	v.SetDefault("store.endpoint", "nyc3.digitaloceanspaces.com")
	v.SetDefault("store.region", "nyc3")
	v.SetDefault("store.prefix", "postgres-backups")

	v.SetDefault("backup.compress", false)
	v.SetDefault("backup.retention_days", 7)

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"database.host", c.Database.Host},
		{"database.name", c.Database.Name},
		{"database.user", c.Database.User},
		{"database.password", c.Database.Password},
		{"store.access_key", c.Store.AccessKey},
		{"store.secret_key", c.Store.SecretKey},
		{"store.bucket", c.Store.Bucket},
	}

	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrConfigInvalid, r.key)
		}
	}

	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("%w: database.port must be between 1 and 65535", domain.ErrConfigInvalid)
	}

	if c.Backup.RetentionDays <= 0 {
		return fmt.Errorf("%w: backup.retention_days must be positive", domain.ErrConfigInvalid)
	}

	return nil
}
