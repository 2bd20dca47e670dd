package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultWidgetURL is the hosted chat widget embedded on the chat page.
const DefaultWidgetURL = "https://cdn.botpress.cloud/webchat/v2.2/shareable.html?configUrl=https://files.bpcontent.cloud/2025/03/07/08/20250307081302-GJG1SPAF.json"

// Chat modes.
const (
	ChatWidget  = "widget"
	ChatKeyword = "keyword"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig
	Mongo   MongoConfig
	Session SessionConfig
	Log     LogConfig
	Chat    ChatConfig
	Actions ActionsConfig
}

type AppConfig struct {
	Name string
	Port string
}

// MongoConfig selects the optional MongoDB backend. An empty URI keeps
// everything in memory and serves the embedded datasets.
type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

type ChatConfig struct {
	Mode      string // widget, keyword
	WidgetURL string
}

// ActionsConfig tunes the simulated form submissions.
type ActionsConfig struct {
	Delay       time.Duration
	SignUpDelay time.Duration
}

// Load reads configuration.
// Priority (highest to lowest):
// 1. Environment variables with OPENGOV_ prefix (e.g., OPENGOV_MONGO_URI)
// 2. config.yaml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/opengov")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("OPENGOV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed names kept for existing deployments.
	_ = v.BindEnv("app.port", "OPENGOV_APP_PORT", "PORT")
	_ = v.BindEnv("mongo.uri", "OPENGOV_MONGO_URI", "MONGODB_URI")

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Port: v.GetString("app.port"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("mongo.uri"),
			Database: v.GetString("mongo.database"),
			Timeout:  v.GetDuration("mongo.timeout"),
		},
		Session: SessionConfig{
			Secret:     v.GetString("session.secret"),
			CookieName: v.GetString("session.cookie_name"),
			TTL:        v.GetDuration("session.ttl"),
			Secure:     v.GetBool("session.secure"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Chat: ChatConfig{
			Mode:      v.GetString("chat.mode"),
			WidgetURL: v.GetString("chat.widget_url"),
		},
		Actions: ActionsConfig{
			Delay:       v.GetDuration("actions.delay"),
			SignUpDelay: v.GetDuration("actions.signup_delay"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "opengov"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "7521"
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "opengov"
	}
	if cfg.Mongo.Timeout == 0 {
		cfg.Mongo.Timeout = 10 * time.Second
	}
	if cfg.Session.Secret == "" {
		cfg.Session.Secret = "opengov-development-secret"
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "user"
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = 30 * 24 * time.Hour
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Chat.Mode == "" {
		cfg.Chat.Mode = ChatWidget
	}
	if cfg.Chat.WidgetURL == "" {
		cfg.Chat.WidgetURL = DefaultWidgetURL
	}
	if cfg.Actions.Delay == 0 {
		cfg.Actions.Delay = time.Second
	}
	if cfg.Actions.SignUpDelay == 0 {
		cfg.Actions.SignUpDelay = time.Second
	}
}

func (c *Config) validate() error {
	switch c.Chat.Mode {
	case ChatWidget, ChatKeyword:
	default:
		return fmt.Errorf("invalid chat.mode %q: must be %q or %q", c.Chat.Mode, ChatWidget, ChatKeyword)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q: must be text or json", c.Log.Format)
	}
	if c.Actions.Delay < 0 || c.Actions.SignUpDelay < 0 {
		return fmt.Errorf("action delays must not be negative")
	}
	return nil
}

// UseMongo reports whether a MongoDB backend is configured.
func (c *Config) UseMongo() bool {
	return c.Mongo.URI != ""
}
