package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/smartbank/smartbank/internal/nav"
)

// Config holds application configuration.
type Config struct {
	Auth     AuthConfig
	Database DatabaseConfig
	Log      LogConfig
	UI       UIConfig
}

// AuthConfig selects and reaches the passwordless auth provider.
type AuthConfig struct {
	Provider       string
	URL            string
	AnonKeyEnv     string `mapstructure:"anon_key_env"`
	AnonKey        string `mapstructure:"anon_key"`
	Timeout        time.Duration
	RedirectScheme string        `mapstructure:"redirect_scheme"`
	RedirectPath   string        `mapstructure:"redirect_path"`
	ResendInterval time.Duration `mapstructure:"resend_interval"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

type LogConfig struct {
	Path  string
	Level string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Language     string
	InitialRoute string `mapstructure:"initial_route"`
}

const (
	ProviderGoTrue = "gotrue"
	ProviderKratos = "kratos"
)

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "smartbank")
}

// Path is the config file location: $SMARTBANK_CONFIG or the user config dir.
func Path() string {
	if p := os.Getenv("SMARTBANK_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "smartbank", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix SMARTBANK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("auth.provider", ProviderGoTrue)
	v.SetDefault("auth.url", "http://localhost:54321")
	v.SetDefault("auth.anon_key_env", "SUPABASE_ANON_KEY")
	v.SetDefault("auth.anon_key", "")
	v.SetDefault("auth.timeout", 30*time.Second)
	v.SetDefault("auth.redirect_scheme", "smartbank")
	v.SetDefault("auth.redirect_path", "auth/callback")
	v.SetDefault("auth.resend_interval", time.Minute)
	v.SetDefault("database.path", filepath.Join(dataDir(), "smartbank.db"))
	v.SetDefault("log.path", filepath.Join(dataDir(), "smartbank.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.language", "en")
	v.SetDefault("ui.initial_route", string(nav.OnBoarding))

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("SMARTBANK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing file is fine; a malformed one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes cfg to Path(), creating the config directory if needed. The
// anon key is never written; keep it in the env var or the secrets store.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("auth.provider", cfg.Auth.Provider)
	v.Set("auth.url", cfg.Auth.URL)
	v.Set("auth.anon_key_env", cfg.Auth.AnonKeyEnv)
	v.Set("auth.timeout", cfg.Auth.Timeout.String())
	v.Set("auth.redirect_scheme", cfg.Auth.RedirectScheme)
	v.Set("auth.redirect_path", cfg.Auth.RedirectPath)
	v.Set("auth.resend_interval", cfg.Auth.ResendInterval.String())
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.language", cfg.UI.Language)
	v.Set("ui.initial_route", cfg.UI.InitialRoute)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate rejects settings the app cannot start with.
func (c Config) Validate() error {
	var errs []error
	switch c.Auth.Provider {
	case ProviderGoTrue, ProviderKratos:
	default:
		errs = append(errs, fmt.Errorf("auth.provider: unknown provider %q", c.Auth.Provider))
	}
	if strings.TrimSpace(c.Auth.URL) == "" {
		errs = append(errs, errors.New("auth.url: required"))
	}
	if c.Auth.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("auth.timeout: must be positive, got %s", c.Auth.Timeout))
	}
	if c.Auth.ResendInterval <= 0 {
		errs = append(errs, fmt.Errorf("auth.resend_interval: must be positive, got %s", c.Auth.ResendInterval))
	}
	if strings.TrimSpace(c.Auth.RedirectScheme) == "" {
		errs = append(errs, errors.New("auth.redirect_scheme: required"))
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		errs = append(errs, errors.New("database.path: required"))
	}
	if _, err := c.Initial(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Initial resolves ui.initial_route. Only routes without params can start the app.
func (c Config) Initial() (nav.RouteName, error) {
	name, ok := nav.ParseRoute(c.UI.InitialRoute)
	if !ok {
		return "", fmt.Errorf("ui.initial_route: unknown route %q", c.UI.InitialRoute)
	}
	schema, _ := nav.DefaultTable().Lookup(name)
	if schema.Params != nil {
		return "", fmt.Errorf("ui.initial_route: %q requires params", name)
	}
	return name, nil
}
