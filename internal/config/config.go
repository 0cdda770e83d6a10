package config

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the User-Agent the browser presents to the translation site.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// DefaultSiteURL is the root page of the translation service.
const DefaultSiteURL = "https://translatesubtitles.co/"

// DefaultTargetLang is used when no target language is given.
const DefaultTargetLang = "nl"

// Default step timeouts.
const (
	DefaultLaunchTimeout    = 60 * time.Second
	DefaultNavigateTimeout  = 45 * time.Second
	DefaultElementTimeout   = 20 * time.Second
	DefaultPopupTimeout     = 30 * time.Second
	DefaultTranslateTimeout = 5 * time.Minute
	DefaultDownloadTimeout  = 2 * time.Minute
)

type Config struct {
	SiteURL               string `mapstructure:"site_url"`
	UserAgent             string `mapstructure:"user_agent"`
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	TargetLang            string `mapstructure:"target_lang"`
	LogLevel              string `mapstructure:"log_level"`
	SentryDSN             string `mapstructure:"sentry_dsn"`
	Browser               struct {
		Bin       string `mapstructure:"bin"`
		Headless  bool   `mapstructure:"headless"`
		NoSandbox bool   `mapstructure:"no_sandbox"`
	} `mapstructure:"browser"`
	// Go duration strings like "30s", "5m".
	Timeouts struct {
		Launch    string `mapstructure:"launch"`
		Navigate  string `mapstructure:"navigate"`
		Element   string `mapstructure:"element"`
		Popup     string `mapstructure:"popup"`
		Translate string `mapstructure:"translate"`
		Download  string `mapstructure:"download"`
	} `mapstructure:"timeouts"`
	Metrics struct {
		File string `mapstructure:"file"` // Prometheus textfile destination, empty disables
	} `mapstructure:"metrics"`
}

// Timeouts holds the parsed per-step timeout policy.
type Timeouts struct {
	Launch    time.Duration
	Navigate  time.Duration
	Element   time.Duration
	Popup     time.Duration
	Translate time.Duration
	Download  time.Duration
}

var logger zerolog.Logger

func init() {
	// Console writer on stderr keeps stdout free for command output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: false,
	}).With().Timestamp().Logger()
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("site_url", DefaultSiteURL)
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("proxy_connection_string", "")
	v.SetDefault("target_lang", DefaultTargetLang)
	v.SetDefault("log_level", "info")
	v.SetDefault("sentry_dsn", "")
	v.SetDefault("browser.bin", "")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.no_sandbox", false)
	v.SetDefault("timeouts.launch", DefaultLaunchTimeout.String())
	v.SetDefault("timeouts.navigate", DefaultNavigateTimeout.String())
	v.SetDefault("timeouts.element", DefaultElementTimeout.String())
	v.SetDefault("timeouts.popup", DefaultPopupTimeout.String())
	v.SetDefault("timeouts.translate", DefaultTranslateTimeout.String())
	v.SetDefault("timeouts.download", DefaultDownloadTimeout.String())
	v.SetDefault("metrics.file", "")
}

// LoadConfig reads tlsubs.yaml (if any), the TLSUBS_* environment and
// whatever flags were bound to v, in viper's usual precedence.
func LoadConfig(v *viper.Viper) (*Config, error) {
	v.SetConfigName("tlsubs")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variable support
	v.SetEnvPrefix("TLSUBS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("log_level", "TLSUBS_LOG_LEVEL", "LOG_LEVEL")

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.SiteURL == "" {
		config.SiteURL = DefaultSiteURL
	}
	if config.TargetLang == "" {
		config.TargetLang = DefaultTargetLang
	}

	return &config, nil
}

// ConfigureLogging applies the configured log level, falling back to info.
func ConfigureLogging(cfg *Config) {
	level := zerolog.InfoLevel // default
	if cfg.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", cfg.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)

	logger.Debug().Str("level", level.String()).Msg("Logging configured")
}

// StepTimeouts parses the configured timeouts. Invalid or non-positive
// values fall back to the defaults with a warning.
func (c *Config) StepTimeouts() Timeouts {
	return Timeouts{
		Launch:    parseTimeout("launch", c.Timeouts.Launch, DefaultLaunchTimeout),
		Navigate:  parseTimeout("navigate", c.Timeouts.Navigate, DefaultNavigateTimeout),
		Element:   parseTimeout("element", c.Timeouts.Element, DefaultElementTimeout),
		Popup:     parseTimeout("popup", c.Timeouts.Popup, DefaultPopupTimeout),
		Translate: parseTimeout("translate", c.Timeouts.Translate, DefaultTranslateTimeout),
		Download:  parseTimeout("download", c.Timeouts.Download, DefaultDownloadTimeout),
	}
}

// DefaultTimeouts returns the built-in timeout policy.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Launch:    DefaultLaunchTimeout,
		Navigate:  DefaultNavigateTimeout,
		Element:   DefaultElementTimeout,
		Popup:     DefaultPopupTimeout,
		Translate: DefaultTranslateTimeout,
		Download:  DefaultDownloadTimeout,
	}
}

func parseTimeout(name, value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		logger.Warn().Err(err).Str("step", name).Str("timeout", value).Dur("default", fallback).Msg("Invalid timeout duration, using default")
		return fallback
	}
	return parsed
}

func GetLogger() zerolog.Logger {
	return logger
}
