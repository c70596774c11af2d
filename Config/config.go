package Config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	ScorerVader  = "vader"
	ScorerGemini = "gemini"
)

var ErrInvalidReportTime = errors.New("invalid report time")

type Config struct {
	App     AppConfig
	Slack   SlackConfig
	Report  ReportConfig
	Scoring ScoringConfig

	// EnvFileLoaded reports whether a .env file was found and read.
	EnvFileLoaded bool `ignored:"true"`
}

type AppConfig struct {
	Env         string `envconfig:"APP_ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	MetricsAddr string `envconfig:"METRICS_ADDR"`
}

type SlackConfig struct {
	Token string `envconfig:"TOKEN" required:"true"`
	// ChannelID pins the channel. Empty means the first channel Slack lists.
	ChannelID string `envconfig:"CHANNEL_ID"`
}

type ReportConfig struct {
	At           string        `envconfig:"REPORT_AT" default:"18:00"`
	Lookback     time.Duration `envconfig:"LOOKBACK" default:"24h"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"1s"`
	Marker       string        `envconfig:"REPORT_MARKER" default:"BOOB IS HERE"`
	RunOnStart   bool          `envconfig:"RUN_ON_START" default:"false"`
}

type ScoringConfig struct {
	Backend     string `envconfig:"SCORER" default:"vader"`
	GeminiKey   string `envconfig:"GEMINI_API_KEY"`
	GeminiModel string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
}

// Load reads .env when present and then the process environment.
// A missing .env is fine; one that exists but cannot be read is an error.
func Load() (*Config, error) {
	// variables already set in the environment win over the .env file
	envFileLoaded := true
	dotenvError := godotenv.Load()
	if dotenvError != nil {
		if !errors.Is(dotenvError, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read .env: %w", dotenvError)
		}
		envFileLoaded = false
	}

	var cfg Config
	processError := envconfig.Process("", &cfg)
	if processError != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", processError)
	}
	cfg.EnvFileLoaded = envFileLoaded

	validateError := cfg.validate()
	if validateError != nil {
		return nil, validateError
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Slack.Token == "" {
		return errors.New("required key TOKEN is empty")
	}
	if _, _, parseError := ParseTimeOfDay(c.Report.At); parseError != nil {
		return parseError
	}
	if c.Report.Lookback <= 0 {
		return fmt.Errorf("LOOKBACK must be positive, got %s", c.Report.Lookback)
	}
	if c.Report.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive, got %s", c.Report.PollInterval)
	}
	if c.Report.Marker == "" {
		return errors.New("REPORT_MARKER must not be empty")
	}

	switch c.Scoring.Backend {
	case ScorerVader:
	case ScorerGemini:
		if c.Scoring.GeminiKey == "" {
			return errors.New("GEMINI_API_KEY is required when SCORER=gemini")
		}
	default:
		return fmt.Errorf("unknown SCORER %q", c.Scoring.Backend)
	}
	return nil
}

// ParseTimeOfDay parses "HH:MM" (24h clock).
func ParseTimeOfDay(s string) (int, int, error) {
	t, timeParseError := time.Parse("15:04", s)
	if timeParseError != nil {
		return 0, 0, fmt.Errorf("%w %q: want HH:MM", ErrInvalidReportTime, s)
	}
	return t.Hour(), t.Minute(), nil
}
