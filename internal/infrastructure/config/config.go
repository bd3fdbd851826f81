// Package config loads the immutable run configuration. Sources in
// increasing precedence: the TOML config file, a .env file, then the process
// environment. Secrets only ever come from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/example/resy-agent/internal/domain/schedule"
)

const DefaultFile = ".resyagent.toml"

type Config struct {
	// Resy credentials, environment only.
	ResyAPIKey          string
	ResyAuthToken       string
	ResyPaymentMethodID string

	// Google OAuth client, environment only.
	GoogleClientID     string
	GoogleClientSecret string
	TokenFile          string

	CalendarIDs     []string
	EventCalendarID string
	SpreadsheetID   string
	EmailRecipient  string

	PartySize        int
	PreferredDays    []time.Weekday
	DailyRange       schedule.DayRange
	PreferredSeating []string

	Timezone string
	Location *time.Location

	HorizonDays   int
	Buffer        time.Duration
	MinDuration   time.Duration
	EventDuration time.Duration

	// Venue search bias point.
	Latitude  float64
	Longitude float64

	LogLevel slog.Level
}

// fileConfig is the TOML shape; durations are minutes.
type fileConfig struct {
	CalendarIDs     []string `toml:"calendar_ids"`
	EventCalendarID string   `toml:"event_calendar_id"`
	SpreadsheetID   string   `toml:"spreadsheet_id"`
	EmailRecipient  string   `toml:"email_recipient"`

	PartySize        int      `toml:"party_size"`
	PreferredDays    string   `toml:"preferred_days"`
	PreferredTimes   string   `toml:"preferred_times"`
	PreferredSeating []string `toml:"preferred_seating"`

	Timezone           string  `toml:"timezone"`
	HorizonDays        int     `toml:"horizon_days"`
	BufferMinutes      int     `toml:"buffer_minutes"`
	MinDurationMinutes int     `toml:"min_duration_minutes"`
	EventHours         int     `toml:"event_hours"`
	Latitude           float64 `toml:"latitude"`
	Longitude          float64 `toml:"longitude"`

	TokenFile string `toml:"token_file"`
	LogLevel  string `toml:"log_level"`
}

// Load builds the Config. path may be empty, in which case the file is
// resolved from the current directory and then $HOME/.config/resyagent/.
func Load(path string) (Config, error) {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	fc := fileConfig{
		PartySize:          2,
		PreferredDays:      "Friday,Saturday",
		PreferredTimes:     "17:00-22:00",
		Timezone:           "America/New_York",
		HorizonDays:        60,
		BufferMinutes:      30,
		MinDurationMinutes: 60,
		EventHours:         2,
		TokenFile:          "token.json",
		LogLevel:           "info",
	}
	if resolved, ok := resolveFile(path); ok {
		if _, err := toml.DecodeFile(resolved, &fc); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", resolved, err)
		}
	} else if path != "" {
		return Config{}, fmt.Errorf("config file %s not found", path)
	}

	cfg := Config{
		ResyAPIKey:          strings.TrimSpace(os.Getenv("RESY_API_KEY")),
		ResyAuthToken:       strings.TrimSpace(os.Getenv("RESY_AUTH_TOKEN")),
		ResyPaymentMethodID: strings.TrimSpace(os.Getenv("RESY_PAYMENT_METHOD_ID")),
		GoogleClientID:      strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID")),
		GoogleClientSecret:  strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_SECRET")),

		TokenFile:        envDefault("TOKEN_FILE", fc.TokenFile),
		EventCalendarID:  envDefault("EVENT_CALENDAR_ID", fc.EventCalendarID),
		SpreadsheetID:    envDefault("SPREADSHEET_ID", fc.SpreadsheetID),
		EmailRecipient:   envDefault("EMAIL_RECIPIENT", fc.EmailRecipient),
		Timezone:         envDefault("TIMEZONE", fc.Timezone),
		PreferredSeating: fc.PreferredSeating,
		HorizonDays:      fc.HorizonDays,
		Latitude:         fc.Latitude,
		Longitude:        fc.Longitude,
	}

	if v := strings.TrimSpace(os.Getenv("CALENDAR_IDS")); v != "" {
		cfg.CalendarIDs = splitCSV(v)
	} else {
		cfg.CalendarIDs = fc.CalendarIDs
	}

	var err error
	cfg.PartySize, err = envIntDefault("PARTY_SIZE", fc.PartySize)
	if err != nil {
		return Config{}, err
	}
	horizon, err := envIntDefault("HORIZON_DAYS", fc.HorizonDays)
	if err != nil {
		return Config{}, err
	}
	cfg.HorizonDays = horizon
	bufMin, err := envIntDefault("BUFFER_MINUTES", fc.BufferMinutes)
	if err != nil {
		return Config{}, err
	}
	cfg.Buffer = time.Duration(bufMin) * time.Minute
	minMin, err := envIntDefault("MIN_DURATION_MINUTES", fc.MinDurationMinutes)
	if err != nil {
		return Config{}, err
	}
	cfg.MinDuration = time.Duration(minMin) * time.Minute
	cfg.EventDuration = time.Duration(fc.EventHours) * time.Hour

	cfg.PreferredDays, err = schedule.ParseWeekdays(envDefault("PREFERRED_DAYS", fc.PreferredDays))
	if err != nil {
		return Config{}, fmt.Errorf("preferred_days: %w", err)
	}
	cfg.DailyRange, err = schedule.ParseDayRange(envDefault("PREFERRED_TIMES", fc.PreferredTimes))
	if err != nil {
		return Config{}, fmt.Errorf("preferred_times: %w", err)
	}
	cfg.Location, err = time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("timezone: %w", err)
	}
	cfg.LogLevel, err = parseLevel(envDefault("LOG_LEVEL", fc.LogLevel))
	if err != nil {
		return Config{}, err
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	required := []struct {
		name, val string
	}{
		{"RESY_API_KEY", c.ResyAPIKey},
		{"RESY_AUTH_TOKEN", c.ResyAuthToken},
		{"GOOGLE_CLIENT_ID", c.GoogleClientID},
		{"GOOGLE_CLIENT_SECRET", c.GoogleClientSecret},
		{"SPREADSHEET_ID / spreadsheet_id", c.SpreadsheetID},
		{"EMAIL_RECIPIENT / email_recipient", c.EmailRecipient},
	}
	for _, r := range required {
		if r.val == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}
	if len(c.CalendarIDs) == 0 {
		return fmt.Errorf("CALENDAR_IDS / calendar_ids is required")
	}
	if c.PartySize < 1 {
		return fmt.Errorf("party_size must be >= 1")
	}
	if c.HorizonDays < 1 {
		return fmt.Errorf("horizon_days must be >= 1")
	}
	if len(c.PreferredDays) == 0 {
		return fmt.Errorf("preferred_days is required")
	}
	return nil
}

func resolveFile(path string) (string, bool) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
		return "", false
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return DefaultFile, true
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	candidate := filepath.Join(home, ".config", "resyagent", "config.toml")
	if _, err := os.Stat(candidate); err == nil {
		return candidate, true
	}
	return "", false
}

func envDefault(k, d string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	return v
}

func envIntDefault(k string, d int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
