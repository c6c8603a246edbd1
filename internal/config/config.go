package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	DefaultPort                      = "5000"
	DefaultAPIURL                    = "http://localhost:5000/api/cycles"
	DefaultPredictionRefreshSchedule = "@daily"
	DefaultHTTPTimeout               = 10 * time.Second
)

type Config struct {
	Port                      string
	DBPath                    string
	Location                  *time.Location
	PredictionRefreshSchedule string
	APIURL                    string
	UserID                    string
	Language                  string
	HTTPTimeout               time.Duration
}

// Load reads an optional .env file and then the process environment.
// Variables already present in the environment win over .env values.
// Language stays empty unless DEFAULT_LANGUAGE is set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	port, err := resolvePort()
	if err != nil {
		return Config{}, err
	}
	schedule, err := resolveRefreshSchedule()
	if err != nil {
		return Config{}, err
	}
	timeout, err := resolveHTTPTimeout()
	if err != nil {
		return Config{}, err
	}
	apiURL, err := resolveAPIURL()
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:                      port,
		DBPath:                    getEnv("DB_PATH", filepath.Join("data", "cycletrack.db")),
		Location:                  loadLocation(getEnv("TZ", "UTC")),
		PredictionRefreshSchedule: schedule,
		APIURL:                    apiURL,
		UserID:                    strings.TrimSpace(os.Getenv("CYCLETRACK_USER")),
		Language:                  strings.ToLower(strings.TrimSpace(os.Getenv("DEFAULT_LANGUAGE"))),
		HTTPTimeout:               timeout,
	}, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", DefaultPort)
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveRefreshSchedule() (string, error) {
	schedule := getEnv("PREDICTION_REFRESH_SCHEDULE", DefaultPredictionRefreshSchedule)
	if _, err := cron.ParseStandard(schedule); err != nil {
		return "", fmt.Errorf("invalid PREDICTION_REFRESH_SCHEDULE %q: %w", schedule, err)
	}
	return schedule, nil
}

func resolveHTTPTimeout() (time.Duration, error) {
	raw := os.Getenv("HTTP_TIMEOUT")
	if strings.TrimSpace(raw) == "" {
		return DefaultHTTPTimeout, nil
	}
	timeout, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || timeout <= 0 {
		return 0, fmt.Errorf("invalid HTTP_TIMEOUT %q", raw)
	}
	return timeout, nil
}

func resolveAPIURL() (string, error) {
	raw := strings.TrimRight(getEnv("CYCLETRACK_API_URL", DefaultAPIURL), "/")
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "", fmt.Errorf("invalid CYCLETRACK_API_URL %q", raw)
	}
	return raw, nil
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
