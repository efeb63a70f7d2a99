package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	JSONBinBaseURL string
	JSONBinAPIKey  string

	GameDataBinID string
	ProgressBinID string
	WinnersBinID  string
	TogglesBinID  string
	SettingsBinID string

	RedisURL string

	// UseMock is the fallback when the toggles document is unavailable.
	UseMock bool

	RetryMaxAttempts int
	RetryDelay       time.Duration
	RequestTimeout   time.Duration

	DefaultBoardSize int
	BoardSizes       []int
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		JSONBinBaseURL:   "https://api.jsonbin.io/v3/b",
		RetryMaxAttempts: 3,
		RetryDelay:       time.Second,
		RequestTimeout:   5 * time.Second,
		DefaultBoardSize: 5,
		BoardSizes:       []int{3, 4, 5, 6, 7},
	}

	if v := strings.TrimSpace(os.Getenv("JSONBIN_BASE_URL")); v != "" {
		cfg.JSONBinBaseURL = v
	}
	cfg.JSONBinAPIKey = strings.TrimSpace(os.Getenv("JSONBIN_API_KEY"))

	cfg.GameDataBinID = strings.TrimSpace(os.Getenv("JSONBIN_GAME_DATA_BIN_ID"))
	cfg.ProgressBinID = strings.TrimSpace(os.Getenv("JSONBIN_PROGRESS_BIN_ID"))
	cfg.WinnersBinID = strings.TrimSpace(os.Getenv("JSONBIN_WINNERS_BIN_ID"))
	cfg.TogglesBinID = strings.TrimSpace(os.Getenv("JSONBIN_TOGGLES_BIN_ID"))
	cfg.SettingsBinID = strings.TrimSpace(os.Getenv("JSONBIN_SETTINGS_BIN_ID"))

	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))

	if v := strings.TrimSpace(os.Getenv("USE_MOCK")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.UseMock = b
		}
	}

	if v := strings.TrimSpace(os.Getenv("SYNC_RETRY_MAX_ATTEMPTS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RetryMaxAttempts = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("SYNC_RETRY_DELAY_MS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RetryDelay = time.Duration(n) * time.Millisecond
		}
	}
	if v := strings.TrimSpace(os.Getenv("SYNC_REQUEST_TIMEOUT_MS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestTimeout = time.Duration(n) * time.Millisecond
		}
	}

	if v := strings.TrimSpace(os.Getenv("DEFAULT_BOARD_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DefaultBoardSize = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("BOARD_SIZES")); v != "" {
		var sizes []int
		for _, p := range strings.Split(v, ",") {
			if n, err := strconv.Atoi(strings.TrimSpace(p)); err == nil && n > 0 {
				sizes = append(sizes, n)
			}
		}
		if len(sizes) > 0 {
			cfg.BoardSizes = sizes
		}
	}

	if !cfg.UseMock {
		if cfg.JSONBinAPIKey == "" {
			return nil, errors.New("JSONBIN_API_KEY is required unless USE_MOCK=true")
		}
		if cfg.GameDataBinID == "" || cfg.ProgressBinID == "" || cfg.WinnersBinID == "" {
			return nil, errors.New("JSONBIN_GAME_DATA_BIN_ID, JSONBIN_PROGRESS_BIN_ID and JSONBIN_WINNERS_BIN_ID are required unless USE_MOCK=true")
		}
		if cfg.RedisURL == "" {
			return nil, errors.New("REDIS_URL is required unless USE_MOCK=true")
		}
	}
	if !cfg.BoardSizeAllowed(cfg.DefaultBoardSize) {
		return nil, errors.New("DEFAULT_BOARD_SIZE must be one of BOARD_SIZES")
	}

	return cfg, nil
}

// BoardSizeAllowed reports whether n is in the configured dimension set.
func (c *AppConfig) BoardSizeAllowed(n int) bool {
	for _, s := range c.BoardSizes {
		if s == n {
			return true
		}
	}
	return false
}
