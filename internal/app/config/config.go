package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the server configuration.
type Config struct {
	LogLevel LogLeveler    `mapstructure:"LOG_LEVEL"`
	HTTP     HTTP          `mapstructure:",squash"`
	Provider RatesProvider `mapstructure:",squash"`
}

type HTTP struct {
	Port    int           `mapstructure:"HTTP_PORT"`
	Timeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

// RatesProvider holds the outbound rates provider configuration.
// The attempt timeout grows linearly: base + step * attempt index.
type RatesProvider struct {
	RatesAPIURL        string        `mapstructure:"PROVIDER_RATES_API_URL"`
	UnitTypeIDs        string        `mapstructure:"PROVIDER_UNIT_TYPE_IDS"`
	MaxRetries         int           `mapstructure:"PROVIDER_MAX_RETRIES"`
	RetryDelay         time.Duration `mapstructure:"PROVIDER_RETRY_DELAY"`
	AttemptTimeoutBase time.Duration `mapstructure:"PROVIDER_ATTEMPT_TIMEOUT_BASE"`
	AttemptTimeoutStep time.Duration `mapstructure:"PROVIDER_ATTEMPT_TIMEOUT_STEP"`
	RequestDeadline    time.Duration `mapstructure:"PROVIDER_REQUEST_DEADLINE"`
}

// DefaultUnitTypeIDs parses the comma separated unit type id list queried
// when a request does not pin a specific unit type.
func (p RatesProvider) DefaultUnitTypeIDs() ([]int64, error) {
	parts := strings.Split(p.UnitTypeIDs, ",")
	ids := make([]int64, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid unit type id %q: %w", part, err)
		}

		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("no unit type ids configured in %q", p.UnitTypeIDs)
	}

	return ids, nil
}
