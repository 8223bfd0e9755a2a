package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/nibzard/tasklist/internal/utils"
)

// loadFromEnv overrides config from TASKLIST_* environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource, source ConfigSource) error {
	mark := func(field string) {
		if sources != nil {
			sources[field] = source
		}
	}
	setString := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			mark(field)
		}
	}
	setBool := func(env, field string, target *bool) {
		if v := os.Getenv(env); v != "" {
			*target = utils.BoolFromString(v)
			mark(field)
		}
	}

	setString("TASKLIST_STORE", "store_file", &cfg.StoreFile)
	setBool("TASKLIST_REQUIRE_STORE", "require_store", &cfg.RequireStore)
	setBool("TASKLIST_ALLOW_BLANK", "allow_blank", &cfg.AllowBlank)
	if v := os.Getenv("TASKLIST_TICK_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TASKLIST_TICK_MS: %w", err)
		}
		cfg.TickIntervalMS = ms
		mark("tick_interval_ms")
	}
	setString("TASKLIST_LOG_FILE", "log_file", &cfg.LogFile)
	setString("TASKLIST_LOG_LEVEL", "log_level", &cfg.LogLevel)
	setString("TASKLIST_LOG_FORMAT", "log_format", &cfg.LogFormat)
	setBool("TASKLIST_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	setBool("TASKLIST_LOG_CALLER", "log_caller", &cfg.LogCaller)

	return nil
}
