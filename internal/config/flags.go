package config

import "flag"

// flagFields maps flag names to config field names for source tracking.
var flagFields = map[string]string{
	"store":          "store_file",
	"require-store":  "require_store",
	"allow-blank":    "allow_blank",
	"tick-ms":        "tick_interval_ms",
	"log-file":       "log_file",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines and parses CLI flags into cfg.
// If sources is non-nil, it tracks the source of each explicitly set flag.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource, source ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasklist", flag.ContinueOnError)
	}

	// Store
	fs.StringVar(&cfg.StoreFile, "store", cfg.StoreFile, "Path to the pending task file")
	fs.BoolVar(&cfg.RequireStore, "require-store", cfg.RequireStore, "Fail if the task file does not exist")

	// Tasks
	fs.BoolVar(&cfg.AllowBlank, "allow-blank", cfg.AllowBlank, "Accept blank task text")

	// UI
	fs.IntVar(&cfg.TickIntervalMS, "tick-ms", cfg.TickIntervalMS, "UI refresh interval (milliseconds)")

	// Logging
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Append logs to this file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = source
			}
		})
	}
	return nil
}
