package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasklist configuration file
# Values can be overridden by TASKLIST_* environment variables or CLI flags.

# Pending task file, a JSON array of strings (relative to the working directory)
store_file = "TODO.json"

# Fail at startup when the task file does not exist, instead of starting empty
require_store = false

# Accept empty or whitespace-only task text
allow_blank = false

# How often the terminal UI redraws without input (milliseconds)
tick_interval_ms = 250

# Append logs to this file (the terminal UI discards logs when unset)
# log_file = "~/.tasklist/tasklist.log"

# Log level: debug, info, warn, error
log_level = "info"

# Log format: text, json, logfmt
log_format = "text"

log_timestamps = false
log_caller = false
`
}
