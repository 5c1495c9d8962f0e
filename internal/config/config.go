// Package config reads the handful of environment variables the CLI and
// ABI front-ends need to locate persisted vocabulary/merges tables and
// set log verbosity, in the teacher's closure-returning-getter style
// (see the teacher's envconfig package) rather than a struct populated
// by a flag/env parsing library — there's too little configuration here
// to justify one.
package config

import (
	"os"
	"strings"
)

// Var reads an environment variable, trimming whitespace and any
// surrounding quotes a shell may have left in place.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// stringWithDefault returns a getter for a string env var.
func stringWithDefault(key, defaultValue string) func() string {
	return func() string {
		if v := Var(key); v != "" {
			return v
		}
		return defaultValue
	}
}

// VocabDir is the directory containing <vocab>.jsonl and merges.txt.
// Configurable via BPETOK_VOCAB_DIR.
var VocabDir = stringWithDefault("BPETOK_VOCAB_DIR", "./testdata/vocab")

// LogLevel is the minimum slog level name ("debug", "info", "warn",
// "error"). Configurable via BPETOK_LOG_LEVEL.
var LogLevel = stringWithDefault("BPETOK_LOG_LEVEL", "info")

// EnvVar documents one configuration variable and its resolved value,
// for CLI --help output.
type EnvVar struct {
	Name        string
	Value       string
	Description string
}

// AsMap returns every configuration variable this package reads, with
// its current resolved value, for display in CLI usage text.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"BPETOK_VOCAB_DIR": {"BPETOK_VOCAB_DIR", VocabDir(), "Directory containing <vocab>.jsonl and merges.txt"},
		"BPETOK_LOG_LEVEL": {"BPETOK_LOG_LEVEL", LogLevel(), "Minimum log level: debug, info, warn, error"},
	}
}
