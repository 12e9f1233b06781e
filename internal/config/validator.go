package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/openclaw/agent-teams/internal/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "watch.poll_interval_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels as written in
// config files (lowercase; the logging package owns the canonical set).
func ValidLogLevels() []string {
	levels := logging.ValidLevels()
	out := make([]string, len(levels))
	for i, l := range levels {
		out[i] = strings.ToLower(l)
	}
	return out
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateWatch()...)

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}

// validateWatch validates the WatchConfig
func (c *Config) validateWatch() []ValidationError {
	var errors []ValidationError

	if c.Watch.PollIntervalMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "watch.poll_interval_ms",
			Value:   c.Watch.PollIntervalMs,
			Message: "must be positive",
		})
	}

	// Sub-second values are fine; multi-minute polling defeats the purpose.
	const maxPollIntervalMs = 60_000
	if c.Watch.PollIntervalMs > maxPollIntervalMs {
		errors = append(errors, ValidationError{
			Field:   "watch.poll_interval_ms",
			Value:   c.Watch.PollIntervalMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxPollIntervalMs),
		})
	}

	return errors
}
