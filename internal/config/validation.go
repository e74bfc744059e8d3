package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"console", "json"}
	validOutputs = []string{"stderr", "stdout", "file", "both"}
	historyExts  = []string{".json", ".db"}
)

// Validate normalizes the case of the logging options, then checks the
// configuration and returns ValidationErrors describing every problem found.
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)
	c.Logging.Output = strings.ToLower(c.Logging.Output)

	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if c.Format != "" && !strings.Contains(c.Format, "%") {
		add("format", "must contain a % verb")
	}
	if c.Check.Prec == 0 {
		add("check.prec", "must be positive")
	}
	if c.Check.Tolerance <= 0 {
		add("check.tolerance", "must be positive")
	}
	if c.History.Limit < 0 {
		add("history.limit", "cannot be negative")
	}
	if c.History.Path != "" && !hasSuffix(c.History.Path, historyExts) {
		add("history.path", "must end in "+strings.Join(historyExts, " or "))
	}
	if !oneOf(c.Logging.Level, validLevels) {
		add("logging.level", "must be one of "+strings.Join(validLevels, ", "))
	}
	if !oneOf(c.Logging.Format, validFormats) {
		add("logging.format", "must be one of "+strings.Join(validFormats, ", "))
	}
	if !oneOf(c.Logging.Output, validOutputs) {
		add("logging.output", "must be one of "+strings.Join(validOutputs, ", "))
	}
	if (c.Logging.Output == "file" || c.Logging.Output == "both") && c.Logging.FilePath == "" {
		add("logging.file_path", "is required for file output")
	}
	if c.Logging.MaxSize < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAge < 0 {
		add("logging", "rotation limits cannot be negative")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func oneOf(s string, valid []string) bool {
	for _, v := range valid {
		if s == v {
			return true
		}
	}
	return false
}

func hasSuffix(s string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(strings.ToLower(s), ext) {
			return true
		}
	}
	return false
}
