package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KilimcininKorOglu/berconv/internal/ber"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig validates the configuration and returns a list of validation errors.
// An empty slice indicates the configuration is valid.
func ValidateConfig(config *Config) []error {
	var errs []error
	errs = append(errs, validateCodecConfig(&config.Codec)...)
	errs = append(errs, validateLogConfig(&config.Logging)...)
	return errs
}

func validateCodecConfig(config *CodecConfig) []error {
	var errs []error

	if _, err := ber.ParseDialect(config.Dialect); err != nil {
		errs = append(errs, ValidationError{
			Field:   "codec.dialect",
			Message: "must be strict or legacy",
		})
	}
	if !validEncoding(config.Input) {
		errs = append(errs, ValidationError{
			Field:   "codec.input",
			Message: "must be hex, base64, or raw",
		})
	}
	if !validEncoding(config.Output) {
		errs = append(errs, ValidationError{
			Field:   "codec.output",
			Message: "must be hex, base64, or raw",
		})
	}

	return errs
}

func validEncoding(s string) bool {
	switch s {
	case EncodingHex, EncodingBase64, EncodingRaw:
		return true
	}
	return false
}

// validateLogConfig validates logging configuration.
func validateLogConfig(config *LogConfig) []error {
	var errs []error

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if config.Level != "" && !validLevels[config.Level] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: "must be debug, info, warn, or error",
		})
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if config.Format != "" && !validFormats[config.Format] {
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: "must be text or json",
		})
	}

	if config.Output != "" && config.Output != "stdout" && config.Output != "stderr" {
		dir := filepath.Dir(config.Output)
		if !filepath.IsAbs(config.Output) {
			errs = append(errs, ValidationError{
				Field:   "logging.output",
				Message: "must be stdout, stderr, or an absolute file path",
			})
		} else if _, err := os.Stat(dir); os.IsNotExist(err) {
			errs = append(errs, ValidationError{
				Field:   "logging.output",
				Message: fmt.Sprintf("directory %s does not exist", dir),
			})
		}
	}

	return errs
}
