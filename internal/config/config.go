// Package config loads berconv settings from YAML files and the environment.
package config

import "github.com/KilimcininKorOglu/berconv/internal/ber"

// Config holds the complete tool configuration.
type Config struct {
	Codec   CodecConfig `yaml:"codec"`
	Logging LogConfig   `yaml:"logging"`
}

// CodecConfig selects the BER dialect and the byte encodings used on the
// command line.
type CodecConfig struct {
	Dialect string `yaml:"dialect"`
	// Input is the encoding of data handed to decode: hex, base64 or raw.
	Input string `yaml:"input"`
	// Output is the encoding of data printed by encode: hex, base64 or raw.
	Output string `yaml:"output"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// DialectValue returns the configured dialect, falling back to strict when
// the name is not recognised. Call ValidateConfig to catch bad names.
func (c CodecConfig) DialectValue() ber.Dialect {
	d, err := ber.ParseDialect(c.Dialect)
	if err != nil {
		return ber.DialectStrict
	}
	return d
}
