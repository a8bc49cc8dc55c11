package config

// Byte encodings accepted for codec.input and codec.output.
const (
	EncodingHex    = "hex"
	EncodingBase64 = "base64"
	EncodingRaw    = "raw"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Codec: CodecConfig{
			Dialect: "strict",
			Input:   EncodingHex,
			Output:  EncodingHex,
		},
		Logging: LogConfig{
			Level:  "warn",
			Format: "text",
			Output: "stderr",
		},
	}
}
