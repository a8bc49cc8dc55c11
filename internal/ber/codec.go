package ber

import "fmt"

// Dialect selects between the X.690 minimal encodings and the legacy
// conventions some LDAP client libraries still emit.
type Dialect uint8

const (
	// DialectStrict writes minimal lengths and prefixes bit strings with
	// their unused-bits octet.
	DialectStrict Dialect = iota
	// DialectLegacy writes every constructed length as 0x84 followed by
	// four octets, and writes and reads bit strings without the
	// unused-bits octet.
	DialectLegacy
)

// String returns the configuration name of the dialect.
func (d Dialect) String() string {
	switch d {
	case DialectStrict:
		return "strict"
	case DialectLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("Dialect(%d)", uint8(d))
	}
}

// ParseDialect parses a configuration name into a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch s {
	case "", "strict":
		return DialectStrict, nil
	case "legacy":
		return DialectLegacy, nil
	default:
		return 0, fmt.Errorf("%w: unknown dialect %q", ErrArgument, s)
	}
}

// Codec encodes and decodes values against directive strings. The zero
// Codec uses DialectStrict. A Codec holds no state between calls.
type Codec struct {
	Dialect Dialect
}

// Encode compiles format and encodes values with it.
func (c Codec) Encode(format string, values ...Value) ([]byte, error) {
	f, err := ParseEncodeFormat(format)
	if err != nil {
		return nil, err
	}
	return c.EncodeFormat(f, values...)
}

// Decode compiles format and decodes data with it.
func (c Codec) Decode(format string, data []byte) ([]Value, error) {
	f, err := ParseDecodeFormat(format)
	if err != nil {
		return nil, err
	}
	return c.DecodeFormat(f, data)
}

// Encode encodes values with the strict dialect. Values left over once
// format is exhausted are ignored.
func Encode(format string, values ...Value) ([]byte, error) {
	return Codec{}.Encode(format, values...)
}

// Decode decodes data with the strict dialect. Each directive reads the
// next TLV record regardless of its tag and reinterprets the content.
func Decode(format string, data []byte) ([]Value, error) {
	return Codec{}.Decode(format, data)
}
