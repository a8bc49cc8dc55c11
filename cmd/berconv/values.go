package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/berconv/internal/ber"
	"github.com/KilimcininKorOglu/berconv/internal/config"
)

// parseValue turns a KIND:TEXT literal into a ber.Value. The literal
// "null" yields a nil Value.
func parseValue(lit string) (ber.Value, error) {
	if lit == "null" {
		return nil, nil
	}
	kind, text, ok := strings.Cut(lit, ":")
	if !ok {
		return nil, errors.Errorf("literal %q has no kind prefix", lit)
	}

	switch kind {
	case "b":
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, errors.Wrapf(err, "boolean %q", text)
		}
		return ber.Bool(b), nil

	case "i":
		n, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "integer %q", text)
		}
		return ber.Int(n), nil

	case "s":
		return ber.String(text), nil

	case "o":
		b, err := parseHex(text)
		if err != nil {
			return nil, err
		}
		return ber.Bytes(b), nil

	case "X":
		hexText, unusedText, hasUnused := strings.Cut(text, "/")
		b, err := parseHex(hexText)
		if err != nil {
			return nil, err
		}
		bs := ber.BitString{Bytes: b}
		if hasUnused {
			if bs.UnusedBits, err = strconv.Atoi(unusedText); err != nil {
				return nil, errors.Wrapf(err, "unused bits %q", unusedText)
			}
		}
		return bs, nil

	case "v":
		if text == "" {
			return ber.Strings{}, nil
		}
		return ber.Strings(strings.Split(text, ",")), nil

	case "V":
		if text == "" {
			return ber.ByteStrings{}, nil
		}
		parts := strings.Split(text, ",")
		out := make(ber.ByteStrings, len(parts))
		for i, p := range parts {
			b, err := parseHex(p)
			if err != nil {
				return nil, err
			}
			out[i] = b
		}
		return out, nil
	}
	return nil, errors.Errorf("unknown value kind %q", kind)
}

func parseHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "hex %q", s)
	}
	return b, nil
}

// formatValue renders a decoded value as a literal parseValue accepts.
func formatValue(v ber.Value) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case ber.Bool:
		return "b:" + strconv.FormatBool(bool(t))
	case ber.Int:
		return "i:" + strconv.FormatInt(int64(t), 10)
	case ber.String:
		return "s:" + string(t)
	case ber.Bytes:
		return "o:" + hex.EncodeToString(t)
	case ber.BitString:
		return fmt.Sprintf("X:%s/%d", hex.EncodeToString(t.Bytes), t.UnusedBits)
	case ber.Strings:
		return "v:" + strings.Join(t, ",")
	case ber.ByteStrings:
		parts := make([]string, len(t))
		for i, b := range t {
			parts[i] = hex.EncodeToString(b)
		}
		return "V:" + strings.Join(parts, ",")
	}
	return fmt.Sprintf("%v", v)
}

func toYAML(v ber.Value) yamlValue {
	switch t := v.(type) {
	case ber.Bool:
		return yamlValue{Kind: "bool", Value: bool(t)}
	case ber.Int:
		return yamlValue{Kind: "int", Value: int64(t)}
	case ber.String:
		return yamlValue{Kind: "string", Value: string(t)}
	case ber.Bytes:
		return yamlValue{Kind: "bytes", Value: hex.EncodeToString(t)}
	case ber.Strings:
		return yamlValue{Kind: "strings", Value: []string(t)}
	case ber.ByteStrings:
		parts := make([]string, len(t))
		for i, b := range t {
			parts[i] = hex.EncodeToString(b)
		}
		return yamlValue{Kind: "bytestrings", Value: parts}
	}
	return yamlValue{Kind: "unknown", Value: formatValue(v)}
}

// readBytes decodes command-line data in the given encoding.
func readBytes(encoding string, raw []byte) ([]byte, error) {
	switch encoding {
	case config.EncodingRaw:
		return raw, nil
	case config.EncodingHex:
		b, err := hex.DecodeString(strings.Join(strings.Fields(string(raw)), ""))
		if err != nil {
			return nil, errors.Wrap(err, "hex input")
		}
		return b, nil
	case config.EncodingBase64:
		b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil {
			return nil, errors.Wrap(err, "base64 input")
		}
		return b, nil
	}
	return nil, errors.Errorf("unknown input encoding %q", encoding)
}

// writeBytes prints encoded data in the given encoding.
func writeBytes(w io.Writer, encoding string, data []byte) error {
	var err error
	switch encoding {
	case config.EncodingRaw:
		_, err = w.Write(data)
	case config.EncodingHex:
		_, err = fmt.Fprintln(w, hex.EncodeToString(data))
	case config.EncodingBase64:
		_, err = fmt.Fprintln(w, base64.StdEncoding.EncodeToString(data))
	default:
		return errors.Errorf("unknown output encoding %q", encoding)
	}
	return err
}
