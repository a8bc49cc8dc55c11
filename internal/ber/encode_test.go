package ber

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		values   []Value
		expected []byte
	}{
		{"empty format", "", nil, []byte{}},
		{"empty format ignores values", "", make([]Value, 10), []byte{}},
		{"extra values ignored", "b", []Value{Bool(true), Bool(false), Bool(true), Bool(false)}, []byte{0x01, 0x01, 0xFF}},
		{"booleans", "bb", []Value{Bool(true), Bool(false)}, []byte{0x01, 0x01, 0xFF, 0x01, 0x01, 0x00}},
		{"empty sequence", "{}", []Value{String("a")}, []byte{0x30, 0x00}},
		{"empty set", "[]", []Value{String("a")}, []byte{0x31, 0x00}},
		{"null ignores its value", "n", []Value{String("a")}, []byte{0x05, 0x00}},
		{"null without value", "n", nil, []byte{0x05, 0x00}},
		{"null consumes its slot", "nb", []Value{Bool(true), Bool(false)}, []byte{0x05, 0x00, 0x01, 0x01, 0x00}},
		{"enumerated with pad octet", "e", []Value{Int(128)}, []byte{0x0A, 0x02, 0x00, 0x80}},
		{"negative integer", "i", []Value{Int(-1)}, []byte{0x02, 0x01, 0xFF}},
		{"tag override", "te", []Value{Int(128), Int(0)}, []byte{0x80, 0x01, 0x00}},
		{"trailing tag override", "tet", []Value{Int(128), Int(0), Int(133)}, []byte{0x80, 0x01, 0x00}},
		{"lone tag override", "t", nil, []byte{}},
		{"tag override before string", "ts", []Value{String("x")}, []byte{0x04, 0x01, 'x'}},
		{"tag override at group end", "{t}i", []Value{Int(1)}, []byte{0x30, 0x00, 0x02, 0x01, 0x01}},
		{
			"tag overrides and defaults",
			"tetie",
			[]Value{Int(128), Int(0), Int(133), Int(2), Int(3)},
			[]byte{0x80, 0x01, 0x00, 0x85, 0x01, 0x02, 0x0A, 0x01, 0x03},
		},
		{
			"tag overrides in sequence",
			"{tetie}",
			[]Value{Int(128), Int(0), Int(133), Int(2), Int(3)},
			[]byte{0x30, 0x09, 0x80, 0x01, 0x00, 0x85, 0x01, 0x02, 0x0A, 0x01, 0x03},
		},
		{"multi-octet tag override", "ti", []Value{Int(0x9F22), Int(1)}, []byte{0x9F, 0x22, 0x01, 0x01}},
		{"three-octet tag override", "ti", []Value{Int(0xBF8122), Int(1)}, []byte{0xBF, 0x81, 0x22, 0x01, 0x01}},
		{"booleans in sequence", "{bb}", []Value{Bool(true), Bool(false)}, []byte{0x30, 0x06, 0x01, 0x01, 0xFF, 0x01, 0x01, 0x00}},
		{
			"strings",
			"ssss",
			[]Value{nil, String(""), String("abc"), String("\x00")},
			[]byte{0x04, 0x00, 0x04, 0x00, 0x04, 0x03, 'a', 'b', 'c', 0x04, 0x01, 0x00},
		},
		{"ill-formed text replaced", "s", []Value{String("\xff")}, []byte{0x04, 0x03, 0xEF, 0xBF, 0xBD}},
		{"null octet string", "o", []Value{nil}, []byte{0x04, 0x00}},
		{"octet string", "o", []Value{Bytes{0x00, 0xFF}}, []byte{0x04, 0x02, 0x00, 0xFF}},
		{"bit string", "X", []Value{Bytes{0, 1, 2, 255}}, []byte{0x03, 0x05, 0x00, 0x00, 0x01, 0x02, 0xFF}},
		{"bit string with unused bits", "X", []Value{BitString{Bytes: []byte{0xF0}, UnusedBits: 4}}, []byte{0x03, 0x02, 0x04, 0xF0}},
		{
			"octet and bit strings",
			"oXo",
			[]Value{nil, Bytes{0, 1, 2, 255}, Bytes{}},
			[]byte{0x04, 0x00, 0x03, 0x05, 0x00, 0x00, 0x01, 0x02, 0xFF, 0x04, 0x00},
		},
		{
			"string lists",
			"vv",
			[]Value{nil, Strings{"abc", "", ""}},
			[]byte{0x04, 0x03, 'a', 'b', 'c', 0x04, 0x00, 0x04, 0x00},
		},
		{
			"string lists in sequence",
			"{vv}",
			[]Value{nil, Strings{"abc", "", ""}},
			[]byte{0x30, 0x09, 0x04, 0x03, 'a', 'b', 'c', 0x04, 0x00, 0x04, 0x00},
		},
		{
			"byte string lists",
			"VVVV",
			[]Value{nil, ByteStrings{{0, 1, 2, 3}, nil}, ByteStrings{{}}, ByteStrings{}},
			[]byte{0x04, 0x04, 0x00, 0x01, 0x02, 0x03, 0x04, 0x00, 0x04, 0x00},
		},
		{
			"nested groups",
			"{i[s]{}}",
			[]Value{Int(1), String("x")},
			[]byte{0x30, 0x0A, 0x02, 0x01, 0x01, 0x31, 0x03, 0x04, 0x01, 'x', 0x30, 0x00},
		},
		{
			"sibling groups share scratch space",
			"{{i}{i}}",
			[]Value{Int(1), Int(2)},
			[]byte{0x30, 0x0A, 0x30, 0x03, 0x02, 0x01, 0x01, 0x30, 0x03, 0x02, 0x01, 0x02},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.format, tt.values...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEncode_LongContent(t *testing.T) {
	payload := make([]byte, 200)
	got, err := Encode("{o}", Bytes(payload))
	require.NoError(t, err)

	require.Len(t, got, 3+3+200)
	assert.Equal(t, []byte{0x30, 0x81, 0xCB, 0x04, 0x81, 0xC8}, got[:6])
}

func TestEncode_LegacyDialect(t *testing.T) {
	legacy := Codec{Dialect: DialectLegacy}

	tests := []struct {
		name     string
		format   string
		values   []Value
		expected []byte
	}{
		{"empty sequence", "{}", []Value{String("a")}, []byte{0x30, 0x84, 0x00, 0x00, 0x00, 0x00}},
		{"empty set", "[]", nil, []byte{0x31, 0x84, 0x00, 0x00, 0x00, 0x00}},
		{"primitive lengths stay minimal", "e", []Value{Int(128)}, []byte{0x0A, 0x02, 0x00, 0x80}},
		{
			"booleans in sequence",
			"{bb}",
			[]Value{Bool(true), Bool(false)},
			[]byte{0x30, 0x84, 0x00, 0x00, 0x00, 0x06, 0x01, 0x01, 0xFF, 0x01, 0x01, 0x00},
		},
		{"bit string without unused-bits octet", "X", []Value{Bytes{0, 1, 2, 255}}, []byte{0x03, 0x04, 0x00, 0x01, 0x02, 0xFF}},
		{
			"octet and bit strings",
			"oXo",
			[]Value{nil, Bytes{0, 1, 2, 255}, Bytes{}},
			[]byte{0x04, 0x00, 0x03, 0x04, 0x00, 0x01, 0x02, 0xFF, 0x04, 0x00},
		},
		{
			"tag overrides in sequence",
			"{tetie}",
			[]Value{Int(128), Int(0), Int(133), Int(2), Int(3)},
			[]byte{0x30, 0x84, 0x00, 0x00, 0x00, 0x09, 0x80, 0x01, 0x00, 0x85, 0x01, 0x02, 0x0A, 0x01, 0x03},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := legacy.Encode(tt.format, tt.values...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEncode_ValueErrors(t *testing.T) {
	tests := []struct {
		format string
		values []Value
		err    error
	}{
		{"i", nil, ErrMissingValue},
		{"i", []Value{String("string")}, ErrWrongType},
		{"i", []Value{nil}, ErrWrongType},
		{"e", nil, ErrMissingValue},
		{"e", []Value{String("string")}, ErrWrongType},
		{"e", []Value{nil}, ErrWrongType},
		{"b", nil, ErrMissingValue},
		{"b", []Value{String("string")}, ErrWrongType},
		{"b", []Value{nil}, ErrWrongType},
		{"te", nil, ErrMissingValue},
		{"te", []Value{Int(128)}, ErrMissingValue},
		{"te", []Value{String("string"), Int(0)}, ErrWrongType},
		{"te", []Value{nil, Int(0)}, ErrWrongType},
		{"te", []Value{Int(-1), Int(0)}, ErrWrongType},
		{"te", []Value{Int(0x9F), Int(5)}, ErrWrongType},
		{"te", []Value{Int(0xBF), Int(5)}, ErrWrongType},
		{"ti", []Value{Int(0x1F), Int(5)}, ErrWrongType},
		{"ti", []Value{Int(0x9F81), Int(5)}, ErrWrongType},
		{"ti", []Value{Int(0x8122), Int(5)}, ErrWrongType},
		{"ti", []Value{Int(0x9F0102), Int(5)}, ErrWrongType},
		{"s", nil, ErrMissingValue},
		{"s", []Value{Int(123)}, ErrWrongType},
		{"o", nil, ErrMissingValue},
		{"o", []Value{String("string")}, ErrWrongType},
		{"o", []Value{Int(123)}, ErrWrongType},
		{"X", nil, ErrMissingValue},
		{"X", []Value{String("string")}, ErrWrongType},
		{"X", []Value{Int(123)}, ErrWrongType},
		{"X", []Value{nil}, ErrWrongType},
		{"X", []Value{BitString{Bytes: []byte{0}, UnusedBits: 8}}, ErrWrongType},
		{"v", nil, ErrMissingValue},
		{"v", []Value{String("string")}, ErrWrongType},
		{"v", []Value{Int(123)}, ErrWrongType},
		{"V", nil, ErrMissingValue},
		{"V", []Value{String("string")}, ErrWrongType},
		{"V", []Value{Bytes{}}, ErrWrongType},
		{"{bb}", []Value{Bool(true)}, ErrMissingValue},
	}

	for _, tt := range tests {
		t.Run(tt.format+"/"+kindNames(tt.values), func(t *testing.T) {
			got, err := Encode(tt.format, tt.values...)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, ErrValue)

			var ve *ValueError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestEncode_ValueErrorDetails(t *testing.T) {
	_, err := Encode("bi", Bool(true), String("x"))
	var ve *ValueError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 1, ve.Index)
	assert.Equal(t, byte('i'), ve.Directive)
	assert.Equal(t, `ber: wrong value type: directive 'i', value 1: want int, got string`, err.Error())
}

func TestEncode_FormatErrors(t *testing.T) {
	tests := []struct {
		format string
		err    error
		class  error
	}{
		{"]", ErrUnbalanced, ErrConversion},
		{"}", ErrUnbalanced, ErrConversion},
		{"{{}}}", ErrUnbalanced, ErrConversion},
		{"{", ErrUnbalanced, ErrConversion},
		{"a", ErrUnknownDirective, ErrArgument},
		{"O", ErrUnknownDirective, ErrArgument},
		{"B", ErrUnknownDirective, ErrArgument},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := Encode(tt.format)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, tt.class)
		})
	}
}

func TestEncodeFormat_Arguments(t *testing.T) {
	_, err := Codec{}.EncodeFormat(nil, Int(1))
	assert.ErrorIs(t, err, ErrNilFormat)
	assert.ErrorIs(t, err, ErrArgument)

	_, err = Codec{}.EncodeFormat(MustParseDecodeFormat("i"), Int(1))
	assert.ErrorIs(t, err, ErrWrongDirection)
	assert.ErrorIs(t, err, ErrArgument)
}

func TestEncodeFormat_Reuse(t *testing.T) {
	f := MustParseEncodeFormat("{is}")
	first, err := Codec{}.EncodeFormat(f, Int(1), String("a"))
	require.NoError(t, err)
	second, err := Codec{}.EncodeFormat(f, Int(2), String("bc"))
	require.NoError(t, err)

	assert.Equal(t, []byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x04, 0x01, 'a'}, first)
	assert.Equal(t, []byte{0x30, 0x07, 0x02, 0x01, 0x02, 0x04, 0x02, 'b', 'c'}, second)
}

func TestEncode_DoesNotAliasInput(t *testing.T) {
	in := Bytes{1, 2, 3}
	got, err := Encode("o", in)
	require.NoError(t, err)
	got[2] = 0xEE
	assert.Equal(t, Bytes{1, 2, 3}, in)
}

func kindNames(values []Value) string {
	s := ""
	for i, v := range values {
		if i > 0 {
			s += ","
		}
		s += kindName(v)
	}
	return s
}

func TestEncode_TagOverrideDecodesBack(t *testing.T) {
	for _, tag := range []int64{0x00, 0x80, 0x9E, 0xA1, 0x9F22, 0xBF8122, 0x7F818203} {
		t.Run(fmt.Sprintf("%#x", tag), func(t *testing.T) {
			data, err := Encode("te", Int(tag), Int(5))
			require.NoError(t, err)

			got, err := Decode("e", data)
			require.NoError(t, err)
			assert.Equal(t, []Value{Int(5)}, got)
		})
	}

	// Tags whose octets would swallow the length octet are refused.
	for _, tag := range []int64{0x1F, 0x9F, 0xBF} {
		_, err := Encode("te", Int(tag), Int(5))
		assert.ErrorIs(t, err, ErrWrongType, "tag %#x", tag)
	}
}
