package ber

// Value is one entry of the value list consumed by Encode and produced by
// Decode. The set of implementations is closed; a nil Value is the null
// value, accepted by the string, byte and sequence directives.
type Value interface {
	berValue()
}

// Bool is the value of the b directive.
type Bool bool

// Int is the value of the i, e and t directives.
type Int int64

// String is the value of the s directive and the result of a.
type String string

// Bytes is the value of the o and X directives and the result of o, O and B.
type Bytes []byte

// BitString is a value of the X directive with an explicit count of unused
// bits in the last octet.
type BitString struct {
	Bytes      []byte
	UnusedBits int
}

// Strings is the value and result of the v directive.
type Strings []string

// ByteStrings is the value and result of the V directive.
type ByteStrings [][]byte

func (Bool) berValue()        {}
func (Int) berValue()         {}
func (String) berValue()      {}
func (Bytes) berValue()       {}
func (BitString) berValue()   {}
func (Strings) berValue()     {}
func (ByteStrings) berValue() {}

// kindName names the dynamic type of v for error messages.
func kindName(v Value) string {
	switch v.(type) {
	case nil:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case String:
		return "string"
	case Bytes:
		return "bytes"
	case BitString:
		return "bit string"
	case Strings:
		return "string list"
	case ByteStrings:
		return "byte string list"
	}
	return "unknown"
}
