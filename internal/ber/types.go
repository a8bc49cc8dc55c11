package ber

// Tag is a BER identifier as it appears on the wire: the first identifier
// octet in the most significant position followed by any high-tag-number
// octets. Every tag used by the directive language fits in a single octet.
type Tag uint32

// Tag class constants (bits 7-8 of the first identifier octet)
const (
	ClassUniversal       = 0x00 // 00xxxxxx
	ClassApplication     = 0x40 // 01xxxxxx
	ClassContextSpecific = 0x80 // 10xxxxxx
	ClassPrivate         = 0xC0 // 11xxxxxx
)

// Constructed flag (bit 6 of the first identifier octet)
const (
	TypePrimitive   = 0x00 // xx0xxxxx
	TypeConstructed = 0x20 // xx1xxxxx
)

// Default tags emitted by the directives.
const (
	TagBoolean     Tag = 0x01
	TagInteger     Tag = 0x02
	TagBitString   Tag = 0x03
	TagOctetString Tag = 0x04
	TagNull        Tag = 0x05
	TagEnumerated  Tag = 0x0A
	TagSequence    Tag = ClassUniversal | TypeConstructed | 0x10
	TagSet         Tag = ClassUniversal | TypeConstructed | 0x11
)

// Length encoding constants
const (
	// LengthLongFormBit indicates long form length encoding (bit 8 set)
	LengthLongFormBit = 0x80
	// MaxShortFormLength is the maximum length encodable in short form (0-127)
	MaxShortFormLength = 127
	// lengthReserved is the long-form octet count X.690 reserves (0xFF).
	lengthReserved = 0x7F
	// legacyLengthOctets is the fixed octet count of the legacy dialect.
	legacyLengthOctets = 4
	// highTagNumber marks an identifier continued in base-128 octets.
	highTagNumber = 0x1F
)

// maxIntegerOctets bounds INTEGER and ENUMERATED content to an int64.
const maxIntegerOctets = 8

// maxTagOctets bounds the identifier octets accepted by the decoder.
const maxTagOctets = 4
