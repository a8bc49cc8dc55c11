// Package ber implements a format-string driven ASN.1 BER (Basic Encoding
// Rules) codec as used by LDAP controls and extended operations.
//
// A format string is a compact description of a BER structure. Each
// character is a directive: scalar directives consume or produce one value,
// and bracket directives open and close constructed elements.
//
// # Encoding
//
// Encode walks the format left to right and consumes one Value per scalar
// directive:
//
//	data, err := ber.Encode("{iob}", ber.Int(500), ber.Bytes(cookie), ber.Bool(true))
//
// Encode directives:
//
//   - b: BOOLEAN from Bool
//   - e: ENUMERATED from Int
//   - i: INTEGER from Int
//   - n: NULL, consumes a value if one is left
//   - o: OCTET STRING from Bytes, nil writes an empty string
//   - s: OCTET STRING holding the UTF-8 form of a String
//   - t: tag override for the next i or e, taken from an Int
//   - v: SEQUENCE OF OCTET STRING from Strings
//   - V: SEQUENCE OF OCTET STRING from ByteStrings
//   - X: BIT STRING from Bytes or BitString
//   - { }: SEQUENCE
//   - [ ]: SET
//
// # Decoding
//
// Decode reads one element per scalar directive and reinterprets its content
// according to the directive. The tag on the wire is not checked.
//
//	values, err := ber.Decode("{iO}", data)
//
// Decode directives:
//
//   - a: String from OCTET STRING content
//   - b: Bool
//   - e, i: Int
//   - n: NULL, produces no value
//   - o, O: Bytes
//   - B: Bytes from BIT STRING content
//   - v: Strings from a constructed element
//   - V: ByteStrings from a constructed element
//   - { }, [ ]: enter and leave a constructed element
//
// Formats can be compiled once with ParseEncodeFormat or ParseDecodeFormat
// and reused across calls.
//
// # Dialects
//
// DialectStrict writes minimal X.690 lengths. DialectLegacy writes every
// constructed length in the four-octet long form (0x84 followed by four
// length octets), writes X as an OCTET STRING body under the BIT STRING tag,
// and returns BIT STRING content untouched from B.
//
// # Errors
//
// Every error returned by this package matches exactly one of ErrArgument,
// ErrValue or ErrConversion through errors.Is. Format problems are reported
// as *FormatError, value list problems as *ValueError and malformed input as
// *DecodeError.
//
// # References
//
//   - ITU-T X.690: ASN.1 encoding rules
//   - RFC 4511: LDAP Protocol (uses BER encoding)
package ber
