package ber

// BEREncoder appends BER-encoded TLV records to a growing buffer.
type BEREncoder struct {
	buf []byte

	// legacyLength selects the fixed 0x84 four-octet length form for
	// constructed values.
	legacyLength bool
}

// NewBEREncoder creates a new BER encoder with an optional initial capacity.
func NewBEREncoder(capacity int) *BEREncoder {
	if capacity <= 0 {
		capacity = 64
	}
	return &BEREncoder{
		buf: make([]byte, 0, capacity),
	}
}

// Bytes returns the encoded bytes.
func (e *BEREncoder) Bytes() []byte {
	return e.buf
}

// Reset clears the encoder buffer for reuse.
func (e *BEREncoder) Reset() {
	e.buf = e.buf[:0]
}

// Len returns the current length of encoded data.
func (e *BEREncoder) Len() int {
	return len(e.buf)
}

// WriteTag writes the identifier octets of tag. A tag above 0xFF is written
// as its big-endian octets without leading zero octets.
func (e *BEREncoder) WriteTag(tag Tag) {
	n := 1
	for n < 4 && tag>>(8*n) != 0 {
		n++
	}
	for i := n - 1; i >= 0; i-- {
		e.buf = append(e.buf, byte(tag>>(8*i)))
	}
}

// WriteLength writes a BER length value to the buffer.
// Uses short form for lengths 0-127, minimal long form for larger values.
func (e *BEREncoder) WriteLength(length int) error {
	if length < 0 {
		return ErrNegativeLength
	}

	// Short form: length fits in 7 bits (0-127)
	if length <= MaxShortFormLength {
		e.buf = append(e.buf, byte(length))
		return nil
	}

	numBytes := 0
	for temp := length; temp > 0; temp >>= 8 {
		numBytes++
	}

	e.buf = append(e.buf, byte(LengthLongFormBit|numBytes))
	for i := numBytes - 1; i >= 0; i-- {
		e.buf = append(e.buf, byte(length>>(i*8)))
	}
	return nil
}

// writeLegacyLength writes length as 0x84 followed by four octets.
func (e *BEREncoder) writeLegacyLength(length int) error {
	if length < 0 {
		return ErrNegativeLength
	}
	if uint64(length) > 0xFFFFFFFF {
		return ErrInvalidLength
	}
	e.buf = append(e.buf, byte(LengthLongFormBit|legacyLengthOctets),
		byte(length>>24), byte(length>>16), byte(length>>8), byte(length))
	return nil
}

// WriteBoolean writes a boolean as 0xFF (true) or 0x00 (false).
func (e *BEREncoder) WriteBoolean(tag Tag, v bool) error {
	e.WriteTag(tag)
	if err := e.WriteLength(1); err != nil {
		return err
	}
	if v {
		e.buf = append(e.buf, 0xFF)
	} else {
		e.buf = append(e.buf, 0x00)
	}
	return nil
}

// WriteInteger writes v with the minimal two's complement content used by
// both INTEGER and ENUMERATED.
func (e *BEREncoder) WriteInteger(tag Tag, v int64) error {
	e.WriteTag(tag)
	n := integerOctets(v)
	if err := e.WriteLength(n); err != nil {
		return err
	}
	for i := n - 1; i >= 0; i-- {
		e.buf = append(e.buf, byte(v>>(8*i)))
	}
	return nil
}

// integerOctets returns the minimal number of octets holding v in two's
// complement, including the sign-disambiguating pad octet.
func integerOctets(v int64) int {
	n := 1
	for n < maxIntegerOctets {
		rest := v >> (8*n - 1)
		if rest == 0 || rest == -1 {
			break
		}
		n++
	}
	return n
}

// WriteNull writes a zero-length value.
func (e *BEREncoder) WriteNull(tag Tag) error {
	e.WriteTag(tag)
	return e.WriteLength(0)
}

// WriteOctetString writes v as the content of a primitive value.
func (e *BEREncoder) WriteOctetString(tag Tag, v []byte) error {
	e.WriteTag(tag)
	if err := e.WriteLength(len(v)); err != nil {
		return err
	}
	e.buf = append(e.buf, v...)
	return nil
}

// WriteBitString writes the unused-bits octet followed by v.
func (e *BEREncoder) WriteBitString(tag Tag, unusedBits int, v []byte) error {
	e.WriteTag(tag)
	if err := e.WriteLength(len(v) + 1); err != nil {
		return err
	}
	e.buf = append(e.buf, byte(unusedBits))
	e.buf = append(e.buf, v...)
	return nil
}

// WriteConstructed writes a constructed value whose content has already
// been encoded.
func (e *BEREncoder) WriteConstructed(tag Tag, content []byte) error {
	e.WriteTag(tag)
	var err error
	if e.legacyLength {
		err = e.writeLegacyLength(len(content))
	} else {
		err = e.WriteLength(len(content))
	}
	if err != nil {
		return err
	}
	e.buf = append(e.buf, content...)
	return nil
}

// WriteRaw writes raw bytes directly to the buffer.
func (e *BEREncoder) WriteRaw(data []byte) {
	e.buf = append(e.buf, data...)
}
