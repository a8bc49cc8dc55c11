package ber

// BERDecoder reads TLV records from a byte slice. The cursor never moves
// backwards and never passes limit, which bracket groups narrow to the
// content of the constructed value being decoded.
type BERDecoder struct {
	data   []byte
	offset int
	limit  int
}

// NewBERDecoder creates a new BER decoder for the given data.
func NewBERDecoder(data []byte) *BERDecoder {
	return &BERDecoder{
		data:  data,
		limit: len(data),
	}
}

// Offset returns the current read position in the data.
func (d *BERDecoder) Offset() int {
	return d.offset
}

// Limit returns the position the cursor may not pass.
func (d *BERDecoder) Limit() int {
	return d.limit
}

// Remaining returns the number of bytes left before the limit.
func (d *BERDecoder) Remaining() int {
	return d.limit - d.offset
}

// ReadTag reads the identifier octets at the current position. The tag is
// returned as it appears on the wire; high-tag-number octets are folded in
// big-endian order.
func (d *BERDecoder) ReadTag() (Tag, error) {
	startOffset := d.offset

	if d.offset >= d.limit {
		return 0, NewDecodeError(startOffset, "cannot read tag", ErrUnexpectedEOF)
	}

	first := d.data[d.offset]
	d.offset++
	tag := Tag(first)
	if first&highTagNumber != highTagNumber {
		return tag, nil
	}

	// High tag number form: continuation octets have bit 8 set.
	for n := 1; ; n++ {
		if n >= maxTagOctets {
			return 0, NewDecodeError(startOffset, "tag number too large", ErrInvalidTag)
		}
		if d.offset >= d.limit {
			return 0, NewDecodeError(startOffset, "cannot read long form tag number", ErrUnexpectedEOF)
		}
		b := d.data[d.offset]
		d.offset++
		tag = tag<<8 | Tag(b)
		if b&0x80 == 0 {
			return tag, nil
		}
	}
}

// ReadLength reads a BER length value from the current position. The length
// must fit in the bytes remaining before the limit.
func (d *BERDecoder) ReadLength() (int, error) {
	startOffset := d.offset

	if d.offset >= d.limit {
		return 0, NewDecodeError(startOffset, "cannot read length", ErrUnexpectedEOF)
	}

	first := d.data[d.offset]
	d.offset++

	// Short form: bit 8 is 0, bits 1-7 contain the length
	if first&LengthLongFormBit == 0 {
		return d.checkLength(startOffset, int(first))
	}

	// Long form: bits 1-7 contain the number of subsequent length octets
	numBytes := int(first &^ LengthLongFormBit)
	switch numBytes {
	case 0:
		return 0, NewDecodeError(startOffset, "indefinite length encoding", ErrIndefiniteLength)
	case lengthReserved:
		return 0, NewDecodeError(startOffset, "reserved length octet", ErrInvalidLength)
	}

	if numBytes > d.limit-d.offset {
		return 0, NewDecodeError(startOffset, "truncated length encoding", ErrUnexpectedEOF)
	}

	length := 0
	for i := 0; i < numBytes; i++ {
		length = length<<8 | int(d.data[d.offset])
		d.offset++
		if length > d.limit {
			return 0, NewDecodeError(startOffset, "length exceeds available data", ErrUnexpectedEOF)
		}
	}

	return d.checkLength(startOffset, length)
}

func (d *BERDecoder) checkLength(startOffset, length int) (int, error) {
	if length > d.limit-d.offset {
		return 0, NewDecodeError(startOffset, "length exceeds available data", ErrUnexpectedEOF)
	}
	return length, nil
}

// ReadElement reads one TLV record and returns its tag and content. The
// content aliases the decoder's data.
func (d *BERDecoder) ReadElement() (Tag, []byte, error) {
	tag, err := d.ReadTag()
	if err != nil {
		return 0, nil, err
	}
	length, err := d.ReadLength()
	if err != nil {
		return 0, nil, err
	}
	content := d.data[d.offset : d.offset+length : d.offset+length]
	d.offset += length
	return tag, content, nil
}

// Enter reads the header of a constructed value and bounds the cursor to
// its content. The returned limit must be handed back to Leave.
func (d *BERDecoder) Enter() (saved int, err error) {
	if _, err := d.ReadTag(); err != nil {
		return 0, err
	}
	length, err := d.ReadLength()
	if err != nil {
		return 0, err
	}
	saved = d.limit
	d.limit = d.offset + length
	return saved, nil
}

// Leave restores the limit saved by Enter. It fails unless the content of
// the constructed value has been consumed exactly.
func (d *BERDecoder) Leave(saved int) error {
	if d.offset != d.limit {
		return NewDecodeError(d.offset, "constructed value not fully consumed", ErrTrailingData)
	}
	d.limit = saved
	return nil
}
