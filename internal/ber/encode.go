package ber

import "fmt"

// encodeState walks a compiled format and the value list in lock-step.
type encodeState struct {
	values []Value
	next   int

	// levels holds one scratch encoder per bracket depth; siblings at the
	// same depth reuse it.
	levels []*BEREncoder

	legacy bool
}

// EncodeFormat encodes values with a compiled format.
func (c Codec) EncodeFormat(f *Format, values ...Value) ([]byte, error) {
	if f == nil {
		return nil, ErrNilFormat
	}
	if f.direction != DirectionEncode {
		return nil, ErrWrongDirection
	}

	s := encodeState{
		values: values,
		legacy: c.Dialect == DialectLegacy,
	}
	root := NewBEREncoder(0)
	root.legacyLength = s.legacy
	if err := s.encodeGroup(root, f.nodes, 0); err != nil {
		return nil, err
	}
	return root.Bytes(), nil
}

func (s *encodeState) level(depth int) *BEREncoder {
	for len(s.levels) <= depth {
		enc := NewBEREncoder(0)
		enc.legacyLength = s.legacy
		s.levels = append(s.levels, enc)
	}
	enc := s.levels[depth]
	enc.Reset()
	return enc
}

func (s *encodeState) encodeGroup(enc *BEREncoder, nodes []directive, depth int) error {
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]
		var err error
		switch n.op {
		case '{', '[':
			inner := s.level(depth)
			if err = s.encodeGroup(inner, n.group, depth+1); err != nil {
				return err
			}
			err = enc.WriteConstructed(constructedTag(n.op), inner.Bytes())
		case 't':
			// Only a following i or e takes the override; otherwise t
			// consumes nothing and writes nothing.
			if i+1 == len(nodes) || !isNumeric(nodes[i+1].op) {
				continue
			}
			var tag Tag
			if tag, err = s.takeTag(); err != nil {
				return err
			}
			i++
			err = s.encodeNumeric(enc, nodes[i].op, tag)
		case 'i':
			err = s.encodeNumeric(enc, n.op, TagInteger)
		case 'e':
			err = s.encodeNumeric(enc, n.op, TagEnumerated)
		default:
			err = s.encodeScalar(enc, n.op)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func isNumeric(op byte) bool {
	return op == 'i' || op == 'e'
}

// take returns the next value and its index.
func (s *encodeState) take(op byte) (Value, int, error) {
	if s.next >= len(s.values) {
		return nil, s.next, &ValueError{Index: s.next, Directive: op, Err: ErrMissingValue}
	}
	s.next++
	return s.values[s.next-1], s.next - 1, nil
}

func wrongType(op byte, index int, v Value, want string) error {
	return &ValueError{
		Index:     index,
		Directive: op,
		Message:   fmt.Sprintf("want %s, got %s", want, kindName(v)),
		Err:       ErrWrongType,
	}
}

func (s *encodeState) takeTag() (Tag, error) {
	v, idx, err := s.take('t')
	if err != nil {
		return 0, err
	}
	n, ok := v.(Int)
	if !ok {
		return 0, wrongType('t', idx, v, "int")
	}
	if n < 0 || n > 0xFFFFFFFF {
		return 0, &ValueError{Index: idx, Directive: 't', Message: fmt.Sprintf("tag %d out of range", n), Err: ErrWrongType}
	}
	if !completeTag(Tag(n)) {
		return 0, &ValueError{Index: idx, Directive: 't', Message: fmt.Sprintf("tag %#x is not a complete identifier", uint32(n)), Err: ErrWrongType}
	}
	return Tag(n), nil
}

// completeTag reports whether the octets WriteTag emits for tag form one
// identifier that ReadTag consumes exactly: a single octet without the
// high-tag-number marker, or a marked first octet followed by continuation
// octets of which only the last has bit 8 clear.
func completeTag(tag Tag) bool {
	var octets []byte
	for shift := 24; shift >= 0; shift -= 8 {
		b := byte(tag >> shift)
		if len(octets) == 0 && b == 0 && shift > 0 {
			continue
		}
		octets = append(octets, b)
	}

	first := octets[0]
	if len(octets) == 1 {
		return first&highTagNumber != highTagNumber
	}
	if first&highTagNumber != highTagNumber {
		return false
	}
	for _, b := range octets[1 : len(octets)-1] {
		if b&0x80 == 0 {
			return false
		}
	}
	return octets[len(octets)-1]&0x80 == 0
}

func (s *encodeState) encodeNumeric(enc *BEREncoder, op byte, tag Tag) error {
	v, idx, err := s.take(op)
	if err != nil {
		return err
	}
	n, ok := v.(Int)
	if !ok {
		return wrongType(op, idx, v, "int")
	}
	return enc.WriteInteger(tag, int64(n))
}

func (s *encodeState) encodeScalar(enc *BEREncoder, op byte) error {
	if op == 'n' {
		// The paired value is skipped unseen, and may be absent.
		if s.next < len(s.values) {
			s.next++
		}
		return enc.WriteNull(TagNull)
	}

	v, idx, err := s.take(op)
	if err != nil {
		return err
	}

	switch op {
	case 'b':
		b, ok := v.(Bool)
		if !ok {
			return wrongType(op, idx, v, "bool")
		}
		return enc.WriteBoolean(TagBoolean, bool(b))

	case 's':
		switch t := v.(type) {
		case nil:
			return enc.WriteOctetString(TagOctetString, nil)
		case String:
			return enc.WriteOctetString(TagOctetString, encodeText(string(t)))
		}
		return wrongType(op, idx, v, "string")

	case 'o':
		switch t := v.(type) {
		case nil:
			return enc.WriteOctetString(TagOctetString, nil)
		case Bytes:
			return enc.WriteOctetString(TagOctetString, t)
		}
		return wrongType(op, idx, v, "bytes")

	case 'X':
		var bs BitString
		switch t := v.(type) {
		case Bytes:
			bs.Bytes = t
		case BitString:
			bs = t
		default:
			return wrongType(op, idx, v, "bytes")
		}
		if bs.UnusedBits < 0 || bs.UnusedBits > 7 {
			return &ValueError{Index: idx, Directive: op, Message: fmt.Sprintf("%d unused bits", bs.UnusedBits), Err: ErrWrongType}
		}
		if s.legacy {
			return enc.WriteOctetString(TagBitString, bs.Bytes)
		}
		return enc.WriteBitString(TagBitString, bs.UnusedBits, bs.Bytes)

	case 'v':
		switch t := v.(type) {
		case nil:
			return nil
		case Strings:
			for _, str := range t {
				if err := enc.WriteOctetString(TagOctetString, encodeText(str)); err != nil {
					return err
				}
			}
			return nil
		}
		return wrongType(op, idx, v, "string list")

	case 'V':
		switch t := v.(type) {
		case nil:
			return nil
		case ByteStrings:
			for _, b := range t {
				if err := enc.WriteOctetString(TagOctetString, b); err != nil {
					return err
				}
			}
			return nil
		}
		return wrongType(op, idx, v, "byte string list")
	}

	// Unreachable for formats compiled with ParseEncodeFormat.
	return &FormatError{Offset: -1, Directive: op, Err: ErrUnknownDirective}
}
