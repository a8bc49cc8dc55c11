package ber

import (
	"errors"
	"fmt"
)

// decodeState walks a compiled format against a byte cursor.
type decodeState struct {
	dec    *BERDecoder
	out    []Value
	legacy bool
}

// contentDecoder turns the content octets of one TLV record into a value.
// The wire tag is never consulted.
type contentDecoder struct {
	decode func(s *decodeState, content []byte, offset int) (Value, error)

	// discard drops the value instead of appending it to the output.
	discard bool
}

var contentDecoders = map[byte]contentDecoder{
	'a': {decode: decodeString},
	'b': {decode: decodeBoolean},
	'e': {decode: decodeInteger},
	'i': {decode: decodeInteger},
	'n': {decode: decodeNull, discard: true},
	'o': {decode: decodeBytes},
	'O': {decode: decodeBytes},
	'B': {decode: decodeBitString},
	'v': {decode: decodeStrings},
	'V': {decode: decodeByteStrings},
}

// DecodeFormat decodes data with a compiled format. Bytes following the
// last directive are ignored.
func (c Codec) DecodeFormat(f *Format, data []byte) ([]Value, error) {
	if f == nil {
		return nil, ErrNilFormat
	}
	if f.direction != DirectionDecode {
		return nil, ErrWrongDirection
	}

	s := decodeState{
		dec:    NewBERDecoder(data),
		legacy: c.Dialect == DialectLegacy,
	}
	if err := s.decodeGroup(f.nodes); err != nil {
		return nil, err
	}
	if s.out == nil {
		s.out = []Value{}
	}
	return s.out, nil
}

func (s *decodeState) decodeGroup(nodes []directive) error {
	for _, n := range nodes {
		if n.op == '{' || n.op == '[' {
			saved, err := s.dec.Enter()
			if err != nil {
				return err
			}
			if err := s.decodeGroup(n.group); err != nil {
				return err
			}
			if err := s.dec.Leave(saved); err != nil {
				return err
			}
			continue
		}

		cd, ok := contentDecoders[n.op]
		if !ok {
			return &FormatError{Offset: n.offset, Directive: n.op, Err: ErrUnknownDirective}
		}
		start := s.dec.Offset()
		_, content, err := s.dec.ReadElement()
		if err != nil {
			return err
		}
		v, err := cd.decode(s, content, s.dec.Offset()-len(content))
		if err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				return err
			}
			return NewDecodeError(start, fmt.Sprintf("directive %q", n.op), err)
		}
		if !cd.discard {
			s.out = append(s.out, v)
		}
	}
	return nil
}

func decodeBoolean(_ *decodeState, content []byte, _ int) (Value, error) {
	if len(content) != 1 {
		return nil, ErrInvalidBoolean
	}
	return Bool(content[0] != 0x00), nil
}

// decodeInteger sign-extends big-endian two's complement content.
func decodeInteger(_ *decodeState, content []byte, _ int) (Value, error) {
	if len(content) == 0 || len(content) > maxIntegerOctets {
		return nil, ErrInvalidInteger
	}
	var result int64
	if content[0]&0x80 != 0 {
		result = -1
	}
	for _, b := range content {
		result = result<<8 | int64(b)
	}
	return Int(result), nil
}

func decodeNull(_ *decodeState, content []byte, _ int) (Value, error) {
	if len(content) != 0 {
		return nil, ErrInvalidNull
	}
	return nil, nil
}

func decodeString(_ *decodeState, content []byte, _ int) (Value, error) {
	return String(decodeText(content)), nil
}

func decodeBytes(_ *decodeState, content []byte, _ int) (Value, error) {
	return Bytes(cloneBytes(content)), nil
}

// decodeBitString strips the unused-bits octet unless the legacy dialect
// is in use, whose bit strings carry none.
func decodeBitString(s *decodeState, content []byte, _ int) (Value, error) {
	if s.legacy {
		return Bytes(cloneBytes(content)), nil
	}
	if len(content) == 0 {
		return nil, ErrInvalidBitString
	}
	return Bytes(cloneBytes(content[1:])), nil
}

// decodeStrings reads content as a run of TLV records and returns the
// content of each as text.
func decodeStrings(s *decodeState, content []byte, offset int) (Value, error) {
	out := Strings{}
	err := s.eachElement(content, offset, func(elem []byte) {
		out = append(out, decodeText(elem))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodeByteStrings(s *decodeState, content []byte, offset int) (Value, error) {
	out := ByteStrings{}
	err := s.eachElement(content, offset, func(elem []byte) {
		out = append(out, cloneBytes(elem))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// eachElement walks the TLV records packed in content, which starts at
// offset in the input, so errors report absolute offsets.
func (s *decodeState) eachElement(content []byte, offset int, fn func([]byte)) error {
	sub := &BERDecoder{
		data:   s.dec.data,
		offset: offset,
		limit:  offset + len(content),
	}
	for sub.Remaining() > 0 {
		_, elem, err := sub.ReadElement()
		if err != nil {
			return err
		}
		fn(elem)
	}
	return nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
