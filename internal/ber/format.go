package ber

import "strings"

// Direction selects the directive alphabet a format is compiled against.
type Direction uint8

const (
	// DirectionEncode compiles against the encoding alphabet "b e i n o s t v V X { } [ ]".
	DirectionEncode Direction = iota + 1
	// DirectionDecode compiles against the decoding alphabet "a b e i n o O B v V { } [ ]".
	DirectionDecode
)

// String returns the name of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionEncode:
		return "encode"
	case DirectionDecode:
		return "decode"
	default:
		return "unknown"
	}
}

const (
	encodeAlphabet = "beinostvVX{}[]"
	decodeAlphabet = "abeinoOBvV{}[]"
)

// directive is one node of a compiled format. Bracket directives carry
// their nested directives in group.
type directive struct {
	op     byte
	offset int
	group  []directive
}

// Format is a compiled directive string. A Format is immutable and may be
// used by multiple goroutines at once.
type Format struct {
	text      string
	direction Direction
	nodes     []directive
}

// String returns the source text of the format.
func (f *Format) String() string {
	if f == nil {
		return ""
	}
	return f.text
}

// Direction returns the direction f was compiled for.
func (f *Format) Direction() Direction {
	if f == nil {
		return 0
	}
	return f.direction
}

// ParseEncodeFormat compiles format for use with Encode.
func ParseEncodeFormat(format string) (*Format, error) {
	return parseFormat(format, DirectionEncode)
}

// ParseDecodeFormat compiles format for use with Decode.
func ParseDecodeFormat(format string) (*Format, error) {
	return parseFormat(format, DirectionDecode)
}

// MustParseEncodeFormat is like ParseEncodeFormat but panics on error.
func MustParseEncodeFormat(format string) *Format {
	f, err := ParseEncodeFormat(format)
	if err != nil {
		panic(err)
	}
	return f
}

// MustParseDecodeFormat is like ParseDecodeFormat but panics on error.
func MustParseDecodeFormat(format string) *Format {
	f, err := ParseDecodeFormat(format)
	if err != nil {
		panic(err)
	}
	return f
}

// parseFormat scans format left to right; the first unknown character or
// bracket mismatch ends the scan.
func parseFormat(format string, direction Direction) (*Format, error) {
	alphabet := encodeAlphabet
	if direction == DirectionDecode {
		alphabet = decodeAlphabet
	}

	type frame struct {
		open   byte
		offset int
		nodes  []directive
	}
	stack := []frame{{}}

	for i := 0; i < len(format); i++ {
		c := format[i]
		if strings.IndexByte(alphabet, c) < 0 {
			return nil, &FormatError{Offset: i, Directive: c, Err: ErrUnknownDirective}
		}

		switch c {
		case '{', '[':
			stack = append(stack, frame{open: c, offset: i})
		case '}', ']':
			top := stack[len(stack)-1]
			if len(stack) == 1 || top.open != openerOf(c) {
				return nil, &FormatError{Offset: i, Directive: c, Err: ErrUnbalanced}
			}
			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			parent.nodes = append(parent.nodes, directive{op: top.open, offset: top.offset, group: top.nodes})
		default:
			top := &stack[len(stack)-1]
			top.nodes = append(top.nodes, directive{op: c, offset: i})
		}
	}

	if len(stack) > 1 {
		top := stack[len(stack)-1]
		return nil, &FormatError{Offset: top.offset, Directive: top.open, Err: ErrUnbalanced}
	}

	return &Format{text: format, direction: direction, nodes: stack[0].nodes}, nil
}

func openerOf(closer byte) byte {
	if closer == '}' {
		return '{'
	}
	return '['
}

// constructedTag returns the tag written for a bracket directive.
func constructedTag(op byte) Tag {
	if op == '[' {
		return TagSet
	}
	return TagSequence
}
