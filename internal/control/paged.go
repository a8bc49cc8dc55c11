package control

import (
	"math"

	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/berconv/internal/ber"
)

var (
	pagedEncodeFormat = ber.MustParseEncodeFormat("{io}")
	pagedDecodeFormat = ber.MustParseDecodeFormat("{iO}")
)

// PagedResults represents the Simple Paged Results Control (RFC 2696).
//
//	realSearchControlValue ::= SEQUENCE {
//	        size            INTEGER (0..maxInt),
//	        cookie          OCTET STRING
//	}
type PagedResults struct {
	// Size is the requested page size (from client) or estimated total count (from server).
	Size int32
	// Cookie is an opaque cursor for pagination.
	// Empty cookie indicates the first page request or end of results.
	Cookie []byte
	// Criticality indicates whether the control is critical.
	Criticality bool
}

// ParsePagedResults parses a PagedResults control. A control without a
// value yields size 0 and an empty cookie.
func ParsePagedResults(codec ber.Codec, ctrl Control) (*PagedResults, error) {
	prc := &PagedResults{Criticality: ctrl.Criticality, Cookie: []byte{}}
	if len(ctrl.Value) == 0 {
		return prc, nil
	}

	values, err := codec.DecodeFormat(pagedDecodeFormat, ctrl.Value)
	if err != nil {
		return nil, errors.Wrap(err, "paged results control")
	}
	size := int64(values[0].(ber.Int))
	if size < 0 || size > math.MaxInt32 {
		return nil, errors.Errorf("paged results control: size %d out of range", size)
	}
	prc.Size = int32(size)
	prc.Cookie = values[1].(ber.Bytes)
	return prc, nil
}

// Encode encodes the control value.
func (p *PagedResults) Encode(codec ber.Codec) ([]byte, error) {
	return codec.EncodeFormat(pagedEncodeFormat, ber.Int(p.Size), ber.Bytes(p.Cookie))
}

// ToControl converts p to a Control.
func (p *PagedResults) ToControl(codec ber.Codec) (Control, error) {
	value, err := p.Encode(codec)
	if err != nil {
		return Control{}, err
	}
	return Control{OID: PagedResultsOID, Criticality: p.Criticality, Value: value}, nil
}
