package ber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBERDecoder(t *testing.T) {
	dec := NewBERDecoder([]byte{0x01, 0x02, 0x03})
	require.NotNil(t, dec)
	assert.Equal(t, 0, dec.Offset())
	assert.Equal(t, 3, dec.Remaining())
	assert.Equal(t, 3, dec.Limit())
}

func TestBERDecoder_ReadTag(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    Tag
		wantErr error
	}{
		{name: "boolean", data: []byte{0x01}, want: TagBoolean},
		{name: "sequence", data: []byte{0x30}, want: TagSequence},
		{name: "context-specific", data: []byte{0x80}, want: 0x80},
		{name: "high tag number", data: []byte{0x9F, 0x22}, want: 0x9F22},
		{name: "high tag number two continuation octets", data: []byte{0x1F, 0x81, 0x00}, want: 0x1F8100},
		{name: "empty", data: []byte{}, wantErr: ErrUnexpectedEOF},
		{name: "truncated high tag", data: []byte{0x1F, 0x81}, wantErr: ErrUnexpectedEOF},
		{name: "too many tag octets", data: []byte{0x1F, 0x81, 0x82, 0x83, 0x04}, wantErr: ErrInvalidTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := NewBERDecoder(tt.data)
			tag, err := dec.ReadTag()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrConversion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tag)
		})
	}
}

func TestBERDecoder_ReadLength(t *testing.T) {
	long := make([]byte, 300)

	tests := []struct {
		name    string
		data    []byte
		want    int
		wantErr error
	}{
		{name: "short form zero", data: []byte{0x00}, want: 0},
		{name: "short form", data: []byte{0x02, 0xAA, 0xBB}, want: 2},
		{name: "long form one octet", data: append([]byte{0x81, 0x80}, long[:128]...), want: 128},
		{name: "long form two octets", data: append([]byte{0x82, 0x01, 0x2C}, long...), want: 300},
		{name: "legacy four octets", data: []byte{0x84, 0x00, 0x00, 0x00, 0x01, 0xAA}, want: 1},
		{name: "non-minimal long form accepted", data: []byte{0x81, 0x01, 0xAA}, want: 1},
		{name: "empty", data: []byte{}, wantErr: ErrUnexpectedEOF},
		{name: "indefinite", data: []byte{0x80}, wantErr: ErrIndefiniteLength},
		{name: "reserved", data: []byte{0xFF, 0x00}, wantErr: ErrInvalidLength},
		{name: "truncated length octets", data: []byte{0x82, 0x01}, wantErr: ErrUnexpectedEOF},
		{name: "length exceeds data", data: []byte{0x03, 0xAA}, wantErr: ErrUnexpectedEOF},
		{name: "huge length", data: []byte{0x88, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, wantErr: ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := NewBERDecoder(tt.data)
			n, err := dec.ReadLength()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrConversion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestBERDecoder_ReadElement(t *testing.T) {
	data := []byte{0x04, 0x03, 'a', 'b', 'c', 0x05, 0x00}
	dec := NewBERDecoder(data)

	tag, content, err := dec.ReadElement()
	require.NoError(t, err)
	assert.Equal(t, TagOctetString, tag)
	assert.Equal(t, []byte("abc"), content)
	assert.Equal(t, 5, dec.Offset())

	tag, content, err = dec.ReadElement()
	require.NoError(t, err)
	assert.Equal(t, TagNull, tag)
	assert.Empty(t, content)
	assert.Zero(t, dec.Remaining())

	_, _, err = dec.ReadElement()
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestBERDecoder_EnterLeave(t *testing.T) {
	t.Run("bounds the cursor", func(t *testing.T) {
		data := []byte{0x30, 0x03, 0x02, 0x01, 0x0A, 0x05, 0x00}
		dec := NewBERDecoder(data)

		saved, err := dec.Enter()
		require.NoError(t, err)
		assert.Equal(t, len(data), saved)
		assert.Equal(t, 5, dec.Limit())

		_, _, err = dec.ReadElement()
		require.NoError(t, err)

		// The null after the sequence is out of reach until Leave.
		_, _, err = dec.ReadElement()
		require.ErrorIs(t, err, ErrUnexpectedEOF)

		require.NoError(t, dec.Leave(saved))
		assert.Equal(t, len(data), dec.Limit())
		_, _, err = dec.ReadElement()
		require.NoError(t, err)
	})

	t.Run("leave before content is consumed", func(t *testing.T) {
		dec := NewBERDecoder([]byte{0x30, 0x02, 0x05, 0x00})
		saved, err := dec.Enter()
		require.NoError(t, err)
		err = dec.Leave(saved)
		require.ErrorIs(t, err, ErrTrailingData)
		assert.ErrorIs(t, err, ErrConversion)
	})

	t.Run("element longer than enclosing group", func(t *testing.T) {
		dec := NewBERDecoder([]byte{0x30, 0x02, 0x04, 0x03, 'a', 'b', 'c'})
		_, err := dec.Enter()
		require.NoError(t, err)
		_, _, err = dec.ReadElement()
		assert.ErrorIs(t, err, ErrUnexpectedEOF)
	})
}

func TestDecodeError(t *testing.T) {
	err := NewDecodeError(7, "cannot read tag", ErrUnexpectedEOF)
	assert.Equal(t, "ber: decode error at offset 7: cannot read tag: ber: unexpected end of data", err.Error())
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
	assert.ErrorIs(t, err, ErrConversion)
	assert.NotErrorIs(t, err, ErrArgument)
}
