package ber

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by Encode and Decode matches exactly
// one of these with errors.Is.
var (
	// ErrArgument reports an unusable format: nil, compiled for the other
	// direction, or containing a character outside the directive alphabet.
	ErrArgument = errors.New("ber: invalid argument")

	// ErrValue reports a missing value or a value of the wrong kind for
	// the directive consuming it. Only Encode returns it.
	ErrValue = errors.New("ber: invalid value")

	// ErrConversion reports structural malformation of the format or the
	// encoded data.
	ErrConversion = errors.New("ber: conversion error")
)

// classError is a sentinel that belongs to one of the error classes.
type classError struct {
	msg   string
	class error
}

func (e *classError) Error() string        { return e.msg }
func (e *classError) Is(target error) bool { return target == e.class }

// Argument errors
var (
	// ErrNilFormat is returned when no format is supplied.
	ErrNilFormat error = &classError{"ber: format is nil", ErrArgument}

	// ErrUnknownDirective is returned for a character outside the alphabet
	// of the requested direction.
	ErrUnknownDirective error = &classError{"ber: unknown directive", ErrArgument}

	// ErrWrongDirection is returned when a format compiled for decoding is
	// used to encode, or the reverse.
	ErrWrongDirection error = &classError{"ber: format compiled for the other direction", ErrArgument}
)

// Value errors
var (
	// ErrMissingValue is returned when the value list runs out before a
	// directive that needs a value.
	ErrMissingValue error = &classError{"ber: missing value", ErrValue}

	// ErrWrongType is returned when a value is not of the kind a directive
	// requires.
	ErrWrongType error = &classError{"ber: wrong value type", ErrValue}

	// ErrNegativeLength is returned when a negative length is written.
	ErrNegativeLength error = &classError{"ber: negative length not allowed", ErrValue}
)

// Conversion errors
var (
	// ErrUnbalanced is returned for unmatched or mismatched brackets.
	ErrUnbalanced error = &classError{"ber: unbalanced brackets", ErrConversion}

	// ErrUnexpectedEOF is returned when the decoder encounters truncated data.
	ErrUnexpectedEOF error = &classError{"ber: unexpected end of data", ErrConversion}

	// ErrInvalidLength is returned when a length value is malformed.
	ErrInvalidLength error = &classError{"ber: invalid length encoding", ErrConversion}

	// ErrIndefiniteLength is returned when indefinite length encoding is
	// encountered.
	ErrIndefiniteLength error = &classError{"ber: indefinite length not supported", ErrConversion}

	// ErrInvalidTag is returned when an identifier is too long.
	ErrInvalidTag error = &classError{"ber: invalid tag encoding", ErrConversion}

	// ErrInvalidBoolean is returned when a boolean value has invalid length.
	ErrInvalidBoolean error = &classError{"ber: invalid boolean encoding", ErrConversion}

	// ErrInvalidInteger is returned when an integer value is malformed.
	ErrInvalidInteger error = &classError{"ber: invalid integer encoding", ErrConversion}

	// ErrInvalidNull is returned when a null value has non-zero length.
	ErrInvalidNull error = &classError{"ber: invalid null encoding", ErrConversion}

	// ErrInvalidBitString is returned when a bit string lacks its
	// unused-bits octet.
	ErrInvalidBitString error = &classError{"ber: invalid bit string encoding", ErrConversion}

	// ErrTrailingData is returned when a bracket group is closed before its
	// content has been consumed.
	ErrTrailingData error = &classError{"ber: unconsumed data in constructed value", ErrConversion}
)

// FormatError describes a problem with a format string.
type FormatError struct {
	Offset    int  // Position of the offending character
	Directive byte // The offending character
	Err       error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("%v: %q at format offset %d", e.Err, e.Directive, e.Offset)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// ValueError describes a value that a directive could not encode.
type ValueError struct {
	Index     int  // Index of the value in the value list
	Directive byte // Directive consuming the value
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v: directive %q, value %d", e.Err, e.Directive, e.Index)
	}
	return fmt.Sprintf("%v: directive %q, value %d: %s", e.Err, e.Directive, e.Index, e.Message)
}

// Unwrap returns the underlying error.
func (e *ValueError) Unwrap() error {
	return e.Err
}

// DecodeError provides detailed information about a decoding failure.
type DecodeError struct {
	Offset  int    // Byte offset where the error occurred
	Message string // Human-readable error description
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ber: decode error at offset %d: %s: %v", e.Offset, e.Message, e.Err)
	}
	return fmt.Sprintf("ber: decode error at offset %d: %s", e.Offset, e.Message)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports every DecodeError as a conversion error.
func (e *DecodeError) Is(target error) bool {
	return target == ErrConversion
}

// NewDecodeError creates a new DecodeError with the given parameters.
func NewDecodeError(offset int, message string, err error) *DecodeError {
	return &DecodeError{
		Offset:  offset,
		Message: message,
		Err:     err,
	}
}
