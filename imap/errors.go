package imap

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Structs

// ErrorKind classifies what went wrong while
// reading or interpreting a server response.
type ErrorKind int

// Error carries the kind of a failure together
// with the parser operation it occurred in and
// the underlying cause.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// Constants

const (
	// KindIO marks failures of the underlying byte
	// source, including an unexpected end of stream.
	KindIO ErrorKind = iota

	// KindSyntax marks responses violating the
	// token grammar.
	KindSyntax

	// KindConversion marks accessor calls on values
	// that do not have the requested shape.
	KindConversion
)

// Functions

// String returns a short name for the kind.
func (k ErrorKind) String() string {

	switch k {
	case KindIO:
		return "io"
	case KindSyntax:
		return "syntax"
	case KindConversion:
		return "conversion"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("imap %s error in %s: %v", e.Kind, e.Op, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// ioError wraps a failure of the byte source. A bare
// io.EOF is turned into io.ErrUnexpectedEOF because
// the stream ended in the middle of a response.
func ioError(op string, err error) error {

	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}

	return &Error{
		Kind: KindIO,
		Op:   op,
		Err:  errors.Wrap(err, "end of stream reached or read failed"),
	}
}

func syntaxError(op string, format string, args ...interface{}) error {

	return &Error{
		Kind: KindSyntax,
		Op:   op,
		Err:  errors.Errorf(format, args...),
	}
}

func conversionError(op string, err error) error {

	return &Error{
		Kind: KindConversion,
		Op:   op,
		Err:  err,
	}
}

func isKind(err error, kind ErrorKind) bool {

	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}

	return false
}

// IsIO reports whether err was caused by the
// byte source failing or ending prematurely.
func IsIO(err error) bool {
	return isKind(err, KindIO)
}

// IsSyntax reports whether err is a grammar
// violation in the received response.
func IsSyntax(err error) bool {
	return isKind(err, KindSyntax)
}

// IsConversion reports whether err came from a
// typed accessor on a mismatching value.
func IsConversion(err error) bool {
	return isKind(err, KindConversion)
}
