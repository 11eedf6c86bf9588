package imap

import (
	"bufio"
	"io"
	"io/ioutil"
)

// Structs

// Literal is a length-prefixed block of a server
// response. It reads exactly the announced number
// of bytes from the connection and reports io.EOF
// afterwards. Payload bytes bypass the recorder.
type Literal struct {
	r         *bufio.Reader
	size      int64
	remaining int64
}

// Functions

func newLiteral(r *bufio.Reader, size int64) *Literal {

	return &Literal{
		r:         r,
		size:      size,
		remaining: size,
	}
}

// Size returns the length announced by the server.
func (l *Literal) Size() int64 {
	return l.size
}

// Len returns the number of payload bytes not
// yet read.
func (l *Literal) Len() int64 {
	return l.remaining
}

// Read fills p with at most Len() bytes of the
// payload. The connection ending before the whole
// payload was delivered yields io.ErrUnexpectedEOF.
func (l *Literal) Read(p []byte) (int, error) {

	if l.remaining <= 0 {
		return 0, io.EOF
	}

	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}

	n, err := l.r.Read(p)
	l.remaining -= int64(n)

	if err == io.EOF {

		if l.remaining > 0 {
			return n, io.ErrUnexpectedEOF
		}

		// The payload was complete, the end of the
		// connection is reported on the next read.
		err = nil
	}

	return n, err
}

// ReadByte reads a single payload byte.
func (l *Literal) ReadByte() (byte, error) {

	var b [1]byte

	n, err := l.Read(b[:])
	if n == 1 {
		return b[0], nil
	}

	if err == nil {
		err = io.ErrNoProgress
	}

	return 0, err
}

// Drain discards everything left of the payload.
func (l *Literal) Drain() error {

	_, err := io.Copy(ioutil.Discard, l)

	return err
}

// Bytes reads the remainder of the payload into
// memory.
func (l *Literal) Bytes() ([]byte, error) {
	return ioutil.ReadAll(l)
}
