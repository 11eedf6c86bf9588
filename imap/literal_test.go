package imap

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Functions

// TestLiteralBounds makes sure a literal never
// reads beyond its announced length.
func TestLiteralBounds(t *testing.T) {

	r := bufio.NewReader(strings.NewReader("hello world"))
	lit := newLiteral(r, 5)

	assert.Equal(t, int64(5), lit.Size())
	assert.Equal(t, int64(5), lit.Len())

	buf := make([]byte, 3)

	n, err := lit.Read(buf)
	assert.Nil(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "hel", string(buf[:n]))
	assert.Equal(t, int64(2), lit.Len())

	n, err = lit.Read(buf)
	assert.Nil(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "lo", string(buf[:n]))
	assert.Equal(t, int64(0), lit.Len())
	assert.Equal(t, int64(5), lit.Size())

	n, err = lit.Read(buf)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 0, n)

	_, err = lit.ReadByte()
	assert.Equal(t, io.EOF, err)

	// The underlying reader is positioned right
	// after the payload.
	b, err := r.ReadByte()
	assert.Nil(t, err)
	assert.Equal(t, byte(' '), b)
}

// TestLiteralDrain discards the remaining payload.
func TestLiteralDrain(t *testing.T) {

	r := bufio.NewReader(strings.NewReader("abcdef)"))
	lit := newLiteral(r, 6)

	b, err := lit.ReadByte()
	assert.Nil(t, err)
	assert.Equal(t, byte('a'), b)

	assert.Nil(t, lit.Drain())
	assert.Equal(t, int64(0), lit.Len())

	// Draining twice is harmless.
	assert.Nil(t, lit.Drain())

	b, err = r.ReadByte()
	assert.Nil(t, err)
	assert.Equal(t, byte(')'), b)
}

// TestLiteralShort ends the stream before the
// announced length is reached.
func TestLiteralShort(t *testing.T) {

	lit := newLiteral(bufio.NewReader(strings.NewReader("abc")), 10)

	_, err := lit.Bytes()
	assert.Equal(t, io.ErrUnexpectedEOF, err)
	assert.Equal(t, int64(7), lit.Len())

	lit = newLiteral(bufio.NewReader(strings.NewReader("abc")), 3)

	data, err := lit.Bytes()
	assert.Nil(t, err)
	assert.Equal(t, "abc", string(data))
}
