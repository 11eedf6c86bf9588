package imap

import (
	"bufio"
	"io"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// Structs

// Recorder observes every byte consumed from a
// server connection outside of literal payloads
// and is able to dump what it kept for diagnosing
// a failed parse.
type Recorder interface {
	Record(b byte)
	DumpRecent()
}

// Connection is the byte source a parser reads
// from. It offers one byte of lookahead on top
// of a buffered reader over the server stream.
type Connection struct {
	Reader   *bufio.Reader
	Recorder Recorder
}

type nopRecorder struct{}

// rawLogReader logs every chunk read from the
// wrapped reader. Used for debugging only, as it
// also exposes message bodies.
type rawLogReader struct {
	r      io.Reader
	logger log.Logger
}

// Functions

// NewConnection creates a byte source on top of
// the supplied reader. All consumed bytes are
// handed to rec, which may be nil.
func NewConnection(r io.Reader, rec Recorder) *Connection {

	if rec == nil {
		rec = nopRecorder{}
	}

	return &Connection{
		Reader:   bufio.NewReader(r),
		Recorder: rec,
	}
}

// Peek returns the next byte of the stream
// without consuming it.
func (c *Connection) Peek() (byte, error) {

	b, err := c.Reader.Peek(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// ReadByte consumes the next byte of the stream
// and passes it on to the recorder.
func (c *Connection) ReadByte() (byte, error) {

	b, err := c.Reader.ReadByte()
	if err != nil {
		return 0, err
	}

	c.Recorder.Record(b)

	return b, nil
}

func (nopRecorder) Record(b byte) {}

func (nopRecorder) DumpRecent() {}

// NewRawLogReader wraps r so that every read is
// logged at debug level with its raw content.
func NewRawLogReader(r io.Reader, logger log.Logger) io.Reader {

	return &rawLogReader{
		r:      r,
		logger: logger,
	}
}

func (l *rawLogReader) Read(p []byte) (int, error) {

	n, err := l.r.Read(p)
	if n > 0 {
		level.Debug(l.logger).Log("msg", "raw read", "bytes", n, "data", string(p[:n]))
	}

	return n, err
}
