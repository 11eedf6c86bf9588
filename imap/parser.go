package imap

import (
	"io"
	"strconv"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// Structs

// Parser turns the byte stream of a server
// connection into tokens and responses. At most
// one literal handed out by a parser is pending
// at any time: any further read through the parser
// first discards what is left of it.
//
// A parser is not safe for concurrent use.
type Parser struct {
	conn   *Connection
	logger log.Logger

	// active is the literal last returned, possibly
	// not yet consumed by the caller.
	active *Literal

	// inFlight is the last response handed out while
	// still incomplete.
	inFlight *Response

	// lineEnded is set once the current token read
	// consumed a line terminator.
	lineEnded bool
}

// Functions

// NewParser returns a parser reading from r. Every
// byte consumed outside of literals is recorded in
// rec, which may be nil. Failures are logged to
// logger, which may be nil as well.
func NewParser(r io.Reader, rec Recorder, logger log.Logger) *Parser {

	if logger == nil {
		logger = log.NewNopLogger()
	}

	return &Parser{
		conn:   NewConnection(r, rec),
		logger: logger,
	}
}

// ReadToken returns the next token of the current
// line or nil once the line terminator was read.
// Closing parentheses and brackets not belonging
// to a list are skipped.
func (p *Parser) ReadToken() (Token, error) {

	t, err := p.readToken()
	if err != nil {
		p.onParseError(err)
		return nil, err
	}

	return t, nil
}

func (p *Parser) readToken() (Token, error) {

	p.lineEnded = false

	for {

		t, err := p.parseToken()
		if err != nil {
			return nil, err
		}

		if _, ok := t.(closer); !ok {
			return t, nil
		}
	}
}

// drainActive discards whatever the caller left
// unread of the pending literal, so that the
// connection is positioned right after it.
func (p *Parser) drainActive() error {

	if p.active == nil {
		return nil
	}

	lit := p.active
	p.active = nil

	if err := lit.Drain(); err != nil {
		return ioError("drainActive", err)
	}

	return nil
}

func (p *Parser) parseToken() (Token, error) {

	if err := p.drainActive(); err != nil {
		return nil, err
	}

	for {

		ch, err := p.conn.Peek()
		if err != nil {
			return nil, ioError("parseToken", err)
		}

		switch ch {

		case '(':
			return p.parseList('(', ')')

		case '[':
			return p.parseList('[', ']')

		case ')', ']':

			if err := p.expect(ch); err != nil {
				return nil, err
			}

			return closer(ch), nil

		case '"':
			return p.parseQuoted()

		case '{':

			lit, err := p.parseLiteral()
			if err != nil {
				return nil, err
			}

			p.active = lit

			return lit, nil

		case ' ':

			if err := p.expect(' '); err != nil {
				return nil, err
			}

		case '\r':

			if err := p.expect('\r'); err != nil {
				return nil, err
			}

			if err := p.expect('\n'); err != nil {
				return nil, err
			}

			p.lineEnded = true

			return nil, nil

		case '\n':

			if err := p.expect('\n'); err != nil {
				return nil, err
			}

			p.lineEnded = true

			return nil, nil

		default:
			return p.parseAtom()
		}
	}
}

// parseList reads elements until the matching
// closer, the end of the line, or a literal at any
// nesting depth. In the last case the list is
// returned right away because the bytes following
// on the wire are the payload.
func (p *Parser) parseList(opener byte, closeWith byte) (List, error) {

	if err := p.expect(opener); err != nil {
		return nil, err
	}

	list := List{}

	for {

		t, err := p.parseToken()
		if err != nil {
			return nil, err
		}

		// End of line, the list stays open.
		if t == nil {
			return list, nil
		}

		if c, ok := t.(closer); ok {

			if byte(c) == closeWith {
				return list, nil
			}

			// Closer of the other kind, drop it.
			continue
		}

		list = append(list, t)

		// A literal was handed out, either as element
		// of this list or somewhere in a nested one.
		if p.active != nil {
			return list, nil
		}

		// A nested list ran into the end of the line.
		if p.lineEnded {
			return list, nil
		}
	}
}

func isAtomDelimiter(ch byte) bool {

	switch ch {
	case '(', ')', '{', ' ', ']', '"', '%':
		return true
	}

	return ch <= 0x1f || ch == 0x7f
}

func (p *Parser) parseAtom() (Token, error) {

	var buf []byte

	for {

		ch, err := p.conn.Peek()
		if err != nil {
			return nil, ioError("parseAtom", err)
		}

		if isAtomDelimiter(ch) {

			if len(buf) == 0 {
				return nil, syntaxError("parseAtom", "unexpected character 0x%02x (%q)", ch, ch)
			}

			return Atom(buf), nil
		}

		b, err := p.conn.ReadByte()
		if err != nil {
			return nil, ioError("parseAtom", err)
		}

		buf = append(buf, b)
	}
}

// parseQuoted reads a quoted string. Backslash
// escapes quoted-specials (DQUOTE and backslash),
// a backslash before anything else is kept as is.
func (p *Parser) parseQuoted() (Token, error) {

	if err := p.expect('"'); err != nil {
		return nil, err
	}

	var buf []byte

	for {

		b, err := p.conn.ReadByte()
		if err != nil {
			return nil, ioError("parseQuoted", err)
		}

		switch b {

		case '"':
			return Quoted(buf), nil

		case '\\':

			next, err := p.conn.Peek()
			if err != nil {
				return nil, ioError("parseQuoted", err)
			}

			if next == '"' || next == '\\' {

				if _, err := p.conn.ReadByte(); err != nil {
					return nil, ioError("parseQuoted", err)
				}

				buf = append(buf, next)
				continue
			}

			buf = append(buf, b)

		default:
			buf = append(buf, b)
		}
	}
}

// parseLiteral reads a length announcement of the
// form "{N}" CRLF and returns a stream over the N
// bytes following it.
func (p *Parser) parseLiteral() (*Literal, error) {

	if err := p.expect('{'); err != nil {
		return nil, err
	}

	raw, err := p.readStringUntil("parseLiteral", '}')
	if err != nil {
		return nil, err
	}

	if raw == "" {
		return nil, syntaxError("parseLiteral", "empty literal length")
	}

	for i := 0; i < len(raw); i++ {

		if raw[i] < '0' || raw[i] > '9' {
			return nil, syntaxError("parseLiteral", "invalid literal length %q", raw)
		}
	}

	size, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, syntaxError("parseLiteral", "invalid literal length %q: %v", raw, err)
	}

	if err := p.expect('\r'); err != nil {
		return nil, err
	}

	if err := p.expect('\n'); err != nil {
		return nil, err
	}

	return newLiteral(p.conn.Reader, size), nil
}

// parseTag reads the tag of a tagged response. It
// stops at the first atom delimiter, which has to
// be the space separating the tag from the rest.
func (p *Parser) parseTag() (string, error) {

	var buf []byte

	for {

		ch, err := p.conn.Peek()
		if err != nil {
			return "", ioError("parseTag", err)
		}

		if isAtomDelimiter(ch) {
			break
		}

		b, err := p.conn.ReadByte()
		if err != nil {
			return "", ioError("parseTag", err)
		}

		buf = append(buf, b)
	}

	if len(buf) == 0 {
		return "", syntaxError("parseTag", "empty response tag")
	}

	if err := p.expect(' '); err != nil {
		return "", err
	}

	return string(buf), nil
}

// readStringUntil consumes bytes up to and
// including end and returns them without end.
func (p *Parser) readStringUntil(op string, end byte) (string, error) {

	var buf []byte

	for {

		b, err := p.conn.ReadByte()
		if err != nil {
			return "", ioError(op, err)
		}

		if b == end {
			return string(buf), nil
		}

		buf = append(buf, b)
	}
}

func (p *Parser) expect(ch byte) error {

	b, err := p.conn.ReadByte()
	if err != nil {
		return ioError("expect", err)
	}

	if b != ch {
		return syntaxError("expect", "expected 0x%02x (%q) but got 0x%02x (%q)", ch, ch, b, b)
	}

	return nil
}

// onParseError reads a few more bytes so that the
// recorder holds some context including the byte in
// question, then dumps the recorder. It stops at the
// end of a line to not run into the next response.
func (p *Parser) onParseError(err error) {

	for i := 0; i < 4; i++ {

		b, rerr := p.conn.ReadByte()
		if rerr != nil || b == '\n' {
			break
		}
	}

	level.Warn(p.logger).Log(
		"msg", "parse error detected",
		"err", err,
	)

	p.conn.Recorder.DumpRecent()
}
