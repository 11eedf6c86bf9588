package imap

import (
	"fmt"
	"io"
	"strings"
)

// Structs

// Response represents a single response line of
// an IMAP server. Tagged responses carry a non-empty
// Tag, untagged and continuation responses do not.
// A response contains all tokens read so far: either
// the complete line or everything up to and including
// the first literal. In the latter case Completed
// reports false and the caller has to consume the
// literal and call Resume on the parser.
type Response struct {
	List

	Tag                 string
	ContinuationRequest bool

	completed bool
}

// ResponseReader is implemented by Parser and by
// the logging and metrics wrappers around it.
type ResponseReader interface {
	ReadResponse() (*Response, error)
	Resume(resp *Response) (bool, error)
}

// Functions

// ReadResponse reads the next response from the
// connection. A literal of the previous response
// that was not consumed is discarded first. If the
// stream ends right before a response, io.EOF is
// returned unwrapped.
func (p *Parser) ReadResponse() (*Response, error) {

	resp, err := p.readResponse()
	if err == io.EOF {
		return nil, err
	}

	if err != nil {
		p.onParseError(err)
		return nil, err
	}

	return resp, nil
}

func (p *Parser) readResponse() (*Response, error) {

	// Finish a response the caller abandoned, so
	// that the next line starts a new response.
	if p.inFlight != nil {

		prev := p.inFlight
		p.inFlight = nil

		for !prev.completed {

			if err := p.readTokens(prev); err != nil {
				return nil, err
			}
		}
	}

	if err := p.drainActive(); err != nil {
		return nil, err
	}

	ch, err := p.conn.Peek()
	if err == io.EOF {
		return nil, io.EOF
	}

	if err != nil {
		return nil, ioError("ReadResponse", err)
	}

	resp := &Response{
		List: List{},
	}

	switch ch {

	case '*':

		// * OK [UIDNEXT 175] Predicted next UID
		if err := p.expect('*'); err != nil {
			return nil, err
		}

		if err := p.expect(' '); err != nil {
			return nil, err
		}

	case '+':

		// + idling
		if err := p.expect('+'); err != nil {
			return nil, err
		}

		if err := p.expect(' '); err != nil {
			return nil, err
		}

		resp.ContinuationRequest = true

	default:

		// 3 OK [READ-WRITE] Select completed.
		tag, err := p.parseTag()
		if err != nil {
			return nil, err
		}

		resp.Tag = tag
	}

	if err := p.readTokens(resp); err != nil {
		return nil, err
	}

	if !resp.completed {
		p.inFlight = resp
	}

	return resp, nil
}

// Resume continues reading an incomplete response
// after its trailing literal was consumed. Newly read
// tokens are appended to resp. The returned boolean
// is true if another literal interrupted the line
// again. Calling Resume on a completed response does
// nothing and reports false.
func (p *Parser) Resume(resp *Response) (bool, error) {

	if resp.completed {
		return false, nil
	}

	if err := p.readTokens(resp); err != nil {
		p.inFlight = nil
		p.onParseError(err)
		return false, err
	}

	if resp.completed && p.inFlight == resp {
		p.inFlight = nil
	}

	return !resp.completed, nil
}

// readTokens appends tokens to resp until the line
// ends or a literal was handed out.
func (p *Parser) readTokens(resp *Response) error {

	for {

		t, err := p.readToken()
		if err != nil {
			return err
		}

		if t == nil {
			resp.completed = true
			return nil
		}

		resp.List = append(resp.List, t)

		if p.active != nil {
			resp.completed = false
			return nil
		}

		// A list left open consumed the line end.
		if p.lineEnded {
			resp.completed = true
			return nil
		}
	}
}

// Completed returns whether the whole response line
// has been read.
func (r *Response) Completed() bool {
	return r.completed
}

// PendingLiteral returns the literal that
// interrupted an incomplete response, nil for a
// completed one.
func (r *Response) PendingLiteral() *Literal {

	if r.completed {
		return nil
	}

	return trailingLiteral(r.List)
}

// Tagged returns true for command completion
// responses.
func (r *Response) Tagged() bool {
	return r.Tag != ""
}

// Materialize replaces a trailing literal by its
// content read into memory. The literal may be the
// last element of a trailing nested list as well.
// Use this only when no further list structure
// follows the literal on the wire.
func (r *Response) Materialize() error {
	return materialize(r.List)
}

func materialize(l List) error {

	last := len(l) - 1
	if last < 0 {
		return nil
	}

	switch t := l[last].(type) {

	case *Literal:

		data, err := t.Bytes()
		if err != nil {
			return ioError("Materialize", err)
		}

		l[last] = Quoted(data)

	case List:
		return materialize(t)
	}

	return nil
}

// AppendAll appends all elements of other to r and
// takes over its completion state.
func (r *Response) AppendAll(other *Response) {

	r.List = append(r.List, other.List...)
	r.completed = other.completed
}

// AlertText converts a response like
// "* OK [ALERT] disk is full" into "disk is full".
// The boolean is false if r carries no ALERT code.
func (r *Response) AlertText() (string, bool) {

	if len(r.List) < 2 {
		return "", false
	}

	code, ok := r.LookupList(1)
	if !ok {
		return "", false
	}

	name, ok := code.LookupString(0)
	if !ok || !strings.EqualFold(name, "ALERT") {
		return "", false
	}

	parts := make([]string, 0, len(r.List)-2)
	for _, t := range r.List[2:] {

		if s, ok := text(t); ok {
			parts = append(parts, s)
		} else {
			parts = append(parts, tokenString(t))
		}
	}

	return strings.Join(parts, " "), true
}

// String renders the response for debug output.
func (r *Response) String() string {
	return fmt.Sprintf("#%s# %s", r.Tag, r.List.String())
}
