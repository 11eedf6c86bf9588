package imap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Variables

var alertTests = []struct {
	in    string
	alert string
	ok    bool
}{
	{"* OK [ALERT] disk full\r\n", "disk full", true},
	{"* NO [alert] quota   exceeded soon\r\n", "quota exceeded soon", true},
	{"a2 NO [ALERT] \"mailbox\" locked\r\n", "mailbox locked", true},
	{"* OK [ALERT]\r\n", "", true},
	{"* OK [UIDNEXT 175] Predicted next UID\r\n", "", false},
	{"* OK disk full\r\n", "", false},
	{"* OK\r\n", "", false},
	{"* OK []\r\n", "", false},
}

// Functions

// TestAlertText executes a table test on the
// extraction of ALERT response codes.
func TestAlertText(t *testing.T) {

	for _, test := range alertTests {

		p, _ := newTestParser(test.in)

		resp, err := p.ReadResponse()
		if err != nil {
			t.Fatalf("[imap.TestAlertText] Unexpected error for %q: %v\n", test.in, err)
		}

		alert, ok := resp.AlertText()
		assert.Equal(t, test.ok, ok, "input %q", test.in)
		assert.Equal(t, test.alert, alert, "input %q", test.in)
	}

	resp := &Response{List: List{Atom("OK"), List{Atom("ALERT")}, Atom("disk"), Atom("full")}}

	alert, ok := resp.AlertText()
	assert.Equal(t, true, ok)
	assert.Equal(t, "disk full", alert)
}

// TestMaterializeNested replaces a literal that
// ends a nested list.
func TestMaterializeNested(t *testing.T) {

	p, _ := newTestParser("* 7 FETCH (RFC822.HEADER {9}\r\nSubject:x)\r\n")

	resp, err := p.ReadResponse()
	assert.Nil(t, err)
	assert.Equal(t, false, resp.Completed())

	assert.Nil(t, resp.Materialize())

	header := resp.KeyedValue("FETCH")
	assert.Equal(t, List{Atom("RFC822.HEADER"), Quoted("Subject:x")}, header)

	more, err := p.Resume(resp)
	assert.Nil(t, err)
	assert.Equal(t, false, more)

	s, err := resp.List[2].(List).KeyedString("RFC822.HEADER")
	assert.Nil(t, err)
	assert.Equal(t, "Subject:x", s)

	// Nothing to do without a literal.
	nothing := &Response{List: List{Atom("OK")}}
	assert.Nil(t, nothing.Materialize())
	assert.Equal(t, List{Atom("OK")}, nothing.List)

	assert.Nil(t, (&Response{}).Materialize())
}

// TestAppendAll merges a continuation of a
// response into another one.
func TestAppendAll(t *testing.T) {

	p, _ := newTestParser("* 1 FETCH (BODY[] {1}\r\nx)\r\n* 2 EXISTS\r\n")

	first, err := p.ReadResponse()
	assert.Nil(t, err)
	assert.Equal(t, false, first.Completed())

	_, err = p.Resume(first)
	assert.Nil(t, err)

	second, err := p.ReadResponse()
	assert.Nil(t, err)

	merged := &Response{List: List{}}
	merged.AppendAll(first)
	merged.AppendAll(second)

	assert.Equal(t, 5, len(merged.List))
	assert.Equal(t, true, merged.Completed())
}
