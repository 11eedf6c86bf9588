package imap

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Variables

var testList = List{
	Atom("UID"),
	Atom("42"),
	Atom("FLAGS"),
	List{Atom(`\Seen`)},
	Atom("INTERNALDATE"),
	Quoted("17-Jul-1996 02:44:25 -0700"),
	Atom("RFC822.SIZE"),
	Atom("huge"),
}

var dateTests = []struct {
	in  string
	out time.Time
}{
	{"01-Jan-2009 11:20:39 -0800", time.Date(2009, time.January, 1, 19, 20, 39, 0, time.UTC)},
	{" 1-Jan-2009 11:20:39 -0800", time.Date(2009, time.January, 1, 19, 20, 39, 0, time.UTC)},
	{"1-Jan-2009 11:20:39 +0000", time.Date(2009, time.January, 1, 11, 20, 39, 0, time.UTC)},
	{"17-Jul-1996 02:44:25 -0700", time.Date(1996, time.July, 17, 9, 44, 25, 0, time.UTC)},
	{"31-dec-1999 23:59:59 +0100", time.Date(1999, time.December, 31, 22, 59, 59, 0, time.UTC)},
}

// Functions

// TestPositionalAccessors checks typed access by
// index on matching and mismatching elements.
func TestPositionalAccessors(t *testing.T) {

	s, err := testList.StringAt(0)
	assert.Nil(t, err)
	assert.Equal(t, "UID", s)

	s, err = testList.StringAt(5)
	assert.Nil(t, err)
	assert.Equal(t, "17-Jul-1996 02:44:25 -0700", s)

	n, err := testList.NumberAt(1)
	assert.Nil(t, err)
	assert.Equal(t, 42, n)

	l, err := testList.ListAt(3)
	assert.Nil(t, err)
	assert.Equal(t, List{Atom(`\Seen`)}, l)

	d, err := testList.DateAt(5)
	assert.Nil(t, err)
	assert.Equal(t, true, d.Equal(time.Date(1996, time.July, 17, 9, 44, 25, 0, time.UTC)))

	// Wrong variants.
	_, err = testList.ListAt(0)
	assert.Equal(t, true, IsConversion(err))

	_, err = testList.StringAt(3)
	assert.Equal(t, true, IsConversion(err))

	_, err = testList.LiteralAt(0)
	assert.Equal(t, true, IsConversion(err))

	_, err = testList.NumberAt(7)
	assert.Equal(t, true, IsConversion(err))

	_, err = testList.DateAt(7)
	assert.Equal(t, true, IsConversion(err))
	assert.Equal(t, false, IsIO(err))
	assert.Equal(t, false, IsSyntax(err))

	// Out of range.
	_, err = testList.StringAt(8)
	assert.Equal(t, true, IsConversion(err))

	_, err = testList.ListAt(-1)
	assert.Equal(t, true, IsConversion(err))
}

// TestLookupAccessors makes sure the safe variants
// never fail but report absence.
func TestLookupAccessors(t *testing.T) {

	for _, index := range []int{-1, 8, 100} {

		_, ok := testList.LookupList(index)
		assert.Equal(t, false, ok, "index %d", index)

		_, ok = testList.LookupString(index)
		assert.Equal(t, false, ok, "index %d", index)
	}

	_, ok := testList.LookupList(0)
	assert.Equal(t, false, ok)

	_, ok = testList.LookupString(3)
	assert.Equal(t, false, ok)

	l, ok := testList.LookupList(3)
	assert.Equal(t, true, ok)
	assert.Equal(t, 1, len(l))

	s, ok := testList.LookupString(5)
	assert.Equal(t, true, ok)
	assert.Equal(t, "17-Jul-1996 02:44:25 -0700", s)

	var empty List
	_, ok = empty.LookupString(0)
	assert.Equal(t, false, ok)
}

// TestKeyedAccessors checks lookup of the element
// following a key.
func TestKeyedAccessors(t *testing.T) {

	assert.Equal(t, Atom("42"), testList.KeyedValue("UID"))
	assert.Nil(t, testList.KeyedValue("BODY"))
	assert.Nil(t, testList.KeyedValue("huge"))

	n, err := testList.KeyedNumber("UID")
	assert.Nil(t, err)
	assert.Equal(t, 42, n)

	l, err := testList.KeyedList("FLAGS")
	assert.Nil(t, err)
	assert.Equal(t, List{Atom(`\Seen`)}, l)

	s, err := testList.KeyedString("RFC822.SIZE")
	assert.Nil(t, err)
	assert.Equal(t, "huge", s)

	d, err := testList.KeyedDate("INTERNALDATE")
	assert.Nil(t, err)
	assert.Equal(t, 1996, d.Year())

	_, err = testList.KeyedNumber("RFC822.SIZE")
	assert.Equal(t, true, IsConversion(err))

	_, err = testList.KeyedList("UID")
	assert.Equal(t, true, IsConversion(err))

	_, err = testList.KeyedLiteral("UID")
	assert.Equal(t, true, IsConversion(err))

	_, err = testList.KeyedString("BODY")
	assert.Equal(t, true, IsConversion(err))

	_, err = testList.KeyedDate("UID")
	assert.Equal(t, true, IsConversion(err))
}

// TestKeyedLiteral reads a literal by key from a
// parsed FETCH response.
func TestKeyedLiteral(t *testing.T) {

	p, _ := newTestParser("* 1 FETCH (UID 9 RFC822 {4}\r\nbody)\r\n")

	resp, err := p.ReadResponse()
	assert.Nil(t, err)

	fetch, err := resp.ListAt(2)
	assert.Nil(t, err)

	uid, err := fetch.KeyedNumber("UID")
	assert.Nil(t, err)
	assert.Equal(t, 9, uid)

	lit, err := fetch.KeyedLiteral("RFC822")
	assert.Nil(t, err)

	data, err := lit.Bytes()
	assert.Nil(t, err)
	assert.Equal(t, "body", string(data))
}

// TestDates executes a table test on the parsing
// of IMAP date-time values.
func TestDates(t *testing.T) {

	for _, test := range dateTests {

		d, err := List{Quoted(test.in)}.DateAt(0)
		if err != nil {
			t.Fatalf("[imap.TestDates] Expected '%s' to parse but received: %v\n", test.in, err)
		}

		assert.Equal(t, true, test.out.Equal(d), "date %q parsed to %v", test.in, d)
	}

	for _, in := range []string{"", "2009-01-01", "01-Foo-2009 11:20:39 -0800", "01-Jan-2009 11:20:39"} {

		_, err := List{Quoted(in)}.DateAt(0)
		assert.Equal(t, true, IsConversion(err), "date %q", in)
	}
}

// TestNumbers checks decimal parsing.
func TestNumbers(t *testing.T) {

	n, err := List{Atom("0")}.NumberAt(0)
	assert.Nil(t, err)
	assert.Equal(t, 0, n)

	n, err = List{Atom("2147483647")}.NumberAt(0)
	assert.Nil(t, err)
	assert.Equal(t, 2147483647, n)

	for _, in := range []string{"", "12a", "1.5", "NIL", "99999999999999999999999"} {

		_, err := List{Atom(in)}.NumberAt(0)
		assert.Equal(t, true, IsConversion(err), "number %q", in)
	}
}

// TestListString renders nested lists.
func TestListString(t *testing.T) {

	l := List{Atom("FLAGS"), List{Atom(`\Seen`), Quoted("a b")}, newLiteral(nil, 12)}

	assert.Equal(t, `[FLAGS, [\Seen, "a b"], {12}]`, l.String())
	assert.Equal(t, true, strings.HasPrefix((&Response{Tag: "a1", List: l}).String(), "#a1# [FLAGS"))
}
