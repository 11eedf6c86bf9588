package imap

import (
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Constants

// dateTimeLayout matches IMAP date-time values such
// as "01-Jan-2009 11:20:39 -0800". Month names come
// from the fixed English table of package time, the
// day may be space padded.
const dateTimeLayout = "_2-Jan-2006 15:04:05 -0700"

// Functions

func (l List) at(op string, index int) (Token, error) {

	if index < 0 || index >= len(l) {
		return nil, conversionError(op, errors.Errorf("index %d out of range for list of length %d", index, len(l)))
	}

	return l[index], nil
}

// ListAt returns the nested list at index.
func (l List) ListAt(index int) (List, error) {

	t, err := l.at("ListAt", index)
	if err != nil {
		return nil, err
	}

	list, ok := t.(List)
	if !ok {
		return nil, conversionError("ListAt", errors.Errorf("element %d is %s, not a list", index, tokenString(t)))
	}

	return list, nil
}

// LookupList is the safe variant of ListAt. It
// reports false for an index out of range or an
// element that is no list.
func (l List) LookupList(index int) (List, bool) {

	if index < 0 || index >= len(l) {
		return nil, false
	}

	list, ok := l[index].(List)

	return list, ok
}

// StringAt returns the text of the atom or quoted
// string at index.
func (l List) StringAt(index int) (string, error) {

	t, err := l.at("StringAt", index)
	if err != nil {
		return "", err
	}

	s, ok := text(t)
	if !ok {
		return "", conversionError("StringAt", errors.Errorf("element %d is %s, not a string", index, tokenString(t)))
	}

	return s, nil
}

// LookupString is the safe variant of StringAt.
func (l List) LookupString(index int) (string, bool) {

	if index < 0 || index >= len(l) {
		return "", false
	}

	return text(l[index])
}

// LiteralAt returns the literal stream at index.
func (l List) LiteralAt(index int) (*Literal, error) {

	t, err := l.at("LiteralAt", index)
	if err != nil {
		return nil, err
	}

	lit, ok := t.(*Literal)
	if !ok {
		return nil, conversionError("LiteralAt", errors.Errorf("element %d is %s, not a literal", index, tokenString(t)))
	}

	return lit, nil
}

// NumberAt parses the string at index as a
// decimal integer.
func (l List) NumberAt(index int) (int, error) {

	s, err := l.StringAt(index)
	if err != nil {
		return 0, err
	}

	return parseNumber("NumberAt", s)
}

// DateAt parses the string at index as an IMAP
// date-time value.
func (l List) DateAt(index int) (time.Time, error) {

	s, err := l.StringAt(index)
	if err != nil {
		return time.Time{}, err
	}

	return parseDate("DateAt", s)
}

// KeyedValue scans the list for a string equal to
// key and returns the element right after it. Nil
// is returned if key is missing or has no successor.
func (l List) KeyedValue(key string) Token {

	for i := 0; i < len(l)-1; i++ {

		if s, ok := text(l[i]); ok && s == key {
			return l[i+1]
		}
	}

	return nil
}

func (l List) keyed(op string, key string) (Token, error) {

	t := l.KeyedValue(key)
	if t == nil {
		return nil, conversionError(op, errors.Errorf("no value for key %q", key))
	}

	return t, nil
}

// KeyedList returns the list following key.
func (l List) KeyedList(key string) (List, error) {

	t, err := l.keyed("KeyedList", key)
	if err != nil {
		return nil, err
	}

	list, ok := t.(List)
	if !ok {
		return nil, conversionError("KeyedList", errors.Errorf("value of %q is %s, not a list", key, tokenString(t)))
	}

	return list, nil
}

// KeyedString returns the string following key.
func (l List) KeyedString(key string) (string, error) {

	t, err := l.keyed("KeyedString", key)
	if err != nil {
		return "", err
	}

	s, ok := text(t)
	if !ok {
		return "", conversionError("KeyedString", errors.Errorf("value of %q is %s, not a string", key, tokenString(t)))
	}

	return s, nil
}

// KeyedLiteral returns the literal following key.
func (l List) KeyedLiteral(key string) (*Literal, error) {

	t, err := l.keyed("KeyedLiteral", key)
	if err != nil {
		return nil, err
	}

	lit, ok := t.(*Literal)
	if !ok {
		return nil, conversionError("KeyedLiteral", errors.Errorf("value of %q is %s, not a literal", key, tokenString(t)))
	}

	return lit, nil
}

// KeyedNumber returns the decimal integer
// following key, e.g. 175 for UIDNEXT in
// "[UIDNEXT 175]".
func (l List) KeyedNumber(key string) (int, error) {

	s, err := l.KeyedString(key)
	if err != nil {
		return 0, err
	}

	return parseNumber("KeyedNumber", s)
}

// KeyedDate returns the date-time value
// following key, e.g. INTERNALDATE in a FETCH.
func (l List) KeyedDate(key string) (time.Time, error) {

	s, err := l.KeyedString(key)
	if err != nil {
		return time.Time{}, err
	}

	return parseDate("KeyedDate", s)
}

func parseNumber(op string, s string) (int, error) {

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, conversionError(op, errors.Wrapf(err, "invalid number %q", s))
	}

	return n, nil
}

func parseDate(op string, s string) (time.Time, error) {

	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		return time.Time{}, conversionError(op, errors.Wrap(err, "unable to parse IMAP datetime"))
	}

	return t, nil
}
