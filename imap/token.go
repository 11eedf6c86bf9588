package imap

import (
	"fmt"
	"strings"
)

// Structs

// Token is one element of a server response. It is
// exactly one of Atom, Quoted, *Literal or List.
type Token interface {
	isToken()
}

// Atom is an unquoted bareword such as a number,
// a keyword, NIL or a flag.
type Atom string

// Quoted is the content of a double-quoted string.
type Quoted string

// List is a parenthesized or bracketed sequence of
// tokens in order of arrival.
type List []Token

// closer is the marker a tokenizer hands out when it
// consumed a ')' or ']'. It is filtered before tokens
// reach a response.
type closer byte

// Functions

func (Atom) isToken()     {}
func (Quoted) isToken()   {}
func (*Literal) isToken() {}
func (List) isToken()     {}
func (closer) isToken()   {}

// text returns the string content of atoms and
// quoted strings.
func text(t Token) (string, bool) {

	switch v := t.(type) {
	case Atom:
		return string(v), true
	case Quoted:
		return string(v), true
	}

	return "", false
}

// String renders the list for debug output.
func (l List) String() string {

	parts := make([]string, 0, len(l))
	for _, t := range l {
		parts = append(parts, tokenString(t))
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func tokenString(t Token) string {

	switch v := t.(type) {
	case Atom:
		return string(v)
	case Quoted:
		return fmt.Sprintf("%q", string(v))
	case *Literal:
		return fmt.Sprintf("{%d}", v.Size())
	case List:
		return v.String()
	case closer:
		return string([]byte{byte(v)})
	}

	return fmt.Sprintf("%v", t)
}
