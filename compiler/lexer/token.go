package lexer

import (
	"fmt"
	"strconv"
)

type (
	// Kind classifies a Token.
	// Single character tokens have a Kind equal to the character itself.
	Kind int32

	Token struct {
		Kind   Kind
		Lexeme string
		Line   int
	}
)

const (
	EOF Kind = -1 - iota
	IntLiteral
	Identifier
	Global
	Local
	Return
	Print
	Int
)

var keywords = []struct {
	Word string
	Kind Kind
}{
	{"global", Global},
	{"local", Local},
	{"return", Return},
	{"print", Print},
	{"int", Int},
}

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case IntLiteral:
		return "IntLiteral"
	case Identifier:
		return "Identifier"
	}

	for _, kw := range keywords {
		if kw.Kind == k {
			return kw.Word
		}
	}

	if k >= 0 {
		return strconv.QuoteRune(rune(k))
	}

	return fmt.Sprintf("Kind(%d)", int32(k))
}

func (t Token) String() string {
	switch t.Kind {
	case IntLiteral, Identifier:
		return fmt.Sprintf("%v(%q)@%d", t.Kind, t.Lexeme, t.Line)
	default:
		return fmt.Sprintf("%v@%d", t.Kind, t.Line)
	}
}
