package lexer

import "unicode"

type Spaces uint64

var SpaceAll = NewSpaces(' ', '\t', '\r', '\n', '\v', '\f')

func NewSpaces(skip ...byte) (ss Spaces) {
	for _, q := range skip {
		if q >= 64 {
			panic("too high char code")
		}

		ss |= 1 << q
	}

	return
}

func (s Spaces) Is(r rune) bool {
	if r >= 0 && r < 64 {
		return s&(1<<r) != 0
	}

	return r >= 0x80 && unicode.IsSpace(r)
}
