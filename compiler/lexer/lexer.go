package lexer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

type (
	Lexer struct {
		r *bufio.Reader
		c io.Closer

		unreadRunes []rune // LIFO

		line int
	}

	FileAccessError struct {
		Path string
		Err  error
	}
)

const eof rune = -1

// Open opens the named source file.
// The Lexer owns the file until Close is called.
func Open(name string) (*Lexer, error) {
	f, err := os.Open(name)
	if err != nil {
		path, e := filepath.Abs(name)
		if e != nil {
			path = name
		}

		return nil, &FileAccessError{Path: path, Err: err}
	}

	l := New(f)
	l.c = f

	return l, nil
}

func New(r io.Reader) *Lexer {
	return &Lexer{
		r:    bufio.NewReader(r),
		line: 1,
	}
}

func (l *Lexer) Close() error {
	if l.c == nil {
		return nil
	}

	c := l.c
	l.c = nil

	return c.Close()
}

func (l *Lexer) Line() int { return l.line }

// Next returns the next token.
// At the end of input it returns an EOF token, each time it's called.
func (l *Lexer) Next() (Token, error) {
	var c rune
	var err error

	for {
		c, err = l.read()
		if err != nil {
			return Token{}, err
		}

		if !SpaceAll.Is(c) {
			break
		}
	}

	switch {
	case c == eof:
		return l.token(EOF, "EOF"), nil
	case isDigit(c):
		l.unread(c)

		return l.integer()
	}

	switch c {
	case '+', '-', '*', '/':
		return l.token(Kind(c), string(c)), nil
	case '=':
		return l.token(Kind(c), string(c)), nil
	}

	if !isIdentStart(c) {
		return l.token(Kind(c), string(c)), nil
	}

	l.unread(c)

	lexeme, err := l.identifierOrKeyword()
	if err != nil {
		return Token{}, err
	}

	for _, kw := range keywords {
		if lexeme == kw.Word {
			return l.token(kw.Kind, lexeme), nil
		}
	}

	return l.token(Identifier, lexeme), nil
}

func (l *Lexer) identifierOrKeyword() (string, error) {
	var b strings.Builder

	for {
		c, err := l.read()
		if err != nil {
			return "", err
		}

		if c == eof || !isIdentPart(c) {
			l.unread(c)
			break
		}

		b.WriteRune(c)
	}

	return b.String(), nil
}

func (l *Lexer) integer() (Token, error) {
	var b strings.Builder

	for {
		c, err := l.read()
		if err != nil {
			return Token{}, err
		}

		if !isDigit(c) {
			l.unread(c)
			break
		}

		b.WriteRune(c)
	}

	return l.token(IntLiteral, b.String()), nil
}

func (l *Lexer) token(k Kind, lexeme string) Token {
	return Token{Kind: k, Lexeme: lexeme, Line: l.line}
}

func (l *Lexer) read() (c rune, err error) {
	if n := len(l.unreadRunes); n != 0 {
		c = l.unreadRunes[n-1]
		l.unreadRunes = l.unreadRunes[:n-1]
	} else {
		c, _, err = l.r.ReadRune()
		if err == io.EOF {
			c, err = eof, nil
		}
		if err != nil {
			return 0, err
		}
	}

	if c == '\n' {
		l.line++
	}

	return c, nil
}

func (l *Lexer) unread(c rune) {
	if c == '\n' {
		l.line--
	}

	l.unreadRunes = append(l.unreadRunes, c)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c rune) bool {
	return c == '_' || c == '$' ||
		unicode.IsLetter(c) ||
		unicode.In(c, unicode.Sc, unicode.Pc, unicode.Nl)
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) ||
		unicode.IsDigit(c) ||
		unicode.In(c, unicode.Mn, unicode.Mc)
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("file access: %v: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }
