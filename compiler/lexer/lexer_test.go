package lexer

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tlog.app/go/errors"
)

type failingReader struct {
	data string
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.data == "" {
		return 0, r.err
	}

	n := copy(p, r.data)
	r.data = r.data[n:]

	return n, nil
}

func lexAll(t *testing.T, src string) []Token {
	t.Helper()

	l := New(strings.NewReader(src))

	var res []Token

	for {
		tk, err := l.Next()
		require.NoError(t, err)

		res = append(res, tk)

		if tk.Kind == EOF {
			return res
		}
	}
}

func TestAssignment(t *testing.T) {
	toks := lexAll(t, "x = 1 + 2")

	assert.Equal(t, []Token{
		{Kind: Identifier, Lexeme: "x", Line: 1},
		{Kind: '=', Lexeme: "=", Line: 1},
		{Kind: IntLiteral, Lexeme: "1", Line: 1},
		{Kind: '+', Lexeme: "+", Line: 1},
		{Kind: IntLiteral, Lexeme: "2", Line: 1},
		{Kind: EOF, Lexeme: "EOF", Line: 1},
	}, toks)
}

func TestOperators(t *testing.T) {
	toks := lexAll(t, "+-*/=;(")

	var kinds []Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}

	assert.Equal(t, []Kind{'+', '-', '*', '/', '=', ';', '(', EOF}, kinds)
}

func TestWhitespaceAndLines(t *testing.T) {
	toks := lexAll(t, " \t a\n\n  b \r\n\tc\n")

	require.Len(t, toks, 4)

	assert.Equal(t, Token{Kind: Identifier, Lexeme: "a", Line: 1}, toks[0])
	assert.Equal(t, Token{Kind: Identifier, Lexeme: "b", Line: 3}, toks[1])
	assert.Equal(t, Token{Kind: Identifier, Lexeme: "c", Line: 4}, toks[2])
	assert.Equal(t, Token{Kind: EOF, Lexeme: "EOF", Line: 5}, toks[3])
}

func TestLongWhitespaceRun(t *testing.T) {
	src := strings.Repeat(" \n\t", 200000) + "x"

	toks := lexAll(t, src)

	require.Len(t, toks, 2)
	assert.Equal(t, Token{Kind: Identifier, Lexeme: "x", Line: 200001}, toks[0])
}

func TestReadUnreadInverse(t *testing.T) {
	const src = "a\n\nb \t9\n"

	l := New(strings.NewReader(src))

	for range []rune(src) {
		before := l.Line()

		c, err := l.read()
		require.NoError(t, err)

		l.unread(c)
		assert.Equal(t, before, l.Line(), "line after unread %q", c)

		again, err := l.read()
		require.NoError(t, err)
		assert.Equal(t, c, again)
	}

	c, err := l.read()
	require.NoError(t, err)
	assert.Equal(t, eof, c)
}

func TestPushBackIsStack(t *testing.T) {
	l := New(strings.NewReader(""))

	l.unread('c')
	l.unread('\n')
	l.unread('a')

	assert.Equal(t, 0, l.Line())

	for _, want := range "a\nc" {
		c, err := l.read()
		require.NoError(t, err)
		assert.Equal(t, want, c)
	}

	assert.Equal(t, 1, l.Line())
}

func TestKeywords(t *testing.T) {
	for _, tc := range []struct {
		src  string
		kind Kind
	}{
		{"global", Global},
		{"local", Local},
		{"return", Return},
		{"print", Print},
		{"int", Int},
		{"globalvar", Identifier},
		{"globalfoo", Identifier},
		{"integer", Identifier},
		{"in", Identifier},
		{"Print", Identifier},
		{"_local", Identifier},
	} {
		toks := lexAll(t, tc.src)

		require.Len(t, toks, 2, "%s", tc.src)
		assert.Equal(t, tc.kind, toks[0].Kind, "%s", tc.src)
		assert.Equal(t, tc.src, toks[0].Lexeme)
	}
}

func TestIntegerLiterals(t *testing.T) {
	toks := lexAll(t, "007 42abc 1;")

	assert.Equal(t, []Token{
		{Kind: IntLiteral, Lexeme: "007", Line: 1},
		{Kind: IntLiteral, Lexeme: "42", Line: 1},
		{Kind: Identifier, Lexeme: "abc", Line: 1},
		{Kind: IntLiteral, Lexeme: "1", Line: 1},
		{Kind: ';', Lexeme: ";", Line: 1},
		{Kind: EOF, Lexeme: "EOF", Line: 1},
	}, toks)
}

func TestUnicodeIdentifiers(t *testing.T) {
	toks := lexAll(t, "переменная $x a_1")

	require.Len(t, toks, 4)

	for i, want := range []string{"переменная", "$x", "a_1"} {
		assert.Equal(t, Identifier, toks[i].Kind)
		assert.Equal(t, want, toks[i].Lexeme)
	}
}

func TestEOFRepeats(t *testing.T) {
	l := New(strings.NewReader("x"))

	tk, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, Identifier, tk.Kind)

	for i := 0; i < 3; i++ {
		tk, err = l.Next()
		require.NoError(t, err)
		assert.Equal(t, EOF, tk.Kind)
	}
}

func TestReadFailure(t *testing.T) {
	boom := errors.New("disk on fire")

	l := New(&failingReader{data: "x = ", err: boom})

	_, err := l.Next()
	require.NoError(t, err)
	_, err = l.Next()
	require.NoError(t, err)

	_, err = l.Next()
	assert.ErrorIs(t, err, boom)
}

func TestOpenMissing(t *testing.T) {
	name := filepath.Join(t.TempDir(), "missing.mini")

	_, err := Open(name)

	var fe *FileAccessError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, name, fe.Path)
	assert.Contains(t, err.Error(), "missing.mini")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "EOF", EOF.String())
	assert.Equal(t, "global", Global.String())
	assert.Equal(t, "';'", Kind(';').String())
	assert.Equal(t, "IntLiteral", IntLiteral.String())
}
