package parser

import (
	"context"
	"fmt"
	"strconv"

	"tlog.app/go/tlog"

	"github.com/slowlang/mini/compiler/ast"
	"github.com/slowlang/mini/compiler/lexer"
	"github.com/slowlang/mini/compiler/symtab"
)

type (
	TokenSource interface {
		Next() (lexer.Token, error)
	}

	Parser struct {
		l   TokenSource
		tok lexer.Token // lookahead
	}

	SyntaxError struct {
		Line int
		Msg  string
	}
)

func New(l TokenSource) *Parser {
	return &Parser{l: l}
}

// Parse reads the whole token stream into a Program.
func Parse(ctx context.Context, l TokenSource) (*ast.Program, error) {
	return New(l).Parse(ctx)
}

func (p *Parser) Parse(ctx context.Context) (x *ast.Program, err error) {
	err = p.advance()
	if err != nil {
		return nil, err
	}

	x = &ast.Program{Base: ast.Base{Tok: p.tok}}

	for p.tok.Kind != lexer.EOF {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}

		x.Stmts = append(x.Stmts, s)
	}

	if tlog.If("parse") {
		tlog.SpanFromContext(ctx).Printw("parsed", "stmts", len(x.Stmts), "lines", p.tok.Line)
	}

	return x, nil
}

func (p *Parser) statement() (ast.Node, error) {
	switch p.tok.Kind {
	case lexer.Global, lexer.Local:
		return p.declaration()
	case lexer.Identifier:
		return p.assignment()
	case lexer.Print:
		return p.print()
	case lexer.Return:
		return p.ret()
	default:
		return nil, p.unexpected("statement")
	}
}

func (p *Parser) declaration() (ast.Node, error) {
	x := &ast.Decl{Base: ast.Base{Tok: p.tok}, Scope: symtab.Local}

	if p.tok.Kind == lexer.Global {
		x.Scope = symtab.Global
	}

	err := p.advance()
	if err != nil {
		return nil, err
	}

	_, err = p.expect(lexer.Int, "type 'int'")
	if err != nil {
		return nil, err
	}

	x.Name, err = p.ident()
	if err != nil {
		return nil, err
	}

	if p.tok.Kind == '=' {
		err = p.advance()
		if err != nil {
			return nil, err
		}

		x.Init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	_, err = p.expect(';', "';'")
	if err != nil {
		return nil, err
	}

	return x, nil
}

func (p *Parser) assignment() (ast.Node, error) {
	name, err := p.ident()
	if err != nil {
		return nil, err
	}

	eq, err := p.expect('=', "'='")
	if err != nil {
		return nil, err
	}

	rhs, err := p.expression()
	if err != nil {
		return nil, err
	}

	_, err = p.expect(';', "';'")
	if err != nil {
		return nil, err
	}

	return &ast.Assignment{Base: ast.Base{Tok: eq}, Name: name, Rhs: rhs}, nil
}

func (p *Parser) print() (ast.Node, error) {
	x := &ast.Print{Base: ast.Base{Tok: p.tok}}

	err := p.advance()
	if err != nil {
		return nil, err
	}

	x.Value, err = p.expression()
	if err != nil {
		return nil, err
	}

	_, err = p.expect(';', "';'")
	if err != nil {
		return nil, err
	}

	return x, nil
}

func (p *Parser) ret() (ast.Node, error) {
	x := &ast.Return{Base: ast.Base{Tok: p.tok}}

	err := p.advance()
	if err != nil {
		return nil, err
	}

	if p.tok.Kind != ';' {
		x.Value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	_, err = p.expect(';', "';'")
	if err != nil {
		return nil, err
	}

	return x, nil
}

func (p *Parser) expression() (ast.Node, error) {
	return p.binary(p.term, '+', '-')
}

func (p *Parser) term() (ast.Node, error) {
	return p.binary(p.factor, '*', '/')
}

// binary parses a left associative chain of operands joined by ops.
func (p *Parser) binary(operand func() (ast.Node, error), ops ...lexer.Kind) (ast.Node, error) {
	l, err := operand()
	if err != nil {
		return nil, err
	}

loop:
	for {
		for _, op := range ops {
			if p.tok.Kind != op {
				continue
			}

			t := p.tok

			err = p.advance()
			if err != nil {
				return nil, err
			}

			r, err := operand()
			if err != nil {
				return nil, err
			}

			l = &ast.BinOp{Base: ast.Base{Tok: t}, Op: op, Left: l, Right: r}

			continue loop
		}

		return l, nil
	}
}

func (p *Parser) factor() (ast.Node, error) {
	switch p.tok.Kind {
	case lexer.IntLiteral:
		t := p.tok

		v, err := strconv.ParseInt(t.Lexeme, 10, 64)
		if err != nil {
			return nil, &SyntaxError{Line: t.Line, Msg: fmt.Sprintf("integer literal out of range: %s", t.Lexeme)}
		}

		err = p.advance()
		if err != nil {
			return nil, err
		}

		return &ast.IntLit{Base: ast.Base{Tok: t}, Value: v}, nil
	case lexer.Identifier:
		return p.ident()
	case '(':
		err := p.advance()
		if err != nil {
			return nil, err
		}

		x, err := p.expression()
		if err != nil {
			return nil, err
		}

		_, err = p.expect(')', "')'")
		if err != nil {
			return nil, err
		}

		return x, nil
	default:
		return nil, p.unexpected("expression")
	}
}

func (p *Parser) ident() (*ast.Ident, error) {
	t, err := p.expect(lexer.Identifier, "identifier")
	if err != nil {
		return nil, err
	}

	return &ast.Ident{Base: ast.Base{Tok: t}, Name: t.Lexeme}, nil
}

// expect consumes the lookahead token if it's of kind k.
func (p *Parser) expect(k lexer.Kind, what string) (t lexer.Token, err error) {
	if p.tok.Kind != k {
		return t, p.unexpected(what)
	}

	t = p.tok

	return t, p.advance()
}

func (p *Parser) advance() (err error) {
	p.tok, err = p.l.Next()

	return err
}

func (p *Parser) unexpected(want string) *SyntaxError {
	got := p.tok.Lexeme
	if p.tok.Kind == lexer.EOF {
		got = "end of file"
	} else {
		got = strconv.Quote(got)
	}

	return &SyntaxError{
		Line: p.tok.Line,
		Msg:  fmt.Sprintf("%s expected, got %s", want, got),
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: syntax error: %s", e.Line, e.Msg)
}
