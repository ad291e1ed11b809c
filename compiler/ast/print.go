package ast

import (
	"github.com/nikandfor/hacked/hfmt"
)

func Dump(x Node) []byte {
	return x.PrintTree(nil, 0)
}

func (x *Program) PrintTree(b []byte, d int) []byte {
	b = app(b, d, "program:\n")

	for _, s := range x.Stmts {
		b = s.PrintTree(b, d+1)
	}

	return b
}

func (x *Ident) PrintTree(b []byte, d int) []byte {
	return app(b, d, "identifier: %s (line %d)\n", x.Name, x.Tok.Line)
}

func (x *IntLit) PrintTree(b []byte, d int) []byte {
	return app(b, d, "int: %d (line %d)\n", x.Value, x.Tok.Line)
}

func (x *BinOp) PrintTree(b []byte, d int) []byte {
	b = app(b, d, "binop: %c (line %d)\n", rune(x.Op), x.Tok.Line)
	b = x.Left.PrintTree(b, d+1)
	b = x.Right.PrintTree(b, d+1)

	return b
}

func (x *Assignment) PrintTree(b []byte, d int) []byte {
	b = app(b, d, "assignment: (line %d)\n", x.Tok.Line)
	b = x.Name.PrintTree(b, d+1)
	b = x.Rhs.PrintTree(b, d+1)

	return b
}

func (x *Decl) PrintTree(b []byte, d int) []byte {
	b = app(b, d, "declaration: %v int (line %d)\n", x.Scope, x.Tok.Line)
	b = x.Name.PrintTree(b, d+1)

	if x.Init != nil {
		b = x.Init.PrintTree(b, d+1)
	}

	return b
}

func (x *Print) PrintTree(b []byte, d int) []byte {
	b = app(b, d, "print: (line %d)\n", x.Tok.Line)
	b = x.Value.PrintTree(b, d+1)

	return b
}

func (x *Return) PrintTree(b []byte, d int) []byte {
	b = app(b, d, "return: (line %d)\n", x.Tok.Line)

	if x.Value != nil {
		b = x.Value.PrintTree(b, d+1)
	}

	return b
}

func app(b []byte, d int, f string, args ...any) []byte {
	for ; d > 0; d-- {
		b = append(b, "  "...)
	}

	b = hfmt.Appendf(b, f, args...)

	return b
}
