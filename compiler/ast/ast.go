package ast

import (
	"github.com/slowlang/mini/compiler/lexer"
	"github.com/slowlang/mini/compiler/symtab"
)

type (
	// Node is implemented by every syntax tree node.
	//
	// Compilation visits the tree twice. PreprocessLocals lays out the frame of
	// the function body, then Emit generates code using the finished layout.
	// A Frame only comes from Builder.Finish, so Emit can't run before the layout is fixed.
	Node interface {
		Token() lexer.Token

		PrintTree(b []byte, d int) []byte
		PreprocessLocals(b *symtab.Builder) error
		Emit(e Emitter, f *symtab.Frame) error
	}

	// Emitter is the output stream as seen by nodes during emission.
	Emitter interface {
		EmitLine(format string, args ...any)

		// Epilogue emits the return sequence. The value is expected in the accumulator.
		Epilogue()
	}

	Base struct {
		Tok lexer.Token
	}

	// Program is the single function body.
	Program struct {
		Base

		Stmts []Node
	}

	Ident struct {
		Base

		Name string
	}

	IntLit struct {
		Base

		Value int64
	}

	BinOp struct {
		Base

		Op    lexer.Kind
		Left  Node
		Right Node
	}

	Assignment struct {
		Base

		Name *Ident
		Rhs  Node
	}

	Decl struct {
		Base

		Scope symtab.Kind // Global or Local
		Name  *Ident
		Init  Node // optional
	}

	Print struct {
		Base

		Value Node
	}

	Return struct {
		Base

		Value Node // optional
	}
)

func (b Base) Token() lexer.Token { return b.Tok }
