package ast

import (
	"github.com/slowlang/mini/compiler/symtab"
)

func (x *Program) PreprocessLocals(b *symtab.Builder) error {
	for _, s := range x.Stmts {
		err := s.PreprocessLocals(b)
		if err != nil {
			return err
		}
	}

	return nil
}

// PreprocessLocals checks the identifier is declared earlier in the program.
func (x *Ident) PreprocessLocals(b *symtab.Builder) error {
	if b.Lookup(x.Name) == symtab.Unknown {
		return symtab.NewSemanticError(x.Tok.Line, x.Name, "undeclared variable")
	}

	return nil
}

func (x *IntLit) PreprocessLocals(b *symtab.Builder) error { return nil }

func (x *BinOp) PreprocessLocals(b *symtab.Builder) error {
	err := x.Left.PreprocessLocals(b)
	if err != nil {
		return err
	}

	return x.Right.PreprocessLocals(b)
}

func (x *Assignment) PreprocessLocals(b *symtab.Builder) error {
	err := x.Name.PreprocessLocals(b)
	if err != nil {
		return err
	}

	return x.Rhs.PreprocessLocals(b)
}

// PreprocessLocals registers the variable after its initializer is checked,
// so the initializer can't refer to the variable itself.
func (x *Decl) PreprocessLocals(b *symtab.Builder) error {
	if x.Init != nil {
		err := x.Init.PreprocessLocals(b)
		if err != nil {
			return err
		}
	}

	switch x.Scope {
	case symtab.Global:
		return b.DeclareGlobal(x.Name.Name, x.Name.Tok.Line)
	case symtab.Local:
		return b.DeclareLocal(x.Name.Name, x.Name.Tok.Line)
	default:
		panic(x.Scope)
	}
}

func (x *Print) PreprocessLocals(b *symtab.Builder) error {
	return x.Value.PreprocessLocals(b)
}

func (x *Return) PreprocessLocals(b *symtab.Builder) error {
	if x.Value == nil {
		return nil
	}

	return x.Value.PreprocessLocals(b)
}
