package ast

import (
	"github.com/slowlang/mini/compiler/asm"
	"github.com/slowlang/mini/compiler/symtab"
)

// Every Emit leaves the value it computes, if any, in asm.Acc.

func (x *Program) Emit(e Emitter, f *symtab.Frame) error {
	for _, s := range x.Stmts {
		err := s.Emit(e, f)
		if err != nil {
			return err
		}
	}

	return nil
}

func (x *IntLit) Emit(e Emitter, f *symtab.Frame) error {
	e.EmitLine("mov %v, %v", asm.Acc, asm.Imm(x.Value))

	return nil
}

func (x *Ident) Emit(e Emitter, f *symtab.Frame) error {
	switch f.Resolve(x.Name) {
	case symtab.Global:
		e.EmitLine("mov %v, %v", asm.Acc, asm.Rel{Label: f.GlobalLabel(x.Name)})
	case symtab.Local:
		e.EmitLine("mov %v, %v", asm.Acc, asm.Local(f.LocalOffset(x.Name)))
	default:
		return symtab.NewSemanticError(x.Tok.Line, x.Name, "unknown variable")
	}

	return nil
}

func (x *BinOp) Emit(e Emitter, f *symtab.Frame) error {
	err := x.Left.Emit(e, f)
	if err != nil {
		return err
	}

	e.EmitLine("push %v", asm.Acc)

	err = x.Right.Emit(e, f)
	if err != nil {
		return err
	}

	e.EmitLine("mov %v, %v", asm.RCX, asm.Acc)
	e.EmitLine("pop %v", asm.Acc)

	switch x.Op {
	case '+':
		e.EmitLine("add %v, %v", asm.Acc, asm.RCX)
	case '-':
		e.EmitLine("sub %v, %v", asm.Acc, asm.RCX)
	case '*':
		e.EmitLine("imul %v, %v", asm.Acc, asm.RCX)
	case '/':
		e.EmitLine("cqo")
		e.EmitLine("idiv %v", asm.RCX)
	default:
		panic(x.Op)
	}

	return nil
}

func (x *Assignment) Emit(e Emitter, f *symtab.Frame) error {
	err := x.Rhs.Emit(e, f)
	if err != nil {
		return err
	}

	return store(e, f, x.Name)
}

func (x *Decl) Emit(e Emitter, f *symtab.Frame) error {
	if x.Init != nil {
		err := x.Init.Emit(e, f)
		if err != nil {
			return err
		}

		return store(e, f, x.Name)
	}

	if x.Scope == symtab.Local {
		e.EmitLine("mov %v, 0", asm.Local(f.LocalOffset(x.Name.Name)).QWord())
	}

	// globals are zeroed in the data section

	return nil
}

func (x *Print) Emit(e Emitter, f *symtab.Frame) error {
	err := x.Value.Emit(e, f)
	if err != nil {
		return err
	}

	e.EmitLine("mov %v, %v", asm.RSI, asm.Acc)
	e.EmitLine("lea %v, %v", asm.RDI, asm.Rel{Label: asm.PrintFormat})
	e.EmitLine("xor %v, %v", asm.EAX, asm.EAX)
	e.EmitLine("call %v wrt ..plt", asm.Printf)

	return nil
}

func (x *Return) Emit(e Emitter, f *symtab.Frame) error {
	if x.Value != nil {
		err := x.Value.Emit(e, f)
		if err != nil {
			return err
		}
	} else {
		e.EmitLine("xor %v, %v", asm.EAX, asm.EAX)
	}

	e.Epilogue()

	return nil
}

func store(e Emitter, f *symtab.Frame, id *Ident) error {
	switch f.Resolve(id.Name) {
	case symtab.Global:
		e.EmitLine("mov %v, %v", asm.Rel{Label: f.GlobalLabel(id.Name)}, asm.Acc)
	case symtab.Local:
		e.EmitLine("mov %v, %v", asm.Local(f.LocalOffset(id.Name)), asm.Acc)
	default:
		return symtab.NewSemanticError(id.Tok.Line, id.Name, "unknown variable")
	}

	return nil
}
