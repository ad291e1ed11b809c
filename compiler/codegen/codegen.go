package codegen

import (
	"context"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/mini/compiler/asm"
	"github.com/slowlang/mini/compiler/ast"
	"github.com/slowlang/mini/compiler/symtab"
)

type (
	// Generator owns the output assembly and the symbol table.
	Generator struct {
		tab *symtab.Table

		b     []byte
		lines []string
	}
)

const entry = "main"

func New() *Generator {
	return &Generator{
		tab: symtab.NewTable(),
	}
}

func (g *Generator) Table() *symtab.Table { return g.tab }

// Lines returns the instructions emitted so far, in emission order.
func (g *Generator) Lines() []string { return g.lines }

// Generate compiles the program into NASM x86-64 assembly.
// Nothing is returned if any error occurs.
func (g *Generator) Generate(ctx context.Context, p *ast.Program) (_ []byte, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "codegen: generate", "stmts", len(p.Stmts))
	defer tr.Finish("err", &err)

	f, err := g.layout(p)
	if err != nil {
		return nil, errors.Wrap(err, "preprocess locals")
	}

	tr.Printw("frame", "locals", len(f.Locals()), "size", f.Size(), "globals", len(g.tab.Globals()))

	g.header()
	g.data()

	err = g.emitBody(ctx, p, f)
	if err != nil {
		g.b = nil
		g.lines = nil

		return nil, errors.Wrap(err, "emit")
	}

	return g.b, nil
}

// layout runs the first pass over a function body.
func (g *Generator) layout(p *ast.Program) (*symtab.Frame, error) {
	b := g.tab.NewBuilder()

	err := p.PreprocessLocals(b)
	if err != nil {
		return nil, err
	}

	return b.Finish(), nil
}

// emitBody runs the second pass. It needs the frame produced by layout.
func (g *Generator) emitBody(ctx context.Context, p *ast.Program, f *symtab.Frame) error {
	g.b = hfmt.Appendf(g.b, "\n\tsection .text\n%s:\n", entry)

	g.EmitLine("push %v", asm.FrameBase)
	g.EmitLine("mov %v, %v", asm.FrameBase, asm.RSP)

	if f.Size() != 0 {
		g.EmitLine("sub %v, %d", asm.RSP, f.Size())
	}

	err := p.Emit(g, f)
	if err != nil {
		return err
	}

	g.EmitLine("xor %v, %v", asm.EAX, asm.EAX)
	g.Epilogue()

	tlog.SpanFromContext(ctx).Printw("emitted", "lines", len(g.lines))

	return nil
}

func (g *Generator) header() {
	g.b = append(g.b, "; generated by mini\n"...)
	g.b = hfmt.Appendf(g.b, "\tdefault rel\n\tglobal %s\n\textern %s\n", entry, asm.Printf)
}

func (g *Generator) data() {
	g.b = hfmt.Appendf(g.b, "\n\tsection .data\n%s:\tdb \"%%ld\", 10, 0\n", asm.PrintFormat)

	for _, e := range g.tab.Globals() {
		g.b = hfmt.Appendf(g.b, "%s:\tdq 0\t; %s, line %d\n", e.Label, e.Name, e.Line)
	}

	g.b = hfmt.Appendf(g.b, "\n\tsection .note.GNU-stack noalloc noexec nowrite progbits\n")
}

// EmitLine appends one instruction to the output.
func (g *Generator) EmitLine(format string, args ...any) {
	l := string(hfmt.Appendf(nil, format, args...))

	g.lines = append(g.lines, l)

	g.b = append(g.b, '\t')
	g.b = append(g.b, l...)
	g.b = append(g.b, '\n')
}

// Epilogue restores the caller frame and returns the accumulator.
func (g *Generator) Epilogue() {
	g.EmitLine("mov %v, %v", asm.RSP, asm.FrameBase)
	g.EmitLine("pop %v", asm.FrameBase)
	g.EmitLine("ret")
}
