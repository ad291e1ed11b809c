package symtab

import (
	"fmt"

	"tlog.app/go/loc"
	"tlog.app/go/tlog"
)

type (
	// Builder collects the layout of one function body during the preprocessing pass.
	Builder struct {
		t *Table

		locals map[string]*Entry
		order  []*Entry

		done bool
	}

	// Frame is the finished layout of a function body.
	// It can only be obtained from Builder.Finish and never changes.
	Frame struct {
		t *Table

		locals map[string]Entry
		order  []Entry

		size int

		from loc.PC
	}
)

// NewBuilder opens a local scope for a function body.
func (t *Table) NewBuilder() *Builder {
	return &Builder{
		t:      t,
		locals: map[string]*Entry{},
	}
}

func (b *Builder) DeclareGlobal(name string, line int) error {
	b.check()

	if prev, ok := b.locals[name]; ok {
		return NewSemanticError(line, name, "global conflicts with local declared at line %d", prev.Line)
	}

	_, err := b.t.DeclareGlobal(name, line)

	return err
}

// DeclareLocal assigns the next stack slot to the variable.
// Slots grow downwards from the frame base, one word each.
func (b *Builder) DeclareLocal(name string, line int) error {
	b.check()

	if prev, ok := b.locals[name]; ok {
		return NewSemanticError(line, name, "local redeclared (previous declaration at line %d)", prev.Line)
	}

	if prev, ok := b.t.globals[name]; ok {
		return NewSemanticError(line, name, "local conflicts with global declared at line %d", prev.Line)
	}

	e := &Entry{
		Name:   name,
		Kind:   Local,
		Offset: -WordSize * (len(b.order) + 1),
		Line:   line,
	}

	b.locals[name] = e
	b.order = append(b.order, e)

	return nil
}

// Lookup reports what name resolves to among the declarations seen so far.
func (b *Builder) Lookup(name string) Kind {
	if _, ok := b.locals[name]; ok {
		return Local
	}

	if _, ok := b.t.globals[name]; ok {
		return Global
	}

	return Unknown
}

// Finish fixes the frame layout. The Builder can't be used after that.
func (b *Builder) Finish() *Frame {
	b.check()
	b.done = true

	f := &Frame{
		t:      b.t,
		locals: make(map[string]Entry, len(b.order)),
		order:  make([]Entry, len(b.order)),
		from:   loc.Caller(1),
	}

	for i, e := range b.order {
		f.locals[e.Name] = *e
		f.order[i] = *e
	}

	f.size = alignFrame(WordSize * len(b.order))

	if tlog.If("frame") {
		for _, e := range f.order {
			tlog.Printw("frame slot", "name", e.Name, "offset", e.Offset, "line", e.Line)
		}
	}

	tlog.V("frame").Printw("frame layout fixed", "locals", len(f.order), "size", f.size, "from", f.from)

	return f
}

func (b *Builder) check() {
	if b.done {
		panic("symtab: frame builder used after Finish")
	}
}

func (f *Frame) Resolve(name string) Kind {
	f.check()

	if _, ok := f.locals[name]; ok {
		return Local
	}

	if _, ok := f.t.globals[name]; ok {
		return Global
	}

	return Unknown
}

// GlobalLabel returns the label of a global variable.
// Asking for anything but a resolved global is a programming error.
func (f *Frame) GlobalLabel(name string) string {
	f.check()

	if _, ok := f.locals[name]; ok {
		panic(fmt.Sprintf("symtab: %q is a local, not a global", name))
	}

	e, ok := f.t.globals[name]
	if !ok {
		panic(fmt.Sprintf("symtab: no global %q", name))
	}

	return e.Label
}

// LocalOffset returns the stack offset of a local variable relative to the frame base.
// Asking for anything but a resolved local is a programming error.
func (f *Frame) LocalOffset(name string) int {
	f.check()

	e, ok := f.locals[name]
	if !ok {
		panic(fmt.Sprintf("symtab: no local %q in frame fixed at %v", name, f.from))
	}

	return e.Offset
}

// Size is the number of bytes to reserve below the frame base, kept 16 byte aligned.
func (f *Frame) Size() int { return f.size }

func (f *Frame) Locals() []Entry {
	return append([]Entry(nil), f.order...)
}

func (f *Frame) check() {
	if f == nil || f.t == nil {
		panic("symtab: frame not produced by Builder.Finish")
	}
}

func alignFrame(n int) int {
	return (n + 15) &^ 15
}
