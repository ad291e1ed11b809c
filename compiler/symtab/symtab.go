package symtab

import (
	"fmt"
	"strconv"
)

type (
	Kind int

	Entry struct {
		Name string
		Kind Kind

		Label  string // Global
		Offset int    // Local, relative to the frame base

		Line int
	}

	// Table holds the global scope. It lives for the whole compilation.
	Table struct {
		globals map[string]*Entry
		order   []*Entry
	}

	SemanticError struct {
		Line int
		Name string
		Msg  string
	}
)

const (
	Unknown Kind = iota
	Global
	Local
)

// WordSize is the size of one variable slot in bytes.
const WordSize = 8

func NewTable() *Table {
	return &Table{
		globals: map[string]*Entry{},
	}
}

// DeclareGlobal registers a global variable and assigns it a label.
func (t *Table) DeclareGlobal(name string, line int) (*Entry, error) {
	if prev, ok := t.globals[name]; ok {
		return nil, NewSemanticError(line, name, "global redeclared (previous declaration at line %d)", prev.Line)
	}

	e := &Entry{
		Name:  name,
		Kind:  Global,
		Label: labelFor(name, len(t.order)),
		Line:  line,
	}

	t.globals[name] = e
	t.order = append(t.order, e)

	return e, nil
}

func (t *Table) Global(name string) (Entry, bool) {
	e, ok := t.globals[name]
	if !ok {
		return Entry{}, false
	}

	return *e, true
}

// Globals returns global entries in declaration order.
func (t *Table) Globals() []Entry {
	res := make([]Entry, len(t.order))

	for i, e := range t.order {
		res[i] = *e
	}

	return res
}

// labelFor builds an assembler-safe label.
// Identifiers never start with a digit, so numbered labels can't collide with named ones.
func labelFor(name string, n int) string {
	for _, c := range name {
		if !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return "g_" + strconv.Itoa(n)
		}
	}

	return "g_" + name
}

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "unknown"
	case Global:
		return "global"
	case Local:
		return "local"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func NewSemanticError(line int, name, format string, args ...any) *SemanticError {
	return &SemanticError{
		Line: line,
		Name: name,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("line %d: %v: %v", e.Line, e.Name, e.Msg)
}
