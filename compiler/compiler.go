package compiler

import (
	"bytes"
	"context"
	"io"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/mini/compiler/ast"
	"github.com/slowlang/mini/compiler/codegen"
	"github.com/slowlang/mini/compiler/lexer"
	"github.com/slowlang/mini/compiler/parser"
	"github.com/slowlang/mini/compiler/symtab"
)

type (
	// Diagnostic is a compile failure as reported to the user.
	Diagnostic struct {
		File string
		Line int // 0 if unknown
		Msg  string
	}
)

func CompileFile(ctx context.Context, name string) (obj []byte, err error) {
	l, err := lexer.Open(name)
	if err != nil {
		return nil, err
	}

	defer closeIt(l, &err)

	tlog.SpanFromContext(ctx).Printw("open file", "name", name)

	return compile(ctx, l)
}

func Compile(ctx context.Context, name string, text []byte) (obj []byte, err error) {
	tlog.SpanFromContext(ctx).Printw("compile text", "size", len(text), "name", name)

	return compile(ctx, lexer.New(bytes.NewReader(text)))
}

func ParseFile(ctx context.Context, name string) (x *ast.Program, err error) {
	l, err := lexer.Open(name)
	if err != nil {
		return nil, err
	}

	defer closeIt(l, &err)

	return parser.Parse(ctx, l)
}

func compile(ctx context.Context, l *lexer.Lexer) (obj []byte, err error) {
	x, err := parser.Parse(ctx, l)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	if tlog.If("ast") {
		tlog.SpanFromContext(ctx).Printw("abstract syntax tree", "tree", ast.Dump(x))
	}

	obj, err = codegen.New().Generate(ctx, x)
	if err != nil {
		return nil, errors.Wrap(err, "generate")
	}

	return obj, nil
}

// Diagnose turns a compile error into a single diagnostic with the best known line.
func Diagnose(name string, err error) Diagnostic {
	d := Diagnostic{File: name, Msg: err.Error()}

	var fe *lexer.FileAccessError
	var se *parser.SyntaxError
	var me *symtab.SemanticError

	switch {
	case errors.As(err, &fe):
		d.File = fe.Path
		d.Msg = fe.Err.Error()
	case errors.As(err, &se):
		d.Line = se.Line
		d.Msg = "syntax error: " + se.Msg
	case errors.As(err, &me):
		d.Line = me.Line
		d.Msg = me.Name + ": " + me.Msg
	}

	return d
}

func (d Diagnostic) String() string {
	b := append([]byte{}, d.File...)

	if d.Line != 0 {
		b = hfmt.Appendf(b, ":%d", d.Line)
	}

	b = hfmt.Appendf(b, ": %s", d.Msg)

	return string(b)
}

func closeIt(c io.Closer, errp *error) {
	err := c.Close()
	if *errp == nil && err != nil {
		*errp = errors.Wrap(err, "close")
	}
}
