package compiler

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tlog.app/go/errors"

	"github.com/slowlang/mini/compiler/lexer"
	"github.com/slowlang/mini/compiler/parser"
	"github.com/slowlang/mini/compiler/symtab"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()

	name := filepath.Join(t.TempDir(), "prog.mini")

	err := os.WriteFile(name, []byte(src), 0o644)
	require.NoError(t, err)

	return name
}

func TestCompileFile(t *testing.T) {
	name := writeSource(t, "global int x = 1;\nprint x;\n")

	obj, err := CompileFile(context.Background(), name)
	require.NoError(t, err)

	assert.Contains(t, string(obj), "mov [rel g_x], rax")
}

func TestParseFile(t *testing.T) {
	name := writeSource(t, "local int v = 2 * 3 + 4;\nprint v;\n")

	x, err := ParseFile(context.Background(), name)
	require.NoError(t, err)
	assert.Len(t, x.Stmts, 2)
}

func TestFileAccess(t *testing.T) {
	name := filepath.Join(t.TempDir(), "nope.mini")

	_, err := CompileFile(context.Background(), name)

	var fe *lexer.FileAccessError
	require.True(t, errors.As(err, &fe))

	d := Diagnose(name, err)
	assert.Equal(t, 0, d.Line)
	assert.Equal(t, name, d.File)
}

func TestDiagnostics(t *testing.T) {
	ctx := context.Background()

	_, err := Compile(ctx, "a.mini", []byte("local int x;\n\nprint x +;\n"))

	var se *parser.SyntaxError
	require.True(t, errors.As(err, &se))

	d := Diagnose("a.mini", err)
	assert.Equal(t, 3, d.Line)
	assert.Equal(t, `a.mini:3: syntax error: expression expected, got ";"`, d.String())

	obj, err := Compile(ctx, "b.mini", []byte("print 1;\ny = 2;\n"))
	assert.Nil(t, obj)

	var me *symtab.SemanticError
	require.True(t, errors.As(err, &me))

	d = Diagnose("b.mini", err)
	assert.Equal(t, 2, d.Line)
	assert.Equal(t, "b.mini:2: y: undeclared variable", d.String())
}

func TestEndToEnd(t *testing.T) {
	nasm, err := exec.LookPath("nasm")
	if err != nil {
		t.Skip("nasm not found")
	}

	cc, err := exec.LookPath("cc")
	if err != nil {
		t.Skip("cc not found")
	}

	for _, tc := range []struct {
		name string
		src  string
		out  string
		code int
	}{
		{"global", "global int x;\nx = 1;\nprint x;\n", "1\n", 0},
		{"local", "local int v;\nv = 2 * 3 + 4;\nprint v;\n", "10\n", 0},
		{"mixed", "global int g = 100;\nlocal int a = g / 7;\nlocal int b = a - 20;\nprint b;\nprint (a + b) * 2;\n", "-6\n16\n", 0},
		{"return", "local int r = 40 + 2;\nreturn r;\nprint r;\n", "", 42},
	} {
		t.Run(tc.name, func(t *testing.T) {
			obj, err := Compile(context.Background(), tc.name, []byte(tc.src))
			require.NoError(t, err)

			dir := t.TempDir()
			src := filepath.Join(dir, "prog.asm")
			o := filepath.Join(dir, "prog.o")
			exe := filepath.Join(dir, "prog")

			require.NoError(t, os.WriteFile(src, obj, 0o644))

			out, err := exec.Command(nasm, "-f", "elf64", "-o", o, src).CombinedOutput()
			require.NoError(t, err, "nasm: %s\n%s", out, obj)

			out, err = exec.Command(cc, "-o", exe, o).CombinedOutput()
			require.NoError(t, err, "link: %s", out)

			out, err = exec.Command(exe).Output()

			code := 0

			var ee *exec.ExitError
			if errors.As(err, &ee) {
				code = ee.ExitCode()
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tc.out, string(out))
			assert.Equal(t, tc.code, code)
		})
	}
}
