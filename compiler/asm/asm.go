// Package asm describes x86-64 operands in NASM syntax.
package asm

import (
	"strconv"

	"github.com/nikandfor/hacked/hfmt"
)

type (
	Reg string

	Imm int64

	// Mem is a base register relative memory operand.
	Mem struct {
		Base Reg
		Disp int
		Size string
	}

	// Rel is a rip relative reference to a label.
	Rel struct {
		Label string
	}
)

const (
	RAX Reg = "rax"
	RCX Reg = "rcx"
	RDX Reg = "rdx"
	RSI Reg = "rsi"
	RDI Reg = "rdi"
	RBP Reg = "rbp"
	RSP Reg = "rsp"

	EAX Reg = "eax"
)

const (
	// Acc holds the value of the expression just computed.
	Acc = RAX

	// FrameBase is what local variable offsets are relative to.
	FrameBase = RBP
)

func Local(off int) Mem {
	return Mem{Base: FrameBase, Disp: off}
}

func (m Mem) QWord() Mem {
	m.Size = "qword"
	return m
}

func (r Reg) String() string { return string(r) }

func (x Imm) String() string { return strconv.FormatInt(int64(x), 10) }

func (m Mem) String() string {
	var b []byte

	if m.Size != "" {
		b = append(b, m.Size...)
		b = append(b, ' ')
	}

	if m.Disp == 0 {
		b = hfmt.Appendf(b, "[%v]", m.Base)
	} else {
		b = hfmt.Appendf(b, "[%v%+d]", m.Base, m.Disp)
	}

	return string(b)
}

func (r Rel) String() string {
	return "[rel " + r.Label + "]"
}

// Runtime symbols the generated code links against.
const (
	Printf      = "printf"
	PrintFormat = "fmt_int"
)
