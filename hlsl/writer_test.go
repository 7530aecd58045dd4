// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"errors"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/gogpu/spvhlsl/spirv"
)

// newTestWriter returns a Writer over an empty module with the given names.
func newTestWriter(t *testing.T, stage Stage, names map[uint32]string) (*Writer, *strings.Builder) {
	t.Helper()
	var out strings.Builder
	opts := DefaultOptions()
	opts.Stage = stage
	w, err := newWriter(&out, &spirv.Module{Names: names}, opts)
	be.Err(t, err, nil)
	return w, &out
}

// feed runs instructions through the writer's handler table.
func feed(t *testing.T, w *Writer, insts ...spirv.Instruction) {
	t.Helper()
	for _, in := range insts {
		h, ok := w.handlers[in.Opcode]
		if !ok {
			t.Fatalf("no handler for %s", in.Opcode)
		}
		if err := h(w, in); err != nil {
			t.Fatalf("%s: %v", in.Opcode, err)
		}
	}
}

// output flushes the writer and returns everything written so far.
func output(t *testing.T, w *Writer, out *strings.Builder) string {
	t.Helper()
	be.Err(t, w.out.Flush(), nil)
	return out.String()
}

func op(opcode spirv.OpCode, operands ...uint32) spirv.Instruction {
	return spirv.Instruction{Opcode: opcode, Operands: operands}
}

func TestWriter_Indentation(t *testing.T) {
	w, out := newTestWriter(t, StageVertex, nil)

	// Initial state
	if w.indent != 0 {
		t.Errorf("initial indent = %d, want 0", w.indent)
	}

	w.pushIndent()
	w.pushIndent()
	if w.indent != 2 {
		t.Errorf("after two pushIndent, indent = %d, want 2", w.indent)
	}
	w.writeLine("a = %d;", 1)
	w.writeLine("")
	w.popIndent()
	w.writeLine("b;")
	w.popIndent()
	w.popIndent()
	if w.indent != 0 {
		t.Errorf("indent below zero: %d", w.indent)
	}
	w.writeLine("}")

	be.Equal(t, output(t, w, out), "        a = 1;\n\n    b;\n}\n")
}

func TestWriter_FallbackAPI(t *testing.T) {
	w, out := newTestWriter(t, StageFragment, map[uint32]string{3: "tex"})
	w.options.Target = "sm3"

	be.Equal(t, w.Stage(), StageFragment)
	be.Equal(t, w.Target(), any("sm3"))

	name, ok := w.Name(3)
	be.True(t, ok)
	be.Equal(t, name, "tex")
	_, ok = w.Name(4)
	be.True(t, !ok)

	feed(t, w, op(spirv.OpTypeFloat, 1, 32))
	typ, ok := w.Type(1)
	be.True(t, ok)
	be.Equal(t, typ, Type(ScalarType{}))

	w.Indent()
	w.WriteLine("x = %s;", "y")
	w.Dedent()
	w.Diagnose(ErrUnsupportedFeature, 9, "thing %d", 1)

	be.Equal(t, output(t, w, out), "    x = y;\n")
	be.Equal(t, w.diagnostics, []Diagnostic{{Kind: ErrUnsupportedFeature, ID: 9, Message: "thing 1"}})
}

// failingWriter rejects every write.
type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errDiskFull
}

func TestWriter_WriteErrorIsIO(t *testing.T) {
	module := mustAssemble(t, fragmentSource)

	_, err := Translate(failingWriter{}, module, fragmentOptions())
	be.True(t, err != nil)

	var herr *Error
	be.True(t, errors.As(err, &herr))
	be.True(t, herr.IsIO())
	be.True(t, errors.Is(err, errDiskFull))
}

func TestWriter_StickyError(t *testing.T) {
	w, _ := newTestWriter(t, StageVertex, nil)
	w.out.Reset(failingWriter{})

	// Fill the buffer so the underlying writer is reached.
	w.writeLine("%s", strings.Repeat("x", 8192))
	be.True(t, w.err != nil)

	first := w.err
	w.writeLine("more")
	be.Equal(t, w.err, first)
}
