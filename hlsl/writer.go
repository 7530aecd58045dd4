// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"bufio"
	"fmt"
	"io"
	"maps"

	"github.com/gogpu/spvhlsl/spirv"
)

// handler translates one instruction.
type handler func(w *Writer, inst spirv.Instruction) error

// coreHandlers lists the opcodes the translator itself lowers.
// Fallbacks may not claim any of them.
var coreHandlers = map[spirv.OpCode]handler{
	spirv.OpExecutionMode:          (*Writer).writeExecutionMode,
	spirv.OpTypeFloat:              (*Writer).writeTypeFloat,
	spirv.OpTypeVector:             (*Writer).writeTypeVector,
	spirv.OpTypeMatrix:             (*Writer).writeTypeMatrix,
	spirv.OpTypeArray:              (*Writer).writeTypeArray,
	spirv.OpTypeSampler:            (*Writer).writeTypeSampler,
	spirv.OpTypeSampledImage:       (*Writer).writeTypeSampler,
	spirv.OpTypePointer:            (*Writer).writeTypePointer,
	spirv.OpDecorate:               (*Writer).writeDecorate,
	spirv.OpVariable:               (*Writer).writeVariable,
	spirv.OpFunction:               (*Writer).writeFunction,
	spirv.OpCompositeConstruct:     (*Writer).writeCompositeConstruct,
	spirv.OpImageSampleImplicitLod: (*Writer).writeImageSample,
	spirv.OpStore:                  (*Writer).writeStore,
	spirv.OpReturn:                 (*Writer).writeReturn,
}

// Writer holds the state of one stage translation. Nothing in it outlives
// the Translate call that created it.
//
// Fallback implementations receive the Writer and use its exported
// methods to read tables, bind expressions and emit statements.
type Writer struct {
	options *Options
	module  *spirv.Module

	// Output sink
	out    *bufio.Writer
	indent int
	err    error

	// Tables
	types      map[uint32]Type
	variables  map[uint32]*Variable
	references map[uint32]Expr
	names      map[uint32]string
	builtins   map[uint32]bool

	headerWritten bool
	functionSeen  bool
	handlers      map[spirv.OpCode]handler

	// Results
	attributes  map[string]int
	diagnostics []Diagnostic
}

// newWriter creates a Writer and its opcode table.
func newWriter(out io.Writer, module *spirv.Module, options *Options) (*Writer, error) {
	w := &Writer{
		options:    options,
		module:     module,
		out:        bufio.NewWriter(out),
		types:      make(map[uint32]Type),
		variables:  make(map[uint32]*Variable),
		references: make(map[uint32]Expr),
		names:      maps.Clone(module.Names),
		builtins:   make(map[uint32]bool),
		handlers:   make(map[spirv.OpCode]handler, len(coreHandlers)),
		attributes: make(map[string]int),
	}
	if w.names == nil {
		w.names = make(map[uint32]string)
	}

	for op, h := range coreHandlers {
		w.handlers[op] = h
	}
	if fb := options.Fallback; fb != nil {
		emit := func(w *Writer, inst spirv.Instruction) error {
			return fb.Emit(w, inst)
		}
		for _, op := range fb.Opcodes() {
			if _, taken := w.handlers[op]; taken {
				return nil, &Error{
					Kind:    ErrInvalidOptions,
					Message: fmt.Sprintf("fallback claims %s, which the translator handles", op),
				}
			}
			w.handlers[op] = emit
		}
	}

	return w, nil
}

// translate runs the single forward pass over the instruction stream.
func (w *Writer) translate() error {
	for i, inst := range w.module.Instructions {
		h, ok := w.handlers[inst.Opcode]
		if !ok {
			if w.options.Strict {
				return fmt.Errorf("instruction %d: %w", i, newIDError(ErrUnhandledOpcode, resultOf(inst), "no handler for %s", inst.Opcode))
			}
			w.Diagnose(ErrUnhandledOpcode, resultOf(inst), "no handler for %s", inst.Opcode)
			continue
		}
		if err := h(w, inst); err != nil {
			return fmt.Errorf("instruction %d (%s): %w", i, inst.Opcode, err)
		}
		if w.err != nil {
			return &Error{Kind: ErrIO, Message: "write failed", Err: w.err}
		}
	}

	if err := w.out.Flush(); err != nil {
		return &Error{Kind: ErrIO, Message: "flush failed", Err: err}
	}
	return nil
}

// =============================================================================
// Fallback API
// =============================================================================

// Stage returns the shader stage being translated.
func (w *Writer) Stage() Stage {
	return w.options.Stage
}

// Target returns the opaque handle from Options.Target.
func (w *Writer) Target() any {
	return w.options.Target
}

// Name returns the debug name of id.
func (w *Writer) Name(id uint32) (string, bool) {
	name, ok := w.names[id]
	return name, ok
}

// Type returns the descriptor of a type id.
func (w *Writer) Type(id uint32) (Type, bool) {
	t, ok := w.types[id]
	return t, ok
}

// Diagnose records a recoverable problem.
func (w *Writer) Diagnose(kind ErrorKind, id uint32, format string, args ...any) {
	w.diagnostics = append(w.diagnostics, Diagnostic{
		Kind:    kind,
		ID:      id,
		Message: fmt.Sprintf(format, args...),
	})
}

// WriteLine writes one indented line of output.
//
//nolint:goprintffuncname
func (w *Writer) WriteLine(format string, args ...any) {
	w.writeLine(format, args...)
}

// Indent increases the indentation of following lines.
func (w *Writer) Indent() {
	w.pushIndent()
}

// Dedent decreases the indentation of following lines.
func (w *Writer) Dedent() {
	w.popIndent()
}

// =============================================================================
// Output helpers
// =============================================================================

// writeLine writes a line with optional format args and a newline.
// Empty lines carry no indentation. After a write error the sink drops
// all output and the error surfaces when the current instruction ends.
//
//nolint:goprintffuncname
func (w *Writer) writeLine(format string, args ...any) {
	if w.err != nil {
		return
	}
	if format != "" {
		w.writeIndent()
	}
	if len(args) == 0 {
		_, w.err = w.out.WriteString(format)
	} else {
		_, w.err = fmt.Fprintf(w.out, format, args...)
	}
	if w.err == nil {
		w.err = w.out.WriteByte('\n')
	}
}

// writeIndent writes the current indentation.
func (w *Writer) writeIndent() {
	for i := 0; i < w.indent && w.err == nil; i++ {
		_, w.err = w.out.WriteString("    ")
	}
}

// pushIndent increases indentation.
func (w *Writer) pushIndent() {
	w.indent++
}

// popIndent decreases indentation.
func (w *Writer) popIndent() {
	if w.indent > 0 {
		w.indent--
	}
}
