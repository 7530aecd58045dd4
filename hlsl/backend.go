// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/spvhlsl/spirv"
)

// Stage is the shader stage being translated.
type Stage uint8

const (
	// StageVertex translates a vertex shader.
	StageVertex Stage = iota

	// StageFragment translates a fragment (pixel) shader.
	StageFragment
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// Fallback lowers the opcodes the translator does not handle itself.
//
// Opcodes returns the opcodes the fallback owns; it must not include any
// opcode the translator handles. Emit is called once per owned instruction.
type Fallback interface {
	Opcodes() []spirv.OpCode
	Emit(w *Writer, inst spirv.Instruction) error
}

// Options configures HLSL translation.
type Options struct {
	// Stage selects the semantics used for builtin inputs and outputs.
	Stage Stage

	// Fallback handles opcodes outside the translator's own set.
	// Nil leaves them unhandled.
	Fallback Fallback

	// Target is passed through, unexamined, to the fallback.
	Target any

	// Strict aborts translation on an unhandled opcode instead of
	// recording a diagnostic.
	Strict bool
}

// DefaultOptions returns options for a vertex shader using the CStyle fallback.
func DefaultOptions() *Options {
	return &Options{
		Stage:    StageVertex,
		Fallback: CStyle{},
	}
}

// TranslationInfo contains metadata about the HLSL translation.
type TranslationInfo struct {
	// Attributes maps vertex input names to their TEXCOORD slot.
	// Empty for fragment shaders.
	Attributes map[string]int

	// Diagnostics lists recoverable problems in instruction order.
	Diagnostics []Diagnostic
}

// Translate writes HLSL for one shader stage to out.
//
// Every call starts from empty tables, so translating the same module
// twice yields identical output.
func Translate(out io.Writer, module *spirv.Module, options *Options) (*TranslationInfo, error) {
	if module == nil {
		return nil, NewError(ErrInternalError, "module is nil")
	}

	// Apply defaults for nil options
	if options == nil {
		options = DefaultOptions()
	}

	w, err := newWriter(out, module, options)
	if err != nil {
		return nil, fmt.Errorf("hlsl: %w", err)
	}

	if err := w.translate(); err != nil {
		return nil, fmt.Errorf("hlsl: %w", err)
	}

	return &TranslationInfo{
		Attributes:  w.attributes,
		Diagnostics: w.diagnostics,
	}, nil
}

// TranslateFile translates module into the file at path. The file is
// closed on every path; on failure it is removed.
func TranslateFile(path string, module *spirv.Module, options *Options) (info *TranslationInfo, err error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &Error{Kind: ErrIO, Message: "create output", Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			info, err = nil, &Error{Kind: ErrIO, Message: "close output", Err: cerr}
		}
		if err != nil {
			err = errors.Join(err, removeIfExists(path))
		}
	}()

	return Translate(f, module, options)
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
