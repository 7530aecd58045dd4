// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"github.com/gogpu/spvhlsl/spirv"
)

// writeStore handles OpStore: pointer, object, [memory access].
//
// The first store to an undeclared local declares it:
//
//	float4 color = tex2D(tex, input.uv);
//
// Later stores, and stores to struct or uniform backed variables, assign.
func (w *Writer) writeStore(inst spirv.Instruction) error {
	if err := need(inst, 2); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	pointer, object := inst.Operands[0], inst.Operands[1]
	dest, err := w.Reference(pointer)
	if err != nil {
		return err
	}
	value, err := w.Reference(object)
	if err != nil {
		return err
	}

	v, ok := w.variables[pointer]
	if !ok {
		w.Diagnose(ErrUnsupportedFeature, pointer, "store target is not a variable")
		w.writeLine("%s = %s;", dest, value)
		return nil
	}

	if !v.Declared {
		w.writeLine("%s %s = %s;", w.typeNameOf(v.Type), dest, value)
		v.Declared = true
		return nil
	}
	w.writeLine("%s = %s;", dest, value)
	return nil
}

// writeReturn handles OpReturn.
func (w *Writer) writeReturn(spirv.Instruction) error {
	if err := w.Flush(); err != nil {
		return err
	}
	w.writeLine("return output;")
	return nil
}

// writeExecutionMode consumes OpExecutionMode without output.
func (w *Writer) writeExecutionMode(spirv.Instruction) error {
	return nil
}
