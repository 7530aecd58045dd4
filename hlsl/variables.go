// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"github.com/gogpu/spvhlsl/spirv"
)

// StorageClass is the binding point of a variable as the translator sees it.
type StorageClass uint8

const (
	// StorageOther covers locals and every SPIR-V class not listed below.
	StorageOther StorageClass = iota

	// StorageInput variables become fields of the Input struct.
	StorageInput

	// StorageOutput variables become fields of the Output struct.
	StorageOutput

	// StorageUniformConstant variables become uniform declarations.
	StorageUniformConstant
)

// String returns the storage class name.
func (sc StorageClass) String() string {
	switch sc {
	case StorageInput:
		return "Input"
	case StorageOutput:
		return "Output"
	case StorageUniformConstant:
		return "UniformConstant"
	default:
		return "Other"
	}
}

// classifyStorage maps a SPIR-V storage class onto the translator's classes.
func classifyStorage(sc spirv.StorageClass) StorageClass {
	switch sc {
	case spirv.StorageClassInput:
		return StorageInput
	case spirv.StorageClassOutput:
		return StorageOutput
	case spirv.StorageClassUniformConstant:
		return StorageUniformConstant
	default:
		return StorageOther
	}
}

// Variable is the record kept for every OpVariable.
type Variable struct {
	// Type is the variable's SPIR-V type id (a pointer type).
	Type uint32

	// Storage is fixed at creation.
	Storage StorageClass

	// Declared is true once the variable exists in the output. Struct and
	// uniform backed variables start declared; locals flip on first store.
	Declared bool

	// Builtin is true for variables decorated BuiltIn.
	Builtin bool
}

// structBacked reports whether the variable is declared by the header
// rather than by an inline local declaration.
func (v *Variable) structBacked() bool {
	return v.Storage != StorageOther
}

// writeVariable handles OpVariable: result type, result, storage class.
func (w *Writer) writeVariable(inst spirv.Instruction) error {
	if err := need(inst, 3); err != nil {
		return err
	}
	typeID, id := inst.Operands[0], inst.Operands[1]
	if _, exists := w.variables[id]; exists {
		return newIDError(ErrRedefinition, id, "variable defined twice")
	}

	v := &Variable{
		Type:    typeID,
		Storage: classifyStorage(spirv.StorageClass(inst.Operands[2])),
		Builtin: w.builtins[id],
	}
	v.Declared = v.structBacked()
	w.variables[id] = v

	name, ok := w.names[id]
	if !ok {
		if v.structBacked() {
			return newIDError(ErrMissingName, id, "%s variable has no name", v.Storage)
		}
		return nil
	}

	switch v.Storage {
	case StorageInput:
		return w.Bind(id, ExprName{Name: "input." + name})
	case StorageOutput:
		return w.Bind(id, ExprName{Name: "output." + name})
	default:
		return w.Bind(id, ExprName{Name: name})
	}
}

// writeDecorate handles OpDecorate: target, decoration, [operands].
// Only BuiltIn is of interest. Decorations usually precede the variable,
// so the flag is remembered per id.
func (w *Writer) writeDecorate(inst spirv.Instruction) error {
	if err := need(inst, 2); err != nil {
		return err
	}
	if spirv.Decoration(inst.Operands[1]) != spirv.DecorationBuiltIn {
		return nil
	}
	id := inst.Operands[0]
	w.builtins[id] = true
	if v, ok := w.variables[id]; ok {
		v.Builtin = true
	}
	return nil
}

// Variable returns the record for id.
func (w *Writer) Variable(id uint32) (Variable, bool) {
	v, ok := w.variables[id]
	if !ok {
		return Variable{}, false
	}
	return *v, true
}
