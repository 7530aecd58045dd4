// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"maps"
	"slices"

	"github.com/gogpu/spvhlsl/spirv"
)

// HLSL semantic names.
const (
	semanticPosition = "POSITION"
	semanticColor    = "COLOR"
	semanticTexcoord = "TEXCOORD"
)

// =============================================================================
// Stage I/O Structs
// =============================================================================

// writeFunction handles OpFunction. The header is written on the first
// function unless a statement already did; a second function is rejected.
func (w *Writer) writeFunction(inst spirv.Instruction) error {
	if w.functionSeen {
		return newIDError(ErrUnsupportedFeature, resultOf(inst), "only one function body is supported")
	}
	w.functionSeen = true
	return w.Flush()
}

// Flush writes the uniform declarations, the Input and Output structs and
// the entry point signature, once. Later calls do nothing.
func (w *Writer) Flush() error {
	if w.headerWritten {
		return nil
	}
	w.headerWritten = true

	ids := slices.Sorted(maps.Keys(w.variables))

	if err := w.writeUniforms(ids); err != nil {
		return err
	}
	if err := w.writeInputStruct(ids); err != nil {
		return err
	}
	if err := w.writeOutputStruct(ids); err != nil {
		return err
	}

	w.writeLine("Output main(Input input) {")
	w.pushIndent()
	w.writeLine("Output output;")
	return nil
}

// writeUniforms declares every UniformConstant variable.
func (w *Writer) writeUniforms(ids []uint32) error {
	wrote := false
	for _, id := range ids {
		v := w.variables[id]
		if v.Storage != StorageUniformConstant {
			continue
		}
		name, err := w.variableName(id)
		if err != nil {
			return err
		}
		w.writeLine("uniform %s %s;", w.typeNameOf(v.Type), name)
		wrote = true
	}
	if wrote {
		w.writeLine("")
	}
	return nil
}

// writeInputStruct writes struct Input. Non-builtin fields take TEXCOORD
// slots in id order; on the vertex stage those slots are also recorded as
// vertex attribute locations.
func (w *Writer) writeInputStruct(ids []uint32) error {
	w.writeLine("struct Input {")
	w.pushIndent()

	slot := 0
	for _, id := range ids {
		v := w.variables[id]
		if v.Storage != StorageInput {
			continue
		}
		name, err := w.variableName(id)
		if err != nil {
			return err
		}
		typeName := w.typeNameOf(v.Type)

		if v.Builtin && w.options.Stage == StageVertex {
			w.writeLine("%s %s : %s;", typeName, name, semanticPosition)
			continue
		}
		w.writeLine("%s %s : %s%d;", typeName, name, semanticTexcoord, slot)
		if w.options.Stage == StageVertex {
			w.attributes[name] = slot
		}
		slot++
	}

	w.popIndent()
	w.writeLine("};")
	w.writeLine("")
	return nil
}

// writeOutputStruct writes struct Output with its own TEXCOORD numbering.
func (w *Writer) writeOutputStruct(ids []uint32) error {
	w.writeLine("struct Output {")
	w.pushIndent()

	slot := 0
	for _, id := range ids {
		v := w.variables[id]
		if v.Storage != StorageOutput {
			continue
		}
		name, err := w.variableName(id)
		if err != nil {
			return err
		}
		typeName := w.typeNameOf(v.Type)

		switch {
		case v.Builtin && w.options.Stage == StageVertex:
			w.writeLine("%s %s : %s;", typeName, name, semanticPosition)
		case v.Builtin && w.options.Stage == StageFragment:
			w.writeLine("%s %s : %s;", typeName, name, semanticColor)
		default:
			w.writeLine("%s %s : %s%d;", typeName, name, semanticTexcoord, slot)
			slot++
		}
	}

	w.popIndent()
	w.writeLine("};")
	w.writeLine("")
	return nil
}

// variableName returns the declared name of a struct or uniform backed variable.
func (w *Writer) variableName(id uint32) (string, error) {
	name, ok := w.names[id]
	if !ok {
		return "", newIDError(ErrMissingName, id, "variable has no name")
	}
	return name, nil
}

// typeNameOf spells a type id, using the placeholder for unresolved ids.
func (w *Writer) typeNameOf(id uint32) string {
	return TypeName(w.types[id])
}

func resultOf(inst spirv.Instruction) uint32 {
	id, _ := inst.ResultID()
	return id
}
