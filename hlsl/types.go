// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/spvhlsl/spirv"
)

// Type is the target-side descriptor of a SPIR-V type id.
//
// The set of shapes is closed: ScalarType, VectorType, MatrixType,
// SamplerType and ArrayType. Anything else has no descriptor at all.
type Type interface {
	hlslType()
}

// ScalarType is a 32-bit float.
type ScalarType struct{}

// VectorType is a float vector with 2, 3 or 4 components.
type VectorType struct {
	Size uint32
}

// MatrixType is a float matrix. Only 4x4 is produced.
type MatrixType struct {
	Columns uint32
	Rows    uint32
}

// SamplerType is a combined 2D texture and sampler.
type SamplerType struct{}

// ArrayType is an array of float or float3.
type ArrayType struct {
	Element Type
}

func (ScalarType) hlslType()  {}
func (VectorType) hlslType()  {}
func (MatrixType) hlslType()  {}
func (SamplerType) hlslType() {}
func (ArrayType) hlslType()   {}

// unknownTypeName is written where a type id has no descriptor.
const unknownTypeName = "unknown"

// TypeName returns the HLSL spelling of a type. A nil type yields the
// "unknown" placeholder.
func TypeName(t Type) string {
	switch t := t.(type) {
	case ScalarType:
		return "float"
	case VectorType:
		return fmt.Sprintf("float%d", t.Size)
	case MatrixType:
		return fmt.Sprintf("float%dx%d", t.Rows, t.Columns)
	case SamplerType:
		return "sampler2D"
	case ArrayType:
		return TypeName(t.Element) + "[]"
	default:
		return unknownTypeName
	}
}

// ComponentCount returns the number of scalar components of a type:
// 1 for scalars, the size for vectors, the column count for matrices and
// 0 for samplers, arrays and unknown types.
func ComponentCount(t Type) uint32 {
	switch t := t.(type) {
	case ScalarType:
		return 1
	case VectorType:
		return t.Size
	case MatrixType:
		return t.Columns
	default:
		return 0
	}
}

// =============================================================================
// Type Resolution
// =============================================================================

// defineType registers a descriptor for id.
func (w *Writer) defineType(id uint32, t Type) error {
	if _, exists := w.types[id]; exists {
		return newIDError(ErrRedefinition, id, "type defined twice")
	}
	w.types[id] = t
	return nil
}

// writeTypeFloat handles OpTypeFloat: result, width.
func (w *Writer) writeTypeFloat(inst spirv.Instruction) error {
	if err := need(inst, 2); err != nil {
		return err
	}
	id, width := inst.Operands[0], inst.Operands[1]
	if width != 32 {
		w.Diagnose(ErrUnsupportedType, id, "float of width %d", width)
		return nil
	}
	return w.defineType(id, ScalarType{})
}

// writeTypeVector handles OpTypeVector: result, component type, count.
func (w *Writer) writeTypeVector(inst spirv.Instruction) error {
	if err := need(inst, 3); err != nil {
		return err
	}
	id, component, count := inst.Operands[0], inst.Operands[1], inst.Operands[2]
	if _, ok := w.types[component].(ScalarType); ok && count >= 2 && count <= 4 {
		return w.defineType(id, VectorType{Size: count})
	}
	w.Diagnose(ErrUnsupportedType, id, "vector of %s x%d", w.describeType(component), count)
	return nil
}

// writeTypeMatrix handles OpTypeMatrix: result, column type, column count.
func (w *Writer) writeTypeMatrix(inst spirv.Instruction) error {
	if err := need(inst, 3); err != nil {
		return err
	}
	id, column, count := inst.Operands[0], inst.Operands[1], inst.Operands[2]
	if col, ok := w.types[column].(VectorType); ok && col.Size == 4 && count == 4 {
		return w.defineType(id, MatrixType{Columns: 4, Rows: 4})
	}
	w.Diagnose(ErrUnsupportedType, id, "matrix of %s x%d", w.describeType(column), count)
	return nil
}

// writeTypeArray handles OpTypeArray: result, element type, length id.
func (w *Writer) writeTypeArray(inst spirv.Instruction) error {
	if err := need(inst, 3); err != nil {
		return err
	}
	id, element := inst.Operands[0], inst.Operands[1]
	switch elem := w.types[element].(type) {
	case ScalarType:
		return w.defineType(id, ArrayType{Element: elem})
	case VectorType:
		if elem.Size == 3 {
			return w.defineType(id, ArrayType{Element: elem})
		}
	}
	w.Diagnose(ErrUnsupportedType, id, "array of %s", w.describeType(element))
	return nil
}

// writeTypeSampler handles OpTypeSampler and OpTypeSampledImage.
func (w *Writer) writeTypeSampler(inst spirv.Instruction) error {
	if err := need(inst, 1); err != nil {
		return err
	}
	return w.defineType(inst.Operands[0], SamplerType{})
}

// writeTypePointer handles OpTypePointer: result, storage class, pointee.
// The pointer shares the pointee's descriptor.
func (w *Writer) writeTypePointer(inst spirv.Instruction) error {
	if err := need(inst, 3); err != nil {
		return err
	}
	if pointee, ok := w.types[inst.Operands[2]]; ok {
		return w.defineType(inst.Operands[0], pointee)
	}
	return nil
}

// describeType names a type id for diagnostics.
func (w *Writer) describeType(id uint32) string {
	if t, ok := w.types[id]; ok {
		return TypeName(t)
	}
	return fmt.Sprintf("%%%d", id)
}

// formatFloat32 formats a float32 for HLSL output.
func formatFloat32(f float32) string {
	if math.IsInf(float64(f), 1) {
		return "1.#INF"
	}
	if math.IsInf(float64(f), -1) {
		return "-1.#INF"
	}
	if math.IsNaN(float64(f)) {
		return "0.0/0.0"
	}
	s := fmt.Sprintf("%g", f)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
