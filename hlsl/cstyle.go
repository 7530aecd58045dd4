// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"math"
	"strconv"

	"github.com/gogpu/spvhlsl/spirv"
)

// CStyle is the default Fallback. It lowers the opcodes whose HLSL
// spelling is the same as in any C-like shading language: loads,
// constants, arithmetic and a few intrinsics. Debug, annotation and
// unsupported type declarations are consumed without output.
type CStyle struct{}

var cstyleSilent = []spirv.OpCode{
	spirv.OpNop,
	spirv.OpSource,
	spirv.OpSourceExtension,
	spirv.OpName,
	spirv.OpMemberName,
	spirv.OpString,
	spirv.OpExtension,
	spirv.OpCapability,
	spirv.OpExtInstImport,
	spirv.OpMemoryModel,
	spirv.OpEntryPoint,
	spirv.OpMemberDecorate,
	spirv.OpLabel,
	spirv.OpTypeVoid,
	spirv.OpTypeBool,
	spirv.OpTypeInt,
	spirv.OpTypeImage,
	spirv.OpTypeStruct,
	spirv.OpTypeFunction,
}

var cstyleBinary = map[spirv.OpCode]string{
	spirv.OpFAdd:              "+",
	spirv.OpFSub:              "-",
	spirv.OpFMul:              "*",
	spirv.OpFDiv:              "/",
	spirv.OpVectorTimesScalar: "*",
}

var cstyleCalls = map[spirv.OpCode]string{
	spirv.OpMatrixTimesVector: "mul",
	spirv.OpVectorTimesMatrix: "mul",
	spirv.OpMatrixTimesMatrix: "mul",
	spirv.OpDot:               "dot",
}

// Opcodes implements Fallback.
func (CStyle) Opcodes() []spirv.OpCode {
	ops := make([]spirv.OpCode, 0, len(cstyleSilent)+len(cstyleBinary)+len(cstyleCalls)+6)
	ops = append(ops, cstyleSilent...)
	for op := range cstyleBinary {
		ops = append(ops, op)
	}
	for op := range cstyleCalls {
		ops = append(ops, op)
	}
	return append(ops,
		spirv.OpConstant,
		spirv.OpLoad,
		spirv.OpFNegate,
		spirv.OpCompositeExtract,
		spirv.OpVectorShuffle,
		spirv.OpFunctionEnd,
	)
}

// Emit implements Fallback.
func (c CStyle) Emit(w *Writer, inst spirv.Instruction) error {
	if op, ok := cstyleBinary[inst.Opcode]; ok {
		return c.binary(w, inst, op)
	}
	if fn, ok := cstyleCalls[inst.Opcode]; ok {
		return c.call(w, inst, fn)
	}

	switch inst.Opcode {
	case spirv.OpConstant:
		return c.constant(w, inst)
	case spirv.OpLoad:
		// Loads are transparent: the result reads as the pointer does.
		if err := need(inst, 3); err != nil {
			return err
		}
		e, err := w.Expression(inst.Operands[2])
		if err != nil {
			return err
		}
		return w.Bind(inst.Operands[1], e)
	case spirv.OpFNegate:
		if err := need(inst, 3); err != nil {
			return err
		}
		e, err := w.Expression(inst.Operands[2])
		if err != nil {
			return err
		}
		return w.Bind(inst.Operands[1], ExprUnary{Op: "-", Operand: e})
	case spirv.OpCompositeExtract:
		return c.extract(w, inst)
	case spirv.OpVectorShuffle:
		return c.shuffle(w, inst)
	case spirv.OpFunctionEnd:
		w.Dedent()
		w.WriteLine("}")
		return nil
	default:
		// Debug and annotation instructions.
		return nil
	}
}

func (CStyle) binary(w *Writer, inst spirv.Instruction, op string) error {
	if err := need(inst, 4); err != nil {
		return err
	}
	args, err := w.expressions(inst.Operands[2:4])
	if err != nil {
		return err
	}
	return w.Bind(inst.Operands[1], ExprBinary{Op: op, Left: args[0], Right: args[1]})
}

func (CStyle) call(w *Writer, inst spirv.Instruction, fn string) error {
	if err := need(inst, 4); err != nil {
		return err
	}
	args, err := w.expressions(inst.Operands[2:4])
	if err != nil {
		return err
	}
	return w.Bind(inst.Operands[1], ExprCall{Function: fn, Arguments: args})
}

// constant binds OpConstant as a literal. Float constants are read as
// IEEE-754 bits; everything else prints as a signed integer.
func (CStyle) constant(w *Writer, inst spirv.Instruction) error {
	if err := need(inst, 3); err != nil {
		return err
	}
	resultType, result, bits := inst.Operands[0], inst.Operands[1], inst.Operands[2]

	var text string
	if _, ok := w.types[resultType].(ScalarType); ok {
		text = formatFloat32(math.Float32frombits(bits))
	} else {
		text = strconv.FormatInt(int64(int32(bits)), 10) //nolint:gosec // G115: two's complement decoding
	}
	return w.Bind(result, ExprLiteral{Text: text})
}

// extract binds OpCompositeExtract. Leading indices subscript, the last
// index selects a component.
func (CStyle) extract(w *Writer, inst spirv.Instruction) error {
	if err := need(inst, 4); err != nil {
		return err
	}
	base, err := w.Expression(inst.Operands[2])
	if err != nil {
		return err
	}
	indices := inst.Operands[3:]
	for _, idx := range indices[:len(indices)-1] {
		base = ExprIndex{Base: base, Index: idx}
	}
	last := indices[len(indices)-1]
	swizzle, ok := swizzleComponents([]uint32{last})
	if !ok {
		return w.Bind(inst.Operands[1], ExprIndex{Base: base, Index: last})
	}
	return w.Bind(inst.Operands[1], ExprSwizzle{Base: base, Components: swizzle})
}

// shuffle binds OpVectorShuffle when both source vectors are the same id,
// which is how swizzles of a single vector are encoded.
func (CStyle) shuffle(w *Writer, inst spirv.Instruction) error {
	if err := need(inst, 5); err != nil {
		return err
	}
	result, first, second := inst.Operands[1], inst.Operands[2], inst.Operands[3]
	if first != second {
		w.Diagnose(ErrUnsupportedFeature, result, "shuffle of two different vectors")
		return nil
	}
	swizzle, ok := swizzleComponents(inst.Operands[4:])
	if !ok {
		w.Diagnose(ErrUnsupportedFeature, result, "shuffle component out of range")
		return nil
	}
	base, err := w.Expression(first)
	if err != nil {
		return err
	}
	return w.Bind(result, ExprSwizzle{Base: base, Components: swizzle})
}
