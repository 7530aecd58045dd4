// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"strings"

	"github.com/gogpu/spvhlsl/spirv"
)

// Expr is a deferred expression bound to a SPIR-V id.
//
// Expressions are kept as nodes and only turned into text where they are
// consumed, so a value used twice is spelled out twice.
type Expr interface {
	hlslExpr()
}

// ExprName is a named storage location: "input.uv", "output.color", "mvp".
type ExprName struct {
	Name string
}

// ExprLiteral is literal source text such as "1.0".
type ExprLiteral struct {
	Text string
}

// ExprCompose is a constructor call: float4(a, b, c, d).
type ExprCompose struct {
	Type       Type
	Components []Expr
}

// ExprSample is a 2D texture lookup: tex2D(sampler, coord).
type ExprSample struct {
	Sampler    Expr
	Coordinate Expr
}

// ExprBinary is an infix operation.
type ExprBinary struct {
	Op    string
	Left  Expr
	Right Expr
}

// ExprUnary is a prefix operation.
type ExprUnary struct {
	Op      string
	Operand Expr
}

// ExprCall is an intrinsic call such as mul(a, b) or dot(a, b).
type ExprCall struct {
	Function  string
	Arguments []Expr
}

// ExprSwizzle selects vector components: v.xy
type ExprSwizzle struct {
	Base       Expr
	Components string
}

// ExprIndex is an array or matrix subscript: m[1]
type ExprIndex struct {
	Base  Expr
	Index uint32
}

func (ExprName) hlslExpr()    {}
func (ExprLiteral) hlslExpr() {}
func (ExprCompose) hlslExpr() {}
func (ExprSample) hlslExpr()  {}
func (ExprBinary) hlslExpr()  {}
func (ExprUnary) hlslExpr()   {}
func (ExprCall) hlslExpr()    {}
func (ExprSwizzle) hlslExpr() {}
func (ExprIndex) hlslExpr()   {}

// ExprString renders an expression as HLSL source.
func ExprString(e Expr) string {
	var sb strings.Builder
	writeExpr(&sb, e, false)
	return sb.String()
}

// writeExpr writes e to sb. Operators nested inside other operators are
// parenthesized.
func writeExpr(sb *strings.Builder, e Expr, nested bool) {
	switch e := e.(type) {
	case ExprName:
		sb.WriteString(e.Name)
	case ExprLiteral:
		sb.WriteString(e.Text)
	case ExprCompose:
		writeCall(sb, TypeName(e.Type), e.Components)
	case ExprSample:
		writeCall(sb, "tex2D", []Expr{e.Sampler, e.Coordinate})
	case ExprCall:
		writeCall(sb, e.Function, e.Arguments)
	case ExprBinary:
		if nested {
			sb.WriteByte('(')
		}
		writeExpr(sb, e.Left, true)
		sb.WriteString(" ")
		sb.WriteString(e.Op)
		sb.WriteString(" ")
		writeExpr(sb, e.Right, true)
		if nested {
			sb.WriteByte(')')
		}
	case ExprUnary:
		sb.WriteString(e.Op)
		// "--x" would read as a decrement.
		if needsUnaryParens(e.Operand) {
			sb.WriteByte('(')
			writeExpr(sb, e.Operand, false)
			sb.WriteByte(')')
			return
		}
		writeExpr(sb, e.Operand, true)
	case ExprSwizzle:
		writeExpr(sb, e.Base, true)
		sb.WriteByte('.')
		sb.WriteString(e.Components)
	case ExprIndex:
		writeExpr(sb, e.Base, true)
		sb.WriteByte('[')
		sb.WriteString(formatUint(e.Index))
		sb.WriteByte(']')
	}
}

func writeCall(sb *strings.Builder, function string, args []Expr) {
	sb.WriteString(function)
	sb.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeExpr(sb, arg, false)
	}
	sb.WriteByte(')')
}

// =============================================================================
// Reference Cache
// =============================================================================

// Bind stores the deferred expression for id. An id is bound at most once.
func (w *Writer) Bind(id uint32, e Expr) error {
	if _, exists := w.references[id]; exists {
		return newIDError(ErrRedefinition, id, "reference already bound")
	}
	w.references[id] = e
	return nil
}

// Expression returns the deferred expression bound to id.
func (w *Writer) Expression(id uint32) (Expr, error) {
	e, ok := w.references[id]
	if !ok {
		return nil, newIDError(ErrMissingReference, id, "no expression bound")
	}
	return e, nil
}

// Reference returns the HLSL text of the expression bound to id.
func (w *Writer) Reference(id uint32) (string, error) {
	e, err := w.Expression(id)
	if err != nil {
		return "", err
	}
	return ExprString(e), nil
}

// expressions resolves a list of ids.
func (w *Writer) expressions(ids []uint32) ([]Expr, error) {
	exprs := make([]Expr, 0, len(ids))
	for _, id := range ids {
		e, err := w.Expression(id)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

// writeCompositeConstruct handles OpCompositeConstruct:
// result type, result, constituents...
func (w *Writer) writeCompositeConstruct(inst spirv.Instruction) error {
	if err := need(inst, 3); err != nil {
		return err
	}
	resultType, result := inst.Operands[0], inst.Operands[1]
	components, err := w.expressions(inst.Operands[2:])
	if err != nil {
		return err
	}
	t, ok := w.types[resultType]
	if !ok {
		w.Diagnose(ErrUnsupportedType, result, "constructor of unresolved type %%%d", resultType)
	}
	return w.Bind(result, ExprCompose{Type: t, Components: components})
}

// writeImageSample handles OpImageSampleImplicitLod:
// result type, result, sampled image, coordinate, [image operands].
func (w *Writer) writeImageSample(inst spirv.Instruction) error {
	if err := need(inst, 4); err != nil {
		return err
	}
	args, err := w.expressions(inst.Operands[2:4])
	if err != nil {
		return err
	}
	return w.Bind(inst.Operands[1], ExprSample{Sampler: args[0], Coordinate: args[1]})
}

// needsUnaryParens reports whether operand would merge with a leading sign.
func needsUnaryParens(operand Expr) bool {
	switch e := operand.(type) {
	case ExprUnary:
		return true
	case ExprLiteral:
		return strings.HasPrefix(e.Text, "-")
	default:
		return false
	}
}
