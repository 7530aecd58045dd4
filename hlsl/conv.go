// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"strconv"

	"github.com/gogpu/spvhlsl/spirv"
)

// StageFromExecutionModel maps a SPIR-V execution model to a Stage.
// Only vertex and fragment shaders are translated.
func StageFromExecutionModel(model spirv.ExecutionModel) (Stage, bool) {
	switch model {
	case spirv.ExecutionModelVertex:
		return StageVertex, true
	case spirv.ExecutionModelFragment:
		return StageFragment, true
	default:
		return 0, false
	}
}

// ParseStage parses "vertex"/"vs" or "fragment"/"pixel"/"ps".
func ParseStage(s string) (Stage, bool) {
	switch s {
	case "vertex", "vs":
		return StageVertex, true
	case "fragment", "pixel", "ps":
		return StageFragment, true
	default:
		return 0, false
	}
}

// swizzleComponents spells component indices as a swizzle.
func swizzleComponents(indices []uint32) (string, bool) {
	const letters = "xyzw"
	buf := make([]byte, 0, len(indices))
	for _, idx := range indices {
		if idx >= uint32(len(letters)) {
			return "", false
		}
		buf = append(buf, letters[idx])
	}
	return string(buf), len(buf) > 0
}

func formatUint(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}

// need checks that inst carries at least n operand words.
func need(inst spirv.Instruction, n int) error {
	if len(inst.Operands) < n {
		return newIDError(ErrMalformedInstruction, resultOf(inst),
			"%s has %d operands, need %d", inst.Opcode, len(inst.Operands), n)
	}
	return nil
}
