// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"

	"github.com/gogpu/spvhlsl/spirv"
)

func TestStageFromExecutionModel(t *testing.T) {
	tests := []struct {
		model spirv.ExecutionModel
		want  Stage
		ok    bool
	}{
		{spirv.ExecutionModelVertex, StageVertex, true},
		{spirv.ExecutionModelFragment, StageFragment, true},
		{spirv.ExecutionModelGLCompute, 0, false},
		{spirv.ExecutionModelGeometry, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.model.String(), func(t *testing.T) {
			got, ok := StageFromExecutionModel(tt.model)
			be.Equal(t, ok, tt.ok)
			be.Equal(t, got, tt.want)
		})
	}
}

func TestParseStage(t *testing.T) {
	for _, s := range []string{"vertex", "vs"} {
		got, ok := ParseStage(s)
		be.True(t, ok)
		be.Equal(t, got, StageVertex)
	}
	for _, s := range []string{"fragment", "pixel", "ps"} {
		got, ok := ParseStage(s)
		be.True(t, ok)
		be.Equal(t, got, StageFragment)
	}
	_, ok := ParseStage("compute")
	be.True(t, !ok)
}

func TestSwizzleComponents(t *testing.T) {
	got, ok := swizzleComponents([]uint32{0, 1, 2, 3})
	be.True(t, ok)
	be.Equal(t, got, "xyzw")

	_, ok = swizzleComponents([]uint32{4})
	be.True(t, !ok)

	_, ok = swizzleComponents(nil)
	be.True(t, !ok)
}

func TestNeed(t *testing.T) {
	be.Err(t, need(op(spirv.OpStore, 1, 2), 2), nil)

	err := need(op(spirv.OpLoad, 4, 9), 3)
	var herr *Error
	be.True(t, errors.As(err, &herr))
	be.Equal(t, herr.Kind, ErrMalformedInstruction)
	be.Equal(t, herr.ID, uint32(9))
}
