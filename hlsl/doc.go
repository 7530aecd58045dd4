// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package hlsl translates a SPIR-V instruction stream for one vertex or
// fragment shader into legacy (Shader Model 3 style) HLSL source.
//
// The translation is a single forward pass. Type and variable declarations
// only fill tables; the first OpFunction writes the uniform declarations,
// the Input and Output structs and the entry point signature; expression
// opcodes bind deferred expressions to their result ids; OpStore and
// OpReturn write statements, inlining the deferred expressions they read.
//
// # Usage
//
//	module, err := spirv.Decode(binary)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	options := hlsl.DefaultOptions()
//	options.Stage = hlsl.StageFragment
//
//	var out strings.Builder
//	info, err := hlsl.Translate(&out, module, options)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Semantics
//
// Input and Output struct fields are ordered by SPIR-V id. Builtin vertex
// inputs and outputs bind POSITION, builtin fragment outputs bind COLOR,
// and every other field takes the next TEXCOORDn slot of its struct. For
// vertex shaders TranslationInfo.Attributes reports the slot of each
// non-builtin input so a pipeline can bind vertex attributes to it.
//
// # Supported Types
//
// float, float2, float3, float4, float4x4, sampler2D, float[] and float3[].
// Any other shape gets no type entry and a diagnostic; text that needs its
// name spells it "unknown".
//
// # Fallback
//
// Opcodes outside the translator's own set go to Options.Fallback. CStyle,
// the default, covers loads, constants, float arithmetic, mul, dot,
// swizzles and the closing brace of the function.
package hlsl
