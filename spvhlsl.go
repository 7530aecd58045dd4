// Package spvhlsl provides a Pure Go SPIR-V to HLSL translator for simple
// vertex and fragment shaders.
//
// The package provides a simple, high-level API that decodes a SPIR-V
// binary, picks the shader stage and runs the hlsl translator, as well as
// lower-level access to the individual steps through the spirv and hlsl
// packages.
//
// Example usage:
//
//	code, info, err := spvhlsl.Compile(binary)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(code)
//	for name, slot := range info.Attributes {
//	    fmt.Printf("attribute %s -> TEXCOORD%d\n", name, slot)
//	}
package spvhlsl

import (
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/spvhlsl/hlsl"
	"github.com/gogpu/spvhlsl/spirv"
)

// CompileOptions configures translation.
type CompileOptions struct {
	// Stage is the shader stage, used when AutoStage is false or the
	// module declares no entry point.
	Stage hlsl.Stage

	// AutoStage takes the stage from the module's first OpEntryPoint.
	AutoStage bool

	// Strict aborts on opcodes no handler lowers.
	Strict bool

	// Target is passed through to the fallback emitter.
	Target any
}

// DefaultOptions returns sensible default options.
func DefaultOptions() CompileOptions {
	return CompileOptions{
		Stage:     hlsl.StageVertex,
		AutoStage: true,
	}
}

// Compile translates a SPIR-V binary to HLSL using default options.
//
// This is the simplest way to translate a shader. For more control, use
// CompileWithOptions or the spirv and hlsl packages directly.
func Compile(binary []byte) (string, *hlsl.TranslationInfo, error) {
	return CompileWithOptions(binary, DefaultOptions())
}

// CompileWithOptions translates a SPIR-V binary to HLSL with custom options.
//
// The pipeline is:
//  1. Decode the SPIR-V binary into instructions and names
//  2. Pick the shader stage
//  3. Translate to HLSL
func CompileWithOptions(binary []byte, opts CompileOptions) (string, *hlsl.TranslationInfo, error) {
	module, err := spirv.Decode(binary)
	if err != nil {
		return "", nil, fmt.Errorf("decode error: %w", err)
	}

	var out strings.Builder
	info, err := CompileTo(&out, module, opts)
	if err != nil {
		return "", nil, err
	}
	return out.String(), info, nil
}

// CompileTo translates a decoded module and writes the HLSL to out.
func CompileTo(out io.Writer, module *spirv.Module, opts CompileOptions) (*hlsl.TranslationInfo, error) {
	hlslOpts, err := translateOptions(module, opts)
	if err != nil {
		return nil, err
	}
	info, err := hlsl.Translate(out, module, hlslOpts)
	if err != nil {
		return nil, fmt.Errorf("translation error: %w", err)
	}
	return info, nil
}

// CompileFile translates a decoded module into the file at outPath.
// The output file is closed on every path and removed on failure.
func CompileFile(module *spirv.Module, outPath string, opts CompileOptions) (*hlsl.TranslationInfo, error) {
	hlslOpts, err := translateOptions(module, opts)
	if err != nil {
		return nil, err
	}
	info, err := hlsl.TranslateFile(outPath, module, hlslOpts)
	if err != nil {
		return nil, fmt.Errorf("translation error: %w", err)
	}
	return info, nil
}

// translateOptions builds hlsl options, resolving the stage.
func translateOptions(module *spirv.Module, opts CompileOptions) (*hlsl.Options, error) {
	stage, err := ResolveStage(module, opts)
	if err != nil {
		return nil, err
	}
	hlslOpts := hlsl.DefaultOptions()
	hlslOpts.Stage = stage
	hlslOpts.Strict = opts.Strict
	hlslOpts.Target = opts.Target
	return hlslOpts, nil
}

// ResolveStage returns the stage to translate module as.
func ResolveStage(module *spirv.Module, opts CompileOptions) (hlsl.Stage, error) {
	if !opts.AutoStage {
		return opts.Stage, nil
	}
	model, ok := module.ExecutionModel()
	if !ok {
		return opts.Stage, nil
	}
	stage, ok := hlsl.StageFromExecutionModel(model)
	if !ok {
		return 0, fmt.Errorf("unsupported execution model %s", model)
	}
	return stage, nil
}
