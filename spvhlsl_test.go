package spvhlsl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/gogpu/spvhlsl/hlsl"
	"github.com/gogpu/spvhlsl/spirv"
)

const fillShader = `
OpEntryPoint Fragment %3 "main" %7
OpName %7 "color"
OpDecorate %7 BuiltIn Position
%1 = OpTypeVoid
%2 = OpTypeFunction %1
%4 = OpTypeFloat 32
%5 = OpTypeVector %4 4
%6 = OpTypePointer Output %5
%7 = OpVariable %6 Output
%8 = OpConstant %4 1.0
%3 = OpFunction %1 None %2
%9 = OpLabel
%10 = OpCompositeConstruct %5 %8 %8 %8 %8
OpStore %7 %10
OpReturn
OpFunctionEnd
`

func assemble(t *testing.T, src string) *spirv.Module {
	t.Helper()
	module, err := spirv.Assemble(src)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	return module
}

func encode(t *testing.T, src string) []byte {
	t.Helper()
	module := assemble(t, src)
	return spirv.Encode(module.Version, spirv.GeneratorID, module.Bound, module.Instructions)
}

func TestCompile_AutoStage(t *testing.T) {
	code, info, err := Compile(encode(t, fillShader))
	be.Err(t, err, nil)

	// The entry point says Fragment, so the builtin output binds COLOR.
	be.True(t, strings.Contains(code, "float4 color : COLOR;"))
	be.True(t, strings.Contains(code, "output.color = float4(1.0, 1.0, 1.0, 1.0);"))
	be.Equal(t, len(info.Attributes), 0)
	be.Equal(t, len(info.Diagnostics), 0)
}

func TestCompileWithOptions_ExplicitStage(t *testing.T) {
	opts := DefaultOptions()
	opts.AutoStage = false
	opts.Stage = hlsl.StageVertex

	code, _, err := CompileWithOptions(encode(t, fillShader), opts)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(code, "float4 color : POSITION;"))
}

func TestCompile_DecodeError(t *testing.T) {
	_, _, err := Compile([]byte{1, 2, 3})
	be.True(t, err != nil)
	be.True(t, strings.HasPrefix(err.Error(), "decode error:"))
}

func TestResolveStage(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		opts    CompileOptions
		want    hlsl.Stage
		wantErr bool
	}{
		{
			name: "fragment entry point",
			src:  fillShader,
			opts: DefaultOptions(),
			want: hlsl.StageFragment,
		},
		{
			name: "auto stage off",
			src:  fillShader,
			opts: CompileOptions{Stage: hlsl.StageVertex},
			want: hlsl.StageVertex,
		},
		{
			name: "no entry point",
			src:  "%1 = OpTypeFloat 32\n",
			opts: CompileOptions{Stage: hlsl.StageFragment, AutoStage: true},
			want: hlsl.StageFragment,
		},
		{
			name:    "compute entry point",
			src:     "OpEntryPoint GLCompute %1 \"main\"\n",
			opts:    DefaultOptions(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveStage(assemble(t, tt.src), tt.opts)
			if tt.wantErr {
				be.True(t, err != nil)
				return
			}
			be.Err(t, err, nil)
			be.Equal(t, got, tt.want)
		})
	}
}

func TestCompileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fill.hlsl")

	info, err := CompileFile(assemble(t, fillShader), path, DefaultOptions())
	be.Err(t, err, nil)
	be.Equal(t, len(info.Diagnostics), 0)

	data, err := os.ReadFile(path)
	be.Err(t, err, nil)

	code, _, err := Compile(encode(t, fillShader))
	be.Err(t, err, nil)
	be.Equal(t, string(data), code)
}

func TestCompileFile_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compute.hlsl")

	_, err := CompileFile(assemble(t, "OpEntryPoint GLCompute %1 \"main\"\n"), path, DefaultOptions())
	be.True(t, err != nil)

	_, statErr := os.Stat(path)
	be.True(t, os.IsNotExist(statErr))
}

func TestCompileTo(t *testing.T) {
	var out strings.Builder
	info, err := CompileTo(&out, assemble(t, fillShader), DefaultOptions())
	be.Err(t, err, nil)
	be.Equal(t, len(info.Diagnostics), 0)

	code, _, err := Compile(encode(t, fillShader))
	be.Err(t, err, nil)
	be.Equal(t, out.String(), code)
}

func TestCompileTo_Unsupported(t *testing.T) {
	var out strings.Builder
	_, err := CompileTo(&out, assemble(t, "OpEntryPoint GLCompute %1 \"main\"\n"), DefaultOptions())
	be.True(t, err != nil)
	be.Equal(t, out.Len(), 0)
}

func TestTranslateOptions(t *testing.T) {
	type target struct{ profile string }

	opts := DefaultOptions()
	opts.Strict = true
	opts.Target = target{profile: "vs_3_0"}

	got, err := translateOptions(assemble(t, fillShader), opts)
	be.Err(t, err, nil)
	be.Equal(t, got.Stage, hlsl.StageFragment)
	be.True(t, got.Strict)
	be.Equal(t, got.Target, any(target{profile: "vs_3_0"}))
	_, isCStyle := got.Fallback.(hlsl.CStyle)
	be.True(t, isCStyle)
}

func TestCompile_ExtInstImportIsSilent(t *testing.T) {
	builder := spirv.NewModuleBuilder(spirv.Version1_0)
	builder.AddCapability(spirv.CapabilityShader)
	builder.AddExtInstImport("GLSL.std.450")
	builder.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	code, info, err := Compile(builder.Build())
	be.Err(t, err, nil)
	be.Equal(t, code, "")
	be.Equal(t, len(info.Diagnostics), 0)
}
