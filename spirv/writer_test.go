package spirv

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"
)

func TestModuleBuilder_MinimalModule(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)

	// Add basic capability
	builder.AddCapability(CapabilityShader)

	// Set memory model (required)
	builder.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	// Build the module
	data := builder.Build()

	// Verify header (5 words = 20 bytes)
	if len(data) < 20 {
		t.Fatalf("Module too small: got %d bytes, want at least 20", len(data))
	}

	// Check magic number
	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != MagicNumber {
		t.Errorf("Invalid magic number: got 0x%08X, want 0x%08X", magic, MagicNumber)
	}

	// Check version
	version := binary.LittleEndian.Uint32(data[4:8])
	expectedVersion := uint32(1<<16 | 3<<8) // Version 1.3
	if version != expectedVersion {
		t.Errorf("Invalid version: got 0x%08X, want 0x%08X", version, expectedVersion)
	}

	// Check generator
	generator := binary.LittleEndian.Uint32(data[8:12])
	if generator != GeneratorID {
		t.Errorf("Invalid generator: got 0x%08X, want 0x%08X", generator, GeneratorID)
	}

	// Check bound (should be > 0)
	bound := binary.LittleEndian.Uint32(data[12:16])
	if bound == 0 {
		t.Error("Bound should be > 0")
	}

	// Check schema (reserved, must be 0)
	schema := binary.LittleEndian.Uint32(data[16:20])
	if schema != 0 {
		t.Errorf("Schema should be 0, got %d", schema)
	}

	t.Logf("Module size: %d bytes", len(data))
	t.Logf("Bound: %d", bound)
}

func TestModuleBuilder_WithTypes(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)

	builder.AddCapability(CapabilityShader)
	builder.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	// Add some types
	voidType := builder.AddTypeVoid()
	floatType := builder.AddTypeFloat(32)
	intType := builder.AddTypeInt(32, true)
	vec4Type := builder.AddTypeVector(floatType, 4)

	// Build
	data := builder.Build()

	if len(data) < 20 {
		t.Fatalf("Module too small: %d bytes", len(data))
	}

	// Verify IDs are unique and sequential
	if voidType == floatType || voidType == intType || voidType == vec4Type {
		t.Error("Type IDs should be unique")
	}

	if floatType == intType || floatType == vec4Type || intType == vec4Type {
		t.Error("Type IDs should be unique")
	}

	t.Logf("Type IDs: void=%d, float=%d, int=%d, vec4=%d", voidType, floatType, intType, vec4Type)
	t.Logf("Module size: %d bytes", len(data))
}

func TestModuleBuilder_WithEntryPoint(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)

	builder.AddCapability(CapabilityShader)
	builder.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	// Create function types
	voidType := builder.AddTypeVoid()
	funcType := builder.AddTypeFunction(voidType)

	// Create function
	funcID := builder.AllocID()
	builder.AddFunctionInstruction(OpFunction, voidType, funcID, 0, funcType)
	labelID := builder.AddFunctionInstruction(OpLabel, builder.AllocID())
	builder.AddFunctionInstruction(OpReturn)
	builder.AddFunctionInstruction(OpFunctionEnd)

	// Add entry point
	builder.AddEntryPoint(ExecutionModelFragment, funcID, "main")
	builder.AddExecutionMode(funcID, ExecutionModeOriginUpperLeft)

	module, err := Decode(builder.Build())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	model, ok := module.ExecutionModel()
	if !ok || model != ExecutionModelFragment {
		t.Errorf("ExecutionModel() = %v, %v; want Fragment", model, ok)
	}
	if got := module.EntryPoints[0]; got.Function != funcID || got.Name != "main" {
		t.Errorf("EntryPoints[0] = %+v", got)
	}
	if module.Bound <= labelID {
		t.Errorf("Bound = %d, want > %d", module.Bound, labelID)
	}

	// Entry points are emitted before types regardless of call order.
	if module.Instructions[2].Opcode != OpEntryPoint {
		t.Errorf("Instructions[2] = %s, want OpEntryPoint", module.Instructions[2].Opcode)
	}
}

func TestModuleBuilder_ExtInstImport(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)

	builder.AddCapability(CapabilityShader)
	builder.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)
	glsl := builder.AddExtInstImport("GLSL.std.450")

	module, err := Decode(builder.Build())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	// Imports sit between capabilities and the memory model.
	inst := module.Instructions[1]
	if inst.Opcode != OpExtInstImport {
		t.Fatalf("Instructions[1] = %s, want OpExtInstImport", inst.Opcode)
	}
	if id, ok := inst.ResultID(); !ok || id != glsl {
		t.Errorf("ResultID() = %d, %v; want %d", id, ok, glsl)
	}
	if name, _ := DecodeString(inst.Operands[1:]); name != "GLSL.std.450" {
		t.Errorf("import name = %q, want GLSL.std.450", name)
	}
	if got := FormatInstruction(inst); !strings.HasSuffix(got, `= OpExtInstImport "GLSL.std.450"`) {
		t.Errorf("FormatInstruction = %q", got)
	}
	if module.Instructions[2].Opcode != OpMemoryModel {
		t.Errorf("Instructions[2] = %s, want OpMemoryModel", module.Instructions[2].Opcode)
	}
}

func TestEncodeString(t *testing.T) {
	tests := []struct {
		s     string
		words int
	}{
		{"", 1},
		{"abc", 1},
		{"main", 2},
		{"hello", 2},
		{"position", 3},
	}

	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			words := EncodeString(tt.s)
			if len(words) != tt.words {
				t.Errorf("EncodeString(%q) = %d words, want %d", tt.s, len(words), tt.words)
			}
			got, n := DecodeString(words)
			if got != tt.s || n != len(words) {
				t.Errorf("DecodeString = %q, %d; want %q, %d", got, n, tt.s, len(words))
			}
		})
	}
}

func TestDecodeString_Trailing(t *testing.T) {
	words := append(EncodeString("uv"), 42)
	got, n := DecodeString(words)
	if got != "uv" || n != 1 {
		t.Errorf("DecodeString = %q, %d; want \"uv\", 1", got, n)
	}
}

func TestModuleBuilder_Float32(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)

	floatType := builder.AddTypeFloat(32)
	constID := builder.AddConstantFloat32(floatType, 3.14159)

	module, err := Decode(builder.Build())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	inst := module.Instructions[1]
	if inst.Opcode != OpConstant || inst.Operands[1] != constID {
		t.Fatalf("unexpected instruction %s", FormatInstruction(inst))
	}
	if got := math.Float32frombits(inst.Operands[2]); got != 3.14159 {
		t.Errorf("constant = %v, want 3.14159", got)
	}
}

func TestModuleBuilder_IDAllocation(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)

	id1 := builder.AllocID()
	id2 := builder.AllocID()
	id3 := builder.AllocID()

	if id1 >= id2 || id2 >= id3 {
		t.Error("IDs should be strictly increasing")
	}

	if id1 == 0 || id2 == 0 || id3 == 0 {
		t.Error("IDs should never be 0")
	}

	// Explicit result ids move the allocator past them.
	builder.AddFunctionInstruction(OpLabel, 40)
	if next := builder.AllocID(); next != 41 {
		t.Errorf("AllocID after %%40 = %d, want 41", next)
	}
}
