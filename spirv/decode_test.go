package spirv

import (
	"encoding/binary"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func buildSample() []byte {
	b := NewModuleBuilder(Version1_0)
	b.AddCapability(CapabilityShader)
	b.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	voidType := b.AddTypeVoid()
	fnType := b.AddTypeFunction(voidType)
	floatType := b.AddTypeFloat(32)
	vec4 := b.AddTypeVector(floatType, 4)
	ptr := b.AddTypePointer(StorageClassOutput, vec4)
	color := b.AddVariable(ptr, StorageClassOutput)
	b.AddName(color, "color")
	b.AddDecorate(color, DecorationBuiltIn, uint32(BuiltInPosition))

	fn := b.AllocID()
	b.AddName(fn, "main")
	b.AddEntryPoint(ExecutionModelVertex, fn, "main", color)
	b.AddFunctionInstruction(OpFunction, voidType, fn, 0, fnType)
	b.AddFunctionInstruction(OpLabel, b.AllocID())
	b.AddFunctionInstruction(OpReturn)
	b.AddFunctionInstruction(OpFunctionEnd)
	return b.Build()
}

func TestDecode(t *testing.T) {
	module, err := Decode(buildSample())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if module.Version != Version1_0 {
		t.Errorf("Version = %s, want 1.0", module.Version)
	}
	if module.Generator != GeneratorID {
		t.Errorf("Generator = 0x%08X", module.Generator)
	}

	names := make(map[string]bool)
	for _, name := range module.Names {
		names[name] = true
	}
	if !names["color"] || !names["main"] {
		t.Errorf("Names = %v, want color and main", module.Names)
	}

	if len(module.EntryPoints) != 1 {
		t.Fatalf("EntryPoints = %d, want 1", len(module.EntryPoints))
	}
	if ep := module.EntryPoints[0]; ep.Model != ExecutionModelVertex || ep.Name != "main" {
		t.Errorf("EntryPoints[0] = %+v", ep)
	}

	last := module.Instructions[len(module.Instructions)-1]
	if last.Opcode != OpFunctionEnd {
		t.Errorf("last instruction = %s, want OpFunctionEnd", last.Opcode)
	}
}

func TestDecode_EncodeRoundTrip(t *testing.T) {
	data := buildSample()
	module, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	again := Encode(module.Version, module.Generator, module.Bound, module.Instructions)
	if !reflect.DeepEqual(again, data) {
		t.Error("re-encoded module differs from the original")
	}
}

func TestDecode_Errors(t *testing.T) {
	valid := buildSample()

	badMagic := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint32(badMagic, 0xDEADBEEF)

	truncated := append([]byte(nil), valid[:len(valid)-4]...)
	// Claim more words than remain for the last instruction.
	binary.LittleEndian.PutUint32(truncated[len(truncated)-4:], 5<<16|uint32(OpReturn))

	zeroCount := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint32(zeroCount[headerWords*4:], uint32(OpCapability))

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"empty", nil, "too small"},
		{"short header", valid[:12], "too small"},
		{"unaligned", valid[:len(valid)-1], "multiple of 4"},
		{"bad magic", badMagic, "invalid magic"},
		{"word count past end", truncated, "invalid word count"},
		{"zero word count", zeroCount, "invalid word count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			var derr *DecodeError
			if !errors.As(err, &derr) {
				t.Fatalf("error = %v, want *DecodeError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestDecode_MalformedName(t *testing.T) {
	data := Encode(Version1_0, 0, 2, []Instruction{{Opcode: OpName, Operands: []uint32{1}}})
	if _, err := Decode(data); err == nil {
		t.Error("expected error for OpName without a string")
	}
}

func TestNewModule(t *testing.T) {
	insts := []Instruction{
		{Opcode: OpTypeFloat, Operands: []uint32{7, 32}},
		{Opcode: OpName, Operands: append([]uint32{7}, EncodeString("f")...)},
	}
	module, err := NewModule(insts)
	if err != nil {
		t.Fatalf("NewModule: %v", err)
	}
	if module.Bound != 8 {
		t.Errorf("Bound = %d, want 8", module.Bound)
	}
	if module.Names[7] != "f" {
		t.Errorf("Names[7] = %q, want f", module.Names[7])
	}
	if _, ok := module.ExecutionModel(); ok {
		t.Error("ExecutionModel() should report no entry point")
	}
}

func TestInstruction_ResultID(t *testing.T) {
	tests := []struct {
		inst Instruction
		id   uint32
		ok   bool
	}{
		{Instruction{Opcode: OpTypeFloat, Operands: []uint32{3, 32}}, 3, true},
		{Instruction{Opcode: OpLoad, Operands: []uint32{2, 9, 4}}, 9, true},
		{Instruction{Opcode: OpStore, Operands: []uint32{1, 2}}, 0, false},
		{Instruction{Opcode: OpLoad, Operands: []uint32{2}}, 0, false},
		{Instruction{Opcode: OpCode(9999), Operands: []uint32{1}}, 0, false},
	}

	for _, tt := range tests {
		id, ok := tt.inst.ResultID()
		if id != tt.id || ok != tt.ok {
			t.Errorf("%s.ResultID() = %d, %v; want %d, %v", tt.inst.Opcode, id, ok, tt.id, tt.ok)
		}
	}
}

func TestVersion(t *testing.T) {
	for _, v := range []Version{Version1_0, Version1_3, Version1_5} {
		if got := wordToVersion(versionToWord(v)); got != v {
			t.Errorf("round trip of %s = %s", v, got)
		}
	}
	if Version1_3.String() != "1.3" {
		t.Errorf("Version1_3.String() = %q", Version1_3.String())
	}
}
