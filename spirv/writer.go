package spirv

import (
	"encoding/binary"
	"math"
)

// ModuleBuilder builds complete SPIR-V modules.
//
// Instructions are collected per logical section and written in the order
// the SPIR-V specification requires, regardless of the order the Add*
// methods were called in.
type ModuleBuilder struct {
	version   Version
	generator uint32

	// Sections (ordered per SPIR-V spec)
	capabilities   []Instruction
	extInstImports []Instruction
	memoryModel    *Instruction
	entryPoints    []Instruction
	executionModes []Instruction
	debugNames     []Instruction // OpName, OpMemberName
	annotations    []Instruction // OpDecorate, OpMemberDecorate
	types          []Instruction // OpType*, OpConstant*, global OpVariable
	functions      []Instruction // OpFunction...OpFunctionEnd

	nextID uint32
}

// NewModuleBuilder creates a new SPIR-V module builder.
func NewModuleBuilder(version Version) *ModuleBuilder {
	return &ModuleBuilder{
		version:   version,
		generator: GeneratorID,
		nextID:    1,
	}
}

// AllocID allocates a new SPIR-V ID.
func (b *ModuleBuilder) AllocID() uint32 {
	id := b.nextID
	b.nextID++
	return id
}

// AddCapability adds a capability.
func (b *ModuleBuilder) AddCapability(capability Capability) {
	b.capabilities = append(b.capabilities, Instruction{Opcode: OpCapability, Operands: []uint32{uint32(capability)}})
}

// AddExtInstImport imports an extended instruction set.
func (b *ModuleBuilder) AddExtInstImport(name string) uint32 {
	id := b.AllocID()
	ops := append([]uint32{id}, EncodeString(name)...)
	b.extInstImports = append(b.extInstImports, Instruction{Opcode: OpExtInstImport, Operands: ops})
	return id
}

// SetMemoryModel sets the addressing and memory model.
func (b *ModuleBuilder) SetMemoryModel(addressing AddressingModel, memory MemoryModel) {
	b.memoryModel = &Instruction{Opcode: OpMemoryModel, Operands: []uint32{uint32(addressing), uint32(memory)}}
}

// AddEntryPoint declares an entry point.
func (b *ModuleBuilder) AddEntryPoint(model ExecutionModel, funcID uint32, name string, interfaces ...uint32) {
	ops := []uint32{uint32(model), funcID}
	ops = append(ops, EncodeString(name)...)
	ops = append(ops, interfaces...)
	b.entryPoints = append(b.entryPoints, Instruction{Opcode: OpEntryPoint, Operands: ops})
}

// AddExecutionMode adds an execution mode for an entry point.
func (b *ModuleBuilder) AddExecutionMode(entryPoint uint32, mode ExecutionMode, params ...uint32) {
	ops := append([]uint32{entryPoint, uint32(mode)}, params...)
	b.executionModes = append(b.executionModes, Instruction{Opcode: OpExecutionMode, Operands: ops})
}

// AddName attaches a debug name to an id.
func (b *ModuleBuilder) AddName(id uint32, name string) {
	ops := append([]uint32{id}, EncodeString(name)...)
	b.debugNames = append(b.debugNames, Instruction{Opcode: OpName, Operands: ops})
}

// AddDecorate decorates an id.
func (b *ModuleBuilder) AddDecorate(id uint32, decoration Decoration, params ...uint32) {
	ops := append([]uint32{id, uint32(decoration)}, params...)
	b.annotations = append(b.annotations, Instruction{Opcode: OpDecorate, Operands: ops})
}

func (b *ModuleBuilder) addType(op OpCode, operands ...uint32) uint32 {
	id := b.AllocID()
	b.types = append(b.types, Instruction{Opcode: op, Operands: append([]uint32{id}, operands...)})
	return id
}

// AddTypeVoid adds the void type.
func (b *ModuleBuilder) AddTypeVoid() uint32 {
	return b.addType(OpTypeVoid)
}

// AddTypeFloat adds a floating point type of the given bit width.
func (b *ModuleBuilder) AddTypeFloat(width uint32) uint32 {
	return b.addType(OpTypeFloat, width)
}

// AddTypeInt adds an integer type.
func (b *ModuleBuilder) AddTypeInt(width uint32, signed bool) uint32 {
	var signedness uint32
	if signed {
		signedness = 1
	}
	return b.addType(OpTypeInt, width, signedness)
}

// AddTypeVector adds a vector type.
func (b *ModuleBuilder) AddTypeVector(componentType uint32, count uint32) uint32 {
	return b.addType(OpTypeVector, componentType, count)
}

// AddTypeMatrix adds a matrix type.
func (b *ModuleBuilder) AddTypeMatrix(columnType uint32, columnCount uint32) uint32 {
	return b.addType(OpTypeMatrix, columnType, columnCount)
}

// AddTypeArray adds an array type. length is the id of a constant.
func (b *ModuleBuilder) AddTypeArray(elementType uint32, length uint32) uint32 {
	return b.addType(OpTypeArray, elementType, length)
}

// AddTypeImage adds a sampled 2D float image type.
func (b *ModuleBuilder) AddTypeImage(sampledType uint32) uint32 {
	// Dim 2D, no depth, not arrayed, single sampled, sampled, unknown format
	return b.addType(OpTypeImage, sampledType, 1, 0, 0, 0, 1, 0)
}

// AddTypeSampledImage adds a combined image sampler type.
func (b *ModuleBuilder) AddTypeSampledImage(imageType uint32) uint32 {
	return b.addType(OpTypeSampledImage, imageType)
}

// AddTypePointer adds a pointer type.
func (b *ModuleBuilder) AddTypePointer(storageClass StorageClass, baseType uint32) uint32 {
	return b.addType(OpTypePointer, uint32(storageClass), baseType)
}

// AddTypeFunction adds a function type.
func (b *ModuleBuilder) AddTypeFunction(returnType uint32, paramTypes ...uint32) uint32 {
	return b.addType(OpTypeFunction, append([]uint32{returnType}, paramTypes...)...)
}

// AddConstant adds a scalar constant with raw literal words.
func (b *ModuleBuilder) AddConstant(typeID uint32, values ...uint32) uint32 {
	id := b.AllocID()
	ops := append([]uint32{typeID, id}, values...)
	b.types = append(b.types, Instruction{Opcode: OpConstant, Operands: ops})
	return id
}

// AddConstantFloat32 adds a 32-bit float constant.
func (b *ModuleBuilder) AddConstantFloat32(typeID uint32, value float32) uint32 {
	return b.AddConstant(typeID, math.Float32bits(value))
}

// AddVariable adds a module-scope variable.
func (b *ModuleBuilder) AddVariable(pointerType uint32, storageClass StorageClass) uint32 {
	id := b.AllocID()
	b.types = append(b.types, Instruction{Opcode: OpVariable, Operands: []uint32{pointerType, id, uint32(storageClass)}})
	return id
}

// AddFunctionInstruction appends an instruction to the function section and
// returns the id it defines, if any. Result ids come from AllocID.
func (b *ModuleBuilder) AddFunctionInstruction(op OpCode, operands ...uint32) uint32 {
	inst := Instruction{Opcode: op, Operands: operands}
	id, _ := inst.ResultID()
	b.functions = append(b.functions, inst)
	if id >= b.nextID {
		b.nextID = id + 1
	}
	return id
}

// Instructions returns the collected instructions in section order.
func (b *ModuleBuilder) Instructions() []Instruction {
	var all []Instruction
	all = append(all, b.capabilities...)
	all = append(all, b.extInstImports...)
	if b.memoryModel != nil {
		all = append(all, *b.memoryModel)
	}
	all = append(all, b.entryPoints...)
	all = append(all, b.executionModes...)
	all = append(all, b.debugNames...)
	all = append(all, b.annotations...)
	all = append(all, b.types...)
	all = append(all, b.functions...)
	return all
}

// Build builds the SPIR-V binary.
func (b *ModuleBuilder) Build() []byte {
	return Encode(b.version, b.generator, b.nextID, b.Instructions())
}

// Encode writes a SPIR-V header followed by the given instructions.
func Encode(version Version, generator, bound uint32, instructions []Instruction) []byte {
	totalWords := headerWords
	for _, inst := range instructions {
		totalWords += len(inst.Operands) + 1
	}

	buffer := make([]byte, totalWords*4)
	binary.LittleEndian.PutUint32(buffer[0:], MagicNumber)
	binary.LittleEndian.PutUint32(buffer[4:], versionToWord(version))
	binary.LittleEndian.PutUint32(buffer[8:], generator)
	binary.LittleEndian.PutUint32(buffer[12:], bound)
	binary.LittleEndian.PutUint32(buffer[16:], 0) // schema

	offset := headerWords * 4
	for _, inst := range instructions {
		for _, word := range inst.Encode() {
			binary.LittleEndian.PutUint32(buffer[offset:], word)
			offset += 4
		}
	}
	return buffer
}
