package spirv

import "fmt"

// Version represents a SPIR-V version.
type Version struct {
	Major uint8
	Minor uint8
}

// Common SPIR-V versions
var (
	Version1_0 = Version{1, 0}
	Version1_3 = Version{1, 3}
	Version1_5 = Version{1, 5}
)

// String returns the version as "major.minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

func versionToWord(v Version) uint32 {
	return uint32(v.Major)<<16 | uint32(v.Minor)<<8
}

func wordToVersion(w uint32) Version {
	return Version{Major: uint8(w >> 16), Minor: uint8(w >> 8)} //nolint:gosec // G115: masked by truncation
}

// SPIR-V magic number and constants
const (
	MagicNumber = 0x07230203
	GeneratorID = 0x00000000 // Unregistered generator
	headerWords = 5
)

// OpCode represents a SPIR-V opcode.
type OpCode uint16

// Opcodes understood by the decoder, assembler and translator.
const (
	OpNop                    OpCode = 0
	OpUndef                  OpCode = 1
	OpSource                 OpCode = 3
	OpSourceExtension        OpCode = 4
	OpName                   OpCode = 5
	OpMemberName             OpCode = 6
	OpString                 OpCode = 7
	OpExtension              OpCode = 10
	OpExtInstImport          OpCode = 11
	OpMemoryModel            OpCode = 14
	OpEntryPoint             OpCode = 15
	OpExecutionMode          OpCode = 16
	OpCapability             OpCode = 17
	OpTypeVoid               OpCode = 19
	OpTypeBool               OpCode = 20
	OpTypeInt                OpCode = 21
	OpTypeFloat              OpCode = 22
	OpTypeVector             OpCode = 23
	OpTypeMatrix             OpCode = 24
	OpTypeImage              OpCode = 25
	OpTypeSampler            OpCode = 26
	OpTypeSampledImage       OpCode = 27
	OpTypeArray              OpCode = 28
	OpTypeStruct             OpCode = 30
	OpTypePointer            OpCode = 32
	OpTypeFunction           OpCode = 33
	OpConstant               OpCode = 43
	OpConstantComposite      OpCode = 44
	OpFunction               OpCode = 54
	OpFunctionParameter      OpCode = 55
	OpFunctionEnd            OpCode = 56
	OpVariable               OpCode = 59
	OpLoad                   OpCode = 61
	OpStore                  OpCode = 62
	OpAccessChain            OpCode = 65
	OpDecorate               OpCode = 71
	OpMemberDecorate         OpCode = 72
	OpVectorShuffle          OpCode = 79
	OpCompositeConstruct     OpCode = 80
	OpCompositeExtract       OpCode = 81
	OpSampledImage           OpCode = 86
	OpImageSampleImplicitLod OpCode = 87
	OpFNegate                OpCode = 127
	OpFAdd                   OpCode = 129
	OpFSub                   OpCode = 131
	OpFMul                   OpCode = 133
	OpFDiv                   OpCode = 136
	OpVectorTimesScalar      OpCode = 142
	OpVectorTimesMatrix      OpCode = 144
	OpMatrixTimesVector      OpCode = 145
	OpMatrixTimesMatrix      OpCode = 146
	OpDot                    OpCode = 148
	OpLabel                  OpCode = 248
	OpBranch                 OpCode = 249
	OpReturn                 OpCode = 253
	OpReturnValue            OpCode = 254
)

// String returns the SPIR-V name of the opcode, or "Op<n>" when unknown.
func (op OpCode) String() string {
	if info, ok := opcodeTable[op]; ok {
		return info.name
	}
	return fmt.Sprintf("Op%d", uint16(op))
}

// StorageClass represents a SPIR-V storage class.
type StorageClass uint32

// Storage classes
const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassWorkgroup       StorageClass = 4
	StorageClassCrossWorkgroup  StorageClass = 5
	StorageClassPrivate         StorageClass = 6
	StorageClassFunction        StorageClass = 7
	StorageClassGeneric         StorageClass = 8
	StorageClassPushConstant    StorageClass = 9
	StorageClassAtomicCounter   StorageClass = 10
	StorageClassImage           StorageClass = 11
	StorageClassStorageBuffer   StorageClass = 12
)

// Decoration represents a SPIR-V decoration.
type Decoration uint32

// Common decorations
const (
	DecorationRelaxedPrecision Decoration = 0
	DecorationBlock            Decoration = 2
	DecorationRowMajor         Decoration = 4
	DecorationColMajor         Decoration = 5
	DecorationArrayStride      Decoration = 6
	DecorationMatrixStride     Decoration = 7
	DecorationBuiltIn          Decoration = 11
	DecorationNoPerspective    Decoration = 13
	DecorationFlat             Decoration = 14
	DecorationLocation         Decoration = 30
	DecorationBinding          Decoration = 33
	DecorationDescriptorSet    Decoration = 34
	DecorationOffset           Decoration = 35
)

// BuiltIn represents a SPIR-V builtin value.
type BuiltIn uint32

// Builtins
const (
	BuiltInPosition      BuiltIn = 0
	BuiltInPointSize     BuiltIn = 1
	BuiltInVertexID      BuiltIn = 5
	BuiltInInstanceID    BuiltIn = 6
	BuiltInFragCoord     BuiltIn = 15
	BuiltInFrontFacing   BuiltIn = 17
	BuiltInFragDepth     BuiltIn = 22
	BuiltInVertexIndex   BuiltIn = 42
	BuiltInInstanceIndex BuiltIn = 43
)

// ExecutionModel represents a SPIR-V execution model (shader stage).
type ExecutionModel uint32

// Execution models
const (
	ExecutionModelVertex                 ExecutionModel = 0
	ExecutionModelTessellationControl    ExecutionModel = 1
	ExecutionModelTessellationEvaluation ExecutionModel = 2
	ExecutionModelGeometry               ExecutionModel = 3
	ExecutionModelFragment               ExecutionModel = 4
	ExecutionModelGLCompute              ExecutionModel = 5
)

// ExecutionMode represents a SPIR-V execution mode.
type ExecutionMode uint32

// Execution modes
const (
	ExecutionModeOriginUpperLeft ExecutionMode = 7
	ExecutionModeOriginLowerLeft ExecutionMode = 8
	ExecutionModeDepthReplacing  ExecutionMode = 12
	ExecutionModeLocalSize       ExecutionMode = 17
)

// Capability represents a SPIR-V capability.
type Capability uint32

// Common capabilities
const (
	CapabilityMatrix Capability = 0
	CapabilityShader Capability = 1
)

// AddressingModel represents a SPIR-V addressing model.
type AddressingModel uint32

// Addressing models
const (
	AddressingModelLogical AddressingModel = 0
)

// MemoryModel represents a SPIR-V memory model.
type MemoryModel uint32

// Memory models
const (
	MemoryModelSimple  MemoryModel = 0
	MemoryModelGLSL450 MemoryModel = 1
)

// Enumerant spellings used by Assemble and Disassemble.
var (
	storageClassNames = map[uint32]string{
		0: "UniformConstant", 1: "Input", 2: "Uniform", 3: "Output",
		4: "Workgroup", 5: "CrossWorkgroup", 6: "Private", 7: "Function",
		8: "Generic", 9: "PushConstant", 10: "AtomicCounter", 11: "Image",
		12: "StorageBuffer",
	}

	decorationNames = map[uint32]string{
		0: "RelaxedPrecision", 1: "SpecId", 2: "Block", 3: "BufferBlock",
		4: "RowMajor", 5: "ColMajor", 6: "ArrayStride", 7: "MatrixStride",
		11: "BuiltIn", 13: "NoPerspective", 14: "Flat", 16: "Centroid",
		24: "NonWritable", 25: "NonReadable", 30: "Location", 31: "Component",
		33: "Binding", 34: "DescriptorSet", 35: "Offset",
	}

	builtInNames = map[uint32]string{
		0: "Position", 1: "PointSize", 3: "CullDistance", 5: "VertexId",
		6: "InstanceId", 15: "FragCoord", 16: "PointCoord", 17: "FrontFacing",
		22: "FragDepth", 42: "VertexIndex", 43: "InstanceIndex",
	}

	executionModelNames = map[uint32]string{
		0: "Vertex", 1: "TessellationControl", 2: "TessellationEvaluation",
		3: "Geometry", 4: "Fragment", 5: "GLCompute", 6: "Kernel",
	}

	executionModeNames = map[uint32]string{
		7: "OriginUpperLeft", 8: "OriginLowerLeft", 9: "EarlyFragmentTests",
		12: "DepthReplacing", 14: "DepthGreater", 15: "DepthLess",
		16: "DepthUnchanged", 17: "LocalSize",
	}

	capabilityNames = map[uint32]string{
		0: "Matrix", 1: "Shader", 2: "Geometry", 3: "Tessellation",
		9: "Float16", 10: "Float64", 11: "Int64", 22: "Int16", 39: "InputAttachment",
	}

	addressingModelNames = map[uint32]string{
		0: "Logical", 1: "Physical32", 2: "Physical64",
	}

	memoryModelNames = map[uint32]string{
		0: "Simple", 1: "GLSL450", 2: "OpenCL", 3: "Vulkan",
	}

	functionControlNames = map[uint32]string{
		0: "None", 1: "Inline", 2: "DontInline", 4: "Pure", 8: "Const",
	}

	dimNames = map[uint32]string{
		0: "1D", 1: "2D", 2: "3D", 3: "Cube", 4: "Rect", 5: "Buffer", 6: "SubpassData",
	}
)

// String returns the SPIR-V spelling of the storage class.
func (sc StorageClass) String() string {
	return lookup(storageClassNames, uint32(sc))
}

// String returns the SPIR-V spelling of the decoration.
func (d Decoration) String() string {
	return lookup(decorationNames, uint32(d))
}

// String returns the SPIR-V spelling of the builtin.
func (b BuiltIn) String() string {
	return lookup(builtInNames, uint32(b))
}

// String returns the SPIR-V spelling of the execution model.
func (m ExecutionModel) String() string {
	return lookup(executionModelNames, uint32(m))
}

func lookup(m map[uint32]string, v uint32) string {
	if s, ok := m[v]; ok {
		return s
	}
	return fmt.Sprintf("%d", v)
}

// reverseLookup resolves an enumerant spelling back to its value.
func reverseLookup(m map[uint32]string, name string) (uint32, bool) {
	for v, s := range m {
		if s == name {
			return v, true
		}
	}
	return 0, false
}
