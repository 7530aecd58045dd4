package spirv

// Instruction is one decoded SPIR-V instruction.
//
// Operands holds every word after the opcode word, in encoding order:
// result type id (if any), result id (if any), then the remaining operands.
// String literals stay packed in their words; use DecodeString to read them.
type Instruction struct {
	Opcode   OpCode
	Operands []uint32
}

// Encode encodes the instruction to binary words.
func (i Instruction) Encode() []uint32 {
	wordCount := uint32(len(i.Operands) + 1) //nolint:gosec // G115: instruction length fits in 16 bits
	result := make([]uint32, 0, wordCount)
	result = append(result, (wordCount<<16)|uint32(i.Opcode))
	result = append(result, i.Operands...)
	return result
}

// ResultID returns the id defined by the instruction, if it defines one.
func (i Instruction) ResultID() (uint32, bool) {
	info, ok := opcodeTable[i.Opcode]
	if !ok || !info.result {
		return 0, false
	}
	idx := 0
	if info.resultType {
		idx = 1
	}
	if idx >= len(i.Operands) {
		return 0, false
	}
	return i.Operands[idx], true
}

// operandKind describes how an operand word is spelled in text form.
type operandKind uint8

const (
	kindID operandKind = iota
	kindLiteral
	kindString
	kindStorageClass
	kindDecoration
	kindExecutionModel
	kindExecutionMode
	kindCapability
	kindAddressingModel
	kindMemoryModel
	kindDim
	kindFunctionControl
)

// opcodeInfo describes the shape of an opcode.
//
// operands lists the kinds after the result type and result id. When
// variadic is set the last kind repeats for the rest of the instruction.
type opcodeInfo struct {
	name       string
	resultType bool
	result     bool
	operands   []operandKind
	variadic   bool
}

var (
	noOperands = []operandKind{}
	oneID      = []operandKind{kindID}
	twoIDs     = []operandKind{kindID, kindID}
)

var opcodeTable = map[OpCode]opcodeInfo{
	OpNop:             {name: "OpNop", operands: noOperands},
	OpUndef:           {name: "OpUndef", resultType: true, result: true, operands: noOperands},
	OpSource:          {name: "OpSource", operands: []operandKind{kindLiteral}, variadic: true},
	OpSourceExtension: {name: "OpSourceExtension", operands: []operandKind{kindString}},
	OpName:            {name: "OpName", operands: []operandKind{kindID, kindString}},
	OpMemberName:      {name: "OpMemberName", operands: []operandKind{kindID, kindLiteral, kindString}},
	OpString:          {name: "OpString", result: true, operands: []operandKind{kindString}},
	OpExtension:       {name: "OpExtension", operands: []operandKind{kindString}},
	OpExtInstImport:   {name: "OpExtInstImport", result: true, operands: []operandKind{kindString}},
	OpMemoryModel:     {name: "OpMemoryModel", operands: []operandKind{kindAddressingModel, kindMemoryModel}},
	OpEntryPoint: {
		name:     "OpEntryPoint",
		operands: []operandKind{kindExecutionModel, kindID, kindString, kindID},
		variadic: true,
	},
	OpExecutionMode:    {name: "OpExecutionMode", operands: []operandKind{kindID, kindExecutionMode, kindLiteral}, variadic: true},
	OpCapability:       {name: "OpCapability", operands: []operandKind{kindCapability}},
	OpTypeVoid:         {name: "OpTypeVoid", result: true, operands: noOperands},
	OpTypeBool:         {name: "OpTypeBool", result: true, operands: noOperands},
	OpTypeInt:          {name: "OpTypeInt", result: true, operands: []operandKind{kindLiteral, kindLiteral}},
	OpTypeFloat:        {name: "OpTypeFloat", result: true, operands: []operandKind{kindLiteral}},
	OpTypeVector:       {name: "OpTypeVector", result: true, operands: []operandKind{kindID, kindLiteral}},
	OpTypeMatrix:       {name: "OpTypeMatrix", result: true, operands: []operandKind{kindID, kindLiteral}},
	OpTypeImage:        {name: "OpTypeImage", result: true, operands: []operandKind{kindID, kindDim, kindLiteral}, variadic: true},
	OpTypeSampler:      {name: "OpTypeSampler", result: true, operands: noOperands},
	OpTypeSampledImage: {name: "OpTypeSampledImage", result: true, operands: oneID},
	OpTypeArray:        {name: "OpTypeArray", result: true, operands: twoIDs},
	OpTypeStruct:       {name: "OpTypeStruct", result: true, operands: oneID, variadic: true},
	OpTypePointer:      {name: "OpTypePointer", result: true, operands: []operandKind{kindStorageClass, kindID}},
	OpTypeFunction:     {name: "OpTypeFunction", result: true, operands: oneID, variadic: true},
	OpConstant:         {name: "OpConstant", resultType: true, result: true, operands: []operandKind{kindLiteral}, variadic: true},
	OpConstantComposite: {
		name: "OpConstantComposite", resultType: true, result: true, operands: oneID, variadic: true,
	},
	OpFunction:          {name: "OpFunction", resultType: true, result: true, operands: []operandKind{kindFunctionControl, kindID}},
	OpFunctionParameter: {name: "OpFunctionParameter", resultType: true, result: true, operands: noOperands},
	OpFunctionEnd:       {name: "OpFunctionEnd", operands: noOperands},
	OpVariable:          {name: "OpVariable", resultType: true, result: true, operands: []operandKind{kindStorageClass, kindID}},
	OpLoad:              {name: "OpLoad", resultType: true, result: true, operands: []operandKind{kindID, kindLiteral}, variadic: true},
	OpStore:             {name: "OpStore", operands: []operandKind{kindID, kindID, kindLiteral}, variadic: true},
	OpAccessChain:       {name: "OpAccessChain", resultType: true, result: true, operands: oneID, variadic: true},
	OpDecorate:          {name: "OpDecorate", operands: []operandKind{kindID, kindDecoration, kindLiteral}, variadic: true},
	OpMemberDecorate: {
		name: "OpMemberDecorate", operands: []operandKind{kindID, kindLiteral, kindDecoration, kindLiteral}, variadic: true,
	},
	OpVectorShuffle: {
		name: "OpVectorShuffle", resultType: true, result: true, operands: []operandKind{kindID, kindID, kindLiteral}, variadic: true,
	},
	OpCompositeConstruct: {name: "OpCompositeConstruct", resultType: true, result: true, operands: oneID, variadic: true},
	OpCompositeExtract: {
		name: "OpCompositeExtract", resultType: true, result: true, operands: []operandKind{kindID, kindLiteral}, variadic: true,
	},
	OpSampledImage: {name: "OpSampledImage", resultType: true, result: true, operands: twoIDs},
	OpImageSampleImplicitLod: {
		name: "OpImageSampleImplicitLod", resultType: true, result: true, operands: []operandKind{kindID, kindID, kindLiteral, kindID}, variadic: true,
	},
	OpFNegate:           {name: "OpFNegate", resultType: true, result: true, operands: oneID},
	OpFAdd:              {name: "OpFAdd", resultType: true, result: true, operands: twoIDs},
	OpFSub:              {name: "OpFSub", resultType: true, result: true, operands: twoIDs},
	OpFMul:              {name: "OpFMul", resultType: true, result: true, operands: twoIDs},
	OpFDiv:              {name: "OpFDiv", resultType: true, result: true, operands: twoIDs},
	OpVectorTimesScalar: {name: "OpVectorTimesScalar", resultType: true, result: true, operands: twoIDs},
	OpVectorTimesMatrix: {name: "OpVectorTimesMatrix", resultType: true, result: true, operands: twoIDs},
	OpMatrixTimesVector: {name: "OpMatrixTimesVector", resultType: true, result: true, operands: twoIDs},
	OpMatrixTimesMatrix: {name: "OpMatrixTimesMatrix", resultType: true, result: true, operands: twoIDs},
	OpDot:               {name: "OpDot", resultType: true, result: true, operands: twoIDs},
	OpLabel:             {name: "OpLabel", result: true, operands: noOperands},
	OpBranch:            {name: "OpBranch", operands: oneID},
	OpReturn:            {name: "OpReturn", operands: noOperands},
	OpReturnValue:       {name: "OpReturnValue", operands: oneID},
}

// opcodeByName resolves an opcode spelling such as "OpTypeFloat".
func opcodeByName(name string) (OpCode, bool) {
	for op, info := range opcodeTable {
		if info.name == name {
			return op, true
		}
	}
	return 0, false
}

// operandKindAt returns the kind of the i-th operand after the result words.
// The second boolean is false past the end of a non-variadic layout.
func (info opcodeInfo) operandKindAt(i int) (operandKind, bool) {
	if i < len(info.operands) {
		return info.operands[i], true
	}
	if info.variadic && len(info.operands) > 0 {
		return info.operands[len(info.operands)-1], true
	}
	return kindLiteral, false
}

// EncodeString packs a null-terminated UTF-8 string into words.
func EncodeString(s string) []uint32 {
	bytes := []byte(s)
	bytes = append(bytes, 0)

	// Pad to word boundary
	for len(bytes)%4 != 0 {
		bytes = append(bytes, 0)
	}

	words := make([]uint32, 0, len(bytes)/4)
	for i := 0; i < len(bytes); i += 4 {
		word := uint32(bytes[i]) |
			uint32(bytes[i+1])<<8 |
			uint32(bytes[i+2])<<16 |
			uint32(bytes[i+3])<<24
		words = append(words, word)
	}
	return words
}

// DecodeString reads a null-terminated string from words.
// It returns the string and the number of words it occupied.
// An unterminated string consumes all words.
func DecodeString(words []uint32) (string, int) {
	buf := make([]byte, 0, len(words)*4)
	for i, w := range words {
		for shift := 0; shift < 32; shift += 8 {
			b := byte(w >> shift)
			if b == 0 {
				return string(buf), i + 1
			}
			buf = append(buf, b)
		}
	}
	return string(buf), len(words)
}
