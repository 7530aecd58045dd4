package spirv

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// resultColumn is the width of the right-aligned "%id =" column.
const resultColumn = 10

// Disassemble writes the text form of the module to w, one instruction per line.
func Disassemble(w io.Writer, module *Module) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "; SPIR-V\n")
	fmt.Fprintf(bw, "; Version: %s\n", module.Version)
	fmt.Fprintf(bw, "; Generator: 0x%08X\n", module.Generator)
	fmt.Fprintf(bw, "; Bound: %d\n", module.Bound)
	fmt.Fprintln(bw)

	for _, inst := range module.Instructions {
		bw.WriteString(FormatInstruction(inst))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// FormatInstruction renders one instruction in text form.
func FormatInstruction(inst Instruction) string {
	info, known := opcodeTable[inst.Opcode]
	if !known {
		return formatGeneric(inst)
	}

	ops := inst.Operands
	var typeOperand, result string
	if info.resultType && len(ops) > 0 {
		typeOperand = formatID(ops[0])
		ops = ops[1:]
	}
	if info.result && len(ops) > 0 {
		result = formatID(ops[0])
		ops = ops[1:]
	}

	var sb strings.Builder
	if result != "" {
		fmt.Fprintf(&sb, "%*s = %s", resultColumn, result, info.name)
	} else {
		fmt.Fprintf(&sb, "%*s   %s", resultColumn, "", info.name)
	}
	if typeOperand != "" {
		sb.WriteString(" ")
		sb.WriteString(typeOperand)
	}

	builtInNext := false
	for i, pos := 0, 0; pos < len(ops); i++ {
		kind, _ := info.operandKindAt(i)
		sb.WriteString(" ")
		switch kind {
		case kindID:
			sb.WriteString(formatID(ops[pos]))
			pos++
		case kindString:
			str, words := DecodeString(ops[pos:])
			sb.WriteString(strconv.Quote(str))
			pos += words
		case kindDecoration:
			builtInNext = Decoration(ops[pos]) == DecorationBuiltIn
			sb.WriteString(lookup(decorationNames, ops[pos]))
			pos++
		case kindLiteral:
			if builtInNext {
				sb.WriteString(lookup(builtInNames, ops[pos]))
				builtInNext = false
			} else {
				sb.WriteString(strconv.FormatUint(uint64(ops[pos]), 10))
			}
			pos++
		default:
			sb.WriteString(lookup(enumerantTable(kind), ops[pos]))
			pos++
		}
	}
	return sb.String()
}

func formatGeneric(inst Instruction) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%*s   %s", resultColumn, "", inst.Opcode)
	for _, op := range inst.Operands {
		sb.WriteString(" ")
		sb.WriteString(strconv.FormatUint(uint64(op), 10))
	}
	return sb.String()
}

func formatID(id uint32) string {
	return "%" + strconv.FormatUint(uint64(id), 10)
}

// enumerantTable returns the spelling table for an enumerant operand kind.
func enumerantTable(kind operandKind) map[uint32]string {
	switch kind {
	case kindStorageClass:
		return storageClassNames
	case kindDecoration:
		return decorationNames
	case kindExecutionModel:
		return executionModelNames
	case kindExecutionMode:
		return executionModeNames
	case kindCapability:
		return capabilityNames
	case kindAddressingModel:
		return addressingModelNames
	case kindMemoryModel:
		return memoryModelNames
	case kindDim:
		return dimNames
	case kindFunctionControl:
		return functionControlNames
	default:
		return nil
	}
}
