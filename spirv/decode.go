package spirv

import (
	"encoding/binary"
	"fmt"
)

// Module is a decoded SPIR-V module: the ordered instruction stream plus
// the tables the translator needs up front.
type Module struct {
	Version   Version
	Generator uint32
	Bound     uint32

	// Instructions holds every instruction after the header, in order.
	Instructions []Instruction

	// Names maps ids to their OpName debug names.
	Names map[uint32]string

	// EntryPoints lists the OpEntryPoint declarations in module order.
	EntryPoints []EntryPoint
}

// EntryPoint is one OpEntryPoint declaration.
type EntryPoint struct {
	Model    ExecutionModel
	Function uint32
	Name     string
}

// ExecutionModel returns the execution model of the first entry point.
func (m *Module) ExecutionModel() (ExecutionModel, bool) {
	if len(m.EntryPoints) == 0 {
		return 0, false
	}
	return m.EntryPoints[0].Model, true
}

// DecodeError reports malformed SPIR-V binary input.
type DecodeError struct {
	// Offset is the byte offset of the offending word.
	Offset int

	Message string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("spirv: decode at offset 0x%X: %s", e.Offset, e.Message)
}

// Decode parses a little-endian SPIR-V binary.
func Decode(data []byte) (*Module, error) {
	if len(data) < headerWords*4 {
		return nil, &DecodeError{Offset: 0, Message: "file too small for header"}
	}
	if len(data)%4 != 0 {
		return nil, &DecodeError{Offset: len(data) &^ 3, Message: "length is not a multiple of 4"}
	}

	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != MagicNumber {
		return nil, &DecodeError{Offset: 0, Message: fmt.Sprintf("invalid magic 0x%08X", magic)}
	}

	module := &Module{
		Version:   wordToVersion(binary.LittleEndian.Uint32(data[4:8])),
		Generator: binary.LittleEndian.Uint32(data[8:12]),
		Bound:     binary.LittleEndian.Uint32(data[12:16]),
		Names:     make(map[uint32]string),
	}

	offset := headerWords * 4
	for offset < len(data) {
		word := binary.LittleEndian.Uint32(data[offset:])
		opcode := OpCode(word & 0xFFFF)
		wordCount := int(word >> 16)

		if wordCount == 0 || offset+wordCount*4 > len(data) {
			return nil, &DecodeError{Offset: offset, Message: fmt.Sprintf("invalid word count %d for %s", wordCount, opcode)}
		}

		ops := make([]uint32, wordCount-1)
		for i := range ops {
			ops[i] = binary.LittleEndian.Uint32(data[offset+4+i*4:])
		}

		inst := Instruction{Opcode: opcode, Operands: ops}
		if err := module.record(inst); err != nil {
			return nil, &DecodeError{Offset: offset, Message: err.Error()}
		}
		module.Instructions = append(module.Instructions, inst)
		offset += wordCount * 4
	}

	return module, nil
}

// NewModule builds a Module from an already decoded instruction stream,
// collecting names and entry points the same way Decode does.
func NewModule(instructions []Instruction) (*Module, error) {
	module := &Module{
		Version: Version1_0,
		Names:   make(map[uint32]string),
	}
	for i, inst := range instructions {
		if err := module.record(inst); err != nil {
			return nil, fmt.Errorf("spirv: instruction %d: %w", i, err)
		}
		if id, ok := inst.ResultID(); ok && id >= module.Bound {
			module.Bound = id + 1
		}
	}
	module.Instructions = instructions
	return module, nil
}

// record extracts the name table and entry points from debug instructions.
func (m *Module) record(inst Instruction) error {
	switch inst.Opcode {
	case OpName:
		if len(inst.Operands) < 2 {
			return fmt.Errorf("%s needs a target and a name", inst.Opcode)
		}
		name, _ := DecodeString(inst.Operands[1:])
		m.Names[inst.Operands[0]] = name

	case OpEntryPoint:
		if len(inst.Operands) < 3 {
			return fmt.Errorf("%s needs a model, a function and a name", inst.Opcode)
		}
		name, _ := DecodeString(inst.Operands[2:])
		m.EntryPoints = append(m.EntryPoints, EntryPoint{
			Model:    ExecutionModel(inst.Operands[0]),
			Function: inst.Operands[1],
			Name:     name,
		})
	}
	return nil
}
