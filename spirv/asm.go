package spirv

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AssembleError reports a malformed line of SPIR-V text.
type AssembleError struct {
	Line    int
	Message string
}

// Error implements the error interface.
func (e *AssembleError) Error() string {
	return fmt.Sprintf("spirv: line %d: %s", e.Line, e.Message)
}

// Assemble parses the text form produced by Disassemble into a Module.
// Header comments are ignored; the version is always 1.0.
func Assemble(text string) (*Module, error) {
	var instructions []Instruction

	scanner := bufio.NewScanner(strings.NewReader(text))
	for lineNum := 1; scanner.Scan(); lineNum++ {
		tokens, err := tokenize(scanner.Text())
		if err != nil {
			return nil, &AssembleError{Line: lineNum, Message: err.Error()}
		}
		if len(tokens) == 0 {
			continue
		}
		inst, err := assembleLine(tokens)
		if err != nil {
			return nil, &AssembleError{Line: lineNum, Message: err.Error()}
		}
		instructions = append(instructions, inst)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return NewModule(instructions)
}

func assembleLine(tokens []string) (Instruction, error) {
	var result string
	if len(tokens) >= 2 && tokens[1] == "=" {
		result = tokens[0]
		tokens = tokens[2:]
	}
	if len(tokens) == 0 {
		return Instruction{}, fmt.Errorf("missing opcode")
	}

	opcode, info, err := parseOpcode(tokens[0])
	if err != nil {
		return Instruction{}, err
	}
	operands := tokens[1:]

	var words []uint32
	if info.resultType {
		if len(operands) == 0 {
			return Instruction{}, fmt.Errorf("%s needs a result type", info.name)
		}
		id, err := parseID(operands[0])
		if err != nil {
			return Instruction{}, err
		}
		words = append(words, id)
		operands = operands[1:]
	}
	if info.result {
		if result == "" {
			return Instruction{}, fmt.Errorf("%s needs a result id", info.name)
		}
		id, err := parseID(result)
		if err != nil {
			return Instruction{}, err
		}
		words = append(words, id)
	} else if result != "" {
		return Instruction{}, fmt.Errorf("%s does not define a result", info.name)
	}

	builtInNext := false
	for i, tok := range operands {
		kind, ok := info.operandKindAt(i)
		if !ok {
			return Instruction{}, fmt.Errorf("too many operands for %s", info.name)
		}
		switch {
		case kind == kindID:
			id, err := parseID(tok)
			if err != nil {
				return Instruction{}, err
			}
			words = append(words, id)
		case kind == kindString:
			str, err := strconv.Unquote(tok)
			if err != nil {
				return Instruction{}, fmt.Errorf("bad string literal %s", tok)
			}
			words = append(words, EncodeString(str)...)
		case kind == kindLiteral && builtInNext:
			v, err := parseEnumerant(builtInNames, tok)
			if err != nil {
				return Instruction{}, err
			}
			words = append(words, v)
			builtInNext = false
		case kind == kindLiteral:
			v, err := parseLiteral(tok)
			if err != nil {
				return Instruction{}, err
			}
			words = append(words, v)
		default:
			v, err := parseEnumerant(enumerantTable(kind), tok)
			if err != nil {
				return Instruction{}, err
			}
			builtInNext = kind == kindDecoration && Decoration(v) == DecorationBuiltIn
			words = append(words, v)
		}
	}

	return Instruction{Opcode: opcode, Operands: words}, nil
}

// parseOpcode resolves "OpName" spellings and the numeric "Op123" form.
// Numeric opcodes outside the table take literal operands only.
func parseOpcode(tok string) (OpCode, opcodeInfo, error) {
	if op, ok := opcodeByName(tok); ok {
		return op, opcodeTable[op], nil
	}
	if n, err := strconv.ParseUint(strings.TrimPrefix(tok, "Op"), 10, 16); err == nil && strings.HasPrefix(tok, "Op") {
		op := OpCode(n)
		if info, ok := opcodeTable[op]; ok {
			return op, info, nil
		}
		return op, opcodeInfo{name: tok, operands: []operandKind{kindLiteral}, variadic: true}, nil
	}
	return 0, opcodeInfo{}, fmt.Errorf("unknown opcode %q", tok)
}

func parseID(tok string) (uint32, error) {
	if !strings.HasPrefix(tok, "%") {
		return 0, fmt.Errorf("expected id, got %q", tok)
	}
	n, err := strconv.ParseUint(tok[1:], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad id %q", tok)
	}
	return uint32(n), nil
}

// parseLiteral accepts unsigned, negative and floating point spellings.
// A token with a decimal point or exponent is stored as IEEE-754 single
// precision bits, so float constants must be written as "1.0", not "1".
func parseLiteral(tok string) (uint32, error) {
	if n, err := strconv.ParseUint(tok, 0, 32); err == nil {
		return uint32(n), nil
	}
	if n, err := strconv.ParseInt(tok, 10, 32); err == nil {
		return uint32(int32(n)), nil //nolint:gosec // G115: two's complement encoding
	}
	if f, err := strconv.ParseFloat(tok, 32); err == nil {
		return math.Float32bits(float32(f)), nil
	}
	return 0, fmt.Errorf("bad literal %q", tok)
}

func parseEnumerant(table map[uint32]string, tok string) (uint32, error) {
	if v, ok := reverseLookup(table, tok); ok {
		return v, nil
	}
	if n, err := strconv.ParseUint(tok, 10, 32); err == nil {
		return uint32(n), nil
	}
	return 0, fmt.Errorf("unknown enumerant %q", tok)
}

// tokenize splits a line into whitespace separated tokens, keeping quoted
// strings intact and dropping ';' comments.
func tokenize(line string) ([]string, error) {
	var tokens []string
	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == ';':
			return tokens, nil
		case c == '"':
			j := i + 1
			for j < len(line) && line[j] != '"' {
				if line[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(line) {
				return nil, fmt.Errorf("unterminated string")
			}
			tokens = append(tokens, line[i:j+1])
			i = j + 1
		default:
			j := i
			for j < len(line) && line[j] != ' ' && line[j] != '\t' && line[j] != ';' {
				j++
			}
			tokens = append(tokens, line[i:j])
			i = j
		}
	}
	return tokens, nil
}
