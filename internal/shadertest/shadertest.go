// Package shadertest extracts translation test cases from Markdown files.
//
// A test case starts at a heading "Test: <name>" and collects the fenced
// code blocks that follow it:
//
//	## Test: textured quad
//
//	```spvasm
//	%1 = OpTypeFloat 32
//	...
//	```
//
//	```hlsl
//	struct Input {
//	...
//	```
//
// The spvasm fence is the input. A stage fence selects the shader stage;
// hlsl, attributes, diagnostics and error fences are assertions.
package shadertest

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fence languages.
const (
	FenceInput       = "spvasm"
	FenceStage       = "stage"
	FenceHLSL        = "hlsl"
	FenceAttributes  = "attributes"
	FenceDiagnostics = "diagnostics"
	FenceError       = "error"
)

// Case is one test case extracted from Markdown.
type Case struct {
	Name  string // heading text after "Test: "
	Line  int    // line of the heading
	Input string // SPIR-V text
	Stage string // "vertex" unless a stage fence says otherwise

	// Assertions. A nil pointer means the fence was absent.
	HLSL        *string
	Attributes  map[string]int
	Diagnostics []string
	Error       *string
}

// LoadFile reads and parses a Markdown test file.
func LoadFile(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cases, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cases, nil
}

// Parse extracts every test case from a Markdown document.
func Parse(source []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var cases []Case
	var current *Case

	finish := func() error {
		if current == nil {
			return nil
		}
		if err := validate(current); err != nil {
			return err
		}
		cases = append(cases, *current)
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := headingText(n, source)
			name, ok := strings.CutPrefix(heading, "Test: ")
			if !ok {
				return ast.WalkContinue, nil
			}
			if err := finish(); err != nil {
				return ast.WalkStop, err
			}
			current = &Case{Name: name, Line: lineOf(n, source), Stage: "vertex"}
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			line := lineOf(n, source)
			if current == nil {
				if language != "" {
					return ast.WalkStop, fmt.Errorf("line %d: %s fence outside of a test case", line, language)
				}
				return ast.WalkContinue, nil
			}
			if err := current.addFence(language, fenceContent(n, source)); err != nil {
				return ast.WalkStop, fmt.Errorf("line %d: test %q: %w", line, current.Name, err)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return cases, nil
}

// addFence stores one fenced block in the case.
func (c *Case) addFence(language, content string) error {
	switch language {
	case "":
		return nil
	case FenceInput:
		if c.Input != "" {
			return fmt.Errorf("multiple %s fences", FenceInput)
		}
		c.Input = content
	case FenceStage:
		c.Stage = strings.TrimSpace(content)
	case FenceHLSL:
		if c.HLSL != nil {
			return fmt.Errorf("multiple %s fences", FenceHLSL)
		}
		c.HLSL = &content
	case FenceAttributes:
		attrs, err := parseAttributes(content)
		if err != nil {
			return err
		}
		c.Attributes = attrs
	case FenceDiagnostics:
		c.Diagnostics = nonEmptyLines(content)
	case FenceError:
		msg := strings.TrimSpace(content)
		c.Error = &msg
	default:
		return fmt.Errorf("unknown fence language %q", language)
	}
	return nil
}

// validate ensures a case has an input and at least one assertion.
func validate(c *Case) error {
	if c.Input == "" {
		return fmt.Errorf("test %q has no %s fence", c.Name, FenceInput)
	}
	if c.HLSL == nil && c.Attributes == nil && c.Diagnostics == nil && c.Error == nil {
		return fmt.Errorf("test %q has no assertion fences", c.Name)
	}
	return nil
}

// parseAttributes reads "name slot" lines. An empty fence asserts an
// empty map.
func parseAttributes(content string) (map[string]int, error) {
	attrs := make(map[string]int)
	for _, line := range nonEmptyLines(content) {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("attribute line %q: want \"name slot\"", line)
		}
		slot, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("attribute line %q: %w", line, err)
		}
		attrs[fields[0]] = slot
	}
	return attrs, nil
}

func nonEmptyLines(content string) []string {
	lines := []string{}
	for line := range strings.Lines(content) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func headingText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func fenceContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

// lineOf returns the 1-based source line of a block node.
func lineOf(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:min(start, len(source))], []byte("\n")) + 1
}
