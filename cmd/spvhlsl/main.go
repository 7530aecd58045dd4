// Command spvhlsl translates a SPIR-V vertex or fragment shader to HLSL.
//
// Usage:
//
//	spvhlsl [options] <input>
//
// Inputs ending in .spvasm are read as SPIR-V text, anything else as a
// binary module.
//
// Examples:
//
//	spvhlsl shader.vert.spv                       # Translate to stdout
//	spvhlsl -o shader.hlsl shader.vert.spv        # Translate to file
//	spvhlsl -stage fragment shader.spvasm         # Force the stage
//	spvhlsl -attributes attrs.json shader.spv     # Write vertex attribute slots
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"

	"github.com/gogpu/spvhlsl"
	"github.com/gogpu/spvhlsl/hlsl"
	"github.com/gogpu/spvhlsl/spirv"
)

var (
	output     = flag.String("o", "", "output file (default: stdout)")
	stage      = flag.String("stage", "", "shader stage: vertex or fragment (default: from entry point)")
	attributes = flag.String("attributes", "", "write the vertex attribute map as JSON to this file")
	strict     = flag.Bool("strict", false, "fail on opcodes the translator does not handle")
	verbose    = flag.Bool("v", false, "print diagnostics to stderr")
	version    = flag.Bool("version", false, "print version")
)

const spvhlslVersion = "0.1.0-dev"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("spvhlsl version %s\n", spvhlslVersion)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}
	inputPath := args[0]

	module, err := readModule(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", inputPath, err)
		os.Exit(1)
	}

	opts := spvhlsl.DefaultOptions()
	opts.Strict = *strict
	if *stage != "" {
		s, ok := hlsl.ParseStage(cases.Fold().String(*stage))
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown stage %q\n", *stage)
			os.Exit(1)
		}
		opts.Stage = s
		opts.AutoStage = false
	}

	var info *hlsl.TranslationInfo
	if *output != "" {
		info, err = spvhlsl.CompileFile(module, *output, opts)
	} else {
		info, err = spvhlsl.CompileTo(os.Stdout, module, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Translation error: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		for _, d := range info.Diagnostics {
			fmt.Fprintf(os.Stderr, "warning: %s\n", d)
		}
	}

	if *attributes != "" {
		if err := writeAttributes(*attributes, info.Attributes); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing attributes: %v\n", err)
			os.Exit(1)
		}
	}

	if *output != "" {
		fmt.Fprintf(os.Stderr, "Successfully translated %s to %s\n", inputPath, *output)
	}
}

// readModule loads a binary module or, for .spvasm files, assembles text.
func readModule(path string) (*spirv.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".spvasm") {
		return spirv.Assemble(string(data))
	}
	return spirv.Decode(data)
}

func writeAttributes(path string, attrs map[string]int) error {
	data, err := json.MarshalIndent(attrs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: spvhlsl [options] <input.spv|input.spvasm>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  spvhlsl shader.spv                   Translate to stdout\n")
	fmt.Fprintf(os.Stderr, "  spvhlsl -o shader.hlsl shader.spv    Translate to file\n")
	fmt.Fprintf(os.Stderr, "  spvhlsl -stage fragment shader.spv   Force the fragment stage\n")
}
