// Command spvdis disassembles a SPIR-V binary into the text form that
// spvhlsl reads back from .spvasm files.
//
// Usage:
//
//	spvdis [options] <input.spv>
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/spvhlsl/spirv"
)

var output = flag.String("o", "", "output file (default: stdout)")

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	module, err := spirv.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(module, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

func run(module *spirv.Module, path string) (err error) {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = f
	}
	return spirv.Disassemble(w, module)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: spvdis [options] <input.spv>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
