// Package spirv provides the SPIR-V vocabulary consumed by the HLSL translator.
//
// SPIR-V is the standard intermediate language for GPU shaders,
// used by Vulkan, OpenCL, and other APIs. This package does not generate
// code; it turns SPIR-V into a flat instruction stream plus a name table
// and back again:
//
//	module, err := spirv.Decode(binary)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, inst := range module.Instructions {
//		fmt.Println(inst.Opcode, inst.Operands)
//	}
//
// # Binary Writer
//
// ModuleBuilder constructs SPIR-V binaries programmatically. It places
// instructions in the section order required by the SPIR-V specification:
//
//	builder := spirv.NewModuleBuilder(spirv.Version1_0)
//	builder.AddCapability(spirv.CapabilityShader)
//	floatType := builder.AddTypeFloat(32)
//	vec4Type := builder.AddTypeVector(floatType, 4)
//	binary := builder.Build()
//
// # Text Form
//
// Assemble and Disassemble convert between instructions and a compact
// text form close to spirv-dis output:
//
//	         %6 = OpTypeFloat 32
//	         %7 = OpTypeVector %6 4
//	        %10 = OpVariable %9 Input
//	              OpDecorate %10 BuiltIn Position
//
// Numbers after an opcode are literals, %N are ids, quoted text is a
// string literal and bare words are enumerants (storage classes,
// decorations, builtins, execution models) resolved by operand position.
//
// # References
//
// SPIR-V Specification: https://registry.khronos.org/SPIR-V/specs/unified1/SPIRV.html
package spirv
