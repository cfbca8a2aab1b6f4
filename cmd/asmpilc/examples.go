package main

import (
	"github.com/dyxushuai/asmpil/asm"
	"github.com/dyxushuai/asmpil/pil"
)

// exampleMachine builds one of a small fixed set of example machines by
// name, so the CLI has something to drive without a surface parser (spec
// section 1's Non-goals exclude parsing; these stand in for programs that
// would otherwise come from source files).
func exampleMachine(name string) *asm.Machine {
	switch name {
	case "identity":
		return identityExample()
	case "adder":
		return adderExample()
	default:
		return nil
	}
}

func exampleNames() []string {
	return []string{"identity", "adder"}
}

// identityExample is a single-function machine: `function identity(x) -> x`.
func identityExample() *asm.Machine {
	return &asm.Machine{
		Name:      "Identity",
		Registers: []asm.RegisterDeclaration{{Name: "pc", Type: asm.Pc}},
		Callables: []*asm.CallableSymbol{{
			Name: "identity",
			Function: &asm.Function{
				Name:   "identity",
				Inputs: []string{"x"},
				Body: []asm.Batch{
					asm.NewBatch(asm.ReturnStatement{Values: []pil.Expression{pil.DirectReference("x")}}),
				},
			},
		}},
	}
}

// adderExample declares one instruction, `add`, wired to a machine with a
// field-sum assignment register (Z) and one write register (A) that carries
// the result, and a function `sum(x, y) -> x + y` that dispatches
// through it.
func adderExample() *asm.Machine {
	m := &asm.Machine{
		Name: "Adder",
		Registers: []asm.RegisterDeclaration{
			{Name: "pc", Type: asm.Pc},
			{Name: "X", Type: asm.Assignment},
			{Name: "Y", Type: asm.Assignment},
			{Name: "Z", Type: asm.Assignment},
			{Name: "A", Type: asm.Write},
		},
		Instructions: []asm.InstructionDefinition{{
			Name:    "add",
			Inputs:  []asm.Param{{Name: "X", Kind: asm.RegisterParam}, {Name: "Y", Kind: asm.RegisterParam}},
			Outputs: []asm.Param{{Name: "Z", Kind: asm.RegisterParam}},
			Body: asm.InstructionBody{Local: []pil.Statement{
				pil.Identity{Expr: pil.Sub(pil.Add(pil.DirectReference("X"), pil.DirectReference("Y")), pil.DirectReference("Z"))},
			}},
		}},
		Callables: []*asm.CallableSymbol{{
			Name: "sum",
			Function: &asm.Function{
				Name:    "sum",
				Inputs:  []string{"x", "y"},
				Outputs: []string{"result"},
				Body: []asm.Batch{
					asm.NewBatch(asm.AssignmentStatement{
						Targets: []asm.AssignmentTarget{{Name: "A", Register: "Z"}},
						RHS: pil.FunctionCall{
							Function:  pil.DirectReference("add"),
							Arguments: []pil.Expression{pil.DirectReference("x"), pil.DirectReference("y")},
						},
					}),
					asm.NewBatch(asm.ReturnStatement{Values: []pil.Expression{pil.DirectReference("A")}}),
				},
			},
		}},
	}
	return m
}
