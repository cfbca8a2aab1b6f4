package romgen

import (
	"testing"

	"github.com/dyxushuai/asmpil/asm"
	"github.com/dyxushuai/asmpil/number"
	"github.com/dyxushuai/asmpil/pil"
)

func pcMachine(name string, callables ...*asm.CallableSymbol) *asm.Machine {
	return &asm.Machine{
		Name:      name,
		Registers: []asm.RegisterDeclaration{{Name: "pc", Type: asm.Pc}},
		Callables: callables,
	}
}

func functionCallable(name string, fn *asm.Function) *asm.CallableSymbol {
	fn.Name = name
	return &asm.CallableSymbol{Name: name, Function: fn}
}

// S1 -- empty VM.
func TestGenerateMachineROMEmptyVM(t *testing.T) {
	m := pcMachine("VM")
	_, rom := GenerateMachineROM(number.Bn254Field, m)

	want := "_start:\n" +
		"_reset;\n" +
		"// END BATCH Unimplemented\n" +
		"_jump_to_operation;\n" +
		"// END BATCH Label\n" +
		"_sink:\n" +
		"_loop;\n" +
		"// END BATCH"

	if got := rom.String(); got != want {
		t.Fatalf("ROM mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

// S2 -- identity function.
func TestGenerateMachineROMIdentity(t *testing.T) {
	m := pcMachine("VM", functionCallable("identity", &asm.Function{
		Inputs: []string{"x"},
		Body: []asm.Batch{
			asm.NewBatch(asm.ReturnStatement{Values: []pil.Expression{pil.DirectReference("x")}}),
		},
	}))

	_, rom := GenerateMachineROM(number.Bn254Field, m)

	want := "_start:\n" +
		"_reset;\n" +
		"// END BATCH Unimplemented\n" +
		"_jump_to_operation;\n" +
		"// END BATCH Label\n" +
		"_identity:\n" +
		"return _input_0;\n" +
		"// END BATCH Label\n" +
		"_sink:\n" +
		"_loop;\n" +
		"// END BATCH"

	if got := rom.String(); got != want {
		t.Fatalf("ROM mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}

	op := m.CallableByName("identity").Operation
	if op == nil {
		t.Fatal("expected identity to become an Operation")
	}
	if op.ID != 2 {
		t.Fatalf("operation id = %d, want 2 (dispatcher occupies 0 and 1)", op.ID)
	}
}

// S3 -- two functions with inline instructions.
func TestGenerateMachineROMTwoFunctions(t *testing.T) {
	fAdd := &asm.Function{
		Inputs:  []string{"x", "y"},
		Outputs: []string{"field"},
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
	}
	fAssertZero := &asm.Function{
		Inputs: []string{"x"},
		Body: []asm.Batch{
			asm.NewBatch(asm.InstructionCallStatement{
				Instruction: "assert_zero",
				Args:        []pil.Expression{pil.DirectReference("x")},
			}),
			asm.NewBatch(asm.ReturnStatement{}),
		},
	}

	m := pcMachine("VM",
		functionCallable("f_add", fAdd),
		functionCallable("f_assert_zero", fAssertZero),
	)
	m.Registers = append(m.Registers,
		asm.RegisterDeclaration{Name: "X", Type: asm.Assignment},
		asm.RegisterDeclaration{Name: "Y", Type: asm.Assignment},
		asm.RegisterDeclaration{Name: "Z", Type: asm.Assignment},
		asm.RegisterDeclaration{Name: "A", Type: asm.Write},
		asm.RegisterDeclaration{Name: "B", Type: asm.Write},
	)

	_, rom := GenerateMachineROM(number.Bn254Field, m)

	want := "_start:\n" +
		"_reset;\n" +
		"// END BATCH Unimplemented\n" +
		"_jump_to_operation;\n" +
		"// END BATCH Label\n" +
		"_f_add:\n" +
		"A <=Z= add(_input_0, _input_1);\n" +
		"// END BATCH\n" +
		"return A;\n" +
		"// END BATCH Label\n" +
		"_f_assert_zero:\n" +
		"assert_zero _input_0;\n" +
		"// END BATCH\n" +
		"return 0;\n" +
		"// END BATCH Label\n" +
		"_sink:\n" +
		"_loop;\n" +
		"// END BATCH"

	if got := rom.String(); got != want {
		t.Fatalf("ROM mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

// S4 -- return padding: a 2-output function and a 1-output function both
// pad their returns to the global max output count (2).
func TestGenerateMachineROMReturnPadding(t *testing.T) {
	twoOut := &asm.Function{
		Outputs: []string{"a", "b"},
		Body: []asm.Batch{
			asm.NewBatch(asm.ReturnStatement{Values: []pil.Expression{
				pil.DirectReference("X"), pil.DirectReference("Y"),
			}}),
		},
	}
	oneOut := &asm.Function{
		Outputs: []string{"a"},
		Body: []asm.Batch{
			asm.NewBatch(asm.ReturnStatement{Values: []pil.Expression{pil.DirectReference("X")}}),
		},
	}

	m := pcMachine("VM", functionCallable("two", twoOut), functionCallable("one", oneOut))
	_, rom := GenerateMachineROM(number.Bn254Field, m)

	oneBatch := rom.Batches[3] // _start(0), dispatch(1), two(2), one(3)
	ret, ok := oneBatch.Statements[1].(asm.ReturnStatement)
	if !ok {
		t.Fatalf("expected a Return statement in the 'one' operation, got %T", oneBatch.Statements[1])
	}
	if len(ret.Values) != 2 {
		t.Fatalf("return has %d values, want 2 (padded to the global max output count)", len(ret.Values))
	}
	if got := pil.RenderExpression(ret.Values[1]); got != "0" {
		t.Fatalf("trailing padded value = %q, want \"0\"", got)
	}
}
