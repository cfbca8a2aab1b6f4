package convert

import (
	"strings"
	"testing"

	"github.com/dyxushuai/asmpil/asm"
	"github.com/dyxushuai/asmpil/number"
	"github.com/dyxushuai/asmpil/pil"
	"github.com/dyxushuai/asmpil/romgen"
)

func assertPanics(t *testing.T, want string, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q, got none", want)
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, want) {
			t.Fatalf("panic = %v, want substring %q", r, want)
		}
	}()
	f()
}

func countOfType(m *asm.Machine, name string) int {
	count := 0
	for _, s := range m.Pil {
		if fc, ok := s.(pil.FixedColumn); ok && fc.Name == name {
			count++
		}
	}
	return count
}

// S5 -- the linearizer: pc' = (a + b) * c must emit exactly one
// intermediate polynomial and return a single reference to it, the value a
// conditioned update then stores.
func TestLinearizeSingleProduct(t *testing.T) {
	one := number.Bn254Field.One()
	c := &Converter{
		field:        number.Bn254Field,
		one:          one,
		zero:         number.Bn254Field.Zero(),
		registers:    map[string]*asm.Register{},
		instructions: map[string]asm.InstructionDefinition{},
	}

	expr := pil.Mul(
		pil.Add(pil.DirectReference("a"), pil.DirectReference("b")),
		pil.DirectReference("c"),
	)
	result := c.linearize("instr_foo_pc_update", expr)

	if len(c.pil) != 1 {
		t.Fatalf("expected exactly one intermediate polynomial, got %d", len(c.pil))
	}
	ip, ok := c.pil[0].(pil.IntermediatePolynomial)
	if !ok {
		t.Fatalf("expected an IntermediatePolynomial, got %T", c.pil[0])
	}
	if ip.Name != "instr_foo_pc_update" {
		t.Fatalf("intermediate name = %q, want %q", ip.Name, "instr_foo_pc_update")
	}
	wantValue := "(a + b) * c"
	if got := pil.RenderExpression(ip.Value); got != wantValue {
		t.Fatalf("intermediate value = %q, want %q", got, wantValue)
	}
	if got := pil.RenderExpression(result); got != "instr_foo_pc_update" {
		t.Fatalf("linearize() result = %q, want a reference to the intermediate", got)
	}
}

// S5b -- a chain of two products needs two distinct intermediate names.
func TestLinearizeMultipleProducts(t *testing.T) {
	one := number.Bn254Field.One()
	c := &Converter{
		field:        number.Bn254Field,
		one:          one,
		zero:         number.Bn254Field.Zero(),
		registers:    map[string]*asm.Register{},
		instructions: map[string]asm.InstructionDefinition{},
	}

	expr := pil.Add(
		pil.Mul(pil.DirectReference("a"), pil.DirectReference("b")),
		pil.Mul(pil.DirectReference("c"), pil.DirectReference("d")),
	)
	c.linearize("prefix", expr)

	if len(c.pil) != 2 {
		t.Fatalf("expected two intermediate polynomials, got %d", len(c.pil))
	}
	first := c.pil[0].(pil.IntermediatePolynomial)
	second := c.pil[1].(pil.IntermediatePolynomial)
	if first.Name != "prefix" {
		t.Fatalf("first intermediate name = %q, want %q", first.Name, "prefix")
	}
	if second.Name != "prefix_1" {
		t.Fatalf("second intermediate name = %q, want %q", second.Name, "prefix_1")
	}
}

// S6 -- a duplicate label must panic with the exact original diagnostic.
func TestComputeLabelPositionsDuplicatePanics(t *testing.T) {
	c := &Converter{
		codeLines: []asm.CodeLine{
			{Labels: map[string]bool{"loop": true}},
			{Labels: map[string]bool{"loop": true}},
		},
	}
	assertPanics(t, "Duplicate label: loop", func() {
		c.computeLabelPositions()
	})
}

func TestNextTransformRewritesBareAndNextReferences(t *testing.T) {
	one := number.Bn254Field.One()
	got := nextTransform(pil.Add(pil.DirectReference("x"), pil.NextReference("y")), one)
	want := "x(i) + y(i + 1)"
	if got := pil.RenderExpression(got); got != want {
		t.Fatalf("nextTransform() = %q, want %q", got, want)
	}
}

func TestNextTransformPanicsOnNextOfNonReference(t *testing.T) {
	one := number.Bn254Field.One()
	assertPanics(t, "next()", func() {
		nextTransform(pil.UnaryOperation{Op: pil.OpNext, Expr: pil.NumberLit(one)}, one)
	})
}

func TestProcessAssignmentValueRejectsDivision(t *testing.T) {
	one := number.Bn254Field.One()
	assertPanics(t, "convert:", func() {
		processAssignmentValue(pil.BinaryOperation{
			Left: pil.DirectReference("x"), Op: pil.OpDiv, Right: pil.NumberLit(one),
		}, one)
	})
}

func TestProcessAssignmentValueRejectsNonConstantMultiplication(t *testing.T) {
	one := number.Bn254Field.One()
	assertPanics(t, "multiplication by non-constant", func() {
		processAssignmentValue(pil.Mul(pil.DirectReference("x"), pil.DirectReference("y")), one)
	})
}

// identityMachine builds the same S2 identity-function machine romgen_test
// uses. It declares only pc; romgen adds the read-only _input_0 and the
// assignment register _output_0, which give the converter something
// nontrivial to exercise.
func identityMachine() *asm.Machine {
	return &asm.Machine{
		Name:      "VM",
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

func TestConvertMachineEndToEndIdentity(t *testing.T) {
	m := identityMachine()
	m, rom := romgen.GenerateMachineROM(number.Bn254Field, m)
	m = ConvertMachine(number.Bn254Field, m, rom)

	if m.Latch == nil || *m.Latch != "instr_return" {
		t.Fatalf("machine.Latch = %v, want instr_return", m.Latch)
	}

	plookups := 0
	var found pil.PlookupIdentity
	for _, s := range m.Pil {
		if p, ok := s.(pil.PlookupIdentity); ok {
			plookups++
			found = p
		}
	}
	if plookups != 1 {
		t.Fatalf("expected exactly one plookup identity, got %d", plookups)
	}
	if len(found.Left.Expressions) != len(found.Right.Expressions) {
		t.Fatalf("plookup side widths differ: %d vs %d", len(found.Left.Expressions), len(found.Right.Expressions))
	}

	if countOfType(m, "first_step") != 1 {
		t.Fatalf("expected exactly one first_step fixed column")
	}

	for _, s := range m.Pil {
		fc, ok := s.(pil.FixedColumn)
		if !ok {
			continue
		}
		switch v := fc.Value.(type) {
		case pil.ValueArray:
			if len(v.Values) != len(rom.Batches) {
				t.Fatalf("fixed column %s has %d rows, want %d (one per ROM batch)", fc.Name, len(v.Values), len(rom.Batches))
			}
		case pil.RepeatedValueArray:
			if len(v.Values) != 1 {
				t.Fatalf("repeated fixed column %s should store exactly one value, got %d", fc.Name, len(v.Values))
			}
		}
	}
}

func TestConvertMachinePassesThroughMachineWithNoPC(t *testing.T) {
	m := &asm.Machine{Name: "NoPC"}
	got := ConvertMachine(number.Bn254Field, m, nil)
	if got != m {
		t.Fatalf("expected the same machine pointer back for a pc-less machine")
	}
}
