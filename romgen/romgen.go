// Package romgen implements the ROM generator (spec section 4.1): it turns
// a machine's declared functions into numbered operations and stitches
// their bodies into one linear ROM with a dispatcher prologue and a
// terminal sink loop.
package romgen

import (
	"github.com/dyxushuai/asmpil/asm"
	"github.com/dyxushuai/asmpil/number"
	"github.com/dyxushuai/asmpil/pil"
)

// GenerateMachineROM is the ROM generator's entry point. If machine has no
// pc register it is returned unchanged with no ROM, matching the
// pc-less-passthrough invariant (spec section 8, property 1). Otherwise it
// mutates and returns the same machine value, paired with the generated
// Rom.
func GenerateMachineROM(field number.Field, machine *asm.Machine) (*asm.Machine, *asm.Rom) {
	if !machine.HasPC() {
		return machine, nil
	}
	if !machine.IsOnlyFunctions() {
		panic("romgen: machine.Callables must all be functions before ROM generation")
	}

	pcName := machine.PCName()

	machine.Instructions = append(machine.Instructions,
		asm.NewJumpToOperationInstruction(pcName, asm.OperationIDColumn),
		asm.NewResetInstruction(machine.WriteRegisterNames(), field.Zero()),
		asm.NewLoopInstruction(pcName),
	)

	var rom []asm.Batch
	rom = append(rom,
		asm.NewBatch(
			asm.NewLabelStatement(asm.StartLabel),
			asm.NewBareInstructionCall(asm.ResetInstruction),
		).WithReason(asm.Unimplemented),
		asm.NewBatch(
			asm.NewBareInstructionCall(asm.JumpToOperationName),
		).WithReason(asm.Label),
	)

	inputCount, outputCount := maxArity(machine)

	for i := 0; i < inputCount; i++ {
		machine.Registers = append(machine.Registers, asm.NewReadOnlyRegister(asm.InputAt(i)))
	}
	for i := 0; i < outputCount; i++ {
		machine.Registers = append(machine.Registers, asm.NewAssignmentRegister(asm.OutputAt(i)))
	}

	for _, callable := range machine.Callables {
		fn := callable.Function
		if len(fn.Body) == 0 {
			panic("romgen: function " + fn.Name + " has no statements (must return)")
		}

		operationID := len(rom)

		substitution := make(map[string]string, len(fn.Inputs))
		for i, name := range fn.Inputs {
			substitution[name] = asm.InputAt(i)
		}

		batches := lowerFunctionBody(fn, substitution, outputCount, field.Zero())
		batches[0].Statements = append(
			[]asm.FunctionStatement{asm.NewLabelStatement("_" + fn.Name)},
			batches[0].Statements...,
		)
		last := len(batches) - 1
		batches[last] = batches[last].WithReason(asm.Label)

		rom = append(rom, batches...)

		operationInputs := make([]string, len(fn.Inputs))
		for i := range fn.Inputs {
			operationInputs[i] = asm.InputAt(i)
		}
		operationOutputs := make([]string, len(fn.Outputs))
		for i := range fn.Outputs {
			operationOutputs[i] = asm.OutputAt(i)
		}

		callable.Function = nil
		callable.Operation = &asm.Operation{
			Name:    callable.Name,
			ID:      operationID,
			Inputs:  operationInputs,
			Outputs: operationOutputs,
		}
	}

	sinkID := len(rom)
	rom = append(rom, asm.NewBatch(
		asm.NewLabelStatement(asm.SinkLabel),
		asm.NewBareInstructionCall(asm.LoopInstruction),
	))

	machine.Pil = append(machine.Pil, pil.WitnessColumn{
		Names: []pil.PolynomialName{{Name: asm.OperationIDColumn}},
		Query: pil.HintFunctionDefinition{
			Tag:   "hint",
			Value: pil.NumberLit(field.FromUint64(uint64(sinkID))),
		},
	})
	operationIDName := asm.OperationIDColumn
	machine.OperationID = &operationIDName

	return machine, &asm.Rom{Batches: rom}
}

// maxArity returns the maximum input and output count across all of the
// machine's functions (spec section 4.1, "Synthetic registers"). A
// function's own output arity is the larger of its declared Outputs list
// and the widest Return statement actually appearing in its body, so that a
// function which returns values without separately declaring named outputs
// still gets an honest (non-truncating) arity.
func maxArity(machine *asm.Machine) (inputCount, outputCount int) {
	for _, c := range machine.Callables {
		if c.Function == nil {
			continue
		}
		if n := len(c.Function.Inputs); n > inputCount {
			inputCount = n
		}
		if n := len(c.Function.Outputs); n > outputCount {
			outputCount = n
		}
		for _, batch := range c.Function.Body {
			for _, s := range batch.Statements {
				if ret, ok := s.(asm.ReturnStatement); ok {
					if n := len(ret.Values); n > outputCount {
						outputCount = n
					}
				}
			}
		}
	}
	return
}

// lowerFunctionBody rewrites every statement of fn's body: input references
// are substituted to the synthetic _input_i names (leaving left-hand sides
// alone), and every Return statement's argument list is padded/truncated to
// outputCount (spec section 4.1, "Function lowering", steps 2-3).
func lowerFunctionBody(fn *asm.Function, substitution map[string]string, outputCount int, zero number.FieldElement) []asm.Batch {
	batches := make([]asm.Batch, len(fn.Body))
	for bi, batch := range fn.Body {
		statements := make([]asm.FunctionStatement, len(batch.Statements))
		for si, s := range batch.Statements {
			s = asm.VisitExpressions(s, func(e pil.Expression) pil.Expression {
				ref, ok := e.(pil.Reference)
				if !ok {
					return e
				}
				if to, ok := substitution[ref.Name]; ok {
					return pil.Reference{Name: to}
				}
				return e
			})
			statements[si] = padReturnArguments(s, outputCount, zero)
		}
		batches[bi] = asm.Batch{Statements: statements, Reason: batch.Reason}
	}
	return batches
}

// padReturnArguments pads ret's value list on the right with zero literals
// to reach arity outputCount, then truncates to outputCount. Non-Return
// statements pass through unchanged (spec section 4.1, step 3;
// spec section 8, property 3).
func padReturnArguments(s asm.FunctionStatement, outputCount int, zero number.FieldElement) asm.FunctionStatement {
	ret, ok := s.(asm.ReturnStatement)
	if !ok {
		return s
	}
	values := append([]pil.Expression(nil), ret.Values...)
	for len(values) < outputCount {
		values = append(values, pil.NumberLit(zero))
	}
	values = values[:outputCount]
	return asm.ReturnStatement{Values: values}
}
