package asm

import (
	"github.com/dyxushuai/asmpil/number"
	"github.com/dyxushuai/asmpil/pil"
)

// This file is the Go analogue of the source's small string-parsing helper
// constructors (parse_instruction_definition, parse_function_statement,
// parse_register_declaration, parse_pil_statement) used only to inject the
// handful of synthetic constructs romgen needs. Because the surface parser
// is out of scope for this core (spec section 1), these take typed
// arguments directly instead of parsing source snippets; they are
// deliberately narrow and cover only what romgen.go actually builds.

// NewLabelStatement builds a bare `name:` function statement.
func NewLabelStatement(name string) FunctionStatement {
	return LabelStatement{Name: name}
}

// NewBareInstructionCall builds a `name;` function statement with no
// arguments, used for `_reset;`, `_jump_to_operation;` and `_loop;`.
func NewBareInstructionCall(name string) FunctionStatement {
	return InstructionCallStatement{Instruction: name}
}

// NewReadOnlyRegister builds a `reg name[@r];`-equivalent declaration for a
// synthetic dispatcher input register.
func NewReadOnlyRegister(name string) RegisterDeclaration {
	return RegisterDeclaration{Name: name, Type: ReadOnly}
}

// NewAssignmentRegister builds a `reg name[<=];`-equivalent declaration for
// a synthetic dispatcher output register.
func NewAssignmentRegister(name string) RegisterDeclaration {
	return RegisterDeclaration{Name: name, Type: Assignment}
}

// NewJumpToOperationInstruction builds `instr _jump_to_operation { pc' =
// operationIDColumn }`.
func NewJumpToOperationInstruction(pcName, operationIDColumn string) InstructionDefinition {
	return InstructionDefinition{
		Name: JumpToOperationName,
		Body: InstructionBody{Local: []pil.Statement{
			pil.Identity{Expr: pil.Sub(pil.NextReference(pcName), pil.DirectReference(operationIDColumn))},
		}},
	}
}

// NewResetInstruction builds `instr _reset { w'_1 = 0, w'_2 = 0, ... }` for
// every write register name given.
func NewResetInstruction(writeRegisterNames []string, zero number.FieldElement) InstructionDefinition {
	statements := make([]pil.Statement, len(writeRegisterNames))
	for i, w := range writeRegisterNames {
		statements[i] = pil.Identity{Expr: pil.Sub(pil.NextReference(w), pil.NumberLit(zero))}
	}
	return InstructionDefinition{
		Name: ResetInstruction,
		Body: InstructionBody{Local: statements},
	}
}

// NewLoopInstruction builds `instr _loop { pc' = pc }`.
func NewLoopInstruction(pcName string) InstructionDefinition {
	return InstructionDefinition{
		Name: LoopInstruction,
		Body: InstructionBody{Local: []pil.Statement{
			pil.Identity{Expr: pil.Sub(pil.NextReference(pcName), pil.DirectReference(pcName))},
		}},
	}
}
