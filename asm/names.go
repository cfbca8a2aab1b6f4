// Package asm holds the assembly-level data model shared by the ROM
// generator and the ASM-to-PIL converter: machines, registers,
// instructions, batches, and the lowered CodeLine representation
// (spec section 3).
package asm

import "fmt"

// Reserved synthetic names (spec section 6, "Reserved names"). User input
// colliding with any of these is undefined behavior; the upstream checker is
// expected to reject it before this core ever sees it.
const (
	StartLabel           = "_start"
	SinkLabel             = "_sink"
	ResetInstruction      = "_reset"
	JumpToOperationName   = "_jump_to_operation"
	LoopInstruction       = "_loop"
	OperationIDColumn     = "_operation_id"
	FirstStepColumn       = "first_step"
	LineColumn            = "p_line"
	ReturnInstructionName = "return"
)

// InputAt names the i-th synthetic dispatcher input register.
func InputAt(i int) string { return fmt.Sprintf("_input_%d", i) }

// OutputAt names the i-th synthetic dispatcher output register.
func OutputAt(i int) string { return fmt.Sprintf("_output_%d", i) }

// InstructionFlagColumn names the witness/fixed pair gating an instruction.
func InstructionFlagColumn(instr string) string { return "instr_" + instr }

// InstructionParamColumn names the witness/fixed pair carrying one literal
// argument of an instruction.
func InstructionParamColumn(instr, arg string) string {
	return fmt.Sprintf("instr_%s_param_%s", instr, arg)
}

// RegWriteColumn names the witness/fixed pair recording that assignment
// register areg wrote into write register reg on a given row.
func RegWriteColumn(areg, reg string) string { return fmt.Sprintf("reg_write_%s_%s", areg, reg) }

// ReadColumn names the witness/fixed pair recording the coefficient by which
// assignment register areg reads register reg on a given row.
func ReadColumn(areg, reg string) string { return fmt.Sprintf("read_%s_%s", areg, reg) }

// AssignConstColumn names the witness/fixed pair carrying an assignment
// register's constant term.
func AssignConstColumn(areg string) string { return areg + "_const" }

// AssignReadFreeColumn names the witness/fixed pair carrying the coefficient
// of an assignment register's free-input term.
func AssignReadFreeColumn(areg string) string { return areg + "_read_free" }

// AssignFreeValueColumn names the witness column holding the actual
// prover-supplied free-input value for an assignment register.
func AssignFreeValueColumn(areg string) string { return areg + "_free_value" }

// FixedColumnName prefixes a witness column name with "p_" to get the name
// of its paired fixed (ROM-constant) column.
func FixedColumnName(witness string) string { return "p_" + witness }

// InstrAliasedUpdatePrefix names the linearizer prefix used when an
// instruction body's conditioned update for register `reg` needs
// intermediate polynomials.
func InstrAliasedUpdatePrefix(instr, reg string) string {
	return fmt.Sprintf("%s_%s_update", InstructionFlagColumn(instr), reg)
}
