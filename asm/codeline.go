package asm

import (
	"github.com/dyxushuai/asmpil/number"
	"github.com/dyxushuai/asmpil/pil"
)

// AffineComponent is one term's variable part in an affine expression
// produced by the affine reducer (spec section 4.2, "Affine reducer").
type AffineComponent interface {
	isAffineComponent()
}

// RegisterComponent reads from a register.
type RegisterComponent struct {
	Name string
}

func (RegisterComponent) isAffineComponent() {}

// ConstantComponent contributes a bare constant.
type ConstantComponent struct{}

func (ConstantComponent) isAffineComponent() {}

// FreeInputComponent reads a prover-supplied free input, evaluated by Expr.
type FreeInputComponent struct {
	Expr pil.Expression
}

func (FreeInputComponent) isAffineComponent() {}

// AffineTerm is one `coeff * component` summand of an affine expression.
type AffineTerm struct {
	Coeff     number.FieldElement
	Component AffineComponent
}

// InstructionLiteralArg is one literal-typed argument recorded against a
// CodeLine instruction call (spec section 3, CodeLine.instructions).
type InstructionLiteralArg interface {
	isInstructionLiteralArg()
}

// LabelRefArg records a label-typed literal argument, resolved to a ROM line
// index only at translate time (spec section 4.2, Phase F).
type LabelRefArg struct {
	Name string
}

func (LabelRefArg) isInstructionLiteralArg() {}

// NumberArg records a signed/unsigned-typed literal argument already
// resolved to a field value.
type NumberArg struct {
	Value number.FieldElement
}

func (NumberArg) isInstructionLiteralArg() {}

// InstructionCall is one `(name, literal args)` entry of a CodeLine.
type InstructionCall struct {
	Name string
	Args []InstructionLiteralArg
}

// CodeLine is the lowered representation of one ROM batch, consumed by the
// converter's Phase F translation into fixed ROM columns
// (spec section 3, CodeLine).
type CodeLine struct {
	// WriteRegs maps an assignment-register name to the write registers it
	// feeds on this line.
	WriteRegs map[string][]string
	// Value maps an assignment-register name to the affine expression read
	// into it on this line.
	Value map[string][]AffineTerm
	// Labels co-located at this line.
	Labels map[string]bool
	// Instructions active on this line, in call order.
	Instructions []InstructionCall
	// DebugDirectives passthrough, in source order.
	DebugDirectives []string
}

// NewCodeLine returns a CodeLine with all maps initialized and empty.
func NewCodeLine() CodeLine {
	return CodeLine{
		WriteRegs: map[string][]string{},
		Value:     map[string][]AffineTerm{},
		Labels:    map[string]bool{},
	}
}

// MergeDisjoint folds other into c by union, matching the source's batch
// reduction (spec section 4.2, handle_batch): write_regs, value and
// instructions must each come from disjoint sources inside the batch, while
// labels and debug directives may union freely. It panics (a programmer
// error per spec section 7) if a key collides across the disjoint maps.
func (c *CodeLine) MergeDisjoint(other CodeLine) {
	for k, v := range other.WriteRegs {
		if _, exists := c.WriteRegs[k]; exists {
			panic("asm: batch writes assignment register " + k + " more than once")
		}
		c.WriteRegs[k] = v
	}
	for k, v := range other.Value {
		if _, exists := c.Value[k]; exists {
			panic("asm: batch assigns assignment register " + k + " more than once")
		}
		c.Value[k] = v
	}
	if len(other.Instructions) > 0 && len(c.Instructions) > 0 {
		panic("asm: batch calls more than one instruction set disjointly")
	}
	c.Instructions = append(c.Instructions, other.Instructions...)
	for k := range other.Labels {
		c.Labels[k] = true
	}
	c.DebugDirectives = append(c.DebugDirectives, other.DebugDirectives...)
}
