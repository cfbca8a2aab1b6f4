package asm

import "github.com/dyxushuai/asmpil/pil"

// ParamKind distinguishes a bare register parameter from a typed literal
// parameter (spec section 3, Instruction).
type ParamKind int

const (
	// RegisterParam is an untyped instruction parameter: its argument is a
	// register reference carried through an assignment register.
	RegisterParam ParamKind = iota
	// LabelParam requires its argument to be a bare label reference.
	LabelParam
	// SignedParam requires its argument to be a number literal, optionally
	// negated.
	SignedParam
	// UnsignedParam requires its argument to be a non-negative number
	// literal in the field's lower half.
	UnsignedParam
)

// Param is one input or output parameter of an instruction declaration.
type Param struct {
	Name string
	Kind ParamKind // only meaningful for input params; outputs are always RegisterParam
}

// InstructionBody is either a local PIL statement list or a link to an
// operation on another machine (spec section 3, Instruction).
type InstructionBody struct {
	Local []pil.Statement // nil if this is an external link

	// IsLink is true when this body is an external-instruction link rather
	// than a local statement list.
	IsLink bool
	LinkTo OperationRef
}

// OperationRef identifies an operation on another machine, addressed the
// way the source's CallableRef target is: a submachine instance name plus
// the operation name on it.
type OperationRef struct {
	Machine   string
	Operation string
}

// InstructionDefinition is an instruction as declared by the machine.
type InstructionDefinition struct {
	Name    string
	Inputs  []Param
	Outputs []Param // names only; Kind is always RegisterParam
	Body    InstructionBody
}

// LiteralArgNames returns the names of this instruction's typed literal
// input parameters, in declaration order.
func (d *InstructionDefinition) LiteralArgNames() []string {
	var names []string
	for _, p := range d.Inputs {
		if p.Kind != RegisterParam {
			names = append(names, p.Name)
		}
	}
	return names
}

// LinkDefinition records that instruction Flag dispatches to an operation on
// another machine, carrying Params as its argument list (spec section 4.2,
// "External link body").
type LinkDefinition struct {
	Flag   pil.Expression
	Params InstructionDefinition // reuses Inputs/Outputs as the link's param list
	To     OperationRef
}
