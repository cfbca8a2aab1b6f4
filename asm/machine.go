package asm

import "github.com/dyxushuai/asmpil/pil"

// FunctionStatement is one statement inside a function body batch
// (spec section 3: Assignment, Instruction(call), Label, DebugDirective,
// Return).
type FunctionStatement interface {
	isFunctionStatement()
}

// AssignmentTarget is one `name <=register=` destination of an assignment
// statement. Register is the inferred assignment register it flows through;
// the data model's invariant (spec section 3) is that this has already been
// resolved by the time romgen/convert see it.
type AssignmentTarget struct {
	Name     string
	Register string
}

// AssignmentStatement is `targets <=reg= rhs;`. A multi-target RHS is only
// legal when RHS is a FunctionCall (spec section 4.2, Phase E).
type AssignmentStatement struct {
	Targets []AssignmentTarget
	RHS     pil.Expression
}

func (AssignmentStatement) isFunctionStatement() {}

// InstructionCallStatement invokes a declared instruction with a flat
// argument list (inputs, then output registers).
type InstructionCallStatement struct {
	Instruction string
	Args        []pil.Expression
}

func (InstructionCallStatement) isFunctionStatement() {}

// LabelStatement declares a jump target at this point in the function body.
type LabelStatement struct {
	Name string
}

func (LabelStatement) isFunctionStatement() {}

// DebugDirectiveStatement is an opaque passthrough directive (spec section
// 3, CodeLine.debug_directives).
type DebugDirectiveStatement struct {
	Directive string
}

func (DebugDirectiveStatement) isFunctionStatement() {}

// ReturnStatement is `return values;`. It is lowered like an
// InstructionCallStatement against the synthetic `return` instruction
// (spec section 4.2, Phase E).
type ReturnStatement struct {
	Values []pil.Expression
}

func (ReturnStatement) isFunctionStatement() {}

// VisitExpressions applies f to every expression directly referenced by s
// via pil.PreVisit, rewriting s in place. Left-hand sides of assignments are
// intentionally not expressions and are therefore never touched -- this is
// the substitution isolation romgen's input renaming depends on
// (spec section 8, property 4).
func VisitExpressions(s FunctionStatement, f pil.Mutator) FunctionStatement {
	switch s := s.(type) {
	case AssignmentStatement:
		s.RHS = pil.PreVisit(s.RHS, f)
		return s
	case InstructionCallStatement:
		args := make([]pil.Expression, len(s.Args))
		for i, a := range s.Args {
			args[i] = pil.PreVisit(a, f)
		}
		s.Args = args
		return s
	case ReturnStatement:
		values := make([]pil.Expression, len(s.Values))
		for i, v := range s.Values {
			values[i] = pil.PreVisit(v, f)
		}
		s.Values = values
		return s
	default:
		return s
	}
}

// Function is a callable defined by source (input params, optional output
// params, a body of batches). Present only before ROM generation; see the
// data-model invariant in spec section 3.
type Function struct {
	Name    string
	Inputs  []string
	Outputs []string
	Body    []Batch
}

// Operation is a callable addressable by a numeric id within the ROM.
// Present only after ROM generation.
type Operation struct {
	Name    string
	ID      int
	Inputs  []string
	Outputs []string
}

// CallableSymbol is one entry of Machine.Callable: exactly one of Function
// or Operation is set, matching the data-model invariant that every
// callable is a Function before ROM generation and an Operation after.
type CallableSymbol struct {
	Name      string
	Function  *Function
	Operation *Operation
}

// Machine is the record described in spec section 3: registers,
// instructions, callables, accumulated PIL, links, latch and operation-id
// column name.
type Machine struct {
	Name         string
	Registers    []RegisterDeclaration
	Instructions []InstructionDefinition
	// Callables preserves declaration order; Lookup by name via CallableByName.
	Callables   []*CallableSymbol
	Pil         []pil.Statement
	Links       []LinkDefinition
	Latch       *string
	OperationID *string
}

// HasPC reports whether the machine declares a program counter register
// (spec section 3 invariant: pc is unique per machine).
func (m *Machine) HasPC() bool {
	for _, r := range m.Registers {
		if r.Type == Pc {
			return true
		}
	}
	return false
}

// PCName returns the program counter register's name, or "" if none.
func (m *Machine) PCName() string {
	for _, r := range m.Registers {
		if r.Type == Pc {
			return r.Name
		}
	}
	return ""
}

// WriteRegisterNames returns the names of all Write registers, in
// declaration order.
func (m *Machine) WriteRegisterNames() []string {
	var names []string
	for _, r := range m.Registers {
		if r.Type == Write {
			names = append(names, r.Name)
		}
	}
	return names
}

// AssignmentRegisterNames returns the names of all Assignment registers, in
// declaration order.
func (m *Machine) AssignmentRegisterNames() []string {
	var names []string
	for _, r := range m.Registers {
		if r.Type == Assignment {
			names = append(names, r.Name)
		}
	}
	return names
}

// IsOnlyFunctions reports whether every callable in the machine is currently
// a Function, the precondition ROM generation asserts (spec section 7).
func (m *Machine) IsOnlyFunctions() bool {
	for _, c := range m.Callables {
		if c.Function == nil {
			return false
		}
	}
	return true
}

// CallableByName finds a callable symbol by name, or nil.
func (m *Machine) CallableByName(name string) *CallableSymbol {
	for _, c := range m.Callables {
		if c.Name == name {
			return c
		}
	}
	return nil
}
