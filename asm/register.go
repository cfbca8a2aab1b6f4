package asm

import "github.com/dyxushuai/asmpil/pil"

// RegisterType enumerates the four register categories (spec section 3).
type RegisterType int

const (
	// Pc is the program counter. A machine has at most one.
	Pc RegisterType = iota
	// Assignment registers are transient: they carry a value from an
	// expression to one or more destination registers within one cycle and
	// have no default_update.
	Assignment
	// ReadOnly registers default to holding their value across rows.
	ReadOnly
	// Write registers persist state and carry a default_update plus any
	// number of conditioned updates contributed by instruction bodies.
	Write
)

func (t RegisterType) String() string {
	switch t {
	case Pc:
		return "pc"
	case Assignment:
		return "assignment"
	case ReadOnly:
		return "read-only"
	case Write:
		return "write"
	default:
		return "unknown"
	}
}

// RegisterDeclaration is a register as declared by the machine, before
// conversion synthesizes its update expression.
type RegisterDeclaration struct {
	Name string
	Type RegisterType
}

// ConditionedUpdate is one `(condition, value)` pair contributing to a
// register's next-row value (spec section 3, Register).
type ConditionedUpdate struct {
	Condition pil.Expression
	Value     pil.Expression
}

// Register is the converter's working record for one register: its
// category plus the accumulated conditioned updates and optional default
// update used to synthesize its next-row constraint (spec section 4.2,
// Phase D).
type Register struct {
	Name               string
	Type               RegisterType
	ConditionedUpdates []ConditionedUpdate
	DefaultUpdate       pil.Expression // nil if none
}

// UpdateExpression derives the full next-row update expression for this
// register from its conditioned updates and default, per spec section 4.2,
// Phase D:
//
//	no conditioned and default is U  -> U
//	conditioned only                 -> sum(cond*value)
//	both                             -> sum(cond*value) + (1 - sum(cond))*default
//
// It returns nil if there are neither conditioned updates nor a default.
func (r *Register) UpdateExpression(one pil.Expression) pil.Expression {
	if len(r.ConditionedUpdates) == 0 {
		return r.DefaultUpdate
	}

	terms := make([]pil.Expression, len(r.ConditionedUpdates))
	conditions := make([]pil.Expression, len(r.ConditionedUpdates))
	for i, cu := range r.ConditionedUpdates {
		terms[i] = pil.Mul(cu.Condition, cu.Value)
		conditions[i] = cu.Condition
	}
	sumOfUpdates := pil.Sum(terms...)

	if r.DefaultUpdate == nil {
		return sumOfUpdates
	}

	defaultCondition := pil.Sub(one, pil.Sum(conditions...))
	return pil.Add(sumOfUpdates, pil.Mul(defaultCondition, r.DefaultUpdate))
}
