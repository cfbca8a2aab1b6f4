// Package pil defines the typed syntax tree of PIL expressions and
// statements shared by the ROM generator and the ASM-to-PIL converter.
//
// Expression is a tagged-variant tree (the Go idiom for the source's sum
// type): every variant implements the small Expression interface, and the
// visitor helpers in visitor.go provide pre- and post-order mutation without
// a subclass hierarchy.
package pil

import "github.com/dyxushuai/asmpil/number"

// Expression is implemented by every PIL expression tree node. Children and
// WithChildren let the visitor helpers in visitor.go walk and rewrite any
// node generically, without a type switch per traversal.
type Expression interface {
	// Children returns the direct child expressions, in evaluation order.
	Children() []Expression
	// WithChildren returns a copy of the node with its children replaced.
	// len(children) must equal len(Children()).
	WithChildren(children []Expression) Expression
}

// Number is a field-element literal.
type Number struct {
	Value number.FieldElement
}

func (Number) Children() []Expression                       { return nil }
func (n Number) WithChildren(children []Expression) Expression { return n }

// Reference is a bare name lookup: a register, a polynomial, or (inside a
// prover-query lambda body) the row-index parameter.
type Reference struct {
	Name string
}

func (Reference) Children() []Expression                          { return nil }
func (r Reference) WithChildren(children []Expression) Expression { return r }

// PublicReference names a public input/output declared elsewhere.
type PublicReference struct {
	Name string
}

func (PublicReference) Children() []Expression { return nil }
func (p PublicReference) WithChildren(children []Expression) Expression {
	return p
}

// BinaryOp enumerates the binary operators the expression tree can carry.
// Only Add, Sub, Mul and Pow are legal inside an assignment-register value
// (spec section 4.2's affine reducer); the rest exist so that an illegal use
// (division, comparison, ...) can be rejected with a precise diagnostic
// instead of silently mis-parsed.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpPow
	OpDiv
	OpMod
	OpBinaryAnd
	OpBinaryOr
	OpBinaryXor
	OpShiftLeft
	OpShiftRight
	OpLogicalAnd
	OpLogicalOr
	OpLess
	OpLessEqual
	OpEqual
	OpNotEqual
	OpGreaterEqual
	OpGreater
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpPow:
		return "**"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpBinaryAnd:
		return "&"
	case OpBinaryOr:
		return "|"
	case OpBinaryXor:
		return "^"
	case OpShiftLeft:
		return "<<"
	case OpShiftRight:
		return ">>"
	case OpLogicalAnd:
		return "&&"
	case OpLogicalOr:
		return "||"
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	case OpGreaterEqual:
		return ">="
	case OpGreater:
		return ">"
	default:
		return "?"
	}
}

// BinaryOperation applies a binary operator to two sub-expressions.
type BinaryOperation struct {
	Left  Expression
	Op    BinaryOp
	Right Expression
}

func (b BinaryOperation) Children() []Expression { return []Expression{b.Left, b.Right} }
func (b BinaryOperation) WithChildren(children []Expression) Expression {
	b.Left, b.Right = children[0], children[1]
	return b
}

// UnaryOp enumerates the unary operators: arithmetic negation and the
// postfix "next row" operator written `x'` in the source language.
type UnaryOp int

const (
	OpMinus UnaryOp = iota
	OpNext
)

// UnaryOperation applies a unary operator to a sub-expression.
type UnaryOperation struct {
	Op   UnaryOp
	Expr Expression
}

func (u UnaryOperation) Children() []Expression { return []Expression{u.Expr} }
func (u UnaryOperation) WithChildren(children []Expression) Expression {
	u.Expr = children[0]
	return u
}

// FunctionCall applies Function to Arguments. Function is itself an
// Expression (almost always a Reference) rather than a bare name, so that
// lambda-valued call targets are representable.
type FunctionCall struct {
	Function  Expression
	Arguments []Expression
}

func (f FunctionCall) Children() []Expression {
	children := make([]Expression, 0, len(f.Arguments)+1)
	children = append(children, f.Function)
	children = append(children, f.Arguments...)
	return children
}

func (f FunctionCall) WithChildren(children []Expression) Expression {
	f.Function = children[0]
	f.Arguments = append([]Expression(nil), children[1:]...)
	return f
}

// FreeInput wraps an expression that is evaluated by the prover outside the
// constraint system (spec section 3, "Free input").
type FreeInput struct {
	Expr Expression
}

func (f FreeInput) Children() []Expression { return []Expression{f.Expr} }
func (f FreeInput) WithChildren(children []Expression) Expression {
	f.Expr = children[0]
	return f
}

// MatchPattern is either a catch-all ("_") or a specific Number pattern; the
// converter only ever emits Number patterns (one per ROM line index).
type MatchPattern struct {
	CatchAll bool
	Pattern  Expression
}

// MatchArm is one `pattern => value` arm of a MatchExpression.
type MatchArm struct {
	Pattern MatchPattern
	Value   Expression
}

// MatchExpression evaluates Scrutinee and selects the first matching arm's
// value. Used exclusively to build the `a_free_value` prover-query bodies
// (spec section 4.2, Phase F).
type MatchExpression struct {
	Scrutinee Expression
	Arms      []MatchArm
}

func (m MatchExpression) Children() []Expression {
	children := make([]Expression, 0, len(m.Arms)+1)
	children = append(children, m.Scrutinee)
	for _, arm := range m.Arms {
		if !arm.Pattern.CatchAll {
			children = append(children, arm.Pattern.Pattern)
		}
		children = append(children, arm.Value)
	}
	return children
}

func (m MatchExpression) WithChildren(children []Expression) Expression {
	m.Scrutinee = children[0]
	rest := children[1:]
	arms := make([]MatchArm, len(m.Arms))
	idx := 0
	for i, arm := range m.Arms {
		arms[i] = arm
		if !arm.Pattern.CatchAll {
			arms[i].Pattern.Pattern = rest[idx]
			idx++
		}
		arms[i].Value = rest[idx]
		idx++
	}
	m.Arms = arms
	return m
}

// LambdaExpression is a single-parameter closure; the converter only ever
// builds `|i| match pc(i) { ... }` free-value query bodies with it.
type LambdaExpression struct {
	Params []string
	Body   Expression
}

func (l LambdaExpression) Children() []Expression { return []Expression{l.Body} }
func (l LambdaExpression) WithChildren(children []Expression) Expression {
	l.Body = children[0]
	return l
}
