package pil

import "github.com/dyxushuai/asmpil/number"

// DirectReference builds a bare reference to a column or register by name,
// mirroring the source's build::direct_reference helper.
func DirectReference(name string) Expression {
	return Reference{Name: name}
}

// NextReference builds a reference to a column's value in the next row
// (`name'`), mirroring build::next_reference.
func NextReference(name string) Expression {
	return UnaryOperation{Op: OpNext, Expr: Reference{Name: name}}
}

// NumberLit wraps a field element as a Number expression.
func NumberLit(v number.FieldElement) Expression {
	return Number{Value: v}
}

// Add builds a + b.
func Add(a, b Expression) Expression {
	return BinaryOperation{Left: a, Op: OpAdd, Right: b}
}

// Sub builds a - b.
func Sub(a, b Expression) Expression {
	return BinaryOperation{Left: a, Op: OpSub, Right: b}
}

// Mul builds a * b.
func Mul(a, b Expression) Expression {
	return BinaryOperation{Left: a, Op: OpMul, Right: b}
}

// Neg builds -a.
func Neg(a Expression) Expression {
	return UnaryOperation{Op: OpMinus, Expr: a}
}

// Sum folds terms with Add, left to right. An empty term list is invalid:
// callers always have at least one read-register or the assign_const term.
func Sum(terms ...Expression) Expression {
	if len(terms) == 0 {
		panic("pil: Sum requires at least one term")
	}
	acc := terms[0]
	for _, t := range terms[1:] {
		acc = Add(acc, t)
	}
	return acc
}
