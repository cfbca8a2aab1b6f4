package pil

import "github.com/dyxushuai/asmpil/number"

// Statement is implemented by every top-level PIL statement the converter
// and ROM generator can emit into Machine.Pil.
type Statement interface {
	isStatement()
}

// PolynomialName is a single declared column name. Array declarations are
// not needed by this core (spec section 1's Non-goals exclude array-indexed
// instruction parameters, and no other part of the core declares column
// arrays), so ArraySize is always nil; the field exists for textual-surface
// parity with the declaration shape the converter builds on.
type PolynomialName struct {
	Name      string
	ArraySize *int
}

// WitnessColumn declares an execution-trace (committed) column, optionally
// with a FunctionDefinition describing how the prover should fill it
// (spec section 4.2: free-value columns and _operation_id both need this).
type WitnessColumn struct {
	Names []PolynomialName
	Query FunctionDefinition
}

func (WitnessColumn) isStatement() {}

// FixedColumn declares a ROM-constant (fixed) column with its per-row
// values (spec section 4.2, Phase F).
type FixedColumn struct {
	Name  string
	Value ArrayExpression
}

func (FixedColumn) isStatement() {}

// IntermediatePolynomial declares `Name := Value`, used both for the
// linearizer's fresh intermediate polynomials and for the `<pc>_update`
// helper column (spec section 4.2, Phase D).
type IntermediatePolynomial struct {
	Name  string
	Value Expression
}

func (IntermediatePolynomial) isStatement() {}

// Identity asserts Expr == 0 for every row.
type Identity struct {
	Expr Expression
}

func (Identity) isStatement() {}

// SelectedExpressions is one side of a plookup or permutation identity: an
// optional selector (boolean gate) and the expression list it gates.
type SelectedExpressions struct {
	Selector    Expression // nil means unconditional (always selected)
	Expressions []Expression
}

// PlookupIdentity asserts that, for every row where Left.Selector holds, the
// tuple Left.Expressions appears among the rows of Right.Expressions where
// Right.Selector holds.
type PlookupIdentity struct {
	Left  SelectedExpressions
	Right SelectedExpressions
}

func (PlookupIdentity) isStatement() {}

// PermutationIdentity asserts a bijection between the selected rows of Left
// and Right, rather than a subset-of relationship.
type PermutationIdentity struct {
	Left  SelectedExpressions
	Right SelectedExpressions
}

func (PermutationIdentity) isStatement() {}

// FunctionDefinition is the optional right-hand side of a witness column
// declaration.
type FunctionDefinition interface {
	isFunctionDefinition()
}

// QueryFunctionDefinition backs a witness column with a prover-query lambda,
// e.g. the `a_free_value` columns built in converter Phase F.
type QueryFunctionDefinition struct {
	Lambda LambdaExpression
}

func (QueryFunctionDefinition) isFunctionDefinition() {}

// HintFunctionDefinition backs a witness column with a bare `(tag, value)`
// query hint, used only for `_operation_id`'s default-to-sink hint
// (spec section 4.1, "Operation-id column").
type HintFunctionDefinition struct {
	Tag   string
	Value Expression
}

func (HintFunctionDefinition) isFunctionDefinition() {}

// ArrayExpression is the value side of a fixed-column declaration.
type ArrayExpression interface {
	isArrayExpression()
}

// ValueArray is an explicit, fully materialized list of per-row values, as
// produced before padding.
type ValueArray struct {
	Values []Expression
}

func (ValueArray) isArrayExpression() {}

// RepeatedValueArray represents a column whose value is constant across all
// rows, stored as a single-element array (spec section 4.2, Phase F,
// "all-equal compaction").
type RepeatedValueArray struct {
	Values []Expression
}

func (RepeatedValueArray) isArrayExpression() {}

// PadWithLast returns values padded by repeating the final element so the
// overall array has length target, or RepeatedValueArray{zero} if values is
// empty (degree-0 ROM). Mirrors ArrayExpression::pad_with_last.
func PadWithLast(values []Expression, target int, zero number.FieldElement) ArrayExpression {
	if len(values) == 0 {
		return RepeatedValueArray{Values: []Expression{NumberLit(zero)}}
	}
	if target <= len(values) {
		return ValueArray{Values: values}
	}
	padded := make([]Expression, target)
	copy(padded, values)
	last := values[len(values)-1]
	for i := len(values); i < target; i++ {
		padded[i] = last
	}
	return ValueArray{Values: padded}
}

// PadWithZeroes pads values on the right with zero literals up to target
// length, truncating if values is already longer. Mirrors
// ArrayExpression::pad_with_zeroes, used for first_step's [1, 0, 0, ...].
func PadWithZeroes(values []Expression, target int, zero number.FieldElement) []Expression {
	out := make([]Expression, target)
	for i := range out {
		if i < len(values) {
			out[i] = values[i]
		} else {
			out[i] = NumberLit(zero)
		}
	}
	return out
}
