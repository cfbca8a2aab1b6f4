package convert

import (
	"fmt"
	"math"
	"math/big"

	"github.com/dyxushuai/asmpil/asm"
	"github.com/dyxushuai/asmpil/number"
	"github.com/dyxushuai/asmpil/pil"
)

// processAssignmentValue is the affine reducer (spec section 4.2, "Affine
// reducer"): it converts the right-hand side of an assignment into a list
// of (coefficient, component) pairs where component is a register, a bare
// constant, or a free input. Every branch it cannot reduce is a programmer
// error per spec section 7 and panics with a diagnostic.
func processAssignmentValue(value pil.Expression, one number.FieldElement) []asm.AffineTerm {
	switch v := value.(type) {
	case pil.Reference:
		return []asm.AffineTerm{{Coeff: one, Component: asm.RegisterComponent{Name: v.Name}}}
	case pil.Number:
		return []asm.AffineTerm{{Coeff: v.Value, Component: asm.ConstantComponent{}}}
	case pil.FreeInput:
		return []asm.AffineTerm{{Coeff: one, Component: asm.FreeInputComponent{Expr: v.Expr}}}
	case pil.UnaryOperation:
		if v.Op != pil.OpMinus {
			panic(fmt.Sprintf("convert: invalid unary operator in assignment expression: %v", v.Op))
		}
		return negateAssignmentValue(processAssignmentValue(v.Expr, one))
	case pil.BinaryOperation:
		return processBinaryAssignmentValue(v, one)
	default:
		panic(fmt.Sprintf("convert: unsupported expression kind %T in assignment value", value))
	}
}

func processBinaryAssignmentValue(v pil.BinaryOperation, one number.FieldElement) []asm.AffineTerm {
	switch v.Op {
	case pil.OpAdd:
		return addAssignmentValue(
			processAssignmentValue(v.Left, one),
			processAssignmentValue(v.Right, one),
		)
	case pil.OpSub:
		return addAssignmentValue(
			processAssignmentValue(v.Left, one),
			negateAssignmentValue(processAssignmentValue(v.Right, one)),
		)
	case pil.OpMul:
		left := processAssignmentValue(v.Left, one)
		right := processAssignmentValue(v.Right, one)
		if f, ok := singleConstant(left); ok {
			return scaleAssignmentValue(right, f)
		}
		if f, ok := singleConstant(right); ok {
			return scaleAssignmentValue(left, f)
		}
		panic("convert: multiplication by non-constant")
	case pil.OpPow:
		left := processAssignmentValue(v.Left, one)
		right := processAssignmentValue(v.Right, one)
		base, baseOK := singleConstant(left)
		exponent, expOK := singleConstant(right)
		if !baseOK || !expOK {
			panic("convert: exponentiation of non-constants")
		}
		expInt := exponent.ToBigInt()
		if expInt.Cmp(big.NewInt(int64(math.MaxUint32))) > 0 {
			panic("convert: exponent too large")
		}
		return []asm.AffineTerm{{Coeff: base.Pow(expInt.Uint64()), Component: asm.ConstantComponent{}}}
	default:
		panic(fmt.Sprintf("convert: invalid operation %v in assignment expression", v.Op))
	}
}

// singleConstant reports whether terms is a single Constant-component term,
// returning its coefficient.
func singleConstant(terms []asm.AffineTerm) (number.FieldElement, bool) {
	if len(terms) != 1 {
		return nil, false
	}
	if _, ok := terms[0].Component.(asm.ConstantComponent); !ok {
		return nil, false
	}
	return terms[0].Coeff, true
}

// addAssignmentValue concatenates two affine term lists. Like the term
// reducer, it does not combine terms referring to the same component.
func addAssignmentValue(left, right []asm.AffineTerm) []asm.AffineTerm {
	return append(append([]asm.AffineTerm(nil), left...), right...)
}

func negateAssignmentValue(terms []asm.AffineTerm) []asm.AffineTerm {
	out := make([]asm.AffineTerm, len(terms))
	for i, t := range terms {
		out[i] = asm.AffineTerm{Coeff: t.Coeff.Neg(), Component: t.Component}
	}
	return out
}

// scaleAssignmentValue multiplies every term's coefficient by f.
func scaleAssignmentValue(terms []asm.AffineTerm, f number.FieldElement) []asm.AffineTerm {
	out := make([]asm.AffineTerm, len(terms))
	for i, t := range terms {
		out[i] = asm.AffineTerm{Coeff: t.Coeff.Mul(f), Component: t.Component}
	}
	return out
}

// literalSignedNumber accepts a Number, or a unary-minus of a Number, and
// returns its (possibly negated) value -- the shape a "signed" instruction
// literal argument is allowed to take (spec section 4.2, Phase E,
// "Literal(_, SignedConstant)").
func literalSignedNumber(a pil.Expression) (number.FieldElement, bool) {
	if n, ok := a.(pil.Number); ok {
		return n.Value, true
	}
	if u, ok := a.(pil.UnaryOperation); ok && u.Op == pil.OpMinus {
		if n, ok := u.Expr.(pil.Number); ok {
			return n.Value.Neg(), true
		}
	}
	return nil, false
}
