package convert

import (
	"github.com/dyxushuai/asmpil/number"
	"github.com/dyxushuai/asmpil/pil"
)

// nextTransform rewrites a free-input expression so it can live inside a
// prover-query lambda indexed by row `i` (spec section 4.2, Phase F,
// "NextTransform"): a bare reference `x` becomes `x(i)`, and `x'` becomes
// `x(i+1)`. It panics if `next` is applied to anything other than a bare
// reference.
//
// Unlike pil.PreVisit/PostVisit, this fold must NOT substitute into the
// function slot of a FunctionCall -- only its arguments are transformed --
// so it is implemented as a dedicated recursive fold rather than reusing
// the generic visitor.
func nextTransform(e pil.Expression, one number.FieldElement) pil.Expression {
	switch e := e.(type) {
	case pil.Reference:
		if e.Name == "i" {
			return e
		}
		return pil.FunctionCall{Function: e, Arguments: []pil.Expression{pil.DirectReference("i")}}
	case pil.UnaryOperation:
		if e.Op == pil.OpNext {
			ref, ok := e.Expr.(pil.Reference)
			if !ok {
				panic("convert: next() is only valid applied to a bare reference in a free-input expression")
			}
			return pil.FunctionCall{
				Function:  ref,
				Arguments: []pil.Expression{pil.Add(pil.DirectReference("i"), pil.NumberLit(one))},
			}
		}
		e.Expr = nextTransform(e.Expr, one)
		return e
	case pil.FunctionCall:
		args := make([]pil.Expression, len(e.Arguments))
		for i, a := range e.Arguments {
			args[i] = nextTransform(a, one)
		}
		e.Arguments = args
		return e
	case pil.BinaryOperation:
		e.Left = nextTransform(e.Left, one)
		e.Right = nextTransform(e.Right, one)
		return e
	default:
		return e
	}
}
