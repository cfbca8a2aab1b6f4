package convert

import (
	"fmt"

	"github.com/dyxushuai/asmpil/pil"
)

// linearize rewrites expr to degree <= 1 by recursing through +/- and, at
// every * it finds, introducing a fresh intermediate polynomial for the
// product and replacing it with a reference to that polynomial (spec
// section 4.2, "Linearizer"). Any other expression form is returned
// untouched: the linearizer only ever has to deal with the affine-plus-one-
// product shapes the instruction-body update extractor hands it.
//
// Fresh polynomials are named prefix, then prefix_1, prefix_2, ... New
// IntermediatePolynomial statements are appended to c.pil as they are
// created.
func (c *Converter) linearize(prefix string, expr pil.Expression) pil.Expression {
	_, result := c.linearizeRec(prefix, 0, expr)
	return result
}

func (c *Converter) linearizeRec(prefix string, counter int, expr pil.Expression) (int, pil.Expression) {
	bin, ok := expr.(pil.BinaryOperation)
	if !ok {
		return counter, expr
	}

	switch bin.Op {
	case pil.OpAdd:
		counter, left := c.linearizeRec(prefix, counter, bin.Left)
		counter, right := c.linearizeRec(prefix, counter, bin.Right)
		return counter, pil.Add(left, right)
	case pil.OpSub:
		counter, left := c.linearizeRec(prefix, counter, bin.Left)
		counter, right := c.linearizeRec(prefix, counter, bin.Right)
		return counter, pil.Sub(left, right)
	case pil.OpMul:
		counter, left := c.linearizeRec(prefix, counter, bin.Left)
		counter, right := c.linearizeRec(prefix, counter, bin.Right)
		name := prefix
		if counter > 0 {
			name = fmt.Sprintf("%s_%d", prefix, counter)
		}
		c.pil = append(c.pil, pil.IntermediatePolynomial{Name: name, Value: pil.Mul(left, right)})
		return counter + 1, pil.DirectReference(name)
	default:
		return counter, expr
	}
}
