package pil

import (
	"fmt"
	"strings"
)

// precedence ranks binary operators for RenderExpression, which renders an
// expression in the PIL surface syntax. RenderExpression is used by the CLI
// driver to print emitted constraints and is exercised by expr_test.go and
// the converter's tests; the textual surface that is actually pinned by spec
// section 8 is the ROM rendering in asm.Rom.String, not this.
func precedence(op BinaryOp) int {
	switch op {
	case OpMul, OpDiv, OpMod:
		return 2
	case OpAdd, OpSub:
		return 1
	default:
		return 0
	}
}

// renderOperand parenthesizes a binary sub-expression when rendering it
// flat under parent would change its meaning (lower, or equal-but-not-safe,
// precedence). Used only for human-facing/debug rendering; the statement
// emission logic itself never round-trips through this text.
func renderOperand(e Expression, parent BinaryOp, right bool) string {
	child, ok := e.(BinaryOperation)
	if !ok {
		return RenderExpression(e)
	}
	cp, pp := precedence(child.Op), precedence(parent)
	// An equal-precedence operand is safe flat only on the left of a
	// left-associative arithmetic operator, or on the right of + or *.
	safeEqual := pp > 0 && (!right || parent == OpAdd || parent == OpMul)
	if cp < pp || (cp == pp && !safeEqual) {
		return "(" + RenderExpression(e) + ")"
	}
	return RenderExpression(e)
}

func RenderExpression(e Expression) string {
	switch e := e.(type) {
	case Number:
		return e.Value.String()
	case Reference:
		return e.Name
	case PublicReference:
		return ":" + e.Name
	case BinaryOperation:
		return fmt.Sprintf("%s %s %s", renderOperand(e.Left, e.Op, false), e.Op, renderOperand(e.Right, e.Op, true))
	case UnaryOperation:
		switch e.Op {
		case OpMinus:
			return "-" + RenderExpression(e.Expr)
		case OpNext:
			return RenderExpression(e.Expr) + "'"
		}
	case FunctionCall:
		args := make([]string, len(e.Arguments))
		for i, a := range e.Arguments {
			args[i] = RenderExpression(a)
		}
		return fmt.Sprintf("%s(%s)", RenderExpression(e.Function), strings.Join(args, ", "))
	case FreeInput:
		return "${ " + RenderExpression(e.Expr) + " }"
	case MatchExpression:
		var b strings.Builder
		fmt.Fprintf(&b, "match %s {", RenderExpression(e.Scrutinee))
		for i, arm := range e.Arms {
			if i > 0 {
				b.WriteString(",")
			}
			if arm.Pattern.CatchAll {
				b.WriteString(" _ => ")
			} else {
				fmt.Fprintf(&b, " %s => ", RenderExpression(arm.Pattern.Pattern))
			}
			b.WriteString(RenderExpression(arm.Value))
		}
		b.WriteString(" }")
		return b.String()
	case LambdaExpression:
		return fmt.Sprintf("|%s| %s", strings.Join(e.Params, ", "), RenderExpression(e.Body))
	}
	return fmt.Sprintf("<unrenderable %T>", e)
}

// RenderStatement renders a single PIL statement in the PIL surface syntax.
func RenderStatement(s Statement) string {
	switch s := s.(type) {
	case WitnessColumn:
		names := make([]string, len(s.Names))
		for i, n := range s.Names {
			names[i] = n.Name
		}
		line := "col witness " + strings.Join(names, ", ")
		if s.Query != nil {
			line += " query " + renderFunctionDefinition(s.Query)
		}
		return line + ";"
	case FixedColumn:
		return fmt.Sprintf("col fixed %s = %s;", s.Name, renderArrayExpression(s.Value))
	case IntermediatePolynomial:
		return fmt.Sprintf("pol %s = %s;", s.Name, RenderExpression(s.Value))
	case Identity:
		return RenderExpression(s.Expr) + " = 0;"
	case PlookupIdentity:
		return renderSelected(s.Left) + " in " + renderSelected(s.Right) + ";"
	case PermutationIdentity:
		return renderSelected(s.Left) + " is " + renderSelected(s.Right) + ";"
	}
	return fmt.Sprintf("<unrenderable statement %T>", s)
}

func renderSelected(s SelectedExpressions) string {
	exprs := make([]string, len(s.Expressions))
	for i, e := range s.Expressions {
		exprs[i] = RenderExpression(e)
	}
	body := "[" + strings.Join(exprs, ", ") + "]"
	if s.Selector != nil {
		return RenderExpression(s.Selector) + " " + body
	}
	return body
}

func renderFunctionDefinition(f FunctionDefinition) string {
	switch f := f.(type) {
	case QueryFunctionDefinition:
		return RenderExpression(f.Lambda)
	case HintFunctionDefinition:
		return fmt.Sprintf("(%q, %s)", f.Tag, RenderExpression(f.Value))
	}
	return fmt.Sprintf("<unrenderable function definition %T>", f)
}

func renderArrayExpression(a ArrayExpression) string {
	switch a := a.(type) {
	case ValueArray:
		parts := make([]string, len(a.Values))
		for i, v := range a.Values {
			parts[i] = RenderExpression(v)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case RepeatedValueArray:
		parts := make([]string, len(a.Values))
		for i, v := range a.Values {
			parts[i] = RenderExpression(v)
		}
		return "[" + strings.Join(parts, ", ") + "]*"
	}
	return fmt.Sprintf("<unrenderable array %T>", a)
}
