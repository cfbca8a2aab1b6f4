package pil

import (
	"testing"

	"github.com/dyxushuai/asmpil/number"
)

func TestRenderExpressionBasics(t *testing.T) {
	e := BinaryOperation{
		Left:  Reference{Name: "A"},
		Op:    OpAdd,
		Right: Number{Value: number.Bn254Field.FromUint64(1)},
	}
	got := RenderExpression(e)
	want := "A + 1"
	if got != want {
		t.Fatalf("RenderExpression() = %q, want %q", got, want)
	}
}

func TestRenderExpressionNext(t *testing.T) {
	got := RenderExpression(NextReference("pc"))
	if got != "pc'" {
		t.Fatalf("RenderExpression(next(pc)) = %q, want %q", got, "pc'")
	}
}

func TestSumRequiresAtLeastOneTerm(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Sum() with no terms should panic")
		}
	}()
	Sum()
}
