package asm

import (
	"testing"

	"github.com/dyxushuai/asmpil/number"
	"github.com/dyxushuai/asmpil/pil"
)

func TestRegisterUpdateExpressionDefaultOnly(t *testing.T) {
	one := number.Bn254Field.One()
	r := &Register{Name: "X", Type: ReadOnly, DefaultUpdate: pil.DirectReference("X")}
	got := r.UpdateExpression(pil.NumberLit(one))
	want := pil.DirectReference("X")
	if pil.RenderExpression(got) != pil.RenderExpression(want) {
		t.Fatalf("UpdateExpression() = %q, want %q", pil.RenderExpression(got), pil.RenderExpression(want))
	}
}

func TestRegisterUpdateExpressionConditionedAndDefault(t *testing.T) {
	one := number.Bn254Field.One()
	r := &Register{
		Name: "A",
		Type: Write,
		ConditionedUpdates: []ConditionedUpdate{
			{Condition: pil.DirectReference("reg_write_X_A"), Value: pil.DirectReference("X")},
		},
		DefaultUpdate: pil.DirectReference("A"),
	}
	got := r.UpdateExpression(pil.NumberLit(one))
	wantStr := "reg_write_X_A * X + (1 - reg_write_X_A) * A"
	if pil.RenderExpression(got) != wantStr {
		t.Fatalf("UpdateExpression() = %q, want %q", pil.RenderExpression(got), wantStr)
	}
}

func TestRomStringEmptyVM(t *testing.T) {
	rom := Rom{Batches: []Batch{
		NewBatch(NewLabelStatement(StartLabel), NewBareInstructionCall(ResetInstruction)).WithReason(Unimplemented),
		NewBatch(NewBareInstructionCall(JumpToOperationName)).WithReason(Label),
		NewBatch(NewLabelStatement(SinkLabel), NewBareInstructionCall(LoopInstruction)),
	}}

	want := "_start:\n_reset;\n// END BATCH Unimplemented\n_jump_to_operation;\n// END BATCH Label\n_sink:\n_loop;\n// END BATCH"
	if got := rom.String(); got != want {
		t.Fatalf("Rom.String() = %q, want %q", got, want)
	}
}

func TestCodeLineMergeDisjointPanicsOnCollidingWrite(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on colliding write_regs keys")
		}
	}()
	c := NewCodeLine()
	c.MergeDisjoint(CodeLine{WriteRegs: map[string][]string{"X": {"A"}}})
	c.MergeDisjoint(CodeLine{WriteRegs: map[string][]string{"X": {"B"}}})
}
