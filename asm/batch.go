package asm

import (
	"fmt"
	"strings"

	"github.com/dyxushuai/asmpil/pil"
)

// Incompatible enumerates the reasons a batch boundary was forced
// (spec section 3, Batch). Only the two reasons the core itself injects are
// modeled; the batcher boundary (spec section 2) that decides batching for
// user-authored statements is an external collaborator and may report
// others. IncompatibleSet has no separate field for such reasons, and any
// Incompatible value other than these two renders as "Unknown".
type Incompatible int

const (
	// Unimplemented marks a batch that ends because the next statement
	// cannot be batched with it for a reason the batcher does not name
	// further (used for the `_reset` prologue batch).
	Unimplemented Incompatible = iota
	// Label marks a batch that ends because the next line starts with a
	// label and labels must sit alone at the start of a batch.
	Label
)

func (r Incompatible) String() string {
	switch r {
	case Unimplemented:
		return "Unimplemented"
	case Label:
		return "Label"
	default:
		return "Unknown"
	}
}

// IncompatibleSet is the (possibly empty) set of reasons a batch had to end,
// rendered as a space-separated suffix of "// END BATCH" in ROM text.
type IncompatibleSet struct {
	Reasons []Incompatible
}

// NewIncompatibleSet builds a set from the given reasons, in the order given.
func NewIncompatibleSet(reasons ...Incompatible) IncompatibleSet {
	return IncompatibleSet{Reasons: reasons}
}

func (s IncompatibleSet) String() string {
	if len(s.Reasons) == 0 {
		return ""
	}
	parts := make([]string, len(s.Reasons))
	for i, r := range s.Reasons {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}

// Batch is a maximal group of function statements co-executable in one
// cycle, plus the reason the *next* batch had to start (spec section 3).
type Batch struct {
	Statements []FunctionStatement
	Reason     IncompatibleSet
}

// NewBatch builds a batch with no end-of-batch reason recorded yet.
func NewBatch(statements ...FunctionStatement) Batch {
	return Batch{Statements: statements}
}

// WithReason returns a copy of the batch with its end-of-batch reason set,
// mirroring the source's Batch::reason builder method.
func (b Batch) WithReason(reasons ...Incompatible) Batch {
	b.Reason = NewIncompatibleSet(reasons...)
	return b
}

// Rom is an ordered list of batches ready for serialization (spec section 3,
// spec section 6 "Produced for downstream backends").
type Rom struct {
	Batches []Batch
}

// String renders the ROM in the textual form pinned by spec section 8's
// snapshot scenarios: one line per statement, followed by a
// "// END BATCH [reason...]" comment at each batch boundary.
func (r Rom) String() string {
	var b strings.Builder
	for _, batch := range r.Batches {
		for _, s := range batch.Statements {
			b.WriteString(renderFunctionStatement(s))
			b.WriteString("\n")
		}
		if reason := batch.Reason.String(); reason != "" {
			fmt.Fprintf(&b, "// END BATCH %s\n", reason)
		} else {
			b.WriteString("// END BATCH\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderFunctionStatement(s FunctionStatement) string {
	switch s := s.(type) {
	case LabelStatement:
		return s.Name + ":"
	case InstructionCallStatement:
		if len(s.Args) == 0 {
			return s.Instruction + ";"
		}
		args := make([]string, len(s.Args))
		for i, a := range s.Args {
			args[i] = pil.RenderExpression(a)
		}
		return s.Instruction + " " + strings.Join(args, ", ") + ";"
	case ReturnStatement:
		if len(s.Values) == 0 {
			return "return;"
		}
		values := make([]string, len(s.Values))
		for i, v := range s.Values {
			values[i] = pil.RenderExpression(v)
		}
		return "return " + strings.Join(values, ", ") + ";"
	case AssignmentStatement:
		names := make([]string, len(s.Targets))
		regs := make([]string, 0, len(s.Targets))
		seen := map[string]bool{}
		for i, t := range s.Targets {
			names[i] = t.Name
			if !seen[t.Register] {
				seen[t.Register] = true
				regs = append(regs, t.Register)
			}
		}
		return fmt.Sprintf("%s <=%s= %s;", strings.Join(names, ", "), strings.Join(regs, ","), pil.RenderExpression(s.RHS))
	case DebugDirectiveStatement:
		return s.Directive
	}
	return fmt.Sprintf("<unrenderable statement %T>", s)
}
