package bir

import "fmt"

// Violation describes one way a BirData fails to satisfy the
// well-formedness invariants documented on Check. Unlike validated
// IR's diagnostics, these never carry a source Span: a Violation means
// the IR itself is malformed, which is always a bug in whatever built
// it, not something a Dada programmer wrote.
type Violation struct {
	Message string
}

func (v Violation) String() string { return v.Message }

func violationf(format string, args ...any) Violation {
	return Violation{Message: fmt.Sprintf(format, args...)}
}

// Check walks every reachable piece of b and reports every
// well-formedness invariant it finds broken. It never panics on
// malformed input (that's the point of it); it accumulates every
// violation found rather than stopping at the first, the same way the
// validator's diag.Collector never short-circuits.
//
// The invariants checked are:
//
//   - B1: StartBasicBlock names a block that exists in Tables.BasicBlocks.
//   - B2: every BasicBlock a Terminator names as a successor exists.
//   - B3: every LocalVariable a Place/TargetPlace names exists.
//   - B4: parameters occupy LocalVariable ids 1..NumParameters, a
//     contiguous prefix (true by construction when Builder is used, but
//     checked here since BirData values can also be built by hand).
//   - B5: an atomic region entered by StartAtomic is left by a matching
//     EndAtomic before any Return/Panic/ErrorTerminator is reached along
//     that path; atomic depth never goes negative. Await is likewise
//     forbidden on any path still inside an open atomic region.
//   - B6: every Expr/Place/TargetPlace id a Statement or Terminator
//     names exists.
//   - B7: TerminatorExpr (the only effectful operations) appear nowhere
//     but inside an AssignTerminator -- enforced structurally by the Go
//     type system (see the TerminatorExpr doc comment), so Check does
//     not re-verify it at runtime.
func Check(b *BirData) []Violation {
	var violations []Violation
	report := func(v Violation) { violations = append(violations, v) }

	t := b.Tables

	if b.StartBasicBlock == 0 || int(b.StartBasicBlock) > t.BasicBlocks.Len() {
		report(violationf("start basic block %d does not exist", b.StartBasicBlock))
		return violations // nothing else is safe to walk
	}

	if b.NumParameters < 0 || b.NumParameters > t.LocalVariables.Len() {
		report(violationf("NumParameters (%d) exceeds the number of local variables (%d)", b.NumParameters, t.LocalVariables.Len()))
	} else {
		for i := 0; i < b.NumParameters; i++ {
			id := LocalVariable(i + 1)
			if !t.LocalVariables.Get(id).HasSpecifier {
				report(violationf("local variable %d is within the parameter prefix but has no specifier", id))
			}
		}
	}

	validBlock := func(bb BasicBlock) bool { return bb != 0 && int(bb) <= t.BasicBlocks.Len() }
	validLocal := func(v LocalVariable) bool { return v != 0 && int(v) <= t.LocalVariables.Len() }

	var checkPlace func(p Place)
	checkPlace = func(p Place) {
		if p == 0 || int(p) > t.Places.Len() {
			report(violationf("place %d does not exist", p))
			return
		}
		switch data := t.Places.Get(p).(type) {
		case LocalVariablePlace:
			if !validLocal(data.Var) {
				report(violationf("place %d names nonexistent local variable %d", p, data.Var))
			}
		case DotPlace:
			checkPlace(data.Owner)
		}
	}
	checkTargetPlace := func(tp TargetPlace) {
		if tp == 0 || int(tp) > t.TargetPlaces.Len() {
			report(violationf("target place %d does not exist", tp))
			return
		}
		switch data := t.TargetPlaces.Get(tp).(type) {
		case LocalVariableTarget:
			if !validLocal(data.Var) {
				report(violationf("target place %d names nonexistent local variable %d", tp, data.Var))
			}
		case DotTarget:
			checkPlace(data.Owner)
		}
	}
	checkExpr := func(e Expr) {
		if e == 0 || int(e) > t.Exprs.Len() {
			report(violationf("expr %d does not exist", e))
			return
		}
		switch data := t.Exprs.Get(e).(type) {
		case Reserve:
			checkPlace(data.Place)
		case Lease:
			checkPlace(data.Place)
		case Shlease:
			checkPlace(data.Place)
		case Give:
			checkPlace(data.Place)
		case Tuple:
			for _, p := range data.Elements {
				checkPlace(p)
			}
		case Op:
			checkPlace(data.Left)
			checkPlace(data.Right)
		case Unary:
			checkPlace(data.Operand)
		}
	}

	// B5: walk the CFG from the start block tracking atomic-region depth
	// along every path; report a violation at the first place a path
	// misbehaves, and at most once per block to avoid runaway output on
	// a cyclic CFG.
	visitedAtDepth := make(map[BasicBlock]int)
	var walk func(bb BasicBlock, depth int)
	walk = func(bb BasicBlock, depth int) {
		if !validBlock(bb) {
			report(violationf("basic block %d does not exist", bb))
			return
		}
		if prev, seen := visitedAtDepth[bb]; seen {
			if prev != depth {
				report(violationf("basic block %d reached at inconsistent atomic depth (%d and %d)", bb, prev, depth))
			}
			return
		}
		visitedAtDepth[bb] = depth

		block := t.BasicBlocks.Get(bb)
		for _, s := range block.Statements {
			if s == 0 || int(s) > t.Statements.Len() {
				report(violationf("statement %d does not exist", s))
				continue
			}
			switch data := t.Statements.Get(s).(type) {
			case AssignExprStatement:
				checkTargetPlace(data.Target)
				checkExpr(data.Value)
			case AssignPlaceStatement:
				checkTargetPlace(data.Target)
				checkPlace(data.Value)
			case ClearStatement:
				checkTargetPlace(data.Target)
			}
		}

		if block.Terminator == 0 || int(block.Terminator) > t.Terminators.Len() {
			report(violationf("block %d has no terminator", bb))
			return
		}
		switch data := t.Terminators.Get(block.Terminator).(type) {
		case GotoTerminator:
			walk(data.Target, depth)
		case IfTerminator:
			checkPlace(data.Cond)
			walk(data.Then, depth)
			walk(data.Else, depth)
		case StartAtomicTerminator:
			walk(data.Target, depth+1)
		case EndAtomicTerminator:
			if depth == 0 {
				report(violationf("block %d ends an atomic region that was never started", bb))
			} else {
				walk(data.Target, depth-1)
			}
		case ReturnTerminator:
			checkPlace(data.Value)
			if depth != 0 {
				report(violationf("block %d returns while still inside an atomic region (depth %d)", bb, depth))
			}
		case AssignTerminator:
			checkTargetPlace(data.Target)
			switch v := data.Value.(type) {
			case AwaitTerminatorExpr:
				checkPlace(v.Future)
				if depth > 0 {
					report(violationf("block %d awaits while still inside an atomic region (depth %d)", bb, depth))
				}
			case CallTerminatorExpr:
				checkPlace(v.Function)
				for _, a := range v.Arguments {
					checkPlace(a)
				}
				if len(v.Labels) != len(v.Arguments) {
					report(violationf("block %d call has %d labels for %d arguments", bb, len(v.Labels), len(v.Arguments)))
				}
			}
			walk(data.Next, depth)
		case ErrorTerminator, PanicTerminator:
			// terminal; no successor, no depth requirement
		default:
			report(violationf("block %d has an unrecognized terminator", bb))
		}
	}
	walk(b.StartBasicBlock, 0)

	return violations
}
