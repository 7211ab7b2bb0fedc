package validate

import (
	"fmt"

	"github.com/Veeupup/dada/internal/diag"
	"github.com/Veeupup/dada/internal/scope"
	"github.com/Veeupup/dada/internal/syntax"
)

// ExprModeKind distinguishes the two families of validation mode a
// syntax expression can be validated under.
type ExprModeKind int

const (
	// ModeSpecifier validates a bare place expression as the
	// permission form its Specifier implies (see modeToExpr).
	ModeSpecifier ExprModeKind = iota
	// ModeReserve validates an expression for a call's function or
	// argument position.
	ModeReserve
)

// ExprMode is the mode an expression is validated under: either "treat
// a bare place as if this specifier had been written", or "reserve".
type ExprMode struct {
	Kind      ExprModeKind
	Specifier syntax.Specifier
}

// GiveMode is the default top-level mode: a bare place gives (moves or
// copies) its value.
func GiveMode() ExprMode { return ExprMode{Kind: ModeSpecifier, Specifier: syntax.My} }

// ReserveMode is used to validate call function and argument positions.
func ReserveMode() ExprMode { return ExprMode{Kind: ModeReserve} }

// LeasedMode validates a bare place as if `leased` had been written.
func LeasedMode() ExprMode { return ExprMode{Kind: ModeSpecifier, Specifier: syntax.Leased} }

func (m ExprMode) isGive() bool {
	return m.Kind == ModeSpecifier && (m.Specifier == syntax.My || m.Specifier == syntax.Any)
}

// Validator lowers one syntax.Function into validated IR. A Validator
// value is single-threaded, pure, and non-suspending: it never blocks
// and it exclusively owns the Tables/Origins it is writing into. An
// external engine may run many Validators concurrently, each over its
// own Function and its own Tables (see package validate/engine).
type Validator struct {
	tables *Tables
	origins *Origins

	scope *scope.Stack[LocalVariable]

	loopStack []Expr

	effect     syntax.Effect
	effectSpan diag.Span

	synthesized bool

	// pending holds statements (AssignTemporary, AssignFromPlace) that
	// must run, in order, before the expression currently being built
	// takes its value. It is shared across subscopes of the same
	// validation (they copy the pointer, not the slice it names), and
	// is drained by wrapPending every time validateExprInMode finishes
	// building one expression, so a temporary introduced while
	// validating a sub-expression is always sequenced directly before
	// the expression that needed it.
	pending *[]Expr

	report diag.Sink
}

// New creates a Validator ready to validate fn's body. report receives
// every diagnostic found; it is never short-circuited on the first
// error.
func New(fn *syntax.Function, report diag.Sink) *Validator {
	pending := make([]Expr, 0)
	v := &Validator{
		tables:     &Tables{},
		origins:    &Origins{},
		scope:      scope.New[LocalVariable](),
		effect:     fn.Effect,
		effectSpan: fn.Span,
		pending:    &pending,
		report:     report,
	}
	return v
}

// subscope returns a Validator sharing this one's tables, origins,
// loop stack and effect, but with a fresh nested name scope. Exiting
// the returned scope (via exit) wraps the validated body in a Declare
// naming every local variable introduced within it.
func (v *Validator) subscope() *Validator {
	child := *v
	child.scope = v.scope.Subscope()
	return &child
}

func (v *Validator) withEffect(e syntax.Effect, span diag.Span) *Validator {
	child := *v
	child.effect = e
	child.effectSpan = span
	return &child
}

func (v *Validator) withLoopExpr(loopExpr Expr) *Validator {
	child := *v
	child.loopStack = append(append([]Expr(nil), v.loopStack...), loopExpr)
	return &child
}

func (v *Validator) currentLoopExpr() (Expr, bool) {
	if len(v.loopStack) == 0 {
		return 0, false
	}
	return v.loopStack[len(v.loopStack)-1], true
}

// Tables and Origins expose the interning tables built so far; valid
// only after Validate has returned.
func (v *Validator) Tables() *Tables   { return v.tables }
func (v *Validator) Origins() *Origins { return v.origins }

// --- interning helpers -----------------------------------------------------

func (v *Validator) addExpr(data ExprData, origin syntax.Expr) Expr {
	id := v.tables.Exprs.Add(data)
	v.origins.Exprs.Add(ExprOrigin{Syntax: origin, Synthesized: v.synthesized})
	if id != v.origins.Exprs.Max() {
		panic("validate: exprs/origins arenas diverged")
	}
	return id
}

func (v *Validator) addSynthesizedExpr(data ExprData) Expr {
	id := v.tables.Exprs.Add(data)
	v.origins.Exprs.Add(ExprOrigin{Synthesized: true})
	return id
}

// emitStatement records id as a statement that must run before
// whatever expression the caller is about to return to
// validateExprInMode finishes building.
func (v *Validator) emitStatement(id Expr) {
	*v.pending = append(*v.pending, id)
}

// wrapPending drains the statements accumulated since the pending list
// had length mark and, if there were any, sequences them before final
// in a synthesized Seq; otherwise it returns final unchanged. Statements
// emitted before mark belong to an enclosing expression and are left
// for it to drain.
func (v *Validator) wrapPending(mark int, final Expr) Expr {
	buf := (*v.pending)[mark:]
	if len(buf) == 0 {
		return final
	}
	stmts := append(append([]Expr(nil), buf...), final)
	*v.pending = (*v.pending)[:mark]
	return v.addSynthesizedExpr(Seq{Statements: stmts})
}

func (v *Validator) addPlace(data PlaceData, origin syntax.Expr) Place {
	id := v.tables.Places.Add(data)
	v.origins.Places.Add(origin)
	return id
}

func (v *Validator) addTargetPlace(data TargetPlaceData, origin syntax.Expr) TargetPlace {
	id := v.tables.TargetPlaces.Add(data)
	v.origins.TargetPlaces.Add(origin)
	return id
}

func (v *Validator) addLocalVariable(data LocalVariableData, origin LocalVariableOrigin) LocalVariable {
	id := v.tables.LocalVariables.Add(data)
	v.origins.LocalVariables.Add(origin)
	return id
}

// emptyTuple returns a synthesized `()` expression, used wherever the
// validator must produce a unit value that did not come from any
// specific syntax node (an implicit else-branch, a bare `return`).
func (v *Validator) emptyTuple() Expr {
	return v.addSynthesizedExpr(Tuple{})
}

func (v *Validator) orError(e syntax.Expr, msg string) Expr {
	v.report.Report(diag.Diagnostic{
		Severity: diag.Error,
		Primary:  diag.Label{Span: e.Span(), Message: msg},
	})
	return v.addExpr(ErrorExpr{}, e)
}

// --- entry points -----------------------------------------------------------

// Result is everything Validate produces for one function.
type Result struct {
	Tables     *Tables
	Origins    *Origins
	Parameters []LocalVariable
	Root       Expr
}

// Validate runs the validator over fn's declared parameters and body,
// reporting every diagnostic found to report, and returns the
// resulting validated IR.
func Validate(fn *syntax.Function, report diag.Sink) Result {
	v := New(fn, report)

	params := make([]LocalVariable, 0, len(fn.Parameters))
	for _, p := range fn.Parameters {
		params = append(params, v.validateParameter(p))
	}

	root := v.giveValidatedRootExpr(fn.Body)

	return Result{
		Tables:     v.tables,
		Origins:    v.origins,
		Parameters: params,
		Root:       root,
	}
}

func (v *Validator) validateParameter(p syntax.Parameter) LocalVariable {
	id := v.addLocalVariable(LocalVariableData{
		Name:      p.Name,
		Specifier: p.Specifier,
		HasSpec:   true,
	}, LocalVariableOrigin{Kind: OriginParameter})
	v.scope.Insert(p.Name, id)
	return id
}

// giveValidatedRootExpr validates a function's body in give mode.
// syntax.Function carries no return type, so nothing here depends on
// one: no synthesized unit is appended to the body, an empty body is
// not diagnosed, and validateReturn accepts `return` with or without a
// value in every function.
func (v *Validator) giveValidatedRootExpr(e syntax.Expr) Expr {
	return v.giveValidatedExpr(e)
}

func (v *Validator) giveValidatedExpr(e syntax.Expr) Expr {
	before := v.synthesized
	v.synthesized = false
	result := v.validateExprInMode(e, GiveMode())
	v.synthesized = before
	return result
}

func (v *Validator) reserveValidatedExpr(e syntax.Expr) Expr {
	before := v.synthesized
	v.synthesized = false
	result := v.validateExprInMode(e, ReserveMode())
	v.synthesized = before
	return result
}

// validateExprAndExit validates body in mode within this (sub)scope
// and then exits the scope, wrapping the result in a Declare for every
// local variable the scope introduced.
func (v *Validator) validateExprAndExit(body syntax.Expr, mode ExprMode) Expr {
	result := v.validateExprInMode(body, mode)
	return v.exit(result)
}

func (v *Validator) exit(body Expr) Expr {
	locals := v.scope.TakeInserted()
	if len(locals) == 0 {
		return body
	}
	return v.addSynthesizedExpr(Declare{Locals: locals, Body: body})
}

// validateExprInMode is the heart of the validator: every syntax.Expr
// kind is validated here according to mode. Every return path goes
// through wrapPending, so any temporary introduced anywhere while
// building this expression is sequenced directly before it.
func (v *Validator) validateExprInMode(e syntax.Expr, mode ExprMode) Expr {
	mark := len(*v.pending)
	return v.wrapPending(mark, v.validateExprInModeInner(e, mode))
}

func (v *Validator) validateExprInModeInner(e syntax.Expr, mode ExprMode) Expr {
	switch n := e.(type) {
	case *syntax.Id:
		return v.validatePlaceLikeInMode(e, mode)
	case *syntax.Dot:
		return v.validatePlaceLikeInMode(e, mode)
	case *syntax.BooleanLiteral:
		return v.addExpr(BooleanLiteral{Value: n.Value}, e)
	case *syntax.IntegerLiteral:
		return v.validateIntegerLiteral(e, n)
	case *syntax.FloatLiteral:
		return v.validateFloatLiteral(e, n)
	case *syntax.StringLiteral:
		return v.validateStringLiteral(e, n)
	case *syntax.Await:
		return v.validateAwait(e, n)
	case *syntax.Call:
		return v.validateCall(e, n)
	case *syntax.Share:
		place := v.validateExprAsPlace(n.Target)
		return v.addExpr(Share{Inner: v.addExpr(Give{Place: place}, n.Target)}, e)
	case *syntax.Lease:
		place := v.validateExprAsPlace(n.Target)
		return v.addExpr(Lease{Place: place}, e)
	case *syntax.Shlease:
		place := v.validateExprAsPlace(n.Target)
		return v.addExpr(Shlease{Place: place}, e)
	case *syntax.Give:
		if v.isPlaceExpression(n.Target) {
			place := v.validateExprAsPlace(n.Target)
			return v.addExpr(Give{Place: place}, e)
		}
		return v.giveValidatedExpr(n.Target)
	case *syntax.Var:
		return v.validateVar(e, n)
	case *syntax.Parenthesized:
		return v.validateExprInMode(n.Inner, mode)
	case *syntax.Tuple:
		return v.validateTuple(e, n)
	case *syntax.If:
		return v.validateIf(e, n, mode)
	case *syntax.Atomic:
		return v.validateAtomic(e, n)
	case *syntax.Loop:
		return v.validateLoop(e, n)
	case *syntax.While:
		return v.validateExprInMode(desugarWhile(n), mode)
	case *syntax.Op:
		return v.validateOp(e, n)
	case *syntax.Unary:
		return v.validateUnary(e, n)
	case *syntax.OpEq:
		return v.validateOpEq(e, n)
	case *syntax.Assign:
		return v.validateAssign(e, n)
	case *syntax.Seq:
		return v.validateSeq(e, n)
	case *syntax.Return:
		return v.validateReturn(e, n)
	case *syntax.Error:
		return v.addExpr(ErrorExpr{}, e)
	default:
		return v.orError(e, fmt.Sprintf("unsupported expression form %T", n))
	}
}

// validatePlaceLikeInMode validates a syntax expression known to be a
// place (Id, Dot, or a Parenthesized wrapping one) by first resolving
// it to a Place, then coercing that Place to an Expr per placeToExpr.
func (v *Validator) validatePlaceLikeInMode(e syntax.Expr, mode ExprMode) Expr {
	place := v.validateExprAsPlace(e)
	return v.placeToExpr(e, mode, place)
}

// placeToExpr coerces a Place into a full Expr according to mode: the
// mode-to-ExprData table the rest of the validator relies on.
func (v *Validator) placeToExpr(origin syntax.Expr, mode ExprMode, place Place) Expr {
	switch mode.Kind {
	case ModeReserve:
		return v.addExpr(Reserve{Place: place}, origin)
	case ModeSpecifier:
		switch mode.Specifier {
		case syntax.My, syntax.Any:
			return v.addExpr(Give{Place: place}, origin)
		case syntax.Leased:
			return v.addExpr(Lease{Place: place}, origin)
		case syntax.Shleased:
			return v.addExpr(Shlease{Place: place}, origin)
		case syntax.Our:
			give := v.addExpr(Give{Place: place}, origin)
			return v.addExpr(Share{Inner: give}, origin)
		}
	}
	panic("validate: unreachable ExprMode")
}

func (v *Validator) isPlaceExpression(e syntax.Expr) bool {
	switch n := e.(type) {
	case *syntax.Id, *syntax.Dot:
		return true
	case *syntax.Parenthesized:
		return v.isPlaceExpression(n.Inner)
	default:
		return false
	}
}

// validateExprAsPlace validates e as a place: Id (local variable or, if
// unresolved, a function reference), Dot, or a Parenthesized wrapping
// one. Anything else is wrapped in a fresh temporary and that
// temporary's local variable is returned as the place.
func (v *Validator) validateExprAsPlace(e syntax.Expr) Place {
	switch n := e.(type) {
	case *syntax.Id:
		if local, ok := v.scope.Lookup(n.Name); ok {
			return v.addPlace(LocalVariablePlace{Var: local}, e)
		}
		return v.addPlace(FunctionPlace{Name: n.Name}, e)
	case *syntax.Dot:
		owner := v.validateExprAsPlace(n.Owner)
		return v.addPlace(DotPlace{Owner: owner, Field: n.Field}, e)
	case *syntax.Parenthesized:
		return v.validateExprAsPlace(n.Inner)
	case *syntax.Error:
		return v.addPlace(FunctionPlace{Name: ""}, e)
	default:
		return v.validateExprInTemporary(e)
	}
}

// validateExprInTemporary validates e in give mode and stores the
// result in a freshly introduced, unnamed temporary, returning a place
// referring to that temporary.
func (v *Validator) validateExprInTemporary(e syntax.Expr) Place {
	value := v.giveValidatedExpr(e)
	return v.storeValidatedExprInTemporary(e, value)
}

// validateExprInTemporaryInMode validates e under mode (rather than
// always in give mode, like validateExprInTemporary) and stores the
// result in a freshly introduced, unnamed temporary. Unlike
// validateExprInTemporary, it does not go through giveValidatedExpr,
// since mode here is frequently not give mode (e.g. a leased owner).
func (v *Validator) validateExprInTemporaryInMode(e syntax.Expr, mode ExprMode) Place {
	before := v.synthesized
	v.synthesized = false
	value := v.validateExprInMode(e, mode)
	v.synthesized = before
	return v.storeValidatedExprInTemporary(e, value)
}

func (v *Validator) storeValidatedExprInTemporary(origin syntax.Expr, value Expr) Place {
	temp := v.addLocalVariable(LocalVariableData{}, LocalVariableOrigin{Kind: OriginTemporary, Span: origin})
	v.scope.InsertTemporary(temp)
	v.emitStatement(v.addExpr(AssignTemporary{Temp: temp, Value: value}, origin))
	return v.addPlace(LocalVariablePlace{Var: temp}, origin)
}

// validateExprAsTargetPlace validates e as an assignable place. ownerMode
// is the mode a Dot's owner is validated in: the owner is not just read
// as a bare place but first evaluated into a leased (or reserved, for a
// plain `=`) temporary, exactly like any other expression validated
// under a mode, so that the field write goes through a stable handle on
// the owner rather than re-resolving it.
func (v *Validator) validateExprAsTargetPlace(e syntax.Expr, ownerMode ExprMode) TargetPlace {
	switch n := e.(type) {
	case *syntax.Id:
		if local, ok := v.scope.Lookup(n.Name); ok {
			return v.addTargetPlace(LocalVariableTarget{Var: local}, e)
		}
		v.report.Report(diag.Diagnostic{
			Severity: diag.Error,
			Primary:  diag.Label{Span: e.Span(), Message: fmt.Sprintf("cannot assign to undeclared name %q", n.Name)},
		})
		return v.addTargetPlace(LocalVariableTarget{}, e)
	case *syntax.Dot:
		owner := v.validateExprInTemporaryInMode(n.Owner, ownerMode)
		return v.addTargetPlace(DotTarget{Owner: owner, Field: n.Field}, e)
	case *syntax.Parenthesized:
		return v.validateExprAsTargetPlace(n.Inner, ownerMode)
	default:
		v.report.Report(diag.Diagnostic{
			Severity: diag.Error,
			Primary:  diag.Label{Span: e.Span(), Message: "expected an assignable place"},
		})
		return v.addTargetPlace(LocalVariableTarget{}, e)
	}
}

// --- literals ---------------------------------------------------------------

func (v *Validator) validateIntegerLiteral(e syntax.Expr, n *syntax.IntegerLiteral) Expr {
	text := stripUnderscores(n.Text)
	switch n.Suffix {
	case "i":
		val, ok := parseSignedInt(text)
		if !ok {
			return v.orError(e, fmt.Sprintf("integer literal %q does not fit in a signed 64-bit integer", n.Text))
		}
		return v.addExpr(SignedIntegerLiteral{Value: val}, e)
	case "", "u":
		val, ok := parseUnsignedInt(text)
		if !ok {
			return v.orError(e, fmt.Sprintf("integer literal %q does not fit in an unsigned 64-bit integer", n.Text))
		}
		return v.addExpr(UnsignedIntegerLiteral{Value: val}, e)
	default:
		return v.orError(e, fmt.Sprintf("unknown integer literal suffix %q", n.Suffix))
	}
}

func (v *Validator) validateFloatLiteral(e syntax.Expr, n *syntax.FloatLiteral) Expr {
	val, ok := parseFloat(stripUnderscores(n.Text))
	if !ok {
		return v.orError(e, fmt.Sprintf("invalid floating point literal %q", n.Text))
	}
	return v.addExpr(FloatLiteral{Value: val}, e)
}

func (v *Validator) validateStringLiteral(e syntax.Expr, n *syntax.StringLiteral) Expr {
	s, err := convertToDadaString(n.Raw, n.Multiline)
	if err != "" {
		return v.orError(e, err)
	}
	return v.addExpr(StringLiteral{Value: s}, e)
}

// --- effectful forms ---------------------------------------------------------

func (v *Validator) validateAwait(e syntax.Expr, n *syntax.Await) Expr {
	if v.effect != syntax.Async {
		v.report.Report(diag.Diagnostic{
			Severity: diag.Error,
			Primary:  diag.Label{Span: e.Span(), Message: "`.await` is only permitted in an async effect"},
			Secondary: &diag.Label{
				Span:    v.effectSpan,
				Message: "this scope does not have the async effect",
			},
		})
	}
	future := v.validateExprAsPlace(n.Future)
	return v.addExpr(Await{Future: future}, e)
}

// validateCall validates a function call. Unlike `.await`, a call is
// not gated on the surrounding effect: calling a function is always
// syntactically legal regardless of Default/Async/Atomic, the same way
// the original validator only ever checks permits_await, never a
// call-specific effect predicate. Whether the callee itself suspends
// is a property checked elsewhere (at the call site of whatever
// borrows this validated IR), not here.
func (v *Validator) validateCall(e syntax.Expr, n *syntax.Call) Expr {
	fn := v.reserveValidatedExpr(n.Func)
	fnPlace := v.storeValidatedExprInTemporary(n.Func, fn)
	args := v.validateNamedExprs(n.Args)
	return v.addExpr(Call{Func: fnPlace, Args: args}, e)
}

func (v *Validator) validateNamedExprs(args []syntax.Arg) []NamedArg {
	out := make([]NamedArg, 0, len(args))
	seenNamed := false
	for _, a := range args {
		if a.Name != "" {
			seenNamed = true
		} else if seenNamed {
			v.report.Report(diag.Diagnostic{
				Severity: diag.Error,
				Primary:  diag.Label{Span: a.Value.Span(), Message: "positional argument cannot follow a named argument"},
			})
		}
		out = append(out, v.validateNamedExpr(a))
	}
	return out
}

func (v *Validator) validateNamedExpr(a syntax.Arg) NamedArg {
	value := v.reserveValidatedExpr(a.Value)
	place := v.storeValidatedExprInTemporary(a.Value, value)
	return NamedArg{Name: a.Name, Value: place}
}

// --- var / assignment --------------------------------------------------------

func (v *Validator) validateVar(e syntax.Expr, n *syntax.Var) Expr {
	value := v.giveValidatedExpr(n.Value)
	local := v.addLocalVariable(LocalVariableData{Name: n.Name}, LocalVariableOrigin{Kind: OriginNamed, Span: e})
	v.scope.Insert(n.Name, local)
	return v.addExpr(AssignTemporary{Temp: local, Value: value}, e)
}

func (v *Validator) validateAssign(e syntax.Expr, n *syntax.Assign) Expr {
	target := v.validateExprAsTargetPlace(n.Place, ReserveMode())
	return v.validatedAssignment(e, target, n.Value)
}

// validatedAssignment implements the place-direct vs. rvalue-via-temp
// branching: if the right-hand side is itself a place expression, the
// assignment copies place-to-place directly; otherwise the right-hand
// side is validated into a temporary first and the temporary is
// assigned from.
func (v *Validator) validatedAssignment(origin syntax.Expr, target TargetPlace, valueSyn syntax.Expr) Expr {
	if v.isPlaceExpression(valueSyn) {
		value := v.validateExprAsPlace(valueSyn)
		return v.addExpr(AssignFromPlace{Target: target, Value: value}, origin)
	}
	value := v.giveValidatedExpr(valueSyn)
	place := v.storeValidatedExprInTemporary(valueSyn, value)
	return v.addExpr(AssignFromPlace{Target: target, Value: place}, origin)
}

// validateOpEq desugars `owner.field += rhs` (and the other compound
// operators) into: lease the owner place once, read-modify-write
// through that same leased temporary, assign back through it. Leasing
// the owner once, rather than re-evaluating it, ensures `owner` is read
// only a single time even when it has side effects.
func (v *Validator) validateOpEq(e syntax.Expr, n *syntax.OpEq) Expr {
	target := v.validateExprAsTargetPlace(n.Place, LeasedMode())
	ownerRead := v.addExpr(Give{Place: v.placeForTarget(n.Place, target)}, n.Place)
	ownerTemp := v.storeValidatedExprInTemporary(n.Place, ownerRead)

	rhs := v.giveValidatedExpr(n.Value)
	rhsPlace := v.storeValidatedExprInTemporary(n.Value, rhs)

	opResult := v.addExpr(Op{Left: ownerTemp, Op: n.Op, Right: rhsPlace}, e)
	resultPlace := v.storeValidatedExprInTemporary(e, opResult)

	return v.addExpr(AssignFromPlace{Target: target, Value: resultPlace}, e)
}

// placeForTarget mirrors a TargetPlace into a freshly-interned Place
// with the same shape, so it can be read from (a TargetPlace and a
// Place are interned in separate tables; a target's id is not a place
// id, so the two are never reinterpreted as each other). Used by
// validateOpEq to read a target's current value before writing it back.
func (v *Validator) placeForTarget(origin syntax.Expr, target TargetPlace) Place {
	switch data := v.tables.TargetPlaces.Get(target).(type) {
	case LocalVariableTarget:
		return v.addPlace(LocalVariablePlace{Var: data.Var}, origin)
	case DotTarget:
		return v.addPlace(DotPlace{Owner: data.Owner, Field: data.Field}, origin)
	default:
		panic(fmt.Sprintf("validate: unknown TargetPlaceData %T", data))
	}
}

// --- control flow -------------------------------------------------------------

func (v *Validator) validateTuple(e syntax.Expr, n *syntax.Tuple) Expr {
	elems := make([]Place, 0, len(n.Elements))
	for _, el := range n.Elements {
		elems = append(elems, v.validateExprAsPlace(el))
	}
	return v.addExpr(Tuple{Elements: elems}, e)
}

func (v *Validator) validateSeq(e syntax.Expr, n *syntax.Seq) Expr {
	stmts := v.seq(n.Statements)
	return v.addExpr(Seq{Statements: stmts}, e)
}

// seq validates a statement list in a fresh subscope and returns the
// validated statements with the scope's Declare-wrap applied to the
// final one, so every local the block introduced stays properly
// scoped to it.
func (v *Validator) seq(stmts []syntax.Expr) []Expr {
	if len(stmts) == 0 {
		return []Expr{v.emptyTuple()}
	}
	sub := v.subscope()
	out := make([]Expr, len(stmts))
	for i, s := range stmts {
		out[i] = sub.giveValidatedExpr(s)
	}
	out[len(out)-1] = sub.exit(out[len(out)-1])
	return out
}

func (v *Validator) validateIf(e syntax.Expr, n *syntax.If, mode ExprMode) Expr {
	cond := v.giveValidatedExpr(n.Cond)
	then := v.subscope().validateExprAndExit(n.Then, mode)
	var elseExpr Expr
	if n.Else != nil {
		elseExpr = v.subscope().validateExprAndExit(n.Else, mode)
	} else {
		elseExpr = v.emptyTuple()
	}
	return v.addExpr(If{Cond: cond, Then: then, Else: elseExpr}, e)
}

func (v *Validator) validateAtomic(e syntax.Expr, n *syntax.Atomic) Expr {
	sub := v.withEffect(syntax.AtomicEffect, e.Span())
	body := sub.subscope().validateExprAndExit(n.Body, GiveMode())
	return v.addExpr(Atomic{Body: body}, e)
}

// validateLoop always validates its body in give mode, regardless of
// the ambient mode the Loop expression itself was validated under.
//
// The loop's own Expr id must be known to Break expressions nested
// inside its body, but that id cannot exist until the body has been
// validated. We fix this up by first interning a placeholder Loop,
// pushing that id onto the loop stack, validating the body, and then
// overwriting the placeholder with the real Loop value.
func (v *Validator) validateLoop(e syntax.Expr, n *syntax.Loop) Expr {
	id := v.addExpr(Loop{}, e)
	inner := v.withLoopExpr(id)
	body := inner.subscope().validateExprAndExit(n.Body, GiveMode())
	v.tables.Exprs.Set(id, Loop{Body: body})
	return id
}

func (v *Validator) validateBreak(e syntax.Expr, value syntax.Expr) Expr {
	loopExpr, ok := v.currentLoopExpr()
	if !ok {
		return v.orError(e, "`break` used outside of a loop")
	}
	var val Expr
	if value != nil {
		val = v.giveValidatedExpr(value)
	} else {
		val = v.emptyTuple()
	}
	return v.addExpr(Break{LoopExpr: loopExpr, Value: val}, e)
}

// desugarWhile rewrites `while cond { body }` into
// `loop { body; if cond { () } else { break } }`: the body always runs
// once before cond is ever tested, so the loop executes-then-checks
// rather than checking first.
func desugarWhile(n *syntax.While) syntax.Expr {
	brk := &syntax.Unary{Op: breakMarker}
	ifExpr := &syntax.If{
		Cond: n.Cond,
		Then: &syntax.Tuple{},
		Else: brk,
	}
	return &syntax.Loop{Body: &syntax.Seq{Statements: []syntax.Expr{n.Body, ifExpr}}}
}

// breakMarker is a sentinel UnaryOp used only by desugarWhile to carry
// a synthesized `break` through the ordinary syntax.Unary shape; the
// validator recognizes it in validateUnary instead of introducing a
// dedicated syntax node just for a construct that only the desugaring
// itself ever produces.
const breakMarker syntax.UnaryOp = -1

func (v *Validator) validateUnary(e syntax.Expr, n *syntax.Unary) Expr {
	if n.Op == breakMarker {
		return v.validateBreak(e, nil)
	}
	operand := v.validateExprAsPlace(n.Operand)
	return v.addExpr(Unary{Op: n.Op, Operand: operand}, e)
}

func (v *Validator) validateOp(e syntax.Expr, n *syntax.Op) Expr {
	left := v.validateExprAsPlace(n.Left)
	right := v.validateExprAsPlace(n.Right)
	return v.addExpr(Op{Left: left, Op: n.Op, Right: right}, e)
}

func (v *Validator) validateReturn(e syntax.Expr, n *syntax.Return) Expr {
	if n.Value == nil {
		return v.addExpr(Return{Value: v.emptyTuple()}, e)
	}
	value := v.giveValidatedExpr(n.Value)
	return v.addExpr(Return{Value: value}, e)
}
