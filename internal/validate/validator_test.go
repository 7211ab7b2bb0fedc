package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veeupup/dada/internal/diag"
	"github.com/Veeupup/dada/internal/syntax"
	"github.com/Veeupup/dada/internal/validate"
)

func fn(name string, params []syntax.Parameter, effect syntax.Effect, body syntax.Expr) *syntax.Function {
	return &syntax.Function{Name: name, Parameters: params, Effect: effect, Body: body}
}

func TestValidateBareParameterGivesItself(t *testing.T) {
	f := fn("f", []syntax.Parameter{{Name: "x", Specifier: syntax.My}}, syntax.Default, &syntax.Id{Name: "x"})

	collector := &diag.Collector{}
	result := validate.Validate(f, collector)

	require.Empty(t, collector.Diagnostics)
	require.Len(t, result.Parameters, 1)

	data := result.Tables.Exprs.Get(result.Root)
	give, ok := data.(validate.Give)
	require.True(t, ok, "expected root expr to be Give, got %T", data)

	place := result.Tables.Places.Get(give.Place)
	lv, ok := place.(validate.LocalVariablePlace)
	require.True(t, ok)
	assert.Equal(t, result.Parameters[0], lv.Var)
}

func TestValidateLeasedSpecifierProducesLease(t *testing.T) {
	f := fn("f", nil, syntax.Default, &syntax.Lease{Target: &syntax.Id{Name: "missing"}})

	collector := &diag.Collector{}
	result := validate.Validate(f, collector)

	data := result.Tables.Exprs.Get(result.Root)
	_, ok := data.(validate.Lease)
	assert.True(t, ok, "expected Lease, got %T", data)
}

func TestValidateVarDeclarationBindsNameAndYieldsUnit(t *testing.T) {
	body := &syntax.Seq{Statements: []syntax.Expr{
		&syntax.Var{Name: "x", Value: &syntax.IntegerLiteral{Text: "1"}},
		&syntax.Id{Name: "x"},
	}}
	f := fn("f", nil, syntax.Default, body)

	collector := &diag.Collector{}
	result := validate.Validate(f, collector)
	require.Empty(t, collector.Diagnostics)

	seq := result.Tables.Exprs.Get(result.Root).(validate.Seq)
	require.Len(t, seq.Statements, 2)

	assignTemp, ok := result.Tables.Exprs.Get(seq.Statements[0]).(validate.AssignTemporary)
	require.True(t, ok)

	lastData := result.Tables.Exprs.Get(seq.Statements[1])
	declare, ok := lastData.(validate.Declare)
	require.True(t, ok, "block result should be wrapped in Declare, got %T", lastData)
	require.Contains(t, declare.Locals, assignTemp.Temp)

	give := result.Tables.Exprs.Get(declare.Body).(validate.Give)
	place := result.Tables.Places.Get(give.Place).(validate.LocalVariablePlace)
	assert.Equal(t, assignTemp.Temp, place.Var)
}

func TestValidateIfElseLessDesugarsToUnitElse(t *testing.T) {
	ifExpr := &syntax.If{
		Cond: &syntax.BooleanLiteral{Value: true},
		Then: &syntax.Tuple{},
	}
	f := fn("f", nil, syntax.Default, ifExpr)

	collector := &diag.Collector{}
	result := validate.Validate(f, collector)
	require.Empty(t, collector.Diagnostics)

	iff := result.Tables.Exprs.Get(result.Root).(validate.If)
	elseData := result.Tables.Exprs.Get(iff.Else)
	tup, ok := elseData.(validate.Tuple)
	require.True(t, ok)
	assert.Empty(t, tup.Elements)
}

func TestValidateWhileDesugarsToLoopWithBreak(t *testing.T) {
	body := &syntax.While{
		Cond: &syntax.BooleanLiteral{Value: true},
		Body: &syntax.Tuple{},
	}
	f := fn("f", nil, syntax.Default, body)

	collector := &diag.Collector{}
	result := validate.Validate(f, collector)
	require.Empty(t, collector.Diagnostics)

	loop, ok := result.Tables.Exprs.Get(result.Root).(validate.Loop)
	require.True(t, ok, "expected Loop, got %T", result.Tables.Exprs.Get(result.Root))

	seq, ok := result.Tables.Exprs.Get(loop.Body).(validate.Seq)
	require.True(t, ok, "expected loop body to be a Seq of [while-body, check], got %T", result.Tables.Exprs.Get(loop.Body))
	require.Len(t, seq.Statements, 2, "while's body must run before cond is ever checked")

	iff, ok := result.Tables.Exprs.Get(seq.Statements[1]).(validate.If)
	require.True(t, ok, "expected If checking cond after the body")

	brk, ok := result.Tables.Exprs.Get(iff.Else).(validate.Break)
	require.True(t, ok, "expected Break in while's else branch")
	assert.Equal(t, result.Root, brk.LoopExpr)
}

func TestValidateAwaitOutsideAsyncReportsDiagnostic(t *testing.T) {
	f := fn("f", []syntax.Parameter{{Name: "x"}}, syntax.Default, &syntax.Await{Future: &syntax.Id{Name: "x"}})

	collector := &diag.Collector{}
	validate.Validate(f, collector)

	require.Len(t, collector.Diagnostics, 1)
	d := collector.Diagnostics[0]
	assert.Equal(t, diag.Error, d.Severity)
	require.NotNil(t, d.Secondary)
}

func TestValidateAwaitInsideAsyncIsFine(t *testing.T) {
	f := fn("f", []syntax.Parameter{{Name: "x"}}, syntax.Async, &syntax.Await{Future: &syntax.Id{Name: "x"}})

	collector := &diag.Collector{}
	validate.Validate(f, collector)

	assert.Empty(t, collector.Diagnostics)
}

func TestValidateCallPositionalArgAfterNamedIsDiagnosed(t *testing.T) {
	call := &syntax.Call{
		Func: &syntax.Id{Name: "g"},
		Args: []syntax.Arg{
			{Name: "a", Value: &syntax.IntegerLiteral{Text: "1"}},
			{Value: &syntax.IntegerLiteral{Text: "2"}},
		},
	}
	f := fn("f", nil, syntax.Async, call)

	collector := &diag.Collector{}
	validate.Validate(f, collector)

	require.Len(t, collector.Diagnostics, 1)
	assert.Contains(t, collector.Diagnostics[0].Primary.Message, "cannot follow a named argument")
}

func TestValidateIntegerLiteralOverflowIsDiagnosed(t *testing.T) {
	f := fn("f", nil, syntax.Default, &syntax.IntegerLiteral{Text: "99999999999999999999999999"})

	collector := &diag.Collector{}
	result := validate.Validate(f, collector)

	require.Len(t, collector.Diagnostics, 1)
	_, ok := result.Tables.Exprs.Get(result.Root).(validate.ErrorExpr)
	assert.True(t, ok)
}

func TestValidateIntegerLiteralUnderscoresAreStripped(t *testing.T) {
	f := fn("f", nil, syntax.Default, &syntax.IntegerLiteral{Text: "1_000_000"})

	collector := &diag.Collector{}
	result := validate.Validate(f, collector)

	require.Empty(t, collector.Diagnostics)
	lit := result.Tables.Exprs.Get(result.Root).(validate.UnsignedIntegerLiteral)
	assert.Equal(t, uint64(1000000), lit.Value)
}

func TestValidateOpEqDesugarsToReadModifyWrite(t *testing.T) {
	opEq := &syntax.OpEq{
		Place: &syntax.Id{Name: "x"},
		Op:    syntax.Add,
		Value: &syntax.IntegerLiteral{Text: "1"},
	}
	f := fn("f", []syntax.Parameter{{Name: "x", Specifier: syntax.My}}, syntax.Default, opEq)

	collector := &diag.Collector{}
	result := validate.Validate(f, collector)
	require.Empty(t, collector.Diagnostics)

	seq, ok := result.Tables.Exprs.Get(result.Root).(validate.Seq)
	require.True(t, ok, "expected the read-modify-write sequence, got %T", result.Tables.Exprs.Get(result.Root))
	require.Len(t, seq.Statements, 4)

	_, ok = result.Tables.Exprs.Get(seq.Statements[0]).(validate.AssignTemporary)
	assert.True(t, ok, "first statement should read the current value into a temporary")

	op, ok := result.Tables.Exprs.Get(seq.Statements[2]).(validate.AssignTemporary)
	require.True(t, ok)
	_, ok = result.Tables.Exprs.Get(op.Value).(validate.Op)
	assert.True(t, ok, "third statement should compute the op result")

	final, ok := result.Tables.Exprs.Get(seq.Statements[3]).(validate.AssignFromPlace)
	require.True(t, ok, "last statement should assign back through the owner")
	_ = final
}

func TestValidateOpEqOnDotLeasesOwnerBeforeReadModifyWrite(t *testing.T) {
	// `foo.bar += 1`: the owner must be leased into a temporary once,
	// and the read/write both go through that same leased temporary
	// rather than re-resolving `foo` a second time.
	opEq := &syntax.OpEq{
		Place: &syntax.Dot{Owner: &syntax.Id{Name: "foo"}, Field: "bar"},
		Op:    syntax.Add,
		Value: &syntax.IntegerLiteral{Text: "1"},
	}
	f := fn("f", []syntax.Parameter{{Name: "foo", Specifier: syntax.My}}, syntax.Default, opEq)

	collector := &diag.Collector{}
	result := validate.Validate(f, collector)
	require.Empty(t, collector.Diagnostics)

	seq, ok := result.Tables.Exprs.Get(result.Root).(validate.Seq)
	require.True(t, ok, "expected the read-modify-write sequence, got %T", result.Tables.Exprs.Get(result.Root))
	require.Len(t, seq.Statements, 5, "owner lease adds one statement ahead of the bare-variable case")

	leaseOwner, ok := result.Tables.Exprs.Get(seq.Statements[0]).(validate.AssignTemporary)
	require.True(t, ok, "first statement should lease the owner into a temporary")
	lease, ok := result.Tables.Exprs.Get(leaseOwner.Value).(validate.Lease)
	require.True(t, ok, "owner should be leased, not given, got %T", result.Tables.Exprs.Get(leaseOwner.Value))

	readOwner, ok := result.Tables.Exprs.Get(seq.Statements[1]).(validate.AssignTemporary)
	require.True(t, ok, "second statement should read the field through the leased owner")
	read, ok := result.Tables.Exprs.Get(readOwner.Value).(validate.Give)
	require.True(t, ok)
	dot, ok := result.Tables.Places.Get(read.Place).(validate.DotPlace)
	require.True(t, ok, "read should be through a Dot place, got %T", result.Tables.Places.Get(read.Place))
	assert.Equal(t, "bar", dot.Field)
	ownerVar, ok := result.Tables.Places.Get(dot.Owner).(validate.LocalVariablePlace)
	require.True(t, ok)
	assert.Equal(t, leaseOwner.Temp, ownerVar.Var, "read must go through the same leased owner temporary")

	final, ok := result.Tables.Exprs.Get(seq.Statements[4]).(validate.AssignFromPlace)
	require.True(t, ok, "last statement should assign back through the owner")
	target, ok := result.Tables.TargetPlaces.Get(final.Target).(validate.DotTarget)
	require.True(t, ok)
	assert.Equal(t, "bar", target.Field)
	targetOwner, ok := result.Tables.Places.Get(target.Owner).(validate.LocalVariablePlace)
	require.True(t, ok)
	assert.Equal(t, leaseOwner.Temp, targetOwner.Var, "write must go through the same leased owner temporary")
}

func TestValidateReturnWithoutValueYieldsUnit(t *testing.T) {
	f := fn("f", nil, syntax.Default, &syntax.Return{})

	collector := &diag.Collector{}
	result := validate.Validate(f, collector)
	require.Empty(t, collector.Diagnostics)

	ret, ok := result.Tables.Exprs.Get(result.Root).(validate.Return)
	require.True(t, ok)
	tup, ok := result.Tables.Exprs.Get(ret.Value).(validate.Tuple)
	require.True(t, ok)
	assert.Empty(t, tup.Elements)
}

func TestValidateAssignPlaceDirectCopiesWithoutTemporary(t *testing.T) {
	assign := &syntax.Assign{
		Place: &syntax.Id{Name: "x"},
		Value: &syntax.Id{Name: "y"},
	}
	f := fn("f", []syntax.Parameter{{Name: "x"}, {Name: "y"}}, syntax.Default, assign)

	collector := &diag.Collector{}
	result := validate.Validate(f, collector)
	require.Empty(t, collector.Diagnostics)

	assignFromPlace, ok := result.Tables.Exprs.Get(result.Root).(validate.AssignFromPlace)
	require.True(t, ok, "expected a direct AssignFromPlace, got %T", result.Tables.Exprs.Get(result.Root))
	place := result.Tables.Places.Get(assignFromPlace.Value).(validate.LocalVariablePlace)
	assert.Equal(t, result.Parameters[1], place.Var)
}
