package validate

import (
	"bytes"
	"fmt"
)

// Print renders r's validated IR as an indented textual dump, rooted
// at r.Root. It exists for debugging and for cmd/dadavalidate's output,
// not as a reparsable format.
func Print(r Result) string {
	p := &printer{result: r}
	p.expr(r.Root, 0)
	return p.buf.String()
}

type printer struct {
	result Result
	buf    bytes.Buffer
}

func (p *printer) indent(depth int) {
	for i := 0; i < depth; i++ {
		p.buf.WriteString("  ")
	}
}

func (p *printer) line(depth int, format string, args ...any) {
	p.indent(depth)
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *printer) expr(e Expr, depth int) {
	switch data := p.result.Tables.Exprs.Get(e).(type) {
	case BooleanLiteral:
		p.line(depth, "%v", data.Value)
	case SignedIntegerLiteral:
		p.line(depth, "%di", data.Value)
	case UnsignedIntegerLiteral:
		p.line(depth, "%du", data.Value)
	case FloatLiteral:
		p.line(depth, "%g", data.Value)
	case StringLiteral:
		p.line(depth, "%q", data.Value)
	case Reserve:
		p.line(depth, "reserve")
		p.place(data.Place, depth+1)
	case Share:
		p.line(depth, "share")
		p.expr(data.Inner, depth+1)
	case Lease:
		p.line(depth, "lease")
		p.place(data.Place, depth+1)
	case Shlease:
		p.line(depth, "shlease")
		p.place(data.Place, depth+1)
	case Give:
		p.line(depth, "give")
		p.place(data.Place, depth+1)
	case Unit:
		p.line(depth, "()")
	case Tuple:
		p.line(depth, "tuple(%d)", len(data.Elements))
		for _, el := range data.Elements {
			p.place(el, depth+1)
		}
	case Seq:
		p.line(depth, "seq")
		for _, s := range data.Statements {
			p.expr(s, depth+1)
		}
	case Op:
		p.line(depth, "op %v", data.Op)
		p.place(data.Left, depth+1)
		p.place(data.Right, depth+1)
	case Unary:
		p.line(depth, "unary %v", data.Op)
		p.place(data.Operand, depth+1)
	case ErrorExpr:
		p.line(depth, "<error>")
	case Declare:
		p.line(depth, "declare %v", data.Locals)
		p.expr(data.Body, depth+1)
	case AssignTemporary:
		p.line(depth, "temp%d =", data.Temp)
		p.expr(data.Value, depth+1)
	case AssignFromPlace:
		p.line(depth, "assign ->")
		p.targetPlace(data.Target, depth+1)
		p.place(data.Value, depth+1)
	case If:
		p.line(depth, "if")
		p.expr(data.Cond, depth+1)
		p.line(depth, "then")
		p.expr(data.Then, depth+1)
		p.line(depth, "else")
		p.expr(data.Else, depth+1)
	case Loop:
		p.line(depth, "loop")
		p.expr(data.Body, depth+1)
	case Break:
		p.line(depth, "break (loop=%d)", data.LoopExpr)
		p.expr(data.Value, depth+1)
	case Atomic:
		p.line(depth, "atomic")
		p.expr(data.Body, depth+1)
	case Call:
		p.line(depth, "call")
		p.place(data.Func, depth+1)
		for _, a := range data.Args {
			if a.Name != "" {
				p.line(depth+1, "%s:", a.Name)
			}
			p.place(a.Value, depth+1)
		}
	case Await:
		p.line(depth, "await")
		p.place(data.Future, depth+1)
	case Return:
		p.line(depth, "return")
		p.expr(data.Value, depth+1)
	default:
		p.line(depth, "<unknown expr %T>", data)
	}
}

func (p *printer) place(pl Place, depth int) {
	switch data := p.result.Tables.Places.Get(pl).(type) {
	case LocalVariablePlace:
		p.line(depth, "local%d", data.Var)
	case FunctionPlace:
		p.line(depth, "fn %s", data.Name)
	case DotPlace:
		p.line(depth, "dot .%s", data.Field)
		p.place(data.Owner, depth+1)
	default:
		p.line(depth, "<unknown place %T>", data)
	}
}

func (p *printer) targetPlace(tp TargetPlace, depth int) {
	switch data := p.result.Tables.TargetPlaces.Get(tp).(type) {
	case LocalVariableTarget:
		p.line(depth, "local%d", data.Var)
	case DotTarget:
		p.line(depth, "dot .%s", data.Field)
		p.place(data.Owner, depth+1)
	default:
		p.line(depth, "<unknown target place %T>", data)
	}
}
