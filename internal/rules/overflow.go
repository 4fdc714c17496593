package rules

import (
	"github.com/luashield/luashield/internal/ast"
	"github.com/luashield/luashield/internal/types"
)

// 32-bit signed integer boundaries. Literals at or beyond them overflow the
// integer width common to contract runtimes.
const (
	intMax = 2147483647
	intMin = -2147483648
)

// Overflow flags numeric literals at or beyond the 32-bit signed boundaries
// in four positions: operands of + - *, local-assignment values, function
// parameters carrying literal defaults, and return values inside a function
// literally named "another_example". The last is a hard-coded name match
// kept from the tool's original catalog; it is not a general return check.
type Overflow struct{}

func (Overflow) ID() types.Pattern        { return types.PatternOverflow }
func (Overflow) Title() string            { return "Integer Overflow/Underflow" }
func (Overflow) Severity() types.Severity { return types.SevHigh }
func (Overflow) Doc() string {
	return "numeric literal at or beyond INT_MAX/INT_MIN in an arithmetic, assignment, parameter, or flagged return position"
}

func (r Overflow) CheckNode(t *ast.Tree, id ast.NodeID, c *Collector) {
	switch n := t.Node(id).(type) {
	case *ast.BinaryOp:
		if n.Op != ast.OpAdd && n.Op != ast.OpSub && n.Op != ast.OpMul {
			return
		}
		r.checkLiteral(t, c, n.Left, "Potential integer overflow/underflow detected with left operand.")
		r.checkLiteral(t, c, n.Right, "Potential integer overflow/underflow detected with right operand.")
	case *ast.LocalAssign:
		for _, v := range n.Values {
			r.checkLiteral(t, c, v, "Potential integer overflow/underflow detected with local variable assignment.")
		}
	case *ast.Function:
		for _, p := range n.Params {
			r.checkLiteral(t, c, p, "Potential integer overflow/underflow detected with function argument.")
		}
		if n.Name == "another_example" {
			r.checkFlaggedReturns(t, c, n)
		}
	}
}

func (r Overflow) checkFlaggedReturns(t *ast.Tree, c *Collector, fn *ast.Function) {
	for _, sid := range fn.Body {
		ret, ok := t.Node(sid).(*ast.Return)
		if !ok {
			continue
		}
		for _, v := range ret.Values {
			r.checkLiteral(t, c, v,
				"Potential integer overflow/underflow detected in return statement of function 'another_example'.")
		}
	}
}

func (r Overflow) checkLiteral(t *ast.Tree, c *Collector, id ast.NodeID, desc string) {
	num, ok := t.Node(id).(*ast.Number)
	if !ok || !overflows(num.Value) {
		return
	}
	_ = c.Record(types.Finding{
		Name:        r.Title(),
		Description: desc,
		Pattern:     r.ID(),
		Severity:    r.Severity(),
		Line:        lineOf(t, id),
	})
}

func overflows(v float64) bool { return v >= intMax || v <= intMin }
