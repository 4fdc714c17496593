package rules

import (
	"fmt"

	"github.com/luashield/luashield/internal/ast"
	"github.com/luashield/luashield/internal/types"
)

// UncheckedCall flags bare obj.method(...) statements in a function's direct
// statement list: a member call whose result is discarded rather than
// checked. Only top-level statements of the body are inspected.
type UncheckedCall struct{}

func (UncheckedCall) ID() types.Pattern        { return types.PatternUncheckedCall }
func (UncheckedCall) Title() string            { return "Unchecked External Calls" }
func (UncheckedCall) Severity() types.Severity { return types.SevMed }
func (UncheckedCall) Doc() string {
	return "bare obj.method(...) call statement whose result is ignored"
}

func (r UncheckedCall) CheckTree(t *ast.Tree, c *Collector) {
	for id := range t.Walk(t.Root()) {
		fn, ok := t.Node(id).(*ast.Function)
		if !ok {
			continue
		}
		for _, sid := range fn.Body {
			if !isMemberCall(t, sid) {
				continue
			}
			_ = c.Record(types.Finding{
				Name:        r.Title(),
				Description: fmt.Sprintf("Unchecked external call detected in function '%s'.", fn.Name),
				Pattern:     r.ID(),
				Severity:    r.Severity(),
				Line:        lineOf(t, sid),
			})
		}
	}
}

// isMemberCall reports whether id is a call whose callee is an index
// expression over a plain name, i.e. obj.method(...).
func isMemberCall(t *ast.Tree, id ast.NodeID) bool {
	call, ok := t.Node(id).(*ast.Call)
	if !ok {
		return false
	}
	idx, ok := t.Node(call.Func).(*ast.Index)
	if !ok {
		return false
	}
	_, ok = t.Node(idx.Object).(*ast.Name)
	return ok
}
