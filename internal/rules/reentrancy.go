package rules

import (
	"github.com/luashield/luashield/internal/ast"
	"github.com/luashield/luashield/internal/types"
)

// externalCallName is the literal callee the reentrancy rule looks for.
const externalCallName = "external_call"

// Reentrancy flags functions that call external_call and then assign state
// later in the same direct statement list. It is a sibling-order check only:
// nested blocks and other functions are not inspected, and one finding is
// recorded per call/assignment pair.
type Reentrancy struct{}

func (Reentrancy) ID() types.Pattern        { return types.PatternReentrancy }
func (Reentrancy) Title() string            { return "Reentrancy" }
func (Reentrancy) Severity() types.Severity { return types.SevHigh }
func (Reentrancy) Doc() string {
	return "external_call followed by a state assignment in the same statement list"
}

func (r Reentrancy) CheckTree(t *ast.Tree, c *Collector) {
	for id := range t.Walk(t.Root()) {
		fn, ok := t.Node(id).(*ast.Function)
		if !ok {
			continue
		}
		for i, sid := range fn.Body {
			if !isExternalCall(t, sid) {
				continue
			}
			for _, later := range fn.Body[i+1:] {
				if _, ok := t.Node(later).(*ast.Assign); !ok {
					continue
				}
				_ = c.Record(types.Finding{
					Name:        r.Title(),
					Description: "A function calls an external contract before updating its state.",
					Pattern:     r.ID(),
					Severity:    r.Severity(),
					Line:        lineOf(t, id),
				})
			}
		}
	}
}

func isExternalCall(t *ast.Tree, id ast.NodeID) bool {
	call, ok := t.Node(id).(*ast.Call)
	if !ok {
		return false
	}
	name, ok := calleeName(t, call)
	return ok && name == externalCallName
}
