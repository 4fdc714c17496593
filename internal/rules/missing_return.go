package rules

import (
	"github.com/luashield/luashield/internal/ast"
	"github.com/luashield/luashield/internal/types"
)

// MissingReturn flags functions whose direct statement list contains no
// return. The check is deliberately shallow: a return reachable only through
// a nested if or loop body does not count.
type MissingReturn struct{}

func (MissingReturn) ID() types.Pattern        { return types.PatternMissingReturn }
func (MissingReturn) Title() string            { return "Missing Return Statement" }
func (MissingReturn) Severity() types.Severity { return types.SevLow }
func (MissingReturn) Doc() string {
	return "function body has no top-level return statement"
}

func (r MissingReturn) CheckTree(t *ast.Tree, c *Collector) {
	for id := range t.Walk(t.Root()) {
		fn, ok := t.Node(id).(*ast.Function)
		if !ok {
			continue
		}
		if hasDirectReturn(t, fn.Body) {
			continue
		}
		_ = c.Record(types.Finding{
			Name:        r.Title(),
			Description: "A function is missing a return statement.",
			Pattern:     r.ID(),
			Severity:    r.Severity(),
			Line:        lineOf(t, id),
		})
	}
}

func hasDirectReturn(t *ast.Tree, body []ast.NodeID) bool {
	for _, id := range body {
		if _, ok := t.Node(id).(*ast.Return); ok {
			return true
		}
	}
	return false
}
