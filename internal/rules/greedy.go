package rules

import (
	"fmt"
	"strings"

	"github.com/luashield/luashield/internal/ast"
	"github.com/luashield/luashield/internal/types"
)

// transferNames is the case-insensitive set of fund-moving callees.
var transferNames = map[string]bool{
	"transfer":       true,
	"transfer_funds": true,
	"transferfunds":  true,
	"send":           true,
	"pay":            true,
}

// GreedySuicidal flags functions that move funds with no conditional guard:
// the direct statement list contains a transfer-style call and no If/ElseIf.
// A conditional nested inside another construct does not count; at most one
// finding is recorded per function.
type GreedySuicidal struct{}

func (GreedySuicidal) ID() types.Pattern        { return types.PatternGreedySuicidal }
func (GreedySuicidal) Title() string            { return "Greedy/Suicidal Functions" }
func (GreedySuicidal) Severity() types.Severity { return types.SevHigh }
func (GreedySuicidal) Doc() string {
	return "fund-transfer call without any conditional in the same statement list"
}

func (r GreedySuicidal) CheckTree(t *ast.Tree, c *Collector) {
	for id := range t.Walk(t.Root()) {
		fn, ok := t.Node(id).(*ast.Function)
		if !ok {
			continue
		}
		hasTransfer, hasCond := false, false
		for _, sid := range fn.Body {
			if isTransferCall(t, sid) {
				hasTransfer = true
			}
			switch t.Node(sid).(type) {
			case *ast.If, *ast.ElseIf:
				hasCond = true
			}
		}
		if !hasTransfer || hasCond {
			continue
		}
		_ = c.Record(types.Finding{
			Name:        r.Title(),
			Description: fmt.Sprintf("Potential greedy/suicidal contract detected in function '%s'.", fn.Name),
			Pattern:     r.ID(),
			Severity:    r.Severity(),
			Line:        lineOf(t, id),
		})
	}
}

func isTransferCall(t *ast.Tree, id ast.NodeID) bool {
	call, ok := t.Node(id).(*ast.Call)
	if !ok {
		return false
	}
	name, ok := calleeName(t, call)
	return ok && transferNames[strings.ToLower(name)]
}
