package rules

import (
	"fmt"

	"github.com/luashield/luashield/internal/ast"
	"github.com/luashield/luashield/internal/types"
)

// expensiveOperationName is the literal callee the DoS rule looks for.
const expensiveOperationName = "perform_expensive_operation"

// DenialOfService flags calls to perform_expensive_operation.
type DenialOfService struct{}

func (DenialOfService) ID() types.Pattern        { return types.PatternDenialOfService }
func (DenialOfService) Title() string            { return "Denial of Service" }
func (DenialOfService) Severity() types.Severity { return types.SevMed }
func (DenialOfService) Doc() string {
	return "call to perform_expensive_operation"
}

func (r DenialOfService) CheckNode(t *ast.Tree, id ast.NodeID, c *Collector) {
	call, ok := t.Node(id).(*ast.Call)
	if !ok {
		return
	}
	name, ok := calleeName(t, call)
	if !ok || name != expensiveOperationName {
		return
	}
	_ = c.Record(types.Finding{
		Name:        r.Title(),
		Description: fmt.Sprintf("Potential Denial of Service vulnerability detected with function '%s'.", name),
		Pattern:     r.ID(),
		Severity:    r.Severity(),
		Line:        lineOf(t, id),
	})
}
