package rules

import (
	"fmt"

	"github.com/luashield/luashield/internal/ast"
	"github.com/luashield/luashield/internal/types"
)

// deprecatedEnvFunctions are the environment-manipulation builtins removed
// in later Lua versions; relying on them pins the contract to old runtimes.
var deprecatedEnvFunctions = map[string]bool{
	"setfenv": true,
	"getfenv": true,
}

// FloatingPragma flags calls to setfenv/getfenv.
type FloatingPragma struct{}

func (FloatingPragma) ID() types.Pattern        { return types.PatternFloatingPragma }
func (FloatingPragma) Title() string            { return "Floating Pragma" }
func (FloatingPragma) Severity() types.Severity { return types.SevLow }
func (FloatingPragma) Doc() string {
	return "call to a deprecated environment function (setfenv/getfenv)"
}

func (r FloatingPragma) CheckNode(t *ast.Tree, id ast.NodeID, c *Collector) {
	call, ok := t.Node(id).(*ast.Call)
	if !ok {
		return
	}
	name, ok := calleeName(t, call)
	if !ok || !deprecatedEnvFunctions[name] {
		return
	}
	_ = c.Record(types.Finding{
		Name:        r.Title(),
		Description: fmt.Sprintf("Floating pragma issue detected with function '%s'.", name),
		Pattern:     r.ID(),
		Severity:    r.Severity(),
		Line:        lineOf(t, id),
	})
}
