// Package rules holds the detection catalog and the dispatcher that applies
// it to a syntax tree. Every rule is a stateless, syntactic pattern match;
// all per-scan state lives in the Collector.
package rules

import (
	"github.com/luashield/luashield/internal/ast"
	"github.com/luashield/luashield/internal/types"
)

// Rule is one detection in the catalog. Implementations also satisfy either
// TreeRule or NodeRule depending on their granularity.
type Rule interface {
	// ID returns the rule's stable pattern tag.
	ID() types.Pattern
	// Title returns the human label used in findings.
	Title() string
	// Severity returns the tier every finding of this rule carries.
	Severity() types.Severity
	// Doc returns a one-line description of the trigger condition.
	Doc() string
}

// TreeRule walks the tree on its own, typically because it needs sibling
// order or per-function context.
type TreeRule interface {
	Rule
	CheckTree(t *ast.Tree, c *Collector)
}

// NodeRule is invoked once per node of a pre-order walk driven by Run.
type NodeRule interface {
	Rule
	CheckNode(t *ast.Tree, id ast.NodeID, c *Collector)
}

// All returns the catalog in its fixed execution order. The order only
// affects finding-list readability; rules have no mutual dependency.
func All() []Rule {
	return []Rule{
		MissingReturn{},
		Overflow{},
		Reentrancy{},
		PrivateKey{},
		FloatingPragma{},
		DenialOfService{},
		UncheckedCall{},
		GreedySuicidal{},
	}
}

// Lookup returns the rule with the given tag, or nil.
func Lookup(id types.Pattern) Rule {
	for _, r := range All() {
		if r.ID() == id {
			return r
		}
	}
	return nil
}

func lineOf(t *ast.Tree, id ast.NodeID) *int {
	if n, ok := t.Line(id); ok {
		return &n
	}
	return nil
}

// calleeName returns the identifier a call statement invokes, when the
// callee is a plain Name.
func calleeName(t *ast.Tree, call *ast.Call) (string, bool) {
	name, ok := t.Node(call.Func).(*ast.Name)
	if !ok {
		return "", false
	}
	return name.Ident, true
}
