package rules

import (
	"github.com/hashicorp/go-hclog"

	"github.com/luashield/luashield/internal/ast"
)

// Run applies every rule to the tree in catalog order, recording findings in
// c as a side effect. A rule that panics on an unexpected tree shape is
// logged and skipped; findings it recorded before failing are kept (each is
// complete on its own) and the remaining rules still run.
func Run(t *ast.Tree, catalog []Rule, c *Collector, log hclog.Logger) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	for _, r := range catalog {
		runOne(t, r, c, log)
	}
}

func runOne(t *ast.Tree, r Rule, c *Collector, log hclog.Logger) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Warn("rule aborted, continuing scan", "rule", r.ID(), "panic", rec)
		}
	}()
	switch rr := r.(type) {
	case TreeRule:
		rr.CheckTree(t, c)
	case NodeRule:
		for id := range t.Walk(t.Root()) {
			rr.CheckNode(t, id, c)
		}
	default:
		log.Warn("rule has no granularity, skipping", "rule", r.ID())
	}
}
