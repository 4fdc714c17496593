package rules

import (
	"testing"

	"github.com/luashield/luashield/internal/ast"
	"github.com/luashield/luashield/internal/parser"
	"github.com/luashield/luashield/internal/types"
)

func mustParse(t *testing.T, src string) *ast.Tree {
	t.Helper()
	tree, err := parser.Parse("test.lua", []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return tree
}

// scanWith runs a single rule over src and drains the session.
func scanWith(t *testing.T, r Rule, src string) []types.Finding {
	t.Helper()
	c := NewCollector()
	Run(mustParse(t, src), []Rule{r}, c, nil)
	return c.Drain()
}
