package rules

import (
	"fmt"
	"strings"

	"github.com/luashield/luashield/internal/ast"
	"github.com/luashield/luashield/internal/types"
)

// privateKeyNames is the exact set of suspicious assignment targets,
// compared case-insensitively. No substring matching: public_key is fine.
var privateKeyNames = map[string]bool{
	"privatekey":  true,
	"private_key": true,
	"secretkey":   true,
	"secret_key":  true,
	"keypair":     true,
	"key_pair":    true,
	"api_key":     true,
}

// PrivateKey flags assignments whose target name, lower-cased, is in the
// private-key name set.
type PrivateKey struct{}

func (PrivateKey) ID() types.Pattern        { return types.PatternPrivateKey }
func (PrivateKey) Title() string            { return "Private Key Exposure" }
func (PrivateKey) Severity() types.Severity { return types.SevHigh }
func (PrivateKey) Doc() string {
	return "assignment to a variable named like a private key or secret"
}

func (r PrivateKey) CheckNode(t *ast.Tree, id ast.NodeID, c *Collector) {
	assign, ok := t.Node(id).(*ast.Assign)
	if !ok {
		return
	}
	for _, tid := range assign.Targets {
		name, ok := t.Node(tid).(*ast.Name)
		if !ok || !privateKeyNames[strings.ToLower(name.Ident)] {
			continue
		}
		_ = c.Record(types.Finding{
			Name:        r.Title(),
			Description: fmt.Sprintf("Potential exposure of private key in variable '%s'.", name.Ident),
			Pattern:     r.ID(),
			Severity:    r.Severity(),
			Line:        lineOf(t, id),
		})
	}
}
