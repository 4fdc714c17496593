package parser

import (
	"errors"
	"testing"

	"github.com/luashield/luashield/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Tree {
	t.Helper()
	tree, err := Parse("test.lua", []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return tree
}

// first returns the first statement of the chunk.
func first(t *testing.T, tree *ast.Tree) (ast.NodeID, ast.Node) {
	t.Helper()
	ch := tree.Node(tree.Root()).(*ast.Chunk)
	if len(ch.Body) == 0 {
		t.Fatal("empty chunk")
	}
	return ch.Body[0], tree.Node(ch.Body[0])
}

func TestParseFunctionDefinition(t *testing.T) {
	tree := mustParse(t, "function add(a, b)\n  return a + b\nend\n")
	id, n := first(t, tree)
	fn, ok := n.(*ast.Function)
	if !ok {
		t.Fatalf("expected Function, got %T", n)
	}
	if fn.Name != "add" || len(fn.Params) != 2 || len(fn.Body) != 1 {
		t.Fatalf("unexpected function: %+v", fn)
	}
	if l, ok := tree.Line(id); !ok || l != 1 {
		t.Fatalf("expected line 1, got %d", l)
	}
	ret, ok := tree.Node(fn.Body[0]).(*ast.Return)
	if !ok || len(ret.Values) != 1 {
		t.Fatalf("expected single-value return, got %+v", tree.Node(fn.Body[0]))
	}
	if _, ok := tree.Node(ret.Values[0]).(*ast.BinaryOp); !ok {
		t.Fatal("expected arithmetic return value")
	}
}

func TestParseLocalFunctionKeepsName(t *testing.T) {
	tree := mustParse(t, "local function helper()\n  return 1\nend\n")
	_, n := first(t, tree)
	la, ok := n.(*ast.LocalAssign)
	if !ok {
		t.Fatalf("expected LocalAssign, got %T", n)
	}
	fn, ok := tree.Node(la.Values[0]).(*ast.Function)
	if !ok || fn.Name != "helper" {
		t.Fatalf("expected named function value, got %+v", tree.Node(la.Values[0]))
	}
}

func TestParseMethodDefinitionName(t *testing.T) {
	tree := mustParse(t, "function account.bank:deposit(n)\n  return n\nend\n")
	_, n := first(t, tree)
	fn := n.(*ast.Function)
	if fn.Name != "account.bank:deposit" {
		t.Fatalf("unexpected name %q", fn.Name)
	}
}

func TestParseUnaryMinusFolding(t *testing.T) {
	tree := mustParse(t, "local x = -2147483648\n")
	_, n := first(t, tree)
	la := n.(*ast.LocalAssign)
	num, ok := tree.Node(la.Values[0]).(*ast.Number)
	if !ok || num.Value != -2147483648 {
		t.Fatalf("expected folded negative literal, got %+v", tree.Node(la.Values[0]))
	}

	// Folding applies to literals only.
	tree = mustParse(t, "local y = -x\n")
	_, n = first(t, tree)
	la = n.(*ast.LocalAssign)
	if _, ok := tree.Node(la.Values[0]).(*ast.UnaryOp); !ok {
		t.Fatalf("expected UnaryOp for -x, got %T", tree.Node(la.Values[0]))
	}
}

func TestParseCallShapes(t *testing.T) {
	tree := mustParse(t, "helper(1)\nobj.method(2)\nobj:method(3)\n")
	ch := tree.Node(tree.Root()).(*ast.Chunk)
	if len(ch.Body) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(ch.Body))
	}

	call := tree.Node(ch.Body[0]).(*ast.Call)
	if _, ok := tree.Node(call.Func).(*ast.Name); !ok {
		t.Fatal("plain call should have a Name callee")
	}

	member := tree.Node(ch.Body[1]).(*ast.Call)
	idx, ok := tree.Node(member.Func).(*ast.Index)
	if !ok {
		t.Fatalf("member call should have an Index callee, got %T", tree.Node(member.Func))
	}
	if key, ok := tree.Node(idx.Key).(*ast.String); !ok || key.Value != "method" {
		t.Fatal("member call key should be the attribute name")
	}

	mc, ok := tree.Node(ch.Body[2]).(*ast.MethodCall)
	if !ok || mc.Method != "method" || len(mc.Args) != 1 {
		t.Fatalf("expected MethodCall, got %+v", tree.Node(ch.Body[2]))
	}
}

func TestParseElseIfChain(t *testing.T) {
	src := "if a then\n  f()\nelseif b then\n  g()\nelse\n  h()\nend\n"
	tree := mustParse(t, src)
	_, n := first(t, tree)
	cond := n.(*ast.If)
	if len(cond.Else) != 1 {
		t.Fatalf("expected single elseif in else branch, got %d nodes", len(cond.Else))
	}
	ei, ok := tree.Node(cond.Else[0]).(*ast.ElseIf)
	if !ok {
		t.Fatalf("expected ElseIf, got %T", tree.Node(cond.Else[0]))
	}
	if len(ei.Then) != 1 || len(ei.Else) != 1 {
		t.Fatalf("unexpected elseif shape: %+v", ei)
	}
}

func TestParseHexLiteral(t *testing.T) {
	tree := mustParse(t, "local m = 0x7FFFFFFF\n")
	_, n := first(t, tree)
	la := n.(*ast.LocalAssign)
	num := tree.Node(la.Values[0]).(*ast.Number)
	if num.Value != 2147483647 {
		t.Fatalf("expected 2147483647, got %v", num.Value)
	}
}

func TestParseArithmeticOperators(t *testing.T) {
	cases := []struct {
		src string
		op  ast.BinOp
	}{
		{"x = a + b\n", ast.OpAdd},
		{"x = a - b\n", ast.OpSub},
		{"x = a * b\n", ast.OpMul},
		{"x = a / b\n", ast.OpDiv},
		{"x = a % b\n", ast.OpMod},
		{"x = a ^ b\n", ast.OpPow},
	}
	for _, tc := range cases {
		tree := mustParse(t, tc.src)
		_, n := first(t, tree)
		assign := n.(*ast.Assign)
		bin, ok := tree.Node(assign.Values[0]).(*ast.BinaryOp)
		if !ok {
			t.Fatalf("%q: expected BinaryOp, got %T", tc.src, tree.Node(assign.Values[0]))
		}
		if bin.Op != tc.op {
			t.Fatalf("%q: expected %s, got %s", tc.src, tc.op, bin.Op)
		}
	}
}

func TestParseErrorCarriesLine(t *testing.T) {
	_, err := Parse("bad.lua", []byte("local = 5\n"))
	if err == nil {
		t.Fatal("expected a parse error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Line <= 0 {
		t.Fatalf("expected a positive line, got %d", pe.Line)
	}
}

// Failures at end of input have no source position; they report line 0.
func TestParseErrorAtEOFUnattributed(t *testing.T) {
	_, err := Parse("bad.lua", []byte("function f(\n"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Line != 0 {
		t.Fatalf("expected line 0 for unattributed failure, got %d", pe.Line)
	}
	if pe.Msg == "" {
		t.Fatal("expected a message")
	}
}
