// Package parser adapts the gopher-lua parser to the scanner's syntax tree.
// Parsing is the only fallible step of a scan; everything downstream operates
// on the lowered tree.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	luaast "github.com/yuin/gopher-lua/ast"
	"github.com/yuin/gopher-lua/parse"

	"github.com/luashield/luashield/internal/ast"
)

// ParseError reports malformed Lua source. Line is 0 when the parser could
// not attribute the failure to a line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Msg)
	}
	return "parse error: " + e.Msg
}

// Parse runs the Lua parser over src and lowers the resulting chunk into the
// scanner's arena tree. The name is used in parser diagnostics only.
func Parse(name string, src []byte) (*ast.Tree, error) {
	chunk, err := parse.Parse(bytes.NewReader(src), name)
	if err != nil {
		var pe *parse.Error
		if errors.As(err, &pe) {
			// Failures at EOF carry position -1; report them as unattributed.
			line := pe.Pos.Line
			if line < 0 {
				line = 0
			}
			return nil, &ParseError{Line: line, Msg: pe.Message}
		}
		return nil, &ParseError{Msg: err.Error()}
	}
	t := ast.New()
	root := t.Add(ast.None, 0, &ast.Chunk{})
	ch := t.Node(root).(*ast.Chunk)
	ch.Body = lowerBlock(t, root, chunk)
	return t, nil
}

func lowerBlock(t *ast.Tree, parent ast.NodeID, stmts []luaast.Stmt) []ast.NodeID {
	out := make([]ast.NodeID, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, lowerStmt(t, parent, s))
	}
	return out
}

func lowerStmt(t *ast.Tree, parent ast.NodeID, s luaast.Stmt) ast.NodeID {
	line := s.Line()
	switch v := s.(type) {
	case *luaast.AssignStmt:
		id := t.Add(parent, line, &ast.Assign{})
		n := t.Node(id).(*ast.Assign)
		n.Targets = lowerExprs(t, id, v.Lhs)
		n.Values = lowerExprs(t, id, v.Rhs)
		return id
	case *luaast.LocalAssignStmt:
		id := t.Add(parent, line, &ast.LocalAssign{})
		n := t.Node(id).(*ast.LocalAssign)
		for _, name := range v.Names {
			n.Targets = append(n.Targets, t.Add(id, line, &ast.Name{Ident: name}))
		}
		for i, e := range v.Exprs {
			vid := lowerExpr(t, id, e)
			// `local function f() end` desugars to a local assignment of a
			// function expression; carry the declared name onto the node.
			if fn, ok := t.Node(vid).(*ast.Function); ok && fn.Name == "" && i < len(v.Names) {
				fn.Name = v.Names[i]
			}
			n.Values = append(n.Values, vid)
		}
		return id
	case *luaast.FuncCallStmt:
		return lowerExpr(t, parent, v.Expr)
	case *luaast.FuncDefStmt:
		id := lowerExpr(t, parent, v.Func)
		if fn, ok := t.Node(id).(*ast.Function); ok {
			fn.Name = funcDefName(v.Name)
		}
		return id
	case *luaast.ReturnStmt:
		id := t.Add(parent, line, &ast.Return{})
		n := t.Node(id).(*ast.Return)
		n.Values = lowerExprs(t, id, v.Exprs)
		return id
	case *luaast.IfStmt:
		return lowerIf(t, parent, v, false)
	case *luaast.WhileStmt:
		id := t.Add(parent, line, &ast.While{})
		n := t.Node(id).(*ast.While)
		n.Cond = lowerExpr(t, id, v.Condition)
		n.Body = lowerBlock(t, id, v.Stmts)
		return id
	case *luaast.RepeatStmt:
		id := t.Add(parent, line, &ast.Repeat{})
		n := t.Node(id).(*ast.Repeat)
		n.Body = lowerBlock(t, id, v.Stmts)
		n.Cond = lowerExpr(t, id, v.Condition)
		return id
	case *luaast.NumberForStmt:
		id := t.Add(parent, line, &ast.NumericFor{Name: v.Name, Step: ast.None})
		n := t.Node(id).(*ast.NumericFor)
		n.Start = lowerExpr(t, id, v.Init)
		n.Limit = lowerExpr(t, id, v.Limit)
		if v.Step != nil {
			n.Step = lowerExpr(t, id, v.Step)
		}
		n.Body = lowerBlock(t, id, v.Stmts)
		return id
	case *luaast.GenericForStmt:
		id := t.Add(parent, line, &ast.GenericFor{Names: v.Names})
		n := t.Node(id).(*ast.GenericFor)
		n.Exprs = lowerExprs(t, id, v.Exprs)
		n.Body = lowerBlock(t, id, v.Stmts)
		return id
	case *luaast.DoBlockStmt:
		id := t.Add(parent, line, &ast.Do{})
		n := t.Node(id).(*ast.Do)
		n.Body = lowerBlock(t, id, v.Stmts)
		return id
	case *luaast.BreakStmt:
		return t.Add(parent, line, &ast.Break{})
	case *luaast.LabelStmt:
		return t.Add(parent, line, &ast.Label{Name: v.Name})
	case *luaast.GotoStmt:
		return t.Add(parent, line, &ast.Goto{Label: v.Label})
	}
	// The switch covers every statement the gopher-lua grammar produces.
	panic(fmt.Sprintf("parser: unhandled statement %T", s))
}

// lowerIf lowers an if statement. gopher-lua represents elseif clauses as a
// single nested IfStmt in the Else branch; those become ElseIf nodes so the
// tree mirrors the surface syntax.
func lowerIf(t *ast.Tree, parent ast.NodeID, v *luaast.IfStmt, asElseIf bool) ast.NodeID {
	line := v.Line()
	if asElseIf {
		id := t.Add(parent, line, &ast.ElseIf{})
		n := t.Node(id).(*ast.ElseIf)
		n.Cond = lowerExpr(t, id, v.Condition)
		n.Then = lowerBlock(t, id, v.Then)
		n.Else = lowerElse(t, id, v.Else)
		return id
	}
	id := t.Add(parent, line, &ast.If{})
	n := t.Node(id).(*ast.If)
	n.Cond = lowerExpr(t, id, v.Condition)
	n.Then = lowerBlock(t, id, v.Then)
	n.Else = lowerElse(t, id, v.Else)
	return id
}

func lowerElse(t *ast.Tree, parent ast.NodeID, stmts []luaast.Stmt) []ast.NodeID {
	if len(stmts) == 1 {
		if nested, ok := stmts[0].(*luaast.IfStmt); ok {
			return []ast.NodeID{lowerIf(t, parent, nested, true)}
		}
	}
	return lowerBlock(t, parent, stmts)
}

func lowerExprs(t *ast.Tree, parent ast.NodeID, exprs []luaast.Expr) []ast.NodeID {
	out := make([]ast.NodeID, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, lowerExpr(t, parent, e))
	}
	return out
}

func lowerExpr(t *ast.Tree, parent ast.NodeID, e luaast.Expr) ast.NodeID {
	line := e.Line()
	switch v := e.(type) {
	case *luaast.NumberExpr:
		return t.Add(parent, line, &ast.Number{Value: numberValue(v.Value)})
	case *luaast.StringExpr:
		return t.Add(parent, line, &ast.String{Value: v.Value})
	case *luaast.TrueExpr:
		return t.Add(parent, line, &ast.Bool{Value: true})
	case *luaast.FalseExpr:
		return t.Add(parent, line, &ast.Bool{Value: false})
	case *luaast.NilExpr:
		return t.Add(parent, line, &ast.Nil{})
	case *luaast.Comma3Expr:
		return t.Add(parent, line, &ast.Vararg{})
	case *luaast.IdentExpr:
		return t.Add(parent, line, &ast.Name{Ident: v.Value})
	case *luaast.AttrGetExpr:
		id := t.Add(parent, line, &ast.Index{})
		n := t.Node(id).(*ast.Index)
		n.Object = lowerExpr(t, id, v.Object)
		n.Key = lowerExpr(t, id, v.Key)
		return id
	case *luaast.ArithmeticOpExpr:
		id := t.Add(parent, line, &ast.BinaryOp{Op: binOp(v.Operator)})
		n := t.Node(id).(*ast.BinaryOp)
		n.Left = lowerExpr(t, id, v.Lhs)
		n.Right = lowerExpr(t, id, v.Rhs)
		return id
	case *luaast.LogicalOpExpr:
		id := t.Add(parent, line, &ast.LogicalOp{Operator: v.Operator})
		n := t.Node(id).(*ast.LogicalOp)
		n.Left = lowerExpr(t, id, v.Lhs)
		n.Right = lowerExpr(t, id, v.Rhs)
		return id
	case *luaast.RelationalOpExpr:
		id := t.Add(parent, line, &ast.RelationalOp{Operator: v.Operator})
		n := t.Node(id).(*ast.RelationalOp)
		n.Left = lowerExpr(t, id, v.Lhs)
		n.Right = lowerExpr(t, id, v.Rhs)
		return id
	case *luaast.StringConcatOpExpr:
		id := t.Add(parent, line, &ast.Concat{})
		n := t.Node(id).(*ast.Concat)
		n.Left = lowerExpr(t, id, v.Lhs)
		n.Right = lowerExpr(t, id, v.Rhs)
		return id
	case *luaast.UnaryMinusOpExpr:
		// Fold -<number literal> into a signed literal so INT_MIN boundaries
		// are visible to the overflow rule.
		if num, ok := v.Expr.(*luaast.NumberExpr); ok {
			return t.Add(parent, line, &ast.Number{Value: -numberValue(num.Value)})
		}
		id := t.Add(parent, line, &ast.UnaryOp{Operator: "-"})
		n := t.Node(id).(*ast.UnaryOp)
		n.Operand = lowerExpr(t, id, v.Expr)
		return id
	case *luaast.UnaryNotOpExpr:
		id := t.Add(parent, line, &ast.UnaryOp{Operator: "not"})
		n := t.Node(id).(*ast.UnaryOp)
		n.Operand = lowerExpr(t, id, v.Expr)
		return id
	case *luaast.UnaryLenOpExpr:
		id := t.Add(parent, line, &ast.UnaryOp{Operator: "#"})
		n := t.Node(id).(*ast.UnaryOp)
		n.Operand = lowerExpr(t, id, v.Expr)
		return id
	case *luaast.FuncCallExpr:
		if v.Func == nil {
			// obj:method(args)
			id := t.Add(parent, line, &ast.MethodCall{Method: v.Method})
			n := t.Node(id).(*ast.MethodCall)
			n.Receiver = lowerExpr(t, id, v.Receiver)
			n.Args = lowerExprs(t, id, v.Args)
			return id
		}
		id := t.Add(parent, line, &ast.Call{})
		n := t.Node(id).(*ast.Call)
		n.Func = lowerExpr(t, id, v.Func)
		n.Args = lowerExprs(t, id, v.Args)
		return id
	case *luaast.FunctionExpr:
		id := t.Add(parent, line, &ast.Function{})
		n := t.Node(id).(*ast.Function)
		for _, p := range v.ParList.Names {
			n.Params = append(n.Params, t.Add(id, line, &ast.Name{Ident: p}))
		}
		n.Body = lowerBlock(t, id, v.Stmts)
		return id
	case *luaast.TableExpr:
		id := t.Add(parent, line, &ast.Table{})
		n := t.Node(id).(*ast.Table)
		for _, f := range v.Fields {
			fid := t.Add(id, line, &ast.Field{Key: ast.None})
			fn := t.Node(fid).(*ast.Field)
			if f.Key != nil {
				fn.Key = lowerExpr(t, fid, f.Key)
			}
			fn.Value = lowerExpr(t, fid, f.Value)
			n.Fields = append(n.Fields, fid)
		}
		return id
	}
	panic(fmt.Sprintf("parser: unhandled expression %T", e))
}

// binOp maps the parser's arithmetic operator strings onto the arena's
// operator set.
func binOp(op string) ast.BinOp {
	switch op {
	case "+":
		return ast.OpAdd
	case "-":
		return ast.OpSub
	case "*":
		return ast.OpMul
	case "/":
		return ast.OpDiv
	case "%":
		return ast.OpMod
	case "^":
		return ast.OpPow
	}
	panic("parser: unhandled operator " + op)
}

// funcDefName renders the declared name of `function name(...)`, including
// dotted prefixes and a colon method suffix.
func funcDefName(fn *luaast.FuncName) string {
	if fn == nil {
		return ""
	}
	if fn.Func != nil {
		return exprName(fn.Func)
	}
	if fn.Receiver != nil {
		return exprName(fn.Receiver) + ":" + fn.Method
	}
	return fn.Method
}

func exprName(e luaast.Expr) string {
	switch v := e.(type) {
	case *luaast.IdentExpr:
		return v.Value
	case *luaast.AttrGetExpr:
		if key, ok := v.Key.(*luaast.StringExpr); ok {
			return exprName(v.Object) + "." + key.Value
		}
		return exprName(v.Object) + ".?"
	}
	return "?"
}

// numberValue converts a Lua numeric literal to a float64. Decimal and hex
// forms are accepted; unparseable literals (which the parser should never
// emit) come back as 0.
func numberValue(s string) float64 {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	lower := strings.ToLower(strings.TrimSpace(s))
	if rest, ok := strings.CutPrefix(lower, "0x"); ok {
		if v, err := strconv.ParseUint(rest, 16, 64); err == nil {
			return float64(v)
		}
	}
	return 0
}
