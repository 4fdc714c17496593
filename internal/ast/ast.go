// Package ast defines the syntax tree the rule catalog matches against.
// Nodes live in a flat arena owned by a Tree; they reference each other by
// NodeID rather than by pointer, and every node carries the ID of its
// enclosing node so source lines can be resolved by walking upward.
package ast

import "iter"

// NodeID indexes a node inside a Tree's arena. None marks an absent
// reference (e.g. the parent of the root).
type NodeID int32

// None is the null NodeID.
const None NodeID = -1

// BinOp enumerates arithmetic binary operators.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "^"
	}
	return "?"
}

// Node is the closed set of Lua constructs the scanner understands. Rules
// dispatch on the concrete type; the set matches what the parser adapter
// can emit, so type switches over it are total.
type Node interface{ node() }

// Chunk is the root of a parsed file; Body is its statement list.
type Chunk struct{ Body []NodeID }

// Function is a function definition, named or anonymous. Body is the direct
// statement list; nested blocks are reachable only through their own nodes.
type Function struct {
	Name   string
	Params []NodeID
	Body   []NodeID
}

// Return is a return statement with zero or more value expressions.
type Return struct{ Values []NodeID }

// Assign is a plain assignment; Targets and Values are parallel lists.
type Assign struct{ Targets, Values []NodeID }

// LocalAssign is a local declaration with optional initializers.
type LocalAssign struct{ Targets, Values []NodeID }

// BinaryOp is an arithmetic expression.
type BinaryOp struct {
	Op          BinOp
	Left, Right NodeID
}

// LogicalOp is an and/or expression.
type LogicalOp struct {
	Operator    string
	Left, Right NodeID
}

// RelationalOp is a comparison expression.
type RelationalOp struct {
	Operator    string
	Left, Right NodeID
}

// Concat is the .. string concatenation operator.
type Concat struct{ Left, Right NodeID }

// UnaryOp is not/#/- applied to an operand. Unary minus on a number literal
// never appears here: the parser adapter folds it into a negative Number so
// boundary checks see the signed value.
type UnaryOp struct {
	Operator string
	Operand  NodeID
}

// Number is a numeric literal.
type Number struct{ Value float64 }

// String is a string literal.
type String struct{ Value string }

// Bool is a boolean literal.
type Bool struct{ Value bool }

// Nil is the nil literal.
type Nil struct{}

// Vararg is the ... expression.
type Vararg struct{}

// Name is an identifier reference.
type Name struct{ Ident string }

// Index is field access of the form obj.key or obj[key].
type Index struct{ Object, Key NodeID }

// Call is a function call; Func may be a Name, Index, or any callable
// expression. A Call appearing directly in a statement list is a call
// statement.
type Call struct {
	Func NodeID
	Args []NodeID
}

// MethodCall is a colon call of the form obj:method(args). It is distinct
// from a Call with an Index callee so rules can tell the two apart.
type MethodCall struct {
	Receiver NodeID
	Method   string
	Args     []NodeID
}

// Table is a table constructor.
type Table struct{ Fields []NodeID }

// Field is one table entry; Key is None for array-style entries.
type Field struct{ Key, Value NodeID }

// If is a conditional statement. Else holds the else branch, which for an
// elseif chain contains the next conditional.
type If struct {
	Cond NodeID
	Then []NodeID
	Else []NodeID
}

// ElseIf is an elseif clause carried inside an If chain. Else holds the
// rest of the chain, if any.
type ElseIf struct {
	Cond NodeID
	Then []NodeID
	Else []NodeID
}

// While is a while loop.
type While struct {
	Cond NodeID
	Body []NodeID
}

// Repeat is a repeat/until loop; Cond is evaluated after Body.
type Repeat struct {
	Body []NodeID
	Cond NodeID
}

// NumericFor is a numeric for loop; Step is None when omitted.
type NumericFor struct {
	Name               string
	Start, Limit, Step NodeID
	Body               []NodeID
}

// GenericFor is a for-in loop.
type GenericFor struct {
	Names []string
	Exprs []NodeID
	Body  []NodeID
}

// Do is an explicit do/end block.
type Do struct{ Body []NodeID }

// Break is a break statement.
type Break struct{}

// Label is a ::label:: statement.
type Label struct{ Name string }

// Goto is a goto statement.
type Goto struct{ Label string }

func (*Chunk) node()        {}
func (*Function) node()     {}
func (*Return) node()       {}
func (*Assign) node()       {}
func (*LocalAssign) node()  {}
func (*BinaryOp) node()     {}
func (*LogicalOp) node()    {}
func (*RelationalOp) node() {}
func (*Concat) node()       {}
func (*UnaryOp) node()      {}
func (*Number) node()       {}
func (*String) node()       {}
func (*Bool) node()         {}
func (*Nil) node()          {}
func (*Vararg) node()       {}
func (*Name) node()         {}
func (*Index) node()        {}
func (*Call) node()         {}
func (*MethodCall) node()   {}
func (*Table) node()        {}
func (*Field) node()        {}
func (*If) node()           {}
func (*ElseIf) node()       {}
func (*While) node()        {}
func (*Repeat) node()       {}
func (*NumericFor) node()   {}
func (*GenericFor) node()   {}
func (*Do) node()           {}
func (*Break) node()        {}
func (*Label) node()        {}
func (*Goto) node()         {}

// Children returns n's child IDs in source order. Absent references (None)
// are included so callers see the variant's full shape; Walk skips them.
func Children(n Node) []NodeID {
	switch v := n.(type) {
	case *Chunk:
		return v.Body
	case *Function:
		return concat(v.Params, v.Body)
	case *Return:
		return v.Values
	case *Assign:
		return concat(v.Targets, v.Values)
	case *LocalAssign:
		return concat(v.Targets, v.Values)
	case *BinaryOp:
		return []NodeID{v.Left, v.Right}
	case *LogicalOp:
		return []NodeID{v.Left, v.Right}
	case *RelationalOp:
		return []NodeID{v.Left, v.Right}
	case *Concat:
		return []NodeID{v.Left, v.Right}
	case *UnaryOp:
		return []NodeID{v.Operand}
	case *Index:
		return []NodeID{v.Object, v.Key}
	case *Call:
		return concat([]NodeID{v.Func}, v.Args)
	case *MethodCall:
		return concat([]NodeID{v.Receiver}, v.Args)
	case *Table:
		return v.Fields
	case *Field:
		return []NodeID{v.Key, v.Value}
	case *If:
		return concat([]NodeID{v.Cond}, v.Then, v.Else)
	case *ElseIf:
		return concat([]NodeID{v.Cond}, v.Then, v.Else)
	case *While:
		return concat([]NodeID{v.Cond}, v.Body)
	case *Repeat:
		return concat(v.Body, []NodeID{v.Cond})
	case *NumericFor:
		return concat([]NodeID{v.Start, v.Limit, v.Step}, v.Body)
	case *GenericFor:
		return concat(v.Exprs, v.Body)
	case *Do:
		return v.Body
	}
	return nil
}

func concat(lists ...[]NodeID) []NodeID {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	out := make([]NodeID, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// Tree is an arena of nodes with parent back-references. The parent link is
// non-owning and is consulted only for line resolution.
type Tree struct {
	nodes   []Node
	parents []NodeID
	lines   []int32
}

// New returns an empty tree.
func New() *Tree { return &Tree{} }

// Add appends n with the given parent and source line (0 = unknown) and
// returns its ID. The returned node value stays addressable through Node,
// so builders may fill child lists after adding.
func (t *Tree) Add(parent NodeID, line int, n Node) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	t.parents = append(t.parents, parent)
	t.lines = append(t.lines, int32(line))
	return id
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the ID of the root node, or None for an empty tree.
func (t *Tree) Root() NodeID {
	if len(t.nodes) == 0 {
		return None
	}
	return 0
}

// Node returns the node stored at id.
func (t *Tree) Node(id NodeID) Node { return t.nodes[id] }

// Parent returns the enclosing node of id, or None at the root.
func (t *Tree) Parent(id NodeID) NodeID { return t.parents[id] }

// Line resolves the source line of id. A node without its own line borrows
// the nearest ancestor's; ok is false when no ancestor carries one.
func (t *Tree) Line(id NodeID) (int, bool) {
	for cur := id; cur != None; cur = t.parents[cur] {
		if l := t.lines[cur]; l > 0 {
			return int(l), true
		}
	}
	return 0, false
}

// Walk yields from and every descendant exactly once in pre-order. The
// sequence is restartable: each range starts a fresh traversal.
func (t *Tree) Walk(from NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		if from == None || int(from) >= len(t.nodes) {
			return
		}
		stack := []NodeID{from}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(id) {
				return
			}
			kids := Children(t.nodes[id])
			for i := len(kids) - 1; i >= 0; i-- {
				if kids[i] != None {
					stack = append(stack, kids[i])
				}
			}
		}
	}
}
