package compiler

import "fmt"

// NodeKind tags a syntax tree node. The lowering passes switch on the tag
// and index Children positionally, so every construction site must respect
// the per-kind child layout documented on the constructors below.
type NodeKind int

const (
	NODE_PROGRAM NodeKind = iota
	NODE_FUNCTION_DECL
	NODE_BLOCK
	NODE_VARIABLE_DECL
	NODE_ASSIGNMENT
	NODE_BINARY_OP
	NODE_UNARY_OP
	NODE_IF
	NODE_WHILE
	NODE_FOR
	NODE_RETURN
	NODE_CALL
	NODE_IDENTIFIER
	NODE_NUMBER
	NODE_STRING
)

// nodeKindNames is indexed by NodeKind; the strings also name nodes in the
// serialized tree artifacts.
var nodeKindNames = [...]string{
	NODE_PROGRAM:       "PROGRAM",
	NODE_FUNCTION_DECL: "FUNCTION_DECL",
	NODE_BLOCK:         "BLOCK",
	NODE_VARIABLE_DECL: "VARIABLE_DECL",
	NODE_ASSIGNMENT:    "ASSIGNMENT",
	NODE_BINARY_OP:     "BINARY_OP",
	NODE_UNARY_OP:      "UNARY_OP",
	NODE_IF:            "IF",
	NODE_WHILE:         "WHILE",
	NODE_FOR:           "FOR",
	NODE_RETURN:        "RETURN",
	NODE_CALL:          "CALL",
	NODE_IDENTIFIER:    "IDENTIFIER",
	NODE_NUMBER:        "NUMBER",
	NODE_STRING:        "STRING",
}

func (k NodeKind) String() string {
	if int(k) >= 0 && int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Node is one vertex of the syntax tree. Value carries an operator symbol,
// an identifier or function name, literal text, or a combined "type name"
// string for declarations; it is empty for kinds that need no payload.
//
// A node has exactly one owner. Attaching it to a parent transfers
// ownership; the attaching code must not keep using its handle.
type Node struct {
	Kind     NodeKind
	Value    string
	Children []*Node
}

// NewNode builds a bare node. Prefer the typed constructors below, which
// enforce the per-kind child layout.
func NewNode(kind NodeKind, value string) *Node {
	return &Node{Kind: kind, Value: value}
}

// AddChild appends child, taking ownership. A nil child is ignored.
func (n *Node) AddChild(child *Node) {
	if n == nil || child == nil {
		return
	}
	n.Children = append(n.Children, child)
}

// Child returns Children[i], or nil when the slot is empty or out of range.
// Lowering uses it so that half-built trees never cause a panic.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Value != "" {
		return fmt.Sprintf("%s(%s)", n.Kind, n.Value)
	}
	return n.Kind.String()
}

// NewProgram builds the tree root; functions are attached in source order.
func NewProgram() *Node {
	return NewNode(NODE_PROGRAM, "")
}

// NewFunction builds a function declaration.
//
//	int main() { ... }
//	    ^^^^    Value
//	children: [0] params block, [1] body block
func NewFunction(name string, params, body *Node) *Node {
	n := NewNode(NODE_FUNCTION_DECL, name)
	n.AddChild(params)
	n.AddChild(body)
	return n
}

// NewBlock builds an empty statement sequence. The parameter and argument
// lists reuse this kind with Value "params" / "args".
func NewBlock() *Node {
	return NewNode(NODE_BLOCK, "")
}

// NewVarDecl builds a declaration. Value combines the type keyword and the
// declared name into one "type name" string.
//
//	int x = 10;
//	^^^^^   Value "int x"
//	        ^^  children[0] (only when an initializer is present)
func NewVarDecl(typ, name string, init *Node) *Node {
	n := NewNode(NODE_VARIABLE_DECL, fmt.Sprintf("%s %s", typ, name))
	n.AddChild(init)
	return n
}

// NewAssignment builds name = value; children: [0] value.
func NewAssignment(name string, value *Node) *Node {
	n := NewNode(NODE_ASSIGNMENT, name)
	n.AddChild(value)
	return n
}

// NewBinaryOp builds left op right; children: [0] left, [1] right.
func NewBinaryOp(op string, left, right *Node) *Node {
	n := NewNode(NODE_BINARY_OP, op)
	n.AddChild(left)
	n.AddChild(right)
	return n
}

// NewUnaryOp builds op operand; children: [0] operand.
func NewUnaryOp(op string, operand *Node) *Node {
	n := NewNode(NODE_UNARY_OP, op)
	n.AddChild(operand)
	return n
}

// NewIf builds a conditional; children: [0] condition, [1] then-branch,
// [2] else-branch. The else slot is absent, not nil, when there is no else.
func NewIf(condition, thenBranch, elseBranch *Node) *Node {
	n := NewNode(NODE_IF, "")
	n.AddChild(condition)
	n.AddChild(thenBranch)
	n.AddChild(elseBranch)
	return n
}

// NewWhile builds a loop; children: [0] condition, [1] body.
func NewWhile(condition, body *Node) *Node {
	n := NewNode(NODE_WHILE, "")
	n.AddChild(condition)
	n.AddChild(body)
	return n
}

// NewFor builds a C-style for loop. Unlike the other constructors it keeps
// all four slots, nil where a clause was omitted, because the lowering
// passes address init/condition/update/body by fixed position.
func NewFor(init, condition, update, body *Node) *Node {
	n := NewNode(NODE_FOR, "")
	n.Children = []*Node{init, condition, update, body}
	return n
}

// NewReturn builds a return statement; children: [0] value, if any.
func NewReturn(value *Node) *Node {
	n := NewNode(NODE_RETURN, "")
	n.AddChild(value)
	return n
}

// NewCall builds a function call.
//
//	foo(1, x)
//	^^^      Value
//	    ^^^^ children[0]: a Block(Value "args"), absent when no arguments
func NewCall(name string, args *Node) *Node {
	n := NewNode(NODE_CALL, name)
	n.AddChild(args)
	return n
}

// NewIdentifier builds a variable reference leaf.
func NewIdentifier(name string) *Node {
	return NewNode(NODE_IDENTIFIER, name)
}

// NewNumber builds a numeric literal leaf; Value keeps the source text.
func NewNumber(value string) *Node {
	return NewNode(NODE_NUMBER, value)
}

// NewString builds a string literal leaf; Value is the text between the
// quotes, exactly as lexed.
func NewString(value string) *Node {
	return NewNode(NODE_STRING, value)
}
