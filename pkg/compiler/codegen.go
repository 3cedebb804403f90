package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// Code bundles the three listings lowered from one tree: three-address
// code, stack-machine code, and the register-style target form derived
// from the stack listing.
type Code struct {
	TAC    string
	Stack  string
	Target string
}

// CodeGen holds the state of one lowering run. The temp and label counters
// are shared by the TAC and stack passes and never reset mid-run, so a
// label number appears at most once across both listings.
type CodeGen struct {
	tac   strings.Builder
	stack strings.Builder

	nextTemp  int
	nextLabel int
}

func newCodeGen() *CodeGen {
	return &CodeGen{}
}

func (cg *CodeGen) newTemp() string {
	t := fmt.Sprintf("t%d", cg.nextTemp)
	cg.nextTemp++
	return t
}

func (cg *CodeGen) newLabel() string {
	l := fmt.Sprintf("L%d", cg.nextLabel)
	cg.nextLabel++
	return l
}

func (cg *CodeGen) tacLine(format string, args ...any) {
	fmt.Fprintf(&cg.tac, format+"\n", args...)
}

func (cg *CodeGen) stackLine(format string, args ...any) {
	fmt.Fprintf(&cg.stack, format+"\n", args...)
}

// Generate lowers a parse tree into all three code forms. It fails only
// when root is missing or is not a program root. Inside the tree, children
// a best-effort parse left empty are skipped rather than trapped on, so a
// partial tree still lowers to partial code.
func Generate(root *Node) (*Code, error) {
	if root == nil || root.Kind != NODE_PROGRAM {
		return nil, errors.New("codegen: tree has no program root")
	}
	cg := newCodeGen()
	for _, fn := range root.Children {
		cg.genFunctionTAC(fn)
	}
	for _, fn := range root.Children {
		cg.genFunctionStack(fn)
	}
	stack := cg.stack.String()
	return &Code{
		TAC:    cg.tac.String(),
		Stack:  stack,
		Target: translateTarget(stack),
	}, nil
}

func (cg *CodeGen) genFunctionTAC(fn *Node) {
	if fn == nil || fn.Kind != NODE_FUNCTION_DECL {
		return
	}
	cg.tacLine("function %s:", fn.Value)
	cg.genStmtTAC(fn.Child(1))
	cg.tacLine("end function")
	cg.tacLine("")
}

func (cg *CodeGen) genStmtTAC(node *Node) {
	if node == nil {
		return
	}
	switch node.Kind {
	case NODE_BLOCK:
		for _, child := range node.Children {
			cg.genStmtTAC(child)
		}

	case NODE_VARIABLE_DECL:
		if init := node.Child(0); init != nil {
			value := cg.genExprTAC(init)
			cg.tacLine("%s = %s", node.Value, value)
		}

	case NODE_ASSIGNMENT:
		value := cg.genExprTAC(node.Child(0))
		cg.tacLine("%s = %s", node.Value, value)

	case NODE_IF:
		condition := cg.genExprTAC(node.Child(0))
		elseLabel := cg.newLabel()
		endLabel := cg.newLabel()
		cg.tacLine("if %s == 0 goto %s", condition, elseLabel)
		cg.genStmtTAC(node.Child(1))
		cg.tacLine("goto %s", endLabel)
		cg.tacLine("%s:", elseLabel)
		cg.genStmtTAC(node.Child(2))
		cg.tacLine("%s:", endLabel)

	case NODE_WHILE:
		startLabel := cg.newLabel()
		endLabel := cg.newLabel()
		cg.tacLine("%s:", startLabel)
		condition := cg.genExprTAC(node.Child(0))
		cg.tacLine("if %s == 0 goto %s", condition, endLabel)
		cg.genStmtTAC(node.Child(1))
		cg.tacLine("goto %s", startLabel)
		cg.tacLine("%s:", endLabel)

	case NODE_FOR:
		startLabel := cg.newLabel()
		endLabel := cg.newLabel()
		updateLabel := cg.newLabel()
		cg.genStmtTAC(node.Child(0))
		cg.tacLine("%s:", startLabel)
		if condition := node.Child(1); condition != nil {
			value := cg.genExprTAC(condition)
			cg.tacLine("if %s == 0 goto %s", value, endLabel)
		}
		cg.genStmtTAC(node.Child(3))
		cg.tacLine("%s:", updateLabel)
		if update := node.Child(2); update != nil {
			// Evaluated for its side effects; the value goes nowhere.
			cg.genExprTAC(update)
		}
		cg.tacLine("goto %s", startLabel)
		cg.tacLine("%s:", endLabel)

	case NODE_RETURN:
		if value := node.Child(0); value != nil {
			cg.tacLine("return %s", cg.genExprTAC(value))
		} else {
			cg.tacLine("return")
		}

	case NODE_CALL:
		cg.genExprTAC(node)
	}
}

// genExprTAC lowers an expression and returns the name holding its value:
// a fresh temporary, or the literal/identifier text itself. Kinds with no
// expression lowering come back as the placeholder name "error".
func (cg *CodeGen) genExprTAC(node *Node) string {
	if node == nil {
		return ""
	}
	switch node.Kind {
	case NODE_NUMBER, NODE_IDENTIFIER:
		return node.Value

	case NODE_BINARY_OP:
		left := cg.genExprTAC(node.Child(0))
		right := cg.genExprTAC(node.Child(1))
		temp := cg.newTemp()
		cg.tacLine("%s = %s %s %s", temp, left, node.Value, right)
		return temp

	case NODE_UNARY_OP:
		operand := cg.genExprTAC(node.Child(0))
		temp := cg.newTemp()
		cg.tacLine("%s = %s %s", temp, node.Value, operand)
		return temp

	case NODE_ASSIGNMENT:
		// An assignment used as an expression, such as a for-loop update,
		// still stores; its value is the assigned name.
		value := cg.genExprTAC(node.Child(0))
		cg.tacLine("%s = %s", node.Value, value)
		return node.Value

	case NODE_CALL:
		// All argument code is emitted before the first param line.
		var args []string
		if argsNode := node.Child(0); argsNode != nil && argsNode.Kind == NODE_BLOCK {
			for _, arg := range argsNode.Children {
				args = append(args, cg.genExprTAC(arg))
			}
		}
		for _, a := range args {
			cg.tacLine("param %s", a)
		}
		temp := cg.newTemp()
		cg.tacLine("%s = call %s, %d", temp, node.Value, len(args))
		return temp

	default:
		return "error"
	}
}

// stackBinaryOps maps a binary operator to its stack-machine mnemonic.
var stackBinaryOps = map[string]string{
	"+":  "ADD",
	"-":  "SUB",
	"*":  "MUL",
	"/":  "DIV",
	"%":  "MOD",
	"==": "EQ",
	"!=": "NEQ",
	"<":  "LT",
	"<=": "LTE",
	">":  "GT",
	">=": "GTE",
}

func (cg *CodeGen) genFunctionStack(fn *Node) {
	if fn == nil || fn.Kind != NODE_FUNCTION_DECL {
		return
	}
	cg.stackLine("FUNC %s", fn.Value)
	cg.genStmtStack(fn.Child(1))
	cg.stackLine("END_FUNC")
	cg.stackLine("")
}

func (cg *CodeGen) genStmtStack(node *Node) {
	if node == nil {
		return
	}
	switch node.Kind {
	case NODE_BLOCK:
		for _, child := range node.Children {
			cg.genStmtStack(child)
		}

	case NODE_VARIABLE_DECL:
		if init := node.Child(0); init != nil {
			cg.genExprStack(init)
			cg.stackLine("STORE %s", node.Value)
		}

	case NODE_ASSIGNMENT:
		cg.genExprStack(node.Child(0))
		cg.stackLine("STORE %s", node.Value)

	case NODE_IF:
		elseLabel := cg.newLabel()
		endLabel := cg.newLabel()
		cg.genExprStack(node.Child(0))
		cg.stackLine("JZ %s", elseLabel)
		cg.genStmtStack(node.Child(1))
		cg.stackLine("JMP %s", endLabel)
		cg.stackLine("%s:", elseLabel)
		cg.genStmtStack(node.Child(2))
		cg.stackLine("%s:", endLabel)

	case NODE_WHILE:
		startLabel := cg.newLabel()
		endLabel := cg.newLabel()
		cg.stackLine("%s:", startLabel)
		cg.genExprStack(node.Child(0))
		cg.stackLine("JZ %s", endLabel)
		cg.genStmtStack(node.Child(1))
		cg.stackLine("JMP %s", startLabel)
		cg.stackLine("%s:", endLabel)

	case NODE_FOR:
		startLabel := cg.newLabel()
		endLabel := cg.newLabel()
		updateLabel := cg.newLabel()
		cg.genStmtStack(node.Child(0))
		cg.stackLine("%s:", startLabel)
		if condition := node.Child(1); condition != nil {
			cg.genExprStack(condition)
			cg.stackLine("JZ %s", endLabel)
		}
		cg.genStmtStack(node.Child(3))
		cg.stackLine("%s:", updateLabel)
		if update := node.Child(2); update != nil {
			cg.genExprStack(update)
			// The machine cannot discard in place.
			cg.stackLine("POP")
		}
		cg.stackLine("JMP %s", startLabel)
		cg.stackLine("%s:", endLabel)

	case NODE_RETURN:
		if value := node.Child(0); value != nil {
			cg.genExprStack(value)
			cg.stackLine("RET")
		} else {
			cg.stackLine("RET0")
		}

	case NODE_CALL:
		cg.genExprStack(node)
		cg.stackLine("POP")
	}
}

func (cg *CodeGen) genExprStack(node *Node) {
	if node == nil {
		return
	}
	switch node.Kind {
	case NODE_NUMBER:
		cg.stackLine("PUSH %s", node.Value)

	case NODE_IDENTIFIER:
		cg.stackLine("LOAD %s", node.Value)

	case NODE_BINARY_OP:
		cg.genExprStack(node.Child(0))
		cg.genExprStack(node.Child(1))
		if op, ok := stackBinaryOps[node.Value]; ok {
			cg.stackLine("%s", op)
		}

	case NODE_UNARY_OP:
		cg.genExprStack(node.Child(0))
		switch node.Value {
		case "-":
			cg.stackLine("NEG")
		case "!":
			cg.stackLine("NOT")
		}

	case NODE_CALL:
		// Arguments go on the stack right-to-left, the reverse of the TAC
		// pass's param order.
		if argsNode := node.Child(0); argsNode != nil && argsNode.Kind == NODE_BLOCK {
			for i := len(argsNode.Children) - 1; i >= 0; i-- {
				cg.genExprStack(argsNode.Children[i])
			}
		}
		cg.stackLine("CALL %s", node.Value)
	}
}
