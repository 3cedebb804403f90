package compiler

// symbol identifies a terminal or nonterminal of the table-driven parser's
// grammar. Terminals come first; symError stands for any token the grammar
// has no terminal for.
type symbol int

const (
	symError symbol = iota

	tInt
	tFloat
	tChar
	tVoid
	tIf
	tElse
	tWhile
	tFor
	tReturn
	tIdent
	tNumber
	tString
	tPlus
	tMinus
	tStar
	tSlash
	tPercent
	tAssign
	tEq
	tNeq
	tLt
	tLte
	tGt
	tGte
	tBang
	tLParen
	tRParen
	tLBrace
	tRBrace
	tSemi
	tComma
	tEOF

	ntStart
	ntProgram
	ntFunctionList
	ntFunction
	ntReturnType
	ntParamList
	ntParamDecls
	ntParamDecl
	ntVarType
	ntBlock
	ntStmtList
	ntStatement
	ntVarDecl
	ntVoidDecl
	ntIfStmt
	ntWhileStmt
	ntForStmt
	ntForInit
	ntOptExpr
	ntReturnStmt
	ntExprStmt
	ntExpression
	ntAssignment
	ntEquality
	ntComparison
	ntTerm
	ntFactor
	ntUnary
	ntCall
	ntArgList
	ntPrimary

	symbolCount
)

func (s symbol) terminal() bool {
	return s >= tInt && s <= tEOF
}

var symbolNames = [...]string{
	symError:       "error",
	tInt:           "'int'",
	tFloat:         "'float'",
	tChar:          "'char'",
	tVoid:          "'void'",
	tIf:            "'if'",
	tElse:          "'else'",
	tWhile:         "'while'",
	tFor:           "'for'",
	tReturn:        "'return'",
	tIdent:         "IDENTIFIER",
	tNumber:        "NUMBER",
	tString:        "STRING",
	tPlus:          "'+'",
	tMinus:         "'-'",
	tStar:          "'*'",
	tSlash:         "'/'",
	tPercent:       "'%'",
	tAssign:        "'='",
	tEq:            "'=='",
	tNeq:           "'!='",
	tLt:            "'<'",
	tLte:           "'<='",
	tGt:            "'>'",
	tGte:           "'>='",
	tBang:          "'!'",
	tLParen:        "'('",
	tRParen:        "')'",
	tLBrace:        "'{'",
	tRBrace:        "'}'",
	tSemi:          "';'",
	tComma:         "','",
	tEOF:           "EOF",
	ntStart:        "start",
	ntProgram:      "program",
	ntFunctionList: "functionList",
	ntFunction:     "function",
	ntReturnType:   "returnType",
	ntParamList:    "paramList",
	ntParamDecls:   "paramDecls",
	ntParamDecl:    "paramDecl",
	ntVarType:      "varType",
	ntBlock:        "block",
	ntStmtList:     "stmtList",
	ntStatement:    "statement",
	ntVarDecl:      "varDecl",
	ntVoidDecl:     "voidDecl",
	ntIfStmt:       "ifStmt",
	ntWhileStmt:    "whileStmt",
	ntForStmt:      "forStmt",
	ntForInit:      "forInit",
	ntOptExpr:      "optExpr",
	ntReturnStmt:   "returnStmt",
	ntExprStmt:     "exprStmt",
	ntExpression:   "expression",
	ntAssignment:   "assignment",
	ntEquality:     "equality",
	ntComparison:   "comparison",
	ntTerm:         "term",
	ntFactor:       "factor",
	ntUnary:        "unary",
	ntCall:         "call",
	ntArgList:      "argList",
	ntPrimary:      "primary",
}

func (s symbol) String() string {
	if int(s) >= 0 && int(s) < len(symbolNames) {
		return symbolNames[s]
	}
	return "symbol(?)"
}

// tokenToSymbol maps a token to its grammar terminal by kind and, for the
// coarse kinds, exact lexeme.
func tokenToSymbol(t Token) symbol {
	switch t.Type {
	case IDENTIFIER:
		return tIdent
	case NUMBER:
		return tNumber
	case STRING:
		return tString
	case EOF:
		return tEOF
	case KEYWORD:
		switch t.Lexeme {
		case "int":
			return tInt
		case "float":
			return tFloat
		case "char":
			return tChar
		case "void":
			return tVoid
		case "if":
			return tIf
		case "else":
			return tElse
		case "while":
			return tWhile
		case "for":
			return tFor
		case "return":
			return tReturn
		}
	case OPERATOR:
		switch t.Lexeme {
		case "+":
			return tPlus
		case "-":
			return tMinus
		case "*":
			return tStar
		case "/":
			return tSlash
		case "%":
			return tPercent
		case "=":
			return tAssign
		case "==":
			return tEq
		case "!=":
			return tNeq
		case "<":
			return tLt
		case "<=":
			return tLte
		case ">":
			return tGt
		case ">=":
			return tGte
		case "!":
			return tBang
		}
	case PUNCTUATION:
		switch t.Lexeme {
		case "(":
			return tLParen
		case ")":
			return tRParen
		case "{":
			return tLBrace
		case "}":
			return tRBrace
		case ";":
			return tSemi
		case ",":
			return tComma
		}
	}
	return symError
}

// value is one value-stack payload: the token behind a shifted terminal,
// or whatever a reduction synthesized (a tree node, or the bare text of a
// type keyword).
type value struct {
	tok  Token
	node *Node
	text string
}

// rule is one production. action builds the rule's value from the frames
// popped for its right-hand side, leftmost first.
type rule struct {
	lhs    symbol
	rhs    []symbol
	action func(p *slrParser, v []value) value
}

func passValue(p *slrParser, v []value) value { return v[0] }

func emptyValue(p *slrParser, v []value) value { return value{} }

func keywordText(p *slrParser, v []value) value { return value{text: v[0].tok.Lexeme} }

func binaryOp(p *slrParser, v []value) value {
	return value{node: NewBinaryOp(v[1].tok.Lexeme, v[0].node, v[2].node)}
}

func unaryOp(p *slrParser, v []value) value {
	return value{node: NewUnaryOp(v[0].tok.Lexeme, v[1].node)}
}

// callValue builds a call node when the callee is a plain name; any other
// callee records the error and yields no node, dropping the call subtree.
func callValue(p *slrParser, callee, args *Node) value {
	if callee != nil && callee.Kind == NODE_IDENTIFIER {
		return value{node: NewCall(callee.Value, args)}
	}
	p.error("Expected function name")
	return value{}
}

// grammar lists every production; index 0 is the augmented start rule. The
// order is load-bearing: reduce entries in the parse table address rules
// by index. The expression rules mirror the recursive-descent precedence
// ladder, so both parsers build identical trees for accepted input. The
// one deliberate difference: parameter lists here are structured "type
// name" pairs rather than an arbitrary skipped span (the result, an empty
// params block, is the same).
var grammar = []rule{
	{ntStart, []symbol{ntProgram}, passValue},

	{ntProgram, []symbol{ntFunctionList}, passValue},
	// Empty input is a valid, empty program.
	{ntProgram, []symbol{}, func(p *slrParser, v []value) value {
		return value{node: NewProgram()}
	}},
	{ntFunctionList, []symbol{ntFunction}, func(p *slrParser, v []value) value {
		program := NewProgram()
		program.AddChild(v[0].node)
		return value{node: program}
	}},
	{ntFunctionList, []symbol{ntFunctionList, ntFunction}, func(p *slrParser, v []value) value {
		v[0].node.AddChild(v[1].node)
		return v[0]
	}},

	{ntFunction, []symbol{ntReturnType, tIdent, tLParen, ntParamList, tRParen, ntBlock}, func(p *slrParser, v []value) value {
		params := NewBlock()
		params.Value = "params"
		return value{node: NewFunction(v[1].tok.Lexeme, params, v[5].node)}
	}},
	{ntReturnType, []symbol{tInt}, keywordText},
	{ntReturnType, []symbol{tVoid}, keywordText},
	{ntReturnType, []symbol{tFloat}, keywordText},
	{ntReturnType, []symbol{tChar}, keywordText},

	// Parameters are recognized but deliberately not bound to anything.
	{ntParamList, []symbol{}, emptyValue},
	{ntParamList, []symbol{ntParamDecls}, emptyValue},
	{ntParamDecls, []symbol{ntParamDecl}, emptyValue},
	{ntParamDecls, []symbol{ntParamDecls, tComma, ntParamDecl}, emptyValue},
	{ntParamDecl, []symbol{ntVarType, tIdent}, emptyValue},

	{ntVarType, []symbol{tInt}, keywordText},
	{ntVarType, []symbol{tFloat}, keywordText},
	{ntVarType, []symbol{tChar}, keywordText},

	{ntBlock, []symbol{tLBrace, ntStmtList, tRBrace}, func(p *slrParser, v []value) value {
		return v[1]
	}},
	{ntStmtList, []symbol{}, func(p *slrParser, v []value) value {
		return value{node: NewBlock()}
	}},
	{ntStmtList, []symbol{ntStmtList, ntStatement}, func(p *slrParser, v []value) value {
		v[0].node.AddChild(v[1].node)
		return v[0]
	}},

	{ntStatement, []symbol{ntVarDecl}, passValue},
	{ntStatement, []symbol{ntVoidDecl}, passValue},
	{ntStatement, []symbol{ntIfStmt}, passValue},
	{ntStatement, []symbol{ntWhileStmt}, passValue},
	{ntStatement, []symbol{ntForStmt}, passValue},
	{ntStatement, []symbol{ntReturnStmt}, passValue},
	{ntStatement, []symbol{ntBlock}, passValue},
	{ntStatement, []symbol{ntExprStmt}, passValue},

	{ntVarDecl, []symbol{ntVarType, tIdent, tSemi}, func(p *slrParser, v []value) value {
		return value{node: NewVarDecl(v[0].text, v[1].tok.Lexeme, nil)}
	}},
	{ntVarDecl, []symbol{ntVarType, tIdent, tAssign, ntExpression, tSemi}, func(p *slrParser, v []value) value {
		return value{node: NewVarDecl(v[0].text, v[1].tok.Lexeme, v[3].node)}
	}},

	// 'void' declares only at statement level: varType also feeds the for
	// initializer and parameter rules, where void is not legal.
	{ntVoidDecl, []symbol{tVoid, tIdent, tSemi}, func(p *slrParser, v []value) value {
		return value{node: NewVarDecl(v[0].tok.Lexeme, v[1].tok.Lexeme, nil)}
	}},
	{ntVoidDecl, []symbol{tVoid, tIdent, tAssign, ntExpression, tSemi}, func(p *slrParser, v []value) value {
		return value{node: NewVarDecl(v[0].tok.Lexeme, v[1].tok.Lexeme, v[3].node)}
	}},

	{ntIfStmt, []symbol{tIf, tLParen, ntExpression, tRParen, ntStatement}, func(p *slrParser, v []value) value {
		return value{node: NewIf(v[2].node, v[4].node, nil)}
	}},
	{ntIfStmt, []symbol{tIf, tLParen, ntExpression, tRParen, ntStatement, tElse, ntStatement}, func(p *slrParser, v []value) value {
		return value{node: NewIf(v[2].node, v[4].node, v[6].node)}
	}},
	{ntWhileStmt, []symbol{tWhile, tLParen, ntExpression, tRParen, ntStatement}, func(p *slrParser, v []value) value {
		return value{node: NewWhile(v[2].node, v[4].node)}
	}},
	{ntForStmt, []symbol{tFor, tLParen, ntForInit, ntOptExpr, tSemi, ntOptExpr, tRParen, ntStatement}, func(p *slrParser, v []value) value {
		return value{node: NewFor(v[2].node, v[3].node, v[5].node, v[7].node)}
	}},
	{ntForInit, []symbol{tSemi}, emptyValue},
	{ntForInit, []symbol{ntVarDecl}, passValue},
	{ntForInit, []symbol{ntExpression, tSemi}, passValue},
	{ntOptExpr, []symbol{}, emptyValue},
	{ntOptExpr, []symbol{ntExpression}, passValue},

	{ntReturnStmt, []symbol{tReturn, tSemi}, func(p *slrParser, v []value) value {
		return value{node: NewReturn(nil)}
	}},
	{ntReturnStmt, []symbol{tReturn, ntExpression, tSemi}, func(p *slrParser, v []value) value {
		return value{node: NewReturn(v[1].node)}
	}},
	{ntExprStmt, []symbol{ntExpression, tSemi}, passValue},

	{ntExpression, []symbol{ntAssignment}, passValue},
	{ntAssignment, []symbol{ntEquality}, passValue},
	{ntAssignment, []symbol{ntEquality, tAssign, ntAssignment}, func(p *slrParser, v []value) value {
		left := v[0].node
		if left != nil && left.Kind == NODE_IDENTIFIER {
			return value{node: NewAssignment(left.Value, v[2].node)}
		}
		p.error("Invalid assignment target")
		return v[0]
	}},

	{ntEquality, []symbol{ntComparison}, passValue},
	{ntEquality, []symbol{ntEquality, tEq, ntComparison}, binaryOp},
	{ntEquality, []symbol{ntEquality, tNeq, ntComparison}, binaryOp},

	{ntComparison, []symbol{ntTerm}, passValue},
	{ntComparison, []symbol{ntComparison, tLt, ntTerm}, binaryOp},
	{ntComparison, []symbol{ntComparison, tLte, ntTerm}, binaryOp},
	{ntComparison, []symbol{ntComparison, tGt, ntTerm}, binaryOp},
	{ntComparison, []symbol{ntComparison, tGte, ntTerm}, binaryOp},

	{ntTerm, []symbol{ntFactor}, passValue},
	{ntTerm, []symbol{ntTerm, tPlus, ntFactor}, binaryOp},
	{ntTerm, []symbol{ntTerm, tMinus, ntFactor}, binaryOp},

	{ntFactor, []symbol{ntUnary}, passValue},
	{ntFactor, []symbol{ntFactor, tStar, ntUnary}, binaryOp},
	{ntFactor, []symbol{ntFactor, tSlash, ntUnary}, binaryOp},
	{ntFactor, []symbol{ntFactor, tPercent, ntUnary}, binaryOp},

	{ntUnary, []symbol{ntCall}, passValue},
	{ntUnary, []symbol{tBang, ntUnary}, unaryOp},
	{ntUnary, []symbol{tMinus, ntUnary}, unaryOp},

	{ntCall, []symbol{ntPrimary}, passValue},
	// The callee is any primary; whether it names a function is decided in
	// the reduction, the same check the descent parser applies.
	{ntCall, []symbol{ntPrimary, tLParen, tRParen}, func(p *slrParser, v []value) value {
		return callValue(p, v[0].node, nil)
	}},
	{ntCall, []symbol{ntPrimary, tLParen, ntArgList, tRParen}, func(p *slrParser, v []value) value {
		return callValue(p, v[0].node, v[2].node)
	}},
	{ntArgList, []symbol{ntExpression}, func(p *slrParser, v []value) value {
		args := NewBlock()
		args.Value = "args"
		args.AddChild(v[0].node)
		return value{node: args}
	}},
	{ntArgList, []symbol{ntArgList, tComma, ntExpression}, func(p *slrParser, v []value) value {
		v[0].node.AddChild(v[2].node)
		return v[0]
	}},

	{ntPrimary, []symbol{tNumber}, func(p *slrParser, v []value) value {
		return value{node: NewNumber(v[0].tok.Lexeme)}
	}},
	{ntPrimary, []symbol{tString}, func(p *slrParser, v []value) value {
		return value{node: NewString(v[0].tok.Lexeme)}
	}},
	{ntPrimary, []symbol{tIdent}, func(p *slrParser, v []value) value {
		return value{node: NewIdentifier(v[0].tok.Lexeme)}
	}},
	{ntPrimary, []symbol{tLParen, ntExpression, tRParen}, func(p *slrParser, v []value) value {
		return v[1]
	}},
}
