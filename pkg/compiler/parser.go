package compiler

import "errors"

// Parser holds recursive-descent state over the token stream.
//
// The cursor only moves forward. There is no backtracking and no panic
// unwinding: a rule that fails records the error, returns nil, and lets its
// caller carry on, so a single pass yields both a best-effort tree and the
// diagnostic. Only the most recent error message is kept.
//
// The grammar, one function per rule:
//
//	program     → functionDecl* EOF
//	functionDecl→ type IDENTIFIER "(" parameters ")" block
//	block       → "{" statement* "}"
//	statement   → ifStmt | whileStmt | forStmt | returnStmt
//	            | varDecl | block | exprStmt
//	varDecl     → type IDENTIFIER ( "=" expression )? ";"
//	ifStmt      → "if" "(" expression ")" statement ( "else" statement )?
//	whileStmt   → "while" "(" expression ")" statement
//	forStmt     → "for" "(" ( varDecl | expression? ";" )
//	              expression? ";" expression? ")" statement
//	returnStmt  → "return" expression? ";"
//	exprStmt    → expression ";"
//	expression  → assignment
//	assignment  → equality ( "=" assignment )?
//	equality    → comparison ( ( "==" | "!=" ) comparison )*
//	comparison  → term ( ( "<" | "<=" | ">" | ">=" ) term )*
//	term        → factor ( ( "+" | "-" ) factor )*
//	factor      → unary ( ( "*" | "/" | "%" ) unary )*
//	unary       → ( "!" | "-" ) unary | call
//	call        → primary ( "(" arguments? ")" )?
//	arguments   → expression ( "," expression )*
//	primary     → NUMBER | STRING | IDENTIFIER | "(" expression ")"
//
// Parameter lists are not analyzed: everything between the parentheses is
// skipped and an empty "params" block stands in for it.
type Parser struct {
	tokens []Token
	pos    int

	hadError bool
	errMsg   string
}

func newParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse builds a syntax tree from tokens. The returned tree is always
// non-nil: on a syntax error it holds whatever declarations could be
// salvaged and err carries the most recent message, so callers that need a
// trustworthy tree must treat any error as fatal.
func Parse(tokens []Token) (*Node, error) {
	p := newParser(tokens)
	program := p.parseProgram()
	if p.hadError {
		return program, errors.New(p.errMsg)
	}
	return program, nil
}

// error records a syntax error. Later errors overwrite the message; the
// flag, once set, stays set.
func (p *Parser) error(message string) {
	p.hadError = true
	p.errMsg = message
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) atEnd() bool {
	return p.peek().Type == EOF
}

// advance returns the current token and steps past it. At EOF it returns
// the EOF token and stays put, so the cursor never leaves the stream.
func (p *Parser) advance() Token {
	t := p.peek()
	if t.Type != EOF {
		p.pos++
	}
	return t
}

// check matches on type and exact lexeme; the coarse token categories make
// the lexeme part of every grammar decision.
func (p *Parser) check(tt TokenType, lexeme string) bool {
	t := p.peek()
	return t.Type == tt && t.Lexeme == lexeme
}

func (p *Parser) checkKeyword(kw string) bool  { return p.check(KEYWORD, kw) }
func (p *Parser) checkOperator(op string) bool { return p.check(OPERATOR, op) }
func (p *Parser) checkPunct(s string) bool     { return p.check(PUNCTUATION, s) }

func (p *Parser) match(tt TokenType, lexeme string) bool {
	if p.check(tt, lexeme) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchKeyword(kw string) bool  { return p.match(KEYWORD, kw) }
func (p *Parser) matchOperator(op string) bool { return p.match(OPERATOR, op) }
func (p *Parser) matchPunct(s string) bool     { return p.match(PUNCTUATION, s) }

func isTypeKeyword(lexeme string) bool {
	switch lexeme {
	case "int", "void", "float", "char":
		return true
	}
	return false
}

func (p *Parser) parseProgram() *Node {
	program := NewProgram()
	for !p.atEnd() {
		fn := p.parseFunction()
		if fn != nil {
			program.AddChild(fn)
		} else if p.hadError {
			// Skip to the next plausible function start.
			for !p.atEnd() && !(p.peek().Type == KEYWORD && isTypeKeyword(p.peek().Lexeme)) {
				p.advance()
			}
		}
	}
	return program
}

func (p *Parser) parseFunction() *Node {
	t := p.peek()
	if t.Type != KEYWORD || !isTypeKeyword(t.Lexeme) {
		p.error("Expected return type for function declaration")
		return nil
	}
	p.advance()

	if p.peek().Type != IDENTIFIER {
		p.error("Expected function name")
		return nil
	}
	name := p.advance().Lexeme

	if !p.matchPunct("(") {
		p.error("Expected '(' after function name")
		return nil
	}

	params := NewBlock()
	params.Value = "params"
	for !p.checkPunct(")") && !p.atEnd() {
		p.advance()
	}
	if p.atEnd() {
		p.error("Unterminated parameter list")
		return nil
	}
	if !p.matchPunct(")") {
		p.error("Expected ')' after parameters")
		return nil
	}

	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return NewFunction(name, params, body)
}

func (p *Parser) parseBlock() *Node {
	if !p.matchPunct("{") {
		p.error("Expected '{' before block")
		return nil
	}
	block := NewBlock()
	for !p.checkPunct("}") && !p.atEnd() {
		if stmt := p.parseStatement(); stmt != nil {
			block.AddChild(stmt)
		}
	}
	if p.atEnd() {
		p.error("Unterminated block")
		return nil
	}
	if !p.matchPunct("}") {
		p.error("Expected '}' after block")
	}
	return block
}

func (p *Parser) parseStatement() *Node {
	if p.peek().Type == KEYWORD {
		switch p.peek().Lexeme {
		case "if":
			p.advance()
			return p.parseIfStatement()
		case "while":
			p.advance()
			return p.parseWhileStatement()
		case "for":
			p.advance()
			return p.parseForStatement()
		case "return":
			p.advance()
			return p.parseReturnStatement()
		case "int", "void", "float", "char":
			return p.parseVarDecl()
		default:
			// A keyword with no statement form; step over it and try the
			// rest as an expression statement.
			p.advance()
			return p.parseExpressionStatement()
		}
	}
	if p.checkPunct("{") {
		return p.parseBlock()
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseVarDecl() *Node {
	t := p.peek()
	if t.Type != KEYWORD || !isTypeKeyword(t.Lexeme) {
		p.error("Expected type name")
		return nil
	}
	typ := p.advance().Lexeme

	if p.peek().Type != IDENTIFIER {
		p.error("Expected variable name")
		return nil
	}
	name := p.advance().Lexeme

	var init *Node
	if p.matchOperator("=") {
		init = p.parseExpression()
	}
	if !p.matchPunct(";") {
		p.error("Expected ';' after variable declaration")
		return nil
	}
	return NewVarDecl(typ, name, init)
}

func (p *Parser) parseIfStatement() *Node {
	if !p.matchPunct("(") {
		p.error("Expected '(' after 'if'")
		return nil
	}
	condition := p.parseExpression()
	if !p.matchPunct(")") {
		p.error("Expected ')' after if condition")
	}
	thenBranch := p.parseStatement()
	var elseBranch *Node
	if p.matchKeyword("else") {
		elseBranch = p.parseStatement()
	}
	return NewIf(condition, thenBranch, elseBranch)
}

func (p *Parser) parseWhileStatement() *Node {
	if !p.matchPunct("(") {
		p.error("Expected '(' after 'while'")
		return nil
	}
	condition := p.parseExpression()
	if !p.matchPunct(")") {
		p.error("Expected ')' after while condition")
	}
	body := p.parseStatement()
	return NewWhile(condition, body)
}

func (p *Parser) parseForStatement() *Node {
	if !p.matchPunct("(") {
		p.error("Expected '(' after 'for'")
		return nil
	}

	var init *Node
	switch {
	case p.matchPunct(";"):
		// no initializer
	// A for initializer never declares void.
	case p.checkKeyword("int") || p.checkKeyword("float") || p.checkKeyword("char"):
		init = p.parseVarDecl()
	default:
		init = p.parseExpression()
		if !p.matchPunct(";") {
			p.error("Expected ';' after for initializer")
		}
	}

	var condition *Node
	if !p.checkPunct(";") {
		condition = p.parseExpression()
	}
	if !p.matchPunct(";") {
		p.error("Expected ';' after for condition")
	}

	var update *Node
	if !p.checkPunct(")") {
		update = p.parseExpression()
	}
	if !p.matchPunct(")") {
		p.error("Expected ')' after for clauses")
	}

	body := p.parseStatement()
	return NewFor(init, condition, update, body)
}

func (p *Parser) parseReturnStatement() *Node {
	var value *Node
	if !p.checkPunct(";") {
		value = p.parseExpression()
	}
	if !p.matchPunct(";") {
		p.error("Expected ';' after return value")
		return nil
	}
	return NewReturn(value)
}

func (p *Parser) parseExpressionStatement() *Node {
	expr := p.parseExpression()
	if !p.matchPunct(";") {
		p.error("Expected ';' after expression")
		return nil
	}
	return expr
}

func (p *Parser) parseExpression() *Node {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() *Node {
	left := p.parseEquality()
	if p.matchOperator("=") {
		value := p.parseAssignment()
		if left != nil && left.Kind == NODE_IDENTIFIER {
			return NewAssignment(left.Value, value)
		}
		p.error("Invalid assignment target")
	}
	return left
}

func (p *Parser) parseEquality() *Node {
	left := p.parseComparison()
	for p.checkOperator("==") || p.checkOperator("!=") {
		op := p.advance().Lexeme
		right := p.parseComparison()
		left = NewBinaryOp(op, left, right)
	}
	return left
}

func (p *Parser) parseComparison() *Node {
	left := p.parseTerm()
	for p.checkOperator("<") || p.checkOperator("<=") || p.checkOperator(">") || p.checkOperator(">=") {
		op := p.advance().Lexeme
		right := p.parseTerm()
		left = NewBinaryOp(op, left, right)
	}
	return left
}

func (p *Parser) parseTerm() *Node {
	left := p.parseFactor()
	for p.checkOperator("+") || p.checkOperator("-") {
		op := p.advance().Lexeme
		right := p.parseFactor()
		left = NewBinaryOp(op, left, right)
	}
	return left
}

func (p *Parser) parseFactor() *Node {
	left := p.parseUnary()
	for p.checkOperator("*") || p.checkOperator("/") || p.checkOperator("%") {
		op := p.advance().Lexeme
		right := p.parseUnary()
		left = NewBinaryOp(op, left, right)
	}
	return left
}

func (p *Parser) parseUnary() *Node {
	if p.checkOperator("!") || p.checkOperator("-") {
		op := p.advance().Lexeme
		operand := p.parseUnary()
		return NewUnaryOp(op, operand)
	}
	return p.parseCall()
}

func (p *Parser) parseCall() *Node {
	expr := p.parsePrimary()
	if !p.matchPunct("(") {
		return expr
	}
	var args *Node
	if !p.checkPunct(")") {
		args = NewBlock()
		args.Value = "args"
		for {
			args.AddChild(p.parseExpression())
			if !p.matchPunct(",") {
				break
			}
		}
	}
	if !p.matchPunct(")") {
		p.error("Expected ')' after function arguments")
	}
	// Arguments are read through ')' before the callee is checked; a
	// callee that is not a plain name drops the whole call.
	if expr == nil || expr.Kind != NODE_IDENTIFIER {
		p.error("Expected function name")
		return nil
	}
	return NewCall(expr.Value, args)
}

func (p *Parser) parsePrimary() *Node {
	switch p.peek().Type {
	case NUMBER:
		return NewNumber(p.advance().Lexeme)
	case STRING:
		return NewString(p.advance().Lexeme)
	case IDENTIFIER:
		return NewIdentifier(p.advance().Lexeme)
	}
	if p.matchPunct("(") {
		expr := p.parseExpression()
		if !p.matchPunct(")") {
			p.error("Expected ')' after expression")
		}
		return expr
	}
	p.error("Expected expression")
	// Consume the offending token; the statement loops rely on forward
	// progress to terminate.
	p.advance()
	return nil
}
