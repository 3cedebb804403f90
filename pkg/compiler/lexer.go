package compiler

import "strings"

// keywords holds every reserved word. The lexer classifies them all as
// KEYWORD; the parsers tell them apart by lexeme, so words the grammar
// never uses (struct, switch, ...) still lex cleanly.
var keywords = map[string]bool{
	"if":       true,
	"else":     true,
	"while":    true,
	"for":      true,
	"return":   true,
	"int":      true,
	"float":    true,
	"char":     true,
	"void":     true,
	"struct":   true,
	"break":    true,
	"continue": true,
	"switch":   true,
	"case":     true,
	"default":  true,
	"do":       true,
	"const":    true,
	"static":   true,
}

// twoCharOperators is checked before the single-character set so that
// "==" never lexes as two "=" tokens.
var twoCharOperators = map[string]bool{
	"++": true,
	"--": true,
	"==": true,
	"!=": true,
	"<=": true,
	">=": true,
	"&&": true,
	"||": true,
	"+=": true,
	"-=": true,
	"*=": true,
	"/=": true,
}

const singleCharOperators = "+-*/%=<>!&|^~"

const punctuationChars = "(){}[];,.:?"

type Lexer struct {
	src    []rune
	pos    int
	line   int
	column int
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, column: 1}
}

// Lex scans src into a token sequence. It cannot fail: characters it does
// not recognize become UNKNOWN tokens, and unterminated strings or block
// comments simply run to the end of the input. The last token is always
// EOF.
func Lex(src string) []Token {
	l := newLexer(src)
	var tokens []Token
	for {
		l.skipWhitespaceAndComments()
		if l.atEnd() {
			break
		}
		tokens = append(tokens, l.scanToken())
	}
	tokens = append(tokens, Token{Type: EOF, Lexeme: "", Line: l.line, Column: l.column})
	return tokens
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek() rune {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekNext() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *Lexer) advance() rune {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return c
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		c := l.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '/' && l.peekNext() == '/':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		case c == '/' && l.peekNext() == '*':
			l.advance()
			l.advance()
			for !l.atEnd() && !(l.peek() == '*' && l.peekNext() == '/') {
				l.advance()
			}
			if !l.atEnd() {
				l.advance()
				l.advance()
			}
		default:
			return
		}
	}
}

// scanToken reads one token. The caller has already skipped whitespace, so
// the current character starts the token and fixes its position.
func (l *Lexer) scanToken() Token {
	line, column := l.line, l.column
	c := l.peek()

	switch {
	case isAlpha(c):
		start := l.pos
		for !l.atEnd() && isAlphaNumeric(l.peek()) {
			l.advance()
		}
		lexeme := string(l.src[start:l.pos])
		tt := IDENTIFIER
		if keywords[lexeme] {
			tt = KEYWORD
		}
		return Token{Type: tt, Lexeme: lexeme, Line: line, Column: column}

	case isDigit(c):
		start := l.pos
		hasDot := false
		for !l.atEnd() && (isDigit(l.peek()) || (l.peek() == '.' && !hasDot)) {
			if l.peek() == '.' {
				hasDot = true
			}
			l.advance()
		}
		return Token{Type: NUMBER, Lexeme: string(l.src[start:l.pos]), Line: line, Column: column}

	case c == '"':
		return l.scanString(line, column)
	}

	if twoCharOperators[string(c)+string(l.peekNext())] {
		op := string(l.advance()) + string(l.advance())
		return Token{Type: OPERATOR, Lexeme: op, Line: line, Column: column}
	}
	if strings.ContainsRune(singleCharOperators, c) {
		l.advance()
		return Token{Type: OPERATOR, Lexeme: string(c), Line: line, Column: column}
	}
	if strings.ContainsRune(punctuationChars, c) {
		l.advance()
		return Token{Type: PUNCTUATION, Lexeme: string(c), Line: line, Column: column}
	}

	l.advance()
	return Token{Type: UNKNOWN, Lexeme: string(c), Line: line, Column: column}
}

// scanString reads a string literal. The token value is the raw text
// between the quotes: a backslash and the character after it are both kept,
// so an escaped quote stays a two-character sequence and no escape is
// decoded. A string the input never closes ends at EOF without complaint.
func (l *Lexer) scanString(line, column int) Token {
	l.advance()
	var value []rune
	for !l.atEnd() && l.peek() != '"' {
		if l.peek() == '\\' {
			value = append(value, l.advance())
			if l.atEnd() {
				break
			}
		}
		value = append(value, l.advance())
	}
	if !l.atEnd() {
		l.advance()
	}
	return Token{Type: STRING, Lexeme: string(value), Line: line, Column: column}
}

func isAlpha(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlphaNumeric(c rune) bool {
	return isAlpha(c) || isDigit(c)
}
