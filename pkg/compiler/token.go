package compiler

import "fmt"

// TokenType identifies the category of a lexed token. The grammar
// distinguishes individual keywords, operators and punctuation by Lexeme,
// not by type, so the categories stay coarse.
type TokenType int

const (
	IDENTIFIER  TokenType = iota // variable / function name
	NUMBER                       // numeric literal, at most one decimal point
	STRING                       // string literal "..." (quotes stripped)
	KEYWORD                      // reserved word such as "int" or "while"
	OPERATOR                     // one- or two-character operator
	PUNCTUATION                  // single-character delimiter
	UNKNOWN                      // any character the lexer cannot classify
	EOF                          // sentinel: end of input, always last
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	IDENTIFIER:  "IDENTIFIER",
	NUMBER:      "NUMBER",
	STRING:      "STRING",
	KEYWORD:     "KEYWORD",
	OPERATOR:    "OPERATOR",
	PUNCTUATION: "PUNCTUATION",
	UNKNOWN:     "UNKNOWN",
	EOF:         "EOF",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit produced by Lex.
type Token struct {
	Type   TokenType
	Lexeme string // the exact source text that was matched
	Line   int    // 1-based source line of the first character
	Column int    // 1-based source column of the first character
}

func (t Token) String() string {
	return fmt.Sprintf("%-12s %-14q  %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}
