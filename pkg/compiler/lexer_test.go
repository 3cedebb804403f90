package compiler

import (
	"reflect"
	"testing"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "Empty",
			input: "",
			expected: []Token{
				{Type: EOF, Lexeme: "", Line: 1, Column: 1},
			},
		},
		{
			name:  "Operators",
			input: "+ - * == != <= >= && ||",
			expected: []Token{
				{Type: OPERATOR, Lexeme: "+", Line: 1, Column: 1},
				{Type: OPERATOR, Lexeme: "-", Line: 1, Column: 3},
				{Type: OPERATOR, Lexeme: "*", Line: 1, Column: 5},
				{Type: OPERATOR, Lexeme: "==", Line: 1, Column: 7},
				{Type: OPERATOR, Lexeme: "!=", Line: 1, Column: 10},
				{Type: OPERATOR, Lexeme: "<=", Line: 1, Column: 13},
				{Type: OPERATOR, Lexeme: ">=", Line: 1, Column: 16},
				{Type: OPERATOR, Lexeme: "&&", Line: 1, Column: 19},
				{Type: OPERATOR, Lexeme: "||", Line: 1, Column: 22},
				{Type: EOF, Lexeme: "", Line: 1, Column: 24},
			},
		},
		{
			name:  "Compound Assignment Operators",
			input: "+= -= *= /= ++ --",
			expected: []Token{
				{Type: OPERATOR, Lexeme: "+=", Line: 1, Column: 1},
				{Type: OPERATOR, Lexeme: "-=", Line: 1, Column: 4},
				{Type: OPERATOR, Lexeme: "*=", Line: 1, Column: 7},
				{Type: OPERATOR, Lexeme: "/=", Line: 1, Column: 10},
				{Type: OPERATOR, Lexeme: "++", Line: 1, Column: 13},
				{Type: OPERATOR, Lexeme: "--", Line: 1, Column: 16},
				{Type: EOF, Lexeme: "", Line: 1, Column: 18},
			},
		},
		{
			name:  "Keywords and Identifiers",
			input: "int x while foo_bar",
			expected: []Token{
				{Type: KEYWORD, Lexeme: "int", Line: 1, Column: 1},
				{Type: IDENTIFIER, Lexeme: "x", Line: 1, Column: 5},
				{Type: KEYWORD, Lexeme: "while", Line: 1, Column: 7},
				{Type: IDENTIFIER, Lexeme: "foo_bar", Line: 1, Column: 13},
				{Type: EOF, Lexeme: "", Line: 1, Column: 20},
			},
		},
		{
			// Reserved words the parsers never use still lex as keywords.
			name:  "Keywords Outside the Statement Grammar",
			input: "struct break do",
			expected: []Token{
				{Type: KEYWORD, Lexeme: "struct", Line: 1, Column: 1},
				{Type: KEYWORD, Lexeme: "break", Line: 1, Column: 8},
				{Type: KEYWORD, Lexeme: "do", Line: 1, Column: 14},
				{Type: EOF, Lexeme: "", Line: 1, Column: 16},
			},
		},
		{
			name:  "Declaration",
			input: "int x = 10;",
			expected: []Token{
				{Type: KEYWORD, Lexeme: "int", Line: 1, Column: 1},
				{Type: IDENTIFIER, Lexeme: "x", Line: 1, Column: 5},
				{Type: OPERATOR, Lexeme: "=", Line: 1, Column: 7},
				{Type: NUMBER, Lexeme: "10", Line: 1, Column: 9},
				{Type: PUNCTUATION, Lexeme: ";", Line: 1, Column: 11},
				{Type: EOF, Lexeme: "", Line: 1, Column: 12},
			},
		},
		{
			name:  "Float Literal",
			input: "3.14",
			expected: []Token{
				{Type: NUMBER, Lexeme: "3.14", Line: 1, Column: 1},
				{Type: EOF, Lexeme: "", Line: 1, Column: 5},
			},
		},
		{
			// A second dot ends the number; the dot itself is punctuation.
			name:  "Number With Two Dots",
			input: "1.2.3",
			expected: []Token{
				{Type: NUMBER, Lexeme: "1.2", Line: 1, Column: 1},
				{Type: PUNCTUATION, Lexeme: ".", Line: 1, Column: 4},
				{Type: NUMBER, Lexeme: "3", Line: 1, Column: 5},
				{Type: EOF, Lexeme: "", Line: 1, Column: 6},
			},
		},
		{
			// The backslash and the quote after it both stay in the value;
			// escapes are not decoded.
			name:  "String With Escaped Quotes",
			input: "\"say \\\"hi\\\"\"",
			expected: []Token{
				{Type: STRING, Lexeme: "say \\\"hi\\\"", Line: 1, Column: 1},
				{Type: EOF, Lexeme: "", Line: 1, Column: 13},
			},
		},
		{
			// An unterminated string runs to the end of input.
			name:  "Unterminated String",
			input: "\"abc",
			expected: []Token{
				{Type: STRING, Lexeme: "abc", Line: 1, Column: 1},
				{Type: EOF, Lexeme: "", Line: 1, Column: 5},
			},
		},
		{
			name:  "Comments",
			input: "x // line\ny /* b */ z",
			expected: []Token{
				{Type: IDENTIFIER, Lexeme: "x", Line: 1, Column: 1},
				{Type: IDENTIFIER, Lexeme: "y", Line: 2, Column: 1},
				{Type: IDENTIFIER, Lexeme: "z", Line: 2, Column: 11},
				{Type: EOF, Lexeme: "", Line: 2, Column: 12},
			},
		},
		{
			name:  "Unterminated Block Comment",
			input: "a /* b",
			expected: []Token{
				{Type: IDENTIFIER, Lexeme: "a", Line: 1, Column: 1},
				{Type: EOF, Lexeme: "", Line: 1, Column: 7},
			},
		},
		{
			name:  "Unknown Characters",
			input: "@ # $",
			expected: []Token{
				{Type: UNKNOWN, Lexeme: "@", Line: 1, Column: 1},
				{Type: UNKNOWN, Lexeme: "#", Line: 1, Column: 3},
				{Type: UNKNOWN, Lexeme: "$", Line: 1, Column: 5},
				{Type: EOF, Lexeme: "", Line: 1, Column: 6},
			},
		},
		{
			name:  "Newline Resets Column",
			input: "a\n  b",
			expected: []Token{
				{Type: IDENTIFIER, Lexeme: "a", Line: 1, Column: 1},
				{Type: IDENTIFIER, Lexeme: "b", Line: 2, Column: 3},
				{Type: EOF, Lexeme: "", Line: 2, Column: 4},
			},
		},
		{
			name:  "Punctuation",
			input: "( ) { } [ ] ; , . : ?",
			expected: []Token{
				{Type: PUNCTUATION, Lexeme: "(", Line: 1, Column: 1},
				{Type: PUNCTUATION, Lexeme: ")", Line: 1, Column: 3},
				{Type: PUNCTUATION, Lexeme: "{", Line: 1, Column: 5},
				{Type: PUNCTUATION, Lexeme: "}", Line: 1, Column: 7},
				{Type: PUNCTUATION, Lexeme: "[", Line: 1, Column: 9},
				{Type: PUNCTUATION, Lexeme: "]", Line: 1, Column: 11},
				{Type: PUNCTUATION, Lexeme: ";", Line: 1, Column: 13},
				{Type: PUNCTUATION, Lexeme: ",", Line: 1, Column: 15},
				{Type: PUNCTUATION, Lexeme: ".", Line: 1, Column: 17},
				{Type: PUNCTUATION, Lexeme: ":", Line: 1, Column: 19},
				{Type: PUNCTUATION, Lexeme: "?", Line: 1, Column: 21},
				{Type: EOF, Lexeme: "", Line: 1, Column: 22},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lex(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Lex(%q) mismatch:\nGot:      %v\nExpected: %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLex_AlwaysEndsWithEOF(t *testing.T) {
	inputs := []string{"", "int", "@#$%", "\"unterminated", "/* open", "x = "}
	for _, input := range inputs {
		tokens := Lex(input)
		if len(tokens) == 0 {
			t.Errorf("Lex(%q) returned no tokens", input)
			continue
		}
		if last := tokens[len(tokens)-1]; last.Type != EOF {
			t.Errorf("Lex(%q) last token = %v; want EOF", input, last)
		}
	}
}
