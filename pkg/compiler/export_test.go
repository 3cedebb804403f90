package compiler

import (
	"strings"
	"testing"
)

func TestFormatTokens(t *testing.T) {
	got := FormatTokens(Lex("int x = 1;"))
	lines := strings.Split(got, "\n")

	// Header, rule, six tokens (EOF included), trailing newline.
	if len(lines) != 9 || lines[8] != "" {
		t.Fatalf("FormatTokens produced %d lines, want 8 plus trailing newline:\n%s", len(lines), got)
	}
	if fields := strings.Fields(lines[0]); !equalStrings(fields, []string{"TYPE", "VALUE", "LINE", "COLUMN"}) {
		t.Errorf("Header fields = %v", fields)
	}
	if lines[1] != strings.Repeat("-", 48) {
		t.Errorf("Rule line = %q", lines[1])
	}

	wantRows := [][]string{
		{"KEYWORD", "int", "1", "1"},
		{"IDENTIFIER", "x", "1", "5"},
		{"OPERATOR", "=", "1", "7"},
		{"NUMBER", "1", "1", "9"},
		{"PUNCTUATION", ";", "1", "10"},
		// EOF has no lexeme, so its row collapses to three fields.
		{"EOF", "1", "11"},
	}
	for i, want := range wantRows {
		if fields := strings.Fields(lines[2+i]); !equalStrings(fields, want) {
			t.Errorf("Row %d fields = %v, want %v", i, fields, want)
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMarshalTokens(t *testing.T) {
	got, err := MarshalTokens(Lex("x"))
	if err != nil {
		t.Fatalf("MarshalTokens failed: %v", err)
	}
	want := `{
  "tokens": [
    {
      "type": "IDENTIFIER",
      "value": "x",
      "line": 1,
      "column": 1
    },
    {
      "type": "EOF",
      "value": "",
      "line": 1,
      "column": 2
    }
  ]
}`
	if string(got) != want {
		t.Errorf("MarshalTokens mismatch:\nGot:\n%s\nWant:\n%s", got, want)
	}
}

func TestFormatTree(t *testing.T) {
	tree, err := Parse(Lex("int main() { int x = 1; }"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := `PROGRAM
  FUNCTION_DECL (main)
    BLOCK (params)
    BLOCK
      VARIABLE_DECL (int x)
        NUMBER (1)
`
	if got := FormatTree(tree); got != want {
		t.Errorf("FormatTree mismatch:\nGot:\n%s\nWant:\n%s", got, want)
	}
}

func TestFormatTree_SkipsEmptySlots(t *testing.T) {
	loop := NewFor(nil, nil, nil, NewBlock())
	want := "FOR\n  BLOCK\n"
	if got := FormatTree(loop); got != want {
		t.Errorf("FormatTree mismatch:\nGot:\n%s\nWant:\n%s", got, want)
	}
}

func TestFormatTree_NilRoot(t *testing.T) {
	if got := FormatTree(nil); got != "" {
		t.Errorf("FormatTree(nil) = %q, want empty", got)
	}
}

func TestFormatTreeDot(t *testing.T) {
	tree := NewBinaryOp("+", NewNumber("1"), NewNumber("2"))
	want := `digraph AST {
  node [shape=box, fontname="Arial"];
  node0 [label="BINARY_OP\n+"];
  node1 [label="NUMBER\n1"];
  node0 -> node1;
  node2 [label="NUMBER\n2"];
  node0 -> node2;
}
`
	if got := FormatTreeDot(tree); got != want {
		t.Errorf("FormatTreeDot mismatch:\nGot:\n%s\nWant:\n%s", got, want)
	}
}

func TestFormatTreeDot_EscapesQuotes(t *testing.T) {
	got := FormatTreeDot(NewString(`say "hi"`))
	want := `  node0 [label="STRING\nsay \"hi\""];`
	if !strings.Contains(got, want) {
		t.Errorf("FormatTreeDot output missing %q:\n%s", want, got)
	}
}

func TestFormatTreeDot_SkipsEmptySlots(t *testing.T) {
	got := FormatTreeDot(NewFor(nil, nil, nil, NewBlock()))
	want := `digraph AST {
  node [shape=box, fontname="Arial"];
  node0 [label="FOR"];
  node1 [label="BLOCK"];
  node0 -> node1;
}
`
	if got != want {
		t.Errorf("FormatTreeDot mismatch:\nGot:\n%s\nWant:\n%s", got, want)
	}
}

func TestFormatTreeDot_NilRoot(t *testing.T) {
	want := "digraph AST {\n  node [shape=box, fontname=\"Arial\"];\n}\n"
	if got := FormatTreeDot(nil); got != want {
		t.Errorf("FormatTreeDot(nil) = %q, want %q", got, want)
	}
}

// TestMarshalTree pins the serialized shape of a loop with omitted clauses.
// The empty slots must survive as null entries so a consumer can still
// address init, condition and update by position.
func TestMarshalTree(t *testing.T) {
	got, err := MarshalTree(NewFor(nil, nil, nil, NewBlock()))
	if err != nil {
		t.Fatalf("MarshalTree failed: %v", err)
	}
	want := `{
  "ast": {
    "type": "FOR",
    "value": null,
    "children": [
      null,
      null,
      null,
      {
        "type": "BLOCK",
        "value": null,
        "children": []
      }
    ]
  }
}`
	if string(got) != want {
		t.Errorf("MarshalTree mismatch:\nGot:\n%s\nWant:\n%s", got, want)
	}
}

func TestMarshalTree_WithValue(t *testing.T) {
	got, err := MarshalTree(NewIdentifier("x"))
	if err != nil {
		t.Fatalf("MarshalTree failed: %v", err)
	}
	want := `{
  "ast": {
    "type": "IDENTIFIER",
    "value": "x",
    "children": []
  }
}`
	if string(got) != want {
		t.Errorf("MarshalTree mismatch:\nGot:\n%s\nWant:\n%s", got, want)
	}
}

func TestMarshalTree_NilRoot(t *testing.T) {
	got, err := MarshalTree(nil)
	if err != nil {
		t.Fatalf("MarshalTree failed: %v", err)
	}
	want := "{\n  \"ast\": null\n}"
	if string(got) != want {
		t.Errorf("MarshalTree(nil) = %q, want %q", got, want)
	}
}
