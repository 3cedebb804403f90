package compiler

import (
	"reflect"
	"strings"
	"testing"
)

// assertContains checks if the generated code contains the expected substring.
func assertContains(t *testing.T, code, expected string) {
	t.Helper()
	if !strings.Contains(code, expected) {
		t.Errorf("Expected code to contain %q, but it didn't.\nCode:\n%s", expected, code)
	}
}

func generateSource(t *testing.T, src string) *Code {
	t.Helper()
	tree, err := Parse(Lex(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	code, err := Generate(tree)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return code
}

// TestGenerate pins the exact TAC and stack listings. Temp and label
// counters are shared across the two passes of one run, so the stack
// listing's label numbers continue where the TAC pass stopped.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTAC   string
		wantStack string
	}{
		{
			name:  "Declarations And Return",
			input: "int main() { int x = 5; int y = 10; int z = x + y; return z; }",
			wantTAC: `function main:
int x = 5
int y = 10
t0 = x + y
int z = t0
return z
end function

`,
			wantStack: `FUNC main
PUSH 5
STORE int x
PUSH 10
STORE int y
LOAD x
LOAD y
ADD
STORE int z
LOAD z
RET
END_FUNC

`,
		},
		{
			// TAC used L0/L1, so the stack pass starts at L2.
			name:  "If-Else",
			input: "int main() { if (x == 1) { y = 2; } else { y = 3; } }",
			wantTAC: `function main:
t0 = x == 1
if t0 == 0 goto L0
y = 2
goto L1
L0:
y = 3
L1:
end function

`,
			wantStack: `FUNC main
LOAD x
PUSH 1
EQ
JZ L2
PUSH 2
STORE y
JMP L3
L2:
PUSH 3
STORE y
L3:
END_FUNC

`,
		},
		{
			name:  "While",
			input: "int main() { while (i < 10) { i = i + 1; } }",
			wantTAC: `function main:
L0:
t0 = i < 10
if t0 == 0 goto L1
t1 = i + 1
i = t1
goto L0
L1:
end function

`,
			wantStack: `FUNC main
L2:
LOAD i
PUSH 10
LT
JZ L3
LOAD i
PUSH 1
ADD
STORE i
JMP L2
L3:
END_FUNC

`,
		},
		{
			// The update's code sits after the body and before the jump
			// back. In the stack form the update emits no value code of
			// its own, only the POP that discards it.
			name:  "For",
			input: "int main() { for (int i = 0; i < 3; i = i + 1) { x = i; } }",
			wantTAC: `function main:
int i = 0
L0:
t0 = i < 3
if t0 == 0 goto L1
x = i
L2:
t1 = i + 1
i = t1
goto L0
L1:
end function

`,
			wantStack: `FUNC main
PUSH 0
STORE int i
L3:
LOAD i
PUSH 3
LT
JZ L4
LOAD i
STORE x
L5:
POP
JMP L3
L4:
END_FUNC

`,
		},
		{
			name:  "For With Empty Clauses",
			input: "int main() { for (;;) { } }",
			wantTAC: `function main:
L0:
L2:
goto L0
L1:
end function

`,
			wantStack: `FUNC main
L3:
L5:
JMP L3
L4:
END_FUNC

`,
		},
		{
			// TAC lowers arguments left to right; the stack pass pushes
			// them in reverse.
			name:  "Call Arguments",
			input: "int main() { int r = add(1, 2); return r; }",
			wantTAC: `function main:
param 1
param 2
t0 = call add, 2
int r = t0
return r
end function

`,
			wantStack: `FUNC main
PUSH 2
PUSH 1
CALL add
STORE int r
LOAD r
RET
END_FUNC

`,
		},
		{
			name:  "Bare Call Statement",
			input: "int main() { foo(); }",
			wantTAC: `function main:
t0 = call foo, 0
end function

`,
			wantStack: `FUNC main
CALL foo
POP
END_FUNC

`,
		},
		{
			// A string has no expression lowering: TAC falls back to the
			// placeholder name, the stack pass pushes nothing.
			name:  "String Argument",
			input: "int main() { print(\"hi\"); }",
			wantTAC: `function main:
param error
t0 = call print, 1
end function

`,
			wantStack: `FUNC main
CALL print
POP
END_FUNC

`,
		},
		{
			name:  "Unary And Bare Return",
			input: "int main() { x = -y; return; }",
			wantTAC: `function main:
t0 = - y
x = t0
return
end function

`,
			wantStack: `FUNC main
LOAD y
NEG
STORE x
RET0
END_FUNC

`,
		},
		{
			name:  "Two Functions",
			input: "int one() { return 1; } int two() { return 2; }",
			wantTAC: `function one:
return 1
end function

function two:
return 2
end function

`,
			wantStack: `FUNC one
PUSH 1
RET
END_FUNC

FUNC two
PUSH 2
RET
END_FUNC

`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := generateSource(t, tt.input)
			if code.TAC != tt.wantTAC {
				t.Errorf("TAC mismatch:\nGot:\n%s\nWant:\n%s", code.TAC, tt.wantTAC)
			}
			if code.Stack != tt.wantStack {
				t.Errorf("Stack mismatch:\nGot:\n%s\nWant:\n%s", code.Stack, tt.wantStack)
			}
		})
	}
}

func TestGenerate_TargetListing(t *testing.T) {
	code := generateSource(t, "int main() { return 0; }")
	want := `main:
    PUSH FP
    MOV FP, SP
    MOV R1, 0
    PUSH R1
    POP R1
    RET
    MOV SP, FP
    POP FP
    RET
`
	if code.Target != want {
		t.Errorf("Target mismatch:\nGot:\n%s\nWant:\n%s", code.Target, want)
	}
}

func TestGenerate_NoRoot(t *testing.T) {
	if _, err := Generate(nil); err == nil {
		t.Error("Generate(nil) did not fail")
	}
	if _, err := Generate(NewBlock()); err == nil {
		t.Error("Generate on a non-program node did not fail")
	}
}

// Each run gets fresh counters, so generating twice from one tree yields
// byte-identical listings.
func TestGenerate_Deterministic(t *testing.T) {
	tree, err := Parse(Lex("int main() { if (x) { y = 1; } while (z) { z = z - 1; } }"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	first, err := Generate(tree)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	second, err := Generate(tree)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over the same tree produced different code")
	}
}

// A best-effort tree from a failed parse still lowers: missing pieces are
// skipped, not trapped on.
func TestGenerate_PartialTree(t *testing.T) {
	tree, err := Parse(Lex("int main() { int x = 1; return x }"))
	if err == nil {
		t.Fatal("Expected parse error, got none")
	}
	code, genErr := Generate(tree)
	if genErr != nil {
		t.Fatalf("Generate failed on a partial tree: %v", genErr)
	}
	assertContains(t, code.TAC, "function main:")
	assertContains(t, code.TAC, "int x = 1")
	assertContains(t, code.Stack, "STORE int x")
}
