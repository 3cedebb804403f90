package compiler

import (
	"fmt"
	"strings"
)

// translateTarget rewrites a stack-machine listing into register-style
// pseudo-assembly, one line at a time. It never consults the tree: labels
// and operand text pass through spelled exactly as the stack pass wrote
// them. The registers are fixed placeholders, not allocated.
func translateTarget(stackCode string) string {
	var out strings.Builder
	emit := func(format string, args ...any) {
		fmt.Fprintf(&out, format+"\n", args...)
	}
	for _, line := range strings.Split(stackCode, "\n") {
		switch {
		case line == "":
		case line == "ADD", line == "SUB", line == "MUL", line == "DIV":
			emit("    %s R1, R2, R3", line)
		case strings.HasPrefix(line, "PUSH "):
			emit("    MOV R1, %s", line[len("PUSH "):])
			emit("    PUSH R1")
		case strings.HasPrefix(line, "LOAD "):
			emit("    LOAD R1, [%s]", line[len("LOAD "):])
			emit("    PUSH R1")
		case strings.HasPrefix(line, "STORE "):
			emit("    POP R1")
			emit("    STORE [%s], R1", line[len("STORE "):])
		case strings.HasPrefix(line, "JZ "):
			emit("    POP R1")
			emit("    CMP R1, 0")
			emit("    JE %s", line[len("JZ "):])
		case strings.HasPrefix(line, "JMP "):
			emit("    JMP %s", line[len("JMP "):])
		case strings.HasPrefix(line, "CALL "):
			emit("    CALL %s", line[len("CALL "):])
		case line == "RET":
			emit("    POP R1")
			emit("    RET")
		case line == "RET0":
			emit("    RET")
		case strings.HasPrefix(line, "FUNC "):
			emit("%s:", line[len("FUNC "):])
			emit("    PUSH FP")
			emit("    MOV FP, SP")
		case line == "END_FUNC":
			emit("    MOV SP, FP")
			emit("    POP FP")
			emit("    RET")
		case strings.HasSuffix(line, ":"):
			emit("%s", line)
		default:
			// MOD, EQ and friends have no register form; keep them as-is.
			emit("    %s", line)
		}
	}
	return out.String()
}
