package main

import (
	"fmt"
	"log"
	"os"

	"minicc/pkg/compiler"
	"minicc/pkg/utils"
)

// The console prints every stage of a compile run to stdout. Unlike the
// batch driver it keeps going after a parse error so the partial tree and
// whatever code it lowers to can still be inspected.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: console <source-file> [--slr]")
		os.Exit(1)
	}
	filename := os.Args[1]
	useSLR := false
	if len(os.Args) > 2 {
		for _, arg := range os.Args[2:] {
			useSLR = arg == "--slr"
		}
	}

	fullPath, _, err := utils.GetPathInfo(filename)
	if err != nil {
		log.Fatalf("Failed to resolve source path: %v", err)
	}
	sourceBytes, err := os.ReadFile(fullPath)
	if err != nil {
		log.Fatalf("Failed to read source file: %v", err)
	}

	fmt.Printf("Compiling source file: %s\n\n", fullPath)

	tokens := compiler.Lex(string(sourceBytes))
	fmt.Printf("Tokens (%d)\n", len(tokens))
	fmt.Println(compiler.FormatTokens(tokens))

	var tree *compiler.Node
	var parseErr error
	if useSLR {
		tree, parseErr = compiler.ParseSLR(tokens)
	} else {
		tree, parseErr = compiler.Parse(tokens)
	}
	if parseErr != nil {
		fmt.Fprintf(os.Stderr, "parse error: %v\n", parseErr)
	}
	if tree == nil {
		os.Exit(1)
	}

	fmt.Println("Syntax Tree")
	fmt.Println(compiler.FormatTree(tree))

	code, err := compiler.Generate(tree)
	if err != nil {
		log.Fatalf("Code generation failed: %v", err)
	}

	fmt.Println("Three-Address Code")
	fmt.Println(code.TAC)
	fmt.Println("Stack Code")
	fmt.Println(code.Stack)
	fmt.Println("Target Code")
	fmt.Println(code.Target)

	if parseErr != nil {
		os.Exit(1)
	}
}
