package main

import (
	"flag"
	"fmt"
	"os"

	"minicc/pkg/compiler"
	"minicc/pkg/utils"
)

func main() {
	inputPath := flag.String("input", "", "source file to compile")
	parserKind := flag.String("parser", "rd", "parser strategy: rd (predictive) or slr (table driven)")
	outputDir := flag.String("output-dir", ".", "directory for generated artifacts")
	verbose := flag.Bool("verbose", false, "report each stage and artifact path")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: Input file is required")
		flag.Usage()
		os.Exit(1)
	}
	if *parserKind != "rd" && *parserKind != "slr" {
		fmt.Fprintf(os.Stderr, "Invalid parser type: %s\n", *parserKind)
		os.Exit(1)
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Could not open file '%s'\n", *inputPath)
		os.Exit(1)
	}
	source := string(data)

	write := func(name string, content []byte) {
		path, err := utils.WriteArtifact(*outputDir, name, content)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Could not write '%s': %v\n", name, err)
			os.Exit(1)
		}
		if *verbose {
			fmt.Printf("Wrote %s\n", path)
		}
	}

	// Lex
	tokens := compiler.Lex(source)
	if *verbose {
		fmt.Printf("Lexer produced %d tokens\n", len(tokens))
	}
	write("tokens.txt", []byte(compiler.FormatTokens(tokens)))
	tokensJSON, err := compiler.MarshalTokens(tokens)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Could not encode tokens: %v\n", err)
		os.Exit(1)
	}
	write("tokens.json", tokensJSON)

	// Parse
	var tree *compiler.Node
	if *parserKind == "slr" {
		tree, err = compiler.ParseSLR(tokens)
	} else {
		tree, err = compiler.Parse(tokens)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Parsing failed: %s\n", err)
		os.Exit(1)
	}
	if *verbose {
		fmt.Printf("Parsed with the %s parser\n", *parserKind)
	}
	write("ast.txt", []byte(compiler.FormatTree(tree)))
	write("ast.dot", []byte(compiler.FormatTreeDot(tree)))
	treeJSON, err := compiler.MarshalTree(tree)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Could not encode syntax tree: %v\n", err)
		os.Exit(1)
	}
	write("ast.json", treeJSON)

	// Code generation
	code, err := compiler.Generate(tree)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Code generation failed: %s\n", err)
		os.Exit(1)
	}
	if *verbose {
		fmt.Println("Lowered to three-address, stack and target form")
	}
	write("tac.txt", []byte(code.TAC))
	write("stack_code.txt", []byte(code.Stack))
	write("target_code.txt", []byte(code.Target))

	fmt.Println("Compilation completed successfully.")
}
