package compiler

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatTokens renders the token stream as a fixed-width text table, one
// row per token, EOF included.
func FormatTokens(tokens []Token) string {
	var out strings.Builder
	fmt.Fprintf(&out, "%-15s %-15s %-10s %-10s\n", "TYPE", "VALUE", "LINE", "COLUMN")
	out.WriteString(strings.Repeat("-", 48))
	out.WriteByte('\n')
	for _, t := range tokens {
		fmt.Fprintf(&out, "%-15s %-15s %-10d %-10d\n", t.Type, t.Lexeme, t.Line, t.Column)
	}
	return out.String()
}

type tokenJSON struct {
	Type   string `json:"type"`
	Value  string `json:"value"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// MarshalTokens renders the token stream as a JSON document of the form
// {"tokens": [...]}.
func MarshalTokens(tokens []Token) ([]byte, error) {
	doc := struct {
		Tokens []tokenJSON `json:"tokens"`
	}{Tokens: make([]tokenJSON, 0, len(tokens))}
	for _, t := range tokens {
		doc.Tokens = append(doc.Tokens, tokenJSON{
			Type:   t.Type.String(),
			Value:  t.Lexeme,
			Line:   t.Line,
			Column: t.Column,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// FormatTree renders the tree as indented text, two spaces per level, with
// each node as "KIND" or "KIND (value)". Empty child slots are omitted.
func FormatTree(root *Node) string {
	var out strings.Builder
	formatNode(&out, root, 0)
	return out.String()
}

func formatNode(out *strings.Builder, node *Node, depth int) {
	if node == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	if node.Value != "" {
		fmt.Fprintf(out, "%s%s (%s)\n", indent, node.Kind, node.Value)
	} else {
		fmt.Fprintf(out, "%s%s\n", indent, node.Kind)
	}
	for _, child := range node.Children {
		formatNode(out, child, depth+1)
	}
}

// FormatTreeDot renders the tree in Graphviz dot form. Node ids follow a
// preorder walk, so the root is always node0.
func FormatTreeDot(root *Node) string {
	var out strings.Builder
	out.WriteString("digraph AST {\n")
	out.WriteString("  node [shape=box, fontname=\"Arial\"];\n")
	if root != nil {
		counter := 0
		dotNode(&out, root, &counter)
	}
	out.WriteString("}\n")
	return out.String()
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func dotNode(out *strings.Builder, node *Node, counter *int) int {
	id := *counter
	*counter++
	label := node.Kind.String()
	if node.Value != "" {
		label += `\n` + dotEscaper.Replace(node.Value)
	}
	fmt.Fprintf(out, "  node%d [label=\"%s\"];\n", id, label)
	for _, child := range node.Children {
		if child == nil {
			continue
		}
		childID := dotNode(out, child, counter)
		fmt.Fprintf(out, "  node%d -> node%d;\n", id, childID)
	}
	return id
}

type nodeJSON struct {
	Type     string      `json:"type"`
	Value    *string     `json:"value"`
	Children []*nodeJSON `json:"children"`
}

// MarshalTree renders the tree as a JSON document of the form {"ast": ...}.
// A node carries "type", "value" (null when it has none) and "children";
// empty child slots stay in place as null entries so positions survive the
// round trip.
func MarshalTree(root *Node) ([]byte, error) {
	doc := struct {
		AST *nodeJSON `json:"ast"`
	}{AST: treeToJSON(root)}
	return json.MarshalIndent(doc, "", "  ")
}

func treeToJSON(node *Node) *nodeJSON {
	if node == nil {
		return nil
	}
	j := &nodeJSON{Type: node.Kind.String(), Children: []*nodeJSON{}}
	if node.Value != "" {
		v := node.Value
		j.Value = &v
	}
	for _, child := range node.Children {
		j.Children = append(j.Children, treeToJSON(child))
	}
	return j
}
