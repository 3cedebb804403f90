package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"minicc/pkg/compiler"
	"minicc/pkg/utils"
)

const (
	nodeWidth  = 120.0
	nodeHeight = 34.0
	columnGap  = 140.0 // horizontal distance between leaf columns
	rowGap     = 70.0  // vertical distance between depth rows

	homeOffsetX = 60.0
	homeOffsetY = 40.0
)

type placedNode struct {
	node *compiler.Node
	x, y float64 // layout units: leaf column and depth row
}

// layoutTree assigns every leaf its own column in left-to-right source
// order and centers each interior node over its children. Empty child
// slots are skipped, so a for loop with omitted clauses stays compact.
func layoutTree(root *compiler.Node) ([]placedNode, [][2]int) {
	var nodes []placedNode
	var edges [][2]int
	nextColumn := 0.0

	var place func(n *compiler.Node, depth int) int
	place = func(n *compiler.Node, depth int) int {
		idx := len(nodes)
		nodes = append(nodes, placedNode{node: n, y: float64(depth)})
		first, last := -1, -1
		for _, child := range n.Children {
			if child == nil {
				continue
			}
			ci := place(child, depth+1)
			if first < 0 {
				first = ci
			}
			last = ci
			edges = append(edges, [2]int{idx, ci})
		}
		if first < 0 {
			nodes[idx].x = nextColumn
			nextColumn++
		} else {
			nodes[idx].x = (nodes[first].x + nodes[last].x) / 2
		}
		return idx
	}

	if root != nil {
		place(root, 0)
	}
	return nodes, edges
}

type Game struct {
	nodes  []placedNode
	edges  [][2]int
	status string

	offsetX, offsetY float64
	zoom             float64
}

func (g *Game) Update() error {
	pan := 8.0 / g.zoom
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.offsetX += pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.offsetX -= pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.offsetY += pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.offsetY -= pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyEqual) || ebiten.IsKeyPressed(ebiten.KeyKPAdd) {
		g.zoom *= 1.02
	}
	if ebiten.IsKeyPressed(ebiten.KeyMinus) || ebiten.IsKeyPressed(ebiten.KeyKPSubtract) {
		g.zoom /= 1.02
	}
	if g.zoom < 0.2 {
		g.zoom = 0.2
	}
	if g.zoom > 3 {
		g.zoom = 3
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.offsetX = homeOffsetX
		g.offsetY = homeOffsetY
		g.zoom = 1
	}
	return nil
}

// boxRect maps a placed node to screen pixels under the current pan/zoom.
func (g *Game) boxRect(p placedNode) (x, y, w, h float32) {
	x = float32((p.x*columnGap + g.offsetX) * g.zoom)
	y = float32((p.y*rowGap + g.offsetY) * g.zoom)
	w = float32(nodeWidth * g.zoom)
	h = float32(nodeHeight * g.zoom)
	return x, y, w, h
}

var (
	backgroundColor = color.RGBA{24, 26, 33, 255}
	edgeColor       = color.RGBA{80, 86, 100, 255}
	boxColor        = color.RGBA{44, 49, 61, 255}
	borderColor     = color.RGBA{110, 120, 140, 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	for _, e := range g.edges {
		px, py, pw, ph := g.boxRect(g.nodes[e[0]])
		cx, cy, cw, _ := g.boxRect(g.nodes[e[1]])
		vector.StrokeLine(screen, px+pw/2, py+ph, cx+cw/2, cy, 1, edgeColor, true)
	}

	for _, p := range g.nodes {
		x, y, w, h := g.boxRect(p)
		vector.DrawFilledRect(screen, x, y, w, h, boxColor, false)
		vector.StrokeRect(screen, x, y, w, h, 1, borderColor, false)

		// The bitmap face does not scale; labels go away when the box
		// gets too small to hold them.
		if w < 70 || h < 26 {
			continue
		}
		kind := p.node.Kind.String()
		kindX := int(x) + int(w)/2 - 7*len(kind)/2
		text.Draw(screen, kind, basicfont.Face7x13, kindX, int(y)+13, color.White)
		if p.node.Value != "" {
			valueX := int(x) + int(w)/2 - 7*len(p.node.Value)/2
			text.Draw(screen, p.node.Value, basicfont.Face7x13, valueX, int(y)+27, color.RGBA{170, 200, 255, 255})
		}
	}

	ebitenutil.DebugPrintAt(screen, g.status, 8, 8)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func main() {
	useSLR := flag.Bool("slr", false, "parse with the table-driven parser")
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: astview [-slr] <source-file>")
		os.Exit(1)
	}

	fullPath, _, err := utils.GetPathInfo(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to resolve source path: %v", err)
	}
	sourceBytes, err := os.ReadFile(fullPath)
	if err != nil {
		log.Fatalf("Failed to read source file: %v", err)
	}

	tokens := compiler.Lex(string(sourceBytes))
	var tree *compiler.Node
	var parseErr error
	if *useSLR {
		tree, parseErr = compiler.ParseSLR(tokens)
	} else {
		tree, parseErr = compiler.Parse(tokens)
	}

	nodes, edges := layoutTree(tree)
	status := fmt.Sprintf("%s | %d nodes | arrows pan, +/- zoom, R resets", filepath.Base(fullPath), len(nodes))
	if parseErr != nil {
		status = fmt.Sprintf("%s | parse error: %v | showing the partial tree", filepath.Base(fullPath), parseErr)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1024, 768)
	ebiten.SetWindowTitle("minicc AST viewer")

	game := &Game{
		nodes:   nodes,
		edges:   edges,
		status:  status,
		offsetX: homeOffsetX,
		offsetY: homeOffsetY,
		zoom:    1,
	}
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
