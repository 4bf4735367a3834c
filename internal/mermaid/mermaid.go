// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mermaid renders expression trees as Mermaid flowchart documents.
// The output is diagram source only; turning it into a PDF is the job of an
// external renderer driven by the render package.
package mermaid

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/dymex/internal/expr"
)

// Graph accumulates the node and edge lines of one flowchart document.
// Node identifiers are assigned in visit order; the token position keys the
// mapping because it is unique within an expression.
type Graph struct {
	nodeLines []string
	edgeLines []string
	ids       map[int]int
	counter   int

	expression string
	variables  []string
}

// FromAST builds a graph from a parsed expression tree.
func FromAST(root *expr.Node) *Graph {
	g := &Graph{ids: make(map[int]int)}
	g.addTree(root)
	return g
}

// FromExpression parses the expression and builds its graph, adding a
// document node for the expression text and a cylinder node per declared
// input variable.
func FromExpression(expression string, variables []string) (*Graph, error) {
	root, err := expr.ParseExpression(expression, variables)
	if err != nil {
		return nil, fmt.Errorf("building diagram for %q: %w", expression, err)
	}
	g := FromAST(root)
	g.expression = expression
	g.variables = append(g.variables, variables...)
	return g, nil
}

// Nodes returns the number of nodes in the expression tree, excluding the
// header nodes.
func (g *Graph) Nodes() int { return len(g.nodeLines) }

// Edges returns the number of operand-of edges.
func (g *Graph) Edges() int { return len(g.edgeLines) }

// Write emits the full Mermaid document.
func (g *Graph) Write(w io.Writer) error {
	if err := writeHeader(w); err != nil {
		return err
	}

	if g.expression != "" {
		label := strings.ReplaceAll(g.expression, "*", "⋅")
		if _, err := fmt.Fprintf(w, "  expr@{ shape: doc, label: %q }\n", label); err != nil {
			return err
		}
	}
	for i, name := range g.variables {
		if _, err := fmt.Fprintf(w, "  var%d@{ shape: cyl, label: %q }\n", i, name); err != nil {
			return err
		}
	}
	for _, line := range g.nodeLines {
		if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
			return err
		}
	}
	for _, line := range g.edgeLines {
		if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes the document to path.
func (g *Graph) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating diagram file: %w", err)
	}
	if err := g.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing diagram %s: %w", path, err)
	}
	return f.Close()
}

func writeHeader(w io.Writer) error {
	header := []string{
		"---",
		"config:",
		"  layout: elk",
		"  look: handDrawn",
		"  theme: light",
		"---",
		"flowchart TB",
	}
	_, err := fmt.Fprintln(w, strings.Join(header, "\n"))
	return err
}

func (g *Graph) addTree(n *expr.Node) {
	g.addNode(n.Tok)
	for _, arg := range n.Args {
		g.addTree(arg)
		g.addEdge(n.Tok.Pos, arg.Tok.Pos)
	}
}

// addNode emits one node line with a shape keyed to the token kind:
// operators are decision diamonds, single-argument functions trapezoids,
// variadic functions flags, constants subroutines, numbers rectangles, and
// variables stadiums.
func (g *Graph) addNode(t expr.Token) {
	id := g.counter
	g.counter++
	g.ids[t.Pos] = id

	var shape string
	switch {
	case t.Kind == expr.KindOp:
		shape = fmt.Sprintf("{\" \\%s \"}", t)
	case t.Kind == expr.KindFunc && !t.Func.Variadic():
		shape = fmt.Sprintf("[\\ %s /]", t)
	case t.Kind == expr.KindFunc:
		shape = fmt.Sprintf("> %s ]", t)
	case t.Kind == expr.KindConst:
		shape = fmt.Sprintf("[[ %s ]]", t)
	case t.Kind == expr.KindNumber:
		shape = fmt.Sprintf("[ %s ]", t)
	case t.Kind == expr.KindVar:
		shape = fmt.Sprintf("( %s )", t)
	default:
		shape = fmt.Sprintf("[\" %s \"]", t)
	}
	g.nodeLines = append(g.nodeLines, fmt.Sprintf("S%d%s", id, shape))
}

func (g *Graph) addEdge(fromPos, toPos int) {
	g.edgeLines = append(g.edgeLines, fmt.Sprintf("S%d-->S%d", g.ids[fromPos], g.ids[toPos]))
}
