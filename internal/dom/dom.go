// Package dom parses HTML fragments into goquery documents and renders them
// back to markup. It is the tree capability the scrub cleaner mutates.
package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed tree rooted at a synthetic document node.
// Fragments keep their top-level nodes as direct children of the root;
// full documents keep the parser's html/head/body structure.
type Document struct {
	*goquery.Document
	full bool
}

// Parse parses text as a fragment in body context, or as a full document
// when it starts with a doctype or an <html> tag.
func Parse(text string) (*Document, error) {
	if LooksLikeDocument(text) {
		root, err := html.Parse(strings.NewReader(text))
		if err != nil {
			return nil, fmt.Errorf("parsing document: %w", err)
		}
		return &Document{Document: goquery.NewDocumentFromNode(root), full: true}, nil
	}

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(text), context)
	if err != nil {
		return nil, fmt.Errorf("parsing fragment: %w", err)
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return &Document{Document: goquery.NewDocumentFromNode(root)}, nil
}

// LooksLikeDocument reports whether text is a whole document rather than a
// fragment.
func LooksLikeDocument(text string) bool {
	head := strings.ToLower(strings.TrimSpace(text))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

// Root returns the synthetic root node.
func (d *Document) Root() *html.Node {
	return d.Nodes[0]
}

// IsFull reports whether the document was parsed as a full document.
func (d *Document) IsFull() bool {
	return d.full
}

// Render serializes the tree. Fragments render their top-level nodes in
// order; full documents render everything including the doctype.
func (d *Document) Render() (string, error) {
	if d.full {
		return goquery.OuterHtml(d.Selection)
	}
	return d.Html()
}

// Attached reports whether n is still reachable from root through parent
// links. Nodes inside a detached subtree are not attached.
func Attached(n, root *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}

// Detach removes n from its parent, if it has one.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}
