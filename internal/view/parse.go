package view

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DocumentTag is the tag given to the synthetic root of a parsed page.
const DocumentTag = "#document"

// Parse reads a full HTML page and returns the root of its view tree.
// Comments and doctypes are dropped, as are whitespace-only text runs.
func Parse(r io.Reader) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	root := NewElement(DocumentTag)
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if n := convert(c); n != nil {
			root.AppendChild(n)
		}
	}
	return root, nil
}

// ParseFragment reads markup meant to be placed inside an existing element
// and returns the top-level nodes.
func ParseFragment(r io.Reader) ([]*Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	out := make([]*Node, 0, len(nodes))
	for _, hn := range nodes {
		if n := convert(hn); n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

func convert(hn *html.Node) *Node {
	switch hn.Type {
	case html.ElementNode:
		n := NewElement(hn.Data)
		for _, a := range hn.Attr {
			n.SetAttr(a.Key, a.Val)
		}
		for c := hn.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				n.AppendChild(child)
			}
		}
		return n
	case html.TextNode:
		if strings.TrimSpace(hn.Data) == "" {
			return nil
		}
		return NewText(hn.Data)
	default:
		return nil
	}
}
