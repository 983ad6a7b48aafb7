// Package view holds the in-memory view tree the board is rendered from.
//
// A tree is parsed from the server's HTML (see Parse) and mutated in place by
// drags and partial swaps. Sibling order is the only ordering state the client
// keeps: whatever order the children are in is what gets sent to the server.
package view

import (
	"slices"
	"strings"
)

// NodeType distinguishes elements from text.
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// Node is a single element or text run in the view tree.
type Node struct {
	Type NodeType
	Tag  string
	Data string // text content, TextNode only

	attrs    map[string]string
	parent   *Node
	children []*Node

	bound    bool
	selected bool
}

// NewElement creates a detached element. attrs are name/value pairs.
func NewElement(tag string, attrs ...string) *Node {
	n := &Node{Type: ElementNode, Tag: strings.ToLower(tag), attrs: map[string]string{}}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.attrs[attrs[i]] = attrs[i+1]
	}
	return n
}

// NewText creates a detached text node.
func NewText(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// ============================================================================
// ATTRIBUTES
// ============================================================================

// Attr returns the attribute value, or "" if it is absent.
func (n *Node) Attr(name string) string {
	return n.attrs[name]
}

// LookupAttr returns the attribute value and whether it is present.
func (n *Node) LookupAttr(name string) (string, bool) {
	if n.attrs == nil {
		return "", false
	}
	v, ok := n.attrs[name]
	return v, ok
}

// SetAttr sets an attribute on an element.
func (n *Node) SetAttr(name, value string) {
	if n.attrs == nil {
		n.attrs = map[string]string{}
	}
	n.attrs[name] = value
}

// RemoveAttr deletes an attribute.
func (n *Node) RemoveAttr(name string) {
	delete(n.attrs, name)
}

// ID returns the element's id attribute.
func (n *Node) ID() string {
	return n.attrs["id"]
}

// Classes returns the element's class list.
func (n *Node) Classes() []string {
	return strings.Fields(n.attrs["class"])
}

// HasClass reports whether the element carries the class.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.Classes(), class)
}

// AddClass adds a class if it is not already present.
func (n *Node) AddClass(class string) {
	if n.HasClass(class) {
		return
	}
	n.SetAttr("class", strings.TrimSpace(n.attrs["class"]+" "+class))
}

// RemoveClass removes every occurrence of a class.
func (n *Node) RemoveClass(class string) {
	classes := slices.DeleteFunc(n.Classes(), func(c string) bool { return c == class })
	n.SetAttr("class", strings.Join(classes, " "))
}

// Value returns the current value of a form control.
func (n *Node) Value() string {
	return n.attrs["value"]
}

// SetValue replaces the value of a form control and clears any selection.
func (n *Node) SetValue(v string) {
	n.SetAttr("value", v)
	n.selected = false
}

// Select marks the control's whole value as selected.
func (n *Node) Select() {
	n.selected = true
}

// Selected reports whether the control's value is selected.
func (n *Node) Selected() bool {
	return n.selected
}

// Bound reports whether drag behavior has already been attached to this node.
// A node replaced by a swap is a new node and starts unbound.
func (n *Node) Bound() bool {
	return n.bound
}

// MarkBound records that drag behavior is attached. It cannot be undone.
func (n *Node) MarkBound() {
	n.bound = true
}

// ============================================================================
// TREE NAVIGATION
// ============================================================================

// Parent returns the parent node, or nil for a root or detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Root returns the topmost ancestor.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// ChildNodes returns all children, text included.
func (n *Node) ChildNodes() []*Node {
	return slices.Clone(n.children)
}

// Children returns the element children in order.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		if c.Type == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Index returns the node's position among its parent's element children,
// or -1 when detached.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	return slices.Index(n.parent.Children(), n)
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Closest returns n or the nearest ancestor matching m.
func (n *Node) Closest(m Matcher) *Node {
	for p := n; p != nil; p = p.parent {
		if p.Type == ElementNode && m(p) {
			return p
		}
	}
	return nil
}

// Find returns the first descendant element (document order) matching m.
func (n *Node) Find(m Matcher) *Node {
	for _, c := range n.children {
		if c.Type != ElementNode {
			continue
		}
		if m(c) {
			return c
		}
		if found := c.Find(m); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant element matching m in document order.
func (n *Node) FindAll(m Matcher) []*Node {
	var out []*Node
	n.walk(func(c *Node) {
		if m(c) {
			out = append(out, c)
		}
	})
	return out
}

func (n *Node) walk(fn func(*Node)) {
	for _, c := range n.children {
		if c.Type != ElementNode {
			continue
		}
		fn(c)
		c.walk(fn)
	}
}

// Text returns the node's text content with whitespace collapsed.
func (n *Node) Text() string {
	var b strings.Builder
	n.collectText(&b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func (n *Node) collectText(b *strings.Builder) {
	if n.Type == TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for _, c := range n.children {
		c.collectText(b)
	}
}

// RawText returns the node's text content with line breaks kept, trimmed at
// both ends. Markdown descriptions are read this way.
func (n *Node) RawText() string {
	var b strings.Builder
	n.walkText(func(s string) { b.WriteString(s) })
	return strings.TrimSpace(b.String())
}

func (n *Node) walkText(fn func(string)) {
	if n.Type == TextNode {
		fn(n.Data)
		return
	}
	for _, c := range n.children {
		c.walkText(fn)
	}
}

// ============================================================================
// MUTATION
// ============================================================================

// AppendChild detaches child from its current parent and appends it to n.
func (n *Node) AppendChild(child *Node) {
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
}

// InsertBefore detaches child and inserts it immediately before ref.
// A nil or foreign ref appends.
func (n *Node) InsertBefore(child, ref *Node) {
	if child == ref {
		return
	}
	child.Detach()
	i := slices.Index(n.children, ref)
	if ref == nil || i < 0 {
		child.parent = n
		n.children = append(n.children, child)
		return
	}
	child.parent = n
	n.children = slices.Insert(n.children, i, child)
}

// InsertAfter detaches child and inserts it immediately after ref.
// A nil or foreign ref appends.
func (n *Node) InsertAfter(child, ref *Node) {
	if child == ref {
		return
	}
	child.Detach()
	i := slices.Index(n.children, ref)
	if ref == nil || i < 0 {
		child.parent = n
		n.children = append(n.children, child)
		return
	}
	child.parent = n
	n.children = slices.Insert(n.children, i+1, child)
}

// Detach removes the node from its parent. Detached nodes keep their subtree.
func (n *Node) Detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	if i := slices.Index(p.children, n); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	n.parent = nil
}

// ReplaceChildren drops every child of n and adopts nodes in order.
func (n *Node) ReplaceChildren(nodes ...*Node) {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	for _, c := range nodes {
		n.AppendChild(c)
	}
}
