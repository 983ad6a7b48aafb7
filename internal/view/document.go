package view

import (
	"errors"
	"fmt"
	"io"
)

// ErrTargetNotFound is returned when a swap names a region that is not in the tree.
var ErrTargetNotFound = errors.New("swap target not found")

// EventType names a document lifecycle event.
type EventType string

const (
	// EventLoad fires once, when the initial tree is ready.
	EventLoad EventType = "load"
	// EventAfterSwap fires after a region's children have been replaced.
	EventAfterSwap EventType = "afterSwap"
)

// Event is passed to listeners. Target is the swapped region for
// EventAfterSwap and the root for EventLoad.
type Event struct {
	Type   EventType
	Target *Node
}

// Listener handles a document event.
type Listener func(Event)

// Document owns a view tree and the lifecycle events raised on it.
// It is not safe for concurrent use; all access happens on the UI loop.
type Document struct {
	root      *Node
	listeners map[EventType][]Listener
	focused   *Node
	loaded    bool
}

// NewDocument wraps an existing tree.
func NewDocument(root *Node) *Document {
	return &Document{root: root, listeners: map[EventType][]Listener{}}
}

// Load parses a full page into a new Document. The load event is not fired
// until Ready is called, so listeners can be registered first.
func Load(r io.Reader) (*Document, error) {
	root, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return NewDocument(root), nil
}

// Root returns the tree root.
func (d *Document) Root() *Node {
	return d.root
}

// AddListener registers fn for events of type t.
func (d *Document) AddListener(t EventType, fn Listener) {
	d.listeners[t] = append(d.listeners[t], fn)
}

// Ready fires the load event. Only the first call has any effect.
func (d *Document) Ready() {
	if d.loaded {
		return
	}
	d.loaded = true
	d.dispatch(Event{Type: EventLoad, Target: d.root})
}

// ByID returns the element with the given id, or nil.
func (d *Document) ByID(id string) *Node {
	if id == "" {
		return nil
	}
	return d.root.Find(HasID(id))
}

// Query returns the first element matching m, or nil.
func (d *Document) Query(m Matcher) *Node {
	return d.root.Find(m)
}

// QueryAll returns every element matching m in document order.
func (d *Document) QueryAll(m Matcher) []*Node {
	return d.root.FindAll(m)
}

// Attached reports whether n is currently part of this document's tree.
func (d *Document) Attached(n *Node) bool {
	return n != nil && n.Root() == d.root
}

// Swap replaces the children of the element with id targetID by the parsed
// fragment, then fires EventAfterSwap.
func (d *Document) Swap(targetID string, fragment io.Reader) error {
	target := d.ByID(targetID)
	if target == nil {
		return fmt.Errorf("%w: #%s", ErrTargetNotFound, targetID)
	}
	nodes, err := ParseFragment(fragment)
	if err != nil {
		return err
	}
	target.ReplaceChildren(nodes...)
	if d.focused != nil && !d.Attached(d.focused) {
		d.focused = nil
	}
	d.dispatch(Event{Type: EventAfterSwap, Target: target})
	return nil
}

// Focus moves input focus to n.
func (d *Document) Focus(n *Node) {
	d.focused = n
}

// Blur clears input focus.
func (d *Document) Blur() {
	d.focused = nil
}

// Focused returns the focused element, or nil.
func (d *Document) Focused() *Node {
	return d.focused
}

func (d *Document) dispatch(ev Event) {
	for _, fn := range d.listeners[ev.Type] {
		fn(ev)
	}
}
