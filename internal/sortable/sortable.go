// Package sortable provides drag-reorder behavior over view containers.
//
// A container made sortable lets its draggable children be picked up, moved
// within it or into another container of the same group, and dropped. The
// tree is mutated while the drag is in progress; on drop the source
// container's OnEnd callback receives the final placement.
package sortable

import (
	"errors"
	"slices"

	"github.com/thenoetrevino/corkboard/internal/view"
)

var (
	ErrNotSortable   = errors.New("not inside a sortable container")
	ErrNotDraggable  = errors.New("element is not draggable")
	ErrFiltered      = errors.New("drag started on a filtered element")
	ErrOutsideHandle = errors.New("drag did not start on the handle")
	ErrGroupMismatch = errors.New("containers do not share a drag group")
	ErrDragFinished  = errors.New("drag already finished")
	ErrAlreadyBound  = errors.New("container is already sortable")
)

// Options configures one sortable container.
type Options struct {
	// Group lets items cross between containers sharing the same non-empty name.
	Group string
	// Draggable selects which children can be dragged. Nil means every element child.
	Draggable view.Matcher
	// Handle, when set, requires the drag to start on a matching element
	// between the origin and the item.
	Handle view.Matcher
	// Filter rejects drags that start on a matching element.
	Filter view.Matcher
	// OnEnd is called on drop with the item's final placement.
	OnEnd func(Event)
}

// Event describes a completed drag.
type Event struct {
	Item     *view.Node
	From     *view.Node
	To       *view.Node
	OldIndex int
	NewIndex int
}

// Moved reports whether the drop changed the item's placement.
func (e Event) Moved() bool {
	return e.From != e.To || e.OldIndex != e.NewIndex
}

// Sortable is a container with drag behavior attached.
type Sortable struct {
	container *view.Node
	opts      Options
}

// Container returns the element the behavior is attached to.
func (s *Sortable) Container() *view.Node {
	return s.container
}

// Group returns the drag group name.
func (s *Sortable) Group() string {
	return s.opts.Group
}

func (s *Sortable) draggable(n *view.Node) bool {
	if n.Type != view.ElementNode || n.Parent() != s.container {
		return false
	}
	return s.opts.Draggable == nil || s.opts.Draggable(n)
}

// Items returns the container's draggable children in order.
func (s *Sortable) Items() []*view.Node {
	var out []*view.Node
	for _, c := range s.container.Children() {
		if s.draggable(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s *Sortable) indexOf(item *view.Node) int {
	return slices.Index(s.Items(), item)
}

// place inserts item at index among the draggable children, clamping index.
func (s *Sortable) place(item *view.Node, index int) int {
	items := slices.DeleteFunc(s.Items(), func(n *view.Node) bool { return n == item })
	index = max(0, min(index, len(items)))
	switch {
	case index < len(items):
		s.container.InsertBefore(item, items[index])
	case len(items) > 0:
		s.container.InsertAfter(item, items[len(items)-1])
	default:
		s.container.AppendChild(item)
	}
	return index
}

// Registry tracks every sortable container of a document.
type Registry struct {
	sortables map[*view.Node]*Sortable
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sortables: map[*view.Node]*Sortable{}}
}

// Create attaches drag behavior to container.
func (r *Registry) Create(container *view.Node, opts Options) (*Sortable, error) {
	if _, ok := r.sortables[container]; ok {
		return nil, ErrAlreadyBound
	}
	s := &Sortable{container: container, opts: opts}
	r.sortables[container] = s
	return s, nil
}

// Get returns the sortable attached to container.
func (r *Registry) Get(container *view.Node) (*Sortable, bool) {
	s, ok := r.sortables[container]
	return s, ok
}

// Len returns the number of sortable containers.
func (r *Registry) Len() int {
	return len(r.sortables)
}

// Prune forgets containers for which attached returns false, such as nodes
// removed by a swap. It returns how many were dropped.
func (r *Registry) Prune(attached func(*view.Node) bool) int {
	removed := 0
	for n := range r.sortables {
		if !attached(n) {
			delete(r.sortables, n)
			removed++
		}
	}
	return removed
}

// Locate finds the draggable item and sortable a gesture starting at origin
// would pick up, without checking handle or filter rules. The innermost
// sortable container wins.
func (r *Registry) Locate(origin *view.Node) (*view.Node, *Sortable, error) {
	for p := origin; p != nil; p = p.Parent() {
		s, ok := r.sortables[p.Parent()]
		if !ok {
			continue
		}
		if !s.draggable(p) {
			return nil, nil, ErrNotDraggable
		}
		return p, s, nil
	}
	return nil, nil, ErrNotSortable
}

// Start begins a drag from origin, the element the gesture started on.
func (r *Registry) Start(origin *view.Node) (*Drag, error) {
	item, s, err := r.Locate(origin)
	if err != nil {
		return nil, err
	}

	onHandle := s.opts.Handle == nil
	for n := origin; n != s.container; n = n.Parent() {
		if s.opts.Filter != nil && s.opts.Filter(n) {
			return nil, ErrFiltered
		}
		if !onHandle && s.opts.Handle(n) {
			onHandle = true
		}
	}
	if !onHandle {
		return nil, ErrOutsideHandle
	}

	idx := s.indexOf(item)
	return &Drag{
		reg:      r,
		source:   s,
		current:  s,
		item:     item,
		oldIndex: idx,
		index:    idx,
	}, nil
}

// Revert moves ev.Item back to where the drag started.
func (r *Registry) Revert(ev Event) error {
	s, ok := r.sortables[ev.From]
	if !ok {
		return ErrNotSortable
	}
	s.place(ev.Item, ev.OldIndex)
	return nil
}
