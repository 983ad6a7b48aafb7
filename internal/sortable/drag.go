package sortable

import "github.com/thenoetrevino/corkboard/internal/view"

// Drag is an in-progress drag session. The item is moved in the tree as the
// session moves, so renderers show the live placement.
type Drag struct {
	reg      *Registry
	source   *Sortable
	current  *Sortable
	item     *view.Node
	oldIndex int
	index    int
	done     bool
}

// Item returns the node being dragged.
func (d *Drag) Item() *view.Node {
	return d.item
}

// Source returns the container the drag started in.
func (d *Drag) Source() *view.Node {
	return d.source.container
}

// Container returns the container currently holding the item.
func (d *Drag) Container() *view.Node {
	return d.current.container
}

// Index returns the item's current position among draggable siblings.
func (d *Drag) Index() int {
	return d.index
}

// Done reports whether the drag was dropped or cancelled.
func (d *Drag) Done() bool {
	return d.done
}

// MoveTo places the item at index within container. The index is clamped to
// the container's bounds; the clamped value is returned.
func (d *Drag) MoveTo(container *view.Node, index int) (int, error) {
	if d.done {
		return d.index, ErrDragFinished
	}
	target, ok := d.reg.Get(container)
	if !ok {
		return d.index, ErrNotSortable
	}
	if target != d.source && (d.source.opts.Group == "" || target.opts.Group != d.source.opts.Group) {
		return d.index, ErrGroupMismatch
	}
	d.index = target.place(d.item, index)
	d.current = target
	return d.index, nil
}

// Move shifts the item by delta positions within its current container.
func (d *Drag) Move(delta int) (int, error) {
	return d.MoveTo(d.current.container, d.index+delta)
}

// Drop ends the drag and calls the source container's OnEnd.
func (d *Drag) Drop() (Event, error) {
	if d.done {
		return Event{}, ErrDragFinished
	}
	d.done = true
	ev := Event{
		Item:     d.item,
		From:     d.source.container,
		To:       d.current.container,
		OldIndex: d.oldIndex,
		NewIndex: d.index,
	}
	if d.source.opts.OnEnd != nil {
		d.source.opts.OnEnd(ev)
	}
	return ev, nil
}

// Cancel ends the drag and restores the item's original placement.
// OnEnd is not called.
func (d *Drag) Cancel() error {
	if d.done {
		return ErrDragFinished
	}
	d.done = true
	d.source.place(d.item, d.oldIndex)
	return nil
}
