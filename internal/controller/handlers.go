package controller

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/corkboard/internal/client"
	"github.com/thenoetrevino/corkboard/internal/markup"
	"github.com/thenoetrevino/corkboard/internal/sortable"
	"github.com/thenoetrevino/corkboard/internal/view"
)

// columnDragEnd sends the column order of the container the drag ended in.
// The tree is left as dropped unless the request fails and revert is on;
// there is no refresh.
func (c *Controller) columnDragEnd(ev sortable.Event) {
	boardID := ev.To.Attr(markup.AttrBoardID)
	if boardID == "" {
		c.fail("columns.reorder", fmt.Errorf("%w: %s", ErrMissingAttr, markup.AttrBoardID), &ev)
		return
	}
	columnIDs, err := childIDs(ev.To, markup.AttrColumnID)
	if err != nil {
		c.fail("columns.reorder", err, &ev)
		return
	}

	c.run("columns.reorder", &ev, func(ctx context.Context) ([]byte, error) {
		return nil, c.api.ReorderColumns(ctx, boardID, columnIDs)
	}, nil)
}

// cardDragEnd returns the drop handler for a card container. boardID is the
// board the container was rendered for.
func (c *Controller) cardDragEnd(boardID string) func(sortable.Event) {
	return func(ev sortable.Event) {
		cardID := ev.Item.Attr(markup.AttrCardID)
		if cardID == "" {
			c.fail("cards.move", fmt.Errorf("%w: %s on card", ErrMissingAttr, markup.AttrCardID), &ev)
			return
		}
		columnID, err := client.ParseID(ev.To.Attr(markup.AttrColumnID))
		if err != nil {
			c.fail("cards.move", fmt.Errorf("%w: %s on destination: %w", ErrMissingAttr, markup.AttrColumnID, err), &ev)
			return
		}

		req := client.MoveCardRequest{ColumnID: columnID, Position: ev.NewIndex}
		if boardID != "" {
			if id, err := client.ParseID(boardID); err == nil {
				req.BoardID = &id
			} else {
				c.log.Debug("board id not numeric, omitted from move", "board_id", boardID)
			}
		}

		c.run("cards.move", &ev, func(ctx context.Context) ([]byte, error) {
			return nil, c.api.MoveCard(ctx, cardID, req)
		}, func([]byte) {
			c.Refresh(boardID)
		})
	}
}

// checklistDragEnd returns the drop handler for a checklist container.
func (c *Controller) checklistDragEnd(boardID string) func(sortable.Event) {
	return func(ev sortable.Event) {
		cardID := ev.To.Attr(markup.AttrCardID)
		if cardID == "" {
			c.fail("checklist.reorder", fmt.Errorf("%w: %s on checklist", ErrMissingAttr, markup.AttrCardID), &ev)
			return
		}
		itemIDs, err := childIDs(ev.To, markup.AttrItemID)
		if err != nil {
			c.fail("checklist.reorder", err, &ev)
			return
		}

		c.run("checklist.reorder", &ev, func(ctx context.Context) ([]byte, error) {
			return nil, c.api.ReorderChecklist(ctx, cardID, itemIDs, boardID)
		}, func([]byte) {
			if c.opts.RefreshAfterChecklist {
				c.Refresh(boardID)
			}
		})
	}
}

// childIDs collects attr from the direct children that carry it, in order.
// Nested elements with the same attribute are ignored.
func childIDs(container *view.Node, attr string) ([]string, error) {
	var ids []string
	for _, child := range container.Children() {
		id, ok := child.LookupAttr(attr)
		if !ok {
			continue
		}
		if id == "" {
			return nil, fmt.Errorf("%w: empty %s", ErrMissingAttr, attr)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
