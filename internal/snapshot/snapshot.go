// Package snapshot reads a rendered board out of the view tree. Front ends
// keep no board state of their own; they take a fresh snapshot whenever they
// need one, so drags and swaps are always reflected.
package snapshot

import (
	"fmt"

	"github.com/thenoetrevino/corkboard/internal/markup"
	"github.com/thenoetrevino/corkboard/internal/view"
)

// Board is a rendered board in display order.
type Board struct {
	Container *view.Node `json:"-"`
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Columns   []Column   `json:"columns"`
}

// Column is one column and its cards in display order.
type Column struct {
	Node   *view.Node `json:"-"`
	Header *view.Node `json:"-"`
	Cards  *view.Node `json:"-"`
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Done   bool       `json:"done"`
	Items  []Card     `json:"cards"`
}

// Card is a card as shown on the board.
type Card struct {
	Node      *view.Node `json:"-"`
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
}

// Modal is the card detail currently loaded into the modal region.
type Modal struct {
	CardID      string     `json:"card_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	List        *view.Node `json:"-"`
	Items       []Item     `json:"checklist"`
}

// Item is a checklist entry.
type Item struct {
	Node *view.Node `json:"-"`
	ID   string     `json:"id"`
	Text string     `json:"text"`
	Done bool       `json:"done"`
}

// ReadBoard reads the board in the page's columns container. A page without
// one yields the zero Board.
func ReadBoard(doc *view.Document) Board {
	container := doc.ByID(markup.ColumnsContainerID)
	if container == nil {
		return Board{}
	}

	b := Board{
		Container: container,
		ID:        container.Attr(markup.AttrBoardID),
		Name:      container.Attr(markup.AttrBoardName),
	}
	if b.Name == "" {
		if h := doc.Query(view.HasClass(markup.ClassBoardName)); h != nil {
			b.Name = h.Text()
		}
	}

	for _, col := range container.Children() {
		if _, ok := col.LookupAttr(markup.AttrColumnID); !ok {
			continue
		}
		b.Columns = append(b.Columns, readColumn(col))
	}
	return b
}

func readColumn(col *view.Node) Column {
	c := Column{
		Node:   col,
		Header: col.Find(view.HasClass(markup.ClassColumnHeader)),
		Cards:  col.Find(view.HasClass(markup.ClassCardsContainer)),
		ID:     col.Attr(markup.AttrColumnID),
		Done:   col.Attr(markup.AttrDoneColumn) == "true",
	}
	switch title := col.Find(view.HasClass(markup.ClassColumnTitle)); {
	case title != nil:
		c.Title = title.Text()
	case c.Header != nil:
		c.Title = c.Header.Text()
	}
	if c.Title == "" {
		c.Title = fmt.Sprintf("Column %s", c.ID)
	}

	if c.Cards == nil {
		return c
	}
	for _, card := range c.Cards.Children() {
		if !card.HasClass(markup.ClassCardItem) {
			continue
		}
		item := Card{
			Node:      card,
			ID:        card.Attr(markup.AttrCardID),
			Completed: card.HasClass(markup.ClassCompleted) || card.Attr(markup.AttrCompleted) == "true",
		}
		if title := card.Find(view.HasClass(markup.ClassCardTitle)); title != nil {
			item.Title = title.Text()
		} else {
			item.Title = card.Text()
		}
		c.Items = append(c.Items, item)
	}
	return c
}

// ReadModal reads the card loaded into the modal region, whether or not the
// modal is shown.
func ReadModal(doc *view.Document) Modal {
	content := doc.ByID(markup.ModalContentID)
	if content == nil {
		return Modal{}
	}

	var m Modal
	if title := content.Find(view.HasClass(markup.ClassCardTitle)); title != nil {
		m.Title = title.Text()
	}
	if desc := content.Find(view.HasClass(markup.ClassCardDescription)); desc != nil {
		m.Description = desc.RawText()
	}
	if card := content.Find(view.HasAttr(markup.AttrCardID)); card != nil {
		m.CardID = card.Attr(markup.AttrCardID)
	}

	m.List = content.Find(view.HasClass(markup.ClassChecklistContainer))
	if m.List == nil {
		return m
	}
	checked := view.All(view.HasTag("input"), view.HasAttr("checked"))
	for _, item := range m.List.Children() {
		if !item.HasClass(markup.ClassChecklistItem) {
			continue
		}
		m.Items = append(m.Items, Item{
			Node: item,
			ID:   item.Attr(markup.AttrItemID),
			Text: item.Text(),
			Done: item.Find(checked) != nil || item.HasClass(markup.ClassCompleted),
		})
	}
	return m
}

// Column returns the column with the given id.
func (b Board) Column(id string) (Column, bool) {
	for _, c := range b.Columns {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// Card returns the card with the given id and the index of its column.
func (b Board) Card(id string) (Card, int, bool) {
	for ci, c := range b.Columns {
		for _, card := range c.Items {
			if card.ID == id {
				return card, ci, true
			}
		}
	}
	return Card{}, 0, false
}

// LocateCard returns the column and row holding node.
func (b Board) LocateCard(node *view.Node) (col, row int, ok bool) {
	for ci, c := range b.Columns {
		for ri, card := range c.Items {
			if card.Node == node {
				return ci, ri, true
			}
		}
	}
	return 0, 0, false
}

// LocateColumn returns the index of the column node.
func (b Board) LocateColumn(node *view.Node) (int, bool) {
	for ci, c := range b.Columns {
		if c.Node == node {
			return ci, true
		}
	}
	return 0, false
}

// Item returns the checklist item with the given id and its index.
func (m Modal) Item(id string) (Item, int, bool) {
	for i, item := range m.Items {
		if item.ID == id {
			return item, i, true
		}
	}
	return Item{}, 0, false
}

// LocateItem returns the index of the checklist item node.
func (m Modal) LocateItem(node *view.Node) (int, bool) {
	for i, item := range m.Items {
		if item.Node == node {
			return i, true
		}
	}
	return 0, false
}
