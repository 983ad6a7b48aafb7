package boardserver

// Board is the in-memory state rendered by the server.
type Board struct {
	ID      int64
	Name    string
	Columns []*Column
}

// Column holds cards in order. Cards moved into a Done column are completed.
type Column struct {
	ID    int64
	Name  string
	Done  bool
	Cards []*Card
}

// Card is a single board card.
type Card struct {
	ID          int64
	Title       string
	Description string
	Completed   bool
	Checklist   []*Item
}

// Item is a checklist entry on a card.
type Item struct {
	ID   int64
	Text string
	Done bool
}

// Sample returns the board used throughout the tests: board 1 with columns
// 2 (Todo), 5 (Doing) and 9 (Done). Card 7 sits first in column 2.
func Sample() *Board {
	return &Board{
		ID:   1,
		Name: "Roadmap",
		Columns: []*Column{
			{ID: 2, Name: "Todo", Cards: []*Card{
				{
					ID:          7,
					Title:       "Write docs",
					Description: "# Docs\n\nCover the **install** steps.\n\n- config\n- keys",
					Checklist: []*Item{
						{ID: 31, Text: "Outline"},
						{ID: 32, Text: "Draft"},
						{ID: 33, Text: "Review"},
					},
				},
				{ID: 8, Title: "Fix login"},
			}},
			{ID: 5, Name: "Doing", Cards: []*Card{
				{ID: 11, Title: "Design API"},
				{ID: 12, Title: "Review PR"},
			}},
			{ID: 9, Name: "Done", Done: true, Cards: []*Card{
				{ID: 13, Title: "Set up CI", Completed: true},
			}},
		},
	}
}

// SideProject returns a second, smaller board with id 3.
func SideProject() *Board {
	return &Board{
		ID:   3,
		Name: "Side project",
		Columns: []*Column{
			{ID: 20, Name: "Ideas", Cards: []*Card{{ID: 21, Title: "Garden planner"}}},
		},
	}
}

func (b *Board) column(id int64) *Column {
	for _, c := range b.Columns {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (b *Board) card(id int64) (*Column, int) {
	for _, col := range b.Columns {
		for i, c := range col.Cards {
			if c.ID == id {
				return col, i
			}
		}
	}
	return nil, -1
}

func (b *Board) clone() *Board {
	out := &Board{ID: b.ID, Name: b.Name}
	for _, col := range b.Columns {
		nc := &Column{ID: col.ID, Name: col.Name, Done: col.Done}
		for _, c := range col.Cards {
			cc := *c
			cc.Checklist = nil
			for _, it := range c.Checklist {
				item := *it
				cc.Checklist = append(cc.Checklist, &item)
			}
			nc.Cards = append(nc.Cards, &cc)
		}
		out.Columns = append(out.Columns, nc)
	}
	return out
}
