package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/thenoetrevino/corkboard/internal/config"
)

// keyMap holds every binding the board responds to. Configured keys are
// primary; arrow keys are always accepted as aliases for navigation.
type keyMap struct {
	PrevColumn  key.Binding
	NextColumn  key.Binding
	PrevItem    key.Binding
	NextItem    key.Binding
	Grab        key.Binding
	Cancel      key.Binding
	OpenCard    key.Binding
	Refresh     key.Binding
	RenameBoard key.Binding
	ShowHelp    key.Binding
	Quit        key.Binding
}

func newKeyMap(km config.KeyMappings) keyMap {
	return keyMap{
		PrevColumn:  key.NewBinding(key.WithKeys(km.PrevColumn, "left"), key.WithHelp(km.PrevColumn, "previous column")),
		NextColumn:  key.NewBinding(key.WithKeys(km.NextColumn, "right"), key.WithHelp(km.NextColumn, "next column")),
		PrevItem:    key.NewBinding(key.WithKeys(km.PrevItem, "up"), key.WithHelp(km.PrevItem, "previous card / item")),
		NextItem:    key.NewBinding(key.WithKeys(km.NextItem, "down"), key.WithHelp(km.NextItem, "next card / item")),
		Grab:        key.NewBinding(key.WithKeys(km.Grab), key.WithHelp(km.Grab, "grab / drop")),
		Cancel:      key.NewBinding(key.WithKeys(km.Cancel), key.WithHelp(km.Cancel, "cancel drag / close card")),
		OpenCard:    key.NewBinding(key.WithKeys(km.OpenCard), key.WithHelp(km.OpenCard, "open card / drop")),
		Refresh:     key.NewBinding(key.WithKeys(km.Refresh), key.WithHelp(km.Refresh, "refresh board")),
		RenameBoard: key.NewBinding(key.WithKeys(km.RenameBoard), key.WithHelp(km.RenameBoard, "rename board")),
		ShowHelp:    key.NewBinding(key.WithKeys(km.ShowHelp), key.WithHelp(km.ShowHelp, "toggle help")),
		Quit:        key.NewBinding(key.WithKeys(km.Quit, "ctrl+c"), key.WithHelp(km.Quit, "quit")),
	}
}

// FullHelp groups bindings for the help overlay
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevColumn, k.NextColumn, k.PrevItem, k.NextItem},
		{k.Grab, k.Cancel, k.OpenCard},
		{k.Refresh, k.RenameBoard, k.ShowHelp, k.Quit},
	}
}

// ShortHelp lists the bindings shown when space is tight
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.OpenCard, k.ShowHelp, k.Quit}
}
