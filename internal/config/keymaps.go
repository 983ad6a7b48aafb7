package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Navigation
	PrevColumn string `yaml:"prev_column"`
	NextColumn string `yaml:"next_column"`
	PrevItem   string `yaml:"prev_item"`
	NextItem   string `yaml:"next_item"`

	// Dragging
	Grab   string `yaml:"grab"` // Picks up or drops the focused card, column or checklist item
	Cancel string `yaml:"cancel"`

	// Board
	OpenCard    string `yaml:"open_card"`
	Refresh     string `yaml:"refresh"`
	RenameBoard string `yaml:"rename_board"`

	// Other
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		PrevColumn: "h",
		NextColumn: "l",
		PrevItem:   "k",
		NextItem:   "j",

		Grab:   "space",
		Cancel: "esc",

		OpenCard:    "enter",
		Refresh:     "r",
		RenameBoard: "R",

		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	for _, p := range []struct{ dst, def *string }{
		{&k.PrevColumn, &defaults.PrevColumn},
		{&k.NextColumn, &defaults.NextColumn},
		{&k.PrevItem, &defaults.PrevItem},
		{&k.NextItem, &defaults.NextItem},
		{&k.Grab, &defaults.Grab},
		{&k.Cancel, &defaults.Cancel},
		{&k.OpenCard, &defaults.OpenCard},
		{&k.Refresh, &defaults.Refresh},
		{&k.RenameBoard, &defaults.RenameBoard},
		{&k.ShowHelp, &defaults.ShowHelp},
		{&k.Quit, &defaults.Quit},
	} {
		if *p.dst == "" {
			*p.dst = *p.def
		}
	}
}
