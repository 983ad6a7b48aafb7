package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome", "wave")
	Preset string `yaml:"preset"`

	// Primary accent color (used for the focused column and titles)
	Accent string `yaml:"accent"`

	// Board elements
	ColumnBorder   string `yaml:"column_border"`
	DoneColumn     string `yaml:"done_column"`
	CardBorder     string `yaml:"card_border"`
	SelectedBorder string `yaml:"selected_border"`
	DragBorder     string `yaml:"drag_border"` // Card or column being dragged
	ModalBorder    string `yaml:"modal_border"`

	// Text colors
	Title     string `yaml:"title"`
	Subtle    string `yaml:"subtle"` // Muted/placeholder text
	Normal    string `yaml:"normal"`
	Completed string `yaml:"completed"`

	// Status bar
	StatusBarBg   string `yaml:"status_bar_bg"`
	StatusBarText string `yaml:"status_bar_text"`
	ErrorFg       string `yaml:"error_fg"`
	ErrorBg       string `yaml:"error_bg"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	case "wave":
		return Wave()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	c.fill(GetPreset(c.Preset))
}

// MergeFrom overrides colors with every non-empty value of other.
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	for _, p := range []struct{ dst, src *string }{
		{&c.Preset, &other.Preset},
		{&c.Accent, &other.Accent},
		{&c.ColumnBorder, &other.ColumnBorder},
		{&c.DoneColumn, &other.DoneColumn},
		{&c.CardBorder, &other.CardBorder},
		{&c.SelectedBorder, &other.SelectedBorder},
		{&c.DragBorder, &other.DragBorder},
		{&c.ModalBorder, &other.ModalBorder},
		{&c.Title, &other.Title},
		{&c.Subtle, &other.Subtle},
		{&c.Normal, &other.Normal},
		{&c.Completed, &other.Completed},
		{&c.StatusBarBg, &other.StatusBarBg},
		{&c.StatusBarText, &other.StatusBarText},
		{&c.ErrorFg, &other.ErrorFg},
		{&c.ErrorBg, &other.ErrorBg},
	} {
		if *p.src != "" {
			*p.dst = *p.src
		}
	}
}

func (c *ColorScheme) fill(preset *ColorScheme) {
	merged := *preset
	merged.MergeFrom(*c)
	*c = merged
}
