package theme

import "github.com/thenoetrevino/corkboard/internal/config/colors"

// Colors holds the current theme colors, initialized by Init
var (
	Accent         string
	ColumnBorder   string
	DoneColumn     string
	CardBorder     string
	SelectedBorder string
	DragBorder     string
	ModalBorder    string
	Title          string
	Subtle         string
	Normal         string
	Completed      string
	StatusBarBg    string
	StatusBarText  string
	ErrorFg        string
	ErrorBg        string
)

// Init initializes the theme colors from the given color scheme
func Init(scheme colors.ColorScheme) {
	Accent = scheme.Accent
	ColumnBorder = scheme.ColumnBorder
	DoneColumn = scheme.DoneColumn
	CardBorder = scheme.CardBorder
	SelectedBorder = scheme.SelectedBorder
	DragBorder = scheme.DragBorder
	ModalBorder = scheme.ModalBorder
	Title = scheme.Title
	Subtle = scheme.Subtle
	Normal = scheme.Normal
	Completed = scheme.Completed
	StatusBarBg = scheme.StatusBarBg
	StatusBarText = scheme.StatusBarText
	ErrorFg = scheme.ErrorFg
	ErrorBg = scheme.ErrorBg
}
