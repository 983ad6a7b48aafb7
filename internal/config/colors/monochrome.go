package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		Accent: "#FFFFFF",

		ColumnBorder:   "#FFFFFF",
		DoneColumn:     "#D0D0D0",
		CardBorder:     "#585858",
		SelectedBorder: "#FFFFFF",
		DragBorder:     "#FFFFFF",
		ModalBorder:    "#FFFFFF",

		Title:     "#FFFFFF",
		Subtle:    "#585858",
		Normal:    "#D0D0D0",
		Completed: "#8A8A8A",

		StatusBarBg:   "#3A3A3A",
		StatusBarText: "#FFFFFF",
		ErrorFg:       "#FFFFFF",
		ErrorBg:       "#585858",
	}
}
