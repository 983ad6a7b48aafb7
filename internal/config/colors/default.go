package colors

// Default returns the default color scheme (purple theme)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		// Primary
		Accent: "#874BFD",

		// Board
		ColumnBorder:   "#5F87D7",
		DoneColumn:     "#5FD75F",
		CardBorder:     "#585858",
		SelectedBorder: "#D75FD7",
		DragBorder:     "#FFD700",
		ModalBorder:    "#874BFD",

		// Text
		Title:     "#D75FD7",
		Subtle:    "#585858",
		Normal:    "#D0D0D0",
		Completed: "#5FD75F",

		// Status bar
		StatusBarBg:   "#874BFD", // Matches accent
		StatusBarText: "#D0D0D0", // Matches normal text
		ErrorFg:       "#FF0000",
		ErrorBg:       "#5F0000",
	}
}
