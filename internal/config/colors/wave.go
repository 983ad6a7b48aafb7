package colors

// Wave returns the kanagawa wave color scheme
func Wave() *ColorScheme {
	return &ColorScheme{
		Preset: "wave",

		Accent: "#957FB8", // oniViolet

		ColumnBorder:   "#54546D", // sumiInk6
		DoneColumn:     "#98BB6C", // springGreen
		CardBorder:     "#2A2A37", // sumiInk4
		SelectedBorder: "#7AA89F", // waveAqua2
		DragBorder:     "#FF9E3B", // roninYellow
		ModalBorder:    "#957FB8",

		Title:     "#7E9CD8", // crystalBlue
		Subtle:    "#727169", // fujiGray
		Normal:    "#DCD7BA", // fujiWhite
		Completed: "#98BB6C",

		StatusBarBg:   "#223249", // waveBlue1
		StatusBarText: "#DCD7BA",
		ErrorFg:       "#E82424", // samuraiRed
		ErrorBg:       "#43242B", // winterRed
	}
}
