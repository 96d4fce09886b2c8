// Package theme holds the light and dark palettes of the shelf and the row
// tones used to color grid rows.
package theme

// Palette is the set of colors applied to the window chrome. Colors are
// "#rrggbb" strings.
type Palette struct {
	Name        string
	Dark        bool
	Background  string
	Foreground  string
	Tab         string
	TabSelected string
	Ribbon      string
	Group       string
	Button      string
	ButtonText  string
	Entry       string
	Link        string
	AddText     string
	DeleteText  string
}

// Light returns the light palette.
func Light() Palette {
	return Palette{
		Name:        "light",
		Background:  "#f3f6fa",
		Foreground:  "#23272e",
		Tab:         "#e6eef7",
		TabSelected: "#e6eef7",
		Ribbon:      "#e6eef7",
		Group:       "#e0e7ef",
		Button:      "#e6eef7",
		ButtonText:  "#23272e",
		Entry:       "#ffffff",
		Link:        "#1a0dab",
		AddText:     "#00aa00",
		DeleteText:  "#cc0000",
	}
}

// DarkPalette returns the dark palette.
func DarkPalette() Palette {
	return Palette{
		Name:        "dark",
		Dark:        true,
		Background:  "#23272e",
		Foreground:  "#f3f6fa",
		Tab:         "#23272e",
		TabSelected: "#31343a",
		Ribbon:      "#31343a",
		Group:       "#23272e",
		Button:      "#31343a",
		ButtonText:  "#f3f6fa",
		Entry:       "#2b2f36",
		Link:        "#7baaff",
		AddText:     "#00aa00",
		DeleteText:  "#cc0000",
	}
}

// For returns the dark palette when dark is set, the light one otherwise.
func For(dark bool) Palette {
	if dark {
		return DarkPalette()
	}
	return Light()
}
