package render

// RGB is a plain color triple in gofpdf's 0-255 space.
type RGB struct {
	R, G, B int
}

// Theme holds every visual constant the renderer uses. It is built
// once and passed by value; render calls never touch shared mutable
// style state.
type Theme struct {
	FontFamily string

	Primary    RGB
	Muted      RGB
	Border     RGB
	CardFill   RGB
	Background RGB
	White      RGB

	PageMargin   float64
	FooterHeight float64

	LogoSize    float64
	ThumbSize   float64
	RowHeight   float64
	LineHeight  float64
	SocialIcon  float64
	CardPadding float64

	// Item table column widths as fractions of the content width:
	// image, description, quantity, price, total.
	Columns [5]float64

	// Totals card width as a fraction of the content width.
	CardWidth float64

	// Decorative footer icons, same static assets the admin UI embeds.
	SocialIconURLs []string
}

// DefaultTheme mirrors the admin UI's monochrome invoice styling.
func DefaultTheme() Theme {
	return Theme{
		FontFamily: "Helvetica",

		Primary:    RGB{0, 0, 0},
		Muted:      RGB{102, 102, 102},
		Border:     RGB{229, 229, 229},
		CardFill:   RGB{250, 250, 250},
		Background: RGB{240, 240, 240},
		White:      RGB{255, 255, 255},

		PageMargin:   12,
		FooterHeight: 34,

		LogoSize:    12,
		ThumbSize:   9,
		RowHeight:   12,
		LineHeight:  4,
		SocialIcon:  5,
		CardPadding: 4,

		Columns:   [5]float64{0.10, 0.40, 0.15, 0.15, 0.20},
		CardWidth: 0.40,

		SocialIconURLs: []string{
			"https://cdn-icons-png.flaticon.com/512/20/20673.png",
			"https://cdn-icons-png.flaticon.com/512/1384/1384031.png",
			"https://cdn-icons-png.flaticon.com/512/3670/3670211.png",
		},
	}
}
