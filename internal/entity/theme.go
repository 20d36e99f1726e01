package entity

const (
	ColorWhite  = "white"
	ColorBlack  = "black"
	ColorRed    = "red"
	ColorGreen  = "green"
	ColorBlue   = "blue"
	ColorYellow = "yellow"
	ColorPurple = "purple"
	ColorOrange = "orange"
)

// Backgrounds are the colours a round may be painted with.
var Backgrounds = []string{ColorRed, ColorGreen, ColorBlue, ColorYellow, ColorPurple, ColorOrange}

type Theme struct {
	Background       string `json:"background"`
	ButtonBackground string `json:"button_background"`
	ButtonForeground string `json:"button_foreground"`
}

func NewTheme(background string) Theme {
	if background == ColorWhite {
		return Theme{Background: background, ButtonBackground: ColorBlue, ButtonForeground: ColorWhite}
	}

	return Theme{Background: background, ButtonBackground: ColorWhite, ButtonForeground: ColorBlack}
}

func DefaultTheme() Theme {
	return NewTheme(ColorWhite)
}
