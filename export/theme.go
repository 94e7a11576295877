package export

import (
	"image/color"

	"bic/common"
)

var (
	lightBackground = color.RGBA{0xff, 0xff, 0xff, 0xff}
	darkBackground  = color.RGBA{0x1e, 0x1e, 0x1e, 0xff}
)

// Background returns preview background color for theme.
func Background(theme common.Theme) color.Color {
	if theme == common.ThemeDark {
		return darkBackground
	}
	return lightBackground
}
