// Enums shared by configuration, command line and compositing code live in
// their own package so neither side has to import the other.
package common

//go:generate go run github.com/abice/go-enum@v0.9.2 --marshal --names

// Corner of the canvas badge is anchored to.
// ENUM(top-left, top-right, bottom-left, bottom-right)
type Position int

// Right reports whether badge is anchored to the right edge of the canvas.
func (p Position) Right() bool {
	return p == PositionTopRight || p == PositionBottomRight
}

// Bottom reports whether badge is anchored to the bottom edge of the canvas.
func (p Position) Bottom() bool {
	return p == PositionBottomLeft || p == PositionBottomRight
}

// Display theme preference.
// ENUM(light, dark)
type Theme int
