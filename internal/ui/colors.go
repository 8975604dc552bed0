package ui

import "image/color"

// Theme colors - these are variables so they can be modified for dark mode
var (
	colWhite       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colBlack       = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	colGray        = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colLightGray   = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	colSelected    = color.NRGBA{R: 200, G: 220, B: 255, A: 255}
	colSidebar     = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colAccent      = color.NRGBA{R: 66, G: 133, B: 244, A: 255}
	colShadow      = color.NRGBA{R: 0, G: 0, B: 0, A: 60}
	colDropTarget  = color.NRGBA{R: 66, G: 133, B: 244, A: 90}  // Grouping highlight
	colDetachHint  = color.NRGBA{R: 66, G: 133, B: 244, A: 40}  // Strip tint while detaching
	colPinnedZone  = color.NRGBA{R: 255, G: 193, B: 7, A: 60}   // Pinned region while pinning
	colSplitDivide = color.NRGBA{R: 160, G: 160, B: 160, A: 255}
)

var lightPalette = [...]color.NRGBA{
	{R: 255, G: 255, B: 255, A: 255},
	{R: 0, G: 0, B: 0, A: 255},
	{R: 100, G: 100, B: 100, A: 255},
	{R: 200, G: 200, B: 200, A: 255},
	{R: 200, G: 220, B: 255, A: 255},
	{R: 245, G: 245, B: 245, A: 255},
}

var darkPalette = [...]color.NRGBA{
	{R: 48, G: 48, B: 52, A: 255},
	{R: 230, G: 230, B: 230, A: 255},
	{R: 160, G: 160, B: 160, A: 255},
	{R: 80, G: 80, B: 86, A: 255},
	{R: 45, G: 70, B: 110, A: 255},
	{R: 32, G: 32, B: 36, A: 255},
}

// applyPalette switches the strip colors between light and dark
func applyPalette(dark bool) {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	colWhite, colBlack, colGray, colLightGray, colSelected, colSidebar = p[0], p[1], p[2], p[3], p[4], p[5]
}

// groupColors maps group color names to chip colors
var groupColors = map[string]color.NRGBA{
	"blue":   {R: 66, G: 133, B: 244, A: 255},
	"purple": {R: 103, G: 58, B: 183, A: 255},
	"cyan":   {R: 0, G: 172, B: 193, A: 255},
	"orange": {R: 230, G: 81, B: 0, A: 255},
	"yellow": {R: 249, G: 168, B: 37, A: 255},
	"pink":   {R: 216, G: 27, B: 96, A: 255},
	"green":  {R: 67, G: 160, B: 71, A: 255},
	"red":    {R: 220, G: 53, B: 69, A: 255},
}

func groupColor(name string) color.NRGBA {
	if c, ok := groupColors[name]; ok {
		return c
	}
	return colGray
}
