package chart

import (
	"errors"
	"fmt"
	"image/color"
)

// ErrUnknownPalette marks a colour-palette name with no registered palette.
var ErrUnknownPalette = errors.New("unknown colour palette")

// DefaultPalette is the palette used when the caller does not name one.
const DefaultPalette = "Isfahan1"

// Fixed categorical palettes. Colors are assigned to groups in keyword
// order and cycle when there are more groups than colors.
var palettes = map[string][]color.RGBA{
	"Isfahan1": {
		rgb(0x4e, 0x39, 0x10),
		rgb(0x84, 0x5d, 0x29),
		rgb(0xd8, 0xc2, 0x9d),
		rgb(0x4f, 0xb6, 0xca),
		rgb(0x17, 0x8f, 0x92),
		rgb(0x17, 0x5f, 0x5d),
		rgb(0x1d, 0x1f, 0x54),
	},
	"Java": {
		rgb(0x66, 0x31, 0x71),
		rgb(0xcf, 0x3a, 0x36),
		rgb(0xea, 0x74, 0x28),
		rgb(0xe2, 0x99, 0x8a),
		rgb(0x0c, 0x71, 0x56),
	},
	"Hiroshige": {
		rgb(0xe7, 0x62, 0x54),
		rgb(0xef, 0x8a, 0x47),
		rgb(0xf7, 0xaa, 0x58),
		rgb(0xff, 0xd0, 0x6f),
		rgb(0xff, 0xe6, 0xb7),
		rgb(0xaa, 0xdc, 0xe0),
		rgb(0x72, 0xbc, 0xd5),
		rgb(0x52, 0x8f, 0xad),
		rgb(0x37, 0x67, 0x95),
		rgb(0x1e, 0x46, 0x6e),
	},
}

// Palette returns the named categorical palette.
func Palette(name string) ([]color.RGBA, error) {
	p, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}
	return p, nil
}

// PaletteNames lists the registered palette names.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	return names
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
