package vision

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Веса близки к чувствительности глаза: зелёный > красный > синий.
const (
	lumaR = 0.30
	lumaG = 0.59
	lumaB = 0.11
)

// NamedColor is a palette entry.
type NamedColor struct {
	Name string
	RGB  RGB
}

// Palette is the fixed list of reference colours. Order matters: on equal
// distance the earlier entry wins.
var Palette = mustPalette([][2]string{
	// базовые
	{"red", "#FF0000"},
	{"green", "#00FF00"},
	{"blue", "#0000FF"},
	{"yellow", "#FFFF00"},
	{"cyan", "#00FFFF"},
	{"magenta", "#FF00FF"},
	{"white", "#FFFFFF"},
	{"black", "#000000"},
	{"gray", "#808080"},
	// оттенки
	{"dark red", "#8B0000"},
	{"light red", "#FF6666"},
	{"dark green", "#006400"},
	{"light green", "#90EE90"},
	{"dark blue", "#00008B"},
	{"light blue", "#87CEEB"},
	{"light yellow", "#FFFFE0"},
	{"orange", "#FFA500"},
	{"dark orange", "#FF8C00"},
	{"pink", "#FFC0CB"},
	{"dark pink", "#FF1493"},
	{"violet", "#8A2BE2"},
	{"light violet", "#D8BFD8"},
	{"brown", "#8B4513"},
	{"light brown", "#A0522D"},
	{"beige", "#F5F5DC"},
	{"turquoise", "#40E0D0"},
	{"gold", "#FFD700"},
	{"silver", "#C0C0C0"},
})

func mustPalette(entries [][2]string) []NamedColor {
	out := make([]NamedColor, 0, len(entries))
	for _, e := range entries {
		c, err := colorful.Hex(e[1])
		if err != nil {
			panic(fmt.Sprintf("palette %s: %v", e[0], err))
		}
		r, g, b := c.RGB255()
		out = append(out, NamedColor{Name: e[0], RGB: RGB{R: r, G: g, B: b}})
	}
	return out
}

// ColorName returns the palette entry closest to c under the luminance
// weighted squared distance. The first minimal entry wins.
func ColorName(c RGB) string {
	best := ""
	bestD := -1.0
	for _, p := range Palette {
		d := weightedDistance(c, p.RGB)
		if bestD < 0 || d < bestD {
			best, bestD = p.Name, d
		}
	}
	return best
}

func weightedDistance(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return lumaR*dr*dr + lumaG*dg*dg + lumaB*db*db
}
