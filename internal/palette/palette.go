// Package palette generates evenly spaced colors for charts and track
// labels on conference pages.
package palette

import (
	"fmt"
	"math"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultCount is the palette size used when none is given.
const DefaultCount = 20

// MaxCount is the largest palette handed out; past one color per degree
// hues repeat.
const MaxCount = 360

const (
	saturation = 0.5
	lightness  = 0.5
)

// Hue returns the hue in degrees of color i (1-based) out of n.
// The last color wraps around to 0.
func Hue(i, n int) float64 {
	if n < 1 {
		n = 1
	}
	return math.Mod(float64(i)*(360/float64(n)), 360)
}

func hues(n int) []float64 {
	if n <= 1 {
		n = 1
	}
	out := make([]float64, n)
	for i := 1; i <= n; i++ {
		out[i-1] = Hue(i, n)
	}
	return out
}

// UniqueColors returns n CSS hsl() colors with evenly spaced hues at 50%
// saturation and lightness. n below 1 yields a single color.
func UniqueColors(n int) []string {
	hs := hues(n)
	colors := make([]string, len(hs))
	for i, h := range hs {
		colors[i] = fmt.Sprintf("hsl(%s, 50%%, 50%%)", strconv.FormatFloat(h, 'f', -1, 64))
	}
	return colors
}

// UniqueHexColors returns the same palette as UniqueColors as #rrggbb.
func UniqueHexColors(n int) []string {
	hs := hues(n)
	colors := make([]string, len(hs))
	for i, h := range hs {
		colors[i] = colorful.Hsl(h, saturation, lightness).Hex()
	}
	return colors
}
