package stylist

import "strings"

var neutralColors = map[string]bool{
	"black":    true,
	"white":    true,
	"gray":     true,
	"grey":     true,
	"beige":    true,
	"cream":    true,
	"ivory":    true,
	"navy":     true,
	"tan":      true,
	"khaki":    true,
	"charcoal": true,
	"taupe":    true,
}

// IsNeutral reports whether a color is unlikely to clash with anything.
// Unknown colors are treated as non-neutral.
func IsNeutral(color string) bool {
	return neutralColors[strings.TrimSpace(strings.ToLower(color))]
}

// ColorsClash is deliberately narrow: neutrals never clash, and two
// non-neutral colors clash only when they are the same color. No
// complementary-color theory here.
func ColorsClash(colorA, colorB string) bool {
	a := strings.TrimSpace(strings.ToLower(colorA))
	b := strings.TrimSpace(strings.ToLower(colorB))
	if IsNeutral(a) || IsNeutral(b) {
		return false
	}
	return a == b
}

// display only, not used by scoring
var colorHexMap = map[string]string{
	"black":    "#1a1a1a",
	"white":    "#f5f5f5",
	"gray":     "#9ca3af",
	"grey":     "#9ca3af",
	"red":      "#ef4444",
	"blue":     "#3b82f6",
	"green":    "#22c55e",
	"yellow":   "#eab308",
	"orange":   "#f97316",
	"purple":   "#a855f7",
	"pink":     "#ec4899",
	"brown":    "#92400e",
	"beige":    "#d4a574",
	"cream":    "#fffdd0",
	"navy":     "#1e3a5f",
	"tan":      "#d2b48c",
	"khaki":    "#c3b091",
	"charcoal": "#36454f",
	"taupe":    "#483c32",
	"ivory":    "#fffff0",
	"teal":     "#14b8a6",
	"coral":    "#ff7f50",
	"lavender": "#e6e6fa",
	"maroon":   "#800000",
	"olive":    "#808000",
	"burgundy": "#722f37",
	"gold":     "#ffd700",
	"silver":   "#c0c0c0",
	"mint":     "#98fb98",
}

// ColorHex returns a display hex for known color names, neutral gray otherwise.
func ColorHex(color string) string {
	if hex, ok := colorHexMap[strings.TrimSpace(strings.ToLower(color))]; ok {
		return hex
	}
	return "#9ca3af"
}
