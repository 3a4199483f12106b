package palette

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Swatch renders one coloured block per stop, for terminal previews.
func Swatch(stops []string) string {
	if len(stops) == 0 {
		return swatchBlock(DefaultColor.R, DefaultColor.G, DefaultColor.B)
	}
	var sb strings.Builder
	for _, s := range stops {
		c, _ := ParseHex(s)
		sb.WriteString(swatchBlock(c.R, c.G, c.B))
	}
	return sb.String()
}

func swatchBlock(r, g, b uint8) string {
	hex := fmt.Sprintf("#%02x%02x%02x", r, g, b)
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("   ")
}
