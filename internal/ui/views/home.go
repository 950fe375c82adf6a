package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FeaturedBrands are shown on the home screen
var FeaturedBrands = []string{"Febest", "Maxgear", "Mahle", "TRW", "Bosch", "Sachs"}

func (r *Renderer) renderHome(width int) string {
	var b strings.Builder

	b.WriteString(r.styles.HeroTitle.Render("Auto parts for every car"))
	b.WriteString("\n")
	b.WriteString(r.styles.HeroText.Render("Original and aftermarket parts from trusted suppliers, with live stock and prices."))
	b.WriteString("\n")
	b.WriteString(r.styles.HeroText.Render("Press / or enter to search the catalog by part number or brand."))
	b.WriteString("\n\n")

	b.WriteString(r.styles.Title.Render("Featured brands"))
	b.WriteString("\n")
	b.WriteString(r.renderBrands(width))
	return b.String()
}

// renderBrands lays the brand chips out in as many rows as the width needs
func (r *Renderer) renderBrands(width int) string {
	if width <= 0 {
		width = 80
	}

	var rows []string
	var row []string
	rowWidth := 0
	for _, brand := range FeaturedBrands {
		chip := r.styles.BrandChip.Render(brand)
		w := lipgloss.Width(chip)
		if len(row) > 0 && rowWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, chip)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
