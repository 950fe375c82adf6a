package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"maxgear/internal/domain"
)

// ResultsTable renders products as a bordered table for the pager
func ResultsTable(query string, items []domain.Product) string {
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		row := NewResultRow(p)
		rows = append(rows, []string{row.Brand, row.Code, row.Name, row.Supplier, row.Stock, row.Price})
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))).
		Headers("Brand", "Code", "Name", "Supplier", "Stock", "Price").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			if col >= 4 {
				s = s.Align(lipgloss.Right)
			}
			return s
		})

	title := fmt.Sprintf("Search results for %q (%d)", query, len(items))
	return lipgloss.NewStyle().Bold(true).Render(title) + "\n\n" + t.Render() + "\n"
}

// HelpContent renders the key reference shown in the help pager
func HelpContent(groups map[string][]key.Binding, order []string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)
	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Maxgear Help"))
	b.WriteString("\n")

	for _, name := range order {
		b.WriteString(sectionStyle.Render(name))
		b.WriteString("\n")
		for _, binding := range groups[name] {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-10s", h.Key)), descStyle.Render(h.Desc)))
		}
	}
	return b.String()
}
