package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Logo          lipgloss.Style
	NavItem       lipgloss.Style
	NavActive     lipgloss.Style
	Title         lipgloss.Style
	HeroTitle     lipgloss.Style
	HeroText      lipgloss.Style
	BrandChip     lipgloss.Style
	SearchBox     lipgloss.Style
	SearchFocused lipgloss.Style
	ColumnHeader  lipgloss.Style
	Row           lipgloss.Style
	RowSelected   lipgloss.Style
	Price         lipgloss.Style
	OutOfStock    lipgloss.Style
	Details       lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Error         lipgloss.Style
	Loading       lipgloss.Style
	Prompt        lipgloss.Style
	Online        lipgloss.Style
	Offline       lipgloss.Style
	Status        lipgloss.Style
	Contact       lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Logo:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
		NavItem:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Padding(0, 1),
		NavActive: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("208")).Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		HeroTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208")).MarginBottom(1),
		HeroText:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		BrandChip: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 2).
			MarginRight(1),
		SearchBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		SearchFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(0, 1),
		ColumnHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Row:          lipgloss.NewStyle(),
		RowSelected:  lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		Price:        lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		OutOfStock:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Details:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Dim:          lipgloss.NewStyle().Faint(true),
		Help:         lipgloss.NewStyle().Faint(true),
		Main:         lipgloss.NewStyle().Padding(1, 2),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true), // red
		Loading:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),            // yellow
		Prompt:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Online:       lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Offline:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Contact:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
