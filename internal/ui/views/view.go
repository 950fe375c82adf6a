package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"

	"maxgear/internal/search"
	"maxgear/internal/ui/state"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int
	Screen state.Screen

	Search        search.State
	SearchBar     string // rendered text input
	SearchFocused bool

	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int
	SpinnerFrame   string

	Health        state.Health
	HealthDetail  string
	StatusMessage string

	ShowHelp  bool
	HelpModel help.Model
	KeyMap    help.KeyMap
	Year      int
}

// Lines taken on the catalog screen by everything except the product rows:
// padding 2, header 2, title 1, search box 3, gap 1, column header 1,
// position line 1, details 1, footer 3 and one spare.
const catalogChromeLines = 16

// fullHelpLines is the extra height of the expanded help
const fullHelpLines = 3

// ResultsViewportHeight returns how many product rows fit on the catalog screen
func ResultsViewportHeight(height int, showHelp bool) int {
	rows := height - catalogChromeLines
	if showHelp {
		rows -= fullHelpLines
	}
	return max(1, rows)
}

// Renderer handles all view rendering
type Renderer struct {
	styles  *Styles
	results *ResultsRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:  styles,
		results: NewResultsRenderer(styles),
	}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	width := vs.Width
	if width <= 0 {
		width = 80
	}
	inner := width - 4 // main padding

	content := &strings.Builder{}
	content.WriteString(r.renderHeader(vs.Screen))
	content.WriteString("\n\n")

	switch vs.Screen {
	case state.ScreenCatalog:
		content.WriteString(r.renderCatalog(vs, inner))
	default:
		content.WriteString(r.renderHome(inner))
	}

	footer := r.renderFooter(vs, inner)

	// Push the footer to the bottom of the screen
	if vs.Height > 0 {
		used := strings.Count(content.String(), "\n") + 1 + strings.Count(footer, "\n") + 1
		if gap := vs.Height - 2 - used; gap > 0 {
			content.WriteString(strings.Repeat("\n", gap))
		}
	}
	content.WriteString("\n")
	content.WriteString(footer)

	mainStyle := r.styles.Main
	if vs.Height > 0 {
		mainStyle = mainStyle.MaxHeight(vs.Height)
	}
	return mainStyle.Render(content.String())
}

func (r *Renderer) renderCatalog(vs ViewState, width int) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render("Auto parts search"))
	b.WriteString("\n")

	box := r.styles.SearchBox
	if vs.SearchFocused {
		box = r.styles.SearchFocused
	}
	b.WriteString(box.Width(max(20, width-2)).Render(vs.SearchBar))
	b.WriteString("\n\n")

	view := ProjectResults(vs.Search)
	b.WriteString(r.results.Render(view, ResultsOptions{
		Width:         width,
		Height:        vs.ViewportHeight,
		Selected:      vs.SelectedIndex,
		Offset:        vs.ViewportOffset,
		SpinnerFrame:  vs.SpinnerFrame,
		ShowSelection: true,
	}))

	if view.Status == ResultsList && vs.SelectedIndex >= 0 && vs.SelectedIndex < len(view.Rows) {
		b.WriteString("\n")
		b.WriteString(r.results.RenderDetails(view.Rows[vs.SelectedIndex]))
	}
	return b.String()
}
