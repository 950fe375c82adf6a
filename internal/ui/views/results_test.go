package views

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maxgear/internal/domain"
	"maxgear/internal/search"
)

func febest() domain.Product {
	return domain.Product{
		Code:       "F-123",
		SupplierID: "S1",
		Brand:      "Febest",
		Name:       "Bushing",
		Stock:      5,
		PriceEUR:   domain.Price(12.5),
	}
}

func TestProjectResultsPriority(t *testing.T) {
	items := []domain.Product{febest()}

	tests := []struct {
		name  string
		state search.State
		want  ResultsStatus
	}{
		{"loading wins over error and items", search.State{IsLoading: true, Error: "boom", Items: items}, ResultsLoading},
		{"error wins over items", search.State{Error: "boom", Items: items}, ResultsError},
		{"empty shows prompt", search.State{Items: []domain.Product{}}, ResultsPrompt},
		{"nil items shows prompt", search.State{}, ResultsPrompt},
		{"items", search.State{Items: items}, ResultsList},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectResults(tt.state).Status)
		})
	}
}

func TestProjectResultsKeepsDuplicatesInOrder(t *testing.T) {
	a := febest()
	b := febest()
	b.Name = "Bushing, second listing"
	c := febest()
	c.SupplierID = "S2"

	view := ProjectResults(search.State{Items: []domain.Product{a, b, c}})
	require.Len(t, view.Rows, 3)
	assert.Equal(t, a.Key(), view.Rows[0].Key)
	assert.Equal(t, a.Key(), view.Rows[1].Key)
	assert.Equal(t, "Bushing, second listing", view.Rows[1].Name)
	assert.Equal(t, c.Key(), view.Rows[2].Key)

	// duplicates resolve to the first listing
	assert.Equal(t, 0, view.IndexOf(a.Key()))
	assert.Equal(t, 2, view.IndexOf(c.Key()))
	assert.Equal(t, -1, view.IndexOf(domain.ProductKey{Code: "F", SupplierID: "123-S1"}))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "€ 12.50", FormatPrice(domain.Price(12.5)))
	assert.Equal(t, "€ 0.00", FormatPrice(domain.Price(0)))
	assert.Equal(t, "€ 10.00", FormatPrice(domain.Price(9.999)))
	assert.Equal(t, "", FormatPrice(nil))
}

func TestFormatStock(t *testing.T) {
	assert.Equal(t, "5", FormatStock(5))
	assert.Equal(t, "0", FormatStock(0))
	assert.Equal(t, "2.5", FormatStock(2.5))
}

func TestRenderSuccessScenario(t *testing.T) {
	r := NewResultsRenderer(NewStyles())
	out := r.Render(ProjectResults(search.State{Items: []domain.Product{febest()}}), ResultsOptions{Width: 100, Height: 5})

	assert.Contains(t, out, "Febest")
	assert.Contains(t, out, "F-123")
	assert.Contains(t, out, "Bushing")
	assert.Contains(t, out, "€ 12.50")
	assert.Contains(t, out, "1 product")
	assert.NotContains(t, out, PromptText)
}

func TestRenderErrorScenario(t *testing.T) {
	r := NewResultsRenderer(NewStyles())
	out := r.Render(ProjectResults(search.State{Items: []domain.Product{}, Error: "catalog service unreachable"}), ResultsOptions{})

	assert.Equal(t, "Error: catalog service unreachable", out)
	assert.NotContains(t, out, PromptText)
}

func TestRenderLoadingAndPrompt(t *testing.T) {
	r := NewResultsRenderer(NewStyles())

	out := r.Render(ProjectResults(search.State{IsLoading: true}), ResultsOptions{SpinnerFrame: "⠋"})
	assert.Equal(t, "⠋ Searching…", out)

	out = r.Render(ProjectResults(search.State{Items: []domain.Product{}}), ResultsOptions{})
	assert.Equal(t, PromptText, out)
}

func TestRenderMissingPriceIsBlank(t *testing.T) {
	p := febest()
	p.PriceEUR = nil

	r := NewResultsRenderer(NewStyles())
	out := r.Render(ProjectResults(search.State{Items: []domain.Product{p}}), ResultsOptions{Width: 100})

	assert.NotContains(t, out, "€")
	assert.Contains(t, r.RenderDetails(NewResultRow(p)), "price on request")
}

func TestRenderWindow(t *testing.T) {
	items := make([]domain.Product, 10)
	for i := range items {
		items[i] = domain.Product{Code: fmt.Sprintf("CODE-%02d", i), SupplierID: "1", Brand: "TRW", Stock: 1}
	}

	r := NewResultsRenderer(NewStyles())
	out := r.Render(ProjectResults(search.State{Items: items}), ResultsOptions{
		Width:         100,
		Height:        3,
		Selected:      3,
		Offset:        2,
		ShowSelection: true,
	})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "CODE-02")
	assert.Contains(t, lines[2], "› ")
	assert.Contains(t, lines[2], "CODE-03")
	assert.Contains(t, lines[3], "CODE-04")
	assert.NotContains(t, out, "CODE-05")
	assert.Contains(t, lines[4], "10 products · 4/10 · showing 3-5")
}

func TestTruncateLongNames(t *testing.T) {
	assert.Equal(t, "abc", pad("abc", 3, false))
	assert.Equal(t, "ab…", pad("abcdef", 3, false))
	assert.Equal(t, "  abc", pad("abc", 5, true))
}

func TestResultsViewportHeight(t *testing.T) {
	assert.Equal(t, 24, ResultsViewportHeight(40, false))
	assert.Equal(t, 21, ResultsViewportHeight(40, true))
	assert.Equal(t, 1, ResultsViewportHeight(5, false))
}
