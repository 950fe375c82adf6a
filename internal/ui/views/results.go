package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"maxgear/internal/domain"
	"maxgear/internal/search"
)

// PromptText is shown before the first search and when a search found nothing
const PromptText = "Type a part number or brand (e.g. 'febest') to see products."

// ResultsStatus selects what the results area shows
type ResultsStatus int

const (
	ResultsLoading ResultsStatus = iota
	ResultsError
	ResultsPrompt
	ResultsList
)

// ResultRow is one product formatted for display
type ResultRow struct {
	Key      domain.ProductKey
	Brand    string
	Code     string
	Name     string
	Supplier string
	Stock    string
	Price    string // empty when the product has no price
	InStock  bool
}

// ResultsView is the projection of the search state
type ResultsView struct {
	Status  ResultsStatus
	Message string // error text for ResultsError
	Rows    []ResultRow
}

// ProjectResults maps state to a view: loading first, then error, then the
// prompt when there are no items, else the rows in server order.
func ProjectResults(st search.State) ResultsView {
	switch {
	case st.IsLoading:
		return ResultsView{Status: ResultsLoading}
	case st.Error != "":
		return ResultsView{Status: ResultsError, Message: st.Error}
	case len(st.Items) == 0:
		return ResultsView{Status: ResultsPrompt}
	}

	rows := make([]ResultRow, 0, len(st.Items))
	for _, p := range st.Items {
		rows = append(rows, NewResultRow(p))
	}
	return ResultsView{Status: ResultsList, Rows: rows}
}

// IndexOf returns the first row with key k, or -1
func (v ResultsView) IndexOf(k domain.ProductKey) int {
	for i, row := range v.Rows {
		if row.Key == k {
			return i
		}
	}
	return -1
}

// NewResultRow formats a product
func NewResultRow(p domain.Product) ResultRow {
	return ResultRow{
		Key:      p.Key(),
		Brand:    p.Brand,
		Code:     p.Code,
		Name:     p.Name,
		Supplier: p.SupplierID.String(),
		Stock:    FormatStock(p.Stock),
		Price:    FormatPrice(p.PriceEUR),
		InStock:  p.Stock > 0,
	}
}

// FormatPrice renders a price as "€ 12.50", or "" when absent
func FormatPrice(price *float64) string {
	if price == nil {
		return ""
	}
	return fmt.Sprintf("€ %.2f", *price)
}

// FormatStock renders whole quantities without decimals
func FormatStock(stock float64) string {
	return strconv.FormatFloat(stock, 'f', -1, 64)
}

// ResultsOptions carries the layout of the results area
type ResultsOptions struct {
	Width         int
	Height        int // rows available for products
	Selected      int
	Offset        int
	SpinnerFrame  string
	ShowSelection bool
}

const (
	brandWidth = 12
	codeWidth  = 14
	stockWidth = 7
	priceWidth = 11
	minName    = 10
)

// ResultsRenderer renders the results area
type ResultsRenderer struct {
	styles *Styles
}

// NewResultsRenderer creates a new results renderer
func NewResultsRenderer(styles *Styles) *ResultsRenderer {
	return &ResultsRenderer{styles: styles}
}

// Render returns the results area. For lists the column header and a
// position line are included.
func (r *ResultsRenderer) Render(v ResultsView, opts ResultsOptions) string {
	switch v.Status {
	case ResultsLoading:
		frame := opts.SpinnerFrame
		if frame != "" {
			frame += " "
		}
		return r.styles.Loading.Render(frame + "Searching…")
	case ResultsError:
		return r.styles.Error.Render("Error: " + v.Message)
	case ResultsPrompt:
		return r.styles.Prompt.Render(PromptText)
	}

	nameWidth := nameColumnWidth(opts.Width)
	lines := make([]string, 0, opts.Height+2)
	lines = append(lines, r.styles.ColumnHeader.Render(
		formatColumns("Brand", "Code", "Name", "Stock", "Price", nameWidth)))

	height := opts.Height
	if height < 1 {
		height = len(v.Rows)
	}
	end := min(len(v.Rows), opts.Offset+height)
	for i := max(0, opts.Offset); i < end; i++ {
		lines = append(lines, r.renderRow(v.Rows[i], nameWidth, opts.ShowSelection && i == opts.Selected))
	}

	lines = append(lines, r.styles.Dim.Render(positionLine(len(v.Rows), opts.Selected, opts.Offset, end)))
	return strings.Join(lines, "\n")
}

func (r *ResultsRenderer) renderRow(row ResultRow, nameWidth int, selected bool) string {
	marker := "  "
	style := r.styles.Row
	if selected {
		marker = "› "
		style = r.styles.RowSelected
	}

	stock := pad(row.Stock, stockWidth, true)
	if !row.InStock {
		stock = r.styles.OutOfStock.Inherit(style).Render(stock)
	} else {
		stock = style.Render(stock)
	}
	price := r.styles.Price.Inherit(style).Render(pad(row.Price, priceWidth, true))

	left := style.Render(marker +
		pad(row.Brand, brandWidth, false) + " " +
		pad(row.Code, codeWidth, false) + " " +
		pad(row.Name, nameWidth, false) + " ")
	return left + stock + style.Render(" ") + price
}

// RenderDetails describes the selected row in one line
func (r *ResultsRenderer) RenderDetails(row ResultRow) string {
	price := row.Price
	if price == "" {
		price = "price on request"
	}
	stock := row.Stock + " in stock"
	if !row.InStock {
		stock = "out of stock"
	}
	return r.styles.Details.Render(fmt.Sprintf("%s %s · supplier %s · %s · %s · %s",
		row.Brand, row.Code, row.Supplier, row.Name, stock, price))
}

func positionLine(total, selected, offset, end int) string {
	noun := "products"
	if total == 1 {
		noun = "product"
	}
	if end-offset >= total {
		return fmt.Sprintf("%d %s", total, noun)
	}
	return fmt.Sprintf("%d %s · %d/%d · showing %d-%d", total, noun, selected+1, total, offset+1, end)
}

func nameColumnWidth(width int) int {
	if width <= 0 {
		width = 80
	}
	// marker, four separators and the main padding
	fixed := 2 + brandWidth + codeWidth + stockWidth + priceWidth + 4 + 4
	return max(minName, width-fixed)
}

func formatColumns(brand, code, name, stock, price string, nameWidth int) string {
	return "  " + pad(brand, brandWidth, false) + " " +
		pad(code, codeWidth, false) + " " +
		pad(name, nameWidth, false) + " " +
		pad(stock, stockWidth, true) + " " +
		pad(price, priceWidth, true)
}

// pad truncates s to width cells and pads it with spaces
func pad(s string, width int, right bool) string {
	s = truncate(s, width)
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
