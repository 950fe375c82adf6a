package input

import (
	"maxgear/internal/search"
	"maxgear/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State  *state.AppState
	Search search.Reader
}

func (c *ModelContext) OnCatalog() bool {
	return c.State.Screen == state.ScreenCatalog
}

func (c *ModelContext) CurrentIndex() int {
	return c.State.SelectedIndex
}

// TotalItems returns the number of result rows
func (c *ModelContext) TotalItems() int {
	if c.Search == nil {
		return 0
	}
	return len(c.Search.State().Items)
}

func (c *ModelContext) LastQuery() string {
	return c.State.LastSubmitted
}
