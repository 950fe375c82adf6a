package search

import (
	"slices"
	"time"

	"maxgear/internal/domain"
)

// State is the snapshot the results screen is projected from
type State struct {
	Items     []domain.Product
	IsLoading bool
	Error     string // empty when there is no error

	// Query is the text of the last dispatched search
	Query string
	// UpdatedAt is the time of the last settled transition
	UpdatedAt time.Time
}

// HasError reports whether the last search failed
func (s State) HasError() bool {
	return s.Error != ""
}

// Reader is the read side of the store, handed to the UI
type Reader interface {
	State() State
}

// Mutator is the write side of the store. Only the Dispatcher holds one.
type Mutator interface {
	// Start marks a search in flight. Items stay visible and the error is cleared.
	Start(q Query)
	// Succeed replaces the items, even with an empty list.
	Succeed(items []domain.Product)
	// Fail records message and leaves the items untouched.
	Fail(message string)
}

// Store holds the search state. It is not safe for concurrent use; every
// call is expected to come from the Bubble Tea update loop.
type Store struct {
	state State
	now   func() time.Time
}

var (
	_ Reader  = (*Store)(nil)
	_ Mutator = (*Store)(nil)
)

// NewStore creates a store with no items, not loading and no error
func NewStore() *Store {
	return &Store{
		state: State{Items: []domain.Product{}},
		now:   time.Now,
	}
}

// State returns a copy of the current state
func (s *Store) State() State {
	st := s.state
	st.Items = slices.Clone(s.state.Items)
	return st
}

func (s *Store) Start(q Query) {
	s.state.IsLoading = true
	s.state.Error = ""
	s.state.Query = q.String()
}

func (s *Store) Succeed(items []domain.Product) {
	if items == nil {
		items = []domain.Product{}
	}
	s.state.Items = slices.Clone(items)
	s.state.IsLoading = false
	s.state.Error = ""
	s.state.UpdatedAt = s.now()
}

func (s *Store) Fail(message string) {
	s.state.IsLoading = false
	s.state.Error = message
	s.state.UpdatedAt = s.now()
}
