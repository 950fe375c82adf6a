// Package search owns the query-driven product search lifecycle: input
// normalization, request dispatch and the state the results screen renders.
package search

import (
	"errors"
	"strings"
)

// ErrEmptyQuery is returned for input that is empty after trimming
var ErrEmptyQuery = errors.New("search query is empty")

// Query is trimmed, non-empty search text
type Query string

// Normalize trims raw and rejects blank input
func Normalize(raw string) (Query, error) {
	q := strings.TrimSpace(raw)
	if q == "" {
		return "", ErrEmptyQuery
	}
	return Query(q), nil
}

func (q Query) String() string { return string(q) }
