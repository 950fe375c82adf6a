// Package catalog defines the boundary to the remote catalog search service.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"maxgear/internal/domain"
)

// Searcher looks products up by free text
type Searcher interface {
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
}

// HealthChecker probes whether the catalog service is reachable
type HealthChecker interface {
	Health(ctx context.Context) error
}

var (
	// ErrTransport wraps network failures, timeouts and an open circuit
	ErrTransport = errors.New("catalog service unreachable")

	// ErrMalformedPayload is returned when a successful response is not a product array
	ErrMalformedPayload = errors.New("malformed catalog response")
)

// StatusError is returned for non-2xx responses
type StatusError struct {
	Status  int
	Message string // server supplied detail, may be empty
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("catalog service returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("catalog service returned %d %s", e.Status, http.StatusText(e.Status))
}

// IsClientError reports whether the response status is 4xx
func (e *StatusError) IsClientError() bool {
	return e.Status >= 400 && e.Status < 500
}

// Message turns a search error into the text shown to the user
func Message(err error) string {
	if err == nil {
		return ""
	}

	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		if statusErr.Message != "" {
			return statusErr.Message
		}
		return fmt.Sprintf("catalog service returned %d %s", statusErr.Status, http.StatusText(statusErr.Status))
	case errors.Is(err, ErrMalformedPayload):
		return "unexpected response from the catalog service"
	case errors.Is(err, context.DeadlineExceeded):
		return "catalog search timed out"
	case errors.Is(err, ErrTransport):
		return err.Error()
	default:
		return err.Error()
	}
}

type requestIDKey struct{}

// WithRequestID attaches a correlation id that transports forward to the service
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id stored by WithRequestID
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
