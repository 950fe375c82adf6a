package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "status with detail", err: &StatusError{Status: http.StatusBadRequest, Message: "query is required"}, want: "query is required"},
		{name: "status without detail", err: fmt.Errorf("search: %w", &StatusError{Status: http.StatusBadGateway}), want: "catalog service returned 502 Bad Gateway"},
		{name: "malformed", err: fmt.Errorf("%w: invalid character", ErrMalformedPayload), want: "unexpected response from the catalog service"},
		{name: "timeout", err: fmt.Errorf("%w: %w", ErrTransport, context.DeadlineExceeded), want: "catalog search timed out"},
		{name: "transport", err: fmt.Errorf("%w: connection refused", ErrTransport), want: "catalog service unreachable: connection refused"},
		{name: "other", err: errors.New("network down"), want: "network down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}

func TestStatusErrorClassification(t *testing.T) {
	assert.True(t, (&StatusError{Status: 404}).IsClientError())
	assert.False(t, (&StatusError{Status: 503}).IsClientError())
	assert.Equal(t, "catalog service returned 503: maintenance", (&StatusError{Status: 503, Message: "maintenance"}).Error())
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
}
