package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw     string
		want    Query
		wantErr bool
	}{
		{raw: "febest", want: "febest"},
		{raw: "  0130-ACV40\t", want: "0130-ACV40"},
		{raw: "oil filter", want: "oil filter"},
		{raw: "", wantErr: true},
		{raw: "   ", wantErr: true},
		{raw: "\n\t ", wantErr: true},
	}

	for _, tt := range tests {
		q, err := Normalize(tt.raw)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrEmptyQuery, "raw %q", tt.raw)
			assert.Empty(t, q)
			continue
		}
		assert.NoError(t, err, "raw %q", tt.raw)
		assert.Equal(t, tt.want, q)
	}
}
