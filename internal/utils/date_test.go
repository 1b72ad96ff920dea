package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDateExpression(t *testing.T) {
	now := time.Date(2025, 1, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		expression string
		want       string
		wantErr    bool
	}{
		{name: "empty defaults to today", expression: "", want: "2025-01-10"},
		{name: "today", expression: "today", want: "2025-01-10"},
		{name: "today uppercase", expression: "TODAY", want: "2025-01-10"},
		{name: "yesterday", expression: "yesterday", want: "2025-01-09"},
		{name: "spanish today", expression: "hoy", want: "2025-01-10"},
		{name: "spanish yesterday", expression: "ayer", want: "2025-01-09"},
		{name: "dd/mm/yy", expression: "05/01/25", want: "2025-01-05"},
		{name: "dd/mm/yyyy", expression: "05/01/2025", want: "2025-01-05"},
		{name: "canonical passthrough", expression: "2024-12-31", want: "2024-12-31"},
		{name: "free text rejected", expression: "last tuesday", wantErr: true},
		{name: "garbage rejected", expression: "99/99/99", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDateExpression(tt.expression, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
