package main

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGoals(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    map[string]string
		wantErr bool
	}{
		{name: "single", args: []string{"food=400"}, want: map[string]string{"food": "400"}},
		{name: "spaces and decimals", args: []string{" transport = 12.50", "rent=950"}, want: map[string]string{"transport": "12.5", "rent": "950"}},
		{name: "missing separator", args: []string{"food"}, wantErr: true},
		{name: "empty category", args: []string{"=10"}, wantErr: true},
		{name: "bad amount", args: []string{"food=lots"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goals, err := parseGoals(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, goals, len(tt.want))
			for _, g := range goals {
				want, ok := tt.want[g.Category]
				require.True(t, ok, "unexpected category %q", g.Category)
				assert.True(t, decimal.RequireFromString(want).Equal(g.Goal), "goal for %s", g.Category)
			}
		})
	}
}
