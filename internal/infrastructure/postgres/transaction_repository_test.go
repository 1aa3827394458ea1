package postgres

import (
	"reflect"
	"testing"

	"expensync/internal/domain/transaction"
)

func TestEscapeLike(t *testing.T) {
	tests := map[string]string{
		"coffee":   "coffee",
		"50%":      `50\%`,
		"a_b":      `a\_b`,
		`back\sla`: `back\\sla`,
	}
	for in, want := range tests {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestListFilter(t *testing.T) {
	tests := []struct {
		name      string
		q         transaction.ListQuery
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "owner only",
			q:         transaction.ListQuery{},
			wantWhere: "user_id = $1",
			wantArgs:  []any{int64(7)},
		},
		{
			name:      "filter",
			q:         transaction.ListQuery{Filter: "Food"},
			wantWhere: "user_id = $1 AND category = $2",
			wantArgs:  []any{int64(7), "Food"},
		},
		{
			name:      "search and filter",
			q:         transaction.ListQuery{Search: "50%", Filter: "Food"},
			wantWhere: "user_id = $1 AND (title ILIKE $2 OR note ILIKE $2 OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $2)) AND category = $3",
			wantArgs:  []any{int64(7), `%50\%%`, "Food"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := listFilter(7, tt.q)
			if where != tt.wantWhere {
				t.Errorf("where = %q, want %q", where, tt.wantWhere)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %#v, want %#v", args, tt.wantArgs)
			}
		})
	}
}
