package categorygoal

import (
	"encoding/json"
	"strings"

	"expensync/internal/domain/validation"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidFormat = validation.New("invalid data format")
	ErrInvalidGoal   = validation.New("invalid category or goal")
)

// Goal is a monthly spending ceiling for one category.
type Goal struct {
	Category string          `json:"category"`
	Goal     decimal.Decimal `json:"goal"`
}

type rawGoal struct {
	Category *string        `json:"category"`
	Goal     flexibleNumber `json:"goal"`
}

// flexibleNumber accepts a JSON number or a numeric string.
type flexibleNumber struct {
	value *decimal.Decimal
}

func (f *flexibleNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return ErrInvalidGoal
		}
		f.value = &d
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return ErrInvalidGoal
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return ErrInvalidGoal
	}
	f.value = &d
	return nil
}

// ParseGoals decodes the categoryGoals payload. A non-array payload yields
// ErrInvalidFormat; any entry without a category or a non-negative goal yields
// ErrInvalidGoal.
func ParseGoals(raw json.RawMessage) ([]Goal, error) {
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "[") {
		return nil, ErrInvalidFormat
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, ErrInvalidFormat
	}

	goals := make([]Goal, 0, len(entries))
	for _, entry := range entries {
		var g rawGoal
		if err := json.Unmarshal(entry, &g); err != nil {
			return nil, ErrInvalidGoal
		}
		if g.Category == nil || strings.TrimSpace(*g.Category) == "" {
			return nil, ErrInvalidGoal
		}
		if g.Goal.value == nil || g.Goal.value.IsNegative() || validation.Amount(*g.Goal.value) != nil {
			return nil, ErrInvalidGoal
		}
		goals = append(goals, Goal{Category: strings.TrimSpace(*g.Category), Goal: *g.Goal.value})
	}
	return goals, nil
}

// Dedupe keeps the last goal given for each category, preserving first-seen order.
func Dedupe(goals []Goal) []Goal {
	index := make(map[string]int, len(goals))
	out := make([]Goal, 0, len(goals))
	for _, g := range goals {
		if i, ok := index[g.Category]; ok {
			out[i] = g
			continue
		}
		index[g.Category] = len(out)
		out = append(out, g)
	}
	return out
}
