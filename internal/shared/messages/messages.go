package messages

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// MessageText is a push notification template. {placeholders} in Title and
// Body are replaced by Render.
type MessageText struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type Messages struct {
	ReminderDue  MessageText `json:"reminder_due"`
	GoalExceeded MessageText `json:"goal_exceeded"`
}

// Default returns the built-in texts.
func Default() *Messages {
	return &Messages{
		ReminderDue: MessageText{
			Title: "Payment reminder",
			Body:  "{title} is due on {date}",
		},
		GoalExceeded: MessageText{
			Title: "Goal exceeded: {category}",
			Body:  "You have spent {spent} of your {goal} goal for {category} this month",
		},
	}
}

// Load reads texts from a JSON file. Keys missing from the file keep their
// built-in value. An empty path returns the defaults.
func Load(path string) (*Messages, error) {
	msgs := Default()
	if path == "" {
		return msgs, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read messages file: %w", err)
	}
	if err := json.Unmarshal(data, msgs); err != nil {
		return nil, fmt.Errorf("failed to parse messages file: %w", err)
	}
	return msgs, nil
}

// Render substitutes {key} placeholders from vars.
func (m MessageText) Render(vars map[string]string) (title, body string) {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	r := strings.NewReplacer(pairs...)
	return r.Replace(m.Title), r.Replace(m.Body)
}
