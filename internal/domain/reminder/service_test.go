package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Create_Validation(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		params  CreateParams
		wantErr error
	}{
		{name: "valid", params: CreateParams{Title: "Rent", DueDate: &due}},
		{name: "blank title", params: CreateParams{Title: "  ", DueDate: &due}, wantErr: ErrTitleRequired},
		{name: "missing due date", params: CreateParams{Title: "Rent"}, wantErr: ErrDueDateRequired},
		{name: "zero due date", params: CreateParams{Title: "Rent", DueDate: &time.Time{}}, wantErr: ErrDueDateRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockRepository{
				CreateFunc: func(ctx context.Context, userID int64, params CreateParams) (*Reminder, error) {
					return &Reminder{ID: "r1", Title: params.Title, DueDate: *params.DueDate}, nil
				},
			}
			_, err := NewService(repo).Create(context.Background(), 1, tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_Delete_InvalidID(t *testing.T) {
	assert.ErrorIs(t, NewService(&MockRepository{}).Delete(context.Background(), 1, "x"), ErrReminderNotFound)
}

func TestService_Upcoming_FromStartOfDay(t *testing.T) {
	var gotFrom time.Time
	var gotLimit int
	repo := &MockRepository{
		UpcomingFunc: func(ctx context.Context, userID int64, from time.Time, limit int) ([]*Reminder, error) {
			gotFrom, gotLimit = from, limit
			return nil, nil
		},
	}
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 5, 4, 15, 30, 0, 0, time.UTC) }

	reminders, err := svc.Upcoming(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, reminders)
	assert.Equal(t, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), gotFrom)
	assert.Equal(t, upcomingLimit, gotLimit)
}
