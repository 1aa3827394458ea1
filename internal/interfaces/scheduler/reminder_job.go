package scheduler

import (
	"context"
	"fmt"
)

// ReminderDispatcher is implemented by reminder.DispatchService.
type ReminderDispatcher interface {
	UsersWithDueReminders(ctx context.Context) ([]int64, error)
	NotifyUser(ctx context.Context, userID int64) (int, error)
}

// ReminderJob pushes every due reminder of one user.
type ReminderJob struct {
	userID     int64
	dispatcher ReminderDispatcher
}

func NewReminderJob(userID int64, dispatcher ReminderDispatcher) *ReminderJob {
	return &ReminderJob{userID: userID, dispatcher: dispatcher}
}

func (j *ReminderJob) Execute(ctx context.Context) error {
	sent, err := j.dispatcher.NotifyUser(ctx, j.userID)
	if err != nil {
		return fmt.Errorf("reminder dispatch failed after %d notifications: %w", sent, err)
	}
	return nil
}

func (j *ReminderJob) UserID() int64 {
	return j.userID
}

func (j *ReminderJob) Description() string {
	return fmt.Sprintf("reminder dispatch for user %d", j.userID)
}

// ReminderJobs returns a provider that creates one ReminderJob per user with
// due reminders.
func ReminderJobs(dispatcher ReminderDispatcher) JobProvider {
	return func(ctx context.Context) ([]Job, error) {
		userIDs, err := dispatcher.UsersWithDueReminders(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list users with due reminders: %w", err)
		}
		jobs := make([]Job, 0, len(userIDs))
		for _, id := range userIDs {
			jobs = append(jobs, NewReminderJob(id, dispatcher))
		}
		return jobs, nil
	}
}
