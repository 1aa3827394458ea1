package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScheduleTime(t *testing.T) {
	tests := []struct {
		input   string
		want    ScheduleTime
		wantErr bool
	}{
		{input: "08:00", want: ScheduleTime{Hour: 8}},
		{input: "23:59", want: ScheduleTime{Hour: 23, Minute: 59}},
		{input: "7:5", want: ScheduleTime{Hour: 7, Minute: 5}},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseScheduleTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_RequiresScheduleTimes(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	_, err = New(Config{ScheduleTimes: []string{"8am"}})
	assert.Error(t, err)
}

func TestScheduler_ShouldRunOncePerMinute(t *testing.T) {
	s, err := New(Config{ScheduleTimes: []string{"08:00", "18:30"}, WorkerCount: 1})
	require.NoError(t, err)
	defer s.Shutdown(time.Second)

	day := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

	assert.False(t, s.shouldRun(day.Add(7*time.Hour+59*time.Minute)))
	assert.True(t, s.shouldRun(day.Add(8*time.Hour)))
	assert.False(t, s.shouldRun(day.Add(8*time.Hour+30*time.Second)), "same minute fires once")
	assert.True(t, s.shouldRun(day.Add(18*time.Hour+30*time.Minute)))
	assert.True(t, s.shouldRun(day.AddDate(0, 0, 1).Add(8*time.Hour)), "fires again the next day")
}

func TestScheduler_NextRun(t *testing.T) {
	s, err := New(Config{ScheduleTimes: []string{"18:00", "08:00"}, WorkerCount: 1})
	require.NoError(t, err)
	defer s.Shutdown(time.Second)

	day := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, day.Add(8*time.Hour), s.NextRun(day.Add(6*time.Hour)))
	assert.Equal(t, day.Add(18*time.Hour), s.NextRun(day.Add(8*time.Hour)))
	assert.Equal(t, day.AddDate(0, 0, 1).Add(8*time.Hour), s.NextRun(day.Add(20*time.Hour)))
}

type fakeDispatcher struct {
	mu      sync.Mutex
	users   []int64
	listErr error
	failFor int64
	sent    []int64
}

func (f *fakeDispatcher) UsersWithDueReminders(ctx context.Context) ([]int64, error) {
	return f.users, f.listErr
}

func (f *fakeDispatcher) NotifyUser(ctx context.Context, userID int64) (int, error) {
	if userID == f.failFor {
		return 0, errors.New("push failed")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, userID)
	return 1, nil
}

func TestReminderJobs(t *testing.T) {
	d := &fakeDispatcher{users: []int64{3, 5}}

	jobs, err := ReminderJobs(d)(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, int64(3), jobs[0].UserID())
	assert.Equal(t, "reminder dispatch for user 5", jobs[1].Description())

	require.NoError(t, jobs[0].Execute(context.Background()))
	assert.Equal(t, []int64{3}, d.sent)
}

func TestReminderJobs_ListError(t *testing.T) {
	d := &fakeDispatcher{listErr: errors.New("db down")}

	_, err := ReminderJobs(d)(context.Background())
	assert.Error(t, err)
}

func TestReminderJob_PropagatesFailure(t *testing.T) {
	d := &fakeDispatcher{failFor: 9}

	err := NewReminderJob(9, d).Execute(context.Background())
	assert.Error(t, err)
}

func TestScheduler_TriggerNowDispatches(t *testing.T) {
	d := &fakeDispatcher{users: []int64{1, 2, 3}}
	s, err := New(Config{
		ScheduleTimes: []string{"03:00"},
		WorkerCount:   2,
		QueueSize:     10,
		JobProvider:   ReminderJobs(d),
	})
	require.NoError(t, err)

	s.Start()
	s.TriggerNow()

	assert.Eventually(t, func() bool {
		d.mu.Lock()
		defer d.mu.Unlock()
		return len(d.sent) == 3
	}, time.Second, 5*time.Millisecond)

	s.Shutdown(time.Second)
}

func TestScheduler_RunOnStartup(t *testing.T) {
	d := &fakeDispatcher{users: []int64{7}}
	s, err := New(Config{
		ScheduleTimes: []string{"03:00"},
		WorkerCount:   1,
		QueueSize:     1,
		RunOnStartup:  true,
		JobProvider:   ReminderJobs(d),
	})
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool {
		d.mu.Lock()
		defer d.mu.Unlock()
		return len(d.sent) == 1
	}, time.Second, 5*time.Millisecond)
	s.Shutdown(time.Second)
}
