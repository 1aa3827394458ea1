package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type funcJob struct {
	userID int64
	fn     func(ctx context.Context) error
}

func (j funcJob) Execute(ctx context.Context) error { return j.fn(ctx) }
func (j funcJob) UserID() int64                     { return j.userID }
func (j funcJob) Description() string               { return "test job" }

func TestWorkerPool_ProcessesAllJobs(t *testing.T) {
	wp := NewWorkerPool(3, 0, 10)
	wp.Start()

	var done atomic.Int32
	for i := range 10 {
		err := wp.Submit(funcJob{userID: int64(i), fn: func(ctx context.Context) error {
			done.Add(1)
			return nil
		}})
		require.NoError(t, err)
	}

	wp.Shutdown()
	assert.Equal(t, int32(10), done.Load())
}

func TestWorkerPool_FailedJobDoesNotStopWorker(t *testing.T) {
	wp := NewWorkerPool(1, 0, 2)
	wp.Start()

	var ran atomic.Int32
	require.NoError(t, wp.Submit(funcJob{fn: func(ctx context.Context) error {
		ran.Add(1)
		return errors.New("boom")
	}}))
	require.NoError(t, wp.Submit(funcJob{fn: func(ctx context.Context) error {
		ran.Add(1)
		return nil
	}}))

	wp.Shutdown()
	assert.Equal(t, int32(2), ran.Load())
}

func TestWorkerPool_QueueFull(t *testing.T) {
	wp := NewWorkerPool(1, 0, 1)
	wp.Start()

	release := make(chan struct{})
	started := make(chan struct{})
	blocking := funcJob{fn: func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	}}
	noop := funcJob{fn: func(ctx context.Context) error { return nil }}

	require.NoError(t, wp.Submit(blocking))
	<-started
	require.NoError(t, wp.Submit(noop))

	err := wp.Submit(noop)
	assert.ErrorIs(t, err, ErrQueueFull)

	close(release)
	wp.Shutdown()
}

func TestWorkerPool_SubmitAfterShutdown(t *testing.T) {
	wp := NewWorkerPool(1, 0, 1)
	wp.Start()
	wp.Shutdown()

	err := wp.Submit(funcJob{fn: func(ctx context.Context) error { return nil }})
	assert.ErrorIs(t, err, ErrPoolClosed)

	// A second shutdown is a no-op.
	wp.Shutdown()
	wp.ShutdownWithTimeout(time.Millisecond)
}

func TestWorkerPool_ShutdownWithTimeoutCancelsJobs(t *testing.T) {
	wp := NewWorkerPool(1, 0, 1)
	wp.Start()

	started := make(chan struct{})
	var cancelled atomic.Bool
	require.NoError(t, wp.Submit(funcJob{fn: func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	}}))
	<-started

	wp.ShutdownWithTimeout(20 * time.Millisecond)
	assert.True(t, cancelled.Load())
}

func TestWorkerPool_SubmitBatch(t *testing.T) {
	wp := NewWorkerPool(2, 0, 5)
	wp.Start()

	var mu sync.Mutex
	seen := map[int64]bool{}
	jobs := make([]Job, 0, 5)
	for i := int64(1); i <= 5; i++ {
		jobs = append(jobs, funcJob{userID: i, fn: func(ctx context.Context) error {
			mu.Lock()
			seen[i] = true
			mu.Unlock()
			return nil
		}})
	}

	assert.Equal(t, 5, wp.SubmitBatch(jobs))
	wp.Shutdown()
	assert.Len(t, seen, 5)
}
