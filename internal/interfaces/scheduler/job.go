package scheduler

import "context"

// Job is a unit of work executed by the worker pool.
type Job interface {
	// Execute runs the job. Implementations must respect ctx cancellation.
	Execute(ctx context.Context) error

	// UserID identifies the user the job works for, for logs and spans.
	UserID() int64

	Description() string
}

// JobProvider lists the jobs to run for one scheduled trigger.
type JobProvider func(ctx context.Context) ([]Job, error)
