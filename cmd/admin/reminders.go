package main

import (
	"context"
	"fmt"
	"time"

	"expensync/internal/domain/notification"
	"expensync/internal/domain/reminder"
	"expensync/internal/infrastructure/firebase"
	"expensync/internal/infrastructure/postgres"
	"expensync/internal/interfaces/scheduler"
	"expensync/internal/shared/messages"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Reminder maintenance",
}

var remindersDispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Send due-reminder notifications once",
	Long: `Send notifications for reminders due within the configured lead time.

Without --user-id every user with a due reminder is processed through the
worker pool, the same way the API scheduler does it.`,
	Example: `  admin reminders dispatch
  admin reminders dispatch --user-id=1,2 --workers=8`,
	RunE: runRemindersDispatch,
}

func init() {
	remindersDispatchCmd.Flags().Int64Slice("user-id", nil, "user ID(s) to dispatch for (comma-separated)")
	remindersDispatchCmd.Flags().Int("workers", 4, "number of concurrent workers")
	remindersDispatchCmd.Flags().Duration("timeout", 30*time.Minute, "timeout for the whole run")
	remindersCmd.AddCommand(remindersDispatchCmd)
}

func runRemindersDispatch(cmd *cobra.Command, args []string) error {
	userIDs, _ := cmd.Flags().GetInt64Slice("user-id")
	workers, _ := cmd.Flags().GetInt("workers")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	ctx, cancel := withTimeout(cmd)
	defer cancel()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	dispatcher, err := newDispatcher(ctx, db)
	if err != nil {
		return err
	}

	var jobs []scheduler.Job
	if len(userIDs) > 0 {
		for _, id := range userIDs {
			jobs = append(jobs, scheduler.NewReminderJob(id, dispatcher))
		}
	} else {
		if jobs, err = scheduler.ReminderJobs(dispatcher)(ctx); err != nil {
			return err
		}
	}
	if len(jobs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No reminders due")
		return nil
	}

	start := time.Now()
	pool := scheduler.NewWorkerPool(workers, 0, len(jobs))
	pool.Start()
	submitted := pool.SubmitBatch(jobs)
	pool.ShutdownWithTimeout(timeout)

	fmt.Fprintf(cmd.OutOrStdout(), "Dispatched reminders for %d of %d user(s) in %v\n",
		submitted, len(jobs), time.Since(start).Round(time.Millisecond))
	return nil
}

func newDispatcher(ctx context.Context, db *postgres.DB) (*reminder.DispatchService, error) {
	msgs := messages.Default()
	if cfg.Messages.File != "" {
		var err error
		if msgs, err = messages.Load(cfg.Messages.File); err != nil {
			return nil, fmt.Errorf("load messages: %w", err)
		}
	}

	notificationRepo := postgres.NewNotificationRepository(db)
	var messenger notification.Messenger = notification.LogMessenger{}
	if cfg.Firebase.CredentialsFile != "" {
		fcm, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, notificationRepo.DeactivateToken)
		if err != nil {
			return nil, fmt.Errorf("init firebase: %w", err)
		}
		messenger = fcm
	} else {
		zap.L().Warn("FIREBASE_CREDENTIALS_FILE not set, push messages are only logged")
	}

	notifications := notification.NewService(notificationRepo, messenger)
	return reminder.NewDispatchService(postgres.NewReminderRepository(db), notifications, msgs, cfg.Scheduler.ReminderLeadTime), nil
}
