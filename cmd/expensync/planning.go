package main

import (
	"fmt"
	"strings"

	"expensync/internal/client"
	"expensync/internal/domain/categorygoal"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var budgetsCmd = &cobra.Command{
	Use:   "budgets",
	Short: "Monthly budgets",
}

var budgetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List budgets",
	RunE: func(cmd *cobra.Command, args []string) error {
		budgets, err := api.Budgets(cmd.Context())
		if err != nil {
			return err
		}
		if len(budgets) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No budgets")
			return nil
		}
		tw := newTable(cmd.OutOrStdout(), "ID", "MONTH", "TITLE", "CATEGORY", "AMOUNT")
		for _, b := range budgets {
			row(tw, b.ID, b.Month, b.Title, orDash(b.Category), money(b.Amount))
		}
		return tw.Flush()
	},
}

var budgetsAddCmd = &cobra.Command{
	Use:     "add <title> <amount>",
	Short:   "Add a budget",
	Example: `  expensync budgets add Groceries 400 --category food --month 2025-02`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}
		category, _ := cmd.Flags().GetString("category")
		month, _ := cmd.Flags().GetString("month")

		b, err := api.AddBudget(cmd.Context(), client.BudgetInput{
			Title:    args[0],
			Category: category,
			Amount:   amount,
			Month:    month,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added budget %s for %s\n", b.ID, b.Month)
		return nil
	},
}

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Monthly spending goals per category",
}

var goalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List category goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		goals, err := api.CategoryGoals(cmd.Context())
		if err != nil {
			return err
		}
		if len(goals) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No category goals")
			return nil
		}
		tw := newTable(cmd.OutOrStdout(), "CATEGORY", "GOAL")
		for _, g := range goals {
			row(tw, g.Category, money(g.Goal))
		}
		return tw.Flush()
	},
}

var goalsSetCmd = &cobra.Command{
	Use:     "set <category=amount>...",
	Short:   "Create or update category goals",
	Example: `  expensync goals set food=400 transport=120`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		goals, err := parseGoals(args)
		if err != nil {
			return err
		}
		if err := api.SetCategoryGoals(cmd.Context(), goals); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %d category goal(s)\n", len(goals))
		return nil
	},
}

func parseGoals(args []string) ([]categorygoal.Goal, error) {
	goals := make([]categorygoal.Goal, 0, len(args))
	for _, arg := range args {
		category, raw, ok := strings.Cut(arg, "=")
		category = strings.TrimSpace(category)
		if !ok || category == "" {
			return nil, fmt.Errorf("expected category=amount, got %q", arg)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid amount for %s: %q", category, raw)
		}
		goals = append(goals, categorygoal.Goal{Category: category, Goal: amount})
	}
	return goals, nil
}

var debtsCmd = &cobra.Command{
	Use:   "debts",
	Short: "Money you owe",
}

var debtsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List debts",
	RunE: func(cmd *cobra.Command, args []string) error {
		debts, err := api.Debts(cmd.Context())
		if err != nil {
			return err
		}
		if len(debts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No debts")
			return nil
		}
		tw := newTable(cmd.OutOrStdout(), "ID", "DUE", "TITLE", "CREDITOR", "AMOUNT")
		total := decimal.Zero
		for _, d := range debts {
			row(tw, d.ID, optDay(d.DueDate), d.Title, orDash(d.Creditor), money(d.Amount))
			total = total.Add(d.Amount)
		}
		row(tw, "", "", "", "TOTAL", money(total))
		return tw.Flush()
	},
}

var debtsAddCmd = &cobra.Command{
	Use:   "add <title> <amount>",
	Short: "Record a debt",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}
		creditor, _ := cmd.Flags().GetString("creditor")
		due, _ := cmd.Flags().GetString("due")
		note, _ := cmd.Flags().GetString("note")

		d, err := api.AddDebt(cmd.Context(), client.DebtInput{
			Title:    args[0],
			Creditor: creditor,
			Amount:   amount,
			DueDate:  due,
			Note:     note,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added debt %s\n", d.ID)
		return nil
	},
}

var debtsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a debt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.DeleteDebt(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted debt %s\n", args[0])
		return nil
	},
}

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Payment reminders",
}

var remindersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reminders by due date",
	RunE: func(cmd *cobra.Command, args []string) error {
		reminders, err := api.Reminders(cmd.Context())
		if err != nil {
			return err
		}
		if len(reminders) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No reminders")
			return nil
		}
		tw := newTable(cmd.OutOrStdout(), "ID", "DUE", "TITLE", "AMOUNT", "NOTIFIED")
		for _, r := range reminders {
			row(tw, r.ID, day(r.DueDate), r.Title, optMoney(r.Amount), optDay(r.NotifiedAt))
		}
		return tw.Flush()
	},
}

var remindersAddCmd = &cobra.Command{
	Use:     "add <title> <due-date>",
	Short:   "Add a reminder",
	Example: `  expensync reminders add Rent 2025-03-01 --amount 950`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := client.ReminderInput{Title: args[0], DueDate: args[1]}
		in.Note, _ = cmd.Flags().GetString("note")
		if raw, _ := cmd.Flags().GetString("amount"); raw != "" {
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				return fmt.Errorf("invalid amount %q", raw)
			}
			in.Amount = &amount
		}

		r, err := api.AddReminder(cmd.Context(), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added reminder %s due %s\n", r.ID, day(r.DueDate))
		return nil
	},
}

var remindersRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.DeleteReminder(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted reminder %s\n", args[0])
		return nil
	},
}

func init() {
	budgetsAddCmd.Flags().StringP("category", "c", "", "category the budget applies to")
	budgetsAddCmd.Flags().String("month", "", "month as YYYY-MM (default current month)")
	budgetsCmd.AddCommand(budgetsListCmd, budgetsAddCmd)

	goalsCmd.AddCommand(goalsListCmd, goalsSetCmd)

	debtsAddCmd.Flags().String("creditor", "", "who is owed")
	debtsAddCmd.Flags().String("due", "", "due date as YYYY-MM-DD")
	debtsAddCmd.Flags().String("note", "", "free-form note")
	debtsCmd.AddCommand(debtsListCmd, debtsAddCmd, debtsRmCmd)

	remindersAddCmd.Flags().String("amount", "", "amount to pay")
	remindersAddCmd.Flags().String("note", "", "free-form note")
	remindersCmd.AddCommand(remindersListCmd, remindersAddCmd, remindersRmCmd)
}
