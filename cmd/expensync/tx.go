package main

import (
	"fmt"
	"strings"

	"expensync/internal/client"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var txCmd = &cobra.Command{
	Use:     "tx",
	Aliases: []string{"transactions"},
	Short:   "List, add and remove transactions",
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, newest first",
	Example: `  expensync tx list --search coffee
  expensync tx list --filter food --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		filter, _ := cmd.Flags().GetString("filter")
		limit, _ := cmd.Flags().GetInt("limit")
		all, _ := cmd.Flags().GetBool("all")

		ctx := cmd.Context()
		feed := client.NewFeed(api)
		var err error
		switch {
		case search != "" && filter != "":
			if err = feed.SetSearch(ctx, search); err == nil {
				err = feed.SetFilter(ctx, filter)
			}
		case search != "":
			err = feed.SetSearch(ctx, search)
		case filter != "":
			err = feed.SetFilter(ctx, filter)
		default:
			err = feed.Reload(ctx)
		}
		if err != nil {
			return err
		}
		for feed.HasMore() && (all || len(feed.Items()) < limit) {
			if err := feed.LoadMore(ctx); err != nil {
				return err
			}
		}

		items := feed.Items()
		if !all && len(items) > limit {
			items = items[:limit]
		}
		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No transactions")
			return nil
		}

		tw := newTable(cmd.OutOrStdout(), "ID", "DATE", "TITLE", "CATEGORY", "AMOUNT", "TAGS")
		for _, t := range items {
			row(tw, t.ID, day(t.Date), t.Title, orDash(t.Category), money(t.Amount), orDash(strings.Join(t.Tags, ",")))
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		totals := feed.Totals()
		fmt.Fprintf(cmd.OutOrStdout(), "\nSpent %s  Income %s  Net %s", money(totals.Spent), money(totals.Income), money(totals.Net))
		if feed.HasMore() {
			fmt.Fprint(cmd.OutOrStdout(), "  (more available, use --all)")
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

var txAddCmd = &cobra.Command{
	Use:   "add <title> <amount>",
	Short: "Record a transaction (negative amounts are expenses)",
	Example: `  expensync tx add "Groceries" -- -42.50 --category food
  expensync tx add Salary 3000 --date 2025-01-31`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}
		category, _ := cmd.Flags().GetString("category")
		note, _ := cmd.Flags().GetString("note")
		tags, _ := cmd.Flags().GetStringSlice("tag")
		date, _ := cmd.Flags().GetString("date")

		t, err := api.CreateTransaction(cmd.Context(), client.TransactionInput{
			Title:    args[0],
			Amount:   &amount,
			Category: category,
			Note:     note,
			Tags:     tags,
			Date:     date,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s %s)\n", t.ID, t.Title, money(t.Amount))
		return nil
	},
}

var txRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a transaction",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		remaining, err := api.DeleteTransaction(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s, %d transaction(s) left\n", args[0], len(remaining))
		return nil
	},
}

var txSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show income, expense and net over all transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := api.TransactionSummary(cmd.Context())
		if err != nil {
			return err
		}
		tw := newTable(cmd.OutOrStdout(), "TRANSACTIONS", "INCOME", "EXPENSE", "NET")
		row(tw, fmt.Sprint(s.TotalTransactions), money(s.Income), money(s.Expense), money(s.Net))
		return tw.Flush()
	},
}

func init() {
	txListCmd.Flags().String("search", "", "match title, note or tag")
	txListCmd.Flags().String("filter", "", "only this category")
	txListCmd.Flags().Int("limit", client.FeedPageSize, "maximum rows to show")
	txListCmd.Flags().Bool("all", false, "scroll until every transaction is loaded")

	txAddCmd.Flags().StringP("category", "c", "", "category")
	txAddCmd.Flags().String("note", "", "free-form note")
	txAddCmd.Flags().StringSlice("tag", nil, "tag (repeatable)")
	txAddCmd.Flags().String("date", "", "date as YYYY-MM-DD (default today)")

	txCmd.AddCommand(txListCmd, txAddCmd, txRmCmd, txSummaryCmd)
}
