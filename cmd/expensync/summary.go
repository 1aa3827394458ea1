package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show balance, budget and per-category spending for this month",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := api.Summary(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		tw := newTable(out, "INCOME", "EXPENSES", "BALANCE", "DEBT")
		row(tw, money(s.TotalIncome), money(s.TotalExpenses), money(s.Balance), money(s.TotalDebt))
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(out, "\nBudget %s: %s, %s remaining\n", s.Month, money(s.TotalBudget), money(s.BudgetRemaining))
		if len(s.Categories) == 0 {
			return nil
		}

		fmt.Fprintln(out)
		tw = newTable(out, "CATEGORY", "SPENT", "GOAL", "REMAINING", "")
		for _, c := range s.Categories {
			flag := ""
			if c.Exceeded {
				flag = "over goal"
			}
			row(tw, c.Category, money(c.Spent), optMoney(c.Goal), optMoney(c.Remaining), flag)
		}
		return tw.Flush()
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the API is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		greeting, err := api.Ping(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), greeting)
		return nil
	},
}
