package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"moodvibe/internal/derive"
	"moodvibe/internal/errors"
	"moodvibe/internal/models"
	"moodvibe/pkg/utils"
)

// addBudgetCommands adds budget and investment commands.
func addBudgetCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Budget tracking",
		Long:  "Track monthly income and expenses, daily spending budget and investments.",
	}

	cmd.AddCommand(newBudgetSetCmd(app))
	cmd.AddCommand(newBudgetShowCmd(app))
	cmd.AddCommand(newBudgetListCmd(app))
	cmd.AddCommand(newInvestCmd(app))

	rootCmd.AddCommand(cmd)
}

func newBudgetSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Record monthly income and expenses",
		Long: `Record monthly income and expenses for a day. The daily budget spreads what is
left over the remaining days of the month, minus that day's investments.`,
		Example: `  moodvibe budget set --income 3000 --expenses 1500`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			date, _ := cmd.Flags().GetString("date")
			income, _ := cmd.Flags().GetFloat64("income")
			expenses, _ := cmd.Flags().GetFloat64("expenses")

			entry, err := app.Journal.SaveBudget(ctx, date, income, expenses)
			if err != nil {
				output.Error("Failed to save budget: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(entry)
			}
			output.Success("✓ Budget saved for %s", utils.FormatLongDate(entry.Date))
			printBudget(output, entry)
			return nil
		},
	}

	cmd.Flags().String("date", "", "Day to record (YYYY-MM-DD, default today)")
	cmd.Flags().Float64("income", 0, "Monthly income")
	cmd.Flags().Float64("expenses", 0, "Monthly expenses")
	cmd.MarkFlagRequired("income")
	cmd.MarkFlagRequired("expenses")

	return cmd
}

func newBudgetShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the budget and investments for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			date, _ := cmd.Flags().GetString("date")
			entry, err := app.Journal.GetBudget(ctx, date)
			if err != nil && !errors.Is(err, errors.ErrDataNotFound) {
				output.Error("Failed to load budget: %v", err)
				return err
			}
			investments := app.Journal.Investments(ctx, date)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"budget":      entry,
					"investments": investments,
				})
			}

			if entry == nil {
				output.Info("No budget recorded for this day.")
			} else {
				output.Bold(utils.FormatLongDate(entry.Date))
				printBudget(output, entry)
			}
			if len(investments) > 0 {
				output.Println()
				printInvestments(output, investments)
			}
			return nil
		},
	}

	cmd.Flags().String("date", "", "Day to show (YYYY-MM-DD, default today)")

	return cmd
}

func newBudgetListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budget entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			budgets := app.Journal.Budgets(ctx)
			dates := derive.SortedDates(budgets)

			if output.IsJSON() {
				entries := make([]models.BudgetEntry, 0, len(dates))
				for _, d := range dates {
					entries = append(entries, budgets[d])
				}
				return output.JSON(entries)
			}

			if len(dates) == 0 {
				output.Info("No budget entries yet.")
				return nil
			}

			table := NewTable(output, "Date", "Income", "Expenses", "Daily", "Invested", "Remaining")
			for _, d := range dates {
				e := budgets[d]
				table.AddRow(d,
					utils.FormatCurrency(e.MonthlyIncome),
					utils.FormatCurrency(e.MonthlyExpenses),
					utils.FormatCurrency(e.DailyBudget),
					utils.FormatCurrency(e.InvestmentTotal),
					utils.FormatCurrency(e.RemainingBudget),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newInvestCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invest",
		Short: "Manage investments",
		Long:  "Add, list and remove the investments of a day. Each change re-derives that day's budget.",
	}

	cmd.AddCommand(newInvestAddCmd(app))
	cmd.AddCommand(newInvestListCmd(app))
	cmd.AddCommand(newInvestRemoveCmd(app))

	return cmd
}

func newInvestAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an investment",
		Long: `Add an investment to a day.

Types: stocks, bonds, crypto, real_estate, savings, other`,
		Example: `  moodvibe budget invest add --type stocks --amount 200 --desc "Index fund"
  moodvibe budget invest add --type crypto --amount 50 --bad --notes "impulse buy"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			date, _ := cmd.Flags().GetString("date")
			invType, _ := cmd.Flags().GetString("type")
			amount, _ := cmd.Flags().GetFloat64("amount")
			desc, _ := cmd.Flags().GetString("desc")
			bad, _ := cmd.Flags().GetBool("bad")
			notes, _ := cmd.Flags().GetString("notes")

			inv, err := app.Journal.AddInvestment(ctx, models.InvestmentEntry{
				Date:             date,
				Type:             models.InvestmentType(invType),
				Amount:           amount,
				Description:      desc,
				IsGoodInvestment: !bad,
				Notes:            notes,
			})
			if err != nil {
				output.Error("Failed to add investment: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(inv)
			}
			output.Success("✓ Added %s investment of %s", inv.Type, utils.FormatCurrency(inv.Amount))
			output.Dim("ID: %s", inv.ID)
			return nil
		},
	}

	cmd.Flags().String("date", "", "Day of the investment (YYYY-MM-DD, default today)")
	cmd.Flags().String("type", "", "Investment type")
	cmd.Flags().Float64("amount", 0, "Amount invested (must be > 0)")
	cmd.Flags().String("desc", "", "Description")
	cmd.Flags().Bool("bad", false, "Mark as a poor investment")
	cmd.Flags().String("notes", "", "Notes")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func newInvestListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the investments of a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			date, _ := cmd.Flags().GetString("date")
			investments := app.Journal.Investments(ctx, date)

			if output.IsJSON() {
				return output.JSON(investments)
			}
			if len(investments) == 0 {
				output.Info("No investments for this day.")
				return nil
			}
			printInvestments(output, investments)
			return nil
		},
	}

	cmd.Flags().String("date", "", "Day to list (YYYY-MM-DD, default today)")

	return cmd
}

func newInvestRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an investment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			date, _ := cmd.Flags().GetString("date")
			if err := app.Journal.RemoveInvestment(ctx, date, args[0]); err != nil {
				output.Error("Failed to remove investment: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{"removed": args[0]})
			}
			output.Success("✓ Investment %s removed", args[0])
			return nil
		},
	}

	cmd.Flags().String("date", "", "Day of the investment (YYYY-MM-DD, default today)")

	return cmd
}

func printBudget(output *Output, e *models.BudgetEntry) {
	output.Printf("  Monthly Income:   %s\n", utils.FormatCurrency(e.MonthlyIncome))
	output.Printf("  Monthly Expenses: %s\n", utils.FormatCurrency(e.MonthlyExpenses))
	output.Printf("  Daily Budget:     %s\n", utils.FormatCurrency(e.DailyBudget))
	output.Printf("  Invested Today:   %s\n", utils.FormatCurrency(e.InvestmentTotal))
	output.Printf("  Remaining Today:  %s\n", output.MoneyColor(e.RemainingBudget, utils.FormatCurrency(e.RemainingBudget)))
	if e.Advice != "" {
		output.Println()
		for _, line := range strings.Split(e.Advice, "\n") {
			output.Printf("  %s\n", line)
		}
	}
}

func printInvestments(output *Output, investments []models.InvestmentEntry) {
	table := NewTable(output, "ID", "Type", "Amount", "Good", "Description")
	for _, inv := range investments {
		table.AddRow(inv.ID, string(inv.Type), utils.FormatCurrency(inv.Amount),
			FormatGood(inv.IsGoodInvestment), utils.TruncateString(inv.Description, 40))
	}
	table.Render()
}
