// Package report renders journal data as text reports, CSV and JSON.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"moodvibe/internal/derive"
	"moodvibe/internal/models"
	"moodvibe/pkg/utils"
)

const entrySeparator = 50

func header(b *strings.Builder, title, underline string, generated time.Time) {
	b.WriteString(title + "\n")
	b.WriteString(underline + "\n\n")
	fmt.Fprintf(b, "Generated on: %s\n\n", utils.FormatTimestamp(generated))
}

// firstSeenCounts counts keys in the order they first appear.
func firstSeenCounts(keys []string) ([]string, map[string]int) {
	var order []string
	counts := make(map[string]int)
	for _, k := range keys {
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}
	return order, counts
}

// MoodReport renders the mood journal report.
func MoodReport(moods map[string]models.MoodEntry, generated time.Time) string {
	var b strings.Builder
	header(&b, "MOOD JOURNAL REPORT", "==================", generated)

	dates := derive.SortedDates(moods)
	fmt.Fprintf(&b, "Total Entries: %d\n\n", len(dates))

	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = string(moods[d].Mood)
	}
	order, counts := firstSeenCounts(keys)

	b.WriteString("MOOD STATISTICS:\n")
	b.WriteString("----------------\n")
	for _, mood := range order {
		pct := float64(counts[mood]) / float64(len(dates)) * 100
		fmt.Fprintf(&b, "%s: %d entries (%.1f%%)\n", utils.Capitalize(mood), counts[mood], pct)
	}

	b.WriteString("\nDETAILED ENTRIES:\n")
	b.WriteString("-----------------\n\n")
	for i, d := range dates {
		e := moods[d]
		fmt.Fprintf(&b, "%d. %s\n", i+1, utils.FormatLongDate(d))
		fmt.Fprintf(&b, "   Mood: %s %s\n", e.Emoji, utils.Capitalize(string(e.Mood)))
		if e.Description != "" {
			fmt.Fprintf(&b, "   Description: %s\n", e.Description)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func exerciseType(e models.HealthEntry) string {
	if e.Exercise.Type == "" {
		return "Not specified"
	}
	return e.Exercise.Type
}

// HealthReport renders the health tracking report.
func HealthReport(health map[string]models.HealthEntry, generated time.Time) string {
	var b strings.Builder
	header(&b, "HEALTH TRACKING REPORT", "=====================", generated)

	dates := derive.SortedDates(health)
	fmt.Fprintf(&b, "Total Entries: %d\n\n", len(dates))
	if len(dates) == 0 {
		b.WriteString("No health data available.\n")
		return b.String()
	}

	n := float64(len(dates))
	var totalExercise, score, sleep, energy, stress, nutrition, hydration, pain float64
	var types []string
	for _, d := range dates {
		e := health[d]
		q := e.HealthQuestions
		totalExercise += float64(e.Exercise.Duration)
		score += float64(e.OverallHealthScore)
		sleep += float64(q.Sleep)
		energy += float64(q.Energy)
		stress += float64(q.Stress)
		nutrition += float64(q.Nutrition)
		hydration += float64(q.Hydration)
		pain += float64(q.Pain)
		if e.Exercise.Type != "" {
			types = append(types, e.Exercise.Type)
		}
	}

	b.WriteString("HEALTH STATISTICS:\n")
	b.WriteString("------------------\n")
	fmt.Fprintf(&b, "Total Exercise Time: %.0f minutes\n", totalExercise)
	fmt.Fprintf(&b, "Average Health Score: %.1f/100\n", score/n)
	fmt.Fprintf(&b, "Average Sleep Quality: %.1f/10\n", sleep/n)
	fmt.Fprintf(&b, "Average Energy Level: %.1f/10\n", energy/n)
	fmt.Fprintf(&b, "Average Stress Level: %.1f/10\n", stress/n)
	fmt.Fprintf(&b, "Average Nutrition: %.1f/10\n", nutrition/n)
	fmt.Fprintf(&b, "Average Hydration: %.1f/10\n", hydration/n)
	fmt.Fprintf(&b, "Average Pain Level: %.1f/10\n\n", pain/n)

	if order, counts := firstSeenCounts(types); len(order) > 0 {
		b.WriteString("EXERCISE TYPES:\n")
		b.WriteString("---------------\n")
		for _, t := range order {
			fmt.Fprintf(&b, "%s: %d times\n", t, counts[t])
		}
		b.WriteString("\n")
	}

	b.WriteString("DETAILED ENTRIES:\n")
	b.WriteString("-----------------\n\n")
	for i, d := range dates {
		e := health[d]
		q := e.HealthQuestions
		fmt.Fprintf(&b, "%d. %s\n", i+1, utils.FormatLongDate(d))
		fmt.Fprintf(&b, "   Health Score: %d/100\n", e.OverallHealthScore)
		fmt.Fprintf(&b, "   Exercise: %d minutes (%s)\n", e.Exercise.Duration, exerciseType(e))
		fmt.Fprintf(&b, "   Intensity: %s\n", e.Exercise.Intensity)
		if len(e.Exercise.Activities) > 0 {
			fmt.Fprintf(&b, "   Activities: %s\n", strings.Join(e.Exercise.Activities, ", "))
		}
		fmt.Fprintf(&b, "   Sleep: %d/10\n", q.Sleep)
		fmt.Fprintf(&b, "   Energy: %d/10\n", q.Energy)
		fmt.Fprintf(&b, "   Stress: %d/10\n", q.Stress)
		fmt.Fprintf(&b, "   Nutrition: %d/10\n", q.Nutrition)
		fmt.Fprintf(&b, "   Hydration: %d/10\n", q.Hydration)
		fmt.Fprintf(&b, "   Pain: %d/10\n", q.Pain)
		if len(e.Suggestions) > 0 {
			b.WriteString("   Suggestions:\n")
			for _, s := range e.Suggestions {
				fmt.Fprintf(&b, "     - %s\n", s)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// BudgetReport renders the budget tracking report.
func BudgetReport(budgets map[string]models.BudgetEntry, generated time.Time) string {
	var b strings.Builder
	header(&b, "BUDGET TRACKING REPORT", "=====================", generated)

	dates := derive.SortedDates(budgets)
	fmt.Fprintf(&b, "Total Entries: %d\n\n", len(dates))
	if len(dates) == 0 {
		b.WriteString("No budget data available.\n")
		return b.String()
	}

	n := float64(len(dates))
	var income, expenses, investments, daily, remaining float64
	for _, d := range dates {
		e := budgets[d]
		income += e.MonthlyIncome
		expenses += e.MonthlyExpenses
		investments += e.InvestmentTotal
		daily += e.DailyBudget
		remaining += e.RemainingBudget
	}

	ratio := "0"
	if income > 0 {
		ratio = fmt.Sprintf("%.1f", investments/income*100)
	}

	b.WriteString("BUDGET STATISTICS:\n")
	b.WriteString("------------------\n")
	fmt.Fprintf(&b, "Total Income: %s\n", utils.FormatCurrency(income))
	fmt.Fprintf(&b, "Total Expenses: %s\n", utils.FormatCurrency(expenses))
	fmt.Fprintf(&b, "Total Investments: %s\n", utils.FormatCurrency(investments))
	fmt.Fprintf(&b, "Average Daily Budget: %s\n", utils.FormatCurrency(daily/n))
	fmt.Fprintf(&b, "Average Remaining Budget: %s\n", utils.FormatCurrency(remaining/n))
	fmt.Fprintf(&b, "Investment Ratio: %s%%\n\n", ratio)

	b.WriteString("DETAILED ENTRIES:\n")
	b.WriteString("-----------------\n\n")
	for i, d := range dates {
		e := budgets[d]
		fmt.Fprintf(&b, "%d. %s\n", i+1, utils.FormatLongDate(d))
		writeBudgetLines(&b, e, "   ")
		b.WriteString("\n")
	}

	return b.String()
}

func writeBudgetLines(b *strings.Builder, e models.BudgetEntry, indent string) {
	fmt.Fprintf(b, "%sMonthly Income: %s\n", indent, utils.FormatCurrency(e.MonthlyIncome))
	fmt.Fprintf(b, "%sMonthly Expenses: %s\n", indent, utils.FormatCurrency(e.MonthlyExpenses))
	fmt.Fprintf(b, "%sDaily Budget: %s\n", indent, utils.FormatCurrency(e.DailyBudget))
	fmt.Fprintf(b, "%sRemaining Budget: %s\n", indent, utils.FormatCurrency(e.RemainingBudget))
	fmt.Fprintf(b, "%sInvestment Total: %s\n", indent, utils.FormatCurrency(e.InvestmentTotal))
	fmt.Fprintf(b, "%sAdvice: %s\n", indent, e.Advice)
}

// CombinedDates returns the union of the mood, health and budget days in
// ascending order.
func CombinedDates(snap *models.Snapshot) []string {
	set := make(map[string]struct{})
	for d := range snap.Moods {
		set[d] = struct{}{}
	}
	for d := range snap.Health {
		set[d] = struct{}{}
	}
	for d := range snap.Budgets {
		set[d] = struct{}{}
	}

	dates := make([]string, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// CombinedReport renders every category day by day.
func CombinedReport(snap *models.Snapshot, generated time.Time) string {
	var b strings.Builder
	header(&b, "COMPLETE MOOD, HEALTH & BUDGET JOURNAL", "========================================", generated)

	dates := CombinedDates(snap)
	fmt.Fprintf(&b, "Total Days Tracked: %d\n", len(dates))
	fmt.Fprintf(&b, "Mood Entries: %d\n", len(snap.Moods))
	fmt.Fprintf(&b, "Health Entries: %d\n", len(snap.Health))
	fmt.Fprintf(&b, "Budget Entries: %d\n\n", len(snap.Budgets))

	b.WriteString("DAILY ENTRIES:\n")
	b.WriteString("==============\n\n")

	for i, d := range dates {
		fmt.Fprintf(&b, "%d. %s\n", i+1, utils.FormatLongDate(d))
		b.WriteString("   " + strings.Repeat("=", entrySeparator) + "\n")

		if e, ok := snap.Moods[d]; ok {
			fmt.Fprintf(&b, "   MOOD: %s %s\n", e.Emoji, utils.Capitalize(string(e.Mood)))
			if e.Description != "" {
				fmt.Fprintf(&b, "   Description: %s\n", e.Description)
			}
		} else {
			b.WriteString("   MOOD: No entry\n")
		}

		if e, ok := snap.Health[d]; ok {
			q := e.HealthQuestions
			fmt.Fprintf(&b, "   HEALTH SCORE: %d/100\n", e.OverallHealthScore)
			fmt.Fprintf(&b, "   EXERCISE: %d minutes (%s)\n", e.Exercise.Duration, exerciseType(e))
			fmt.Fprintf(&b, "   SLEEP: %d/10 | ENERGY: %d/10\n", q.Sleep, q.Energy)
			fmt.Fprintf(&b, "   STRESS: %d/10 | NUTRITION: %d/10\n", q.Stress, q.Nutrition)
			fmt.Fprintf(&b, "   HYDRATION: %d/10 | PAIN: %d/10\n", q.Hydration, q.Pain)
			if len(e.Suggestions) > 0 {
				b.WriteString("   SUGGESTIONS:\n")
				for _, s := range e.Suggestions {
					fmt.Fprintf(&b, "     - %s\n", s)
				}
			}
		} else {
			b.WriteString("   HEALTH: No entry\n")
		}

		if e, ok := snap.Budgets[d]; ok {
			b.WriteString("   BUDGET:\n")
			writeBudgetLines(&b, e, "     ")
		} else {
			b.WriteString("   BUDGET: No entry\n")
		}

		b.WriteString("\n")
	}

	return b.String()
}
