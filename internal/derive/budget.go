package derive

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"moodvibe/internal/models"
)

var hundred = decimal.NewFromInt(100)

// BudgetFigures holds the numbers derived for one budget day.
type BudgetFigures struct {
	RemainingDays        int
	DailyBudget          float64
	InvestmentTotal      float64
	RemainingBudget      float64
	InvestmentPercentage float64
}

// DaysInMonth returns the number of calendar days in t's month.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// RemainingDays counts the days left in t's month, t's day included.
func RemainingDays(t time.Time) int {
	return DaysInMonth(t) - t.Day() + 1
}

// InvestmentTotal sums the amounts of the given investments.
func InvestmentTotal(investments []models.InvestmentEntry) float64 {
	return sumInvestments(investments).InexactFloat64()
}

func sumInvestments(investments []models.InvestmentEntry) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range investments {
		total = total.Add(money(inv.Amount))
	}
	return total
}

// money converts v to a decimal. NaN and infinities count as zero.
func money(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// ComputeBudget derives the daily budget, the remaining budget and the
// investment ratio. now selects the month whose remaining days spread the
// net income.
func ComputeBudget(income, expenses float64, investments []models.InvestmentEntry, now time.Time) BudgetFigures {
	days := RemainingDays(now)
	inc := money(income)
	net := inc.Sub(money(expenses))
	daily := net.Div(decimal.NewFromInt(int64(days)))
	total := sumInvestments(investments)
	remaining := daily.Sub(total)

	pct := decimal.Zero
	if inc.GreaterThan(decimal.Zero) {
		pct = total.Div(inc).Mul(hundred)
	}

	return BudgetFigures{
		RemainingDays:        days,
		DailyBudget:          daily.InexactFloat64(),
		InvestmentTotal:      total.InexactFloat64(),
		RemainingBudget:      remaining.InexactFloat64(),
		InvestmentPercentage: pct.InexactFloat64(),
	}
}

// InvestmentAdvice returns the message for an investment percentage.
func InvestmentAdvice(pct float64) string {
	switch {
	case pct > 30:
		return fmt.Sprintf("⚠️ You're investing %.1f%% of your income. Consider reducing investments to maintain financial stability.", pct)
	case pct > 20:
		return fmt.Sprintf("✅ Good investment ratio! You're investing %.1f%% of your income.", pct)
	case pct > 10:
		return fmt.Sprintf("💡 Consider increasing your investments. You're only investing %.1f%% of your income.", pct)
	default:
		return fmt.Sprintf("📈 Start investing! You're only investing %.1f%% of your income.", pct)
	}
}

// SpendingAdvice returns the message for the remaining budget of a day.
func SpendingAdvice(daily, remaining float64) string {
	switch {
	case remaining < 0:
		return fmt.Sprintf("🚨 You're overspending by $%.2f today. Cut back on expenses.", -remaining)
	case remaining < daily*0.5:
		return fmt.Sprintf("⚠️ You have $%.2f left for today. Spend wisely!", remaining)
	default:
		return fmt.Sprintf("💰 You have $%.2f left for today. Great job managing your budget!", remaining)
	}
}

// BudgetAdvice joins the investment and spending messages.
func BudgetAdvice(f BudgetFigures) string {
	return InvestmentAdvice(f.InvestmentPercentage) + "\n" + SpendingAdvice(f.DailyBudget, f.RemainingBudget)
}

// DeriveBudget fills the derived fields of e from its income, expenses and
// the investments recorded for its date.
func DeriveBudget(e *models.BudgetEntry, investments []models.InvestmentEntry, now time.Time) BudgetFigures {
	f := ComputeBudget(e.MonthlyIncome, e.MonthlyExpenses, investments, now)
	e.DailyBudget = f.DailyBudget
	e.RemainingBudget = f.RemainingBudget
	e.InvestmentTotal = f.InvestmentTotal
	e.Advice = BudgetAdvice(f)
	return f
}
