package journal

import (
	"context"
	"math"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"moodvibe/internal/errors"
	"moodvibe/internal/models"
)

func TestDecodeImport_LocalStorageDump(t *testing.T) {
	// Browser storage keeps each collection as a JSON string.
	moods := `{"2024-05-01":{"date":"2024-05-01","mood":"happy","emoji":"😊","description":"sun"}}`
	dump := `{
		"moodvibe-entries": ` + strconv.Quote(moods) + `,
		"moodvibe-health-entries": "not json",
		"moodvibe-investments": {"2024-05-01":[{"id":"i1","date":"2024-05-01","type":"stocks","amount":10}]}
	}`

	snap, err := DecodeImport([]byte(dump), zerolog.Nop())
	if err != nil {
		t.Fatalf("DecodeImport: %v", err)
	}
	if snap.Moods["2024-05-01"].Description != "sun" {
		t.Errorf("moods = %+v", snap.Moods)
	}
	if len(snap.Health) != 0 {
		t.Errorf("unparseable key should be empty, got %+v", snap.Health)
	}
	if len(snap.Investments["2024-05-01"]) != 1 {
		t.Errorf("investments = %+v", snap.Investments)
	}
	if snap.Budgets == nil {
		t.Error("missing key should decode to an empty map")
	}
}

func TestDecodeImport_Snapshot(t *testing.T) {
	snap, err := DecodeImport([]byte(`{"moods":{"2024-05-01":{"date":"2024-05-01","mood":"calm"}}}`), zerolog.Nop())
	if err != nil {
		t.Fatalf("DecodeImport: %v", err)
	}
	if len(snap.Moods) != 1 || snap.Health == nil || snap.Investments == nil {
		t.Errorf("snapshot = %+v", snap)
	}

	if _, err := DecodeImport([]byte(`[1,2,3]`), zerolog.Nop()); !errors.Is(err, errors.ErrInputValidation) {
		t.Errorf("array input error = %v", err)
	}
}

func TestImport_SkipsInvalidEntries(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	snap := models.NewSnapshot()
	snap.Moods["2024-05-01"] = models.MoodEntry{Mood: "HAPPY", Emoji: "x"}
	snap.Moods["2024-05-02"] = models.MoodEntry{Mood: "furious"}
	snap.Moods["yesterday"] = models.MoodEntry{Mood: models.MoodSad}
	snap.Health["2024-05-01"] = models.HealthEntry{
		Exercise:        models.Exercise{Duration: 30},
		HealthQuestions: models.HealthQuestions{Sleep: 5, Energy: 5, Stress: 5, Nutrition: 5, Hydration: 5, Pain: 5},
	}
	snap.Investments["2024-05-01"] = []models.InvestmentEntry{
		{Type: models.InvestmentBonds, Amount: 25},
		{Type: models.InvestmentBonds, Amount: 0},
		{Type: "lottery", Amount: 5},
	}

	result, err := svc.Import(ctx, snap)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	want := ImportResult{Moods: 1, Health: 1, Investments: 1, Skipped: 4}
	if result != want {
		t.Errorf("result = %+v, want %+v", result, want)
	}

	mood, err := svc.GetMood(ctx, "2024-05-01")
	if err != nil {
		t.Fatalf("GetMood: %v", err)
	}
	if mood.Mood != models.MoodHappy || mood.Emoji != "😊" || mood.Date != "2024-05-01" {
		t.Errorf("imported mood = %+v", mood)
	}

	health, err := svc.GetHealth(ctx, "2024-05-01")
	if err != nil {
		t.Fatalf("GetHealth: %v", err)
	}
	if health.OverallHealthScore != 25 || health.Exercise.Intensity != models.IntensityModerate {
		t.Errorf("imported health was not re-derived: %+v", health)
	}

	invs := svc.Investments(ctx, "2024-05-01")
	if len(invs) != 1 || invs[0].ID == "" {
		t.Errorf("investments = %+v", invs)
	}
}

func TestImport_BudgetsValidatedAndRederived(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	snap := models.NewSnapshot()
	snap.Budgets["2024-06-01"] = models.BudgetEntry{
		MonthlyIncome: 3000, MonthlyExpenses: 1500,
		DailyBudget: 999, RemainingBudget: 999, InvestmentTotal: 999,
	}
	snap.Budgets["2024-06-02"] = models.BudgetEntry{MonthlyIncome: -10}
	snap.Budgets["2024-06-03"] = models.BudgetEntry{MonthlyIncome: math.NaN()}
	snap.Investments["2024-06-01"] = []models.InvestmentEntry{
		{Type: models.InvestmentStocks, Amount: 20},
		{Type: models.InvestmentStocks, Amount: math.Inf(1)},
	}

	result, err := svc.Import(ctx, snap)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	want := ImportResult{Budgets: 1, Investments: 1, Skipped: 3}
	if result != want {
		t.Errorf("result = %+v, want %+v", result, want)
	}

	budget, err := svc.GetBudget(ctx, "2024-06-01")
	if err != nil {
		t.Fatalf("GetBudget: %v", err)
	}
	if budget.ID == "" || budget.DailyBudget != 50 || budget.InvestmentTotal != 20 || budget.RemainingBudget != 30 {
		t.Errorf("imported budget was not re-derived: %+v", budget)
	}
	for _, date := range []string{"2024-06-02", "2024-06-03"} {
		if _, err := svc.GetBudget(ctx, date); !errors.Is(err, errors.ErrDataNotFound) {
			t.Errorf("%s: invalid budget was stored: %v", date, err)
		}
	}
}
