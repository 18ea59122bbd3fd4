package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"moodvibe/internal/errors"
	"moodvibe/internal/models"
)

var generated = time.Date(2024, time.June, 1, 9, 5, 0, 0, time.UTC)

func sampleSnapshot() *models.Snapshot {
	snap := models.NewSnapshot()
	snap.Moods["2024-05-30"] = models.MoodEntry{Date: "2024-05-30", Mood: models.MoodHappy, Emoji: "😊", Description: "sunny"}
	snap.Moods["2024-05-28"] = models.MoodEntry{Date: "2024-05-28", Mood: models.MoodCalm, Emoji: "😌"}
	snap.Moods["2024-05-31"] = models.MoodEntry{Date: "2024-05-31", Mood: models.MoodHappy, Emoji: "😊"}
	snap.Health["2024-05-29"] = models.HealthEntry{
		Date:               "2024-05-29",
		Exercise:           models.Exercise{Duration: 30, Type: "Running", Intensity: models.IntensityHigh, Activities: []string{"warmup", "run"}},
		HealthQuestions:    models.HealthQuestions{Sleep: 5, Energy: 5, Stress: 5, Nutrition: 5, Hydration: 5, Pain: 5},
		OverallHealthScore: 25,
		Suggestions:        []string{"Great job on your exercise routine! Keep it up!"},
	}
	snap.Budgets["2024-05-30"] = models.BudgetEntry{
		ID: "b1", Date: "2024-05-30", MonthlyIncome: 3000, MonthlyExpenses: 1500,
		DailyBudget: 50, RemainingBudget: 30, InvestmentTotal: 20, Advice: "line one\nline two",
	}
	return snap
}

func TestMoodReport(t *testing.T) {
	got := MoodReport(sampleSnapshot().Moods, generated)

	for _, want := range []string{
		"MOOD JOURNAL REPORT\n==================\n\n",
		"Generated on: Saturday, June 1, 2024 at 09:05 AM\n",
		"Total Entries: 3\n",
		"Calm: 1 entries (33.3%)\nHappy: 2 entries (66.7%)\n",
		"1. Tuesday, May 28, 2024\n   Mood: 😌 Calm\n\n",
		"2. Thursday, May 30, 2024\n   Mood: 😊 Happy\n   Description: sunny\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("mood report missing %q\n%s", want, got)
		}
	}
}

func TestHealthReport(t *testing.T) {
	got := HealthReport(sampleSnapshot().Health, generated)
	for _, want := range []string{
		"Total Exercise Time: 30 minutes\n",
		"Average Health Score: 25.0/100\n",
		"EXERCISE TYPES:\n---------------\nRunning: 1 times\n",
		"   Exercise: 30 minutes (Running)\n   Intensity: high\n   Activities: warmup, run\n",
		"   Suggestions:\n     - Great job on your exercise routine! Keep it up!\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("health report missing %q\n%s", want, got)
		}
	}
}

func TestEmptyReports(t *testing.T) {
	if got := HealthReport(nil, generated); !strings.HasSuffix(got, "Total Entries: 0\n\nNo health data available.\n") {
		t.Errorf("empty health report = %q", got)
	}
	if got := BudgetReport(nil, generated); !strings.HasSuffix(got, "Total Entries: 0\n\nNo budget data available.\n") {
		t.Errorf("empty budget report = %q", got)
	}
}

func TestBudgetReport(t *testing.T) {
	got := BudgetReport(sampleSnapshot().Budgets, generated)
	for _, want := range []string{
		"Total Income: $3000.00\n",
		"Investment Ratio: 0.7%\n",
		"   Remaining Budget: $30.00\n",
		"   Advice: line one\nline two\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("budget report missing %q\n%s", want, got)
		}
	}
}

func TestCombinedReport(t *testing.T) {
	snap := sampleSnapshot()
	got := CombinedReport(snap, generated)

	for _, want := range []string{
		"Total Days Tracked: 4\nMood Entries: 3\nHealth Entries: 1\nBudget Entries: 1\n",
		"1. Tuesday, May 28, 2024\n   " + strings.Repeat("=", 50) + "\n   MOOD: 😌 Calm\n   HEALTH: No entry\n   BUDGET: No entry\n",
		"2. Wednesday, May 29, 2024\n   " + strings.Repeat("=", 50) + "\n   MOOD: No entry\n   HEALTH SCORE: 25/100\n",
		"   SLEEP: 5/10 | ENERGY: 5/10\n",
		"   BUDGET:\n     Monthly Income: $3000.00\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("combined report missing %q\n%s", want, got)
		}
	}
}

// Property: the combined report covers exactly the union of days, in
// ascending order, and counts match the collections.
func TestProperty_CombinedDates(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	offsets := gen.SliceOf(gen.IntRange(0, 60))

	properties.Property("combined dates are the sorted union", prop.ForAll(
		func(moodDays, healthDays, budgetDays []int) bool {
			snap := models.NewSnapshot()
			want := make(map[string]bool)
			for _, o := range moodDays {
				d := models.DateKey(base.AddDate(0, 0, o))
				snap.Moods[d] = models.MoodEntry{Date: d, Mood: models.MoodSad, Emoji: "😢"}
				want[d] = true
			}
			for _, o := range healthDays {
				d := models.DateKey(base.AddDate(0, 0, o))
				snap.Health[d] = models.HealthEntry{Date: d}
				want[d] = true
			}
			for _, o := range budgetDays {
				d := models.DateKey(base.AddDate(0, 0, o))
				snap.Budgets[d] = models.BudgetEntry{Date: d}
				want[d] = true
			}

			dates := CombinedDates(snap)
			if len(dates) != len(want) {
				return false
			}
			for i, d := range dates {
				if !want[d] || (i > 0 && dates[i-1] >= d) {
					return false
				}
			}

			report := CombinedReport(snap, generated)
			return strings.Count(report, strings.Repeat("=", 50)+"\n") == len(dates)
		},
		offsets, offsets, offsets,
	))

	properties.TestingRun(t)
}

func TestFileName(t *testing.T) {
	tests := map[Kind]string{
		KindMood:     "mood-journal-2024-06-01.txt",
		KindHealth:   "health-tracking-2024-06-01.txt",
		KindBudget:   "budget-tracking-2024-06-01.txt",
		KindCombined: "complete-journal-2024-06-01.txt",
	}
	for kind, want := range tests {
		if got := FileName(kind, FormatText, generated); got != want {
			t.Errorf("FileName(%s) = %s, want %s", kind, got, want)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, KindMood, sampleSnapshot()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3:\n%s", len(lines), buf.String())
	}
	if lines[0] != "date,mood,emoji,description" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2024-05-28,calm,") {
		t.Errorf("first row = %q", lines[1])
	}

	if err := WriteCSV(&buf, KindCombined, sampleSnapshot()); !errors.Is(err, errors.ErrInputValidation) {
		t.Errorf("combined CSV error = %v", err)
	}
}

func TestWriteFile_JSONCombined(t *testing.T) {
	dir := t.TempDir()
	snap := sampleSnapshot()

	path, err := WriteFile(dir, KindCombined, FormatJSON, snap, generated)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if filepath.Base(path) != "complete-journal-2024-06-01.json" {
		t.Errorf("path = %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	decoded := models.NewSnapshot()
	if err := json.Unmarshal(data, decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded.Moods, snap.Moods) || !reflect.DeepEqual(decoded.Budgets, snap.Budgets) {
		t.Errorf("decoded snapshot differs")
	}
}

func TestParseKindAndFormat(t *testing.T) {
	if k, err := ParseKind("Health"); err != nil || k != KindHealth {
		t.Errorf("ParseKind(Health) = %s, %v", k, err)
	}
	if _, err := ParseKind("all"); err == nil {
		t.Error("ParseKind(all) should fail")
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, errors.ErrInputValidation) {
		t.Errorf("ParseFormat(xml) error = %v", err)
	}
}
