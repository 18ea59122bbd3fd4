package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"moodvibe/internal/derive"
	"moodvibe/internal/errors"
	"moodvibe/internal/models"
)

// Kind selects which part of the journal is exported.
type Kind string

const (
	KindMood     Kind = "mood"
	KindHealth   Kind = "health"
	KindBudget   Kind = "budget"
	KindCombined Kind = "combined"
)

// AllKinds lists every export kind.
var AllKinds = []Kind{KindMood, KindHealth, KindBudget, KindCombined}

// Format is an export file format.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

var baseNames = map[Kind]string{
	KindMood:     "mood-journal",
	KindHealth:   "health-tracking",
	KindBudget:   "budget-tracking",
	KindCombined: "complete-journal",
}

var extensions = map[Format]string{
	FormatText: "txt",
	FormatCSV:  "csv",
	FormatJSON: "json",
}

// ParseKind validates an export kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := baseNames[k]; !ok {
		return "", errors.NewValidationError("kind", s, "must be one of mood, health, budget, combined")
	}
	return k, nil
}

// ParseFormat validates an export format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := extensions[f]; !ok {
		return "", errors.NewValidationError("format", s, "must be one of text, csv, json")
	}
	return f, nil
}

// FileName returns the export file name for kind on day, e.g.
// mood-journal-2024-06-01.txt.
func FileName(kind Kind, format Format, day time.Time) string {
	return fmt.Sprintf("%s-%s.%s", baseNames[kind], models.DateKey(day), extensions[format])
}

// Text renders the text report for kind.
func Text(kind Kind, snap *models.Snapshot, generated time.Time) (string, error) {
	switch kind {
	case KindMood:
		return MoodReport(snap.Moods, generated), nil
	case KindHealth:
		return HealthReport(snap.Health, generated), nil
	case KindBudget:
		return BudgetReport(snap.Budgets, generated), nil
	case KindCombined:
		return CombinedReport(snap, generated), nil
	default:
		return "", errors.NewValidationError("kind", kind, "unknown export kind")
	}
}

// healthRow flattens a health entry for CSV.
type healthRow struct {
	Date        string `csv:"date"`
	Duration    int    `csv:"exercise_minutes"`
	Type        string `csv:"exercise_type"`
	Intensity   string `csv:"intensity"`
	Activities  string `csv:"activities"`
	Sleep       int    `csv:"sleep"`
	Energy      int    `csv:"energy"`
	Stress      int    `csv:"stress"`
	Nutrition   int    `csv:"nutrition"`
	Hydration   int    `csv:"hydration"`
	Pain        int    `csv:"pain"`
	Score       int    `csv:"health_score"`
	Suggestions string `csv:"suggestions"`
}

// budgetRow flattens a budget entry for CSV.
type budgetRow struct {
	Date            string  `csv:"date"`
	MonthlyIncome   float64 `csv:"monthly_income"`
	MonthlyExpenses float64 `csv:"monthly_expenses"`
	DailyBudget     float64 `csv:"daily_budget"`
	RemainingBudget float64 `csv:"remaining_budget"`
	InvestmentTotal float64 `csv:"investment_total"`
	Advice          string  `csv:"advice"`
}

// WriteCSV writes one row per day for kind. The combined report has no CSV
// form.
func WriteCSV(w io.Writer, kind Kind, snap *models.Snapshot) error {
	switch kind {
	case KindMood:
		rows := make([]*models.MoodEntry, 0, len(snap.Moods))
		for _, d := range derive.SortedDates(snap.Moods) {
			e := snap.Moods[d]
			rows = append(rows, &e)
		}
		return gocsv.Marshal(&rows, w)

	case KindHealth:
		rows := make([]*healthRow, 0, len(snap.Health))
		for _, d := range derive.SortedDates(snap.Health) {
			e := snap.Health[d]
			q := e.HealthQuestions
			rows = append(rows, &healthRow{
				Date:        e.Date,
				Duration:    e.Exercise.Duration,
				Type:        e.Exercise.Type,
				Intensity:   string(e.Exercise.Intensity),
				Activities:  strings.Join(e.Exercise.Activities, "; "),
				Sleep:       q.Sleep,
				Energy:      q.Energy,
				Stress:      q.Stress,
				Nutrition:   q.Nutrition,
				Hydration:   q.Hydration,
				Pain:        q.Pain,
				Score:       e.OverallHealthScore,
				Suggestions: strings.Join(e.Suggestions, " | "),
			})
		}
		return gocsv.Marshal(&rows, w)

	case KindBudget:
		rows := make([]*budgetRow, 0, len(snap.Budgets))
		for _, d := range derive.SortedDates(snap.Budgets) {
			e := snap.Budgets[d]
			rows = append(rows, &budgetRow{
				Date:            e.Date,
				MonthlyIncome:   e.MonthlyIncome,
				MonthlyExpenses: e.MonthlyExpenses,
				DailyBudget:     e.DailyBudget,
				RemainingBudget: e.RemainingBudget,
				InvestmentTotal: e.InvestmentTotal,
				Advice:          strings.ReplaceAll(e.Advice, "\n", " "),
			})
		}
		return gocsv.Marshal(&rows, w)

	default:
		return errors.NewValidationError("kind", kind, "CSV export supports mood, health and budget")
	}
}

// WriteJSON writes the part of snap selected by kind in its persisted layout.
// The combined kind writes the whole snapshot.
func WriteJSON(w io.Writer, kind Kind, snap *models.Snapshot) error {
	var v interface{}
	switch kind {
	case KindMood:
		v = snap.Moods
	case KindHealth:
		v = snap.Health
	case KindBudget:
		v = map[string]interface{}{"budgets": snap.Budgets, "investments": snap.Investments}
	case KindCombined:
		v = snap
	default:
		return errors.NewValidationError("kind", kind, "unknown export kind")
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteFile renders kind in format and writes it to dir, returning the path.
func WriteFile(dir string, kind Kind, format Format, snap *models.Snapshot, generated time.Time) (string, error) {
	var buf bytes.Buffer
	switch format {
	case FormatText:
		text, err := Text(kind, snap, generated)
		if err != nil {
			return "", err
		}
		buf.WriteString(text)
	case FormatCSV:
		if err := WriteCSV(&buf, kind, snap); err != nil {
			return "", err
		}
	case FormatJSON:
		if err := WriteJSON(&buf, kind, snap); err != nil {
			return "", err
		}
	default:
		return "", errors.NewValidationError("format", format, "unknown export format")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, FileName(kind, format, generated))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}
	return path, nil
}
