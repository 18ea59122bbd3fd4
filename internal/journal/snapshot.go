package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"moodvibe/internal/derive"
	"moodvibe/internal/errors"
	"moodvibe/internal/logging"
	"moodvibe/internal/models"
)

// Browser storage keys used by the web version of the journal.
const (
	LocalStorageMoods       = "moodvibe-entries"
	LocalStorageHealth      = "moodvibe-health-entries"
	LocalStorageBudgets     = "moodvibe-budget-entries"
	LocalStorageInvestments = "moodvibe-investments"
)

// ImportResult counts what an import stored and what it dropped.
type ImportResult struct {
	Moods       int `json:"moods"`
	Health      int `json:"health"`
	Budgets     int `json:"budgets"`
	Investments int `json:"investments"`
	Skipped     int `json:"skipped"`
}

// Snapshot returns the whole journal in its persisted layout.
func (s *Service) Snapshot(ctx context.Context) *models.Snapshot {
	return &models.Snapshot{
		Moods:       s.Moods(ctx),
		Health:      s.Health(ctx),
		Budgets:     s.Budgets(ctx),
		Investments: s.AllInvestments(ctx),
	}
}

// Import validates every entry of snap and stores the valid ones. Invalid
// entries are logged and skipped.
func (s *Service) Import(ctx context.Context, snap *models.Snapshot) (ImportResult, error) {
	clean, result := s.sanitize(snap)
	if err := s.store.SaveSnapshot(ctx, clean); err != nil {
		return ImportResult{}, errors.Wrap(err, "importing snapshot")
	}
	l := logging.WithOperation(s.logger, "import")
	l.Info().
		Int("moods", result.Moods).
		Int("health", result.Health).
		Int("budgets", result.Budgets).
		Int("investments", result.Investments).
		Int("skipped", result.Skipped).
		Msg("Snapshot imported")
	return result, nil
}

func (s *Service) sanitize(snap *models.Snapshot) (*models.Snapshot, ImportResult) {
	out := models.NewSnapshot()
	var result ImportResult

	logger := logging.WithOperation(s.logger, "import")
	skip := func(category, key string, err error) {
		result.Skipped++
		l := logging.WithDate(logging.WithCategory(logger, category), key)
		l.Warn().Err(err).Msg("Skipping invalid entry")
	}

	for key, e := range snap.Moods {
		day, err := models.ParseDateKey(key)
		if err != nil {
			skip("mood", key, err)
			continue
		}
		m, err := models.ParseMood(string(e.Mood))
		if err != nil {
			skip("mood", key, err)
			continue
		}
		e.Date = models.DateKey(day)
		e.Mood = m
		e.Emoji = m.Emoji()
		out.Moods[e.Date] = e
		result.Moods++
	}

	for key, e := range snap.Health {
		day, err := models.ParseDateKey(key)
		if err != nil {
			skip("health", key, err)
			continue
		}
		e.Date = models.DateKey(day)
		intensity, err := models.ParseIntensity(string(e.Exercise.Intensity))
		if err != nil {
			intensity = models.IntensityModerate
		}
		e.Exercise.Intensity = intensity
		derive.DeriveHealth(&e)
		out.Health[e.Date] = e
		result.Health++
	}

	for key, list := range snap.Investments {
		day, err := models.ParseDateKey(key)
		if err != nil {
			skip("investment", key, err)
			continue
		}
		date := models.DateKey(day)
		kept := make([]models.InvestmentEntry, 0, len(list))
		for _, inv := range list {
			if err := checkInvestmentAmount(inv.Amount); err != nil {
				skip("investment", key, err)
				continue
			}
			t, err := models.ParseInvestmentType(string(inv.Type))
			if err != nil {
				skip("investment", key, err)
				continue
			}
			inv.Type = t
			inv.Date = date
			if inv.ID == "" {
				inv.ID = s.newID()
			}
			kept = append(kept, inv)
		}
		out.Investments[date] = kept
		result.Investments += len(kept)
	}

	// Budgets are re-derived against the investments kept above.
	for key, e := range snap.Budgets {
		day, err := models.ParseDateKey(key)
		if err != nil {
			skip("budget", key, err)
			continue
		}
		if err := checkBudgetInput(e.MonthlyIncome, e.MonthlyExpenses); err != nil {
			skip("budget", key, err)
			continue
		}
		e.Date = models.DateKey(day)
		if e.ID == "" {
			e.ID = s.newID()
		}
		derive.DeriveBudget(&e, out.Investments[e.Date], s.now())
		out.Budgets[e.Date] = e
		result.Budgets++
	}

	return out, result
}

// DecodeImport parses either a JSON snapshot or a browser localStorage dump.
// A dump is recognised by its moodvibe-* keys.
func DecodeImport(data []byte, logger zerolog.Logger) (*models.Snapshot, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, errors.NewValidationError("import", "file", "not a JSON object: "+err.Error())
	}

	for key := range top {
		if strings.HasPrefix(key, "moodvibe-") {
			return decodeLocalStorage(top, logger), nil
		}
	}

	snap := models.NewSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, errors.NewValidationError("import", "file", "invalid snapshot: "+err.Error())
	}
	if snap.Moods == nil {
		snap.Moods = make(map[string]models.MoodEntry)
	}
	if snap.Health == nil {
		snap.Health = make(map[string]models.HealthEntry)
	}
	if snap.Budgets == nil {
		snap.Budgets = make(map[string]models.BudgetEntry)
	}
	if snap.Investments == nil {
		snap.Investments = make(map[string][]models.InvestmentEntry)
	}
	return snap, nil
}

// decodeLocalStorage reads each known key. A key that fails to parse is
// logged and treated as empty.
func decodeLocalStorage(top map[string]json.RawMessage, logger zerolog.Logger) *models.Snapshot {
	snap := models.NewSnapshot()
	loadKey(top, LocalStorageMoods, snap.Moods, logger)
	loadKey(top, LocalStorageHealth, snap.Health, logger)
	loadKey(top, LocalStorageBudgets, snap.Budgets, logger)
	loadKey(top, LocalStorageInvestments, snap.Investments, logger)
	return snap
}

func loadKey[V any](top map[string]json.RawMessage, key string, dst map[string]V, logger zerolog.Logger) {
	raw, ok := top[key]
	if !ok {
		return
	}
	var decoded map[string]V
	if err := decodeStorageValue(raw, &decoded); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to parse stored data, treating as empty")
		return
	}
	for k, v := range decoded {
		dst[k] = v
	}
}

// decodeStorageValue accepts a value stored either as a JSON document or as a
// string holding one, which is how browser storage keeps it.
func decodeStorageValue(raw json.RawMessage, target interface{}) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return err
		}
		raw = json.RawMessage(inner)
	}
	return json.Unmarshal(raw, target)
}
