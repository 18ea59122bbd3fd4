// Package journal is the repository layer over the store: it validates input,
// runs derivations on every save and exposes typed reads per category.
package journal

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"moodvibe/internal/derive"
	"moodvibe/internal/errors"
	"moodvibe/internal/logging"
	"moodvibe/internal/models"
	"moodvibe/internal/store"
)

// Service manages journal entries.
type Service struct {
	store  store.Store
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for default dates and budget math.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides how budget and investment ids are assigned.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// NewService creates a journal service backed by st.
func NewService(st store.Store, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  st,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// Today returns the day key for the service clock.
func (s *Service) Today() string {
	return models.DateKey(s.now())
}

// resolveDate defaults an empty key to today and validates the rest.
func (s *Service) resolveDate(date string) (string, error) {
	if date == "" {
		return s.Today(), nil
	}
	t, err := models.ParseDateKey(date)
	if err != nil {
		return "", err
	}
	return models.DateKey(t), nil
}

// checkFinite rejects NaN and infinite money values.
func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.NewValidationErrorWrap(field, v, errors.ErrInvalidAmount)
	}
	return nil
}

// checkBudgetInput validates monthly income and expenses.
func checkBudgetInput(income, expenses float64) error {
	if err := checkFinite("income", income); err != nil {
		return err
	}
	if err := checkFinite("expenses", expenses); err != nil {
		return err
	}
	if income < 0 {
		return errors.NewValidationError("income", income, "must not be negative")
	}
	if expenses < 0 {
		return errors.NewValidationError("expenses", expenses, "must not be negative")
	}
	return nil
}

// checkInvestmentAmount requires a finite amount above zero.
func checkInvestmentAmount(amount float64) error {
	if err := checkFinite("amount", amount); err != nil {
		return err
	}
	if !(amount > 0) {
		return errors.NewValidationErrorWrap("amount", amount, errors.ErrInvalidAmount)
	}
	return nil
}

// ============================================================================
// Mood
// ============================================================================

// SaveMood records the mood for a day, replacing any earlier entry.
func (s *Service) SaveMood(ctx context.Context, date, mood, description string) (*models.MoodEntry, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	m, err := models.ParseMood(mood)
	if err != nil {
		return nil, err
	}

	entry := &models.MoodEntry{
		Date:        day,
		Mood:        m,
		Emoji:       m.Emoji(),
		Description: description,
	}
	if err := s.store.SaveMood(ctx, entry); err != nil {
		return nil, errors.Wrap(err, "saving mood entry")
	}
	logging.LogSave(s.logger, "mood", day)
	return entry, nil
}

// GetMood returns the mood entry for a day.
func (s *Service) GetMood(ctx context.Context, date string) (*models.MoodEntry, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	return s.store.GetMood(ctx, day)
}

// Moods returns every mood entry. Read failures are logged and yield an
// empty collection.
func (s *Service) Moods(ctx context.Context) map[string]models.MoodEntry {
	entries, err := s.store.ListMoods(ctx)
	if err != nil {
		l := logging.WithCategory(s.logger, "mood")
		l.Error().Err(err).Msg("Failed to load entries")
		return map[string]models.MoodEntry{}
	}
	return entries
}

// MoodStats summarises every mood entry as of today.
func (s *Service) MoodStats(ctx context.Context) derive.MoodStats {
	return derive.ComputeMoodStats(s.Moods(ctx), s.now())
}

// ============================================================================
// Health
// ============================================================================

// SaveHealth derives score and suggestions for entry and records it for its
// day, replacing any earlier entry.
func (s *Service) SaveHealth(ctx context.Context, entry models.HealthEntry) (*models.HealthEntry, error) {
	day, err := s.resolveDate(entry.Date)
	if err != nil {
		return nil, err
	}
	entry.Date = day

	if entry.Exercise.Intensity != "" {
		if entry.Exercise.Intensity, err = models.ParseIntensity(string(entry.Exercise.Intensity)); err != nil {
			return nil, err
		}
	}

	derive.DeriveHealth(&entry)
	if err := s.store.SaveHealth(ctx, &entry); err != nil {
		return nil, errors.Wrap(err, "saving health entry")
	}
	logging.LogSave(s.logger, "health", day)
	return &entry, nil
}

// GetHealth returns the health entry for a day.
func (s *Service) GetHealth(ctx context.Context, date string) (*models.HealthEntry, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	return s.store.GetHealth(ctx, day)
}

// Health returns every health entry. Read failures are logged and yield an
// empty collection.
func (s *Service) Health(ctx context.Context) map[string]models.HealthEntry {
	entries, err := s.store.ListHealth(ctx)
	if err != nil {
		l := logging.WithCategory(s.logger, "health")
		l.Error().Err(err).Msg("Failed to load entries")
		return map[string]models.HealthEntry{}
	}
	return entries
}

// HealthStats summarises every health entry as of today.
func (s *Service) HealthStats(ctx context.Context) derive.HealthStats {
	return derive.ComputeHealthStats(s.Health(ctx), s.now())
}

// ============================================================================
// Budget
// ============================================================================

// SaveBudget records monthly income and expenses for a day and derives the
// daily figures from that day's investments.
func (s *Service) SaveBudget(ctx context.Context, date string, income, expenses float64) (*models.BudgetEntry, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	if err := checkBudgetInput(income, expenses); err != nil {
		return nil, err
	}

	entry := &models.BudgetEntry{
		Date:            day,
		MonthlyIncome:   income,
		MonthlyExpenses: expenses,
	}
	if existing, err := s.store.GetBudget(ctx, day); err == nil {
		entry.ID = existing.ID
	} else if !errors.Is(err, errors.ErrDataNotFound) {
		return nil, errors.Wrap(err, "loading budget entry")
	}
	if entry.ID == "" {
		entry.ID = s.newID()
	}

	investments, err := s.store.ListInvestments(ctx, day)
	if err != nil {
		return nil, errors.Wrap(err, "loading investments")
	}
	derive.DeriveBudget(entry, investments, s.now())

	if err := s.store.SaveBudget(ctx, entry); err != nil {
		return nil, errors.Wrap(err, "saving budget entry")
	}
	logging.LogSave(s.logger, "budget", day)
	return entry, nil
}

// GetBudget returns the budget entry for a day.
func (s *Service) GetBudget(ctx context.Context, date string) (*models.BudgetEntry, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	return s.store.GetBudget(ctx, day)
}

// Budgets returns every budget entry. Read failures are logged and yield an
// empty collection.
func (s *Service) Budgets(ctx context.Context) map[string]models.BudgetEntry {
	entries, err := s.store.ListBudgets(ctx)
	if err != nil {
		l := logging.WithCategory(s.logger, "budget")
		l.Error().Err(err).Msg("Failed to load entries")
		return map[string]models.BudgetEntry{}
	}
	return entries
}

// ============================================================================
// Investments
// ============================================================================

// AddInvestment validates inv, assigns it an id and appends it to its day.
// A budget already recorded for that day is re-derived.
func (s *Service) AddInvestment(ctx context.Context, inv models.InvestmentEntry) (*models.InvestmentEntry, error) {
	day, err := s.resolveDate(inv.Date)
	if err != nil {
		return nil, err
	}
	if err := checkInvestmentAmount(inv.Amount); err != nil {
		return nil, err
	}
	if inv.Type, err = models.ParseInvestmentType(string(inv.Type)); err != nil {
		return nil, err
	}

	inv.Date = day
	inv.ID = s.newID()
	if err := s.store.AddInvestment(ctx, &inv); err != nil {
		return nil, errors.Wrap(err, "adding investment")
	}
	logging.LogSave(s.logger, "investment", day)

	if err := s.rederiveBudget(ctx, day); err != nil {
		return &inv, err
	}
	return &inv, nil
}

// RemoveInvestment deletes an investment and re-derives that day's budget.
func (s *Service) RemoveInvestment(ctx context.Context, date, id string) error {
	day, err := s.resolveDate(date)
	if err != nil {
		return err
	}
	if err := s.store.RemoveInvestment(ctx, day, id); err != nil {
		return err
	}
	l := logging.WithDate(s.logger, day)
	l.Info().Str("id", id).Msg("Investment removed")
	return s.rederiveBudget(ctx, day)
}

// Investments returns the investments of one day. Read failures are logged
// and yield an empty list.
func (s *Service) Investments(ctx context.Context, date string) []models.InvestmentEntry {
	day, err := s.resolveDate(date)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Invalid date for investments")
		return []models.InvestmentEntry{}
	}
	list, err := s.store.ListInvestments(ctx, day)
	if err != nil {
		l := logging.WithCategory(s.logger, "investment")
		l.Error().Err(err).Msg("Failed to load entries")
		return []models.InvestmentEntry{}
	}
	return list
}

// AllInvestments returns every investment grouped by day.
func (s *Service) AllInvestments(ctx context.Context) map[string][]models.InvestmentEntry {
	grouped, err := s.store.AllInvestments(ctx)
	if err != nil {
		l := logging.WithCategory(s.logger, "investment")
		l.Error().Err(err).Msg("Failed to load entries")
		return map[string][]models.InvestmentEntry{}
	}
	return grouped
}

func (s *Service) rederiveBudget(ctx context.Context, day string) error {
	entry, err := s.store.GetBudget(ctx, day)
	if errors.Is(err, errors.ErrDataNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "loading budget entry")
	}

	investments, err := s.store.ListInvestments(ctx, day)
	if err != nil {
		return errors.Wrap(err, "loading investments")
	}
	derive.DeriveBudget(entry, investments, s.now())
	if err := s.store.SaveBudget(ctx, entry); err != nil {
		return errors.Wrapf(err, "saving re-derived budget for %s", day)
	}
	l := logging.WithDate(s.logger, day)
	l.Debug().Float64("remaining", entry.RemainingBudget).Msg("Budget re-derived")
	return nil
}
