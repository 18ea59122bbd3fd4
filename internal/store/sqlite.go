// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "moodvibe/internal/errors"
	"moodvibe/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db        *sql.DB
	mu        sync.RWMutex
	syncTimes map[string]time.Time
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// NewSQLiteStore creates a new SQLite-based journal store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{
		db:        db,
		syncTimes: make(map[string]time.Time),
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- One mood per day
	CREATE TABLE IF NOT EXISTS mood_entries (
		date TEXT PRIMARY KEY,
		mood TEXT NOT NULL,
		emoji TEXT NOT NULL,
		description TEXT,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- One health record per day, derived fields stored alongside inputs
	CREATE TABLE IF NOT EXISTS health_entries (
		date TEXT PRIMARY KEY,
		duration INTEGER NOT NULL,
		exercise_type TEXT,
		intensity TEXT NOT NULL,
		activities TEXT,
		sleep INTEGER NOT NULL,
		energy INTEGER NOT NULL,
		stress INTEGER NOT NULL,
		nutrition INTEGER NOT NULL,
		hydration INTEGER NOT NULL,
		pain INTEGER NOT NULL,
		score INTEGER NOT NULL,
		suggestions TEXT,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- One budget per day
	CREATE TABLE IF NOT EXISTS budget_entries (
		date TEXT PRIMARY KEY,
		id TEXT NOT NULL,
		monthly_income REAL NOT NULL,
		monthly_expenses REAL NOT NULL,
		daily_budget REAL NOT NULL,
		remaining_budget REAL NOT NULL,
		investment_total REAL NOT NULL,
		advice TEXT,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Many investments per day
	CREATE TABLE IF NOT EXISTS investments (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		type TEXT NOT NULL,
		amount REAL NOT NULL,
		description TEXT,
		is_good INTEGER DEFAULT 1,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Last successful push per sync target
	CREATE TABLE IF NOT EXISTS sync_status (
		target TEXT PRIMARY KEY,
		last_sync DATETIME NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_investments_date ON investments(date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func notFound(category, date string) error {
	return apperrors.NewDataError(category, date, "no entry", apperrors.ErrDataNotFound)
}

// ============================================================================
// Mood Methods
// ============================================================================

// SaveMood saves the mood entry for its day, replacing any existing one.
func (s *SQLiteStore) SaveMood(ctx context.Context, entry *models.MoodEntry) error {
	return saveMood(ctx, s.db, entry)
}

func saveMood(ctx context.Context, x execer, entry *models.MoodEntry) error {
	_, err := x.ExecContext(ctx, `
		INSERT OR REPLACE INTO mood_entries (date, mood, emoji, description, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.Date, string(entry.Mood), entry.Emoji, entry.Description, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save mood entry: %w", err)
	}
	return nil
}

// GetMood retrieves the mood entry for a day.
func (s *SQLiteStore) GetMood(ctx context.Context, date string) (*models.MoodEntry, error) {
	var e models.MoodEntry
	var mood string
	var desc sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT date, mood, emoji, description FROM mood_entries WHERE date = ?
	`, date).Scan(&e.Date, &mood, &e.Emoji, &desc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("mood", date)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mood entry: %w", err)
	}
	e.Mood = models.Mood(mood)
	e.Description = desc.String
	return &e, nil
}

// ListMoods returns all mood entries keyed by day.
func (s *SQLiteStore) ListMoods(ctx context.Context) (map[string]models.MoodEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, mood, emoji, description FROM mood_entries ORDER BY date
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query mood entries: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]models.MoodEntry)
	for rows.Next() {
		var e models.MoodEntry
		var mood string
		var desc sql.NullString
		if err := rows.Scan(&e.Date, &mood, &e.Emoji, &desc); err != nil {
			return nil, fmt.Errorf("failed to scan mood entry: %w", err)
		}
		e.Mood = models.Mood(mood)
		e.Description = desc.String
		entries[e.Date] = e
	}

	return entries, rows.Err()
}

// ============================================================================
// Health Methods
// ============================================================================

// SaveHealth saves the health entry for its day, replacing any existing one.
func (s *SQLiteStore) SaveHealth(ctx context.Context, entry *models.HealthEntry) error {
	return saveHealth(ctx, s.db, entry)
}

func saveHealth(ctx context.Context, x execer, entry *models.HealthEntry) error {
	activities, _ := json.Marshal(nonNil(entry.Exercise.Activities))
	suggestions, _ := json.Marshal(nonNil(entry.Suggestions))
	q := entry.HealthQuestions

	_, err := x.ExecContext(ctx, `
		INSERT OR REPLACE INTO health_entries (date, duration, exercise_type, intensity, activities, sleep, energy, stress, nutrition, hydration, pain, score, suggestions, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.Date, entry.Exercise.Duration, entry.Exercise.Type, string(entry.Exercise.Intensity), string(activities),
		q.Sleep, q.Energy, q.Stress, q.Nutrition, q.Hydration, q.Pain,
		entry.OverallHealthScore, string(suggestions), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save health entry: %w", err)
	}
	return nil
}

const healthColumns = `date, duration, exercise_type, intensity, activities, sleep, energy, stress, nutrition, hydration, pain, score, suggestions`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanHealth(row scanner) (models.HealthEntry, error) {
	var e models.HealthEntry
	var exType, activitiesJSON, suggestionsJSON sql.NullString
	var intensity string
	q := &e.HealthQuestions

	err := row.Scan(&e.Date, &e.Exercise.Duration, &exType, &intensity, &activitiesJSON,
		&q.Sleep, &q.Energy, &q.Stress, &q.Nutrition, &q.Hydration, &q.Pain,
		&e.OverallHealthScore, &suggestionsJSON)
	if err != nil {
		return e, err
	}

	e.Exercise.Type = exType.String
	e.Exercise.Intensity = models.Intensity(intensity)
	json.Unmarshal([]byte(activitiesJSON.String), &e.Exercise.Activities)
	json.Unmarshal([]byte(suggestionsJSON.String), &e.Suggestions)
	e.Exercise.Activities = nonNil(e.Exercise.Activities)
	e.Suggestions = nonNil(e.Suggestions)
	return e, nil
}

// GetHealth retrieves the health entry for a day.
func (s *SQLiteStore) GetHealth(ctx context.Context, date string) (*models.HealthEntry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+healthColumns+` FROM health_entries WHERE date = ?`, date)
	e, err := scanHealth(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("health", date)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get health entry: %w", err)
	}
	return &e, nil
}

// ListHealth returns all health entries keyed by day.
func (s *SQLiteStore) ListHealth(ctx context.Context) (map[string]models.HealthEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+healthColumns+` FROM health_entries ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("failed to query health entries: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]models.HealthEntry)
	for rows.Next() {
		e, err := scanHealth(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan health entry: %w", err)
		}
		entries[e.Date] = e
	}

	return entries, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// ============================================================================
// Budget Methods
// ============================================================================

// SaveBudget saves the budget entry for its day, replacing any existing one.
func (s *SQLiteStore) SaveBudget(ctx context.Context, entry *models.BudgetEntry) error {
	return saveBudget(ctx, s.db, entry)
}

func saveBudget(ctx context.Context, x execer, entry *models.BudgetEntry) error {
	_, err := x.ExecContext(ctx, `
		INSERT OR REPLACE INTO budget_entries (date, id, monthly_income, monthly_expenses, daily_budget, remaining_budget, investment_total, advice, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.Date, entry.ID, entry.MonthlyIncome, entry.MonthlyExpenses, entry.DailyBudget,
		entry.RemainingBudget, entry.InvestmentTotal, entry.Advice, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save budget entry: %w", err)
	}
	return nil
}

const budgetColumns = `date, id, monthly_income, monthly_expenses, daily_budget, remaining_budget, investment_total, advice`

func scanBudget(row scanner) (models.BudgetEntry, error) {
	var e models.BudgetEntry
	var advice sql.NullString
	err := row.Scan(&e.Date, &e.ID, &e.MonthlyIncome, &e.MonthlyExpenses, &e.DailyBudget,
		&e.RemainingBudget, &e.InvestmentTotal, &advice)
	e.Advice = advice.String
	return e, err
}

// GetBudget retrieves the budget entry for a day.
func (s *SQLiteStore) GetBudget(ctx context.Context, date string) (*models.BudgetEntry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+budgetColumns+` FROM budget_entries WHERE date = ?`, date)
	e, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("budget", date)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget entry: %w", err)
	}
	return &e, nil
}

// ListBudgets returns all budget entries keyed by day.
func (s *SQLiteStore) ListBudgets(ctx context.Context) (map[string]models.BudgetEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+budgetColumns+` FROM budget_entries ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget entries: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]models.BudgetEntry)
	for rows.Next() {
		e, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget entry: %w", err)
		}
		entries[e.Date] = e
	}

	return entries, rows.Err()
}

// ============================================================================
// Investment Methods
// ============================================================================

// AddInvestment appends an investment to its day.
func (s *SQLiteStore) AddInvestment(ctx context.Context, inv *models.InvestmentEntry) error {
	return addInvestment(ctx, s.db, inv)
}

func addInvestment(ctx context.Context, x execer, inv *models.InvestmentEntry) error {
	isGood := 0
	if inv.IsGoodInvestment {
		isGood = 1
	}
	_, err := x.ExecContext(ctx, `
		INSERT OR REPLACE INTO investments (id, date, type, amount, description, is_good, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, inv.ID, inv.Date, string(inv.Type), inv.Amount, inv.Description, isGood, inv.Notes, time.Now())
	if err != nil {
		return fmt.Errorf("failed to add investment: %w", err)
	}
	return nil
}

// RemoveInvestment deletes one investment from a day.
func (s *SQLiteStore) RemoveInvestment(ctx context.Context, date, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM investments WHERE date = ? AND id = ?`, date, id)
	if err != nil {
		return fmt.Errorf("failed to remove investment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.NewDataError("investment", date, "no investment with id "+id, apperrors.ErrDataNotFound)
	}
	return nil
}

const investmentColumns = `id, date, type, amount, description, is_good, notes`

func (s *SQLiteStore) queryInvestments(ctx context.Context, where string, args ...interface{}) ([]models.InvestmentEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+investmentColumns+` FROM investments `+where+` ORDER BY date, rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query investments: %w", err)
	}
	defer rows.Close()

	var out []models.InvestmentEntry
	for rows.Next() {
		var inv models.InvestmentEntry
		var kind string
		var desc, notes sql.NullString
		var isGood int
		if err := rows.Scan(&inv.ID, &inv.Date, &kind, &inv.Amount, &desc, &isGood, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		inv.Type = models.InvestmentType(kind)
		inv.Description = desc.String
		inv.Notes = notes.String
		inv.IsGoodInvestment = isGood == 1
		out = append(out, inv)
	}

	return out, rows.Err()
}

// ListInvestments returns the investments of one day in insertion order.
func (s *SQLiteStore) ListInvestments(ctx context.Context, date string) ([]models.InvestmentEntry, error) {
	return s.queryInvestments(ctx, "WHERE date = ?", date)
}

// AllInvestments returns every investment grouped by day.
func (s *SQLiteStore) AllInvestments(ctx context.Context) (map[string][]models.InvestmentEntry, error) {
	list, err := s.queryInvestments(ctx, "")
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.InvestmentEntry)
	for _, inv := range list {
		grouped[inv.Date] = append(grouped[inv.Date], inv)
	}
	return grouped, nil
}

// ============================================================================
// Bulk Methods
// ============================================================================

// SaveSnapshot writes every entry of snap in one transaction. Entries already
// stored for the same day are replaced; the investment list of a day present
// in snap replaces the stored list for that day.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap *models.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, e := range snap.Moods {
		e := e
		if err := saveMood(ctx, tx, &e); err != nil {
			return err
		}
	}
	for _, e := range snap.Health {
		e := e
		if err := saveHealth(ctx, tx, &e); err != nil {
			return err
		}
	}
	for _, e := range snap.Budgets {
		e := e
		if err := saveBudget(ctx, tx, &e); err != nil {
			return err
		}
	}
	for date, list := range snap.Investments {
		if _, err := tx.ExecContext(ctx, `DELETE FROM investments WHERE date = ?`, date); err != nil {
			return fmt.Errorf("failed to clear investments: %w", err)
		}
		for _, inv := range list {
			inv := inv
			if err := addInvestment(ctx, tx, &inv); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// ============================================================================
// Sync Methods
// ============================================================================

// GetLastSync returns the last successful push time for a sync target.
func (s *SQLiteStore) GetLastSync(target string) time.Time {
	s.mu.RLock()
	if t, ok := s.syncTimes[target]; ok {
		s.mu.RUnlock()
		return t
	}
	s.mu.RUnlock()

	var lastSync time.Time
	err := s.db.QueryRow(`
		SELECT last_sync FROM sync_status WHERE target = ?
	`, target).Scan(&lastSync)
	if err != nil {
		return time.Time{}
	}

	s.mu.Lock()
	s.syncTimes[target] = lastSync
	s.mu.Unlock()

	return lastSync
}

// SetLastSync records the last successful push time for a sync target.
func (s *SQLiteStore) SetLastSync(target string, t time.Time) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO sync_status (target, last_sync, updated_at)
		VALUES (?, ?, ?)
	`, target, t, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set last sync: %w", err)
	}

	s.mu.Lock()
	s.syncTimes[target] = t
	s.mu.Unlock()

	return nil
}
