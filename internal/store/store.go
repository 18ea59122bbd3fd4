// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"moodvibe/internal/models"
)

// Store defines the interface for journal persistence.
// Mood, health and budget entries are keyed by day; saving replaces the
// entry for that day.
type Store interface {
	// Mood
	SaveMood(ctx context.Context, entry *models.MoodEntry) error
	GetMood(ctx context.Context, date string) (*models.MoodEntry, error)
	ListMoods(ctx context.Context) (map[string]models.MoodEntry, error)

	// Health
	SaveHealth(ctx context.Context, entry *models.HealthEntry) error
	GetHealth(ctx context.Context, date string) (*models.HealthEntry, error)
	ListHealth(ctx context.Context) (map[string]models.HealthEntry, error)

	// Budget
	SaveBudget(ctx context.Context, entry *models.BudgetEntry) error
	GetBudget(ctx context.Context, date string) (*models.BudgetEntry, error)
	ListBudgets(ctx context.Context) (map[string]models.BudgetEntry, error)

	// Investments
	AddInvestment(ctx context.Context, inv *models.InvestmentEntry) error
	RemoveInvestment(ctx context.Context, date, id string) error
	ListInvestments(ctx context.Context, date string) ([]models.InvestmentEntry, error)
	AllInvestments(ctx context.Context) (map[string][]models.InvestmentEntry, error)

	// Bulk
	SaveSnapshot(ctx context.Context, snap *models.Snapshot) error

	// Sync
	GetLastSync(target string) time.Time
	SetLastSync(target string, t time.Time) error

	// Lifecycle
	Close() error
}
