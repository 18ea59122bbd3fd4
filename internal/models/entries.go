package models

// MoodEntry is the mood recorded for one day.
type MoodEntry struct {
	Date        string `json:"date" csv:"date"`
	Mood        Mood   `json:"mood" csv:"mood"`
	Emoji       string `json:"emoji" csv:"emoji"`
	Description string `json:"description,omitempty" csv:"description"`
}

// Exercise describes the physical activity of a day.
type Exercise struct {
	Duration   int       `json:"duration"` // minutes
	Type       string    `json:"type"`
	Intensity  Intensity `json:"intensity"`
	Activities []string  `json:"activities"`
}

// HealthQuestions holds the self-reported 1-10 ratings.
// Pain is scored so that 10 means no pain.
type HealthQuestions struct {
	Sleep     int `json:"sleep"`
	Energy    int `json:"energy"`
	Stress    int `json:"stress"`
	Nutrition int `json:"nutrition"`
	Hydration int `json:"hydration"`
	Pain      int `json:"pain"`
}

// Values returns the ratings in their canonical order.
func (q HealthQuestions) Values() []int {
	return []int{q.Sleep, q.Energy, q.Stress, q.Nutrition, q.Hydration, q.Pain}
}

// HealthEntry is the health record for one day.
type HealthEntry struct {
	Date               string          `json:"date"`
	Exercise           Exercise        `json:"exercise"`
	HealthQuestions    HealthQuestions `json:"healthQuestions"`
	OverallHealthScore int             `json:"overallHealthScore"`
	Suggestions        []string        `json:"suggestions"`
}

// BudgetEntry is the budget record for one day.
type BudgetEntry struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	MonthlyIncome   float64 `json:"monthlyIncome"`
	MonthlyExpenses float64 `json:"monthlyExpenses"`
	DailyBudget     float64 `json:"dailyBudget"`
	RemainingBudget float64 `json:"remainingBudget"`
	InvestmentTotal float64 `json:"investmentTotal"`
	Advice          string  `json:"advice"`
}

// InvestmentEntry is a single investment made on a day.
type InvestmentEntry struct {
	ID               string         `json:"id"`
	Date             string         `json:"date"`
	Type             InvestmentType `json:"type"`
	Amount           float64        `json:"amount"`
	Description      string         `json:"description"`
	IsGoodInvestment bool           `json:"isGoodInvestment"`
	Notes            string         `json:"notes,omitempty"`
}

// Snapshot is the whole journal in its persisted key-value layout.
type Snapshot struct {
	Moods       map[string]MoodEntry         `json:"moods"`
	Health      map[string]HealthEntry       `json:"health"`
	Budgets     map[string]BudgetEntry       `json:"budgets"`
	Investments map[string][]InvestmentEntry `json:"investments"`
}

// NewSnapshot returns a snapshot with all maps allocated.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Moods:       make(map[string]MoodEntry),
		Health:      make(map[string]HealthEntry),
		Budgets:     make(map[string]BudgetEntry),
		Investments: make(map[string][]InvestmentEntry),
	}
}
