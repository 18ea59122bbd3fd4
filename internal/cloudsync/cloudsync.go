// Package cloudsync pushes mood entries to a Supabase-compatible REST
// endpoint.
package cloudsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"moodvibe/internal/derive"
	"moodvibe/internal/errors"
	"moodvibe/internal/logging"
	"moodvibe/internal/models"
	"moodvibe/pkg/utils"
)

// Target is the name the last push time is recorded under.
const Target = "supabase"

const moodTable = "mood_entries"

// Config holds the remote endpoint settings.
type Config struct {
	URL     string
	APIKey  string
	UserID  string
	Timeout time.Duration

	// MaxAttempts and RetryDelay control retries of transient failures.
	// Zero values use utils.DefaultRetryConfig.
	MaxAttempts int
	RetryDelay  time.Duration
}

// SyncRecorder remembers when the last successful push happened.
type SyncRecorder interface {
	GetLastSync(target string) time.Time
	SetLastSync(target string, t time.Time) error
}

// Client pushes mood entries with upsert semantics on (user_id, date).
type Client struct {
	baseURL  string
	apiKey   string
	userID   string
	enabled  bool
	client   *http.Client
	retry    utils.RetryConfig
	recorder SyncRecorder
	logger   zerolog.Logger
}

// NewClient creates a sync client. recorder may be nil.
func NewClient(cfg Config, recorder SyncRecorder, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retry := utils.DefaultRetryConfig()
	retry.Retryable = errors.IsTransient
	if cfg.MaxAttempts > 0 {
		retry.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.RetryDelay > 0 {
		retry.InitialDelay = cfg.RetryDelay
	}
	return &Client{
		baseURL:  strings.TrimSuffix(cfg.URL, "/"),
		apiKey:   cfg.APIKey,
		userID:   cfg.UserID,
		enabled:  cfg.URL != "" && cfg.APIKey != "" && cfg.UserID != "",
		client:   &http.Client{Timeout: timeout},
		retry:    retry,
		recorder: recorder,
		logger:   logger,
	}
}

// IsEnabled returns whether the endpoint is fully configured.
func (c *Client) IsEnabled() bool {
	return c.enabled
}

// LastPush returns the time of the last successful push, or zero.
func (c *Client) LastPush() time.Time {
	if c.recorder == nil {
		return time.Time{}
	}
	return c.recorder.GetLastSync(Target)
}

type moodRow struct {
	UserID      string `json:"user_id"`
	Date        string `json:"date"`
	Mood        string `json:"mood"`
	Emoji       string `json:"emoji"`
	Description string `json:"description,omitempty"`
}

// PushMoods upserts every mood entry and returns how many were sent.
func (c *Client) PushMoods(ctx context.Context, moods map[string]models.MoodEntry) (int, error) {
	if !c.enabled {
		return 0, errors.ErrSyncDisabled
	}
	if len(moods) == 0 {
		return 0, nil
	}

	rows := make([]moodRow, 0, len(moods))
	for _, d := range derive.SortedDates(moods) {
		e := moods[d]
		rows = append(rows, moodRow{
			UserID:      c.userID,
			Date:        e.Date,
			Mood:        string(e.Mood),
			Emoji:       e.Emoji,
			Description: e.Description,
		})
	}

	body, err := json.Marshal(rows)
	if err != nil {
		return 0, fmt.Errorf("marshaling sync payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/rest/v1/%s?on_conflict=user_id,date", c.baseURL, moodTable)
	err = utils.Retry(ctx, c.retry, func() error {
		return c.post(ctx, endpoint, body)
	})
	if err != nil {
		return 0, err
	}

	if c.recorder != nil {
		if err := c.recorder.SetLastSync(Target, time.Now()); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to record sync time")
		}
	}
	c.logger.Info().Int("entries", len(rows)).Msg("Mood entries pushed")
	return len(rows), nil
}

// post sends one upsert request.
func (c *Client) post(ctx context.Context, endpoint string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating sync request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "MoodVibe/1.0")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Prefer", "resolution=merge-duplicates,return=minimal")

	start := time.Now()
	resp, err := c.client.Do(req)
	logging.LogAPICall(c.logger, http.MethodPost, endpoint, time.Since(start), err)
	if err != nil {
		return errors.NewProviderError("supabase", "upsert", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.NewProviderError("supabase", "upsert", resp.StatusCode, fmt.Errorf("%s", strings.TrimSpace(string(msg))))
	}
	return nil
}
