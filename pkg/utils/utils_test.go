package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestFormatting(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FormatCurrency(1234.5), "$1234.50"},
		{FormatPercent(33.333), "33.3%"},
		{FormatLongDate("2024-05-28"), "Tuesday, May 28, 2024"},
		{FormatLongDate("not-a-date"), "not-a-date"},
		{FormatTimestamp(time.Date(2024, 6, 1, 15, 4, 0, 0, time.UTC)), "Saturday, June 1, 2024 at 03:04 PM"},
		{Capitalize("happy"), "Happy"},
		{TruncateString("hello world", 8), "hello..."},
		{TruncateString("short", 8), "short"},
	}
	for i, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("case %d: got %q, want %q", i, tt.got, tt.want)
		}
	}
}

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, BackoffFactor: 2}
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry(3), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Errorf("err = %v, calls = %d", err, calls)
	}
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	permanent := errors.New("permanent")
	cfg := fastRetry(5)
	cfg.Retryable = func(err error) bool { return !errors.Is(err, permanent) }

	calls := 0
	err := Retry(context.Background(), cfg, func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) || calls != 1 {
		t.Errorf("err = %v, calls = %d", err, calls)
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := fastRetry(3)
	cfg.InitialDelay = time.Hour
	cfg.MaxDelay = time.Hour
	err := Retry(ctx, cfg, func() error { return errors.New("fail") })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

// Property: backoff never exceeds the cap and never decreases.
func TestProperty_BackoffBounded(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("backoff is monotonic and capped", prop.ForAll(
		func(attempt int, initialMs int, maxMs int) bool {
			initial := time.Duration(initialMs) * time.Millisecond
			max := initial + time.Duration(maxMs)*time.Millisecond
			d0 := CalculateBackoff(attempt, initial, max, 2)
			d1 := CalculateBackoff(attempt+1, initial, max, 2)
			return d0 <= max && d1 <= max && d1 >= d0
		},
		gen.IntRange(0, 20),
		gen.IntRange(1, 1000),
		gen.IntRange(0, 10000),
	))

	properties.TestingRun(t)
}
