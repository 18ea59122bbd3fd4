package errors

import (
	"fmt"
	"testing"
)

func TestValidationErrorMatchesSentinels(t *testing.T) {
	err := Wrap(NewValidationErrorWrap("mood", "furious", ErrUnknownMood), "saving mood")
	if !Is(err, ErrInputValidation) || !Is(err, ErrUnknownMood) {
		t.Errorf("%v should match ErrInputValidation and ErrUnknownMood", err)
	}

	var ve *ValidationError
	if !As(err, &ve) || ve.Field != "mood" {
		t.Errorf("As(ValidationError) = %+v", ve)
	}
}

func TestDataErrorUnwraps(t *testing.T) {
	err := NewDataError("mood", "2024-05-01", "no entry", ErrDataNotFound)
	if !Is(err, ErrDataNotFound) {
		t.Errorf("%v should match ErrDataNotFound", err)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{NewProviderError("supabase", "upsert", 0, fmt.Errorf("connection refused")), true},
		{NewProviderError("supabase", "upsert", 503, nil), true},
		{NewProviderError("tmdb", "discover", 429, nil), true},
		{NewProviderError("supabase", "upsert", 400, nil), false},
		{Wrap(NewProviderError("spotify", "token", 502, nil), "fetching"), true},
		{ErrDataNotFound, false},
		{nil, false},
	}
	for i, tt := range tests {
		if got := IsTransient(tt.err); got != tt.want {
			t.Errorf("case %d: IsTransient(%v) = %v, want %v", i, tt.err, got, tt.want)
		}
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "x") != nil || Wrapf(nil, "x %d", 1) != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestWrapfKeepsChain(t *testing.T) {
	err := Wrapf(ErrDatabaseError, "saving re-derived budget for %s", "2024-06-01")
	if err.Error() != "saving re-derived budget for 2024-06-01: "+ErrDatabaseError.Error() {
		t.Errorf("message = %q", err.Error())
	}
	if !Is(err, ErrDatabaseError) {
		t.Errorf("%v should match ErrDatabaseError", err)
	}
}
