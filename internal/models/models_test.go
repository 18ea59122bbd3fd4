package models

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"moodvibe/internal/errors"
)

func TestParseMood(t *testing.T) {
	for _, m := range AllMoods {
		got, err := ParseMood("  " + string(m) + " ")
		if err != nil || got != m {
			t.Errorf("ParseMood(%q) = %q, %v", m, got, err)
		}
		if m.Emoji() == "" {
			t.Errorf("%s has no emoji", m)
		}
	}

	if got, _ := ParseMood("HAPPY"); got != MoodHappy {
		t.Errorf("ParseMood is case sensitive")
	}

	_, err := ParseMood("furious")
	if !errors.Is(err, errors.ErrUnknownMood) || !errors.Is(err, errors.ErrInputValidation) {
		t.Errorf("ParseMood(furious) error = %v, want unknown mood validation error", err)
	}
}

// Property: only the eight enumerated keys parse as moods.
func TestProperty_UnknownMoodsRejected(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("parse succeeds iff key is enumerated", prop.ForAll(
		func(s string) bool {
			m, err := ParseMood(s)
			if err != nil {
				return !Mood(s).Valid()
			}
			return m.Valid()
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestParseInvestmentType(t *testing.T) {
	tests := map[string]InvestmentType{
		"stocks":      InvestmentStocks,
		"Real-Estate": InvestmentRealEstate,
		"real_estate": InvestmentRealEstate,
		"SAVINGS":     InvestmentSavings,
	}
	for in, want := range tests {
		if got, err := ParseInvestmentType(in); err != nil || got != want {
			t.Errorf("ParseInvestmentType(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseInvestmentType("nft"); !errors.Is(err, errors.ErrUnknownInvestment) {
		t.Errorf("ParseInvestmentType(nft) error = %v", err)
	}
}

func TestParseIntensity(t *testing.T) {
	if got, err := ParseIntensity(""); err != nil || got != IntensityModerate {
		t.Errorf("ParseIntensity(\"\") = %q, %v", got, err)
	}
	if got, err := ParseIntensity("High"); err != nil || got != IntensityHigh {
		t.Errorf("ParseIntensity(High) = %q, %v", got, err)
	}
	if _, err := ParseIntensity("extreme"); !errors.Is(err, errors.ErrUnknownIntensity) {
		t.Errorf("ParseIntensity(extreme) error = %v", err)
	}
}

func TestParseDateKey(t *testing.T) {
	d, err := ParseDateKey("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDateKey: %v", err)
	}
	if DateKey(d) != "2024-02-29" {
		t.Errorf("DateKey round trip = %s", DateKey(d))
	}

	for _, bad := range []string{"2023-02-29", "29-02-2024", "", "2024-1-1"} {
		if _, err := ParseDateKey(bad); !errors.Is(err, errors.ErrInvalidDate) {
			t.Errorf("ParseDateKey(%q) error = %v, want ErrInvalidDate", bad, err)
		}
	}
}
