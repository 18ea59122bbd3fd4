// Package models provides domain models for the journaling application.
package models

import (
	"strings"
	"time"

	"moodvibe/internal/errors"
)

// DateLayout is the layout of a journal day key.
const DateLayout = "2006-01-02"

// DateKey formats t as a journal day key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey validates a day key and returns the day it names.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(key))
	if err != nil {
		return time.Time{}, errors.NewValidationErrorWrap("date", key, errors.ErrInvalidDate)
	}
	return t, nil
}

// Mood represents one of the enumerated emotional states.
type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodCalm      Mood = "calm"
	MoodEnergetic Mood = "energetic"
	MoodSad       Mood = "sad"
	MoodExcited   Mood = "excited"
	MoodPeaceful  Mood = "peaceful"
	MoodAnxious   Mood = "anxious"
	MoodGrateful  Mood = "grateful"
)

// AllMoods lists every mood in display order.
var AllMoods = []Mood{
	MoodHappy, MoodCalm, MoodEnergetic, MoodSad,
	MoodExcited, MoodPeaceful, MoodAnxious, MoodGrateful,
}

var moodEmojis = map[Mood]string{
	MoodHappy:     "😊",
	MoodCalm:      "😌",
	MoodEnergetic: "⚡",
	MoodSad:       "😢",
	MoodExcited:   "🤩",
	MoodPeaceful:  "🕊️",
	MoodAnxious:   "😰",
	MoodGrateful:  "🙏",
}

// ParseMood converts a loosely typed key into a Mood.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := moodEmojis[m]; !ok {
		return "", errors.NewValidationErrorWrap("mood", s, errors.ErrUnknownMood)
	}
	return m, nil
}

// Valid reports whether m is one of the enumerated moods.
func (m Mood) Valid() bool {
	_, ok := moodEmojis[m]
	return ok
}

// Emoji returns the emoji shown for the mood.
func (m Mood) Emoji() string {
	return moodEmojis[m]
}

// Intensity represents exercise intensity.
type Intensity string

const (
	IntensityLow      Intensity = "low"
	IntensityModerate Intensity = "moderate"
	IntensityHigh     Intensity = "high"
)

// ParseIntensity converts a key into an Intensity. Empty input means moderate.
func ParseIntensity(s string) (Intensity, error) {
	switch Intensity(strings.ToLower(strings.TrimSpace(s))) {
	case "", IntensityModerate:
		return IntensityModerate, nil
	case IntensityLow:
		return IntensityLow, nil
	case IntensityHigh:
		return IntensityHigh, nil
	default:
		return "", errors.NewValidationErrorWrap("intensity", s, errors.ErrUnknownIntensity)
	}
}

// InvestmentType represents the kind of investment.
type InvestmentType string

const (
	InvestmentStocks     InvestmentType = "stocks"
	InvestmentBonds      InvestmentType = "bonds"
	InvestmentCrypto     InvestmentType = "crypto"
	InvestmentRealEstate InvestmentType = "real_estate"
	InvestmentSavings    InvestmentType = "savings"
	InvestmentOther      InvestmentType = "other"
)

// AllInvestmentTypes lists every investment type.
var AllInvestmentTypes = []InvestmentType{
	InvestmentStocks, InvestmentBonds, InvestmentCrypto,
	InvestmentRealEstate, InvestmentSavings, InvestmentOther,
}

// ParseInvestmentType converts a key into an InvestmentType.
func ParseInvestmentType(s string) (InvestmentType, error) {
	key := InvestmentType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for _, t := range AllInvestmentTypes {
		if t == key {
			return t, nil
		}
	}
	return "", errors.NewValidationErrorWrap("type", s, errors.ErrUnknownInvestment)
}
