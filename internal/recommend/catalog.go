// Package recommend provides mood-based recommendations from a static catalog
// and, optionally, from live music and movie providers.
package recommend

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand"

	"moodvibe/internal/errors"
	"moodvibe/internal/models"
)

//go:embed catalog.json
var catalogJSON []byte

// Catalog is the static recommendation table keyed by mood.
type Catalog struct {
	entries map[models.Mood]models.Recommendations
}

// LoadCatalog parses the embedded catalog.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(catalogJSON)
}

// ParseCatalog parses a catalog document and checks that every mood has an
// entry.
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw map[string]models.Recommendations
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing recommendation catalog: %w", err)
	}

	c := &Catalog{entries: make(map[models.Mood]models.Recommendations, len(raw))}
	for key, recs := range raw {
		m, err := models.ParseMood(key)
		if err != nil {
			return nil, fmt.Errorf("recommendation catalog: %w", err)
		}
		c.entries[m] = recs
	}
	for _, m := range models.AllMoods {
		if _, ok := c.entries[m]; !ok {
			return nil, fmt.Errorf("recommendation catalog has no entry for %q", m)
		}
	}
	return c, nil
}

// Lookup returns the static bundle for mood.
func (c *Catalog) Lookup(mood models.Mood) (models.Recommendations, error) {
	recs, ok := c.entries[mood]
	if !ok {
		return models.Recommendations{}, errors.NewValidationErrorWrap("mood", mood, errors.ErrUnknownMood)
	}
	return cloneRecommendations(recs), nil
}

// RandomSubset shuffles each list of the bundle for mood and keeps at most
// count items per list. Quotes are truncated to one.
func (c *Catalog) RandomSubset(mood models.Mood, count int, rng *rand.Rand) (models.Recommendations, error) {
	recs, err := c.Lookup(mood)
	if err != nil {
		return recs, err
	}
	if count < 0 {
		count = 0
	}

	shuffle := func(n int, swap func(i, j int)) {
		if rng != nil {
			rng.Shuffle(n, swap)
		} else {
			rand.Shuffle(n, swap)
		}
	}

	shuffle(len(recs.Music), func(i, j int) { recs.Music[i], recs.Music[j] = recs.Music[j], recs.Music[i] })
	shuffle(len(recs.Movies), func(i, j int) { recs.Movies[i], recs.Movies[j] = recs.Movies[j], recs.Movies[i] })
	shuffle(len(recs.Activities), func(i, j int) {
		recs.Activities[i], recs.Activities[j] = recs.Activities[j], recs.Activities[i]
	})
	shuffle(len(recs.Quotes), func(i, j int) { recs.Quotes[i], recs.Quotes[j] = recs.Quotes[j], recs.Quotes[i] })

	recs.Music = recs.Music[:min(count, len(recs.Music))]
	recs.Movies = recs.Movies[:min(count, len(recs.Movies))]
	recs.Activities = recs.Activities[:min(count, len(recs.Activities))]
	recs.Quotes = recs.Quotes[:min(1, len(recs.Quotes))]
	return recs, nil
}

// cloneRecommendations copies the top-level lists so callers can reorder
// them without touching the catalog.
func cloneRecommendations(r models.Recommendations) models.Recommendations {
	return models.Recommendations{
		Music:      append([]models.Track(nil), r.Music...),
		Movies:     append([]models.Movie(nil), r.Movies...),
		Activities: append([]string(nil), r.Activities...),
		Quotes:     append([]string(nil), r.Quotes...),
	}
}
