package recommend

import (
	"context"
	"math/rand"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"moodvibe/internal/models"
)

// SourceStatic names results that came from the embedded catalog.
const SourceStatic = "static"

// TrackSource supplies live music recommendations.
type TrackSource interface {
	Name() string
	Tracks(ctx context.Context, mood models.Mood) ([]models.Track, error)
}

// MovieSource supplies live movie recommendations.
type MovieSource interface {
	Name() string
	Movies(ctx context.Context, mood models.Mood) ([]models.Movie, error)
}

// Result is a recommendation bundle plus where each list came from.
type Result struct {
	models.Recommendations
	MusicSource string `json:"music_source"`
	MovieSource string `json:"movie_source"`
}

// Recommender serves recommendations from the catalog, optionally replacing
// music and movies with live provider results.
type Recommender struct {
	catalog *Catalog
	tracks  TrackSource
	movies  MovieSource
	logger  zerolog.Logger
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithTrackSource enables live music lookups.
func WithTrackSource(src TrackSource) Option {
	return func(r *Recommender) { r.tracks = src }
}

// WithMovieSource enables live movie lookups.
func WithMovieSource(src MovieSource) Option {
	return func(r *Recommender) { r.movies = src }
}

// NewRecommender creates a recommender over catalog.
func NewRecommender(catalog *Catalog, logger zerolog.Logger, opts ...Option) *Recommender {
	r := &Recommender{catalog: catalog, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Static returns the catalog bundle for mood.
func (r *Recommender) Static(mood models.Mood) (Result, error) {
	recs, err := r.catalog.Lookup(mood)
	if err != nil {
		return Result{}, err
	}
	return Result{Recommendations: recs, MusicSource: SourceStatic, MovieSource: SourceStatic}, nil
}

// Random returns a shuffled catalog subset for mood.
func (r *Recommender) Random(mood models.Mood, count int, rng *rand.Rand) (Result, error) {
	recs, err := r.catalog.RandomSubset(mood, count, rng)
	if err != nil {
		return Result{}, err
	}
	return Result{Recommendations: recs, MusicSource: SourceStatic, MovieSource: SourceStatic}, nil
}

// Live queries the configured providers concurrently. Any provider that
// fails or returns nothing leaves the catalog list in place. Activities and
// quotes always come from the catalog.
func (r *Recommender) Live(ctx context.Context, mood models.Mood) (Result, error) {
	result, err := r.Static(mood)
	if err != nil {
		return result, err
	}

	var tracks []models.Track
	var movies []models.Movie

	var wg conc.WaitGroup
	if r.tracks != nil {
		wg.Go(func() {
			found, err := r.tracks.Tracks(ctx, mood)
			if err != nil || len(found) == 0 {
				r.logger.Warn().Err(err).Str("provider", r.tracks.Name()).Str("mood", string(mood)).
					Msg("Live music unavailable, using static recommendations")
				return
			}
			tracks = found
		})
	}
	if r.movies != nil {
		wg.Go(func() {
			found, err := r.movies.Movies(ctx, mood)
			if err != nil || len(found) == 0 {
				r.logger.Warn().Err(err).Str("provider", r.movies.Name()).Str("mood", string(mood)).
					Msg("Live movies unavailable, using static recommendations")
				return
			}
			movies = found
		})
	}
	wg.Wait()

	if tracks != nil {
		result.Music = tracks
		result.MusicSource = r.tracks.Name()
	}
	if movies != nil {
		result.Movies = movies
		result.MovieSource = r.movies.Name()
	}
	return result, nil
}
