package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"

	"moodvibe/internal/errors"
	"moodvibe/internal/models"
)

func mustCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	return c
}

func TestCatalog_CoversEveryMood(t *testing.T) {
	c := mustCatalog(t)
	for _, m := range models.AllMoods {
		recs, err := c.Lookup(m)
		if err != nil {
			t.Fatalf("Lookup(%s): %v", m, err)
		}
		if len(recs.Music) == 0 || len(recs.Movies) == 0 || len(recs.Activities) == 0 || len(recs.Quotes) == 0 {
			t.Errorf("%s has an empty list: %+v", m, recs)
		}
	}
}

func TestCatalog_UnknownMood(t *testing.T) {
	c := mustCatalog(t)
	if _, err := c.Lookup(models.Mood("bored")); !errors.Is(err, errors.ErrUnknownMood) {
		t.Errorf("Lookup(bored) error = %v, want ErrUnknownMood", err)
	}
}

func TestParseCatalog_MissingMood(t *testing.T) {
	if _, err := ParseCatalog([]byte(`{"happy": {"music": [], "movies": [], "activities": [], "quotes": []}}`)); err == nil {
		t.Error("expected an error for a catalog without every mood")
	}
}

func TestCatalog_LookupReturnsCopy(t *testing.T) {
	c := mustCatalog(t)
	first, _ := c.Lookup(models.MoodHappy)
	first.Activities[0] = "changed"
	again, _ := c.Lookup(models.MoodHappy)
	if again.Activities[0] == "changed" {
		t.Error("Lookup exposed the catalog's backing slice")
	}
}

// Property: a random subset is a subset of the full bundle, of the expected
// size, with at most one quote.
func TestProperty_RandomSubsetIsSubset(t *testing.T) {
	c := mustCatalog(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("random subset stays inside the bundle", prop.ForAll(
		func(moodIdx, count int, seed int64) bool {
			mood := models.AllMoods[moodIdx]
			full, _ := c.Lookup(mood)
			sub, err := c.RandomSubset(mood, count, rand.New(rand.NewSource(seed)))
			if err != nil {
				return false
			}

			if len(sub.Activities) != min(count, len(full.Activities)) {
				t.Logf("activities: got %d, want %d", len(sub.Activities), min(count, len(full.Activities)))
				return false
			}
			if len(sub.Music) > count || len(sub.Movies) > count || len(sub.Quotes) > 1 {
				return false
			}
			for _, a := range sub.Activities {
				if !containsString(full.Activities, a) {
					return false
				}
			}
			for _, q := range sub.Quotes {
				if !containsString(full.Quotes, q) {
					return false
				}
			}
			for _, tr := range sub.Music {
				if !containsTrack(full.Music, tr.ID) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, len(models.AllMoods)-1),
		gen.IntRange(0, 6),
		gen.Int64(),
	))

	properties.TestingRun(t)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsTrack(list []models.Track, id string) bool {
	for _, v := range list {
		if v.ID == id {
			return true
		}
	}
	return false
}

func newSpotifyServer(t *testing.T, tokenCalls *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(tokenCalls, 1)
		user, pass, ok := r.BasicAuth()
		if !ok || user != "id" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"access_token":"tok","expires_in":3600}`)
	})
	mux.HandleFunc("/v1/recommendations", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if got := r.URL.Query().Get("seed_genres"); got != "pop,happy,dance" {
			t.Errorf("seed_genres = %q", got)
		}
		fmt.Fprint(w, `{"tracks":[{"id":"t1","name":"Song","artists":[{"name":"A"},{"name":"B"}],
			"album":{"name":"LP","images":[{"url":"img"}]},"external_urls":{"spotify":"https://s/t1"},
			"preview_url":null,"duration_ms":185000,"popularity":70}]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSpotifyClient_Tracks(t *testing.T) {
	var tokenCalls int32
	srv := newSpotifyServer(t, &tokenCalls)

	c := NewSpotifyClient("id", "secret", 5*time.Second, zerolog.Nop(),
		WithSpotifyURLs(srv.URL+"/token", srv.URL+"/v1"))

	for i := 0; i < 2; i++ {
		tracks, err := c.Tracks(context.Background(), models.MoodHappy)
		if err != nil {
			t.Fatalf("Tracks: %v", err)
		}
		want := models.Track{ID: "t1", Title: "Song", Artist: "A, B", Album: "LP", URL: "https://s/t1", ImageURL: "img", DurationSeconds: 185, Popularity: 70}
		if len(tracks) != 1 || tracks[0] != want {
			t.Errorf("tracks = %+v", tracks)
		}
	}
	if tokenCalls != 1 {
		t.Errorf("token endpoint called %d times, want 1", tokenCalls)
	}
}

func TestSpotifyClient_Unconfigured(t *testing.T) {
	c := NewSpotifyClient("", "", time.Second, zerolog.Nop())
	if _, err := c.Tracks(context.Background(), models.MoodCalm); !errors.Is(err, errors.ErrProviderUnavailable) {
		t.Errorf("error = %v, want ErrProviderUnavailable", err)
	}
}

func TestTMDBClient_MoviesDeduplicated(t *testing.T) {
	var genres []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/discover/movie" || r.URL.Query().Get("api_key") != "key" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		genres = append(genres, r.URL.Query().Get("with_genres"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{"id": 1, "title": "Shared", "release_date": "2014-03-07", "vote_average": 8.14, "genre_ids": []int{35, 99999}, "poster_path": "/p.jpg"},
				{"id": 2, "title": "Only " + r.URL.Query().Get("with_genres"), "release_date": "", "vote_average": 6.0},
			},
		})
	}))
	defer srv.Close()

	c := NewTMDBClient("key", srv.URL, 5*time.Second, zerolog.Nop())
	movies, err := c.Movies(context.Background(), models.MoodHappy)
	if err != nil {
		t.Fatalf("Movies: %v", err)
	}

	if strings.Join(genres, ",") != "35,10751" {
		t.Errorf("queried genres %v, want the first two of happy", genres)
	}
	if len(movies) != 2 {
		t.Fatalf("got %d movies, want 2 after removing the duplicate: %+v", len(movies), movies)
	}
	first := movies[0]
	if first.Year != 2014 || first.Rating != 8.1 || first.ImageURL != tmdbPosterBase+"/p.jpg" {
		t.Errorf("first movie = %+v", first)
	}
	if strings.Join(first.Genres, ",") != "Comedy,Unknown" {
		t.Errorf("genres = %v", first.Genres)
	}
}

type stubTracks struct {
	tracks []models.Track
	err    error
}

func (s stubTracks) Name() string { return "stub-music" }
func (s stubTracks) Tracks(context.Context, models.Mood) ([]models.Track, error) {
	return s.tracks, s.err
}

type stubMovies struct {
	movies []models.Movie
	err    error
}

func (s stubMovies) Name() string { return "stub-movies" }
func (s stubMovies) Movies(context.Context, models.Mood) ([]models.Movie, error) {
	return s.movies, s.err
}

func TestRecommender_LiveUsesProviders(t *testing.T) {
	r := NewRecommender(mustCatalog(t), zerolog.Nop(),
		WithTrackSource(stubTracks{tracks: []models.Track{{ID: "live"}}}),
		WithMovieSource(stubMovies{movies: []models.Movie{{ID: "m"}}}),
	)
	res, err := r.Live(context.Background(), models.MoodSad)
	if err != nil {
		t.Fatalf("Live: %v", err)
	}
	if res.MusicSource != "stub-music" || res.Music[0].ID != "live" {
		t.Errorf("music = %s %+v", res.MusicSource, res.Music)
	}
	if res.MovieSource != "stub-movies" || res.Movies[0].ID != "m" {
		t.Errorf("movies = %s %+v", res.MovieSource, res.Movies)
	}
	if len(res.Activities) == 0 || len(res.Quotes) == 0 {
		t.Error("activities and quotes should come from the catalog")
	}
}

func TestRecommender_LiveFallsBack(t *testing.T) {
	c := mustCatalog(t)
	static, _ := c.Lookup(models.MoodAnxious)

	r := NewRecommender(c, zerolog.Nop(),
		WithTrackSource(stubTracks{err: fmt.Errorf("boom")}),
		WithMovieSource(stubMovies{}),
	)
	res, err := r.Live(context.Background(), models.MoodAnxious)
	if err != nil {
		t.Fatalf("Live: %v", err)
	}
	if res.MusicSource != SourceStatic || res.MovieSource != SourceStatic {
		t.Errorf("sources = %s/%s, want static", res.MusicSource, res.MovieSource)
	}
	if len(res.Music) != len(static.Music) || len(res.Movies) != len(static.Movies) {
		t.Errorf("fallback lists differ from catalog")
	}
}

func TestRecommender_LiveUnknownMood(t *testing.T) {
	r := NewRecommender(mustCatalog(t), zerolog.Nop())
	if _, err := r.Live(context.Background(), "meh"); !errors.Is(err, errors.ErrUnknownMood) {
		t.Errorf("error = %v", err)
	}
}
