package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"moodvibe/internal/errors"
	"moodvibe/internal/logging"
	"moodvibe/internal/models"
)

const (
	DefaultTMDBURL = "https://api.themoviedb.org/3"
	tmdbPosterBase = "https://image.tmdb.org/t/p/w500"

	// Only the first genres of a mood are queried.
	tmdbGenresPerMood = 2
	tmdbMaxMovies     = 10
)

var moodGenres = map[models.Mood][]int{
	models.MoodHappy:     {35, 10751, 16, 12},
	models.MoodCalm:      {18, 36, 14, 10749},
	models.MoodEnergetic: {28, 12, 53, 878},
	models.MoodSad:       {18, 36, 10749, 14},
	models.MoodExcited:   {28, 12, 35, 16},
	models.MoodPeaceful:  {18, 14, 10749, 36},
	models.MoodAnxious:   {53, 27, 9648, 18},
	models.MoodGrateful:  {18, 36, 10749, 35},
}

var genreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// TMDBClient discovers movies by genre.
type TMDBClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewTMDBClient creates a TMDB client. An empty baseURL selects the public API.
func NewTMDBClient(apiKey, baseURL string, timeout time.Duration, logger zerolog.Logger) *TMDBClient {
	if baseURL == "" {
		baseURL = DefaultTMDBURL
	}
	return &TMDBClient{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Name returns the provider name.
func (c *TMDBClient) Name() string {
	return "tmdb"
}

// Configured reports whether an API key is present.
func (c *TMDBClient) Configured() bool {
	return c.apiKey != ""
}

type tmdbMovie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	GenreIDs    []int   `json:"genre_ids"`
}

func (m tmdbMovie) toMovie() models.Movie {
	genres := make([]string, 0, len(m.GenreIDs))
	for _, id := range m.GenreIDs {
		name, ok := genreNames[id]
		if !ok {
			name = "Unknown"
		}
		genres = append(genres, name)
	}

	movie := models.Movie{
		ID:          strconv.Itoa(m.ID),
		Title:       m.Title,
		Genres:      genres,
		Rating:      math.Round(m.VoteAverage*10) / 10,
		Description: m.Overview,
		Platforms:   []string{},
	}
	if len(m.ReleaseDate) >= 4 {
		movie.Year, _ = strconv.Atoi(m.ReleaseDate[:4])
	}
	if m.PosterPath != "" {
		movie.ImageURL = tmdbPosterBase + m.PosterPath
	}
	return movie
}

// Movies returns up to ten popular movies from the first genres of mood,
// without duplicates.
func (c *TMDBClient) Movies(ctx context.Context, mood models.Mood) ([]models.Movie, error) {
	genres, ok := moodGenres[mood]
	if !ok {
		return nil, errors.NewValidationErrorWrap("mood", mood, errors.ErrUnknownMood)
	}
	if !c.Configured() {
		return nil, errors.NewProviderError("tmdb", "discover", 0, fmt.Errorf("missing api key"))
	}

	var all []tmdbMovie
	for _, genre := range genres[:min(tmdbGenresPerMood, len(genres))] {
		found, err := c.discover(ctx, genre, 1)
		if err != nil {
			return nil, err
		}
		all = append(all, found...)
	}

	seen := make(map[int]bool)
	movies := make([]models.Movie, 0, tmdbMaxMovies)
	for _, m := range all {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		movies = append(movies, m.toMovie())
		if len(movies) == tmdbMaxMovies {
			break
		}
	}
	return movies, nil
}

func (c *TMDBClient) discover(ctx context.Context, genre, page int) ([]tmdbMovie, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("with_genres", strconv.Itoa(genre))
	q.Set("sort_by", "popularity.desc")
	q.Set("page", strconv.Itoa(page))
	q.Set("vote_count.gte", "100")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/discover/movie?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating discover request: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	logging.LogAPICall(c.logger, http.MethodGet, c.baseURL+"/discover/movie", time.Since(start), err)
	if err != nil {
		return nil, errors.NewProviderError("tmdb", "discover", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewProviderError("tmdb", "discover", resp.StatusCode, nil)
	}

	var body struct {
		Results []tmdbMovie `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.NewProviderError("tmdb", "discover", resp.StatusCode, err)
	}
	return body.Results, nil
}
