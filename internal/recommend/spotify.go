package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"moodvibe/internal/errors"
	"moodvibe/internal/logging"
	"moodvibe/internal/models"
)

const (
	DefaultSpotifyAuthURL = "https://accounts.spotify.com/api/token"
	DefaultSpotifyAPIURL  = "https://api.spotify.com/v1"
)

// spotifyParams are the seed parameters sent for a mood.
type spotifyParams struct {
	SeedGenres   []string
	Valence      float64
	Energy       float64
	Danceability float64
	Tempo        int
	Limit        int
}

var moodSpotifyParams = map[models.Mood]spotifyParams{
	models.MoodHappy:     {[]string{"pop", "happy", "dance"}, 0.8, 0.7, 0.8, 120, 10},
	models.MoodCalm:      {[]string{"ambient", "chill", "acoustic"}, 0.6, 0.3, 0.4, 80, 10},
	models.MoodEnergetic: {[]string{"rock", "electronic", "work-out"}, 0.7, 0.9, 0.7, 140, 10},
	models.MoodSad:       {[]string{"blues", "soul", "indie"}, 0.2, 0.4, 0.3, 70, 10},
	models.MoodExcited:   {[]string{"pop", "dance", "electronic"}, 0.9, 0.8, 0.9, 130, 10},
	models.MoodPeaceful:  {[]string{"ambient", "new-age", "classical"}, 0.5, 0.2, 0.2, 60, 10},
	models.MoodAnxious:   {[]string{"ambient", "chill", "meditation"}, 0.4, 0.2, 0.3, 70, 10},
	models.MoodGrateful:  {[]string{"folk", "acoustic", "singer-songwriter"}, 0.7, 0.5, 0.5, 90, 10},
}

// SpotifyClient fetches track recommendations with client-credentials auth.
type SpotifyClient struct {
	clientID     string
	clientSecret string
	authURL      string
	apiURL       string
	client       *http.Client
	logger       zerolog.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// SpotifyOption configures a SpotifyClient.
type SpotifyOption func(*SpotifyClient)

// WithSpotifyURLs overrides the token and API endpoints.
func WithSpotifyURLs(authURL, apiURL string) SpotifyOption {
	return func(c *SpotifyClient) {
		c.authURL = authURL
		c.apiURL = strings.TrimSuffix(apiURL, "/")
	}
}

// NewSpotifyClient creates a Spotify client.
func NewSpotifyClient(clientID, clientSecret string, timeout time.Duration, logger zerolog.Logger, opts ...SpotifyOption) *SpotifyClient {
	c := &SpotifyClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		authURL:      DefaultSpotifyAuthURL,
		apiURL:       DefaultSpotifyAPIURL,
		client:       &http.Client{Timeout: timeout},
		logger:       logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the provider name.
func (c *SpotifyClient) Name() string {
	return "spotify"
}

// Configured reports whether credentials are present.
func (c *SpotifyClient) Configured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

func (c *SpotifyClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.clientID, c.clientSecret)

	start := time.Now()
	resp, err := c.client.Do(req)
	logging.LogAPICall(c.logger, http.MethodPost, c.authURL, time.Since(start), err)
	if err != nil {
		return "", errors.NewProviderError("spotify", "token", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewProviderError("spotify", "token", resp.StatusCode, nil)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errors.NewProviderError("spotify", "token", resp.StatusCode, err)
	}

	c.token = body.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(body.ExpiresIn) * time.Second)
	return c.token, nil
}

type spotifyTrack struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name   string `json:"name"`
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
	} `json:"album"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
	PreviewURL *string `json:"preview_url"`
	DurationMS int     `json:"duration_ms"`
	Popularity int     `json:"popularity"`
}

func (t spotifyTrack) toTrack() models.Track {
	artists := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		artists[i] = a.Name
	}
	track := models.Track{
		ID:              t.ID,
		Title:           t.Name,
		Artist:          strings.Join(artists, ", "),
		Album:           t.Album.Name,
		URL:             t.ExternalURLs.Spotify,
		DurationSeconds: t.DurationMS / 1000,
		Popularity:      t.Popularity,
	}
	if t.PreviewURL != nil {
		track.PreviewURL = *t.PreviewURL
	}
	if len(t.Album.Images) > 0 {
		track.ImageURL = t.Album.Images[0].URL
	}
	return track
}

// Tracks returns recommended tracks for mood.
func (c *SpotifyClient) Tracks(ctx context.Context, mood models.Mood) ([]models.Track, error) {
	params, ok := moodSpotifyParams[mood]
	if !ok {
		return nil, errors.NewValidationErrorWrap("mood", mood, errors.ErrUnknownMood)
	}
	if !c.Configured() {
		return nil, errors.NewProviderError("spotify", "recommendations", 0, fmt.Errorf("missing credentials"))
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("seed_genres", strings.Join(params.SeedGenres, ","))
	q.Set("target_valence", strconv.FormatFloat(params.Valence, 'f', -1, 64))
	q.Set("target_energy", strconv.FormatFloat(params.Energy, 'f', -1, 64))
	q.Set("target_danceability", strconv.FormatFloat(params.Danceability, 'f', -1, 64))
	q.Set("target_tempo", strconv.Itoa(params.Tempo))
	q.Set("limit", strconv.Itoa(params.Limit))
	endpoint := c.apiURL + "/recommendations?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating recommendations request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.client.Do(req)
	logging.LogAPICall(c.logger, http.MethodGet, c.apiURL+"/recommendations", time.Since(start), err)
	if err != nil {
		return nil, errors.NewProviderError("spotify", "recommendations", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewProviderError("spotify", "recommendations", resp.StatusCode, nil)
	}

	var body struct {
		Tracks []spotifyTrack `json:"tracks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.NewProviderError("spotify", "recommendations", resp.StatusCode, err)
	}

	tracks := make([]models.Track, 0, len(body.Tracks))
	for _, t := range body.Tracks {
		tracks = append(tracks, t.toTrack())
	}
	return tracks, nil
}
