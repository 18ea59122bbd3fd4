package models

// Track is a music recommendation.
type Track struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	Album           string `json:"album"`
	URL             string `json:"url"`
	PreviewURL      string `json:"preview_url,omitempty"`
	ImageURL        string `json:"image_url"`
	DurationSeconds int    `json:"duration_seconds"`
	Popularity      int    `json:"popularity"`
}

// Movie is a film recommendation.
type Movie struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Year        int      `json:"year"`
	Genres      []string `json:"genres"`
	Rating      float64  `json:"rating"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Platforms   []string `json:"platforms"`
}

// Recommendations is the bundle suggested for a mood.
type Recommendations struct {
	Music      []Track  `json:"music"`
	Movies     []Movie  `json:"movies"`
	Activities []string `json:"activities"`
	Quotes     []string `json:"quotes"`
}
