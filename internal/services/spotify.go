// Spotify API implementation of [Service]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// defaultSearchLimit is sent to the provider when the caller passes no limit.
	defaultSearchLimit = 5

	// maxSearchResults caps returned rows regardless of the requested limit.
	maxSearchResults = 10

	// bannerAssetPath is the local placeholder banner referenced by every TrackInfo.
	bannerAssetPath = "./assets/spotify_banner.jpg"
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Artists              []SpotifyArtist `json:"artists"`
	ReleaseDate          string          `json:"release_date"`
	ReleaseDatePrecision string          `json:"release_date_precision"`
	Label                string          `json:"label"`
	TotalTracks          int             `json:"total_tracks"`
	Images               []SpotifyImage  `json:"images"`
	URI                  string          `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	Explicit   bool            `json:"explicit"`
	Popularity int             `json:"popularity"`
	URI        string          `json:"uri"`
}

// SpotifySearchResult represents the tracks portion of a search response.
type SpotifySearchResult struct {
	Tracks struct {
		Items []SpotifyTrack `json:"items"`
		Total int            `json:"total"`
	} `json:"tracks"`
}

// SpotifyService implements the [Service] interface for Spotify API interactions.
//
// Authentication uses the OAuth2 client-credentials grant via [clientcredentials.Config].
// The token is fetched once by Authenticate and held for the lifetime of the service;
// there is no refresh, so a service that outlives the token's validity window will
// fail subsequent calls.
type SpotifyService struct {
	config     *clientcredentials.Config
	token      *oauth2.Token
	httpClient *http.Client
	baseURL    string
}

// NewSpotifyService creates a new Spotify service with the given client-credentials.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyTokenURL,
	}

	return &SpotifyService{
		config:     config,
		httpClient: http.DefaultClient,
		baseURL:    spotifyBaseURL,
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// Authenticate fetches an access token using the client-credentials grant.
//
// The token endpoint receives a form-encoded POST with grant_type, client_id
// and client_secret. A response without an access token fails with
// [shared.ErrAuthFailed].
func (s *SpotifyService) Authenticate(ctx context.Context) error {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	token, err := s.config.Token(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	if token.AccessToken == "" {
		return fmt.Errorf("%w: token response missing access_token", shared.ErrAuthFailed)
	}

	s.token = token
	return nil
}

// AccessToken returns the raw bearer token, or an empty string before Authenticate.
func (s *SpotifyService) AccessToken() string {
	if s.token == nil {
		return ""
	}
	return s.token.AccessToken
}

// AuthorizationHeader returns the Authorization header value sent on API calls.
func (s *SpotifyService) AuthorizationHeader() string {
	if s.token == nil {
		return ""
	}
	return "Bearer " + s.token.AccessToken
}

// doRequest performs an authenticated GET against the Spotify API and decodes the JSON body.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result any) error {
	if s.token == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	apiURL := s.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", s.AuthorizationHeader())
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", shared.ErrNotAuthenticated, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: status %d", shared.ErrTrackNotFound, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
		}
	}

	return nil
}

// SearchTracks searches for tracks matching the query.
//
// The limit is forwarded to the provider (defaulting to 5 when non-positive),
// but the returned slice is independently capped at 10 rows. Positions are
// 1-based in provider order. A search with no matches returns an empty slice.
func (s *SpotifyService) SearchTracks(ctx context.Context, query string, limit int) ([]models.TrackSummary, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(limit))

	var result SpotifySearchResult
	if err := s.doRequest(ctx, "/search?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	items := result.Tracks.Items
	if len(items) > maxSearchResults {
		items = items[:maxSearchResults]
	}

	summaries := make([]models.TrackSummary, 0, len(items))
	for i, item := range items {
		if len(item.Artists) == 0 {
			return nil, fmt.Errorf("%w: track %q has no artists", shared.ErrMalformedResponse, item.ID)
		}

		summaries = append(summaries, models.TrackSummary{
			Position: i + 1,
			Name:     item.Name,
			Artist:   item.Artists[0].Name,
			Album:    item.Album.Name,
			ID:       item.ID,
		})
	}

	return summaries, nil
}

// Track retrieves a single track by ID.
func (s *SpotifyService) Track(ctx context.Context, trackID string) (*SpotifyTrack, error) {
	var track SpotifyTrack
	endpoint := fmt.Sprintf("/tracks/%s", trackID)
	if err := s.doRequest(ctx, endpoint, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// Album retrieves a single album by ID.
func (s *SpotifyService) Album(ctx context.Context, albumID string) (*SpotifyAlbum, error) {
	var album SpotifyAlbum
	endpoint := fmt.Sprintf("/albums/%s", albumID)
	if err := s.doRequest(ctx, endpoint, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// GetTrackInfo assembles a [models.TrackInfo] from the track and album endpoints.
//
// Two dependent calls are made: the track is fetched by the summary's ID, then the
// album is fetched by the album ID embedded in the track response. The release date
// is formatted according to the provider's declared precision and the duration is
// rendered as zero-padded MM:SS.
func (s *SpotifyService) GetTrackInfo(ctx context.Context, summary models.TrackSummary) (*models.TrackInfo, error) {
	track, err := s.Track(ctx, summary.ID)
	if err != nil {
		return nil, err
	}

	if track.Album.ID == "" {
		return nil, fmt.Errorf("%w: track %q missing album ID", shared.ErrMalformedResponse, summary.ID)
	}
	if len(track.Artists) == 0 {
		return nil, fmt.Errorf("%w: track %q has no artists", shared.ErrMalformedResponse, summary.ID)
	}
	if len(track.Album.Images) == 0 {
		return nil, fmt.Errorf("%w: album %q has no images", shared.ErrMalformedResponse, track.Album.ID)
	}

	album, err := s.Album(ctx, track.Album.ID)
	if err != nil {
		return nil, err
	}

	releaseDate, err := FormatReleaseDate(track.Album.ReleaseDate, track.Album.ReleaseDatePrecision)
	if err != nil {
		return nil, err
	}

	return &models.TrackInfo{
		AlbumID:  track.Album.ID,
		Name:     track.Name,
		Artist:   track.Artists[0].Name,
		Year:     track.Album.ReleaseDate,
		Duration: shared.FormatDuration(track.DurationMS),
		Image:    track.Album.Images[0].URL,
		Label:    fmt.Sprintf("%s\n%s", releaseDate, album.Label),
		TrackID:  track.ID,
		Cover:    bannerAssetPath,
	}, nil
}

// releaseDateLayouts maps the provider's declared precision to a parse and a
// display layout. Precisions outside this table are an error, never a default.
var releaseDateLayouts = map[string][2]string{
	"day":   {"2006-01-02", "January 2, 2006"},
	"month": {"2006-01", "January 2006"},
	"year":  {"2006", "2006"},
}

// FormatReleaseDate renders a release date at the granularity the provider declared.
func FormatReleaseDate(date, precision string) (string, error) {
	layouts, ok := releaseDateLayouts[precision]
	if !ok {
		return "", fmt.Errorf("%w: %q", shared.ErrUnsupportedPrecision, precision)
	}

	parsed, err := time.Parse(layouts[0], date)
	if err != nil {
		return "", fmt.Errorf("%w: release date %q: %v", shared.ErrMalformedResponse, date, err)
	}

	return parsed.Format(layouts[1]), nil
}
