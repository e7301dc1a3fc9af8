// package services defines interface Service for interacting with track metadata HTTP APIs
package services

import (
	"context"

	"github.com/desertthunder/tdx/internal/models"
)

// Service defines the interface for track metadata providers.
type Service interface {
	// Authenticate obtains an access token from the provider.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context) error

	// SearchTracks searches the provider for tracks matching a free-text query.
	// Results are returned in provider order with 1-based positions.
	SearchTracks(ctx context.Context, query string, limit int) ([]models.TrackSummary, error)

	// GetTrackInfo retrieves detailed metadata for a previously returned search result.
	// Only the ID field of the summary is consulted.
	GetTrackInfo(ctx context.Context, summary models.TrackSummary) (*models.TrackInfo, error)

	// Name returns the name of the provider (e.g., "Spotify")
	Name() string
}
