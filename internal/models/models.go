// package models defines the data model for the track lookup service
package models

import (
	"time"
)

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// TrackSummary is a single search result row.
//
// Position is 1-based and reflects the order results were returned by the provider.
type TrackSummary struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	ID       string `json:"id"`
}

// TrackInfo is the denormalized metadata record for a single track,
// combining fields from the track and album endpoints.
type TrackInfo struct {
	AlbumID  string `json:"album_id"`
	Name     string `json:"name"`
	Artist   string `json:"artist"`
	Year     string `json:"year"`     // raw release date as reported by the provider
	Duration string `json:"duration"` // zero-padded MM:SS
	Image    string `json:"image"`    // cover art URL
	Label    string `json:"label"`    // formatted release date + record label
	TrackID  string `json:"track_id"`
	Cover    string `json:"cover"` // local banner asset path
}
