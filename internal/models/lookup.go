package models

import (
	"fmt"
	"time"
)

// LookupKind distinguishes history entries recorded by search and info operations.
type LookupKind string

const (
	LookupSearch LookupKind = "search"
	LookupInfo   LookupKind = "info"
)

var _ Model = (*Lookup)(nil)

// Lookup is a persisted record of a past search or track-info request.
//
// The history table is an append-only audit log shown by the history command.
// It is never read back to answer API queries.
type Lookup struct {
	id          string
	sequence    int
	kind        LookupKind
	query       string
	trackID     string
	trackName   string
	artist      string
	resultCount int
	createdAt   time.Time
	updatedAt   time.Time
	deletedAt   *time.Time
}

// NewSearchLookup creates a history entry for a search operation.
func NewSearchLookup(query string, resultCount int) *Lookup {
	now := time.Now()
	return &Lookup{
		kind:        LookupSearch,
		query:       query,
		resultCount: resultCount,
		createdAt:   now,
		updatedAt:   now,
	}
}

// NewInfoLookup creates a history entry for a track-info operation.
func NewInfoLookup(info TrackInfo) *Lookup {
	now := time.Now()
	return &Lookup{
		kind:      LookupInfo,
		trackID:   info.TrackID,
		trackName: info.Name,
		artist:    info.Artist,
		createdAt: now,
		updatedAt: now,
	}
}

// RestoreLookup reconstructs a Lookup from persisted columns.
func RestoreLookup(id string, sequence int, kind LookupKind, query, trackID, trackName, artist string, resultCount int, createdAt, updatedAt time.Time, deletedAt *time.Time) *Lookup {
	return &Lookup{
		id:          id,
		sequence:    sequence,
		kind:        kind,
		query:       query,
		trackID:     trackID,
		trackName:   trackName,
		artist:      artist,
		resultCount: resultCount,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		deletedAt:   deletedAt,
	}
}

func (l *Lookup) ID() string           { return l.id }
func (l *Lookup) Sequence() int        { return l.sequence }
func (l *Lookup) Kind() LookupKind     { return l.kind }
func (l *Lookup) Query() string        { return l.query }
func (l *Lookup) TrackID() string      { return l.trackID }
func (l *Lookup) TrackName() string    { return l.trackName }
func (l *Lookup) Artist() string       { return l.artist }
func (l *Lookup) ResultCount() int     { return l.resultCount }
func (l *Lookup) CreatedAt() time.Time { return l.createdAt }
func (l *Lookup) UpdatedAt() time.Time { return l.updatedAt }

func (l *Lookup) SetID(id string)           { l.id = id }
func (l *Lookup) SetSequence(sequence int)  { l.sequence = sequence }
func (l *Lookup) SetUpdatedAt(t time.Time)  { l.updatedAt = t }
func (l *Lookup) SetDeletedAt(t *time.Time) { l.deletedAt = t }
func (l *Lookup) DeletedAt() (time.Time, bool) {
	if l.deletedAt == nil {
		return time.Time{}, false
	}
	return *l.deletedAt, true
}

// Validate checks that required fields are present for the entry's kind.
func (l *Lookup) Validate() error {
	if l.id == "" {
		return fmt.Errorf("lookup ID is required")
	}

	switch l.kind {
	case LookupSearch:
		if l.query == "" {
			return fmt.Errorf("search lookup requires a query")
		}
	case LookupInfo:
		if l.trackID == "" {
			return fmt.Errorf("info lookup requires a track ID")
		}
	default:
		return fmt.Errorf("unknown lookup kind: %s", l.kind)
	}

	return nil
}
