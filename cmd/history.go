package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/repositories"
	"github.com/desertthunder/tdx/internal/shared"
	"github.com/urfave/cli/v3"
)

// historyRow is the JSON projection of a persisted lookup.
type historyRow struct {
	Kind        string `json:"kind"`
	Query       string `json:"query,omitempty"`
	TrackID     string `json:"track_id,omitempty"`
	TrackName   string `json:"track_name,omitempty"`
	Artist      string `json:"artist,omitempty"`
	ResultCount int    `json:"result_count,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// History lists recent search and info operations from the local database.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	r.applyConfig(cmd.String("config"))

	limit := cmd.Int("limit")
	kind := cmd.String("kind")
	useJSON := cmd.Bool("json")

	if kind != "" && kind != string(models.LookupSearch) && kind != string(models.LookupInfo) {
		return fmt.Errorf("%w: kind must be 'search' or 'info'", shared.ErrInvalidFlag)
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	repo := repositories.NewLookupRepository(db)
	lookups, err := repo.List(map[string]any{"kind": kind, "limit": int(limit)})
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if useJSON {
		rows := make([]historyRow, 0, len(lookups))
		for _, l := range lookups {
			rows = append(rows, historyRow{
				Kind:        string(l.Kind()),
				Query:       l.Query(),
				TrackID:     l.TrackID(),
				TrackName:   l.TrackName(),
				Artist:      l.Artist(),
				ResultCount: l.ResultCount(),
				CreatedAt:   l.CreatedAt().Format("2006-01-02 15:04:05"),
			})
		}
		return r.writeJSON(rows, true)
	}

	if len(lookups) == 0 {
		return r.writePlainln("No history yet. Run 'tdx search' or 'tdx info' first.")
	}

	r.writePlain("Recent lookups:\n\n")
	for _, l := range lookups {
		when := l.CreatedAt().Format("2006-01-02 15:04")
		switch l.Kind() {
		case models.LookupSearch:
			r.writePlain("%s  search  %q (%d results)\n", when, l.Query(), l.ResultCount())
		case models.LookupInfo:
			r.writePlain("%s  info    %s - %s [%s]\n", when, l.Artist(), l.TrackName(), l.TrackID())
		}
	}

	return nil
}
