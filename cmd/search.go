package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/tdx/internal/formatter"
	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search queries Spotify for tracks and prints the result rows.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	r.applyConfig(cmd.String("config"))

	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	save := cmd.Bool("save")

	svc, err := r.authenticatedService(ctx)
	if err != nil {
		return err
	}

	r.logger.Infof("searching for %q with limit %v", query, limit)

	results, err := svc.SearchTracks(ctx, query, int(limit))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	r.recordLookup(models.NewSearchLookup(query, len(results)))

	if save {
		saveFile := "tdx_search.csv"
		data, err := formatter.ResultsToCSV(results)
		if err != nil {
			return fmt.Errorf("failed to format results: %w", err)
		}
		if err := os.WriteFile(saveFile, data, 0644); err != nil {
			r.logger.Warn("failed to save results", "error", err)
		} else {
			r.logger.Info("results saved", "file", saveFile)
		}
	}

	if useJSON {
		return r.writeJSON(results, pretty)
	}

	if len(results) == 0 {
		return r.writePlainln("No matches for %q", query)
	}

	return r.writePlain("%s", formatter.ResultsToText(query, results))
}
