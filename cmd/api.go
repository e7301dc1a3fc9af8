package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tdx/internal/services"
	"github.com/desertthunder/tdx/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet performs an authenticated raw GET against the Spotify API and prints the body.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	r.applyConfig(cmd.String("config"))

	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: API path", shared.ErrMissingArgument)
	}

	pretty := cmd.Bool("pretty")

	if r.api == nil {
		return fmt.Errorf("%w: API service not initialized", shared.ErrServiceUnavailable)
	}

	if _, err := r.authenticatedService(ctx); err != nil {
		return err
	}

	if spotify, ok := r.spotify.(*services.SpotifyService); ok {
		r.api.SetBearer(spotify.AccessToken())
	}

	r.logger.Infof("GET %s", path)

	resp, err := r.api.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		r.logger.Warn("non-success status", "status", resp.StatusCode)
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, pretty)
	}

	return r.writePlain("%s\n", resp.Body)
}
