package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/tdx/internal/formatter"
	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Info fetches and prints the denormalized metadata record for a single track.
//
// The positional argument is a track ID from a previous search; no validation
// is done on its shape before the provider call.
func (r *Runner) Info(ctx context.Context, cmd *cli.Command) error {
	r.applyConfig(cmd.String("config"))

	trackID := cmd.StringArg("id")
	if trackID == "" {
		return fmt.Errorf("%w: track ID", shared.ErrMissingArgument)
	}

	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	export := cmd.String("export")
	open := cmd.Bool("open")

	svc, err := r.authenticatedService(ctx)
	if err != nil {
		return err
	}

	r.logger.Infof("fetching track info for %s", trackID)

	info, err := svc.GetTrackInfo(ctx, models.TrackSummary{ID: trackID})
	if err != nil {
		return fmt.Errorf("track lookup failed: %w", err)
	}

	r.recordLookup(models.NewInfoLookup(*info))

	if export != "" {
		if err := r.exportInfo(info, export); err != nil {
			return err
		}
	}

	if open && info.Image != "" {
		if err := shared.OpenBrowser(info.Image); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}

	if useJSON {
		return r.writeJSON(info, pretty)
	}

	return r.writePlain("%s", formatter.InfoToText(info))
}

// exportInfo writes the record to tdx_track.<format>.
func (r *Runner) exportInfo(info *models.TrackInfo, format string) error {
	var data []byte
	var saveFile string

	switch strings.ToLower(format) {
	case "md", "markdown":
		saveFile = "tdx_track.md"
		data = formatter.InfoToMarkdown(info, r.downloadCover(info))
	case "txt", "text":
		saveFile = "tdx_track.txt"
		data = formatter.InfoToText(info)
	default:
		return fmt.Errorf("%w: unsupported export format %q", shared.ErrInvalidFlag, format)
	}

	if err := os.WriteFile(saveFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	r.logger.Info("track info exported", "file", saveFile)
	return nil
}

// downloadCover saves the cover art next to the export and returns its filename.
// A failed download degrades to an export without the image.
func (r *Runner) downloadCover(info *models.TrackInfo) string {
	if info.Image == "" {
		return ""
	}

	data, err := formatter.DownloadImage(info.Image)
	if err != nil {
		r.logger.Warn("failed to download cover art", "error", err)
		return ""
	}

	coverFile := "tdx_cover.jpg"
	if err := os.WriteFile(coverFile, data, 0644); err != nil {
		r.logger.Warn("failed to save cover art", "error", err)
		return ""
	}

	r.logger.Info("cover art saved", "file", coverFile)
	return coverFile
}
