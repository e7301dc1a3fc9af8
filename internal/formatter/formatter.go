// package formatter provides functions to render search results and track metadata to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/desertthunder/tdx/internal/models"
)

// ResultsToCSV converts search results to CSV format with columns: Position, Name, Artist, Album, ID
func ResultsToCSV(results []models.TrackSummary) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "Name", "Artist", "Album", "ID"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, result := range results {
		record := []string{
			strconv.Itoa(result.Position),
			result.Name,
			result.Artist,
			result.Album,
			result.ID,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ResultsToText converts search results to plain text format, one numbered row per track.
func ResultsToText(query string, results []models.TrackSummary) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Results for %q: %d\n\n", query, len(results)))
	for _, result := range results {
		albumPart := ""
		if result.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", result.Album)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s\n", result.Position, result.Artist, result.Name, albumPart))
	}

	return buf.Bytes()
}

// InfoToMarkdown converts a TrackInfo to Markdown format with optional cover image
func InfoToMarkdown(info *models.TrackInfo, imageFilename string) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", info.Name))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	buf.WriteString(fmt.Sprintf("**Artist**: %s\n", info.Artist))
	buf.WriteString(fmt.Sprintf("**Duration**: %s\n", info.Duration))
	buf.WriteString(fmt.Sprintf("**Released**: %s\n", info.Year))
	buf.WriteString(fmt.Sprintf("**Label**: %s\n\n", info.Label))
	buf.WriteString(fmt.Sprintf("Track ID: `%s`\n", info.TrackID))
	buf.WriteString(fmt.Sprintf("Album ID: `%s`\n", info.AlbumID))

	return buf.Bytes()
}

// InfoToText converts a TrackInfo to plain text format
func InfoToText(info *models.TrackInfo) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Track: %s\n", info.Name))
	buf.WriteString(fmt.Sprintf("Artist: %s\n", info.Artist))
	buf.WriteString(fmt.Sprintf("Duration: %s\n", info.Duration))
	buf.WriteString(fmt.Sprintf("Label: %s\n", info.Label))
	buf.WriteString(fmt.Sprintf("Cover art: %s\n", info.Image))

	return buf.Bytes()
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}
