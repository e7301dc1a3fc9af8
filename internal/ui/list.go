package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tdx/internal/models"
)

var _ list.Item = resultItem{}

// resultItem wraps [models.TrackSummary] to implement [list.Item].
type resultItem struct {
	summary models.TrackSummary
}

func (i resultItem) FilterValue() string { return i.summary.Name }
func (i resultItem) Title() string {
	return fmt.Sprintf("%d. %s", i.summary.Position, i.summary.Name)
}
func (i resultItem) Description() string {
	desc := i.summary.Artist
	if i.summary.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.summary.Album)
	}
	return desc
}
