package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tdx/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var _ tea.Msg = Msg{}

const (
	MsgResultsFetched MsgKind = iota
	MsgInfoFetched
)

// resultsFetchedMsg is the constructor for [MsgResultsFetched]
func resultsFetchedMsg(results []models.TrackSummary, err error) Msg {
	return Msg{
		kind: MsgResultsFetched,
		data: struct {
			results []models.TrackSummary
			err     error
		}{results, err},
	}
}

// infoFetchedMsg is the constructor for [MsgInfoFetched]
func infoFetchedMsg(info *models.TrackInfo, err error) Msg {
	return Msg{
		kind: MsgInfoFetched,
		data: struct {
			info *models.TrackInfo
			err  error
		}{info, err},
	}
}
