// Package ui implements the interactive track picker.
//
// The TUI walks the same three steps as the CLI: a query prompt
// ([textinput.Model]), a result list ([list.Model] of search rows), and a
// detail view rendering the assembled track metadata. Provider calls run as
// [tea.Cmd] functions and report back through the [Msg] union.
package ui
