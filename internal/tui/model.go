// Package tui implements the interactive result browser: a fuzzy-filterable
// row picker and a per-row detail screen.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pgpick/pgpick/internal/result"
)

type screen int

const (
	screenList screen = iota
	screenDetail
)

// rowItem adapts a result entry to the list widget. The filter key equals
// the display string, so fuzzy matching runs over the whole joined row.
type rowItem struct {
	entry result.Entry
}

func (i rowItem) Title() string       { return i.entry.Display() }
func (i rowItem) Description() string { return "" }
func (i rowItem) FilterValue() string { return i.entry.Display() }

// Model holds all browser state.
type Model struct {
	list     list.Model
	viewport viewport.Model
	screen   screen
	selected result.Entry
	width    int
	height   int
}

// New builds the browser model for a parsed result set.
func New(set *result.Set) Model {
	items := make([]list.Item, len(set.Entries))
	for i, e := range set.Entries {
		items[i] = rowItem{entry: e}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = selectedRowStyle
	delegate.Styles.NormalTitle = rowStyle

	l := list.New(items, delegate, 0, 0)
	l.Title = fmt.Sprintf("%s  (%d rows)", strings.Join(set.Headers, " | "), len(set.Entries))
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)

	return Model{list: l}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Run presents the result set and blocks until the user dismisses the UI.
func Run(set *result.Set) error {
	p := tea.NewProgram(New(set), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
