package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgpick/pgpick/internal/result"
)

func testSet() *result.Set {
	return result.Parse([]string{"id|name", "1|alice", "2|bob"})
}

func TestRowItem_FilterKeyEqualsDisplay(t *testing.T) {
	e := result.Entry{Columns: []string{"1", "alice"}}
	item := rowItem{entry: e}

	assert.Equal(t, "1 | alice", item.Title())
	assert.Equal(t, item.Title(), item.FilterValue())
}

func TestNew_PopulatesList(t *testing.T) {
	m := New(testSet())

	require.Len(t, m.list.Items(), 2)
	assert.Contains(t, m.list.Title, "id | name")
	assert.Contains(t, m.list.Title, "2 rows")
	assert.Equal(t, screenList, m.screen)
}

func TestUpdate_EnterOpensDetail(t *testing.T) {
	m := New(testSet())
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = sized.(Model)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	assert.Equal(t, screenDetail, m.screen)
	assert.Equal(t, []string{"1", "alice"}, m.selected.Columns)
	assert.Contains(t, m.View(), "row detail")
}

func TestUpdate_EscReturnsToList(t *testing.T) {
	m := New(testSet())
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = sized.(Model)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)

	assert.Equal(t, screenList, m.screen)
}

func TestUpdate_QuitFromList(t *testing.T) {
	m := New(testSet())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRenderDetailLines_KeepsJSONIndent(t *testing.T) {
	e := result.Entry{
		Headers: []string{"payload"},
		Columns: []string{`{"x":1}`},
	}

	lines := renderDetailLines(e)
	require.Greater(t, len(lines), 1)
	// JSON continuation lines stay unstyled and indented.
	assert.True(t, strings.HasPrefix(lines[1], "  "))
}
