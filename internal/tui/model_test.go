package tui

import (
	"context"
	"errors"
	"testing"

	"tutor-board/internal/browser"
	"tutor-board/internal/domain/demand"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fallbackLoader(context.Context) demand.Acquisition {
	return demand.FallbackFor(errors.New("offline"))
}

func started(t *testing.T, load Loader, initial browser.Filters) Model {
	t.Helper()
	m := NewModel(load, initial, nil)
	msg := m.Init()()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModel_LoadsAndRenders(t *testing.T) {
	m := started(t, fallbackLoader, browser.DefaultFilters())

	assert.True(t, m.Session().Loaded())
	assert.Len(t, m.panes.cards, 5)
	assert.Equal(t, "D-1001", m.Session().SelectedID())
	assert.Equal(t, 0, m.cursor)

	view := m.View()
	assert.Contains(t, view, "5 条需求")
	assert.Contains(t, view, demand.HintFallback)
	assert.Contains(t, view, "需求编号：D-1001")
}

func TestModel_ViewBeforeLoad(t *testing.T) {
	m := NewModel(fallbackLoader, browser.DefaultFilters(), nil)
	assert.Contains(t, m.View(), "正在加载")
}

func TestModel_CursorAndActivate(t *testing.T) {
	m := started(t, fallbackLoader, browser.DefaultFilters())

	m = press(m, "down", "down")
	assert.Equal(t, 2, m.cursor)
	assert.Equal(t, "D-1001", m.Session().SelectedID(), "moving focus does not select")

	m = press(m, "enter")
	assert.Equal(t, "D-1003", m.Session().SelectedID())
	require.NotNil(t, m.panes.detail)
	assert.Equal(t, "需求编号：D-1003", m.panes.detail.Meta)

	m = press(m, "up", " ")
	assert.Equal(t, "D-1002", m.Session().SelectedID())

	m = press(m, "up", "up", "up")
	assert.Equal(t, 0, m.cursor)
}

func TestModel_CycleCityResetsDistrict(t *testing.T) {
	m := started(t, fallbackLoader, browser.DefaultFilters())

	m = press(m, "c")
	assert.Equal(t, "深圳", m.Session().Filters().City)
	assert.Equal(t, "2 条需求", m.panes.status.CountText)

	m = press(m, "d")
	assert.Equal(t, "南山", m.Session().Filters().District)

	m = press(m, "c")
	assert.Equal(t, "广州", m.Session().Filters().City)
	assert.Equal(t, browser.All, m.Session().Filters().District)
}

func TestModel_CycleSortKeepsSelectionUnderCursor(t *testing.T) {
	m := started(t, fallbackLoader, browser.DefaultFilters())

	m = press(m, "o")
	assert.Equal(t, browser.SortSalaryDesc, m.Session().Filters().Sort)
	assert.Equal(t, "D-1001", m.Session().SelectedID())
	assert.Equal(t, "D-1001", m.panes.cards[m.cursor].ID)

	m = press(m, "o", "o")
	assert.Equal(t, browser.SortLatest, m.Session().Filters().Sort)
}

func TestModel_KeywordEditing(t *testing.T) {
	m := started(t, fallbackLoader, browser.DefaultFilters())

	m = press(m, "/")
	require.True(t, m.editing)

	m = press(m, "物", "理")
	assert.Equal(t, "物理", m.Session().Filters().Keyword)
	assert.Equal(t, "1 条需求", m.panes.status.CountText)
	assert.Equal(t, "D-1002", m.Session().SelectedID())

	m = press(m, "c")
	assert.Equal(t, browser.All, m.Session().Filters().City, "keys are text while editing")

	m = press(m, "esc")
	assert.False(t, m.editing)
}

func TestModel_InitialFilters(t *testing.T) {
	f := browser.DefaultFilters()
	f.Subject = "英语"
	m := started(t, fallbackLoader, f)

	for _, c := range m.panes.cards {
		assert.Contains(t, c.Lesson, "英语")
	}
}

func TestModel_LoaderPanicUsesLoadFailedHint(t *testing.T) {
	m := started(t, func(context.Context) demand.Acquisition { panic("boom") }, browser.DefaultFilters())

	assert.Len(t, m.panes.cards, 5)
	assert.Equal(t, demand.HintLoadFailed, m.panes.status.Hint)
}

func TestModel_Quit(t *testing.T) {
	m := started(t, fallbackLoader, browser.DefaultFilters())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "[31mred title", Sanitize("\x1b[31mred\ntitle"))
	assert.Equal(t, "a\nb", sanitizeMultiline("a\x07\r\nb"))

	p := &panes{}
	p.RenderList([]browser.Card{{ID: "x", Title: "\x1b]0;pwned\x07ok"}})
	assert.Equal(t, "]0;pwnedok", p.cards[0].Title)
}

func TestNext(t *testing.T) {
	assert.Equal(t, "b", next([]string{"a", "b"}, "a"))
	assert.Equal(t, "a", next([]string{"a", "b"}, "b"))
	assert.Equal(t, "a", next([]string{"a", "b"}, "zzz"))
}

func liveLoader(items ...demand.Demand) Loader {
	return func(context.Context) demand.Acquisition {
		return demand.Live(demand.DemandsPath, items)
	}
}

func TestModel_HostileFilterValuesAreSanitized(t *testing.T) {
	m := started(t, liveLoader(
		demand.Demand{ID: "A", Title: "t", City: "\x1b[31mEVIL", District: "\x1b]0;x\x07区", Grade: "g", Subject: "s", CreatedAt: "2026-02-16 10:30"},
		demand.Demand{ID: "B", Title: "t", City: "深圳", District: "南山", Grade: "g", Subject: "s", CreatedAt: "2026-02-16 09:30"},
	), browser.DefaultFilters())

	m = press(m, "c", "d")
	require.Equal(t, "\x1b[31mEVIL", m.Session().Filters().City)

	view := m.View()
	assert.NotContains(t, view, "\x1b[31m")
	assert.NotContains(t, view, "\x1b]0;")
	assert.Contains(t, view, "[31mEVIL")
}

func TestModel_ActivateCardWithControlCharsInID(t *testing.T) {
	m := started(t, liveLoader(
		demand.Demand{ID: "A-1", Title: "first", CreatedAt: "2026-02-16 10:30"},
		demand.Demand{ID: "B\t2", Title: "second", CreatedAt: "2026-02-16 10:30"},
	), browser.DefaultFilters())

	m = press(m, "down", "enter")

	assert.Equal(t, "B\t2", m.Session().SelectedID())
	assert.Empty(t, m.notice)
	require.NotNil(t, m.panes.detail)
	assert.Equal(t, "需求编号：B 2", m.panes.detail.Meta)
}

func TestModel_FailedActivationIsReported(t *testing.T) {
	m := started(t, fallbackLoader, browser.DefaultFilters())
	m.panes.cards = append(m.panes.cards, browser.Card{ID: "gone"})
	m.cursor = len(m.panes.cards) - 1

	m = press(m, "enter")

	assert.Equal(t, "D-1001", m.Session().SelectedID())
	assert.Equal(t, "无法选中该需求", m.notice)
	assert.Contains(t, m.View(), "无法选中该需求")
}
