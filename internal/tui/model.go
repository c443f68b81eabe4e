package tui

import (
	"context"
	"fmt"
	"strings"

	"tutor-board/internal/browser"
	"tutor-board/internal/domain/demand"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Loader acquires the demand set once per session.
type Loader func(ctx context.Context) demand.Acquisition

type loadedMsg struct{ acq demand.Acquisition }

type loadFailedMsg struct{ err error }

// Model is the terminal demand board. All session events happen inside
// Update, so the session stays on the bubbletea goroutine.
type Model struct {
	session *browser.Session
	panes   *panes
	logger  *zap.Logger
	notice  string
	load    Loader
	initial browser.Filters

	keys    KeyMap
	help    help.Model
	input   textinput.Model
	editing bool
	cursor  int

	width  int
	height int
}

func NewModel(load Loader, initial browser.Filters, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &panes{}

	in := textinput.New()
	in.Prompt = "关键词: "
	in.Placeholder = "标题 / 科目 / 年级 / 描述"
	in.SetValue(initial.Keyword)

	return Model{
		session: browser.NewSession(p, logger),
		panes:   p,
		logger:  logger,
		load:    load,
		initial: initial,
		keys:    DefaultKeyMap,
		help:    help.New(),
		input:   in,
		width:   100,
		height:  30,
	}
}

func (m Model) Init() tea.Cmd {
	load := m.load
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = loadFailedMsg{err: fmt.Errorf("load demands: %v", r)}
			}
		}()
		if load == nil {
			return loadFailedMsg{err: fmt.Errorf("no demand loader")}
		}
		return loadedMsg{acq: load(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case loadedMsg:
		m.session.Load(msg.acq)
		m.session.Restore(m.initial, "")
		m.syncCursor()
		return m, nil

	case loadFailedMsg:
		m.session.Fail(msg.err)
		m.session.Restore(m.initial, "")
		m.syncCursor()
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateKeyword(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m Model) updateKeyword(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Confirm) {
		m.editing = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetKeyword(m.input.Value())
	m.syncCursor()
	return m, cmd
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.panes.cards)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Activate):
		if m.cursor >= 0 && m.cursor < len(m.panes.cards) {
			id := m.panes.cards[m.cursor].ID
			m.notice = ""
			if _, err := m.session.HandleKey(id, msg.String()); err != nil {
				m.logger.Warn("select demand failed", zap.String("id", id), zap.Error(err))
				m.notice = "无法选中该需求"
			}
		}
	case key.Matches(msg, m.keys.Keyword):
		m.editing = true
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.City):
		m.cycle(browser.FieldCity)
	case key.Matches(msg, m.keys.District):
		m.cycle(browser.FieldDistrict)
	case key.Matches(msg, m.keys.Grade):
		m.cycle(browser.FieldGrade)
	case key.Matches(msg, m.keys.Subject):
		m.cycle(browser.FieldSubject)
	case key.Matches(msg, m.keys.Salary):
		m.cycle(browser.FieldSalary)
	case key.Matches(msg, m.keys.Sort):
		m.cycle(browser.FieldSort)
	}
	return m, nil
}

// cycle moves field to its next option, wrapping to the first.
func (m *Model) cycle(field browser.Field) {
	o := m.session.Options()
	f := m.session.Filters()

	var values []string
	var current string
	switch field {
	case browser.FieldCity:
		values, current = o.Cities, f.City
	case browser.FieldDistrict:
		values, current = o.Districts, f.District
	case browser.FieldGrade:
		values, current = o.Grades, f.Grade
	case browser.FieldSubject:
		values, current = o.Subjects, f.Subject
	case browser.FieldSalary:
		values, current = o.Salaries, string(f.Salary)
	case browser.FieldSort:
		values, current = o.Sorts, string(f.Sort)
	}
	if len(values) == 0 {
		return
	}
	if err := m.session.SetFilter(field, next(values, current)); err != nil {
		return
	}
	m.syncCursor()
}

func next(values []string, current string) string {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

// syncCursor puts the cursor on the selected card.
func (m *Model) syncCursor() {
	if i := m.panes.activeIndex(); i >= 0 {
		m.cursor = i
		return
	}
	m.cursor = 0
}

func (m Model) Session() *browser.Session { return m.session }

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	fallbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (m Model) View() string {
	if !m.session.Loaded() {
		return "正在加载需求…\n"
	}

	listWidth := m.width * 2 / 5
	if listWidth < 28 {
		listWidth = 28
	}
	detailWidth := m.width - listWidth - 4
	if detailWidth < 28 {
		detailWidth = 28
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Width(listWidth).Render(m.listView()),
		paneStyle.Width(detailWidth).Render(m.detailView()),
	)

	var b strings.Builder
	b.WriteString(m.filtersView())
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	if m.editing {
		b.WriteString(m.input.View())
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.help()))
	}
	return b.String()
}

func (m Model) filtersView() string {
	f := m.session.Filters()
	keyword := f.Keyword
	if keyword == "" {
		keyword = "-"
	}
	return mutedStyle.Render(fmt.Sprintf("关键词 %s · 城市 %s · 区域 %s · 年级 %s · 科目 %s · 课时费 %s · 排序 %s",
		Sanitize(keyword), Sanitize(f.City), Sanitize(f.District), Sanitize(f.Grade), Sanitize(f.Subject),
		Sanitize(string(f.Salary)), Sanitize(string(f.Sort))))
}

func (m Model) listView() string {
	if len(m.panes.cards) == 0 {
		return mutedStyle.Render("没有符合条件的需求")
	}
	lines := make([]string, 0, len(m.panes.cards))
	for i, c := range m.panes.cards {
		line := fmt.Sprintf("%s  %s  %s  %s", c.Title, c.Place, c.Lesson, c.Rate)
		if c.Active {
			line = activeStyle.Render("● " + line)
		} else {
			line = "  " + line
		}
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) detailView() string {
	d := m.panes.detail
	if d == nil {
		return mutedStyle.Render("请选择左侧需求查看详情")
	}
	return strings.Join([]string{
		titleStyle.Render(d.Title),
		mutedStyle.Render(d.Meta),
		"",
		"上课地点  " + d.Location,
		"年级科目  " + d.Lesson,
		"课时费    " + d.Salary,
		"发布时间  " + d.CreatedAt,
		"",
		d.Description,
	}, "\n")
}

func (m Model) statusView() string {
	st := m.panes.status
	hint := st.Hint
	if st.Fallback {
		hint = fallbackStyle.Render(hint)
	}
	line := st.CountText + "  " + hint
	if m.notice != "" {
		line += "  " + fallbackStyle.Render(m.notice)
	}
	return line
}
