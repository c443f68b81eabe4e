package tui

import (
	"strings"
	"unicode"

	"tutor-board/internal/browser"
)

// panes receives the session's renders. Display text is sanitized on arrival
// so feed content cannot carry terminal control sequences. Card ids stay raw
// because they are handed back to the session on activation.
type panes struct {
	cards  []browser.Card
	detail *browser.Detail
	status browser.Status
}

func (p *panes) RenderList(cards []browser.Card) {
	p.cards = p.cards[:0]
	for _, c := range cards {
		c.Title = Sanitize(c.Title)
		c.Place = Sanitize(c.Place)
		c.Lesson = Sanitize(c.Lesson)
		c.Rate = Sanitize(c.Rate)
		p.cards = append(p.cards, c)
	}
}

func (p *panes) RenderDetail(detail *browser.Detail) {
	if detail == nil {
		p.detail = nil
		return
	}
	d := *detail
	d.ID = Sanitize(d.ID)
	d.Title = Sanitize(d.Title)
	d.Meta = Sanitize(d.Meta)
	d.Location = Sanitize(d.Location)
	d.Lesson = Sanitize(d.Lesson)
	d.Salary = Sanitize(d.Salary)
	d.CreatedAt = Sanitize(d.CreatedAt)
	d.Description = sanitizeMultiline(d.Description)
	p.detail = &d
}

func (p *panes) RenderStatus(status browser.Status) {
	status.Hint = Sanitize(status.Hint)
	p.status = status
}

func (p *panes) activeIndex() int {
	for i, c := range p.cards {
		if c.Active {
			return i
		}
	}
	return -1
}

// Sanitize drops control characters, including ESC, and folds line breaks
// into spaces.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}

func sanitizeMultiline(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = Sanitize(l)
	}
	return strings.Join(lines, "\n")
}
