package browser

import (
	"fmt"

	"tutor-board/internal/domain/demand"
)

// View receives every render the session performs. Implementations are
// responsible for escaping text for their medium.
type View interface {
	RenderList(cards []Card)
	RenderDetail(detail *Detail)
	RenderStatus(status Status)
}

type Card struct {
	ID     string
	Title  string
	Place  string
	Lesson string
	Rate   string
	Active bool
}

type Detail struct {
	ID          string
	Title       string
	Meta        string
	Location    string
	Lesson      string
	Salary      string
	CreatedAt   string
	Description string
}

type Status struct {
	Count     int
	CountText string
	Hint      string
	Fallback  bool
}

func CardOf(d demand.Demand, active bool) Card {
	return Card{
		ID:     d.ID,
		Title:  d.Title,
		Place:  d.City + " · " + d.District,
		Lesson: d.Grade + " / " + d.Subject,
		Rate:   fmt.Sprintf("¥%s-%s/h", demand.FormatRate(d.SalaryMin), demand.FormatRate(d.SalaryMax)),
		Active: active,
	}
}

func DetailOf(d demand.Demand) *Detail {
	return &Detail{
		ID:          d.ID,
		Title:       d.Title,
		Meta:        "需求编号：" + d.ID,
		Location:    d.City + d.District + " · " + d.Location,
		Lesson:      d.Grade + " / " + d.Subject,
		Salary:      fmt.Sprintf("¥%s - ¥%s / 小时", demand.FormatRate(d.SalaryMin), demand.FormatRate(d.SalaryMax)),
		CreatedAt:   d.CreatedAt,
		Description: d.Description,
	}
}

func CountText(n int) string {
	return fmt.Sprintf("%d 条需求", n)
}
