package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"tutor-board/internal/browser"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var boardTemplate = template.Must(template.ParseFS(templateFS, "templates/board.html.tmpl"))

// HTMLView keeps the latest render of each pane so a request can write the
// whole page once the session has settled.
type HTMLView struct {
	Cards  []browser.Card
	Detail *browser.Detail
	Status browser.Status
}

func (v *HTMLView) RenderList(cards []browser.Card) {
	v.Cards = append(v.Cards[:0], cards...)
}

func (v *HTMLView) RenderDetail(detail *browser.Detail) {
	v.Detail = detail
}

func (v *HTMLView) RenderStatus(status browser.Status) {
	v.Status = status
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

type Control struct {
	Name    string
	Label   string
	Options []Option
}

type CardLink struct {
	browser.Card
	Href template.URL
}

type PageData struct {
	AppName  string
	Action   string
	Keyword  string
	Controls []Control
	Cards    []CardLink
	Detail   *browser.Detail
	Status   browser.Status
}

var sortLabels = map[string]string{
	string(browser.SortLatest):     "最新发布",
	string(browser.SortSalaryDesc): "课时费从高到低",
	string(browser.SortSalaryAsc):  "课时费从低到高",
}

// NewPage assembles the page for the settled session s whose renders went to v.
func NewPage(appName, action string, s *browser.Session, v *HTMLView) PageData {
	if action == "" {
		action = "/"
	}
	f := s.Filters()
	o := s.Options()

	data := PageData{
		AppName: appName,
		Action:  action,
		Keyword: f.Keyword,
		Controls: []Control{
			control(browser.FieldCity, "城市", o.Cities, f.City, nil),
			control(browser.FieldDistrict, "区域", o.Districts, f.District, nil),
			control(browser.FieldGrade, "年级", o.Grades, f.Grade, nil),
			control(browser.FieldSubject, "科目", o.Subjects, f.Subject, nil),
			control(browser.FieldSalary, "课时费", o.Salaries, string(f.Salary), nil),
			control(browser.FieldSort, "排序", o.Sorts, string(f.Sort), sortLabels),
		},
		Detail: v.Detail,
		Status: v.Status,
	}

	base := Query(f)
	data.Cards = make([]CardLink, 0, len(v.Cards))
	for _, c := range v.Cards {
		q := cloneValues(base)
		q.Set("selected", c.ID)
		data.Cards = append(data.Cards, CardLink{
			Card: c,
			Href: template.URL(action + "?" + q.Encode()),
		})
	}
	return data
}

func control(field browser.Field, label string, values []string, current string, labels map[string]string) Control {
	c := Control{Name: string(field), Label: label, Options: make([]Option, 0, len(values))}
	for _, v := range values {
		text := v
		if l, ok := labels[v]; ok {
			text = l
		}
		c.Options = append(c.Options, Option{Value: v, Label: text, Selected: v == current})
	}
	return c
}

// Query encodes the non-default parts of f as URL parameters.
func Query(f browser.Filters) url.Values {
	q := url.Values{}
	if f.Keyword != "" {
		q.Set(string(browser.FieldKeyword), f.Keyword)
	}
	set := func(field browser.Field, v string) {
		if v != "" && v != browser.All {
			q.Set(string(field), v)
		}
	}
	set(browser.FieldCity, f.City)
	set(browser.FieldDistrict, f.District)
	set(browser.FieldGrade, f.Grade)
	set(browser.FieldSubject, f.Subject)
	set(browser.FieldSalary, string(f.Salary))
	if f.Sort != "" && f.Sort != browser.SortLatest {
		q.Set(string(browser.FieldSort), string(f.Sort))
	}
	return q
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

func Write(w io.Writer, data PageData) error {
	if err := boardTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render board: %w", err)
	}
	return nil
}
