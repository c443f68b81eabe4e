package render

import (
	"bytes"
	"errors"
	"testing"

	"tutor-board/internal/browser"
	"tutor-board/internal/domain/demand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderPage(t *testing.T, acq demand.Acquisition, f browser.Filters, selected string) string {
	t.Helper()
	v := &HTMLView{}
	s := browser.NewSession(v, nil)
	s.Load(acq)
	s.Restore(f, selected)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, NewPage("辅导需求", "/", s, v)))
	return buf.String()
}

func TestWrite_EscapesDemandText(t *testing.T) {
	acq := demand.Live(demand.DemandsPath, []demand.Demand{{
		ID:          "X-1",
		Title:       `<script>alert("x")</script>`,
		City:        "深圳",
		District:    "南山",
		Grade:       "初二",
		Subject:     "数学",
		CreatedAt:   "2026-02-16 10:30",
		Description: `<img src=x onerror=alert(1)>`,
		Location:    "科技园",
	}})

	out := renderPage(t, acq, browser.DefaultFilters(), "")

	assert.NotContains(t, out, "<script>alert")
	assert.NotContains(t, out, "<img src=x")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "&lt;img src=x onerror=alert(1)&gt;")
	assert.Contains(t, out, "数据来源：/api/tutoring/demands")
}

func TestWrite_FallbackPage(t *testing.T) {
	out := renderPage(t, demand.FallbackFor(errors.New("offline")), browser.DefaultFilters(), "D-1003")

	assert.Contains(t, out, "5 条需求")
	assert.Contains(t, out, demand.HintFallback)
	assert.Contains(t, out, "需求编号：D-1003")
	assert.Contains(t, out, `<option value="salaryDesc">课时费从高到低</option>`)
	assert.NotContains(t, out, "detailPlaceholder")
}

func TestWrite_EmptyResult(t *testing.T) {
	f := browser.DefaultFilters()
	f.Keyword = "不存在的科目"

	out := renderPage(t, demand.FallbackFor(errors.New("offline")), f, "")

	assert.Contains(t, out, "0 条需求")
	assert.Contains(t, out, `id="emptyState"`)
	assert.Contains(t, out, `id="detailPlaceholder"`)
}

func TestNewPage_CardLinksCarryFilters(t *testing.T) {
	v := &HTMLView{}
	s := browser.NewSession(v, nil)
	s.Load(demand.FallbackFor(errors.New("offline")))
	f := browser.DefaultFilters()
	f.City = "深圳"
	f.Sort = browser.SortSalaryDesc
	s.Restore(f, "")

	page := NewPage("辅导需求", "/", s, v)

	require.Len(t, page.Cards, 2)
	assert.Equal(t, "D-1002", page.Cards[0].ID)
	assert.True(t, page.Cards[0].Active)
	assert.Equal(t, "/?city=%E6%B7%B1%E5%9C%B3&selected=D-1002&sort=salaryDesc", string(page.Cards[0].Href))

	var city Control
	for _, c := range page.Controls {
		if c.Name == "city" {
			city = c
		}
	}
	require.NotEmpty(t, city.Options)
	for _, o := range city.Options {
		assert.Equal(t, o.Value == "深圳", o.Selected, o.Value)
	}
}

func TestQuery_OmitsDefaults(t *testing.T) {
	assert.Empty(t, Query(browser.DefaultFilters()))

	f := browser.DefaultFilters()
	f.Keyword = "物理"
	f.Salary = browser.SalaryAbove300
	q := Query(f)
	assert.Equal(t, "物理", q.Get("keyword"))
	assert.Equal(t, "300 以上", q.Get("salary"))
	assert.False(t, q.Has("city"))
}
