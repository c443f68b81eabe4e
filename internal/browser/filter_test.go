package browser

import (
	"testing"
	"time"

	"tutor-board/internal/domain/demand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(items []demand.Demand) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestApply_DefaultsShowEverythingNewestFirst(t *testing.T) {
	got := Apply(demand.Fallback(), DefaultFilters())
	assert.Equal(t, []string{"D-1001", "D-1002", "D-1003", "D-1004", "D-1005"}, ids(got))
}

func TestApply_CityShenzhenLatest(t *testing.T) {
	f := DefaultFilters()
	require.NoError(t, f.Set(FieldCity, "深圳"))

	got := Apply(demand.Fallback(), f)

	assert.Equal(t, []string{"D-1001", "D-1002"}, ids(got))
}

func TestApply_KeywordPhysics(t *testing.T) {
	f := DefaultFilters()
	require.NoError(t, f.Set(FieldKeyword, "  物理 "))

	got := Apply(demand.Fallback(), f)

	assert.Equal(t, []string{"D-1002"}, ids(got))
}

func TestApply_KeywordIsCaseInsensitive(t *testing.T) {
	items := []demand.Demand{
		{ID: "a", Title: "IELTS Speaking"},
		{ID: "b", Title: "数学", Description: "needs GEOMETRY help"},
		{ID: "c", Title: "其他", Location: "ielts street"},
	}
	f := DefaultFilters()
	f.Keyword = "ielts"
	assert.Equal(t, []string{"a"}, ids(Apply(items, f)))

	f.Keyword = "Geometry"
	assert.Equal(t, []string{"b"}, ids(Apply(items, f)))
}

func TestApply_SalaryDescOrder(t *testing.T) {
	f := DefaultFilters()
	require.NoError(t, f.Set(FieldSort, "salaryDesc"))

	got := Apply(demand.Fallback(), f)

	maxes := make([]float64, 0, len(got))
	for _, it := range got {
		maxes = append(maxes, it.SalaryMax)
	}
	assert.Equal(t, []float64{420, 320, 260, 230, 200}, maxes)
}

func TestApply_SalaryAscUsesFloor(t *testing.T) {
	items := []demand.Demand{
		{ID: "a", SalaryMin: 0, SalaryMax: 150},
		{ID: "b", SalaryMin: 120, SalaryMax: 400},
		{ID: "c", SalaryMin: 200, SalaryMax: 210},
	}
	f := DefaultFilters()
	f.Sort = SortSalaryAsc

	assert.Equal(t, []string{"b", "a", "c"}, ids(Apply(items, f)))
}

func TestApply_SalaryBuckets(t *testing.T) {
	items := []demand.Demand{
		{ID: "low", SalaryMin: 100, SalaryMax: 199},
		{ID: "edge200", SalaryMin: 200},
		{ID: "edge300", SalaryMin: 150, SalaryMax: 300},
		{ID: "high", SalaryMin: 250, SalaryMax: 301},
	}
	cases := []struct {
		bucket string
		want   []string
	}{
		{"200 以下", []string{"low"}},
		{"200-300", []string{"edge200", "edge300"}},
		{"300 以上", []string{"high"}},
		{"全部", []string{"low", "edge200", "edge300", "high"}},
		{"bogus", []string{"low", "edge200", "edge300", "high"}},
	}
	for _, tc := range cases {
		t.Run(tc.bucket, func(t *testing.T) {
			f := DefaultFilters()
			require.NoError(t, f.Set(FieldSalary, tc.bucket))
			// All items share an unparsable timestamp so the stable sort keeps input order.
			assert.Equal(t, tc.want, ids(Apply(items, f)))
		})
	}
}

func TestApply_UnparsableTimestampSortsLast(t *testing.T) {
	items := []demand.Demand{
		{ID: "bad", CreatedAt: "时间未知"},
		{ID: "old", CreatedAt: "2020-01-01 00:00"},
		{ID: "new", CreatedAt: "2026-02-16T10:30:00+08:00"},
	}
	got := Apply(items, DefaultFilters())
	assert.Equal(t, []string{"new", "old", "bad"}, ids(got))
}

func TestApply_LatestTiesKeepInputOrder(t *testing.T) {
	items := []demand.Demand{
		{ID: "x", CreatedAt: "2026-02-16 10:30"},
		{ID: "y", CreatedAt: "2026-02-16 10:30"},
		{ID: "z", CreatedAt: "2026-02-16 10:30"},
	}
	assert.Equal(t, []string{"x", "y", "z"}, ids(Apply(items, DefaultFilters())))
}

func TestApply_IsIdempotentAndSubset(t *testing.T) {
	all := demand.Fallback()
	states := []Filters{
		DefaultFilters(),
		{Keyword: "提升", City: All, District: All, Grade: All, Subject: All, Salary: SalaryAll, Sort: SortSalaryAsc},
		{City: "深圳", District: "福田", Grade: All, Subject: All, Salary: Salary200To300, Sort: SortLatest},
		{City: All, District: All, Grade: "高三", Subject: "化学", Salary: SalaryAbove300, Sort: SortSalaryDesc},
	}
	for _, f := range states {
		first := Apply(all, f)
		second := Apply(all, f)
		assert.Equal(t, first, second)
		for _, it := range first {
			assert.True(t, f.Match(it), "visible item %s must satisfy filters", it.ID)
			assert.Contains(t, ids(all), it.ID)
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	all := demand.Fallback()
	f := DefaultFilters()
	f.Sort = SortSalaryAsc
	_ = Apply(all, f)
	assert.Equal(t, demand.Fallback(), all)
}

func TestFilters_SetUnknownField(t *testing.T) {
	f := DefaultFilters()
	err := f.Set(Field("colour"), "red")
	assert.ErrorIs(t, err, ErrUnknownFilter)
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortSalaryDesc, ParseSortMode("salaryDesc"))
	assert.Equal(t, SortSalaryAsc, ParseSortMode("salaryAsc"))
	assert.Equal(t, SortLatest, ParseSortMode(""))
	assert.Equal(t, SortLatest, ParseSortMode("random"))
}

func TestTimestampScore(t *testing.T) {
	assert.Zero(t, timestampScore(""))
	assert.Zero(t, timestampScore("yesterday"))
	assert.Greater(t, timestampScore("2026-02-16 10:30"), timestampScore("2026-02-16 09:12"))
	assert.Equal(t, timestampScore("2026-02-16"), timestampScore("2026/02/16"))
}

func TestTimestampScore_ZoneLessUsesConfiguredZone(t *testing.T) {
	SetTimestampZone(time.FixedZone("CST", 8*60*60))
	t.Cleanup(func() { SetTimestampZone(nil) })

	// 10:30 at +08:00 is 02:30Z, so it is older than 03:00Z.
	assert.Less(t, timestampScore("2026-02-16 10:30"), timestampScore("2026-02-16T03:00:00Z"))
	assert.Equal(t, timestampScore("2026-02-16T02:30:00Z"), timestampScore("2026-02-16 10:30"))
	assert.Equal(t, timestampScore("2026-02-16T10:30:00+08:00"), timestampScore("2026/02/16 10:30"))

	items := []demand.Demand{
		{ID: "local", CreatedAt: "2026-02-16 10:30"},
		{ID: "utc", CreatedAt: "2026-02-16T03:00:00Z"},
	}
	sortDemands(items, SortLatest)
	assert.Equal(t, "utc", items[0].ID)

	SetTimestampZone(time.UTC)
	items = []demand.Demand{
		{ID: "utc", CreatedAt: "2026-02-16T03:00:00Z"},
		{ID: "local", CreatedAt: "2026-02-16 10:30"},
	}
	sortDemands(items, SortLatest)
	assert.Equal(t, "local", items[0].ID)
}
