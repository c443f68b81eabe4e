package browser

import (
	"errors"
	"fmt"
	"strings"

	"tutor-board/internal/domain/demand"
)

// All is the sentinel option that disables a categorical filter.
const All = "全部"

var ErrUnknownFilter = errors.New("unknown filter")

type SortMode string

const (
	SortLatest     SortMode = "latest"
	SortSalaryDesc SortMode = "salaryDesc"
	SortSalaryAsc  SortMode = "salaryAsc"
)

// ParseSortMode maps unrecognized values to SortLatest.
func ParseSortMode(s string) SortMode {
	switch SortMode(strings.TrimSpace(s)) {
	case SortSalaryDesc:
		return SortSalaryDesc
	case SortSalaryAsc:
		return SortSalaryAsc
	default:
		return SortLatest
	}
}

func SortModes() []SortMode {
	return []SortMode{SortLatest, SortSalaryDesc, SortSalaryAsc}
}

type SalaryBucket string

const (
	SalaryAll      SalaryBucket = All
	SalaryBelow200 SalaryBucket = "200 以下"
	Salary200To300 SalaryBucket = "200-300"
	SalaryAbove300 SalaryBucket = "300 以上"
)

// ParseSalaryBucket maps unrecognized values to SalaryAll.
func ParseSalaryBucket(s string) SalaryBucket {
	switch SalaryBucket(strings.TrimSpace(s)) {
	case SalaryBelow200:
		return SalaryBelow200
	case Salary200To300:
		return Salary200To300
	case SalaryAbove300:
		return SalaryAbove300
	default:
		return SalaryAll
	}
}

func (b SalaryBucket) Match(rate float64) bool {
	switch b {
	case SalaryBelow200:
		return rate < 200
	case Salary200To300:
		return rate >= 200 && rate <= 300
	case SalaryAbove300:
		return rate > 300
	default:
		return true
	}
}

type Field string

const (
	FieldKeyword  Field = "keyword"
	FieldCity     Field = "city"
	FieldDistrict Field = "district"
	FieldGrade    Field = "grade"
	FieldSubject  Field = "subject"
	FieldSalary   Field = "salary"
	FieldSort     Field = "sort"
)

// Filters is the complete filter state of one browsing session.
type Filters struct {
	Keyword  string
	City     string
	District string
	Grade    string
	Subject  string
	Salary   SalaryBucket
	Sort     SortMode
}

func DefaultFilters() Filters {
	return Filters{
		City:     All,
		District: All,
		Grade:    All,
		Subject:  All,
		Salary:   SalaryAll,
		Sort:     SortLatest,
	}
}

func (f *Filters) Set(field Field, value string) error {
	switch field {
	case FieldKeyword:
		f.Keyword = strings.TrimSpace(value)
	case FieldCity:
		f.City = orAll(value)
	case FieldDistrict:
		f.District = orAll(value)
	case FieldGrade:
		f.Grade = orAll(value)
	case FieldSubject:
		f.Subject = orAll(value)
	case FieldSalary:
		f.Salary = ParseSalaryBucket(value)
	case FieldSort:
		f.Sort = ParseSortMode(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFilter, field)
	}
	return nil
}

func (f Filters) Get(field Field) string {
	switch field {
	case FieldKeyword:
		return f.Keyword
	case FieldCity:
		return f.City
	case FieldDistrict:
		return f.District
	case FieldGrade:
		return f.Grade
	case FieldSubject:
		return f.Subject
	case FieldSalary:
		return string(f.Salary)
	case FieldSort:
		return string(f.Sort)
	default:
		return ""
	}
}

// Match reports whether d satisfies every active predicate.
func (f Filters) Match(d demand.Demand) bool {
	return f.matchKeyword(d) &&
		matchCategory(d.City, f.City) &&
		matchCategory(d.District, f.District) &&
		matchCategory(d.Grade, f.Grade) &&
		matchCategory(d.Subject, f.Subject) &&
		f.Salary.Match(d.RateCeiling())
}

func (f Filters) matchKeyword(d demand.Demand) bool {
	kw := strings.ToLower(f.Keyword)
	if kw == "" {
		return true
	}
	haystack := strings.ToLower(d.Title + " " + d.Subject + " " + d.Grade + " " + d.Description)
	return strings.Contains(haystack, kw)
}

func matchCategory(value, filter string) bool {
	return filter == "" || filter == All || value == filter
}

func orAll(v string) string {
	if v == "" {
		return All
	}
	return v
}

// Apply returns the visible subsequence of items for f. It never mutates
// items and is safe to call repeatedly with the same inputs.
func Apply(items []demand.Demand, f Filters) []demand.Demand {
	out := make([]demand.Demand, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	sortDemands(out, f.Sort)
	return out
}
