package browser

import "tutor-board/internal/domain/demand"

// Options holds the selectable values for each categorical filter. Every list
// starts with All.
type Options struct {
	Cities    []string
	Districts []string
	Grades    []string
	Subjects  []string
	Salaries  []string
	Sorts     []string
}

func DeriveOptions(items []demand.Demand, city string) Options {
	return Options{
		Cities:    withAll(uniqueBy(items, func(d demand.Demand) string { return d.City })),
		Districts: DistrictOptions(items, city),
		Grades:    withAll(uniqueBy(items, func(d demand.Demand) string { return d.Grade })),
		Subjects:  withAll(uniqueBy(items, func(d demand.Demand) string { return d.Subject })),
		Salaries:  SalaryOptions(),
		Sorts:     []string{string(SortLatest), string(SortSalaryDesc), string(SortSalaryAsc)},
	}
}

// DistrictOptions lists the districts of demands in city, or of every demand
// when city is All.
func DistrictOptions(items []demand.Demand, city string) []string {
	base := items
	if city != "" && city != All {
		base = make([]demand.Demand, 0, len(items))
		for _, it := range items {
			if it.City == city {
				base = append(base, it)
			}
		}
	}
	return withAll(uniqueBy(base, func(d demand.Demand) string { return d.District }))
}

func SalaryOptions() []string {
	return []string{
		string(SalaryAll),
		string(SalaryBelow200),
		string(Salary200To300),
		string(SalaryAbove300),
	}
}

func (o Options) For(field Field) []string {
	switch field {
	case FieldCity:
		return o.Cities
	case FieldDistrict:
		return o.Districts
	case FieldGrade:
		return o.Grades
	case FieldSubject:
		return o.Subjects
	case FieldSalary:
		return o.Salaries
	case FieldSort:
		return o.Sorts
	default:
		return nil
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func uniqueBy(items []demand.Demand, key func(demand.Demand) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		k := key(it)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func withAll(values []string) []string {
	return append([]string{All}, values...)
}
