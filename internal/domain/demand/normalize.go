package demand

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultTitle       = "未命名需求"
	DefaultCity        = "未知城市"
	DefaultDistrict    = "未知区域"
	DefaultGrade       = "年级待定"
	DefaultSubject     = "科目待定"
	DefaultCreatedAt   = "时间未知"
	DefaultDescription = "暂无详细说明"
	DefaultLocation    = "地点待沟通"
)

var newID = uuid.NewString

// Normalize maps one decoded feed record onto a Demand. Records that are not
// JSON objects still produce a Demand made entirely of defaults.
func Normalize(raw any) Demand {
	rec, _ := raw.(map[string]any)

	return Demand{
		ID:          firstText(rec, "", "id", "taskId"),
		Title:       firstText(rec, DefaultTitle, "title"),
		City:        firstText(rec, DefaultCity, "city"),
		District:    firstText(rec, DefaultDistrict, "district"),
		Grade:       firstText(rec, DefaultGrade, "grade"),
		Subject:     firstText(rec, DefaultSubject, "subject"),
		SalaryMin:   numberOr(rec, "salaryMin", 0),
		SalaryMax:   numberOr(rec, "salaryMax", numberOr(rec, "salary", 0)),
		CreatedAt:   firstText(rec, DefaultCreatedAt, "createdAt", "publishTime"),
		Description: firstText(rec, DefaultDescription, "description", "contentText"),
		Location:    firstText(rec, DefaultLocation, "location"),
	}.withID()
}

func NormalizeAll(raws []any) []Demand {
	out := make([]Demand, 0, len(raws))
	for _, r := range raws {
		out = append(out, Normalize(r))
	}
	return out
}

func (d Demand) withID() Demand {
	if d.ID == "" {
		d.ID = newID()
	}
	return d
}

func firstText(rec map[string]any, def string, keys ...string) string {
	for _, k := range keys {
		v, ok := rec[k]
		if !ok || !truthy(v) {
			continue
		}
		return text(v)
	}
	return def
}

// numberOr reads a numeric field. Absent, null and unparsable values yield
// def; an empty string counts as zero.
func numberOr(rec map[string]any, key string, def float64) float64 {
	v, ok := rec[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return def
		}
		return n
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return def
		}
		return f
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) {
			return def
		}
		return f
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return def
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}

func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return FormatRate(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
