package browser

import (
	"cmp"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"tutor-board/internal/domain/demand"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006-01-02",
	"2006/01/02",
}

var timestampZone atomic.Pointer[time.Location]

// SetTimestampZone sets the zone zone-less createdAt values are read in.
// A nil loc restores time.Local.
func SetTimestampZone(loc *time.Location) {
	timestampZone.Store(loc)
}

func zone() *time.Location {
	if loc := timestampZone.Load(); loc != nil {
		return loc
	}
	return time.Local
}

// timestampScore returns Unix milliseconds for s, or 0 when s does not parse.
// Values with an explicit offset keep it; the rest are read in the zone set
// by SetTimestampZone so they order correctly against offset values.
func timestampScore(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	loc := zone()
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}

func sortDemands(items []demand.Demand, mode SortMode) {
	switch mode {
	case SortSalaryDesc:
		slices.SortStableFunc(items, func(a, b demand.Demand) int {
			return cmp.Compare(b.RateCeiling(), a.RateCeiling())
		})
	case SortSalaryAsc:
		slices.SortStableFunc(items, func(a, b demand.Demand) int {
			return cmp.Compare(a.RateFloor(), b.RateFloor())
		})
	default:
		slices.SortStableFunc(items, func(a, b demand.Demand) int {
			return cmp.Compare(timestampScore(b.CreatedAt), timestampScore(a.CreatedAt))
		})
	}
}
