package demand

import (
	"math"
	"strconv"
)

// Demand is one tutoring request as shown to a browsing user. Every field is
// populated; missing source values are replaced during normalization.
type Demand struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	City        string  `json:"city"`
	District    string  `json:"district"`
	Grade       string  `json:"grade"`
	Subject     string  `json:"subject"`
	SalaryMin   float64 `json:"salaryMin"`
	SalaryMax   float64 `json:"salaryMax"`
	CreatedAt   string  `json:"createdAt"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
}

// RateCeiling is the rate used for bucketing and descending salary order:
// SalaryMax when set, otherwise SalaryMin.
func (d Demand) RateCeiling() float64 {
	if d.SalaryMax != 0 {
		return d.SalaryMax
	}
	return d.SalaryMin
}

// RateFloor is the rate used for ascending salary order.
func (d Demand) RateFloor() float64 {
	if d.SalaryMin != 0 {
		return d.SalaryMin
	}
	return d.SalaryMax
}

func FormatRate(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
