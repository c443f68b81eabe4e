package dto

import "tutor-board/internal/domain/demand"

type DemandResponse struct {
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

func NewDemandResponse(d demand.Demand) DemandResponse {
	return DemandResponse{
		ID:          d.ID,
		Title:       d.Title,
		City:        d.City,
		District:    d.District,
		Grade:       d.Grade,
		Subject:     d.Subject,
		SalaryMin:   d.SalaryMin,
		SalaryMax:   d.SalaryMax,
		CreatedAt:   d.CreatedAt,
		Description: d.Description,
		Location:    d.Location,
	}
}

func NewDemandListResponse(items []demand.Demand) []DemandResponse {
	out := make([]DemandResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewDemandResponse(it))
	}
	return out
}
