package dto

type ImportRequest struct {
	URLs []string `json:"urls"`
}

type ImportFailureResponse struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

type ImportResponse struct {
	Articles int                     `json:"articles"`
	Parsed   int                     `json:"parsed"`
	Upserted int64                   `json:"upserted"`
	Failures []ImportFailureResponse `json:"failures"`
}
