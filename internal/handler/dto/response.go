package dto

import "github.com/mtlprog/transquote/internal/domain"

// deadlineDateLayout is ISO 8601 in UTC with milliseconds.
const deadlineDateLayout = "2006-01-02T15:04:05.000Z"

// CalculateResponse represents the response for POST /calculator/calculate.
type CalculateResponse struct {
	Price        int64  `json:"price"`
	Time         string `json:"time"`
	Deadline     int64  `json:"deadline"`
	DeadlineDate string `json:"deadlineDate"`
}

// NewCalculateResponse converts a quote to its wire form.
func NewCalculateResponse(q *domain.Quote) CalculateResponse {
	return CalculateResponse{
		Price:        q.Price,
		Time:         q.Deadline.ElapsedLabel,
		Deadline:     q.Deadline.DeadlineEpochSeconds,
		DeadlineDate: q.Deadline.DeadlineInstant.UTC().Format(deadlineDateLayout),
	}
}

// HealthResponse represents the response for GET /healthz.
type HealthResponse struct {
	Status    string `json:"status"`
	Languages int    `json:"languages"`
}
