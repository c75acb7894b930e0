package dto

import (
	"time"

	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
)

// NegotiationResponse defines the data returned for a negotiation.
type NegotiationResponse struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Client           string        `json:"client"`
	Date             string        `json:"date"`
	Description      string        `json:"description"`
	Amount           int64         `json:"amount"`
	Status           domain.Status `json:"status"`
	StatusLabel      string        `json:"statusLabel"`
	NextActionDate   string        `json:"nextActionDate"`
	NextActionDetail string        `json:"nextActionDetail"`
	AttachmentURL    *string       `json:"attachmentUrl"`
	CreatedAt        int64         `json:"createdAt"` // Epoch milliseconds
	UpdatedAt        int64         `json:"updatedAt"` // Epoch milliseconds
}

// ToNegotiationResponse converts a domain.Negotiation to NegotiationResponse DTO
func ToNegotiationResponse(n *domain.Negotiation) NegotiationResponse {
	return NegotiationResponse{
		ID:               n.ID,
		Title:            n.Title,
		Client:           n.Client,
		Date:             n.Date,
		Description:      n.Description,
		Amount:           n.Amount,
		Status:           n.Status,
		StatusLabel:      n.Status.Label(),
		NextActionDate:   n.NextActionDate,
		NextActionDetail: n.NextActionDetail,
		AttachmentURL:    n.AttachmentURL,
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        n.UpdatedAt,
	}
}

// ToListNegotiationResponse converts a slice of domain.Negotiation to a list response.
func ToListNegotiationResponse(items []domain.Negotiation) ListNegotiationsResponse {
	res := make([]NegotiationResponse, len(items))
	for i := range items {
		res[i] = ToNegotiationResponse(&items[i])
	}
	return ListNegotiationsResponse{Negotiations: res, Count: len(res)}
}

// ListNegotiationsResponse wraps a list of negotiations.
type ListNegotiationsResponse struct {
	Negotiations []NegotiationResponse `json:"negotiations"`
	Count        int                   `json:"count"`
}

// DashboardResponse is the complete dashboard payload.
type DashboardResponse struct {
	Stats     domain.DashboardStats  `json:"stats"`
	Breakdown []domain.StatusCount   `json:"breakdown"`
	Monthly   []domain.MonthlyAmount `json:"monthly"`
	Version   uint64                 `json:"version"` // Collection version the views were built from
}

// NegotiationQuery selects exactly one of the repository read filters.
type NegotiationQuery struct {
	Status  string `form:"status"`
	Client  string `form:"client"`
	Keyword string `form:"keyword"`
}

// OpenFormRequest starts an editing session. An empty NegotiationID opens a blank form.
type OpenFormRequest struct {
	NegotiationID string `json:"negotiationID"`
}

// FormFieldsRequest overwrites the provided form fields. Absent fields are kept.
type FormFieldsRequest struct {
	Title            *string        `json:"title"`
	Client           *string        `json:"client"`
	Date             *string        `json:"date"`
	Description      *string        `json:"description"`
	Amount           *int64         `json:"amount"`
	Status           *domain.Status `json:"status"`
	NextActionDate   *string        `json:"nextActionDate"`
	NextActionDetail *string        `json:"nextActionDetail"`
	AttachmentURL    *string        `json:"attachmentUrl"`
}

// FormResponse returns a form session, and the saved record after a successful submit.
type FormResponse struct {
	Form        domain.FormState     `json:"form"`
	Negotiation *NegotiationResponse `json:"negotiation,omitempty"`
}

// ForecastResponse is returned by the remote aggregate endpoint.
type ForecastResponse struct {
	Forecast      int64          `json:"forecast"`
	WonThisMonth  int            `json:"wonThisMonth"`
	CountByStatus map[string]int `json:"countByStatus"` // Keyed by status code
	GeneratedAt   time.Time      `json:"generatedAt"`
}

// ToForecastResponse converts the remote aggregates.
func ToForecastResponse(f *domain.RevenueForecast, now time.Time) ForecastResponse {
	counts := make(map[string]int, len(f.CountByStatus))
	for s, c := range f.CountByStatus {
		counts[s.String()] = c
	}
	return ForecastResponse{
		Forecast:      f.Forecast,
		WonThisMonth:  f.WonThisMonth,
		CountByStatus: counts,
		GeneratedAt:   now,
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
