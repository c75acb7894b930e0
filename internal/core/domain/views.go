package domain

// DashboardStats are the headline figures shown on the dashboard.
type DashboardStats struct {
	TotalCount  int   `json:"totalCount"`
	TotalAmount int64 `json:"totalAmount"`
	ActiveCount int   `json:"activeCount"` // Proposal + Negotiation
	WonCount    int   `json:"wonCount"`    // ClosedWon
}

// StatusCount is one slice of the status breakdown chart.
type StatusCount struct {
	Status Status `json:"status"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

// MonthlyAmount is one bar of the monthly amount series.
type MonthlyAmount struct {
	Month  string `json:"month"` // YYYY-MM
	Amount int64  `json:"amount"`
}

// StatusFilterAll disables the status predicate of a ListFilter.
const StatusFilterAll = "ALL"

// ListFilter selects records for the list view. Empty text fields match everything.
type ListFilter struct {
	Keyword string `form:"keyword" json:"keyword"`
	Client  string `form:"client" json:"client"`
	Status  string `form:"status" json:"status"` // Wire code, display label, "ALL" or empty
}

// RevenueForecast holds the aggregates computed by the remote store.
type RevenueForecast struct {
	Forecast      int64          `json:"forecast"`
	WonThisMonth  int            `json:"wonThisMonth"`
	CountByStatus map[Status]int `json:"countByStatus"`
}
