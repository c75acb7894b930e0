package domain

import (
	"fmt"
	"strings"
)

// Status is a stage in the negotiation pipeline.
// The zero value is StatusLead.
type Status int

const (
	StatusLead Status = iota
	StatusContacted
	StatusProposal
	StatusNegotiation
	StatusClosedWon
	StatusClosedLost
)

// AllStatuses lists every status in declared pipeline order.
var AllStatuses = []Status{
	StatusLead,
	StatusContacted,
	StatusProposal,
	StatusNegotiation,
	StatusClosedWon,
	StatusClosedLost,
}

// statusCodes is the wire/storage representation.
var statusCodes = map[Status]string{
	StatusLead:        "LEAD",
	StatusContacted:   "CONTACTED",
	StatusProposal:    "PROPOSAL",
	StatusNegotiation: "NEGOTIATION",
	StatusClosedWon:   "CLOSED_WON",
	StatusClosedLost:  "CLOSED_LOST",
}

// statusLabels is the display text shown to users.
var statusLabels = map[Status]string{
	StatusLead:        "リード",
	StatusContacted:   "初回接触",
	StatusProposal:    "提案中",
	StatusNegotiation: "交渉中",
	StatusClosedWon:   "受注",
	StatusClosedLost:  "失注",
}

// String returns the wire code of the status (e.g. "CLOSED_WON").
func (s Status) String() string {
	if code, ok := statusCodes[s]; ok {
		return code
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Label returns the human readable label used by the dashboard and exports.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return s.String()
}

// Valid reports whether s is a member of the enumeration.
func (s Status) Valid() bool {
	_, ok := statusCodes[s]
	return ok
}

// IsActive reports whether the negotiation is still being worked (Proposal or Negotiation).
func (s Status) IsActive() bool {
	return s == StatusProposal || s == StatusNegotiation
}

// CountsTowardForecast reports whether the amount belongs in the revenue forecast.
func (s Status) CountsTowardForecast() bool {
	return s == StatusProposal || s == StatusNegotiation || s == StatusClosedWon
}

// ParseStatus resolves a wire code (case-insensitive) or a display label.
// Display labels are accepted because older rows were stored with them.
func ParseStatus(v string) (Status, bool) {
	v = strings.TrimSpace(v)
	for _, s := range AllStatuses {
		if strings.EqualFold(statusCodes[s], v) || statusLabels[s] == v {
			return s, true
		}
	}
	return StatusLead, false
}

// StoredValues lists every stored text that reads back as one of statuses: the
// wire code and the display label. Comparisons against it must upper-case the
// stored value since codes are matched without regard to case.
func StoredValues(statuses ...Status) []string {
	out := make([]string, 0, 2*len(statuses))
	for _, s := range statuses {
		out = append(out, statusCodes[s], statusLabels[s])
	}
	return out
}

// ForecastStatuses are the statuses whose amounts make up the revenue forecast.
func ForecastStatuses() []Status {
	var out []Status
	for _, s := range AllStatuses {
		if s.CountsTowardForecast() {
			out = append(out, s)
		}
	}
	return out
}

// MarshalText encodes the status as its wire code.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a wire code or display label.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, ok := ParseStatus(string(text))
	if !ok {
		return fmt.Errorf("unknown status %q", string(text))
	}
	*s = parsed
	return nil
}
