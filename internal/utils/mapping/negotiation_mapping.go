package mapping

import (
	"database/sql"
	"strings"
	"time"

	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
	"github.com/SscSPs/negotiation_tracker/internal/models"
	"github.com/shopspring/decimal"
)

// timestampLayouts are the wire forms accepted for created_at/updated_at.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ToDomainNegotiation converts a storage row into the canonical record.
// It never fails: bad amounts become 0, bad timestamps become 0 and an
// unknown status becomes Lead.
func ToDomainNegotiation(row models.NegotiationRow) domain.Negotiation {
	status, _ := domain.ParseStatus(row.Status)
	return domain.Negotiation{
		ID:               row.ID,
		Title:            row.Title,
		Client:           row.Client,
		Date:             normalizeDate(row.Date),
		Description:      row.Description,
		Amount:           ParseAmount(row.Amount),
		Status:           status,
		NextActionDate:   normalizeDate(deref(row.NextActionDate)),
		NextActionDetail: deref(row.NextActionDetail),
		AttachmentURL:    nonEmpty(row.AttachmentURL),
		CreatedAt:        ParseTimestampMillis(row.CreatedAt),
		UpdatedAt:        ParseTimestampMillis(row.UpdatedAt),
	}
}

// ToDomainNegotiationSlice converts rows preserving order.
func ToDomainNegotiationSlice(rows []models.NegotiationRow) []domain.Negotiation {
	out := make([]domain.Negotiation, len(rows))
	for i, row := range rows {
		out[i] = ToDomainNegotiation(row)
	}
	return out
}

// ToInsertRow converts a draft into an insert payload. Empty optional text is stored as NULL.
func ToInsertRow(d domain.Draft) models.NegotiationInsert {
	return models.NegotiationInsert{
		Title:            d.Title,
		Client:           d.Client,
		Date:             d.Date,
		Description:      d.Description,
		Amount:           d.Amount,
		Status:           d.Status.String(),
		NextActionDate:   nullString(d.NextActionDate),
		NextActionDetail: nullString(d.NextActionDetail),
		AttachmentURL:    nullString(deref(d.AttachmentURL)),
	}
}

// ToUpdateRow converts a patch into a sparse update payload. Only fields present in
// the patch appear in the result, so unrelated columns are never overwritten.
func ToUpdateRow(p domain.NegotiationPatch) models.NegotiationUpdate {
	var u models.NegotiationUpdate
	u.Title = p.Title
	u.Client = p.Client
	u.Date = p.Date
	u.Description = p.Description
	u.Amount = p.Amount
	if p.Status != nil {
		code := p.Status.String()
		u.Status = &code
	}
	if p.NextActionDate != nil {
		v := nullString(*p.NextActionDate)
		u.NextActionDate = &v
	}
	if p.NextActionDetail != nil {
		v := nullString(*p.NextActionDetail)
		u.NextActionDetail = &v
	}
	if p.AttachmentURL != nil {
		v := nullString(*p.AttachmentURL)
		u.AttachmentURL = &v
	}
	return u
}

// ParseAmount coerces a wire amount ("1200", "1200.00", 1200) to an integer.
// Fractions are truncated; negative or malformed values yield 0.
func ParseAmount(raw models.RawAmount) int64 {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return 0
	}
	return d.IntPart()
}

// ParseTimestampMillis converts a wire timestamp to epoch milliseconds, or 0 if unparseable.
func ParseTimestampMillis(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}

// normalizeDate trims a date or timestamp string down to YYYY-MM-DD.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
