package domain

// Negotiation is a sales opportunity tracked through the status pipeline.
// CreatedAt and UpdatedAt are epoch milliseconds assigned by the remote store.
type Negotiation struct {
	ID               string  `json:"id"`               // Server assigned, immutable
	Title            string  `json:"title"`            // Non-empty
	Client           string  `json:"client"`           // Non-empty
	Date             string  `json:"date"`             // YYYY-MM-DD
	Description      string  `json:"description"`      // May be empty
	Amount           int64   `json:"amount"`           // >= 0
	Status           Status  `json:"status"`           // Pipeline stage
	NextActionDate   string  `json:"nextActionDate"`   // YYYY-MM-DD or empty
	NextActionDetail string  `json:"nextActionDetail"` // Free text or empty
	AttachmentURL    *string `json:"attachmentUrl"`    // Nullable opaque reference
	CreatedAt        int64   `json:"createdAt"`
	UpdatedAt        int64   `json:"updatedAt"`
}

// Draft is a negotiation payload that has not been confirmed by the remote store.
// An empty ID means the draft creates a new record; otherwise it edits that record.
type Draft struct {
	ID               string  `json:"id,omitempty"`
	Title            string  `json:"title"`
	Client           string  `json:"client"`
	Date             string  `json:"date"`
	Description      string  `json:"description"`
	Amount           int64   `json:"amount"`
	Status           Status  `json:"status"`
	NextActionDate   string  `json:"nextActionDate"`
	NextActionDetail string  `json:"nextActionDetail"`
	AttachmentURL    *string `json:"attachmentUrl"`
}

// IsNew reports whether the draft has no server identity yet.
func (d Draft) IsNew() bool {
	return d.ID == ""
}

// ToDraft strips the server-managed timestamps, keeping the id as the edit target.
func (n Negotiation) ToDraft() Draft {
	return Draft{
		ID:               n.ID,
		Title:            n.Title,
		Client:           n.Client,
		Date:             n.Date,
		Description:      n.Description,
		Amount:           n.Amount,
		Status:           n.Status,
		NextActionDate:   n.NextActionDate,
		NextActionDetail: n.NextActionDetail,
		AttachmentURL:    cloneString(n.AttachmentURL),
	}
}

// NegotiationPatch is a partial update. A nil field is absent and must not be written;
// a non-nil pointer to an empty optional text clears the remote value.
type NegotiationPatch struct {
	Title            *string `json:"title,omitempty"`
	Client           *string `json:"client,omitempty"`
	Date             *string `json:"date,omitempty"`
	Description      *string `json:"description,omitempty"`
	Amount           *int64  `json:"amount,omitempty"`
	Status           *Status `json:"status,omitempty"`
	NextActionDate   *string `json:"nextActionDate,omitempty"`
	NextActionDetail *string `json:"nextActionDetail,omitempty"`
	AttachmentURL    *string `json:"attachmentUrl,omitempty"`
}

// IsEmpty reports whether no field is present.
func (p NegotiationPatch) IsEmpty() bool {
	return p.Title == nil && p.Client == nil && p.Date == nil && p.Description == nil &&
		p.Amount == nil && p.Status == nil && p.NextActionDate == nil &&
		p.NextActionDetail == nil && p.AttachmentURL == nil
}

// ToPatch converts the draft into a patch with every editable field present.
// A nil AttachmentURL is written as an explicit clear.
func (d Draft) ToPatch() NegotiationPatch {
	attachment := ""
	if d.AttachmentURL != nil {
		attachment = *d.AttachmentURL
	}
	status := d.Status
	return NegotiationPatch{
		Title:            &d.Title,
		Client:           &d.Client,
		Date:             &d.Date,
		Description:      &d.Description,
		Amount:           &d.Amount,
		Status:           &status,
		NextActionDate:   &d.NextActionDate,
		NextActionDetail: &d.NextActionDetail,
		AttachmentURL:    &attachment,
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
