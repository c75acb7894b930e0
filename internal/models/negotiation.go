package models

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
)

// NegotiationRow is one row of the negotiations table as the remote store returns it.
// Optional columns are nullable and timestamps arrive as strings.
type NegotiationRow struct {
	ID               string    `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Client           string    `json:"client" db:"client"`
	Date             string    `json:"date" db:"date"`
	Description      string    `json:"description" db:"description"`
	Amount           RawAmount `json:"amount" db:"amount"`
	Status           string    `json:"status" db:"status"`
	NextActionDate   *string   `json:"next_action_date" db:"next_action_date"`
	NextActionDetail *string   `json:"next_action_detail" db:"next_action_detail"`
	AttachmentURL    *string   `json:"attachment_url" db:"attachment_url"`
	CreatedAt        string    `json:"created_at" db:"created_at"`
	UpdatedAt        string    `json:"updated_at" db:"updated_at"`
}

// NegotiationInsert is the insert payload. id and timestamps are server defaults.
type NegotiationInsert struct {
	Title            string         `json:"title"`
	Client           string         `json:"client"`
	Date             string         `json:"date"`
	Description      string         `json:"description"`
	Amount           int64          `json:"amount"`
	Status           string         `json:"status"`
	NextActionDate   sql.NullString `json:"next_action_date"`
	NextActionDetail sql.NullString `json:"next_action_detail"`
	AttachmentURL    sql.NullString `json:"attachment_url"`
}

// NegotiationUpdate is a sparse update payload: a nil field is not written.
// For nullable columns a present value with Valid=false writes NULL.
type NegotiationUpdate struct {
	Title            *string
	Client           *string
	Date             *string
	Description      *string
	Amount           *int64
	Status           *string
	NextActionDate   *sql.NullString
	NextActionDetail *sql.NullString
	AttachmentURL    *sql.NullString
}

// Column is a single column assignment of an update.
type Column struct {
	Name  string
	Value any
}

// Columns returns the present assignments in table column order.
func (u NegotiationUpdate) Columns() []Column {
	var cols []Column
	if u.Title != nil {
		cols = append(cols, Column{"title", *u.Title})
	}
	if u.Client != nil {
		cols = append(cols, Column{"client", *u.Client})
	}
	if u.Date != nil {
		cols = append(cols, Column{"date", *u.Date})
	}
	if u.Description != nil {
		cols = append(cols, Column{"description", *u.Description})
	}
	if u.Amount != nil {
		cols = append(cols, Column{"amount", *u.Amount})
	}
	if u.Status != nil {
		cols = append(cols, Column{"status", *u.Status})
	}
	if u.NextActionDate != nil {
		cols = append(cols, Column{"next_action_date", *u.NextActionDate})
	}
	if u.NextActionDetail != nil {
		cols = append(cols, Column{"next_action_detail", *u.NextActionDetail})
	}
	if u.AttachmentURL != nil {
		cols = append(cols, Column{"attachment_url", *u.AttachmentURL})
	}
	return cols
}

// RawAmount keeps the amount exactly as the wire carried it, either a JSON
// number or a numeric string. Coercion to an integer happens in the mapper.
type RawAmount string

// UnmarshalJSON accepts 1200, 1200.5 and "1200".
func (a *RawAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		*a = RawAmount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	*a = RawAmount(n.String())
	return nil
}

// Scan implements sql.Scanner for numeric and text columns.
func (a *RawAmount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = ""
	case int64:
		*a = RawAmount(strconv.FormatInt(v, 10))
	case float64:
		*a = RawAmount(strconv.FormatFloat(v, 'f', -1, 64))
	case string:
		*a = RawAmount(v)
	case []byte:
		*a = RawAmount(string(v))
	default:
		return fmt.Errorf("amount: unsupported scan type %T", src)
	}
	return nil
}
