package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
	"github.com/SscSPs/negotiation_tracker/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	items := []domain.Negotiation{
		{
			ID:               "id-1",
			Title:            `Say "hello"`,
			Client:           "Acme, Inc.",
			Date:             "2024-03-01",
			Amount:           1200,
			Status:           domain.StatusClosedWon,
			NextActionDetail: "line1\nline2",
		},
		{ID: "id-2", Title: "Plain", Client: "Beta", Date: "2024-03-02", Status: domain.StatusLead},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, items))

	expected := `"ID","Title","Client","Date","Amount","Status","NextAction"` + "\n" +
		`"id-1","Say ""hello""","Acme, Inc.","2024-03-01","1200","受注","line1` + "\n" + `line2"` + "\n" +
		`"id-2","Plain","Beta","2024-03-02","0","リード",""` + "\n"
	assert.Equal(t, expected, buf.String())

	// Output must be readable by a standard CSV parser.
	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, `Say "hello"`, records[1][1])
	assert.Equal(t, "line1\nline2", records[1][6])
}

func TestWriteCSV_AmountIsPlainInteger(t *testing.T) {
	items := []domain.Negotiation{{ID: "id-1", Amount: 9007199254740993}}

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, items))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "9007199254740993", records[1][4])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, nil))
	assert.Equal(t, `"ID","Title","Client","Date","Amount","Status","NextAction"`+"\n", buf.String())
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 7, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "negotiations_export_2024-07-05.csv", export.Filename(now))
}
