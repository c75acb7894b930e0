// Package export renders negotiation lists for download.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
)

// ContentType is the media type of the CSV export.
const ContentType = "text/csv; charset=utf-8"

var csvHeader = []string{"ID", "Title", "Client", "Date", "Amount", "Status", "NextAction"}

// WriteCSV writes items as CSV. Every field is quoted with embedded quotes doubled,
// rows end in "\n" and Status uses the display label.
func WriteCSV(w io.Writer, items []domain.Negotiation) error {
	bw := bufio.NewWriter(w)
	if err := writeRow(bw, csvHeader); err != nil {
		return err
	}
	for _, n := range items {
		row := []string{
			n.ID,
			n.Title,
			n.Client,
			n.Date,
			strconv.FormatInt(n.Amount, 10),
			n.Status.Label(),
			n.NextActionDetail,
		}
		if err := writeRow(bw, row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Filename is the download name for an export produced on now's date.
func Filename(now time.Time) string {
	return fmt.Sprintf("negotiations_export_%s.csv", now.Format(domain.DateLayout))
}

func writeRow(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(quote(f)); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
