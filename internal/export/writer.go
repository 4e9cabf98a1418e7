// Package export flattens a claim result into tabular form for download as
// CSV or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"claimdesk/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the header row.
var columns = []string{
	"Category",
	"Present",
	"Source File",
	"Confidence",
	"Rationale",
	"Extraction Status",
	"Error Reason",
	"Extracted Data",
}

// Rows flattens a claim result into one row per known category, in
// enumeration order. Categories that were absent still get a row so the
// export is total, mirroring the API response.
func Rows(result *domain.ClaimResult) [][]string {
	outcomes := make(map[domain.Category]domain.ExtractionOutcome)
	if result.Extraction != nil {
		for _, o := range result.Extraction.Results {
			outcomes[o.Category] = o
		}
	}

	var rows [][]string
	for _, cat := range domain.Categories() {
		verdict := result.Classification[cat]
		row := []string{
			string(cat),
			strconv.FormatBool(verdict.Present),
			verdict.SourceFileID,
			"",
			verdict.Rationale,
			"",
			"",
			"",
		}
		if verdict.Present {
			row[3] = fmt.Sprintf("%.2f", verdict.Confidence)
		}
		if o, ok := outcomes[cat]; ok {
			row[5] = string(o.Status)
			row[6] = o.ErrorReason
			row[7] = string(o.Payload)
		}
		rows = append(rows, row)
	}
	return rows
}

// Writer wraps csv.Writer for exporting claim results as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteResult writes one row per category for the given claim result.
func (w *Writer) WriteResult(result *domain.ClaimResult) error {
	for _, row := range Rows(result) {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}
