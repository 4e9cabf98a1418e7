package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Page is the immutable unit of input: one page of extracted text from one
// uploaded file. Produced once by the document loader, never mutated.
type Page struct {
	SourceFileID string `json:"source_file_id"`
	PageNumber   int    `json:"page_number"`
	Text         string `json:"text"`
}

// DocumentSet is the loaded, paginated text content of all uploaded files.
// Read-only once constructed; safe for concurrent readers.
type DocumentSet struct {
	Pages []Page `json:"pages"`
}

// IsEmpty reports whether the set contains no pages.
func (d *DocumentSet) IsEmpty() bool {
	return d == nil || len(d.Pages) == 0
}

// FileIDs returns the distinct source file ids in first-seen order.
func (d *DocumentSet) FileIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, p := range d.Pages {
		if !seen[p.SourceFileID] {
			seen[p.SourceFileID] = true
			ids = append(ids, p.SourceFileID)
		}
	}
	return ids
}

// PagesForFile returns all pages belonging to the given source file,
// ordered by page number.
func (d *DocumentSet) PagesForFile(sourceFileID string) []Page {
	var pages []Page
	for _, p := range d.Pages {
		if p.SourceFileID == sourceFileID {
			pages = append(pages, p)
		}
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].PageNumber < pages[j].PageNumber })
	return pages
}

// ClassificationVerdict is the per-category presence judgment.
// When Present is false, SourceFileID is empty and Confidence carries no
// meaning.
type ClassificationVerdict struct {
	Present      bool    `json:"present"`
	SourceFileID string  `json:"source_file_id,omitempty"`
	Confidence   float64 `json:"confidence"`
	Rationale    string  `json:"rationale"`
}

// ClassificationResult maps every known Category to exactly one verdict.
// It is total: a result missing any category is rejected by Validate.
type ClassificationResult map[Category]ClassificationVerdict

// Validate checks that the result covers every known category and contains
// no unknown ones.
func (r ClassificationResult) Validate() error {
	for _, cat := range Categories() {
		if _, ok := r[cat]; !ok {
			return fmt.Errorf("missing verdict for category %s", cat)
		}
	}
	for cat := range r {
		if !cat.IsValid() {
			return fmt.Errorf("unknown category %q in classification result", cat)
		}
	}
	return nil
}

// Normalize enforces the verdict invariant in place: absent categories carry
// no source file id and no confidence.
func (r ClassificationResult) Normalize() {
	for cat, v := range r {
		if !v.Present {
			v.SourceFileID = ""
			v.Confidence = 0
			r[cat] = v
		}
	}
}

// PresentCategories returns the categories marked present, in canonical
// enumeration order.
func (r ClassificationResult) PresentCategories() []Category {
	var present []Category
	for _, cat := range Categories() {
		if v, ok := r[cat]; ok && v.Present {
			present = append(present, cat)
		}
	}
	return present
}

// ExtractionOutcome is the per-(file, category) result of one extraction
// task: a payload matching the category schema, or a failure reason.
type ExtractionOutcome struct {
	SourceFileID string           `json:"source_file_id"`
	Category     Category         `json:"category"`
	Status       ExtractionStatus `json:"status"`
	Payload      json.RawMessage  `json:"payload,omitempty"`
	ErrorReason  string           `json:"error_reason,omitempty"`
}

// ExtractionReport aggregates all extraction outcomes for one request,
// ordered by category enumeration order, with derived counters.
type ExtractionReport struct {
	Results        []ExtractionOutcome `json:"results"`
	TotalAttempted int                 `json:"total_attempted"`
	Succeeded      int                 `json:"succeeded"`
	Failed         int                 `json:"failed"`
}

// NewExtractionReport freezes a slice of outcomes into a report and computes
// the counters. succeeded + failed always equals total_attempted.
func NewExtractionReport(outcomes []ExtractionOutcome) *ExtractionReport {
	report := &ExtractionReport{
		Results:        outcomes,
		TotalAttempted: len(outcomes),
	}
	for _, o := range outcomes {
		if o.Status == ExtractionSuccess {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	return report
}

// ClaimResult is the combined output of the two-stage pipeline.
type ClaimResult struct {
	Classification ClassificationResult `json:"classification"`
	Extraction     *ExtractionReport    `json:"extraction"`
}

// FusedClaimResult is the output of the single-call fast path: verdicts for
// every category plus a payload for each category marked present.
type FusedClaimResult struct {
	Classification ClassificationResult         `json:"classification"`
	Extractions    map[Category]json.RawMessage `json:"extractions,omitempty"`
}
