package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"claimdesk/internal/domain"
	"claimdesk/internal/generator"
	"claimdesk/internal/port"
	"claimdesk/internal/schema"
)

// ExtractorService runs one extraction task per present category and
// aggregates the outcomes into a report.
type ExtractorService interface {
	ExtractBatch(ctx context.Context, classification domain.ClassificationResult, docs *domain.DocumentSet) (*domain.ExtractionReport, error)
}

type extractorService struct {
	generators  port.GeneratorSource
	taskTimeout time.Duration
}

// NewExtractorService creates an ExtractorService. taskTimeout bounds each
// individual generation call; a timed-out task becomes a failure outcome
// without affecting its siblings.
func NewExtractorService(generators port.GeneratorSource, taskTimeout time.Duration) ExtractorService {
	if taskTimeout <= 0 {
		taskTimeout = 180 * time.Second
	}
	return &extractorService{generators: generators, taskTimeout: taskTimeout}
}

// workItem is one unit of extraction work: a present category and the pages
// of the file the classifier attributed it to.
type workItem struct {
	category domain.Category
	verdict  domain.ClassificationVerdict
	pages    []domain.Page
}

// ExtractBatch derives the work list from the classification, runs all tasks
// concurrently, waits for every one of them, and aggregates the outcomes in
// category enumeration order. Once tasks are launched the batch cannot fail:
// every task failure is converted into a failure outcome. Only a malformed
// classification aborts before launch.
func (s *extractorService) ExtractBatch(ctx context.Context, classification domain.ClassificationResult, docs *domain.DocumentSet) (*domain.ExtractionReport, error) {
	if err := classification.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedClassification, err)
	}

	// Work list in enumeration order; the outcome slice is index-addressed so
	// the report order is independent of task completion order.
	var work []workItem
	for _, cat := range domain.Categories() {
		verdict := classification[cat]
		if !verdict.Present {
			continue
		}
		work = append(work, workItem{
			category: cat,
			verdict:  verdict,
			pages:    docs.PagesForFile(verdict.SourceFileID),
		})
	}

	if len(work) == 0 {
		log.Printf("extractorService.ExtractBatch: no categories present, nothing to extract")
		return domain.NewExtractionReport(nil), nil
	}

	outcomes := make([]domain.ExtractionOutcome, len(work))
	var wg sync.WaitGroup
	for i := range work {
		wg.Add(1)
		go func(i int, item workItem) {
			defer wg.Done()
			outcomes[i] = s.extractOne(ctx, item)
		}(i, work[i])
	}
	wg.Wait()

	report := domain.NewExtractionReport(outcomes)
	log.Printf("extractorService.ExtractBatch: %d attempted, %d succeeded, %d failed",
		report.TotalAttempted, report.Succeeded, report.Failed)
	return report, nil
}

// extractOne runs a single extraction task. It never returns an error: any
// failure is folded into the outcome with a bounded, sanitized reason.
func (s *extractorService) extractOne(ctx context.Context, item workItem) domain.ExtractionOutcome {
	outcome := domain.ExtractionOutcome{
		SourceFileID: item.verdict.SourceFileID,
		Category:     item.category,
	}

	if len(item.pages) == 0 {
		outcome.Status = domain.ExtractionFailed
		outcome.ErrorReason = "no matching pages"
		return outcome
	}

	def, err := schema.ForCategory(item.category)
	if err != nil {
		outcome.Status = domain.ExtractionFailed
		outcome.ErrorReason = generator.SanitizeReason(err)
		return outcome
	}

	gen, err := s.generators.For(def.Spec)
	if err != nil {
		outcome.Status = domain.ExtractionFailed
		outcome.ErrorReason = generator.SanitizeReason(err)
		return outcome
	}

	taskCtx, cancel := context.WithTimeout(ctx, s.taskTimeout)
	defer cancel()

	payload, err := gen.Generate(taskCtx, def.Prompt(joinPages(item.pages)))
	if err != nil {
		log.Printf("extractorService.extractOne: %s extraction failed for %s: %v",
			item.category, item.verdict.SourceFileID, err)
		outcome.Status = domain.ExtractionFailed
		outcome.ErrorReason = generator.SanitizeReason(err)
		return outcome
	}

	outcome.Status = domain.ExtractionSuccess
	outcome.Payload = payload
	return outcome
}

// joinPages concatenates page texts in page-number order with explicit break
// markers. Pages arrive pre-sorted from DocumentSet.PagesForFile.
func joinPages(pages []domain.Page) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		parts = append(parts, fmt.Sprintf("Page %d:\n%s", p.PageNumber, p.Text))
	}
	return strings.Join(parts, "\n\n--- Page Break ---\n\n")
}
