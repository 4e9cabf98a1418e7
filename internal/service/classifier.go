package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"claimdesk/internal/domain"
	"claimdesk/internal/port"
	"claimdesk/internal/schema"
)

// ClassifierService determines which document categories are present in a
// document set.
type ClassifierService interface {
	Classify(ctx context.Context, docs *domain.DocumentSet) (domain.ClassificationResult, error)
}

type classifierService struct {
	generators port.GeneratorSource
}

// NewClassifierService creates a ClassifierService backed by the shared
// generator source.
func NewClassifierService(generators port.GeneratorSource) ClassifierService {
	return &classifierService{generators: generators}
}

// Classify concatenates all pages into a single annotated payload, issues
// exactly one structured generation call, and returns the verdicts. There are
// no retries at this layer: the single invocation either yields a result that
// is total over categories or the whole operation fails with
// domain.ErrClassificationFailed.
func (s *classifierService) Classify(ctx context.Context, docs *domain.DocumentSet) (domain.ClassificationResult, error) {
	if docs.IsEmpty() {
		return nil, fmt.Errorf("%w: %w", domain.ErrClassificationFailed, domain.ErrEmptyDocumentSet)
	}

	def := schema.Classification()
	gen, err := s.generators.For(def.Spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrClassificationFailed, err)
	}

	payload := classificationPayload(docs)
	raw, err := gen.Generate(ctx, def.Prompt(payload))
	if err != nil {
		log.Printf("classifierService.Classify: generation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrClassificationFailed, err)
	}

	var result domain.ClassificationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: decoding result: %v", domain.ErrClassificationFailed, err)
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrClassificationFailed, err)
	}
	result.Normalize()

	log.Printf("classifierService.Classify: %d pages classified, %d categories present",
		len(docs.Pages), len(result.PresentCategories()))
	return result, nil
}

// classificationPayload annotates every page with its source file and page
// number so the model can attribute evidence to a specific file.
func classificationPayload(docs *domain.DocumentSet) string {
	var b strings.Builder
	for i, p := range docs.Pages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Source: %s, Page: %d\n%s", p.SourceFileID, p.PageNumber, p.Text)
	}
	return b.String()
}
