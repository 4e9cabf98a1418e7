package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"claimdesk/internal/domain"
	"claimdesk/internal/port"
	"claimdesk/internal/schema"
)

// FastClaimService performs classification and extraction in a single
// generation call. It trades per-category failure isolation for latency: the
// one call either yields the whole combined record or the request fails.
type FastClaimService interface {
	GenerateFused(ctx context.Context, docs *domain.DocumentSet) (*domain.FusedClaimResult, error)
}

type fastClaimService struct {
	generators port.GeneratorSource
}

// NewFastClaimService creates a FastClaimService backed by the shared
// generator source.
func NewFastClaimService(generators port.GeneratorSource) FastClaimService {
	return &fastClaimService{generators: generators}
}

func (s *fastClaimService) GenerateFused(ctx context.Context, docs *domain.DocumentSet) (*domain.FusedClaimResult, error) {
	if docs.IsEmpty() {
		return nil, fmt.Errorf("%w: %w", domain.ErrClassificationFailed, domain.ErrEmptyDocumentSet)
	}

	def := schema.FusedClaim()
	gen, err := s.generators.For(def.Spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrClassificationFailed, err)
	}

	raw, err := gen.Generate(ctx, def.Prompt(classificationPayload(docs)))
	if err != nil {
		log.Printf("fastClaimService.GenerateFused: generation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrClassificationFailed, err)
	}

	result, err := decodeFusedRecord(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrClassificationFailed, err)
	}

	log.Printf("fastClaimService.GenerateFused: %d pages processed, %d categories present",
		len(docs.Pages), len(result.Classification.PresentCategories()))
	return result, nil
}

// decodeFusedRecord splits the flat <CATEGORY>_classification /
// <CATEGORY>_data record into a total classification result and the payloads
// of the present categories.
func decodeFusedRecord(raw json.RawMessage) (*domain.FusedClaimResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decoding fused record: %w", err)
	}

	result := &domain.FusedClaimResult{
		Classification: make(domain.ClassificationResult, len(domain.Categories())),
		Extractions:    make(map[domain.Category]json.RawMessage),
	}

	for _, cat := range domain.Categories() {
		verdictRaw, ok := fields[string(cat)+"_classification"]
		if !ok {
			return nil, fmt.Errorf("fused record missing verdict for %s", cat)
		}
		var verdict domain.ClassificationVerdict
		if err := json.Unmarshal(verdictRaw, &verdict); err != nil {
			return nil, fmt.Errorf("decoding %s verdict: %w", cat, err)
		}
		result.Classification[cat] = verdict

		if !verdict.Present {
			continue
		}
		if data, ok := fields[string(cat)+"_data"]; ok && string(data) != "null" {
			result.Extractions[cat] = data
		}
	}

	result.Classification.Normalize()
	return result, nil
}
