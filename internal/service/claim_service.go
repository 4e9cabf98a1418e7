package service

import (
	"context"
	"log"

	"claimdesk/internal/domain"
)

// ClaimService is the top-level orchestration facade: intake, then the
// two-stage classify/extract pipeline (or the fused fast path).
type ClaimService interface {
	GenerateClaim(ctx context.Context, files []UploadedFile) (*domain.ClaimResult, error)
	GenerateFastClaim(ctx context.Context, files []UploadedFile) (*domain.FusedClaimResult, error)
}

type claimService struct {
	intake     IntakeService
	classifier ClassifierService
	extractor  ExtractorService
	fast       FastClaimService
}

// NewClaimService creates a ClaimService.
func NewClaimService(intake IntakeService, classifier ClassifierService, extractor ExtractorService, fast FastClaimService) ClaimService {
	return &claimService{
		intake:     intake,
		classifier: classifier,
		extractor:  extractor,
		fast:       fast,
	}
}

// GenerateClaim runs the two-stage pipeline. Classification completes fully
// before any extraction task starts; extraction failures for individual
// categories are reported as data, not errors.
func (s *claimService) GenerateClaim(ctx context.Context, files []UploadedFile) (*domain.ClaimResult, error) {
	docs, err := s.intake.BuildDocumentSet(ctx, files)
	if err != nil {
		return nil, err
	}

	classification, err := s.classifier.Classify(ctx, docs)
	if err != nil {
		return nil, err
	}

	report, err := s.extractor.ExtractBatch(ctx, classification, docs)
	if err != nil {
		return nil, err
	}

	log.Printf("claimService.GenerateClaim: done (%d succeeded, %d failed)",
		report.Succeeded, report.Failed)
	return &domain.ClaimResult{
		Classification: classification,
		Extraction:     report,
	}, nil
}

// GenerateFastClaim runs the fused single-call variant.
func (s *claimService) GenerateFastClaim(ctx context.Context, files []UploadedFile) (*domain.FusedClaimResult, error) {
	docs, err := s.intake.BuildDocumentSet(ctx, files)
	if err != nil {
		return nil, err
	}
	return s.fast.GenerateFused(ctx, docs)
}
