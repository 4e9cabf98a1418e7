package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"claimdesk/internal/config"
	"claimdesk/internal/domain"
	"claimdesk/internal/port"
)

// UploadedFile is one raw uploaded document, already read into memory.
type UploadedFile struct {
	Name    string
	Content []byte
}

// IntakeService validates a batch of uploads, archives the originals, and
// builds the immutable DocumentSet for the pipeline.
type IntakeService interface {
	BuildDocumentSet(ctx context.Context, files []UploadedFile) (*domain.DocumentSet, error)
}

type intakeService struct {
	loader  port.DocumentLoader
	storage port.ObjectStorage
	cfg     *config.StorageConfig
}

// NewIntakeService creates an IntakeService.
func NewIntakeService(loader port.DocumentLoader, storage port.ObjectStorage, cfg *config.StorageConfig) IntakeService {
	return &intakeService{loader: loader, storage: storage, cfg: cfg}
}

// BuildDocumentSet assigns each file a stable source id (doc_1.pdf,
// doc_2.pdf, ...), archives the original bytes, and extracts per-page text.
// A file whose text extraction fails is excluded from the set entirely; the
// pipeline never sees partial pages. Validation failures and archive
// failures abort the whole batch.
func (s *intakeService) BuildDocumentSet(ctx context.Context, files []UploadedFile) (*domain.DocumentSet, error) {
	if len(files) == 0 {
		return nil, domain.ErrNoFiles
	}

	for i := range files {
		if err := s.validate(&files[i]); err != nil {
			return nil, fmt.Errorf("file %q: %w", files[i].Name, err)
		}
	}

	batchID := uuid.New()
	set := &domain.DocumentSet{}

	for i, f := range files {
		sourceFileID := fmt.Sprintf("doc_%d.pdf", i+1)
		key := fmt.Sprintf("claims/%s/%s", batchID, sourceFileID)

		_, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.cfg.Bucket,
			Key:         key,
			Body:        bytes.NewReader(f.Content),
			ContentType: "application/pdf",
			Size:        int64(len(f.Content)),
		})
		if err != nil {
			log.Printf("intakeService.BuildDocumentSet: archiving %s failed: %v", sourceFileID, err)
			return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
		}

		pages, err := s.loader.LoadPages(sourceFileID, f.Content)
		if err != nil {
			// Unreadable file: exclude it from the set entirely.
			log.Printf("intakeService.BuildDocumentSet: excluding %s (%q): %v", sourceFileID, f.Name, err)
			continue
		}
		set.Pages = append(set.Pages, pages...)
	}

	if set.IsEmpty() {
		return nil, domain.ErrNoReadablePages
	}

	log.Printf("intakeService.BuildDocumentSet: batch %s: %d files, %d pages loaded",
		batchID, len(files), len(set.Pages))
	return set, nil
}

func (s *intakeService) validate(f *UploadedFile) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Name), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if maxBytes > 0 && int64(len(f.Content)) > maxBytes {
		return domain.ErrFileTooLarge
	}

	// Magic-byte check: extension alone is not trusted.
	head := f.Content
	if len(head) > 512 {
		head = head[:512]
	}
	if _, ok := domain.AllowedContentTypes[http.DetectContentType(head)]; !ok {
		return domain.ErrUnsupportedFileType
	}
	return nil
}
