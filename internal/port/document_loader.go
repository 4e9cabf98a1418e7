package port

import "claimdesk/internal/domain"

// DocumentLoader extracts the per-page text of one uploaded file. The
// returned pages are ordered by page number and carry the given source file
// id. A file that cannot be read returns an error and is excluded from the
// document set by the caller.
type DocumentLoader interface {
	LoadPages(sourceFileID string, raw []byte) ([]domain.Page, error)
}
