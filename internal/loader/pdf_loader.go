package loader

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"

	"claimdesk/internal/domain"
	"claimdesk/internal/port"
)

// PDFLoader extracts per-page plain text from PDF bytes.
type PDFLoader struct{}

// NewPDFLoader creates a PDF-backed DocumentLoader.
func NewPDFLoader() port.DocumentLoader {
	return &PDFLoader{}
}

// LoadPages reads every page of the PDF and returns one Page per PDF page,
// in page order, tagged with sourceFileID. Pages with no extractable text
// are kept (empty text) so page numbering stays aligned with the document;
// a file that cannot be opened at all returns an error.
func (l *PDFLoader) LoadPages(sourceFileID string, raw []byte) ([]domain.Page, error) {
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", sourceFileID, err)
	}

	total := reader.NumPage()
	if total == 0 {
		return nil, fmt.Errorf("pdf %s has no pages", sourceFileID)
	}

	pages := make([]domain.Page, 0, total)
	for i := 1; i <= total; i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			pages = append(pages, domain.Page{SourceFileID: sourceFileID, PageNumber: i})
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not disqualify the file.
			log.Printf("pdfLoader.LoadPages: page %d of %s unreadable: %v", i, sourceFileID, err)
			text = ""
		}
		pages = append(pages, domain.Page{
			SourceFileID: sourceFileID,
			PageNumber:   i,
			Text:         strings.TrimSpace(text),
		})
	}
	return pages, nil
}
