package domain

// Category is one of the fixed set of document kinds recognized in a claim.
type Category string

const (
	CategoryBill             Category = "BILL"
	CategoryDischargeSummary Category = "DISCHARGE_SUMMARY"
	CategoryIDCard           Category = "ID_CARD"
	CategoryPharmacyBill     Category = "PHARMACY_BILL"
	CategoryClaimForm        Category = "CLAIM_FORM"
)

// Categories returns all known categories in their canonical enumeration
// order. Extraction reports are always assembled in this order.
func Categories() []Category {
	return []Category{
		CategoryBill,
		CategoryDischargeSummary,
		CategoryIDCard,
		CategoryPharmacyBill,
		CategoryClaimForm,
	}
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryBill, CategoryDischargeSummary, CategoryIDCard,
		CategoryPharmacyBill, CategoryClaimForm:
		return true
	}
	return false
}

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
)

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf": FileTypePDF,
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
}

// ExtractionStatus is the terminal state of one extraction task.
type ExtractionStatus string

const (
	ExtractionSuccess ExtractionStatus = "success"
	ExtractionFailed  ExtractionStatus = "failed"
)
