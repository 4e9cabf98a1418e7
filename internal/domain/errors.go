package domain

import "errors"

var (
	// ErrEmptyDocumentSet is returned when classification is attempted on a
	// document set with no pages.
	ErrEmptyDocumentSet = errors.New("document set is empty")

	// ErrClassificationFailed covers any failure of the single classification
	// call: generation failure, or a result that is not total over categories.
	// Fatal to the whole request.
	ErrClassificationFailed = errors.New("classification failed")

	// ErrMalformedClassification is returned by the dispatcher when the work
	// list cannot be derived from a classification result. Fatal.
	ErrMalformedClassification = errors.New("malformed classification result")

	ErrNoFiles             = errors.New("no files provided")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrNoReadablePages     = errors.New("no readable pages in any uploaded file")
)
