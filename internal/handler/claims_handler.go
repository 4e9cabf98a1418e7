package handler

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"claimdesk/internal/domain"
	"claimdesk/internal/export"
	"claimdesk/internal/service"
)

// ClaimsHandler handles claim generation and export endpoints.
type ClaimsHandler struct {
	claimService service.ClaimService
}

// NewClaimsHandler creates a new ClaimsHandler.
func NewClaimsHandler(claimService service.ClaimService) *ClaimsHandler {
	return &ClaimsHandler{claimService: claimService}
}

// readUploads drains every part of the "files" multipart field into memory.
// Returns false if the form is missing or a part cannot be read (error
// response already written).
func readUploads(c *gin.Context) ([]service.UploadedFile, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "multipart form is required")
		return nil, false
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "NO_FILES", "at least one file is required in the 'files' field")
		return nil, false
	}

	files := make([]service.UploadedFile, 0, len(headers))
	for _, header := range headers {
		content, err := readPart(header)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST",
				fmt.Sprintf("reading uploaded file %q failed", header.Filename))
			return nil, false
		}
		files = append(files, service.UploadedFile{
			Name:    header.Filename,
			Content: content,
		})
	}
	return files, true
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// Generate handles POST /api/v1/claims/generate
// Runs the two-stage pipeline: classify the uploaded documents, then extract
// structured data for every category found present.
func (h *ClaimsHandler) Generate(c *gin.Context) {
	files, ok := readUploads(c)
	if !ok {
		return
	}

	result, err := h.claimService.GenerateClaim(c.Request.Context(), files)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// GenerateFast handles POST /api/v1/claims/generate-fast
// Runs classification and extraction in a single generation call.
func (h *ClaimsHandler) GenerateFast(c *gin.Context) {
	files, ok := readUploads(c)
	if !ok {
		return
	}

	result, err := h.claimService.GenerateFastClaim(c.Request.Context(), files)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// exportRequest is the body for report export: a previously generated claim
// result plus the desired format.
type exportRequest struct {
	Format string             `json:"format"`
	Result domain.ClaimResult `json:"result"`
}

// ExportReport handles POST /api/v1/claims/report/export
// Flattens a claim result into a downloadable CSV or XLSX file.
func (h *ClaimsHandler) ExportReport(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid export request body")
		return
	}
	if req.Format == "" {
		req.Format = "csv"
	}
	if err := req.Result.Classification.Validate(); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	stamp := time.Now().Format("20060102-150405")

	switch req.Format {
	case "csv":
		var buf bytes.Buffer
		buf.Write(export.BOM)
		w := export.NewWriter(&buf)
		if err := w.WriteHeader(); err != nil {
			HandleError(c, err)
			return
		}
		if err := w.WriteResult(&req.Result); err != nil {
			HandleError(c, err)
			return
		}
		if err := w.Flush(); err != nil {
			HandleError(c, err)
			return
		}
		filename := fmt.Sprintf("claim-report-%s.csv", stamp)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())

	case "xlsx":
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, &req.Result); err != nil {
			HandleError(c, err)
			return
		}
		filename := fmt.Sprintf("claim-report-%s.xlsx", stamp)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())

	default:
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "format must be one of: csv, xlsx")
	}
}
