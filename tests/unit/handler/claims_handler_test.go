package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"claimdesk/internal/domain"
	"claimdesk/internal/handler"
	"claimdesk/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupClaimsRouter(claimSvc *mocks.MockClaimService) *gin.Engine {
	h := handler.NewClaimsHandler(claimSvc)
	r := gin.New()
	r.POST("/api/v1/claims/generate", h.Generate)
	r.POST("/api/v1/claims/generate-fast", h.GenerateFast)
	r.POST("/api/v1/claims/report/export", h.ExportReport)
	return r
}

// multipartBody builds a multipart request body with one part per file in
// the "files" field.
func multipartBody(t *testing.T, names ...string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, name := range names {
		part, err := writer.CreateFormFile("files", name)
		assert.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 test content"))
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func totalClassification(present ...domain.Category) domain.ClassificationResult {
	result := make(domain.ClassificationResult)
	for _, cat := range domain.Categories() {
		result[cat] = domain.ClassificationVerdict{Present: false, Rationale: "not found"}
	}
	for _, cat := range present {
		result[cat] = domain.ClassificationVerdict{
			Present:      true,
			SourceFileID: "doc_1.pdf",
			Confidence:   0.9,
			Rationale:    "found",
		}
	}
	return result
}

func TestClaimsHandler_Generate_Success(t *testing.T) {
	claimSvc := new(mocks.MockClaimService)
	router := setupClaimsRouter(claimSvc)

	result := &domain.ClaimResult{
		Classification: totalClassification(domain.CategoryBill),
		Extraction: domain.NewExtractionReport([]domain.ExtractionOutcome{
			{
				SourceFileID: "doc_1.pdf",
				Category:     domain.CategoryBill,
				Status:       domain.ExtractionSuccess,
				Payload:      json.RawMessage(`{"hospital_name":"City Care"}`),
			},
		}),
	}
	claimSvc.On("GenerateClaim", mock.Anything, mock.Anything).Return(result, nil)

	body, contentType := multipartBody(t, "bill.pdf")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/generate", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	extraction := data["extraction"].(map[string]any)
	assert.Equal(t, float64(1), extraction["total_attempted"])
	assert.Equal(t, float64(1), extraction["succeeded"])
}

func TestClaimsHandler_Generate_NoFiles(t *testing.T) {
	claimSvc := new(mocks.MockClaimService)
	router := setupClaimsRouter(claimSvc)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	assert.NoError(t, writer.WriteField("note", "no files here"))
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/generate", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "NO_FILES")
	claimSvc.AssertNotCalled(t, "GenerateClaim", mock.Anything, mock.Anything)
}

func TestClaimsHandler_Generate_ClassificationFailure(t *testing.T) {
	claimSvc := new(mocks.MockClaimService)
	router := setupClaimsRouter(claimSvc)

	claimSvc.On("GenerateClaim", mock.Anything, mock.Anything).
		Return(nil, domain.ErrClassificationFailed)

	body, contentType := multipartBody(t, "bill.pdf")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/generate", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "CLASSIFICATION_FAILED")
}

func TestClaimsHandler_Generate_UnsupportedFileType(t *testing.T) {
	claimSvc := new(mocks.MockClaimService)
	router := setupClaimsRouter(claimSvc)

	claimSvc.On("GenerateClaim", mock.Anything, mock.Anything).
		Return(nil, domain.ErrUnsupportedFileType)

	body, contentType := multipartBody(t, "notes.txt")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/generate", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_FILE_TYPE")
}

func TestClaimsHandler_GenerateFast_Success(t *testing.T) {
	claimSvc := new(mocks.MockClaimService)
	router := setupClaimsRouter(claimSvc)

	result := &domain.FusedClaimResult{
		Classification: totalClassification(domain.CategoryBill),
		Extractions: map[domain.Category]json.RawMessage{
			domain.CategoryBill: json.RawMessage(`{"hospital_name":"City Care"}`),
		},
	}
	claimSvc.On("GenerateFastClaim", mock.Anything, mock.Anything).Return(result, nil)

	body, contentType := multipartBody(t, "bill.pdf")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/generate-fast", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	claimSvc.AssertCalled(t, "GenerateFastClaim", mock.Anything, mock.Anything)
	claimSvc.AssertNotCalled(t, "GenerateClaim", mock.Anything, mock.Anything)
}

func exportBody(t *testing.T, format string) *bytes.Buffer {
	t.Helper()
	payload := map[string]any{
		"format": format,
		"result": domain.ClaimResult{
			Classification: totalClassification(domain.CategoryBill),
			Extraction: domain.NewExtractionReport([]domain.ExtractionOutcome{
				{
					SourceFileID: "doc_1.pdf",
					Category:     domain.CategoryBill,
					Status:       domain.ExtractionSuccess,
					Payload:      json.RawMessage(`{"total_amount": 1250.5}`),
				},
			}),
		},
	}
	raw, err := json.Marshal(payload)
	assert.NoError(t, err)
	return bytes.NewBuffer(raw)
}

func TestClaimsHandler_ExportReport_CSV(t *testing.T) {
	router := setupClaimsRouter(new(mocks.MockClaimService))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/report/export", exportBody(t, "csv"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "Category")
	assert.Contains(t, w.Body.String(), "BILL")
}

func TestClaimsHandler_ExportReport_XLSX(t *testing.T) {
	router := setupClaimsRouter(new(mocks.MockClaimService))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/report/export", exportBody(t, "xlsx"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestClaimsHandler_ExportReport_UnknownFormat(t *testing.T) {
	router := setupClaimsRouter(new(mocks.MockClaimService))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/report/export", exportBody(t, "pdf"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClaimsHandler_ExportReport_IncompleteClassification(t *testing.T) {
	router := setupClaimsRouter(new(mocks.MockClaimService))

	payload := `{"format": "csv", "result": {"classification": {"BILL": {"present": false}}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/report/export", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
