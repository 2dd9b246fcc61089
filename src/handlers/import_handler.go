// backend/src/handlers/import_handler.go
package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/username/propledger/backend/src/logger"
	"github.com/username/propledger/backend/src/parsers/accounting"
	"github.com/username/propledger/backend/src/security/validation"
	"github.com/username/propledger/backend/src/services"
	"github.com/username/propledger/backend/src/utils"
)

const defaultMaxUploadSize = 10 << 20

type ImportHandler struct {
	service       services.AccountingService
	maxUploadSize int64
}

func NewImportHandler(service services.AccountingService, maxUploadSize int64) *ImportHandler {
	if maxUploadSize <= 0 {
		maxUploadSize = defaultMaxUploadSize
	}
	return &ImportHandler{service: service, maxUploadSize: maxUploadSize}
}

// readUpload validates the multipart request shared by import and preview. On
// failure it has already written the response.
func (h *ImportHandler) readUpload(w http.ResponseWriter, r *http.Request) (multipart.File, services.ImportRequest, bool) {
	log := logger.FromContext(r.Context())
	var req services.ImportRequest

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		log.Warn("Failed to parse multipart form or request too large", "error", err, "limit", h.maxUploadSize)
		utils.SendJSONError(w, fmt.Sprintf("Invalid upload or file too large (max %d MB)", h.maxUploadSize/(1<<20)), http.StatusBadRequest)
		return nil, req, false
	}

	user, companyID, ok := companyScope(w, r)
	if !ok {
		return nil, req, false
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		log.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return nil, req, false
	}

	fail := func(msg string, status int) (multipart.File, services.ImportRequest, bool) {
		file.Close()
		utils.SendJSONError(w, msg, status)
		return nil, req, false
	}

	if fileHeader.Size > h.maxUploadSize {
		log.Warn("Uploaded file too large", "fileSize", fileHeader.Size, "limit", h.maxUploadSize)
		return fail(fmt.Sprintf("File too large (max %d MB)", h.maxUploadSize/(1<<20)), http.StatusBadRequest)
	}
	filename := filepath.Base(fileHeader.Filename)
	ext, err := validation.ValidateFileExtension(filename)
	if err != nil {
		return fail(err.Error(), http.StatusBadRequest)
	}
	if err := validation.ValidateClientContentType(fileHeader.Header.Get("Content-Type")); err != nil {
		return fail(err.Error(), http.StatusBadRequest)
	}
	if err := validation.ValidateFileContent(file, ext); err != nil {
		log.Warn("Server-side file content validation failed", "filename", filename, "error", err)
		return fail(err.Error(), http.StatusBadRequest)
	}

	tipo, err := validation.ValidateTransactionType(r.FormValue("tipo"))
	if err != nil {
		return fail(err.Error(), http.StatusBadRequest)
	}
	sheetName := strings.TrimSpace(r.FormValue("sheetName"))
	if err := validation.ValidateStringMaxLength(sheetName, validation.DefaultMaxStringLength, "sheetName"); err != nil {
		return fail(err.Error(), http.StatusBadRequest)
	}

	req = services.ImportRequest{
		CompanyID:    companyID,
		UserID:       user.ID,
		Filename:     filename,
		FileSize:     fileHeader.Size,
		SheetName:    sheetName,
		OverrideType: tipo,
	}
	return file, req, true
}

// writeImportError maps pipeline failures onto HTTP statuses.
func writeImportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accounting.ErrUnsupportedFile),
		errors.Is(err, accounting.ErrEmptyFile),
		errors.Is(err, accounting.ErrSheetNotFound):
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrPersistFailed):
		utils.SendJSONError(w, err.Error(), http.StatusInternalServerError)
	default:
		utils.SendJSONError(w, "Failed to process import: "+err.Error(), http.StatusInternalServerError)
	}
}

func (h *ImportHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	file, req, ok := h.readUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.service.Import(r.Context(), file, req)
	if err != nil {
		if errors.Is(err, services.ErrNoRowsParsed) && result != nil {
			utils.SendJSONErrorWithDetails(w, "No se pudo importar ninguna fila del archivo", result.Errors, http.StatusBadRequest)
			return
		}
		logger.FromContext(r.Context()).Error("Import failed", "companyID", req.CompanyID, "filename", req.Filename, "error", err)
		writeImportError(w, err)
		return
	}

	utils.SendJSON(w, result, http.StatusOK)
}

func (h *ImportHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	file, req, ok := h.readUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	preview, err := h.service.Preview(r.Context(), file, req)
	if err != nil {
		logger.FromContext(r.Context()).Warn("Import preview failed", "companyID", req.CompanyID, "filename", req.Filename, "error", err)
		writeImportError(w, err)
		return
	}
	utils.SendJSON(w, preview, http.StatusOK)
}

func (h *ImportHandler) HandleListImports(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := companyScope(w, r)
	if !ok {
		return
	}
	batches, err := h.service.ListImports(companyID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list imports", "companyID", companyID, "error", err)
		utils.SendJSONError(w, "Failed to list imports", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, batches, http.StatusOK)
}

func (h *ImportHandler) HandleRollbackImport(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := companyScope(w, r)
	if !ok {
		return
	}
	batchID := chi.URLParam(r, "id")
	if strings.TrimSpace(batchID) == "" {
		utils.SendJSONError(w, "import id is required", http.StatusBadRequest)
		return
	}

	removed, err := h.service.RollbackImport(r.Context(), companyID, batchID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.SendJSONError(w, "Import not found", http.StatusNotFound)
			return
		}
		logger.FromContext(r.Context()).Error("Failed to roll back import", "importID", batchID, "error", err)
		utils.SendJSONError(w, "Failed to roll back import", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, map[string]interface{}{"importId": batchID, "deleted": removed}, http.StatusOK)
}
