package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/exellar/payroll-backend-go/internal/domain/document"
	"github.com/exellar/payroll-backend-go/internal/handler/http/response"
)

type DocumentHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Upload(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
}

type documentHandlerImpl struct {
	documentService document.DocumentService
}

func NewDocumentHandler(documentService document.DocumentService) DocumentHandler {
	return &documentHandlerImpl{documentService: documentService}
}

func (h *documentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.documentService.List(r.Context(), document.DocumentFilter{
		Type:       getStringQueryParam(r, "type"),
		Department: getStringQueryParam(r, "department"),
		Status:     getStringQueryParam(r, "status"),
		Search:     getStringQueryParam(r, "search"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *documentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.documentService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Upload accepts multipart/form-data with metadata fields and an optional
// "file" part, or a JSON body for metadata-only documents.
func (h *documentHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	var req document.UploadDocumentRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, document.MaxUploadSize+(1<<20))
		if err := r.ParseMultipartForm(document.MaxUploadSize); err != nil {
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}

		req = document.UploadDocumentRequest{
			Name:        r.FormValue("name"),
			Type:        r.FormValue("type"),
			Employee:    r.FormValue("employee"),
			Department:  r.FormValue("department"),
			Description: r.FormValue("description"),
			Status:      r.FormValue("status"),
		}

		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			req.File = file
			req.FileName = header.Filename
			req.FileSize = header.Size
			req.ContentType = header.Header.Get("Content-Type")
		} else if err != http.ErrMissingFile {
			response.BadRequest(w, "Failed to read uploaded file", nil)
			return
		}
	} else {
		var body struct {
			Name        string `json:"name"`
			Type        string `json:"type"`
			Employee    string `json:"employee"`
			Department  string `json:"department"`
			Description string `json:"description"`
			Status      string `json:"status"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		req = document.UploadDocumentRequest{
			Name:        body.Name,
			Type:        body.Type,
			Employee:    body.Employee,
			Department:  body.Department,
			Description: body.Description,
			Status:      body.Status,
		}
	}

	result, err := h.documentService.Upload(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Document uploaded", result)
}

func (h *documentHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req document.UpdateDocumentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.documentService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document updated", result)
}

func (h *documentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.documentService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document deleted", nil)
}

func (h *documentHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	rc, doc, err := h.documentService.Download(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	filename := doc.Name + path.Ext(doc.FilePath)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if doc.SizeBytes > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(doc.SizeBytes, 10))
	}
	if _, err := io.Copy(w, rc); err != nil {
		slog.Error("failed to stream document", "document_id", id, "error", err)
	}
}
