package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	buildService "adsbuilder/internal/application/build"
	domain "adsbuilder/internal/domain/build"
)

type BuildHandler struct {
	service     buildService.Service
	maxBodySize int64
	logger      *zap.Logger
}

func NewBuildHandler(service buildService.Service, maxBodySize int64, logger *zap.Logger) *BuildHandler {
	return &BuildHandler{
		service:     service,
		maxBodySize: maxBodySize,
		logger:      logger,
	}
}

// List handles GET /api/builds
func (h *BuildHandler) List(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	summaries, err := h.service.List(r.Context(), u.ID)
	if err != nil {
		h.sendBuildError(w, err)
		return
	}
	SendSuccess(w, "", summaries)
}

// Create handles POST /api/builds
func (h *BuildHandler) Create(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	rec, err := h.service.Create(r.Context(), u.ID, nil)
	if err != nil {
		h.sendBuildError(w, err)
		return
	}
	SendCreated(w, "Build created", rec)
}

// Import handles POST /api/builds/import. The document is either the raw
// request body or a multipart upload in the "file" field.
func (h *BuildHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, ok := h.readDocument(w, r)
	if !ok {
		return
	}

	u := GetUserFromContext(r.Context())
	rec, err := h.service.Import(r.Context(), u.ID, data)
	if err != nil {
		h.sendBuildError(w, err)
		return
	}
	SendCreated(w, "Build imported", rec)
}

// Get handles GET /api/builds/{id}
func (h *BuildHandler) Get(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	rec, err := h.service.Get(r.Context(), u.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.sendBuildError(w, err)
		return
	}
	SendSuccess(w, "", rec)
}

// Replace handles PUT /api/builds/{id}
func (h *BuildHandler) Replace(w http.ResponseWriter, r *http.Request) {
	data, ok := h.readDocument(w, r)
	if !ok {
		return
	}

	u := GetUserFromContext(r.Context())
	rec, err := h.service.Replace(r.Context(), u.ID, chi.URLParam(r, "id"), data)
	if err != nil {
		h.sendBuildError(w, err)
		return
	}
	SendSuccess(w, "Build loaded", rec)
}

// Delete handles DELETE /api/builds/{id}
func (h *BuildHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	if err := h.service.Delete(r.Context(), u.ID, chi.URLParam(r, "id")); err != nil {
		h.sendBuildError(w, err)
		return
	}
	SendSuccess(w, "Build deleted", nil)
}

// DownloadJSON handles GET /api/builds/{id}/json
func (h *BuildHandler) DownloadJSON(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	name, data, err := h.service.SaveJSON(r.Context(), u.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.sendBuildError(w, err)
		return
	}
	SendAttachment(w, name, "application/json", data)
}

// DownloadCSV handles GET /api/builds/{id}/csv
func (h *BuildHandler) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	name, data, err := h.service.ExportCSV(r.Context(), u.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.sendBuildError(w, err)
		return
	}
	SendAttachment(w, name, "text/csv; charset=utf-8", data)
}

// Publish handles POST /api/builds/{id}/publish
func (h *BuildHandler) Publish(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	res, err := h.service.Publish(r.Context(), u.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.sendBuildError(w, err)
		return
	}
	SendSuccess(w, "Build published", res)
}

// Edit handles POST /api/builds/{id}/edit with an EditOp body
func (h *BuildHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var op buildService.EditOp
	if err := json.NewDecoder(io.LimitReader(r.Body, h.maxBodySize)).Decode(&op); err != nil {
		SendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.applyEdit(w, r, op)
}

// EditRoute returns a handler applying action, with indices and extension
// kind taken from the route parameters ci, ai, kind and item.
func (h *BuildHandler) EditRoute(action buildService.EditAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		op := buildService.EditOp{Action: action}

		var err error
		if op.Campaign, err = indexParam(r, "ci"); err != nil {
			SendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if op.AdGroup, err = indexParam(r, "ai"); err != nil {
			SendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if op.Item, err = indexParam(r, "item"); err != nil {
			SendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if kind := chi.URLParam(r, "kind"); kind != "" {
			if op.Kind, err = domain.ParseExtensionKind(kind); err != nil {
				SendError(w, "Unknown extension type", http.StatusBadRequest)
				return
			}
		}

		h.applyEdit(w, r, op)
	}
}

func (h *BuildHandler) applyEdit(w http.ResponseWriter, r *http.Request, op buildService.EditOp) {
	u := GetUserFromContext(r.Context())
	rec, err := h.service.Edit(r.Context(), u.ID, chi.URLParam(r, "id"), op)
	if err != nil {
		h.sendBuildError(w, err)
		return
	}
	SendSuccess(w, "", rec)
}

// readDocument reads a build document from a multipart "file" field or
// from the raw request body
func (h *BuildHandler) readDocument(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(h.maxBodySize); err != nil {
			SendError(w, "Failed to parse form", http.StatusBadRequest)
			return nil, false
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			SendError(w, "No file provided", http.StatusBadRequest)
			return nil, false
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			SendError(w, "Failed to read file", http.StatusBadRequest)
			return nil, false
		}
		return data, true
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			SendError(w, "Build file is too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		SendError(w, "Failed to read request body", http.StatusBadRequest)
		return nil, false
	}
	return data, true
}

// sendBuildError maps build errors to HTTP status codes
func (h *BuildHandler) sendBuildError(w http.ResponseWriter, err error) {
	var parseErr *domain.ParseError
	switch {
	case errors.As(err, &parseErr):
		SendError(w, parseErr.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrStructuralLimit), errors.Is(err, domain.ErrMinimumCardinality):
		SendError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrNotFound):
		SendError(w, "Build not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrItemNotFound):
		SendError(w, "Item not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrUnknownExtension):
		SendError(w, "Unknown extension type", http.StatusBadRequest)
	case errors.Is(err, buildService.ErrUnknownAction):
		SendError(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("build request failed", zap.Error(err))
		SendError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func indexParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, nil
	}
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("invalid %s index %q", name, raw)
	}
	return i, nil
}
