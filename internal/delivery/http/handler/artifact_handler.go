package handler

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	artifactService "adsbuilder/internal/application/artifact"
	domain "adsbuilder/internal/domain/artifact"
)

type ArtifactHandler struct {
	service artifactService.Service
	logger  *zap.Logger
}

func NewArtifactHandler(service artifactService.Service, logger *zap.Logger) *ArtifactHandler {
	return &ArtifactHandler{
		service: service,
		logger:  logger,
	}
}

// List handles GET /api/artifacts
func (h *ArtifactHandler) List(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	files, err := h.service.List(u.ID)
	if err != nil {
		h.sendArtifactError(w, err)
		return
	}
	SendSuccess(w, "", files)
}

// Stats handles GET /api/artifacts/stats
func (h *ArtifactHandler) Stats(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	stats, err := h.service.GetStats(u.ID)
	if err != nil {
		h.sendArtifactError(w, err)
		return
	}
	SendSuccess(w, "", stats)
}

// Download handles GET /api/artifacts/download/*
func (h *ArtifactHandler) Download(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	fullPath, err := h.service.GetFileForDownload(u.ID, chi.URLParam(r, "*"))
	if err != nil {
		h.sendArtifactError(w, err)
		return
	}

	filename := filepath.Base(fullPath)
	w.Header().Set("Content-Type", contentType(filename))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	http.ServeFile(w, r, fullPath)
}

// Delete handles DELETE /api/artifacts/*
func (h *ArtifactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u := GetUserFromContext(r.Context())
	if err := h.service.Delete(u.ID, chi.URLParam(r, "*")); err != nil {
		h.sendArtifactError(w, err)
		return
	}
	SendSuccess(w, "Deleted successfully", nil)
}

func (h *ArtifactHandler) sendArtifactError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		SendError(w, "File not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrIsDirectory):
		SendError(w, "Cannot download directory", http.StatusBadRequest)
	case errors.Is(err, domain.ErrInvalidPath):
		SendError(w, "Invalid path", http.StatusBadRequest)
	case errors.Is(err, domain.ErrRootDeletion):
		SendError(w, "Cannot delete root directory", http.StatusForbidden)
	default:
		h.logger.Error("artifact request failed", zap.Error(err))
		SendError(w, "Failed to access artifacts", http.StatusInternalServerError)
	}
}

// contentType returns the MIME type of a published file
func contentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return "application/json"
	case ".csv":
		return "text/csv; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
