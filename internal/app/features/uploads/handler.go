// Package uploads provides the admin upload endpoint. An uploaded image
// is written to blob storage and run through the derived-image pipeline;
// the caller receives the resulting asset to embed in whatever entity it
// illustrates.
package uploads

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tranchon2702/saigon3-cms/internal/app/system/imaging"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/jsonutil"
	"github.com/tranchon2702/saigon3-cms/internal/domain/models"
)

const maxUploadSize = 32 << 20 // 32MB

// Handler handles image uploads.
type Handler struct {
	blobs    storage.Store
	pipeline *imaging.Pipeline
	logger   *zap.Logger
}

// NewHandler creates a new uploads Handler.
func NewHandler(blobs storage.Store, pipeline *imaging.Pipeline, logger *zap.Logger) *Handler {
	return &Handler{blobs: blobs, pipeline: pipeline, logger: logger}
}

// Upload handles POST /. Multipart form with a "file" part. The original
// is stored under uploads/YYYY/MM/ and the derived variants next to it;
// the response is the asset JSON.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonutil.BadRequest(w, "file too large (max 32MB)")
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		jsonutil.BadRequest(w, "missing file")
		return
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		h.logger.Error("upload read failed", zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "failed to read upload")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	now := time.Now().UTC()
	sourcePath := fmt.Sprintf("uploads/%04d/%02d/%s%s", now.Year(), int(now.Month()), uuid.New().String()[:8], ext)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	opts := &storage.PutOptions{ContentType: contentType}
	if err := h.blobs.Put(ctx, sourcePath, bytes.NewReader(data), opts); err != nil {
		h.logger.Error("upload store failed",
			zap.String("source", sourcePath),
			zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	asset := h.pipeline.Process(ctx, sourcePath, data)
	jsonutil.Created(w, asset)
}

// Delete handles POST /delete. Body is the asset to remove; the original
// and every derived variant are deleted from storage.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var asset models.ImageAsset
	if err := jsonutil.Decode(r, &asset); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if asset.IsZero() {
		jsonutil.BadRequest(w, "missing asset")
		return
	}
	h.pipeline.DeleteVariants(r.Context(), asset)
	if err := h.blobs.Delete(r.Context(), asset.SourcePath); err != nil {
		h.logger.Warn("original delete failed",
			zap.String("source", asset.SourcePath),
			zap.Error(err))
	}
	jsonutil.NoContent(w)
}
