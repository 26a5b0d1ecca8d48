package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/vitraworks/vitra/internal/domain"
	"github.com/vitraworks/vitra/internal/storage"
	"github.com/vitraworks/vitra/internal/telemetry"
)

// Pattern files are sketches and photos; anything else is rejected up front.
var allowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// AttachmentHandler stores uploaded pattern files and payment receipts.
type AttachmentHandler struct {
	storage storage.Storage
	metrics *telemetry.BusinessMetrics
}

// NewAttachmentHandler creates a new attachment handler.
func NewAttachmentHandler(store storage.Storage, metrics *telemetry.BusinessMetrics) *AttachmentHandler {
	return &AttachmentHandler{storage: store, metrics: metrics}
}

// Upload handles POST /api/uploads. The multipart field name is "file";
// the response is the attachment record to embed in a line item pattern
// or payment receipt.
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		Error(w, r, domain.Errorf(domain.EINVALID, "", "Multipart field 'file' is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		Error(w, r, domain.Errorf(domain.EINVALID, "", "Unsupported file type %q", contentType))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := fmt.Sprintf("patterns/%s%s", uuid.New().String(), ext)

	url, err := h.storage.Put(r.Context(), key, file, contentType)
	if err != nil {
		Error(w, r, err)
		return
	}

	h.metrics.PatternUploads.WithLabelValues(contentType).Inc()

	RespondJSON(w, http.StatusCreated, domain.Attachment{
		FilePath:     url,
		OriginalName: header.Filename,
		MimeType:     contentType,
		Size:         header.Size,
	})
}
