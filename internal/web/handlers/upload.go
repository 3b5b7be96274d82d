package handlers

import (
	"net/http"

	"github.com/kozaktomas/face-vault/internal/constants"
	"github.com/kozaktomas/face-vault/internal/pipeline"
)

// UploadHandler handles image ingest endpoints.
type UploadHandler struct {
	pipeline *pipeline.Pipeline
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(p *pipeline.Pipeline) *UploadHandler {
	return &UploadHandler{pipeline: p}
}

// parseUploadForm extracts the items, optional watermark, and target folder
// from a multipart request. field names the file input ("file" or "files").
func (h *UploadHandler) parseUploadForm(r *http.Request, field string) ([]pipeline.Item, []byte, string, error) {
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		return nil, nil, "", err
	}

	var items []pipeline.Item
	for _, header := range r.MultipartForm.File[field] {
		data, err := readFormFile(header)
		if err != nil {
			return nil, nil, "", err
		}
		items = append(items, pipeline.Item{Filename: header.Filename, Data: data})
	}

	var watermark []byte
	if marks := r.MultipartForm.File["watermark_file"]; len(marks) > 0 {
		data, err := readFormFile(marks[0])
		if err != nil {
			return nil, nil, "", err
		}
		watermark = data
	}

	folder := r.FormValue("directory")
	if folder == "" {
		folder = constants.DefaultFolder
	}

	return items, watermark, folder, nil
}

// single processes one uploaded file through the pipeline.
func (h *UploadHandler) single(w http.ResponseWriter, r *http.Request, original bool) {
	items, watermark, folder, err := h.parseUploadForm(r, "file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}
	if len(items) == 0 {
		respondError(w, http.StatusBadRequest, "no file provided")
		return
	}

	result := h.pipeline.ProcessOne(r.Context(), items[0], watermark, folder, original)
	respondJSON(w, http.StatusOK, result)
}

// bulk processes a batch of uploaded files through the worker pool.
func (h *UploadHandler) bulk(w http.ResponseWriter, r *http.Request, original bool) {
	items, watermark, folder, err := h.parseUploadForm(r, "files")
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}
	if len(items) == 0 {
		respondError(w, http.StatusBadRequest, "no files provided")
		return
	}

	batch := h.pipeline.ProcessBatch(r.Context(), items, watermark, folder, original, nil)
	respondJSON(w, http.StatusOK, batch)
}

// Single handles a standard single upload (watermark + compression).
func (h *UploadHandler) Single(w http.ResponseWriter, r *http.Request) {
	h.single(w, r, false)
}

// Bulk handles a standard batch upload (watermark + compression).
func (h *UploadHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, false)
}

// OriginalSingle handles a single upload with no processing.
func (h *UploadHandler) OriginalSingle(w http.ResponseWriter, r *http.Request) {
	h.single(w, r, true)
}

// OriginalBulk handles a batch upload with no processing.
func (h *UploadHandler) OriginalBulk(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, true)
}
