package handlers

import (
	"net/http"
	"time"

	"github.com/kozaktomas/face-vault/internal/database"
	"github.com/kozaktomas/face-vault/internal/pipeline"
	"github.com/kozaktomas/face-vault/internal/storage"
)

// FoldersHandler handles folder management endpoints.
type FoldersHandler struct {
	store    database.FaceWriter
	deletion *pipeline.FolderDeletion
}

// NewFoldersHandler creates a new folders handler.
func NewFoldersHandler(store database.FaceWriter, blobs storage.BlobStorage) *FoldersHandler {
	return &FoldersHandler{
		store:    store,
		deletion: pipeline.NewFolderDeletion(store, blobs),
	}
}

// FolderFile describes one stored face inside a folder listing.
type FolderFile struct {
	Filename  string    `json:"filename"`
	BlobURL   string    `json:"blob_url"`
	CreatedAt time.Time `json:"created_at"`
}

// ListFiles lists all faces registered under a folder.
func (h *FoldersHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	folder := r.FormValue("directory")
	if folder == "" {
		respondError(w, http.StatusBadRequest, "directory is required")
		return
	}

	records, err := h.store.ListByFolder(r.Context(), folder)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list files: "+err.Error())
		return
	}

	files := make([]FolderFile, 0, len(records))
	for _, rec := range records {
		files = append(files, FolderFile{
			Filename:  rec.ImagePath,
			BlobURL:   rec.BlobURL,
			CreatedAt: rec.CreatedAt,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"directory":   folder,
		"total_files": len(files),
		"files":       files,
	})
}

// DeleteFolder removes all faces under a folder, database records first and
// blobs after. A partial failure surfaces as an error so the caller knows
// blob cleanup may be incomplete.
func (h *FoldersHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	folder := r.FormValue("directory")
	if folder == "" {
		respondError(w, http.StatusBadRequest, "directory is required")
		return
	}

	result, err := h.deletion.Delete(r.Context(), folder)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete folder: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":             "ok",
		"message":            "folder deleted",
		"directory":          folder,
		"db_records_removed": result.RecordsRemoved,
		"blobs_deleted":      result.BlobsDeleted,
	})
}
