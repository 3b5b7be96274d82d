package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kozaktomas/face-vault/internal/constants"
	"github.com/kozaktomas/face-vault/internal/database"
	"github.com/kozaktomas/face-vault/internal/embedder"
)

// SearchHandler handles similarity search endpoints.
type SearchHandler struct {
	store    database.FaceReader
	embedder embedder.Embedder
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(store database.FaceReader, emb embedder.Embedder) *SearchHandler {
	return &SearchHandler{store: store, embedder: emb}
}

// FaceMatch is one ranked search result.
type FaceMatch struct {
	ImagePath       string  `json:"image_path"`
	BlobURL         string  `json:"blob_url"`
	SimilarityScore float64 `json:"similarity_score"`
}

// SearchResponse is the similarity search result envelope.
type SearchResponse struct {
	TotalMatches   int         `json:"total_matches"`
	Matches        []FaceMatch `json:"matches"`
	ProcessingTime float64     `json:"processing_time"`
}

// Search ranks stored faces against an uploaded query photo. Backend or
// embedder failures return an error status: the caller must be able to tell
// a failed search from one with no matches.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "no file provided")
		return
	}

	data, err := readFormFile(files[0])
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	folder := r.FormValue("directory")

	limit := constants.DefaultSearchLimit
	if v := r.FormValue("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	threshold := constants.DefaultDistanceThreshold
	if v := r.FormValue("threshold"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			threshold = f
		}
	}

	query, err := h.embedder.ComputeEmbedding(r.Context(), data)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "face embedding failed: "+err.Error())
		return
	}

	candidates, err := h.store.ListByFolder(r.Context(), folder)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "face search failed: "+err.Error())
		return
	}

	matches := database.RankMatches(query, candidates, threshold)

	// Truncation happens after ranking, never before.
	if len(matches) > limit {
		matches = matches[:limit]
	}

	response := SearchResponse{
		TotalMatches:   len(matches),
		Matches:        make([]FaceMatch, 0, len(matches)),
		ProcessingTime: time.Since(start).Seconds(),
	}
	for _, m := range matches {
		response.Matches = append(response.Matches, FaceMatch{
			ImagePath:       m.Record.ImagePath,
			BlobURL:         m.Record.BlobURL,
			SimilarityScore: m.Score,
		})
	}

	respondJSON(w, http.StatusOK, response)
}

// Stats reports the size of the face database.
func (h *SearchHandler) Stats(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.Count(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"total_faces": count,
		"status":      "healthy",
	})
}
