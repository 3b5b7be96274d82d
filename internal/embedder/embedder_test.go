package embedder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestComputeEmbedding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embed/face" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			http.Error(w, "bad multipart", http.StatusBadRequest)
			return
		}
		if _, _, err := r.FormFile("file"); err != nil {
			http.Error(w, "missing file part", http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"dim":       4,
			"embedding": []float32{0.1, 0.2, 0.3, 0.4},
			"model":     "facenet",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "facenet")

	embedding, err := client.ComputeEmbedding(context.Background(), []byte("fake image data"))
	if err != nil {
		t.Fatalf("ComputeEmbedding failed: %v", err)
	}
	if len(embedding) != 4 {
		t.Errorf("expected 4 values, got %d", len(embedding))
	}
}

func TestComputeEmbeddingNoFace(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"dim": 0, "embedding": []float32{}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	if _, err := client.ComputeEmbedding(context.Background(), []byte("x")); err == nil {
		t.Error("expected error for empty embedding")
	}
}

func TestComputeEmbeddingServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	if _, err := client.ComputeEmbedding(context.Background(), []byte("x")); err == nil {
		t.Error("expected error for non-200 response")
	}
}
