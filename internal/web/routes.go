package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/face-vault/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	uploadHandler := handlers.NewUploadHandler(s.pipeline)
	searchHandler := handlers.NewSearchHandler(s.store, s.embedder)
	foldersHandler := handlers.NewFoldersHandler(s.store, s.storage)

	// Health check
	s.router.Get("/health", handlers.HealthCheck)

	// Standard uploads (watermark + compression)
	s.router.Route("/upload", func(r chi.Router) {
		r.Post("/single", uploadHandler.Single)
		r.Post("/bulk", uploadHandler.Bulk)

		// Original quality, no processing
		r.Post("/original/single", uploadHandler.OriginalSingle)
		r.Post("/original/bulk", uploadHandler.OriginalBulk)
	})

	// Similarity search
	s.router.Route("/similarity", func(r chi.Router) {
		r.Post("/search", searchHandler.Search)
		r.Get("/stats", searchHandler.Stats)
	})

	// Folder management
	s.router.Route("/management", func(r chi.Router) {
		r.Post("/list-files", foldersHandler.ListFiles)
		r.Delete("/delete-folder", foldersHandler.DeleteFolder)
	})
}
