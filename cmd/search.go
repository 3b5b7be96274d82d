package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-vault/internal/constants"
	"github.com/kozaktomas/face-vault/internal/database"
)

var searchCmd = &cobra.Command{
	Use:   "search <image-path>",
	Short: "Find registered faces similar to a query photo",
	Long: `Search registered faces for the person on a query photo.

The photo is sent to the embedding server and its face vector is compared
against every registered face (optionally restricted to one folder). Only
faces with a cosine distance strictly below the threshold are reported,
best match first.

Example:
  face-vault search query.jpg
  face-vault search --directory class-of-2026 --limit 10 query.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().String("directory", "", "Restrict the search to one folder")
	searchCmd.Flags().Int("limit", constants.DefaultSearchLimit, "Maximum number of matches to print")
	searchCmd.Flags().Float64("threshold", constants.DefaultDistanceThreshold, "Cosine distance threshold")
}

func runSearch(cmd *cobra.Command, args []string) error {
	folder := mustGetString(cmd, "directory")
	limit := mustGetInt(cmd, "limit")
	threshold := mustGetFloat64(cmd, "threshold")

	imageData, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot read image %s: %w", args[0], err)
	}

	ctx := context.Background()
	b, err := initBackends(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	query, err := b.embedder.ComputeEmbedding(ctx, imageData)
	if err != nil {
		return fmt.Errorf("face embedding failed: %w", err)
	}

	candidates, err := b.faces.ListByFolder(ctx, folder)
	if err != nil {
		return fmt.Errorf("face search failed: %w", err)
	}

	matches := database.RankMatches(query, candidates, threshold)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	if len(matches) == 0 {
		fmt.Println("No matching faces found.")
		return nil
	}

	fmt.Printf("Found %d match(es):\n", len(matches))
	for i, m := range matches {
		fmt.Printf("%2d. %.4f  %s\n", i+1, m.Score, m.Record.BlobURL)
	}
	return nil
}
