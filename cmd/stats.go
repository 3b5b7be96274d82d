package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print face database statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	b, err := initBackends(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	count, err := b.faces.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count faces: %w", err)
	}

	fmt.Printf("Registered faces: %d\n", count)
	fmt.Printf("Embedding model:  %s (dim %d)\n", b.embedder.Model(), b.cfg.Embedding.Dim)
	return nil
}
