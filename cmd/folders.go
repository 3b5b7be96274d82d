package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-vault/internal/pipeline"
)

var listFilesCmd = &cobra.Command{
	Use:   "list <folder>",
	Short: "List registered faces in a folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runListFiles,
}

var deleteFolderCmd = &cobra.Command{
	Use:   "delete-folder <folder>",
	Short: "Delete all faces in a folder",
	Long: `Delete every registered face in a folder.

Database records are removed first, then the blobs behind them. If blob
cleanup fails the records are already gone and the command reports how
far it got.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeleteFolder,
}

func init() {
	rootCmd.AddCommand(listFilesCmd)
	rootCmd.AddCommand(deleteFolderCmd)
}

func runListFiles(cmd *cobra.Command, args []string) error {
	folder := args[0]

	ctx := context.Background()
	b, err := initBackends(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	records, err := b.faces.ListByFolder(ctx, folder)
	if err != nil {
		return fmt.Errorf("failed to list folder %q: %w", folder, err)
	}

	if len(records) == 0 {
		fmt.Printf("No faces registered in folder %q.\n", folder)
		return nil
	}

	fmt.Printf("Folder %q contains %d face(s):\n", folder, len(records))
	for _, rec := range records {
		fmt.Printf("  %s  %s\n", rec.CreatedAt.Format("2006-01-02 15:04"), rec.BlobURL)
	}
	return nil
}

func runDeleteFolder(cmd *cobra.Command, args []string) error {
	folder := args[0]

	ctx := context.Background()
	b, err := initBackends(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	deletion := pipeline.NewFolderDeletion(b.faces, b.storage)
	result, err := deletion.Delete(ctx, folder)
	if err != nil {
		return fmt.Errorf("failed to delete folder %q (removed %d record(s), %d blob(s)): %w",
			folder, result.RecordsRemoved, result.BlobsDeleted, err)
	}

	fmt.Printf("Deleted folder %q: %d record(s), %d blob(s)\n",
		folder, result.RecordsRemoved, result.BlobsDeleted)
	return nil
}
