package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-vault/internal/constants"
	"github.com/kozaktomas/face-vault/internal/pipeline"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <folder-path> [folder-path...]",
	Short: "Upload face photos from local folders",
	Long: `Upload face photos from one or more local folders.

Each photo is watermarked (when --watermark is given), compressed, stored
in blob storage, and registered for similarity search. Photos where no
face is detected keep their blob but are not registered.

By default, only files in the specified folders are uploaded (non-recursive).
Use -r to search recursively in subdirectories.
Supported formats: jpg, jpeg, png, bmp

Example:
  face-vault upload /path/to/photos
  face-vault upload --directory class-of-2026 /path/to/folder1 /path/to/folder2
  face-vault upload -r --watermark logo.png /path/to/photos`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().BoolP("recursive", "r", false, "Search for photos recursively in subdirectories")
	uploadCmd.Flags().Bool("original", false, "Store original bytes, skip watermark and compression")
	uploadCmd.Flags().String("directory", constants.DefaultFolder, "Target folder in blob storage")
	uploadCmd.Flags().String("watermark", "", "Path to a watermark image to composit onto each photo")
	uploadCmd.Flags().Int("concurrency", constants.UploadConcurrency, "Number of concurrent upload workers")
}

// isImageFile checks if a file has a supported image extension
func isImageFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range constants.AllowedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// collectImagePaths gathers image files from the given folders.
func collectImagePaths(folderPaths []string, recursive bool) ([]string, error) {
	var filePaths []string
	for _, folderPath := range folderPaths {
		info, err := os.Stat(folderPath)
		if err != nil {
			return nil, fmt.Errorf("cannot access folder %s: %w", folderPath, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", folderPath)
		}

		if recursive {
			err := filepath.WalkDir(folderPath, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && isImageFile(d.Name()) {
					filePaths = append(filePaths, path)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("cannot walk folder %s: %w", folderPath, err)
			}
		} else {
			entries, err := os.ReadDir(folderPath)
			if err != nil {
				return nil, fmt.Errorf("cannot read folder %s: %w", folderPath, err)
			}
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				if isImageFile(entry.Name()) {
					filePaths = append(filePaths, filepath.Join(folderPath, entry.Name()))
				}
			}
		}
	}
	return filePaths, nil
}

func newUploadBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Uploading"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func runUpload(cmd *cobra.Command, args []string) error {
	recursive := mustGetBool(cmd, "recursive")
	original := mustGetBool(cmd, "original")
	folder := mustGetString(cmd, "directory")
	watermarkPath := mustGetString(cmd, "watermark")
	concurrency := mustGetInt(cmd, "concurrency")

	filePaths, err := collectImagePaths(args, recursive)
	if err != nil {
		return err
	}
	if len(filePaths) == 0 {
		fmt.Println("No image files found in the specified folders.")
		return nil
	}

	var watermark []byte
	if watermarkPath != "" {
		watermark, err = os.ReadFile(watermarkPath)
		if err != nil {
			return fmt.Errorf("cannot read watermark %s: %w", watermarkPath, err)
		}
	}

	fmt.Printf("Found %d image(s) to upload from %d folder(s)\n", len(filePaths), len(args))

	items := make([]pipeline.Item, 0, len(filePaths))
	for _, filePath := range filePaths {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("cannot read file %s: %w", filePath, err)
		}
		items = append(items, pipeline.Item{Filename: filepath.Base(filePath), Data: data})
	}

	ctx := context.Background()
	b, err := initBackends(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	p := pipeline.New(b.faces, b.storage, b.embedder, concurrency)

	uploadBar := newUploadBar(len(items))
	batch := p.ProcessBatch(ctx, items, watermark, folder, original, func(done, total int) {
		uploadBar.Add(1)
	})
	fmt.Println()

	for _, result := range batch.Results {
		if result.Error != "" {
			fmt.Printf("Failed: %s: %s\n", result.Filename, result.Error)
		}
	}

	fmt.Printf("\nUploaded %d/%d file(s) in %.1fs\n",
		batch.SuccessfulUploads, batch.TotalFiles, batch.ProcessingTime)

	if batch.SuccessfulUploads == 0 {
		return fmt.Errorf("no files were uploaded successfully")
	}
	return nil
}
