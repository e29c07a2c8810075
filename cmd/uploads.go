package cmd

import (
	"context"
	"fmt"

	"medialink/core/config"
	"medialink/core/logger"
	"medialink/core/storage"
	"medialink/feature/uploads"

	"github.com/spf13/cobra"
)

var (
	abortKey      string
	abortUploadID string
)

// uploadsCmd is the parent command for multipart upload janitorial tasks.
var uploadsCmd = &cobra.Command{
	Use:   "uploads",
	Short: "Inspect and clean up in-progress multipart uploads",
	Long: `Abandoned multipart uploads keep their parts in the bucket and keep
costing storage until aborted. These commands list and abort them.`,
}

// uploadsListCmd lists in-progress multipart uploads.
var uploadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List in-progress multipart uploads for the bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := uploadsService()
		if err != nil {
			return err
		}

		result, err := svc.ListUploads(context.Background())
		if err != nil {
			return err
		}

		if len(result.Uploads) == 0 {
			fmt.Println("No multipart uploads in progress.")
			return nil
		}
		for _, u := range result.Uploads {
			fmt.Printf("%s\t%s\tinitiated %s\n", u.UploadID, u.Key, u.Initiated.Format("2006-01-02 15:04:05"))
		}
		if result.IsTruncated {
			fmt.Println("(listing truncated)")
		}
		return nil
	},
}

// uploadsAbortCmd aborts one in-progress multipart upload.
var uploadsAbortCmd = &cobra.Command{
	Use:   "abort",
	Short: "Abort an in-progress multipart upload",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := uploadsService()
		if err != nil {
			return err
		}

		result, err := svc.AbortUpload(context.Background(), uploads.AbortUploadRequest{
			Key:      abortKey,
			UploadID: abortUploadID,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Aborted upload %s for %s\n", result.UploadID, result.Key)
		return nil
	},
}

func init() {
	uploadsAbortCmd.Flags().StringVar(&abortKey, "key", "", "Object key of the upload (required)")
	uploadsAbortCmd.Flags().StringVar(&abortUploadID, "upload-id", "", "Upload ID to abort (required)")
	_ = uploadsAbortCmd.MarkFlagRequired("key")
	_ = uploadsAbortCmd.MarkFlagRequired("upload-id")

	uploadsCmd.AddCommand(uploadsListCmd)
	uploadsCmd.AddCommand(uploadsAbortCmd)
	RootCmd.AddCommand(uploadsCmd)
}

// uploadsService assembles an uploads service from configuration. The
// field store is not needed for upload janitoring, so no database
// connection is made.
func uploadsService() (*uploads.Service, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}

	return uploads.NewService(client, cfg.Storage.Bucket, l, 0), nil
}
