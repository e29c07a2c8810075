package cmd

import (
	"context"
	"fmt"

	"medialink/core/config"
	"medialink/core/database"
	"medialink/core/logger"
	"medialink/core/storage"
	"medialink/feature/fields"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	relinkField   string
	relinkPost    int64
	relinkBaseKey string
	relinkDryRun  bool
)

// relinkCmd resyncs a field's key list from a bucket prefix listing.
var relinkCmd = &cobra.Command{
	Use:   "relink",
	Short: "Resync a linked-media field from the bucket",
	Long: `Relink lists the bucket under a base key and overwrites the field's
stored key list with the result, dropping the folder placeholder entry.

Examples:
  # Preview what would change, without writing
  medialink relink --field media --post 7 --base photos --dry-run

  # Overwrite the field with the current listing
  medialink relink --field media --post 7 --base photos`,
	RunE: runRelink,
}

func init() {
	relinkCmd.Flags().StringVar(&relinkField, "field", "", "Field key to relink (required)")
	relinkCmd.Flags().Int64Var(&relinkPost, "post", 0, "Post ID the field belongs to (required)")
	relinkCmd.Flags().StringVar(&relinkBaseKey, "base", "", "Base key (folder) to list; empty lists the whole bucket")
	relinkCmd.Flags().BoolVar(&relinkDryRun, "dry-run", false, "Show the resulting keys and diff without writing")
	_ = relinkCmd.MarkFlagRequired("field")
	_ = relinkCmd.MarkFlagRequired("post")

	RootCmd.AddCommand(relinkCmd)
}

func runRelink(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	svc := fields.NewService(client, cfg.Storage.Bucket, l, db)

	if relinkDryRun {
		return dryRunRelink(ctx, svc)
	}

	keys, err := svc.Relink(ctx, relinkField, relinkPost, relinkBaseKey)
	if err != nil {
		return err
	}

	l.Info("Relink complete",
		zap.String("field", relinkField),
		zap.Int64("post", relinkPost),
		zap.Int("items", len(keys)),
	)
	for _, key := range keys {
		fmt.Println(key)
	}
	return nil
}

// dryRunRelink lists the prefix through the same path a real relink takes
// and diffs the result against the stored field value, without writing
// anything.
func dryRunRelink(ctx context.Context, svc *fields.Service) error {
	listed, err := svc.ListKeys(ctx, relinkBaseKey)
	if err != nil {
		return err
	}

	current, err := svc.GetLinkedItems(ctx, relinkField, relinkPost)
	if err != nil {
		return err
	}
	currentSet := make(map[string]bool, len(current))
	for _, item := range current {
		currentSet[item.Key] = true
	}
	listedSet := make(map[string]bool, len(listed))
	for _, key := range listed {
		listedSet[key] = true
	}

	fmt.Printf("Would link %d key(s) under prefix %q:\n", len(listed), fields.NormalizePrefix(relinkBaseKey))
	for _, key := range listed {
		marker := " "
		if !currentSet[key] {
			marker = "+"
		}
		fmt.Printf("  %s %s\n", marker, key)
	}
	for _, item := range current {
		if !listedSet[item.Key] {
			fmt.Printf("  - %s\n", item.Key)
		}
	}
	fmt.Println("Dry run, field not modified.")
	return nil
}
