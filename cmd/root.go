package cmd

import (
	"fmt"
	"os"

	"medialink/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "medialink",
	Short: "Media Link Service",
	Long: `Medialink manages linked-media fields backed by S3-compatible storage.
It proxies multipart uploads, hands out presigned part URLs, and keeps
per-post key lists in sync with the bucket.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format for CLI error reporting; debug level gives
		// ISO8601 timestamps instead of epoch.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
