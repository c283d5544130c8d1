package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"playlist-server/internal/dataset"
	"playlist-server/internal/shared/config"
	"playlist-server/internal/shared/logger"

	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playlist",
		Short: "Generate mission playlists from a mission graph file",
		Long: `playlist works directly on an exported mission graph document.

It builds the same playlists as the server, without a database or Redis,
and checks documents before they are imported.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("data", "missions.json", "path to the mission graph document")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output to stderr")

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newValidateCmd())
	return cmd
}

// Execute runs the root command until it finishes or the process is interrupted
func Execute(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func commandLogger(cmd *cobra.Command) *slog.Logger {
	level := "warn"
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	var w io.Writer = cmd.ErrOrStderr()
	return logger.New(config.LoggingConfig{Level: level}, w)
}

func loadDataset(cmd *cobra.Command) (*dataset.Dataset, error) {
	path, _ := cmd.Flags().GetString("data")
	return dataset.NewFileStore(path, commandLogger(cmd)).Load(cmd.Context())
}
