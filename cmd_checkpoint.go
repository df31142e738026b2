package main

import (
	"context"
	"edusync/internal/core"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint [thread-id]",
	Short: "Print the last checkpoint of a session",
	Long: `Prints the checkpoint saved after the last completed stage of a session.

Checkpoints only outlive the process when REDIS_URL is set.

Example:
  edusync checkpoint ui-1b4e28ba-2fa1-11d2-883f-0016d3cca427`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckpoint,
}

func runCheckpoint(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	cfg, err := loadEnvironment()
	if err != nil {
		return err
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	checkpoints := core.NewStoreCheckpointer(store, cfg.StoreConfig.CheckpointTTL)
	return printCheckpoint(ctx, cmd.OutOrStdout(), checkpoints, args[0])
}

func printCheckpoint(ctx context.Context, out io.Writer, checkpoints core.CheckpointStore, threadID string) error {
	checkpoint, err := checkpoints.Load(ctx, threadID)
	if err != nil {
		return fmt.Errorf("thread %s: %w", threadID, err)
	}

	data, err := sonic.ConfigDefault.MarshalIndent(checkpoint, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding checkpoint: %w", err)
	}
	fmt.Fprintf(out, "%s\n", headingStyle.Render(fmt.Sprintf("[%s] step %d", checkpoint.Node, checkpoint.Step)))
	_, err = fmt.Fprintf(out, "%s\n", data)
	return err
}
