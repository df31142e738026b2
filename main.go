package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "edusync",
	Short: "EduSync - multi-agent study assistant",
	Long: `EduSync researches a topic, writes a short quiz about it and explains
every answer, using three LLM agents and a Wikipedia summary lookup.

Run without a subcommand to start a study session.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runStudyCommand,
}

func init() {
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkpointCmd)
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
