package main

import (
	"bufio"
	"context"
	"edusync/pkg"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var (
	renderMarkdown bool
	printJSON      bool
)

var studyCmd = &cobra.Command{
	Use:   "study [topic...]",
	Short: "Run one study session and print the result",
	Long: `Runs research, quiz and explanation for a topic.

The topic is taken from the arguments, or read from stdin when none are given.

Example:
  edusync study Photosynthesis
  edusync study --render "Linear Algebra"`,
	RunE: runStudyCommand,
}

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, studyCmd} {
		cmd.Flags().BoolVar(&renderMarkdown, "render", false, "Render the result as markdown")
		cmd.Flags().BoolVar(&printJSON, "json", false, "Print the raw result as JSON")
	}
}

type sessionRunner interface {
	Run(ctx context.Context, topic string) (*pkg.Result, error)
}

type studyOptions struct {
	render bool
	json   bool
	styled bool
}

func runStudyCommand(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	app, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	return runStudy(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), app.processor, args, studyOptions{
		render: renderMarkdown,
		json:   printJSON,
		styled: true,
	})
}

// runStudy resolves the topic, runs the session and prints it. Session
// failures are printed, not returned.
func runStudy(ctx context.Context, in io.Reader, out io.Writer, runner sessionRunner, args []string, opts studyOptions) error {
	topic := strings.TrimSpace(strings.Join(args, " "))
	if topic == "" {
		var err error
		topic, err = promptTopic(in, out)
		if err != nil {
			return err
		}
	}

	result, err := runner.Run(ctx, topic)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return nil
	}

	var text string
	switch {
	case opts.json:
		text, err = formatJSON(result)
	case opts.render:
		text, err = formatMarkdown(result, 80)
	default:
		text = formatPlain(result, opts.styled)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, text)
	return err
}

func promptTopic(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter your study topic: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("error reading topic: %w", err)
	}
	return strings.TrimSpace(line), nil
}
