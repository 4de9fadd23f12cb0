package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gap-hunter/internal/export"
	"github.com/pdiddy/gap-hunter/internal/pipeline"
	"github.com/pdiddy/gap-hunter/internal/search"
)

var huntCmd = &cobra.Command{
	Use:   "hunt [topic]",
	Short: "Hunt research gaps for a topic",
	Long: `Hunt queries the academic APIs for recent papers on the given topic and
prints candidate research gaps as YAML. With no topic argument it starts
an interactive session that keeps prompting for topics until you quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()
		p := pipeline.New(httpClient(cfg), cfg)

		asJSON, _ := cmd.Flags().GetBool("json")
		output, _ := cmd.Flags().GetString("output")
		format := export.FormatYAML
		if asJSON {
			format = export.FormatJSON
		}

		if len(args) == 1 {
			return huntOnce(cmd.Context(), p, args[0], format, output)
		}
		return huntInteractive(cmd.Context(), p, format, output)
	},
}

func init() {
	huntCmd.Flags().Bool("json", false, "output results as JSON instead of YAML")
	huntCmd.Flags().String("output", "", "write results to a file instead of stdout")

	rootCmd.AddCommand(huntCmd)
}

// huntOnce runs a single topic and writes the result to stdout or, when
// output is set, to a file.
func huntOnce(ctx context.Context, p *pipeline.Pipeline, topic string, format export.Format, output string) error {
	result, err := p.Hunt(ctx, topic, os.Stderr)
	if err != nil {
		return err
	}

	hf := export.FromResult(result)
	if output != "" {
		if err := export.WriteHuntFile(output, hf, format); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %d gaps to %s\n", len(hf.Gaps), output)
		return nil
	}
	return export.Write(os.Stdout, hf, format)
}

// huntInteractive greets the user and keeps prompting for topics. Errors
// from one hunt are reported and the loop continues; "quit", "exit", or
// EOF end the session.
func huntInteractive(ctx context.Context, p *pipeline.Pipeline, format export.Format, output string) error {
	fmt.Println("Welcome to Gap Hunter. I search recent papers and suggest research gaps.")
	fmt.Println(`Enter a research topic, or "quit" to leave.`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\ntopic> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit", "q":
			fmt.Println("Happy hunting.")
			return nil
		}

		if err := huntOnce(ctx, p, line, format, output); err != nil {
			reportHuntError(os.Stderr, err)
		}
	}
	return scanner.Err()
}

// reportHuntError prints a friendly message for the expected error
// cases and a plain error line otherwise.
func reportHuntError(w io.Writer, err error) {
	switch {
	case errors.Is(err, search.ErrInvalidTopic):
		fmt.Fprintln(w, "That topic is too short. Try at least 3 characters.")
	case errors.Is(err, pipeline.ErrInsufficientData):
		fmt.Fprintln(w, "No recent papers found for that topic. Try a broader phrasing.")
	default:
		fmt.Fprintf(w, "error: %v\n", err)
	}
}
