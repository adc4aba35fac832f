package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-ai/internal/assistant"
	"github.com/jonathan/portfolio-ai/internal/config"
	"github.com/jonathan/portfolio-ai/internal/observability"
)

// cliCallerID identifies questions asked from the command line
const cliCallerID = "cli"

var askVerbose bool

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the assistant a question from the command line",
	Long: `Run a question through the full pipeline in-process and print the response as JSON.
Counters are kept in memory, so quotas reset on every invocation.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runAsk,
}

func init() {
	askCmd.Flags().BoolVarP(&askVerbose, "verbose", "v", false, "Print a readable summary instead of JSON")
	rootCmd.AddCommand(askCmd)
}

// askFailure mirrors the HTTP error body
type askFailure struct {
	Error     string `json:"error"`
	Remaining int    `json:"remaining"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), cfg, appOptions{memoryOnly: true})
	if err != nil {
		return err
	}
	defer a.Close()

	resp, askErr := a.service.Ask(cmd.Context(), cliCallerID, args[0])

	if askVerbose && askErr == nil {
		observability.NewPrinter(cmd.OutOrStdout()).PrintResponse(resp)
		return nil
	}

	var output any = resp
	if askErr != nil {
		remaining, _ := assistant.RemainingOf(askErr)
		output = askFailure{Error: userMessage(askErr), Remaining: remaining}
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(data)); err != nil {
		return err
	}

	if askErr != nil {
		return fmt.Errorf("question not answered: %w", askErr)
	}
	return nil
}

// userMessage returns the visitor-facing text carried by a pipeline error
func userMessage(err error) string {
	var (
		questionErr *assistant.ValidationError
		rejection   *assistant.SecurityRejection
		limitErr    *assistant.RateLimitError
		upstream    *assistant.UpstreamError
	)
	switch {
	case errors.As(err, &questionErr):
		return questionErr.Message
	case errors.As(err, &rejection):
		return rejection.Reason
	case errors.As(err, &limitErr):
		return limitErr.Message
	case errors.As(err, &upstream):
		return upstream.Message
	default:
		return err.Error()
	}
}
