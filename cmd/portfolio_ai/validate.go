package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-ai/internal/profile"
	"github.com/jonathan/portfolio-ai/internal/retrieval"
	"github.com/jonathan/portfolio-ai/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate <profile.json>",
	Short: "Validate a profile document",
	Long:  `Check a profile document against the profile JSON Schema and field rules before deploying it.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	doc, err := profile.Load(args[0])
	if err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) {
			_, _ = fmt.Fprintln(out, "Validation failed:")
			for _, fe := range schemaErr.Errors {
				_, _ = fmt.Fprintf(out, "  - %s: %s\n", fe.Field, fe.Message)
			}
		}
		return err
	}

	owner := profile.OwnerOf(doc)
	_, err = fmt.Fprintf(out, "Validation passed: profile of %s yields %d chunks\n",
		owner.FullName, len(retrieval.BuildChunks(doc)))
	return err
}
