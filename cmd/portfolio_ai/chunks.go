package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-ai/internal/config"
	"github.com/jonathan/portfolio-ai/internal/observability"
	"github.com/jonathan/portfolio-ai/internal/profile"
	"github.com/jonathan/portfolio-ai/internal/retrieval"
)

var (
	chunksProfilePath string
	chunksQuestion    string
	chunksVerbose     bool
)

var chunksCmd = &cobra.Command{
	Use:   "chunks",
	Short: "Print the retrieval chunks built from the profile",
	Long: `Print the chunks the assistant retrieves from, as JSON.
With --question, print every chunk's relevance score for that question instead, best first.`,
	RunE: runChunks,
}

func init() {
	chunksCmd.Flags().StringVar(&chunksProfilePath, "profile", "", "Path to the profile JSON (default from PROFILE_PATH, else the embedded sample)")
	chunksCmd.Flags().StringVarP(&chunksQuestion, "question", "q", "", "Score chunks against this question")
	chunksCmd.Flags().BoolVarP(&chunksVerbose, "verbose", "v", false, "Print a readable summary instead of JSON")
	rootCmd.AddCommand(chunksCmd)
}

// scoredChunkOutput is one line of the --question listing
type scoredChunkOutput struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Score  int    `json:"score"`
}

func runChunks(cmd *cobra.Command, _ []string) error {
	path := chunksProfilePath
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		path = cfg.ProfilePath
	}

	doc, err := profile.Load(path)
	if err != nil {
		return err
	}
	chunks := retrieval.BuildChunks(doc)

	if chunksVerbose {
		printer := observability.NewPrinter(cmd.OutOrStdout())
		if chunksQuestion != "" {
			printer.PrintScoredChunks(chunksQuestion, retrieval.ScoreChunks(chunksQuestion, chunks))
			return nil
		}
		printer.PrintChunks("PROFILE CHUNKS", chunks)
		return nil
	}

	var output any = chunks
	if chunksQuestion != "" {
		scored := retrieval.ScoreChunks(chunksQuestion, chunks)
		rows := make([]scoredChunkOutput, 0, len(scored))
		for _, s := range scored {
			rows = append(rows, scoredChunkOutput{ID: s.Chunk.ID, Source: s.Chunk.Source, Score: s.Score})
		}
		output = rows
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode chunks: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
