package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/spigell/hr-interviewer/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Combine a resume score with interview results into an overall score",
	Run: func(cmd *cobra.Command, _ []string) {
		if err := runScore(cmd); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().Float64P("resume", "r", 0, "resume match score, 0-100 (required)")
	scoreCmd.Flags().IntP("interview-score", "i", 0, "final interview score, 0-100")
	scoreCmd.Flags().Float64("positive", 0, "positive sentiment percentage")
	scoreCmd.Flags().Float64("neutral", 0, "neutral sentiment percentage")
	scoreCmd.Flags().Float64("negative", 0, "negative sentiment percentage")

	scoreCmd.MarkFlagRequired("resume")
}

func runScore(cmd *cobra.Command) error {
	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	weights := scoring.DefaultWeights()
	if config.Scoring != nil && *config.Scoring != (scoring.Weights{}) {
		weights = *config.Scoring
	}

	flags := cmd.Flags()
	resume, _ := flags.GetFloat64("resume")

	var outcome *scoring.InterviewOutcome
	if flags.Changed("interview-score") {
		score, _ := flags.GetInt("interview-score")
		outcome = &scoring.InterviewOutcome{FinalScore: &score}
	} else if flags.Changed("positive") || flags.Changed("neutral") || flags.Changed("negative") {
		var b scoring.SentimentBreakdown
		b.Positive, _ = flags.GetFloat64("positive")
		b.Neutral, _ = flags.GetFloat64("neutral")
		b.Negative, _ = flags.GetFloat64("negative")
		outcome = &scoring.InterviewOutcome{Sentiment: &b}
	}

	overall, err := scoring.Aggregate(resume, outcome, weights)
	if err != nil {
		return err
	}

	fmt.Printf("Overall score: %d/100\n%s\n", overall, scoring.Recommendation(overall))
	return nil
}
