package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hr-interviewer/internal/archive"
	"github.com/spigell/hr-interviewer/internal/export"
	"github.com/spigell/hr-interviewer/internal/interview"
)

const (
	PromptContinue = "Next question"
	PromptEnd      = "End interview"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run an interview in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		if err := runInterview(cmd); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(interviewCmd)

	interviewCmd.Flags().String("candidate-id", "", "candidate identifier (required)")
	interviewCmd.Flags().String("candidate-name", "", "candidate display name")
	interviewCmd.Flags().StringSliceP("skills", "s", nil, "skills to ask about, e.g. --skills React,Go")
	interviewCmd.Flags().IntP("questions", "n", 0, "number of questions (default from interview.default-questions)")
	interviewCmd.Flags().StringP("export", "o", "", "write the result to an xlsx file")
	interviewCmd.Flags().String("archive", "", "bolt database file to store the result in. Default is unset.")

	interviewCmd.MarkFlagRequired("candidate-id")
	interviewCmd.MarkFlagRequired("skills")
}

func runInterview(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := newLogger()
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	controller, err := newController(config.Interview, logger)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	overrideArchive(config, flags.Lookup("archive").Value.String())

	if config.Archive != nil && config.Archive.Path != "" {
		arch, err := archive.Open(config.Archive.Path, logger)
		if err != nil {
			return err
		}
		defer arch.Close()

		controller.OnComplete(func(_ context.Context, result *interview.Result) {
			if err := arch.SaveResult(result); err != nil {
				logger.Error("archiving interview result", zap.String("session_id", result.SessionID), zap.Error(err))
			}
		})
	}

	candidateID, _ := flags.GetString("candidate-id")
	candidateName, _ := flags.GetString("candidate-name")
	skills, _ := flags.GetStringSlice("skills")
	questions, _ := flags.GetInt("questions")
	if flags.Changed("questions") && questions < 1 {
		return fmt.Errorf("--questions must be at least 1, got %d", questions)
	}

	session, err := controller.Start(ctx, interview.StartRequest{
		CandidateID:   candidateID,
		CandidateName: candidateName,
		Skills:        skills,
		NumQuestions:  questions,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Interview with %s: %d questions. Press Ctrl-C to end early.\n", session.CandidateName, len(session.Questions))

	if err := askQuestions(ctx, controller, session); err != nil {
		return err
	}

	result, err := controller.Result(ctx, session.ID)
	if err != nil {
		return err
	}
	printResult(result)

	if path, _ := flags.GetString("export"); path != "" {
		if err := writeExport(path, result); err != nil {
			return err
		}
		logger.Info("result exported", zap.String("file", path))
	}

	return nil
}

func askQuestions(ctx context.Context, controller *interview.Controller, session *interview.Session) error {
	question := session.CurrentQuestion()
	progress := session.Progress()

	for question != nil {
		fmt.Printf("\n[%d/%d] %s: %s\n", progress.Current, progress.Total, question.Skill, question.Text)

		answerPrompt := promptui.Prompt{Label: "Answer"}
		answer, err := answerPrompt.Run()
		if err != nil {
			return endOnAbort(ctx, controller, session.ID, err)
		}

		outcome, err := controller.SubmitAnswer(ctx, session.ID, answer)
		if err != nil {
			return err
		}
		fmt.Printf("Score %d/10. %s\n", outcome.Evaluation.Score, outcome.Evaluation.Feedback)

		if outcome.Completed {
			return nil
		}

		next := promptui.Select{
			Label: "Proceed?",
			Items: []string{PromptContinue, PromptEnd},
		}
		_, action, err := next.Run()
		if err != nil {
			return endOnAbort(ctx, controller, session.ID, err)
		}
		if action == PromptEnd {
			_, err := controller.End(ctx, session.ID)
			return err
		}

		question = outcome.Next
		progress = outcome.Progress
	}

	return nil
}

// endOnAbort ends the session when the operator interrupts a prompt, so the
// result is scored and archived. Other prompt errors are returned as is.
func endOnAbort(ctx context.Context, controller *interview.Controller, sessionID string, err error) error {
	if !errors.Is(err, promptui.ErrInterrupt) && !errors.Is(err, promptui.ErrEOF) {
		return err
	}
	_, endErr := controller.End(ctx, sessionID)
	return endErr
}

func printResult(result *interview.Result) {
	fmt.Printf("\n%s: %d/100, %s\n", result.CandidateName, result.OverallScore, result.Recommendation)
	fmt.Printf("Answered %d of %d questions in %d min\n", result.QuestionsAnswered, result.TotalQuestions, result.DurationMinutes)
	for _, s := range result.SkillScores {
		fmt.Printf("  %-16s %4.1f/10 (%d%%)\n", s.Skill, s.Score, s.Percentage)
	}
	if len(result.Strengths) > 0 {
		fmt.Printf("Strengths: %s\n", strings.Join(result.Strengths, "; "))
	}
	if len(result.Weaknesses) > 0 {
		fmt.Printf("Weaknesses: %s\n", strings.Join(result.Weaknesses, "; "))
	}
}

func writeExport(path string, result *interview.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}

	if err := export.WriteResults(f, []*interview.Result{result}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
