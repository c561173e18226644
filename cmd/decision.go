package cmd

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/spigell/hr-interviewer/internal/archive"
	"github.com/spigell/hr-interviewer/internal/scoring"
)

var decisionCmd = &cobra.Command{
	Use:   "decision CANDIDATE_ID [hire|reject|on-hold]",
	Short: "Record or show the hiring decision for a candidate",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDecision(cmd, args); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(decisionCmd)

	decisionCmd.Flags().String("notes", "", "free form notes stored with the decision")
	decisionCmd.Flags().String("archive", "", "bolt database file (default is archive.path from the config)")
}

func runDecision(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}
	overrideArchive(config, cmd.Flag("archive").Value.String())
	if config.Archive == nil || config.Archive.Path == "" {
		return errors.New("an archive is required: set archive.path or --archive")
	}

	arch, err := archive.Open(config.Archive.Path, logger)
	if err != nil {
		return err
	}
	defer arch.Close()

	candidateID := args[0]
	if len(args) == 1 {
		rec, err := arch.Decision(candidateID)
		if err != nil {
			return err
		}
		printDecision(rec)
		return nil
	}

	decision, err := scoring.ParseDecision(args[1])
	if err != nil {
		return err
	}
	status, err := scoring.Decide(decision)
	if err != nil {
		return err
	}

	notes, _ := cmd.Flags().GetString("notes")
	rec := archive.DecisionRecord{
		CandidateID: candidateID,
		Decision:    decision,
		Status:      status,
		Notes:       notes,
		DecidedAt:   time.Now(),
	}
	if err := arch.SaveDecision(rec); err != nil {
		return err
	}
	printDecision(&rec)
	return nil
}

func printDecision(rec *archive.DecisionRecord) {
	fmt.Printf("%s: %s (%s) at %s\n", rec.CandidateID, rec.Status, rec.Decision, rec.DecidedAt.Format(time.RFC3339))
	if rec.Notes != "" {
		fmt.Printf("Notes: %s\n", rec.Notes)
	}
}
