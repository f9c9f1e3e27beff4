package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Abraxas-365/hiresight/internal/ai/scoring"
	"github.com/spf13/cobra"
)

var (
	scoreCandidateFile string
	scoreJobFile       string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a candidate against a job offline",
	Long: `Reads a candidate profile and a job requirement from JSON files and prints
the compatibility breakdown together with the enriched candidate data.
Uses the scoring settings of the configuration but no database.`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreCandidateFile, "candidate", "", "Path to the candidate JSON file (required)")
	scoreCmd.Flags().StringVar(&scoreJobFile, "job", "", "Path to the job JSON file (required)")
	_ = scoreCmd.MarkFlagRequired("candidate")
	_ = scoreCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(scoreCmd)
}

type scoreOutput struct {
	Breakdown scoring.ScoreBreakdown    `json:"compatibility"`
	Enriched  scoring.EnrichedCandidate `json:"enriched_data"`
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := newEngine(cfg.Scoring)
	if err != nil {
		return err
	}

	var candidate scoring.CandidateProfile
	if err := readJSON(scoreCandidateFile, &candidate); err != nil {
		return err
	}
	var job scoring.JobRequirement
	if err := readJSON(scoreJobFile, &job); err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(scoreOutput{
		Breakdown: engine.CalculateCompatibilityScore(candidate, job),
		Enriched:  engine.EnrichCandidateData(candidate),
	})
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
