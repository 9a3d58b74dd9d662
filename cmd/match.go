package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/catalog"
	"github.com/spigell/jobmatch/internal/matching"
	"github.com/spigell/jobmatch/internal/profile"
)

var matchCmd = &cobra.Command{
	Use:   "match <job-id>",
	Short: "Score a single job against the profile and show how to improve the match",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		logger, config := mustSetup()

		if err := match(logger, config, args[0]); err != nil {
			logger.Error("match failed", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

func match(logger *zap.Logger, config *Config, jobID string) error {
	candidate, err := profile.NewStore(config.ProfileFile, logger).Load()
	if err != nil {
		return err
	}

	jobs, err := catalog.Load(config.CatalogFile)
	if err != nil {
		return err
	}

	job := jobs.FindByID(jobID)
	if job == nil {
		return fmt.Errorf("there is no such job id %s", jobID)
	}

	job.Match = matching.Assess(job.Posting(), candidate)

	explain(logger, job)

	return nil
}
