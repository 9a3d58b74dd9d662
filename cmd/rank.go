package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/catalog"
	"github.com/spigell/jobmatch/internal/filtering"
	"github.com/spigell/jobmatch/internal/logger"
	"github.com/spigell/jobmatch/internal/matching"
	"github.com/spigell/jobmatch/internal/profile"
	"github.com/spigell/jobmatch/internal/utils"
)

const (
	PromptShowRanking         = "Show ranking"
	PromptRecommendations     = "Show recommendations for a job"
	PromptReportByCategories  = "Report by categories"
	PromptShowFilters         = "Show filters"
	PromptAppendToExcludeFile = "Append all jobs to exclude file"
	PromptJobsToFile          = "Dump jobs to file"
	PromptExit                = "Exit"
	PromptBack                = "back"

	maxTitleLength = 60
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{
		PromptShowRanking,
		PromptRecommendations,
		PromptReportByCategories,
		PromptShowFilters,
		PromptAppendToExcludeFile,
		PromptJobsToFile,
		PromptExit,
	},
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score every job in the catalog against the profile and browse the ranking",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().BoolP("auto-approve", "y", false, "print the ranking and exit without asking")
	rankCmd.Flags().StringP("exclude-file", "e", "", "special file with jobs to exclude. Default is unset.")
	rankCmd.Flags().IntP("minimum-score", "m", 0, "drop jobs with a match percentage below this value")
	rankCmd.Flags().IntP("limit", "l", 0, "show only the first N jobs of the ranking (0 shows all)")

	viper.BindPFlag("exclude-file", rankCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("matching.minimum-score", rankCmd.Flags().Lookup("minimum-score"))
}

// rank is the main command for the cli.
func rank(cmd *cobra.Command) {
	ctx := context.Background()

	logger, config := mustSetup()

	logger.Info("starting the ranking", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	candidate, err := profile.NewStore(config.ProfileFile, logger).Load()
	if err != nil {
		logger.Fatal("loading the profile", zap.Error(err))
	}

	jobs, err := catalog.Load(config.CatalogFile)
	if err != nil {
		logger.Fatal("loading the job catalog", zap.Error(err))
	}

	logger.Info("job catalog loaded", zap.String("path", config.CatalogFile), zap.Int("count", jobs.Len()))

	if jobs.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs in the catalog"))
		return
	}

	filters := prepareFilters(config, &candidate, logger)

	jobs, err = filters.RunFilters(ctx, jobs)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if jobs.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs left after filters"))
		return
	}

	jobs.SortByMatch()

	limit, _ := cmd.Flags().GetInt("limit")

	if autoApprove, _ := cmd.Flags().GetBool("auto-approve"); autoApprove {
		showRanking(logger, jobs, limit)
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		logger.Info("current list of jobs", zap.Int("count", jobs.Len()))

		if err := handleAction(action, logger, config, filters, jobs, limit); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, config *Config, filters *filtering.Filtering, jobs *catalog.Jobs, limit int) error {
	switch action {
	case PromptShowRanking:
		showRanking(logger, jobs, limit)
		return nil
	case PromptRecommendations:
		return chooseAndExplain(logger, jobs)
	case PromptReportByCategories:
		pretty, _ := json.MarshalIndent(jobs.ReportByCategory(), "", "  ")
		logger.Info(string(pretty), zap.Int("jobs count", jobs.Len()))
		return nil
	case PromptShowFilters:
		for _, status := range filters.Describe() {
			logger.Info("filter",
				zap.String("name", status.Name),
				zap.Bool("enabled", status.Enabled),
				zap.String("reason", status.Reason),
				zap.Any("details", status.Details),
			)
		}
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(logger, config, jobs)
	case PromptJobsToFile:
		filename, err := jobs.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func chooseAndExplain(logger *zap.Logger, jobs *catalog.Jobs) error {
	for {
		items := make([]string, 0, jobs.Len()+1)
		for _, job := range jobs.Items {
			items = append(items, jobLabel(job))
		}

		jobPrompt := promptui.Select{
			Label: "Choose a job and press ENTER",
			Items: append(items, PromptBack),
			Size:  10,
		}

		_, selected, err := jobPrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		jobID := strings.Split(selected, " ")[0]
		job := jobs.FindByID(jobID)
		if job == nil {
			return fmt.Errorf("there is no such job id %s", jobID)
		}

		explain(logger, job)
	}
}

func appendToExcludeFile(logger *zap.Logger, config *Config, jobs *catalog.Jobs) error {
	excludeFile := strings.TrimSpace(config.ExcludeFile)
	if excludeFile == "" {
		logger.Warn("exclude file is not configured",
			zap.String("hint", "set the exclude-file key or pass --exclude-file"),
		)
		return nil
	}

	excluded, err := catalog.GetExcludedJobsFromFile(excludeFile)
	if err != nil {
		return err
	}

	excluded.Append(jobs.ToExcluded(catalog.ExcludeReasonManual))

	if err = excluded.ToFile(excludeFile); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", excludeFile), zap.Int("count", jobs.Len()))

	return errExit
}

func showRanking(log *zap.Logger, jobs *catalog.Jobs, limit int) {
	items := jobs.Items
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	for idx, job := range items {
		fields := append(logger.JobFields(job),
			zap.String("company", job.Company),
			zap.String("level", string(job.ExperienceLevel)),
		)
		if top := job.Match.Top(); top != nil && top.Impact > 0 {
			fields = append(fields, zap.String("next_step", top.Title))
		}
		log.Info(fmt.Sprintf("%d. %s", idx+1, utils.TruncateForLog(job.Title, maxTitleLength)), fields...)
	}

	log.Info("ranking shown", zap.Int("shown", len(items)), zap.Int("total", jobs.Len()))
}

// explain logs the breakdown and the recommendations of one scored job.
func explain(log *zap.Logger, job *catalog.Job) {
	jobLog := logger.WithJob(log, job)

	if job.Match == nil {
		jobLog.Warn("job has not been scored")
		return
	}

	breakdown := job.Match.Breakdown
	jobLog.Info(utils.JoinNonEmpty(" / ", job.Title, job.Company, job.Location),
		zap.Int("technical", breakdown.Technical),
		zap.Int("experience", breakdown.Experience),
		zap.Int("domains", breakdown.Domains),
		zap.Int("soft_skills", breakdown.SoftSkills),
	)

	for idx, rec := range job.Match.Recommendations {
		jobLog.Info(fmt.Sprintf("%d. %s", idx+1, rec.Title),
			zap.String("kind", string(rec.Kind)),
			zap.String("priority", string(rec.Priority)),
			zap.Int("impact", rec.Impact),
			zap.String("description", rec.Description),
		)
	}
}

func jobLabel(job *catalog.Job) string {
	label := fmt.Sprintf("%s %s", job.ID, utils.JoinNonEmpty(" / ", utils.TruncateForLog(job.Title, maxTitleLength), job.Company))
	if job.Match != nil {
		label = fmt.Sprintf("%s (%d%%)", label, job.Match.Percentage)
	}
	return label
}

func mustSetup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	return logger, config
}

func prepareFilters(config *Config, candidate *matching.CandidateProfile, logger *zap.Logger) *filtering.Filtering {
	matchConfig := &filtering.MatchScoreFilterConfig{
		MinimumScore: config.Matching.MinimumScore,
		Workers:      config.Matching.Workers,
	}
	if config.Matching.ExcludeRejected {
		matchConfig.ExcludeFile = config.ExcludeFile
	}

	steps := []filtering.Filter{
		filtering.NewArchived(logger),
		filtering.NewExcludedCategories(config.Matching.ExcludeCategories, logger),
		filtering.NewExcludeFile(config.ExcludeFile, logger),
		filtering.NewMatchScore(matchConfig, &filtering.MatchScoreFilterDeps{
			Logger:  logger,
			Profile: candidate,
		}),
	}

	filters := filtering.New(steps, logger)

	if config.Matching.IncludeArchived {
		filters.DisableByName("archived", "include-archived is set")
	}

	return filters
}
