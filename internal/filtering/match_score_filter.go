package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/jobmatch/internal/catalog"
	"github.com/spigell/jobmatch/internal/logger"
	"github.com/spigell/jobmatch/internal/matching"
)

const defaultWorkers = 4

type matchScoreFilter struct {
	enabled bool
	reason  string
	config  *MatchScoreFilterConfig
	deps    *MatchScoreFilterDeps
}

type MatchScoreFilterDeps struct {
	Logger  *zap.Logger
	Profile *matching.CandidateProfile
}

type MatchScoreFilterConfig struct {
	MinimumScore int
	Workers      int
	// When set, rejected jobs are appended to this exclude file.
	ExcludeFile string
}

// NewMatchScore creates the step that scores every job against the profile
// and drops the ones below the minimum score.
func NewMatchScore(cfg *MatchScoreFilterConfig, deps *MatchScoreFilterDeps) Filter {
	if cfg == nil {
		cfg = &MatchScoreFilterConfig{}
	}
	if deps == nil {
		deps = &MatchScoreFilterDeps{}
	}
	deps.Logger = logger.WithFields(deps.Logger)

	return &matchScoreFilter{
		enabled: true,
		config:  cfg,
		deps:    deps,
	}
}

func (f *matchScoreFilter) Name() string { return "match_score" }

func (f *matchScoreFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *matchScoreFilter) IsEnabled() bool { return f.enabled }

func (f *matchScoreFilter) Validate() error {
	if f.deps.Profile == nil {
		return fmt.Errorf("candidate profile is required for match scoring")
	}
	if f.config.MinimumScore < 0 || f.config.MinimumScore > 100 {
		return fmt.Errorf("minimum score must be within 0..100, got %d", f.config.MinimumScore)
	}
	return nil
}

func (f *matchScoreFilter) Apply(ctx context.Context, jobs *catalog.Jobs) (*catalog.Jobs, Step, error) {
	initial := jobs.Len()

	if err := f.score(ctx, jobs); err != nil {
		return jobs, Step{}, err
	}

	approved := make([]*catalog.Job, 0, initial)
	rejected := &catalog.Jobs{}
	for _, job := range jobs.Items {
		if job.Match.Percentage < f.config.MinimumScore {
			logger.WithJob(f.deps.Logger, job).Debug("job rejected by match score",
				zap.Int("minimum_score", f.config.MinimumScore),
			)
			rejected.Items = append(rejected.Items, job)
			continue
		}
		approved = append(approved, job)
	}
	jobs.Items = approved

	if rejected.Len() > 0 {
		if err := f.appendToExcludeFile(rejected); err != nil {
			f.deps.Logger.Warn("failed to append rejected jobs to exclude file", zap.Error(err))
		}
	}

	left := jobs.Len()
	return jobs, Step{Initial: initial, Dropped: initial - left, Left: left}, nil
}

// score assesses the jobs concurrently. Each worker writes only to its own job.
func (f *matchScoreFilter) score(ctx context.Context, jobs *catalog.Jobs) error {
	workers := f.config.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	profile := *f.deps.Profile

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, job := range jobs.Items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			job.Match = matching.Assess(job.Posting(), profile)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("scoring jobs: %w", err)
	}

	return nil
}

func (f *matchScoreFilter) appendToExcludeFile(rejected *catalog.Jobs) error {
	path := strings.TrimSpace(f.config.ExcludeFile)
	if path == "" {
		return nil
	}

	excluded, err := catalog.GetExcludedJobsFromFile(path)
	if err != nil {
		return fmt.Errorf("load excluded jobs: %w", err)
	}

	excluded.Append(rejected.ToExcluded(catalog.ExcludeReasonLowMatch))

	if err := excluded.ToFile(path); err != nil {
		return fmt.Errorf("write excluded jobs: %w", err)
	}

	f.deps.Logger.Info("rejected jobs appended to exclude file",
		zap.Int("count", rejected.Len()),
		zap.String("exclude_file", path),
	)

	return nil
}

func (f *matchScoreFilter) Status() Status {
	details := map[string]string{
		"minimum_score": strconv.Itoa(f.config.MinimumScore),
		"workers":       strconv.Itoa(f.config.Workers),
	}
	if f.config.ExcludeFile != "" {
		details["exclude_file"] = f.config.ExcludeFile
	}
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason, Details: details}
}
