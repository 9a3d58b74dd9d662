package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/catalog"
	"github.com/spigell/jobmatch/internal/logger"
)

type archivedFilter struct {
	enabled bool
	reason  string
	logger  *zap.Logger
}

// NewArchived creates a filter that removes archived postings.
func NewArchived(log *zap.Logger) Filter {
	return &archivedFilter{
		enabled: true,
		logger:  logger.WithFields(log),
	}
}

func (f *archivedFilter) Name() string { return "archived" }

func (f *archivedFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *archivedFilter) IsEnabled() bool { return f.enabled }

func (f *archivedFilter) Validate() error { return nil }

func (f *archivedFilter) Apply(_ context.Context, jobs *catalog.Jobs) (*catalog.Jobs, Step, error) {
	initial := jobs.Len()
	excluded := jobs.ExcludeArchived()
	if len(excluded) > 0 {
		f.logger.Info("excluding archived jobs",
			zap.Strings("excluded_jobs", excluded),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, Step{Initial: initial, Dropped: len(excluded), Left: jobs.Len()}, nil
}

func (f *archivedFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason}
}
