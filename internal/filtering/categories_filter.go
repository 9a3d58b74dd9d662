package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/catalog"
	"github.com/spigell/jobmatch/internal/logger"
)

type categoriesFilter struct {
	categories []string
	logger     *zap.Logger
}

// NewExcludedCategories creates a filter that removes jobs in the given categories.
func NewExcludedCategories(categories []string, log *zap.Logger) Filter {
	return &categoriesFilter{
		categories: categories,
		logger:     logger.WithFields(log),
	}
}

func (f *categoriesFilter) Name() string { return "categories" }

func (f *categoriesFilter) Disable(string) {}

func (f *categoriesFilter) IsEnabled() bool { return true }

func (f *categoriesFilter) Validate() error { return nil }

func (f *categoriesFilter) Apply(_ context.Context, jobs *catalog.Jobs) (*catalog.Jobs, Step, error) {
	initial := jobs.Len()
	if len(f.categories) == 0 {
		return jobs, Step{Initial: initial, Dropped: 0, Left: jobs.Len()}, nil
	}

	excluded := jobs.Exclude(catalog.JobCategoryField, f.categories)
	if len(excluded) > 0 {
		f.logger.Info("excluding jobs by categories",
			zap.Strings("excluded_categories", f.categories),
			zap.Strings("excluded_jobs", excluded),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, Step{Initial: initial, Dropped: len(excluded), Left: jobs.Len()}, nil
}

func (f *categoriesFilter) Status() Status {
	details := map[string]string{}
	if len(f.categories) > 0 {
		details["categories"] = strings.Join(f.categories, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
