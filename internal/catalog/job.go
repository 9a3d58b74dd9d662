package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spigell/jobmatch/internal/matching"
)

const (
	JobIDField       = "ID"
	JobCategoryField = "Category"
)

type Jobs struct {
	Items []*Job
}

// Job is a catalog entry. Only Tags, ExperienceLevel and Category take part in scoring.
type Job struct {
	ID              string         `yaml:"id" json:"id" validate:"required"`
	Title           string         `yaml:"title" json:"title" validate:"required"`
	Company         string         `yaml:"company" json:"company,omitempty"`
	Location        string         `yaml:"location" json:"location,omitempty"`
	Type            string         `yaml:"type" json:"type,omitempty"`
	Salary          string         `yaml:"salary" json:"salary,omitempty"`
	Description     string         `yaml:"description" json:"description,omitempty"`
	Tags            []string       `yaml:"tags" json:"tags,omitempty"`
	ExperienceLevel matching.Level `yaml:"experience_level" json:"experience_level,omitempty"`
	Category        string         `yaml:"category" json:"category" validate:"required"`
	PostedAt        string         `yaml:"posted_at" json:"posted_at,omitempty"`
	Archived        bool           `yaml:"archived" json:"archived,omitempty"`

	Match *matching.Assessment `yaml:"-" json:"match,omitempty"`
}

// Posting returns the scoring view of the job.
func (j *Job) Posting() matching.JobPosting {
	return matching.JobPosting{
		Tags:            j.Tags,
		ExperienceLevel: j.ExperienceLevel,
		Category:        j.Category,
	}
}

func (j *Job) GetStringField(name string) string {
	switch name {
	case JobIDField:
		return j.ID
	case JobCategoryField:
		return j.Category
	default:
		return ""
	}
}

func (v *Jobs) Len() int {
	return len(v.Items)
}

func (v *Jobs) FindByID(id string) *Job {
	for _, job := range v.Items {
		if job.ID == id {
			return job
		}
	}
	return nil
}

// Exclude removes every job whose field matches one of the targets and
// returns the removed ids. Order of the remaining jobs is preserved.
func (v *Jobs) Exclude(name string, targets []string) []string {
	set := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		set[target] = struct{}{}
	}

	var excluded []string
	kept := v.Items[:0]
	for _, job := range v.Items {
		if _, ok := set[job.GetStringField(name)]; ok {
			excluded = append(excluded, job.ID)
			continue
		}
		kept = append(kept, job)
	}
	clear(v.Items[len(kept):])
	v.Items = kept

	return excluded
}

func (v *Jobs) ExcludeArchived() []string {
	var excluded []string
	kept := v.Items[:0]
	for _, job := range v.Items {
		if job.Archived {
			excluded = append(excluded, job.ID)
			continue
		}
		kept = append(kept, job)
	}
	clear(v.Items[len(kept):])
	v.Items = kept

	return excluded
}

// SortByMatch orders jobs by match percentage, best first. Equal percentages
// are ordered by id and unscored jobs go last.
func (v *Jobs) SortByMatch() {
	sort.SliceStable(v.Items, func(i, j int) bool {
		a, b := v.Items[i], v.Items[j]
		if (a.Match == nil) != (b.Match == nil) {
			return a.Match != nil
		}
		if a.Match != nil && a.Match.Percentage != b.Match.Percentage {
			return a.Match.Percentage > b.Match.Percentage
		}
		return a.ID < b.ID
	})
}

// ReportByCategory groups jobs by category.
func (v *Jobs) ReportByCategory() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range v.Items {
		entry := map[string]string{
			"id":       job.ID,
			"title":    job.Title,
			"company":  job.Company,
			"location": job.Location,
			"salary":   job.Salary,
			"level":    string(job.ExperienceLevel),
		}

		if job.Match != nil {
			entry["match"] = strconv.Itoa(job.Match.Percentage) + "%"
			if top := job.Match.Top(); top != nil {
				entry["top_recommendation"] = top.Title
			}
		}

		report[job.Category] = append(report[job.Category], entry)
	}
	return report
}

func (v *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode jobs: %w", err)
	}
	return file.Name(), nil
}
