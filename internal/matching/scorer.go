package matching

import (
	"math"
	"slices"
	"strings"
)

const (
	skillsWeight     = 60.0
	experienceWeight = 25.0
	categoryWeight   = 15.0

	overqualifiedBonus = 10

	preferredCategoryBase = 100
	// A job outside the stated preferences still gets a small floor credit.
	otherCategoryBase = 30

	softSkillsDamping = 0.8
)

// experienceBases maps the level distance to the experience base score.
// Distances of 3 and above share the last entry.
var experienceBases = []int{100, 75, 50, 25}

// evaluation is the shared intermediate result of scoring, used by the
// scorer, the breakdown and the recommendation generator alike.
type evaluation struct {
	matchedTags    int
	totalTags      int
	missingTags    []string
	candidateLevel int
	jobLevel       int
	experienceBase int
	categoryBase   int
	categoryMatch  bool
}

func evaluate(job JobPosting, profile CandidateProfile) evaluation {
	ev := evaluation{
		totalTags:      len(job.Tags),
		candidateLevel: profile.ExperienceLevel.Ordinal(),
		jobLevel:       job.ExperienceLevel.Ordinal(),
	}

	skills := lowerAll(profile.Skills)
	for _, tag := range job.Tags {
		if tagMatched(strings.ToLower(tag), skills) {
			ev.matchedTags++
			continue
		}
		ev.missingTags = append(ev.missingTags, tag)
	}

	ev.experienceBase = experienceBase(ev.candidateLevel, ev.jobLevel)

	ev.categoryMatch = slices.Contains(profile.PreferredCategories, job.Category)
	ev.categoryBase = otherCategoryBase
	if ev.categoryMatch {
		ev.categoryBase = preferredCategoryBase
	}

	return ev
}

// skillsPoints is zero for a job without tags, never NaN.
func (ev evaluation) skillsPoints() float64 {
	if ev.totalTags == 0 {
		return 0
	}
	return float64(ev.matchedTags) * skillsWeight / float64(ev.totalTags)
}

func (ev evaluation) percentage() int {
	total := ev.skillsPoints() +
		float64(ev.experienceBase)*experienceWeight/100 +
		float64(ev.categoryBase)*categoryWeight/100

	return clampPercent(roundHalfUp(total))
}

func (ev evaluation) breakdown() Breakdown {
	technical := 0
	if ev.totalTags > 0 {
		technical = clampPercent(roundHalfUp(float64(ev.matchedTags) * 100 / float64(ev.totalTags)))
	}
	experience := ev.experienceBase
	domains := ev.categoryBase

	composite := float64(technical)*skillsWeight/100 +
		float64(experience)*experienceWeight/100 +
		float64(domains)*categoryWeight/100
	soft := roundHalfUp(math.Min(math.Max(composite*softSkillsDamping, 0), 100))

	return Breakdown{
		Technical:  technical,
		Experience: experience,
		Domains:    domains,
		SoftSkills: soft,
	}
}

// tagMatched reports whether the lower-cased tag is contained in some skill
// or contains some skill.
func tagMatched(tag string, skills []string) bool {
	for _, skill := range skills {
		if strings.Contains(skill, tag) || strings.Contains(tag, skill) {
			return true
		}
	}
	return false
}

func experienceBase(candidate, job int) int {
	diff := candidate - job
	if diff < 0 {
		diff = -diff
	}
	if diff >= len(experienceBases) {
		diff = len(experienceBases) - 1
	}

	base := experienceBases[diff]
	if candidate > job {
		base = min(base+overqualifiedBonus, 100)
	}
	return base
}

// Score computes the compatibility of the profile with the job.
func Score(job JobPosting, profile CandidateProfile) MatchScore {
	return MatchScore{Percentage: evaluate(job, profile).percentage()}
}

// CalculateJobMatch returns the match percentage in the [0, 100] range.
func CalculateJobMatch(job JobPosting, profile CandidateProfile) int {
	return Score(job, profile).Percentage
}

// Statistics returns the per-dimension breakdown for the compatibility radar.
// SoftSkills is a damped composite of the other three dimensions.
func Statistics(job JobPosting, profile CandidateProfile) Breakdown {
	return evaluate(job, profile).breakdown()
}

// Assess computes the percentage, the breakdown and the recommendations
// from a single evaluation.
func Assess(job JobPosting, profile CandidateProfile) *Assessment {
	ev := evaluate(job, profile)
	return &Assessment{
		Percentage:      ev.percentage(),
		Breakdown:       ev.breakdown(),
		Recommendations: ev.recommendations(job),
	}
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(v))
	}
	return out
}

func roundHalfUp(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Floor(v + 0.5))
}

func clampPercent(v int) int {
	return max(0, min(v, 100))
}
