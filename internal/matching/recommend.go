package matching

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// GreatMatchThreshold is the percentage from which no improvement is suggested.
	GreatMatchThreshold = 90

	impactPerMissingSkill = 5
	maxSkillImpact        = 30
	impactPerLevel        = 8
	categoryImpact        = 10

	maxListedSkills = 3
)

// GetMatchRecommendations returns suggestions for improving the match, ordered
// by priority and then by impact. The list is never empty.
func GetMatchRecommendations(job JobPosting, profile CandidateProfile) []Recommendation {
	return evaluate(job, profile).recommendations(job)
}

func (ev evaluation) recommendations(job JobPosting) []Recommendation {
	if ev.percentage() >= GreatMatchThreshold {
		return []Recommendation{{
			Kind:        KindSkill,
			Title:       "Great match!",
			Description: "Your profile is an excellent fit for this position. Go ahead and apply.",
			Priority:    PriorityLow,
			Impact:      0,
		}}
	}

	recs := make([]Recommendation, 0, 3)

	if missing := len(ev.missingTags); missing > 0 {
		priority := PriorityMedium
		if missing > 2 {
			priority = PriorityHigh
		}
		listed := strings.Join(ev.missingTags[:min(missing, maxListedSkills)], ", ")
		recs = append(recs, Recommendation{
			Kind:        KindSkill,
			Title:       fmt.Sprintf("Develop skills: %s", listed),
			Description: fmt.Sprintf("This position asks for %s. Adding these skills to your profile would strengthen your application.", listed),
			Priority:    priority,
			Impact:      min(maxSkillImpact, missing*impactPerMissingSkill),
		})
	}

	if ev.candidateLevel < ev.jobLevel {
		gap := ev.jobLevel - ev.candidateLevel
		priority := PriorityMedium
		if gap >= 2 {
			priority = PriorityHigh
		}
		recs = append(recs, Recommendation{
			Kind:        KindExperience,
			Title:       "Gain more experience",
			Description: fmt.Sprintf("This position expects a %s level profile. Consider projects or roles that build toward it.", levelName(job.ExperienceLevel)),
			Priority:    priority,
			Impact:      gap * impactPerLevel,
		})
	}

	if !ev.categoryMatch {
		category := job.Category
		if category == "" {
			category = "this field"
		}
		recs = append(recs, Recommendation{
			Kind:        KindCategory,
			Title:       "Explore a new field",
			Description: fmt.Sprintf("The job is in %s, which is not among your preferred categories. Adding it would widen your matches.", category),
			Priority:    PriorityLow,
			Impact:      categoryImpact,
		})
	}

	if len(recs) == 0 {
		return []Recommendation{{
			Kind:        KindSkill,
			Title:       "Solid match",
			Description: "Your profile already covers every requirement of this position.",
			Priority:    PriorityLow,
			Impact:      0,
		}}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority.rank() != recs[j].Priority.rank() {
			return recs[i].Priority.rank() > recs[j].Priority.rank()
		}
		return recs[i].Impact > recs[j].Impact
	})

	return recs
}

func levelName(l Level) string {
	if !l.IsKnown() {
		return string(LevelMid)
	}
	return string(l)
}
