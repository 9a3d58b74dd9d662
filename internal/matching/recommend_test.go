package matching

import (
	"strings"
	"testing"
)

func TestGetMatchRecommendationsGreatMatch(t *testing.T) {
	t.Parallel()

	job := JobPosting{Tags: []string{"go", "docker"}, ExperienceLevel: LevelSenior, Category: "technology"}
	profile := CandidateProfile{
		Skills:              []string{"Go", "Docker", "Kubernetes"},
		ExperienceLevel:     LevelSenior,
		PreferredCategories: []string{"technology"},
	}

	if got := CalculateJobMatch(job, profile); got < GreatMatchThreshold {
		t.Fatalf("expected a great match, got %d", got)
	}

	recs := GetMatchRecommendations(job, profile)
	if len(recs) != 1 {
		t.Fatalf("expected exactly 1 recommendation, got %d", len(recs))
	}
	if recs[0].Impact != 0 || recs[0].Priority != PriorityLow || recs[0].Kind != KindSkill {
		t.Fatalf("unexpected affirmation: %+v", recs[0])
	}
}

func TestGetMatchRecommendationsShortCircuitIgnoresGaps(t *testing.T) {
	t.Parallel()

	// 60 + 25 + 4.5 rounds to 90 although the category is not preferred.
	job := JobPosting{Tags: []string{"go"}, ExperienceLevel: LevelMid, Category: "technology"}
	profile := CandidateProfile{Skills: []string{"go"}, ExperienceLevel: LevelMid}

	if got := CalculateJobMatch(job, profile); got != 90 {
		t.Fatalf("expected 90, got %d", got)
	}

	recs := GetMatchRecommendations(job, profile)
	if len(recs) != 1 || recs[0].Impact != 0 {
		t.Fatalf("expected a single affirmation, got %+v", recs)
	}
}

func TestGetMatchRecommendationsMixedGaps(t *testing.T) {
	t.Parallel()

	job := JobPosting{Tags: []string{"react", "typescript"}, ExperienceLevel: LevelSenior, Category: "technology"}
	profile := CandidateProfile{
		Skills:              []string{"React", "Node.js"},
		ExperienceLevel:     LevelEntry,
		YearsOfExperience:   1,
		PreferredCategories: []string{"design"},
	}

	recs := GetMatchRecommendations(job, profile)

	expected := []struct {
		kind     Kind
		priority Priority
		impact   int
	}{
		{KindExperience, PriorityHigh, 16},
		{KindSkill, PriorityMedium, 5},
		{KindCategory, PriorityLow, 10},
	}

	if len(recs) != len(expected) {
		t.Fatalf("expected %d recommendations, got %d: %+v", len(expected), len(recs), recs)
	}
	for i, e := range expected {
		if recs[i].Kind != e.kind || recs[i].Priority != e.priority || recs[i].Impact != e.impact {
			t.Fatalf("recommendation %d: expected %v/%v/%d, got %+v", i, e.kind, e.priority, e.impact, recs[i])
		}
	}

	if !strings.Contains(recs[1].Title, "typescript") {
		t.Fatalf("expected skill title to mention the missing tag, got %q", recs[1].Title)
	}
}

func TestGetMatchRecommendationsOrdering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tags   []string
		expect []Kind
	}{
		{
			name: "experience impact wins a high priority tie",
			// 3 missing -> impact 15 against experience impact 16
			tags:   []string{"go", "rust", "zig"},
			expect: []Kind{KindExperience, KindSkill, KindCategory},
		},
		{
			name: "skill impact wins a high priority tie",
			// 4 missing -> impact 20
			tags:   []string{"go", "rust", "zig", "elixir"},
			expect: []Kind{KindSkill, KindExperience, KindCategory},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			job := JobPosting{Tags: tt.tags, ExperienceLevel: LevelSenior, Category: "technology"}
			profile := CandidateProfile{Skills: []string{"python"}, ExperienceLevel: LevelEntry}

			recs := GetMatchRecommendations(job, profile)
			if len(recs) != len(tt.expect) {
				t.Fatalf("expected %d recommendations, got %d", len(tt.expect), len(recs))
			}
			for i, kind := range tt.expect {
				if recs[i].Kind != kind {
					t.Fatalf("position %d: expected %s, got %s", i, kind, recs[i].Kind)
				}
			}
			if recs[0].Priority != PriorityHigh || recs[1].Priority != PriorityHigh {
				t.Fatalf("expected two high priority items first, got %+v", recs[:2])
			}
			if last := recs[len(recs)-1]; last.Priority != PriorityLow || last.Impact != 10 {
				t.Fatalf("expected low category item last, got %+v", last)
			}
		})
	}
}

func TestSkillRecommendation(t *testing.T) {
	t.Parallel()

	tags := []string{"go", "rust", "zig", "elixir", "haskell", "ocaml", "erlang"}
	job := JobPosting{Tags: tags, ExperienceLevel: LevelMid, Category: "technology"}
	profile := CandidateProfile{ExperienceLevel: LevelMid, PreferredCategories: []string{"technology"}}

	recs := GetMatchRecommendations(job, profile)
	if len(recs) != 1 {
		t.Fatalf("expected only the skill recommendation, got %+v", recs)
	}

	rec := recs[0]
	if rec.Impact != 30 {
		t.Fatalf("expected impact capped at 30, got %d", rec.Impact)
	}
	if rec.Priority != PriorityHigh {
		t.Fatalf("expected high priority, got %s", rec.Priority)
	}
	if !strings.Contains(rec.Title, "go, rust, zig") || strings.Contains(rec.Title, "elixir") {
		t.Fatalf("expected title to list the first three missing tags, got %q", rec.Title)
	}
}

func TestExperienceRecommendationPriority(t *testing.T) {
	t.Parallel()

	// 30 + 18.75 + 15, well below the great match threshold.
	job := JobPosting{Tags: []string{"go", "rust"}, ExperienceLevel: LevelSenior, Category: "technology"}
	profile := CandidateProfile{Skills: []string{"go"}, ExperienceLevel: LevelMid, PreferredCategories: []string{"technology"}}

	recs := GetMatchRecommendations(job, profile)
	var found bool
	for _, rec := range recs {
		if rec.Kind != KindExperience {
			continue
		}
		found = true
		if rec.Priority != PriorityMedium || rec.Impact != 8 {
			t.Fatalf("unexpected experience recommendation: %+v", rec)
		}
	}
	if !found {
		t.Fatalf("expected an experience recommendation, got %+v", recs)
	}
}

func TestGetMatchRecommendationsNoGapBelowThreshold(t *testing.T) {
	t.Parallel()

	// No tags, same level and preferred category: 40% without any gap.
	job := JobPosting{ExperienceLevel: LevelMid, Category: "education"}
	profile := CandidateProfile{ExperienceLevel: LevelMid, PreferredCategories: []string{"education"}}

	recs := GetMatchRecommendations(job, profile)
	if len(recs) != 1 {
		t.Fatalf("expected a single affirmation, got %+v", recs)
	}
	if recs[0].Impact != 0 || recs[0].Priority != PriorityLow {
		t.Fatalf("unexpected affirmation: %+v", recs[0])
	}
}

func TestOverqualifiedCandidateGetsNoExperienceRecommendation(t *testing.T) {
	t.Parallel()

	job := JobPosting{Tags: []string{"sales"}, ExperienceLevel: LevelEntry, Category: "business"}
	profile := CandidateProfile{ExperienceLevel: LevelExecutive}

	for _, rec := range GetMatchRecommendations(job, profile) {
		if rec.Kind == KindExperience {
			t.Fatalf("did not expect experience recommendation for overqualified candidate: %+v", rec)
		}
	}
}
