package matching

import (
	"strings"
	"testing"
)

func TestCalculateJobMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		job     JobPosting
		profile CandidateProfile
		expect  int
	}{
		{
			name: "partial skills, two levels below, other category",
			job:  JobPosting{Tags: []string{"react", "typescript"}, ExperienceLevel: LevelSenior, Category: "technology"},
			profile: CandidateProfile{
				Skills:              []string{"React", "Node.js"},
				ExperienceLevel:     LevelEntry,
				YearsOfExperience:   1,
				PreferredCategories: []string{"design"},
			},
			expect: 47,
		},
		{
			name: "perfect match",
			job:  JobPosting{Tags: []string{"Go", "Kubernetes"}, ExperienceLevel: LevelMid, Category: "technology"},
			profile: CandidateProfile{
				Skills:              []string{"go", "kubernetes"},
				ExperienceLevel:     LevelMid,
				PreferredCategories: []string{"technology"},
			},
			expect: 100,
		},
		{
			name: "no tags gives no skill credit",
			job:  JobPosting{ExperienceLevel: LevelMid, Category: "technology"},
			profile: CandidateProfile{
				Skills:              []string{"go"},
				ExperienceLevel:     LevelMid,
				PreferredCategories: []string{"technology"},
			},
			expect: 40,
		},
		{
			name:    "empty profile against entry job",
			job:     JobPosting{Tags: []string{"excel"}, ExperienceLevel: LevelEntry, Category: "finance"},
			profile: CandidateProfile{},
			// mid vs entry: 75 + 10 bonus = 85 -> 21.25, category 4.5
			expect: 26,
		},
		{
			name: "one level above gets the bonus",
			job:  JobPosting{Tags: []string{"sql"}, ExperienceLevel: LevelMid, Category: "data"},
			profile: CandidateProfile{
				Skills:          []string{"PostgreSQL"},
				ExperienceLevel: LevelSenior,
			},
			// 60 + 21.25 + 4.5
			expect: 86,
		},
		{
			name:    "unknown levels default to mid",
			job:     JobPosting{Tags: []string{"design"}, ExperienceLevel: "principal", Category: "design"},
			profile: CandidateProfile{Skills: []string{"ux design"}, ExperienceLevel: "guru", PreferredCategories: []string{"design"}},
			expect:  100,
		},
		{
			name:    "level lookup is case sensitive",
			job:     JobPosting{Tags: []string{"go"}, ExperienceLevel: "Senior", Category: "technology"},
			profile: CandidateProfile{Skills: []string{"go"}, ExperienceLevel: LevelEntry},
			// "Senior" is mid: 60 + 18.75 + 4.5
			expect: 83,
		},
		{
			name: "exact half rounds up",
			job:  JobPosting{ExperienceLevel: LevelSenior, Category: "design"},
			profile: CandidateProfile{
				ExperienceLevel:     LevelEntry,
				PreferredCategories: []string{"design"},
			},
			// 0 + 12.5 + 15 = 27.5
			expect: 28,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CalculateJobMatch(tt.job, tt.profile); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}

func TestTagMatchingIsBidirectional(t *testing.T) {
	t.Parallel()

	skills := lowerAll([]string{"React Native", "Go"})

	if !tagMatched("react", skills) {
		t.Fatalf("expected tag contained in a skill to match")
	}
	if !tagMatched("golang", skills) {
		t.Fatalf("expected skill contained in a tag to match")
	}
	if tagMatched("python", skills) {
		t.Fatalf("did not expect unrelated tag to match")
	}
}

func TestExperienceBase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		candidate Level
		job       Level
		expect    int
	}{
		{LevelMid, LevelMid, 100},
		{LevelEntry, LevelMid, 75},
		{LevelEntry, LevelSenior, 50},
		{LevelEntry, LevelExecutive, 25},
		{LevelSenior, LevelMid, 85},
		{LevelSenior, LevelEntry, 60},
		{LevelExecutive, LevelEntry, 35},
		{Level("Senior"), LevelEntry, 85},
	}

	for _, tt := range tests {
		t.Run(string(tt.candidate)+"_"+string(tt.job), func(t *testing.T) {
			t.Parallel()
			if got := experienceBase(tt.candidate.Ordinal(), tt.job.Ordinal()); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}

func TestScoreBoundsAndDeterminism(t *testing.T) {
	t.Parallel()

	tagSets := [][]string{nil, {"go"}, {"go", "rust", "c++", "zig"}, {""}}
	skillSets := [][]string{nil, {"Go"}, {"rust", "c"}, {"GO", "RUST", "C++", "ZIG"}}
	categories := [][]string{nil, {}, {"technology"}}

	for _, tags := range tagSets {
		for _, skills := range skillSets {
			for _, prefs := range categories {
				for _, jobLevel := range Levels {
					for _, candLevel := range Levels {
						job := JobPosting{Tags: tags, ExperienceLevel: jobLevel, Category: "technology"}
						profile := CandidateProfile{Skills: skills, ExperienceLevel: candLevel, PreferredCategories: prefs}

						first := CalculateJobMatch(job, profile)
						if first < 0 || first > 100 {
							t.Fatalf("percentage out of bounds: %d for %+v / %+v", first, job, profile)
						}
						if second := CalculateJobMatch(job, profile); second != first {
							t.Fatalf("expected deterministic result, got %d and %d", first, second)
						}
					}
				}
			}
		}
	}
}

func TestZeroTagsContributeNoSkillScore(t *testing.T) {
	t.Parallel()

	profile := CandidateProfile{Skills: []string{"go", "rust", "python"}, ExperienceLevel: LevelSenior}
	job := JobPosting{Tags: []string{}, ExperienceLevel: LevelSenior, Category: "technology"}

	ev := evaluate(job, profile)
	if ev.skillsPoints() != 0 {
		t.Fatalf("expected zero skill points, got %v", ev.skillsPoints())
	}
	// 25 + 4.5
	if got := ev.percentage(); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}
}

func TestStatistics(t *testing.T) {
	t.Parallel()

	job := JobPosting{Tags: []string{"react", "typescript", "graphql"}, ExperienceLevel: LevelSenior, Category: "technology"}
	profile := CandidateProfile{
		Skills:              []string{"React"},
		ExperienceLevel:     LevelMid,
		PreferredCategories: []string{"technology"},
	}

	got := Statistics(job, profile)

	// 33*0.6 + 75*0.25 + 100*0.15 = 53.55, damped 42.84
	expected := Breakdown{Technical: 33, Experience: 75, Domains: 100, SoftSkills: 43}
	if got != expected {
		t.Fatalf("expected %+v, got %+v", expected, got)
	}
}

func TestStatisticsSoftSkillsNeverExceedsTotal(t *testing.T) {
	t.Parallel()

	job := JobPosting{Tags: []string{"go"}, ExperienceLevel: LevelMid, Category: "technology"}
	profile := CandidateProfile{Skills: []string{"go"}, ExperienceLevel: LevelMid, PreferredCategories: []string{"technology"}}

	got := Statistics(job, profile)
	if got.SoftSkills != 80 {
		t.Fatalf("expected damped soft skills of 80, got %d", got.SoftSkills)
	}
	if got.SoftSkills > CalculateJobMatch(job, profile) {
		t.Fatalf("soft skills should not outrank the match percentage")
	}
}

func TestAssessIsConsistent(t *testing.T) {
	t.Parallel()

	job := JobPosting{Tags: []string{"react", "typescript"}, ExperienceLevel: LevelSenior, Category: "technology"}
	profile := CandidateProfile{Skills: []string{"React"}, ExperienceLevel: LevelEntry}

	assessment := Assess(job, profile)
	if assessment.Percentage != CalculateJobMatch(job, profile) {
		t.Fatalf("assessment percentage %d differs from scorer", assessment.Percentage)
	}
	if assessment.Breakdown != Statistics(job, profile) {
		t.Fatalf("assessment breakdown differs from statistics")
	}
	recs := GetMatchRecommendations(job, profile)
	if len(recs) != len(assessment.Recommendations) {
		t.Fatalf("expected %d recommendations, got %d", len(recs), len(assessment.Recommendations))
	}
	if top := assessment.Top(); top == nil || !strings.EqualFold(string(top.Kind), string(recs[0].Kind)) {
		t.Fatalf("unexpected top recommendation: %+v", top)
	}
}
