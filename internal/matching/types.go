package matching

// Level is the experience level shared by candidates and job postings.
type Level string

const (
	LevelEntry     Level = "entry"
	LevelMid       Level = "mid"
	LevelSenior    Level = "senior"
	LevelExecutive Level = "executive"
)

// Levels lists all known levels in ordinal order.
var Levels = []Level{LevelEntry, LevelMid, LevelSenior, LevelExecutive}

var levelOrdinals = map[Level]int{
	LevelEntry:     1,
	LevelMid:       2,
	LevelSenior:    3,
	LevelExecutive: 4,
}

// Ordinal returns the position of the level on the 1-4 scale.
// Lookup is exact: any other string, including a differently cased one, is mid.
func (l Level) Ordinal() int {
	if ord, ok := levelOrdinals[l]; ok {
		return ord
	}
	return levelOrdinals[LevelMid]
}

// IsKnown reports whether the level is one of the four defined levels.
func (l Level) IsKnown() bool {
	_, ok := levelOrdinals[l]
	return ok
}

// JobPosting is the part of a job the engine scores against.
type JobPosting struct {
	Tags            []string
	ExperienceLevel Level
	Category        string
}

// CandidateProfile describes the user being matched.
type CandidateProfile struct {
	Skills            []string `yaml:"skills" json:"skills"`
	ExperienceLevel   Level    `yaml:"experience_level" json:"experience_level"`
	YearsOfExperience int      `yaml:"years_of_experience" json:"years_of_experience" validate:"gte=0"`
	// nil means no stated preference.
	PreferredCategories []string `yaml:"preferred_categories,omitempty" json:"preferred_categories,omitempty"`
}

// MatchScore is the single compatibility percentage for a job and a profile.
type MatchScore struct {
	Percentage int
}

// Kind tells which gap a recommendation addresses.
type Kind string

const (
	KindSkill      Kind = "skill"
	KindExperience Kind = "experience"
	KindCategory   Kind = "category"
)

// Priority orders recommendations; high sorts first.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Recommendation is a suggestion for closing one gap between a profile and a job.
// Impact is the estimated gain in percentage points.
type Recommendation struct {
	Kind        Kind     `json:"kind"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Impact      int      `json:"impact"`
}

// Breakdown holds the per-dimension values shown on the compatibility radar.
// All values are in the 0-100 range.
type Breakdown struct {
	Technical  int `json:"technical"`
	Experience int `json:"experience"`
	Domains    int `json:"domains"`
	SoftSkills int `json:"soft_skills"`
}

// Assessment bundles everything the engine computes for one job and profile.
type Assessment struct {
	Percentage      int              `json:"percentage"`
	Breakdown       Breakdown        `json:"breakdown"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Top returns the first recommendation or nil when there is none.
func (a *Assessment) Top() *Recommendation {
	if a == nil || len(a.Recommendations) == 0 {
		return nil
	}
	return &a.Recommendations[0]
}
