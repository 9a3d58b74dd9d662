package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spigell/jobmatch/internal/logger"
	"github.com/spigell/jobmatch/internal/matching"
)

// ErrInvalidProfile is returned when a profile fails validation.
var ErrInvalidProfile = errors.New("invalid profile")

var validate = validator.New()

// Store keeps the candidate profile and persists it to a YAML file.
type Store struct {
	path   string
	logger *zap.Logger

	mu      sync.RWMutex
	profile matching.CandidateProfile
}

// Default returns the profile used before anything was saved.
func Default() matching.CandidateProfile {
	return matching.CandidateProfile{
		Skills:          []string{},
		ExperienceLevel: matching.LevelEntry,
	}
}

func NewStore(path string, log *zap.Logger) *Store {
	return &Store{
		path:    path,
		logger:  logger.WithFields(log, zap.String("profile_file", path)),
		profile: Default(),
	}
}

// Load reads the profile from disk. A missing file leaves the default profile in place.
func (s *Store) Load() (matching.CandidateProfile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("profile file not found, using defaults")
			s.mu.Lock()
			s.profile = Default()
			s.mu.Unlock()
			return Default(), nil
		}
		return matching.CandidateProfile{}, fmt.Errorf("reading profile: %w", err)
	}

	var loaded matching.CandidateProfile
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return matching.CandidateProfile{}, fmt.Errorf("parse profile: %w", err)
	}

	loaded = normalize(loaded)
	if err := check(loaded); err != nil {
		return matching.CandidateProfile{}, err
	}

	s.mu.Lock()
	s.profile = loaded
	s.mu.Unlock()

	s.logger.Debug("profile loaded",
		zap.Int("skills", len(loaded.Skills)),
		zap.String("experience_level", string(loaded.ExperienceLevel)),
	)

	return s.Profile(), nil
}

// Profile returns a copy of the current profile.
func (s *Store) Profile() matching.CandidateProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.profile)
}

// Update applies fn to a copy of the profile and saves the result when it is valid.
func (s *Store) Update(fn func(p *matching.CandidateProfile)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := clone(s.profile)
	fn(&next)
	next = normalize(next)

	if err := check(next); err != nil {
		return err
	}

	if err := s.write(next); err != nil {
		return err
	}
	s.profile = next

	return nil
}

// Save writes the current profile to disk.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.write(s.profile)
}

// Reset replaces the profile with the defaults and saves it.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(Default()); err != nil {
		return err
	}
	s.profile = Default()
	s.logger.Info("profile reset to defaults")

	return nil
}

func (s *Store) write(p matching.CandidateProfile) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create profile directory: %w", err)
		}
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}

	return nil
}

func check(p matching.CandidateProfile) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if !p.ExperienceLevel.IsKnown() {
		return fmt.Errorf("%w: unknown experience level %q", ErrInvalidProfile, p.ExperienceLevel)
	}
	return nil
}

// normalize trims entries, drops empty and duplicate skills and fills in a missing level.
func normalize(p matching.CandidateProfile) matching.CandidateProfile {
	p.Skills = compact(p.Skills, true)
	if p.PreferredCategories != nil {
		p.PreferredCategories = compact(p.PreferredCategories, false)
	}
	p.ExperienceLevel = matching.Level(strings.ToLower(strings.TrimSpace(string(p.ExperienceLevel))))
	if p.ExperienceLevel == "" {
		p.ExperienceLevel = matching.LevelMid
	}
	return p
}

func compact(values []string, foldCase bool) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if slices.ContainsFunc(out, func(existing string) bool {
			if foldCase {
				return strings.EqualFold(existing, v)
			}
			return existing == v
		}) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func clone(p matching.CandidateProfile) matching.CandidateProfile {
	p.Skills = slices.Clone(p.Skills)
	p.PreferredCategories = slices.Clone(p.PreferredCategories)
	return p
}
