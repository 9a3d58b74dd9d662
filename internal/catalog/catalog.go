package catalog

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/spigell/jobmatch/internal/matching"
)

// Item is a loosely typed catalog entry as read from the file.
type Item interface{}

type document struct {
	Jobs []Item `yaml:"jobs"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads a YAML or JSON catalog of the form {jobs: [...]}.
func Load(path string) (*Jobs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %q: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes and validates catalog content.
func Parse(data []byte) (*Jobs, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	jobs := make([]*Job, 0, len(doc.Jobs))
	for idx, item := range doc.Jobs {
		job, err := decodeItem(item)
		if err != nil {
			return nil, fmt.Errorf("catalog item %d: %w", idx, err)
		}
		jobs = append(jobs, job)
	}

	return &Jobs{Items: jobs}, nil
}

func decodeItem(item Item) (*Job, error) {
	var job Job

	cfg := &mapstructure.DecoderConfig{
		Metadata:   nil,
		Result:     &job,
		TagName:    "yaml",
		DecodeHook: timeToString,
		// ids and salaries are often written as plain numbers
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(item); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	job.ExperienceLevel = matching.Level(strings.ToLower(strings.TrimSpace(string(job.ExperienceLevel))))

	if err := validate.Struct(&job); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("field %s failed %q validation", verrs[0].Field(), verrs[0].Tag())
		}
		return nil, err
	}

	return &job, nil
}

// timeToString keeps posting dates as text; yaml resolves unquoted dates to time.Time.
func timeToString(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	t, ok := data.(time.Time)
	if !ok || to.Kind() != reflect.String {
		return data, nil
	}
	if t.Equal(t.Truncate(24 * time.Hour)) {
		return t.Format(time.DateOnly), nil
	}
	return t.Format(time.RFC3339), nil
}
