package logger

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/catalog"
)

const (
	// FieldJobID is the structured log field key for the job identifier.
	FieldJobID = "job_id"
	// FieldCategory is the structured log field key for the job category.
	FieldCategory = "job_category"
	// FieldMatch is the structured log field key for the match percentage.
	FieldMatch = "match_percentage"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger is replaced with a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// JobFields describes a job in log entries. The match percentage is only
// added once the job has been scored.
func JobFields(job *catalog.Job) []zap.Field {
	if job == nil {
		return nil
	}

	fields := StringFields(
		StringField{Key: FieldJobID, Value: job.ID},
		StringField{Key: FieldCategory, Value: job.Category},
	)
	if job.Match != nil {
		fields = append(fields, zap.Int(FieldMatch, job.Match.Percentage))
	}

	return fields
}

// WithJob attaches the job fields to the provided logger.
func WithJob(logger *zap.Logger, job *catalog.Job) *zap.Logger {
	return WithFields(logger, JobFields(job)...)
}
