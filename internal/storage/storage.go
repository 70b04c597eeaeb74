package storage

import (
	"apv/internal/config"
	"apv/internal/domain"
)

// Storage persists and loads evaluation artifacts so report, errors and
// history can run after the fact.
type Storage interface {
	SaveResult(result domain.ValidationResult) error
	LoadResult(phase domain.Phase) (*domain.ValidationResult, error)
	SaveRecord(record domain.EvaluationRecord) error
	LoadRecord() (*domain.EvaluationRecord, error)
	// WriteArtifact writes an opaque artifact (results.json, report.html,
	// changes.patch) into the artifact directory.
	WriteArtifact(name string, data []byte) (string, error)
	ReadArtifact(name string) ([]byte, error)
}

// JSONStorage stores artifacts as files under the configured artifact dir.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage backed by the config's artifact dir.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
