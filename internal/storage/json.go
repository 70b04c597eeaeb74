package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"apv/internal/config"
	"apv/internal/domain"
)

// SaveResult writes a finalized phase result to its JSON file.
func (s *JSONStorage) SaveResult(result domain.ValidationResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s result: %w", result.Phase, err)
	}
	return s.writeFile(s.cfg.ResultPath(result.Phase), data)
}

// LoadResult reads a persisted phase result.
func (s *JSONStorage) LoadResult(phase domain.Phase) (*domain.ValidationResult, error) {
	data, err := os.ReadFile(s.cfg.ResultPath(phase))
	if err != nil {
		return nil, fmt.Errorf("read %s result: %w", phase, err)
	}
	var result domain.ValidationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse %s result: %w", phase, err)
	}
	return &result, nil
}

// SaveRecord writes the full evaluation record.
func (s *JSONStorage) SaveRecord(record domain.EvaluationRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return s.writeFile(s.cfg.ArtifactPath(config.RecordFile), data)
}

// LoadRecord reads the last evaluation record.
func (s *JSONStorage) LoadRecord() (*domain.EvaluationRecord, error) {
	data, err := os.ReadFile(s.cfg.ArtifactPath(config.RecordFile))
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	var record domain.EvaluationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	return &record, nil
}

// WriteArtifact writes an opaque artifact file and returns its path.
func (s *JSONStorage) WriteArtifact(name string, data []byte) (string, error) {
	path := s.cfg.ArtifactPath(name)
	if err := s.writeFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// ReadArtifact reads an artifact file from the artifact dir.
func (s *JSONStorage) ReadArtifact(name string) ([]byte, error) {
	data, err := os.ReadFile(s.cfg.ArtifactPath(name))
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", name, err)
	}
	return data, nil
}

func (s *JSONStorage) writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
