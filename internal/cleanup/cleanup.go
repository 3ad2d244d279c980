// Package cleanup sweeps render artifacts out of the PDF work directory.
// Report generation writes a temporary HTML file per request and removes
// it afterwards, but a crashed render or killed process leaves files
// behind; this service deletes anything older than the retention window.
package cleanup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// artifactPatterns are the file name shapes the renderer produces.
var artifactPatterns = []string{"report-*.html", "report-*.pdf"}

// Service deletes expired render artifacts from a work directory.
type Service struct {
	dir string
}

// NewService creates a cleanup service for the given work directory.
func NewService(dir string) *Service {
	return &Service{dir: dir}
}

// Config holds configuration for one cleanup run.
type Config struct {
	Retention time.Duration // age past which an artifact is deleted
	DryRun    bool          // log candidates without deleting
}

// Result holds the outcome of a cleanup run.
type Result struct {
	TargetCount  int       `json:"target_count"`
	DeletedCount int       `json:"deleted_count"`
	ErrorCount   int       `json:"error_count"`
	DryRun       bool      `json:"dry_run"`
	ExecutedAt   time.Time `json:"executed_at"`
	DeletedFiles []string  `json:"deleted_files"`
	Errors       []string  `json:"errors,omitempty"`
}

// Run finds artifacts older than the retention window and deletes them.
func (s *Service) Run(cfg Config) (*Result, error) {
	result := &Result{
		DryRun:     cfg.DryRun,
		ExecutedAt: time.Now(),
	}

	cutoff := time.Now().Add(-cfg.Retention)

	for _, pattern := range artifactPatterns {
		matches, err := filepath.Glob(filepath.Join(s.dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan work dir: %w", err)
		}

		for _, path := range matches {
			info, err := os.Stat(path)
			if err != nil {
				continue // already gone
			}
			if info.ModTime().After(cutoff) {
				continue
			}

			result.TargetCount++
			if cfg.DryRun {
				log.Info().Str("file", path).Msg("cleanup dry run, would delete")
				continue
			}

			if err := os.Remove(path); err != nil {
				result.ErrorCount++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", path, err))
				continue
			}
			result.DeletedCount++
			result.DeletedFiles = append(result.DeletedFiles, filepath.Base(path))
		}
	}

	log.Info().
		Int("targets", result.TargetCount).
		Int("deleted", result.DeletedCount).
		Int("errors", result.ErrorCount).
		Bool("dry_run", result.DryRun).
		Msg("render artifact cleanup finished")

	return result, nil
}
