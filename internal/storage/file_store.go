package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spacesedan/personaforge/internal/models"
)

// FileStore writes the persona text plus the full raw record to a local
// output directory, one timestamped pair of files per generation.
type FileStore struct {
	outputDir string
}

func NewFileStore(outputDir string) (*FileStore, error) {
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("[FileStore] failed to resolve output dir: %w", err)
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("[FileStore] failed to create output dir: %w", err)
	}

	slog.Info("[FileStore] Using output directory", slog.String("dir", abs))
	return &FileStore{outputDir: abs}, nil
}

func (fs *FileStore) SavePersona(_ context.Context, record models.PersonaRecord) (string, error) {
	timestamp := record.GeneratedAt.Format("20060102_150405")

	personaFile := filepath.Join(fs.outputDir, fmt.Sprintf("%s_persona_%s.txt", record.Username, timestamp))
	header := fmt.Sprintf("Reddit Persona for: %s\nGenerated on: %s\nPosts analyzed: %d\nComments analyzed: %d\n%s\n\n",
		record.Username,
		record.GeneratedAt.Format("2006-01-02 15:04:05"),
		len(record.Posts),
		len(record.Comments),
		"==================================================")

	if err := os.WriteFile(personaFile, []byte(header+record.Persona), 0o644); err != nil {
		return "", fmt.Errorf("[FileStore] failed to write persona file: %w", err)
	}

	dataFile := filepath.Join(fs.outputDir, fmt.Sprintf("%s_data_%s.json", record.Username, timestamp))
	raw, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("[FileStore] failed to marshal record: %w", err)
	}
	if err := os.WriteFile(dataFile, raw, 0o644); err != nil {
		return "", fmt.Errorf("[FileStore] failed to write data file: %w", err)
	}

	slog.Info("[FileStore] Results saved",
		slog.String("persona_file", personaFile),
		slog.String("data_file", dataFile))

	return personaFile, nil
}

// ResolveArtifact maps an artifact filename back to an absolute path inside
// the output directory, refusing anything that escapes it.
func (fs *FileStore) ResolveArtifact(name string) (string, error) {
	clean := filepath.Base(name)
	path := filepath.Join(fs.outputDir, clean)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("[FileStore] artifact not found: %s", clean)
	}
	return path, nil
}
