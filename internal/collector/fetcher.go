package collector

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"SIPCompare/internal/model"
)

//go:embed data/*.json
var bundled embed.FS

// Source supplies the raw rows of one instrument's dataset, most-recent-first as stored.
type Source interface {
	Records(ctx context.Context) ([]model.RawRecord, error)
	Name() string
}

// EmbeddedSource reads a dataset bundled with the binary, e.g. "sol.json".
type EmbeddedSource struct {
	File string
}

func (s *EmbeddedSource) Name() string { return "embedded:" + s.File }

func (s *EmbeddedSource) Records(_ context.Context) ([]model.RawRecord, error) {
	data, err := fs.ReadFile(bundled, "data/"+s.File)
	if err != nil {
		return nil, fmt.Errorf("read bundled dataset: %w", err)
	}
	return decodeRecords(data)
}

// FileSource reads a dataset from disk.
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string { return "file:" + s.Path }

func (s *FileSource) Records(_ context.Context) ([]model.RawRecord, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return decodeRecords(data)
}

// StaticSource returns fixed rows. Used by tests and hosts that already hold the data.
type StaticSource struct {
	Label string
	Rows  []model.RawRecord
}

func (s *StaticSource) Name() string { return "static:" + s.Label }

func (s *StaticSource) Records(_ context.Context) ([]model.RawRecord, error) {
	rows := make([]model.RawRecord, len(s.Rows))
	copy(rows, s.Rows)
	return rows, nil
}

func decodeRecords(data []byte) ([]model.RawRecord, error) {
	var rows []model.RawRecord
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return rows, nil
}
