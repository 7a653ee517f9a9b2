package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// LocalSink writes to a temp file next to Path and renames it into place.
type LocalSink struct {
	Path string
}

func NewLocalSink(path string) *LocalSink {
	return &LocalSink{Path: path}
}

func (s *LocalSink) Save(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(s.Path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("rename %s: %w", s.Path, err)
	}

	log.Debug().Str("path", s.Path).Int("bytes", len(data)).Msg("document saved")
	return s.Path, nil
}
