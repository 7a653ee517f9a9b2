package storage

import (
	"context"
	"fmt"
	"strings"
)

const s3Scheme = "s3://"

// Sink persists a finished document. Nothing is written unless the whole
// document is available.
type Sink interface {
	Save(ctx context.Context, data []byte) (string, error)
}

// Target is a parsed output location: either a local path or bucket/key.
type Target struct {
	Path   string
	Bucket string
	Key    string
}

func (t Target) IsS3() bool { return t.Bucket != "" }

func (t Target) String() string {
	if t.IsS3() {
		return s3Scheme + t.Bucket + "/" + t.Key
	}
	return t.Path
}

// ParseTarget accepts a file path or an s3://bucket/key URL.
func ParseTarget(output string) (Target, error) {
	if output == "" {
		return Target{}, fmt.Errorf("empty output target")
	}
	if !strings.HasPrefix(output, s3Scheme) {
		return Target{Path: output}, nil
	}
	rest := strings.TrimPrefix(output, s3Scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return Target{}, fmt.Errorf("invalid s3 target %q, want s3://bucket/key.pdf", output)
	}
	return Target{Bucket: bucket, Key: key}, nil
}
