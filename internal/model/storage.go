package model

import (
	"context"
	"io"
)

// ObjectSink is where export files land, keyed by a caller-chosen path.
type ObjectSink interface {
	PutObject(ctx context.Context, path string, body []byte) error
	GetObject(ctx context.Context, path string) (io.ReadCloser, error)
}

// Notifier tells someone an export file is ready.
type Notifier interface {
	NotifyExport(ctx context.Context, path string) error
}
