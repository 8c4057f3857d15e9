package timerstore

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"

	terrors "git.home.luguber.info/inful/tasktimer/internal/errors"
	"git.home.luguber.info/inful/tasktimer/internal/logfields"
	"git.home.luguber.info/inful/tasktimer/internal/metrics"
)

// FileStore is a Store backed by a single pretty-printed JSON file:
//
//	{
//	  "write-report": {
//	    "startTime": 1760790000000
//	  }
//	}
type FileStore struct {
	path     string
	logger   *slog.Logger
	recorder metrics.Recorder
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore)

// WithLogger overrides the logger used for swallowed storage failures.
func WithLogger(l *slog.Logger) FileStoreOption {
	return func(fs *FileStore) {
		if l != nil {
			fs.logger = l
		}
	}
}

// WithRecorder counts swallowed storage failures.
func WithRecorder(r metrics.Recorder) FileStoreOption {
	return func(fs *FileStore) {
		if r != nil {
			fs.recorder = r
		}
	}
}

// NewFileStore creates a store over path. The file need not exist.
func NewFileStore(path string, opts ...FileStoreOption) *FileStore {
	fs := &FileStore{
		path:     path,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(fs)
	}
	return fs
}

// Path returns the backing file path.
func (fs *FileStore) Path() string {
	return fs.path
}

// Load reads and decodes the backing file.
func (fs *FileStore) Load(ctx context.Context) Timers {
	// #nosec G304 - path comes from operator configuration
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Timers{}
		}
		fs.report(ctx, "load", err)
		return Timers{}
	}

	var timers Timers
	if err := json.Unmarshal(data, &timers); err != nil {
		fs.report(ctx, "load", err)
		return Timers{}
	}
	if timers == nil {
		// A literal "null" decodes to a nil map.
		return Timers{}
	}
	return timers
}

// Save encodes t with two-space indentation, leaving <, > and & unescaped,
// and overwrites the backing file.
func (fs *FileStore) Save(ctx context.Context, t Timers) {
	if t == nil {
		t = Timers{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		fs.report(ctx, "save", err)
		return
	}
	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	if err := os.WriteFile(fs.path, data, 0600); err != nil {
		fs.report(ctx, "save", err)
	}
}

func (fs *FileStore) report(ctx context.Context, op string, cause error) {
	err := terrors.StorageFailed(op, fs.path, cause)
	fs.recorder.IncStoreError(op)
	fs.logger.LogAttrs(ctx, slog.LevelError, err.Message,
		logfields.Path(fs.path),
		logfields.Error(cause))
}
