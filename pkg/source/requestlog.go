package source

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/Realchup/smart-traffic-backend/pkg/geo"
)

// LogEntry records one route request and its outcome.
type LogEntry struct {
	Time      time.Time `json:"time"`
	Src       geo.Point `json:"src"`
	Dst       geo.Point `json:"dst"`
	StartID   string    `json:"start_id,omitempty"`
	EndID     string    `json:"end_id,omitempty"`
	Method    string    `json:"method"`
	DistanceM float64   `json:"distance_m"`
	PathLen   int       `json:"path_len"`
}

// RequestLog persists request metadata. Implementations must be safe for
// concurrent use.
type RequestLog interface {
	Record(ctx context.Context, e LogEntry) error
}

// NopRequestLog discards entries.
type NopRequestLog struct{}

func (NopRequestLog) Record(context.Context, LogEntry) error { return nil }

// FileRequestLog appends entries as JSON lines.
type FileRequestLog struct {
	mu  sync.Mutex
	f   *os.File
	enc *json.Encoder
}

// OpenRequestLog opens (or creates) a JSON-lines request log for append.
func OpenRequestLog(path string) (*FileRequestLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open request log")
	}
	return &FileRequestLog{f: f, enc: json.NewEncoder(f)}, nil
}

func (l *FileRequestLog) Record(_ context.Context, e LogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return errors.Wrap(l.enc.Encode(e), "request log")
}

// Close flushes nothing (writes are unbuffered) and closes the file.
func (l *FileRequestLog) Close() error {
	return l.f.Close()
}
