// Package querylog appends tool query records to a JSONL file,
// best-effort. Every failure is swallowed: a log write must never affect
// the tool result delivered to the caller.
package querylog

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/ports"
)

// record is one serialized log line.
type record struct {
	ID           string         `json:"id"`
	Timestamp    time.Time      `json:"timestamp"`
	Tool         string         `json:"tool"`
	Params       map[string]any `json:"params,omitempty"`
	ResultsCount int            `json:"resultsCount"`
	AppNames     []string       `json:"appNames,omitempty"`
}

// Logger implements ports.QueryLogger over an append-only JSONL file.
type Logger struct {
	path string
	log  *zap.Logger
	mu   sync.Mutex
}

// New creates a logger appending to path.
func New(path string, log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}

	return &Logger{path: path, log: log}
}

// Log implements ports.QueryLogger. Fire-and-forget: failures are noted
// at debug level and dropped.
func (l *Logger) Log(entry ports.QueryEntry) {
	line, err := json.Marshal(record{
		ID:           uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Tool:         entry.Tool,
		Params:       entry.Params,
		ResultsCount: entry.ResultsCount,
		AppNames:     entry.AppNames,
	})
	if err != nil {
		l.log.Debug("query log marshal failed", zap.Error(err))

		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		l.log.Debug("query log open failed", zap.Error(err))

		return
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		l.log.Debug("query log write failed", zap.Error(err))
	}
}
