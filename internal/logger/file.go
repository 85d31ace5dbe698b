package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LatestLogName is the symlink pointing at the most recent run log.
const LatestLogName = "latest.jsonl"

// FileBackend writes records as JSON lines to a per-run file in a log
// directory. Each run log is named run-YYYYMMDD-HHMMSS.jsonl and latest.jsonl
// is re-pointed at it. Every record carries the run ID.
type FileBackend struct {
	logDir  string
	runFile string
	runID   string
	file    *os.File
	zl      *zap.Logger
	mu      sync.Mutex
}

// NewFileBackend creates the log directory if needed, opens a timestamped run
// log, and updates the latest.jsonl symlink.
func NewFileBackend(logDir string, logLevel string) (*FileBackend, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.jsonl", timestamp))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, LatestLogName)
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.NameKey = "logger"

	runID := uuid.New().String()
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(file),
		zapLevel(ParseLevel(logLevel)),
	)

	return &FileBackend{
		logDir:  logDir,
		runFile: runFile,
		runID:   runID,
		file:    file,
		zl:      zap.New(core).With(zap.String("run_id", runID)),
	}, nil
}

// RunFile returns the path of the current run log.
func (fb *FileBackend) RunFile() string {
	return fb.runFile
}

// RunID returns the identifier attached to every record of this run.
func (fb *FileBackend) RunID() string {
	return fb.runID
}

// Emit writes rec as one JSON line. The format is ignored; fields are structured.
func (fb *FileBackend) Emit(rec Record, _ *Format) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	if fb.zl == nil {
		return
	}
	if ce := fb.zl.Named(rec.Name).Check(zapLevel(rec.Level), rec.Message); ce != nil {
		ce.Time = rec.Time
		ce.Write()
	}
}

// Close flushes and closes the run log file.
func (fb *FileBackend) Close() error {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	if fb.zl == nil {
		return nil
	}
	_ = fb.zl.Sync()
	fb.zl = nil

	if err := fb.file.Sync(); err != nil {
		fb.file.Close()
		return fmt.Errorf("failed to sync run log: %w", err)
	}
	if err := fb.file.Close(); err != nil {
		return fmt.Errorf("failed to close run log: %w", err)
	}
	return nil
}

// zapLevel maps a Level onto zap's levels. zap has no trace level, so trace
// records are written at debug.
func zapLevel(l Level) zapcore.Level {
	switch l {
	case LevelTrace, LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
