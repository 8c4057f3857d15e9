package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyTask      = "task"
	KeyTool      = "tool"
	KeyPath      = "path"
	KeyElapsedMS = "elapsed_ms"
	KeyStartTime = "start_time"
	KeyRunning   = "running"
	KeyOutcome   = "outcome"
	KeySessionID = "session_id"
	KeyAddr      = "addr"
	KeyVersion   = "version"
	KeyError     = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Task(name string) slog.Attr      { return slog.String(KeyTask, name) }
func Tool(name string) slog.Attr      { return slog.String(KeyTool, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func ElapsedMS(ms int64) slog.Attr    { return slog.Int64(KeyElapsedMS, ms) }
func Running(n int) slog.Attr         { return slog.Int(KeyRunning, n) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func SessionID(id string) slog.Attr   { return slog.String(KeySessionID, id) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func Version(v string) slog.Attr      { return slog.String(KeyVersion, v) }
func StartTime(t time.Time) slog.Attr { return slog.Time(KeyStartTime, t) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
