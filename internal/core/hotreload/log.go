package hotreload

import (
	"fmt"
	"sync"

	"github.com/zeusync/hotreload/internal/core/observability/log"
)

// LogKind is the severity of a LogEntry.
type LogKind string

const (
	KindFatal   LogKind = "fatal"
	KindError   LogKind = "error"
	KindWarning LogKind = "warning"
	KindInfo    LogKind = "info"
)

// LogEntry is one message of a hot reload, shown to whoever triggered it.
type LogEntry struct {
	Kind    LogKind `json:"kind"`
	Message string  `json:"message"`
}

// runLog collects the entries of one run in emission order and mirrors them to
// the structured logger.
type runLog struct {
	mu      sync.Mutex
	entries []LogEntry
	seen    map[string]struct{}
	logger  log.Log
}

func newRunLog(logger log.Log) *runLog {
	return &runLog{logger: logger, seen: make(map[string]struct{})}
}

func (l *runLog) add(kind LogKind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	l.entries = append(l.entries, LogEntry{Kind: kind, Message: msg})
	l.mu.Unlock()
	l.logger.Log(kind.level(), msg, log.String("kind", string(kind)))
}

// addOnce adds an entry unless the same kind and message was already added in
// this run. Per-instance problems would otherwise repeat for every instance.
func (l *runLog) addOnce(kind LogKind, format string, args ...any) {
	key := string(kind) + "\x00" + fmt.Sprintf(format, args...)
	l.mu.Lock()
	_, dup := l.seen[key]
	l.seen[key] = struct{}{}
	l.mu.Unlock()
	if !dup {
		l.add(kind, format, args...)
	}
}

func (l *runLog) fatal(format string, args ...any)   { l.add(KindFatal, format, args...) }
func (l *runLog) error(format string, args ...any)   { l.add(KindError, format, args...) }
func (l *runLog) warning(format string, args ...any) { l.add(KindWarning, format, args...) }
func (l *runLog) info(format string, args ...any)    { l.add(KindInfo, format, args...) }

func (l *runLog) snapshot() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), l.entries...)
}

func (k LogKind) level() log.Level {
	switch k {
	case KindFatal:
		return log.LevelFatal
	case KindError:
		return log.LevelError
	case KindWarning:
		return log.LevelWarn
	default:
		return log.LevelInfo
	}
}

// HasErrors reports whether entries contain an error or a fatal entry.
func HasErrors(entries []LogEntry) bool {
	for _, e := range entries {
		if e.Kind == KindError || e.Kind == KindFatal {
			return true
		}
	}
	return false
}
