// Package logger is the small levelled logger shared by the viewer, the reader and the
// HTTP preview. Output goes to stderr unless redirected with SetOutput.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Level represents severity.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

var currentLevel int32 = int32(LevelInfo)

var (
	mu   sync.Mutex
	base = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)
)

// ParseLevel maps a name like "debug" or "WARN" to a Level.
func ParseLevel(s string) (Level, bool) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	return l, ok
}

// SetLogLevel parses and sets the global level. Unknown names are ignored and reported false.
func SetLogLevel(s string) bool {
	l, ok := ParseLevel(s)
	if !ok {
		return false
	}
	atomic.StoreInt32(&currentLevel, int32(l))
	return true
}

// GetLogLevel returns the current global level.
func GetLogLevel() Level { return Level(atomic.LoadInt32(&currentLevel)) }

// SetOutput redirects log output and returns a func restoring the previous writer.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	saved := base
	base = log.New(w, "", 0)
	return func() {
		mu.Lock()
		base = saved
		mu.Unlock()
	}
}

func logf(l Level, format string, args ...interface{}) {
	if GetLogLevel() > l {
		return
	}
	if len(args) == 0 {
		output(l, format)
		return
	}
	output(l, fmt.Sprintf(format, args...))
}

// output writes an already formatted message, so a literal % survives.
func output(l Level, msg string) {
	mu.Lock()
	lg := base
	mu.Unlock()
	lg.Printf("[%s] %s", l, msg)
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack logs the elapsed time of a phase at debug level.
//
//	defer logger.TimeTrack(time.Now(), "load results")
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
