package logging

import (
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide JSON logger. Setup adjusts its level.
var Log = New(os.Stdout, "INFO")

// Setup sets the level of Log.
// level is one of DEBUG, INFO, WARN, ERROR; anything else means INFO.
func Setup(level string) {
	Log.SetLevel(ParseLevel(level))
}

// New builds a JSON logger writing to w
func New(w io.Writer, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	logger.SetLevel(ParseLevel(level))
	logger.SetReportCaller(true)
	logger.AddHook(stackHook{})
	return logger
}

// ParseLevel maps a level name to a logrus level, defaulting to Info
func ParseLevel(s string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(s))
	if err != nil {
		return logrus.InfoLevel
	}
	switch {
	case lvl > logrus.DebugLevel:
		return logrus.DebugLevel
	case lvl < logrus.ErrorLevel:
		return logrus.ErrorLevel
	}
	return lvl
}

// stackHook attaches a stack trace to ERROR and above.
type stackHook struct{}

func (stackHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

func (stackHook) Fire(entry *logrus.Entry) error {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	entry.Data["stacktrace"] = string(buf[:n])
	return nil
}
