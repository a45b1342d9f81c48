package util

import (
	"io"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// Supported log levels.
const (
	LevelDisabled = "disabled"
	LevelDebug    = "debug"
	LevelInfo     = "info"
)

// InitLogger configures the global logger. At debug level logs are printed
// in a human readable fashion with caller information; at info level they
// are printed as JSON lines with ts/msg keys so they can be ingested
// alongside the rest of the ecosystem's runtimes.
func InitLogger(level string) {
	switch level {
	case LevelDisabled:
		logrus.SetOutput(io.Discard)
	case LevelDebug:
		logrus.SetLevel(logrus.DebugLevel)
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.DateTime,
			CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
				return frame.Function, ""
			},
		})
		logrus.SetReportCaller(true)
	default:
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "ts",
				logrus.FieldKeyMsg:  "msg",
			},
		})
	}
}
