package util

import (
	"io"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitLogger(t *testing.T) {
	defer func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetReportCaller(false)
		logrus.SetLevel(logrus.InfoLevel)
	}()

	InitLogger(LevelDebug)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)

	InitLogger(LevelInfo)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	InitLogger(LevelDisabled)
	assert.Equal(t, io.Discard, logrus.StandardLogger().Out)
}
