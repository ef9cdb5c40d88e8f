package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a logrus logger writing to both a rotated file under dir and
// stdout. Unknown levels fall back to info.
func New(dir, level string) (*logrus.Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	logger := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "vitalwatch.log"),
		MaxSize:    20, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
	}
	// Output to both file and console
	logger.SetOutput(io.MultiWriter(rotator, os.Stdout))

	return logger, nil
}
