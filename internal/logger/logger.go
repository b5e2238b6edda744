package logger

import (
	"io"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	logrus "github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"
)

var output io.Writer = os.Stdout

// Setup initializes Logrus to write to stdout and a rotating file.
func Setup(filename, level string) {
	// 1) Lumberjack for file rotation
	rotator := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    10, // megabytes
		MaxBackups: 7,  // keep up to 7 old files
		MaxAge:     7,  // days
		Compress:   true,
	}
	output = io.MultiWriter(os.Stdout, rotator)

	// 2) Configure Logrus to write to both
	logrus.SetOutput(output)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("level", level).Warn("unknown LOG_LEVEL, falling back to info")
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// Output is the writer shared by logrus and the HTTP access log.
func Output() io.Writer {
	return output
}

// GormLogger routes GORM's slow-query and error logs through Logrus.
func GormLogger() gormlogger.Interface {
	level := gormlogger.Warn
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		level = gormlogger.Info // capture SQL at Debug
	}
	return gormlogger.New(logrus.StandardLogger(), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
