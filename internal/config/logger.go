package config

import (
	"github.com/sirupsen/logrus"
)

var logLevel = logrus.InfoLevel

// SetLogLevel applies LOG_LEVEL to loggers created afterwards.
func SetLogLevel(level string) {
	if lvl, err := logrus.ParseLevel(level); err == nil {
		logLevel = lvl
		logrus.SetLevel(lvl)
	}
}

// NewLogger builds the logger every repository and service carries.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logLevel)
	return logger
}
