package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogger configures the process-wide logrus logger. LOG_LEVEL
// accepts the usual logrus level names; the default is info.
func InitLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
