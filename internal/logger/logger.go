package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

func New(debug bool) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: time.DateTime,
		FullTimestamp:   true,
	})
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}
