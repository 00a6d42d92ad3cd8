package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log общий логгер сервиса. До Init пишет в stderr с настройками logrus по умолчанию.
var Log = logrus.New()

// Init настраивает Log под окружение: в development текст и debug,
// иначе JSON и info. LOG_LEVEL переопределяет уровень.
func Init(env string) {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	level := logrus.InfoLevel
	if env == "development" {
		level = logrus.DebugLevel
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		if parsed, err := logrus.ParseLevel(v); err == nil {
			level = parsed
		}
	}
	l.SetLevel(level)

	Log = l
}

// WithComponent запись с полем component для фоновых подсистем.
func WithComponent(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
