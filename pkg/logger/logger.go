package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log — глобальный логгер приложения. Пакеты пишут через него напрямую,
// прокидывать логгер через все конструкторы ради этого не стали.
var Log = logrus.New()

// Init настраивает глобальный логгер из окружения.
// Вызывается один раз при старте процесса (и в TestMain пакетов, которые логируют).
func Init() {
	// RIDDLE_LOG_LEVEL: debug, info (дефолт), warn, error.
	level, err := logrus.ParseLevel(os.Getenv("RIDDLE_LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// RIDDLE_LOG_FORMAT=json — для сбора логов в проде,
	// иначе цветной текст для разработки.
	if strings.EqualFold(os.Getenv("RIDDLE_LOG_FORMAT"), "json") {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}
