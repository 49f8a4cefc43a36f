package utils

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Log *logrus.Logger

// InitLogger initializes the structured logger
func InitLogger() {
	Log = logrus.New()

	// Set log level from environment
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		Log.SetLevel(logrus.DebugLevel)
	case "info":
		Log.SetLevel(logrus.InfoLevel)
	case "warn":
		Log.SetLevel(logrus.WarnLevel)
	case "error":
		Log.SetLevel(logrus.ErrorLevel)
	default:
		Log.SetLevel(logrus.InfoLevel)
	}

	// JSON for production, text for development
	env := os.Getenv("GIN_MODE")
	if env == "release" {
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			ForceColors:     true,
		})
	}

	// Rotate log files with lumberjack
	logFile := &lumberjack.Logger{
		Filename:   "logs/app.log",
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	Log.SetOutput(logFile)

	// Log to stdout in development
	if env != "release" {
		Log.SetOutput(os.Stdout)
	}

	Log.Info("Logger initialized successfully")
}

func init() {
	// Handlers may log before main runs InitLogger (tests especially).
	if Log == nil {
		InitLogger()
	}
}

// LogInfo logs with structured fields
func LogInfo(message string, fields map[string]interface{}) {
	Log.WithFields(logrus.Fields(fields)).Info(message)
}

func LogError(message string, fields map[string]interface{}) {
	Log.WithFields(logrus.Fields(fields)).Error(message)
}

func LogWarn(message string, fields map[string]interface{}) {
	Log.WithFields(logrus.Fields(fields)).Warn(message)
}
