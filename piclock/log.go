package piclock

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogging tees the standard logger into a rotating file at logPath.
// With an empty path the logger keeps writing to stderr only and nil is
// returned.
func SetupLogging(logPath string) *lumberjack.Logger {
	if logPath == "" {
		return nil
	}

	logFile := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	log.SetOutput(io.MultiWriter(os.Stderr, logFile))
	return logFile
}
