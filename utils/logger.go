package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

var (
	InfoLogger  = log.New(io.Discard, "INFO: ", log.Ldate|log.Ltime)
	ErrorLogger = log.New(io.Discard, "ERROR: ", log.Ldate|log.Ltime)
)

// InitFileLoggers points the access loggers at logs/app-YYYY-MM-DD.log under dir.
// Until it is called both loggers discard their output.
func InitFileLoggers(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	timestamp := time.Now().Format("2006-01-02")
	logFile, err := os.OpenFile(filepath.Join(dir, fmt.Sprintf("app-%s.log", timestamp)), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	InfoLogger = log.New(logFile, "INFO: ", log.Ldate|log.Ltime)
	ErrorLogger = log.New(logFile, "ERROR: ", log.Ldate|log.Ltime)
	return logFile, nil
}

// LogInfo writes to the info access log
func LogInfo(format string, v ...interface{}) {
	InfoLogger.Printf(format, v...)
}

// LogError writes to the error access log
func LogError(format string, v ...interface{}) {
	ErrorLogger.Printf(format, v...)
}
