package output

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If GITBRIDGE_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.gitbridge/logs/gitbridge.log
func GetLogFilePath() string {
	if customPath := os.Getenv("GITBRIDGE_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		return "gitbridge.log"
	}

	return filepath.Join(homeDir, ".gitbridge", "logs", "gitbridge.log")
}
