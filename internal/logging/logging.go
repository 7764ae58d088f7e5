package logging

import (
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

// New builds the application logger writing to a rotating file. Stdout
// belongs to the TUI, so everything goes to disk; FUELBOOK_LOG_PATH overrides
// the default location under the user config dir.
func New() (*logrus.Logger, error) {
	path, err := logPath()
	if err != nil {
		return nil, err
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 7,
		MaxAge:     7, // days
		Compress:   true,
	}

	log := logrus.New()
	log.SetOutput(rotator)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	log.SetLevel(logrus.InfoLevel)
	return log, nil
}

func logPath() (string, error) {
	if override := os.Getenv("FUELBOOK_LOG_PATH"); override != "" {
		return override, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(configDir, "fuelbook")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "fuelbook.log"), nil
}
