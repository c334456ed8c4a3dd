// Package logger wraps zerolog with sender-tagged helpers.
package logger

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const dateFormat = "2006-01-02T15:04:05.000" // YYYY-MM-DDTHH:MM:SS.ZZZ

var logger = zerolog.Nop()

// Settings describes where and how to write logs.
type Settings struct {
	// FilePath is the log file. Leave it empty to log to the standard error.
	FilePath string
	// Level is one of zerolog levels: debug, info, warn, error.
	Level string
	// MaxSize is the maximal size of a log file in megabytes before it gets rotated.
	MaxSize int
	// MaxBackups is the number of rotated files to keep.
	MaxBackups int
	// MaxAge is the number of days to keep rotated files for.
	MaxAge int
	// Compress enables compression of rotated files.
	Compress bool
}

// GetLogger returns the configured logger instance.
func GetLogger() *zerolog.Logger {
	return &logger
}

// InitLogger configures the logger. It must be called before any goroutine starts logging.
func InitLogger(s Settings) error {
	level, err := zerolog.ParseLevel(s.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	zerolog.TimeFieldFormat = dateFormat

	var output io.Writer
	if len(s.FilePath) > 0 {
		output = &lumberjack.Logger{
			Filename:   s.FilePath,
			MaxSize:    s.MaxSize,
			MaxBackups: s.MaxBackups,
			MaxAge:     s.MaxAge,
			Compress:   s.Compress,
		}
	} else {
		output = zerolog.ConsoleWriter{
			Out:        &syncWriter{output: os.Stderr},
			TimeFormat: dateFormat,
			NoColor:    runtime.GOOS == "windows",
		}
	}

	logger = zerolog.New(output).With().Timestamp().Logger().Level(level)
	return nil
}

// DisableLogger discards everything logged from now on.
func DisableLogger() {
	logger = zerolog.Nop()
}

// Debug logs at debug level for the specified sender
func Debug(sender string, format string, v ...any) {
	logger.Debug().Str("sender", sender).Msg(fmt.Sprintf(format, v...))
}

// Info logs at info level for the specified sender
func Info(sender string, format string, v ...any) {
	logger.Info().Str("sender", sender).Msg(fmt.Sprintf(format, v...))
}

// Warn logs at warn level for the specified sender
func Warn(sender string, format string, v ...any) {
	logger.Warn().Str("sender", sender).Msg(fmt.Sprintf(format, v...))
}

// Error logs at error level for the specified sender
func Error(sender string, format string, v ...any) {
	logger.Error().Str("sender", sender).Msg(fmt.Sprintf(format, v...))
}

type syncWriter struct {
	mu     sync.Mutex
	output *os.File
}

func (s *syncWriter) Write(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.output.Write(b)
}
