package logger

import (
	"bytes"
	"context"
)

// stdlog implements the io.Writer interface so a standard library log value
// can write into our logger. Used by things like the http.Server ErrorLog.
type stdlog struct {
	logger *Logger
	level  Level
}

// Write implements the io.Writer interface.
func (s *stdlog) Write(data []byte) (int, error) {
	s.log(string(bytes.TrimSpace(data)))
	return len(data), nil
}

func (s *stdlog) log(msg string) {
	ctx := context.Background()

	switch s.level {
	case LevelDebug:
		s.logger.Debugc(ctx, 5, msg)
	case LevelWarn:
		s.logger.Warnc(ctx, 5, msg)
	case LevelError:
		s.logger.Errorc(ctx, 5, msg)
	default:
		s.logger.Infoc(ctx, 5, msg)
	}
}
