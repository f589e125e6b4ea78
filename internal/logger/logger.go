package logger

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	l zerolog.Logger
}

type Conf struct {
	Out     io.Writer
	Level   string
	Console bool
}

func New(conf Conf) *Logger {
	out := conf.Out
	if conf.Console {
		out = zerolog.ConsoleWriter{Out: conf.Out, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(conf.Level)
	if err != nil || conf.Level == "" {
		level = zerolog.InfoLevel
	}

	return &Logger{
		l: zerolog.New(out).Level(level).With().Timestamp().Logger(),
	}
}

func Nop() *Logger {
	return &Logger{l: zerolog.Nop()}
}

func (l *Logger) LogErrorf(format string, v ...any) {
	l.l.Error().Msg(fmt.Sprintf(format, v...))
}

func (l *Logger) LogWarnf(format string, v ...any) {
	l.l.Warn().Msg(fmt.Sprintf(format, v...))
}

func (l *Logger) LogInfo(format string, v ...any) {
	l.l.Info().Msg(fmt.Sprintf(format, v...))
}

func (l *Logger) LogDebugf(format string, v ...any) {
	l.l.Debug().Msg(fmt.Sprintf(format, v...))
}

// Info starts a structured info event, e.g. for access logs.
func (l *Logger) Info() *zerolog.Event {
	return l.l.Info()
}
