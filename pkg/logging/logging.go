package logging

import "fmt"

const (
	DebugLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

type Logger interface {
	LogLevelf(level int, format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// LogFuncs holds the backend sink for each level; nil entries are discarded
type LogFuncs struct {
	Debugf func(format string, args ...interface{})
	Infof  func(format string, args ...interface{})
	Warnf  func(format string, args ...interface{})
	Errorf func(format string, args ...interface{})
}

type logger struct {
	prefix string
	funcs  LogFuncs
}

// NewLogger creates a Logger that prepends prefix to every message
func NewLogger(prefix string, funcs LogFuncs) Logger {
	return &logger{
		prefix: prefix,
		funcs:  funcs,
	}
}

// NewNullLogger creates a Logger that discards everything
func NewNullLogger() Logger {
	return &logger{}
}

func (l *logger) LogLevelf(level int, format string, args ...interface{}) {
	switch level {
	case DebugLevel:
		l.Debugf(format, args...)
	case InfoLevel:
		l.Infof(format, args...)
	case WarnLevel:
		l.Warnf(format, args...)
	case ErrorLevel:
		l.Errorf(format, args...)
	default:
		l.Errorf("unknown log level %d: %s", level, fmt.Sprintf(format, args...))
	}
}

func (l *logger) Debugf(format string, args ...interface{}) {
	l.emit(l.funcs.Debugf, format, args)
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.emit(l.funcs.Infof, format, args)
}

func (l *logger) Warnf(format string, args ...interface{}) {
	l.emit(l.funcs.Warnf, format, args)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.emit(l.funcs.Errorf, format, args)
}

func (l *logger) emit(fn func(format string, args ...interface{}), format string, args []interface{}) {
	if fn == nil {
		return
	}
	fn(l.prefix+format, args...)
}
