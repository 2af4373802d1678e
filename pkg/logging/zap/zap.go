package zaplogging

import (
	"github.com/core-tools/hsu-servicers/pkg/logging"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger builds a console logger writing to stderr.
// Debug output is enabled only when verbose is set.
func NewZapLogger(verbose bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.DisableStacktrace = true
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	return config.Build()
}

// NewLogFuncs routes each logging level to the sugared form of l
func NewLogFuncs(l *zap.Logger) logging.LogFuncs {
	sugar := l.WithOptions(zap.AddCallerSkip(2)).Sugar()
	return logging.LogFuncs{
		Debugf: sugar.Debugf,
		Infof:  sugar.Infof,
		Warnf:  sugar.Warnf,
		Errorf: sugar.Errorf,
	}
}
