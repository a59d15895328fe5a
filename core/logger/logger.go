package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a logger writing human readable lines to w. Only warnings and
// errors are written unless verbose is set.
func New(w io.Writer, verbose bool) *zap.Logger {
	level := zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		level.SetLevel(zap.DebugLevel)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	// Keep lines short, the caller and timestamp aren't useful in a terminal.
	encoderConfig.TimeKey = ""
	encoderConfig.CallerKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core).Named("replrc")
}
