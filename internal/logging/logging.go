// Package logging builds the zap logger shared by the CLI, the backend and
// the HTTP server.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON production logger writing to out (stderr when nil).
// verbose lowers the level from info to debug.
func New(verbose bool, out io.Writer) *zap.Logger {
	if out == nil {
		out = os.Stderr
	}

	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(config.EncoderConfig),
		zapcore.AddSync(out),
		config.Level,
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}
