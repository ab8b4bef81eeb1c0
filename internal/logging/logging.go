package logging

import (
	"github.com/m-mizutani/goerr/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Output is JSON at the given level, on stderr
// unless output paths are given.
func New(level string, outputs ...string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid log level", goerr.V("level", level))
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Sampling = nil
	if len(outputs) > 0 {
		cfg.OutputPaths = outputs
		cfg.ErrorOutputPaths = outputs
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build logger")
	}
	return logger.Sugar().Named("phtReminder"), nil
}

// ErrorFields flattens goerr context values into key/value pairs for *w calls.
func ErrorFields(err error) []any {
	fields := []any{"error", err.Error()}
	if ge := goerr.Unwrap(err); ge != nil {
		for k, v := range ge.Values() {
			fields = append(fields, k, v)
		}
	}
	return fields
}
