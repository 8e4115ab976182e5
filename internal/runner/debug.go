package runner

import (
	"errors"

	"github.com/jacoelho/combine/internal/results"
	"github.com/jacoelho/combine/parse"
	"go.uber.org/zap"
)

// debugCase traces a finished case. It is a no-op unless the logger is at
// debug level.
func debugCase(logger *zap.Logger, c results.CaseResult) {
	ce := logger.Check(zap.DebugLevel, "case finished")
	if ce == nil {
		return
	}

	fields := []zap.Field{
		zap.String("case", c.Name),
		zap.String("grammar", c.Grammar),
		zap.Int64("bytes", c.Bytes),
		zap.Duration("duration", c.Duration),
		zap.Bool("passed", c.Passed()),
	}

	if c.Error != nil {
		fields = append(fields, zap.Error(c.Error))

		var perr *parse.ParseError
		if errors.As(c.Error, &perr) {
			fields = append(fields, zap.Stringer("position", perr.Position))
		}
	}

	ce.Write(fields...)
}
