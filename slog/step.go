package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/urlx"
)

// Ensure LoggingStepExtractor implements urlx.StepExtractor.
var _ urlx.StepExtractor = (*LoggingStepExtractor)(nil)

// LoggingStepExtractor wraps the StepExtractor of one strategy with debug
// logging.
type LoggingStepExtractor struct {
	strategy urlx.Strategy
	next     urlx.StepExtractor
	logger   *slog.Logger
}

// NewLoggingStepExtractor creates a new LoggingStepExtractor.
func NewLoggingStepExtractor(strategy urlx.Strategy, next urlx.StepExtractor, logger *slog.Logger) *LoggingStepExtractor {
	return &LoggingStepExtractor{strategy: strategy, next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the step.
func (e *LoggingStepExtractor) Extract(expr string, in urlx.Node, params urlx.Params) (out urlx.Node, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("extraction step",
			"strategy", string(e.strategy),
			"expr", expr,
			"input", in.Kind().String(),
			"items", out.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(expr, in, params)
}
