// Package slog provides logging decorators for urlx services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/urlx"
)

// Ensure LoggingURLExtractor implements urlx.URLExtractor.
var _ urlx.URLExtractor = (*LoggingURLExtractor)(nil)

// LoggingURLExtractor wraps a URLExtractor with logging.
type LoggingURLExtractor struct {
	next   urlx.URLExtractor
	logger *slog.Logger
}

// NewLoggingURLExtractor creates a new LoggingURLExtractor.
func NewLoggingURLExtractor(next urlx.URLExtractor, logger *slog.Logger) *LoggingURLExtractor {
	return &LoggingURLExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingURLExtractor) Extract(text string) (urls []string, err error) {
	defer func(begin time.Time) {
		e.logger.Info("url extraction",
			"bytes", len(text),
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(text)
}
