package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/urlx"
	"github.com/fwojciec/urlx/mock"
	urlxslog "github.com/fwojciec/urlx/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingURLExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs extraction with count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.URLExtractor{
			ExtractFn: func(text string) ([]string, error) {
				return []string{"https://www.test.com/a", "https://www.test.com/b"}, nil
			},
		}

		ext := urlxslog.NewLoggingURLExtractor(inner, logger)
		urls, err := ext.Extract("<html>content</html>")

		require.NoError(t, err)
		assert.Len(t, urls, 2)
		output := buf.String()
		assert.Contains(t, output, "url extraction")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.URLExtractor{
			ExtractFn: func(text string) ([]string, error) {
				return nil, errors.New("bad input")
			},
		}

		ext := urlxslog.NewLoggingURLExtractor(inner, logger)
		_, err := ext.Extract("x")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "count=0")
		assert.Contains(t, output, "err=\"bad input\"")
	})
}

func TestLoggingStepExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs step at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.StepExtractor{
			ExtractFn: func(expr string, in urlx.Node, params urlx.Params) (urlx.Node, error) {
				return urlx.Sequence(urlx.String("a"), urlx.String("b"), urlx.String("c")), nil
			},
		}

		ext := urlxslog.NewLoggingStepExtractor(urlx.StrategyMarkupQuery, inner, logger)
		out, err := ext.Extract("//a/@href", urlx.String("<a></a>"), urlx.Params{})

		require.NoError(t, err)
		assert.Equal(t, 3, out.Len())
		output := buf.String()
		assert.Contains(t, output, "extraction step")
		assert.Contains(t, output, "strategy=markup-query")
		assert.Contains(t, output, "expr=//a/@href")
		assert.Contains(t, output, "input=string")
		assert.Contains(t, output, "items=3")
	})

	t.Run("is silent above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.StepExtractor{
			ExtractFn: func(expr string, in urlx.Node, params urlx.Params) (urlx.Node, error) {
				return urlx.Sequence(), nil
			},
		}

		ext := urlxslog.NewLoggingStepExtractor(urlx.StrategyRegex, inner, logger)
		_, err := ext.Extract("x", urlx.String("x"), urlx.Params{})

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}
