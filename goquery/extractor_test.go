package goquery_test

import (
	"testing"

	"github.com/fwojciec/urlx"
	"github.com/fwojciec/urlx/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html>
<body>
<nav>
	<a href="/docs/intro">Introduction</a>
	<a href="/docs/guide">Guide</a>
	<a>No link</a>
</nav>
<div class="article" data='{"url": "https://www.test.org/article/1"}'></div>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("returns attribute values", func(t *testing.T) {
		t.Parallel()

		got, err := goquery.NewExtractor().Extract(`nav a`, urlx.String(page), urlx.Params{Attr: "href"})

		require.NoError(t, err)
		assert.Equal(t, []string{"/docs/intro", "/docs/guide"}, urlx.Strings(got))
	})

	t.Run("returns outer html without attribute", func(t *testing.T) {
		t.Parallel()

		got, err := goquery.NewExtractor().Extract(`nav a[href="/docs/guide"]`, urlx.String(page), urlx.Params{})

		require.NoError(t, err)
		assert.Equal(t, []string{`<a href="/docs/guide">Guide</a>`}, urlx.Strings(got))
	})

	t.Run("returns json carried in attributes", func(t *testing.T) {
		t.Parallel()

		got, err := goquery.NewExtractor().Extract(`div.article`, urlx.String(page), urlx.Params{Attr: "data"})

		require.NoError(t, err)
		assert.Equal(t, []string{`{"url": "https://www.test.org/article/1"}`}, urlx.Strings(got))
	})

	t.Run("returns selector errors", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor().Extract(`nav[`, urlx.String(page), urlx.Params{})

		assert.Error(t, err)
	})

	t.Run("rejects non-string input", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor().Extract(`a`, urlx.Null(), urlx.Params{})

		assert.Equal(t, urlx.EUNSUPPORTED, urlx.ErrorCode(err))
	})
}
