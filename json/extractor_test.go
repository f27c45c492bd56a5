package json_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/urlx"
	urljson "github.com/fwojciec/urlx/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreePathExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts urls from json text", func(t *testing.T) {
		t.Parallel()

		text := `{
			"page_num": 1,
			"isEnd": false,
			"article": [
				{"title": "test-article-1", "url": "https://www.test.org/article/1"},
				{"title": "test-article-2", "url": "https://www.test.org/article/2"}
			]
		}`

		got, err := urljson.NewTreePathExtractor().Extract(`/article/\d+/url`, urlx.String(text), urlx.Params{})

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://www.test.org/article/1",
			"https://www.test.org/article/2",
		}, urlx.Strings(got))
	})

	t.Run("parses each string item of a sequence", func(t *testing.T) {
		t.Parallel()

		in := urlx.Sequence(
			urlx.String(`{"title": "a", "url": "https://www.test.org/article/1"}`),
			urlx.String(`{"title": "b", "url": "https://www.test.org/article/2"}`),
			urlx.Mapping(urlx.Member{Key: "url", Value: urlx.String("https://www.test.org/article/3")}),
		)

		got, err := urljson.NewTreePathExtractor().Extract(`/\d+/url`, in, urlx.Params{})

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://www.test.org/article/1",
			"https://www.test.org/article/2",
			"https://www.test.org/article/3",
		}, urlx.Strings(got))
	})

	t.Run("indexes mapping input directly", func(t *testing.T) {
		t.Parallel()

		in := urlx.Mapping(urlx.Member{Key: "u", Value: urlx.String("https://x/1")})

		got, err := urljson.NewTreePathExtractor().Extract(`/u`, in, urlx.Params{})

		require.NoError(t, err)
		assert.Equal(t, []string{"https://x/1"}, urlx.Strings(got))
	})

	t.Run("returns empty sequence when nothing matches", func(t *testing.T) {
		t.Parallel()

		got, err := urljson.NewTreePathExtractor().Extract(`/missing`, urlx.String(`{"a":1}`), urlx.Params{})

		require.NoError(t, err)
		assert.Equal(t, urlx.KindSequence, got.Kind())
		assert.Equal(t, 0, got.Len())
	})

	t.Run("returns json syntax errors unwrapped", func(t *testing.T) {
		t.Parallel()

		_, err := urljson.NewTreePathExtractor().Extract(`/a`, urlx.String(`{"a":`), urlx.Params{})

		require.Error(t, err)
		assert.Equal(t, urlx.EINTERNAL, urlx.ErrorCode(err))
	})

	t.Run("returns syntax error type", func(t *testing.T) {
		t.Parallel()

		_, err := urljson.NewTreePathExtractor().Extract(`/a`, urlx.String(`{"a" 1}`), urlx.Params{})

		var syntaxErr *json.SyntaxError
		assert.ErrorAs(t, err, &syntaxErr)
	})

	t.Run("rejects scalar input", func(t *testing.T) {
		t.Parallel()

		_, err := urljson.NewTreePathExtractor().Extract(`/a`, urlx.Int(1), urlx.Params{})

		assert.Equal(t, urlx.EUNSUPPORTED, urlx.ErrorCode(err))
	})

	t.Run("rejects invalid pattern", func(t *testing.T) {
		t.Parallel()

		_, err := urljson.NewTreePathExtractor().Extract(`/a(`, urlx.String(`{"a":1}`), urlx.Params{})

		assert.Equal(t, urlx.EINVALID, urlx.ErrorCode(err))
	})
}
