package urlx_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/urlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleData = `{
	"status": 0,
	"page": {
		"info": {"page_num": 1, "page_size": 10, "total_page": 1000},
		"isEnd": false
	},
	"data": {
		"type": "A",
		"count": 3,
		"list": [
			{"id": "#A1", "name": "A-1", "source": {"url": "http://www.test.com/data/A1", "logo": "./A1.png"}},
			{"id": "#A2", "name": "A-2", "source": {"url": "http://www.test.com/data/A2", "logo": "./A2.png"}},
			{"id": "#A3", "name": "A-3", "source": {"url": "http://www.test.com/data/A3", "logo": "./A3.png"}}
		]
	},
	"error": ""
}`

func mustParse(t *testing.T, s string) urlx.Node {
	t.Helper()
	n, err := urlx.ParseJSON(s)
	require.NoError(t, err)
	return n
}

func texts(nodes []urlx.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i], _ = n.Text()
	}
	return out
}

func TestIndex_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns value at path", func(t *testing.T) {
		t.Parallel()

		idx := urlx.NewIndex(mustParse(t, `{"data":{"type":"A"}}`))

		assert.Equal(t, urlx.String("A"), idx.Get("/data/type", urlx.Null()))
	})

	t.Run("returns null default for missing path", func(t *testing.T) {
		t.Parallel()

		idx := urlx.NewIndex(mustParse(t, `{"data":{"type":"A"}}`))

		assert.True(t, idx.Get("/data/type/name", urlx.Null()).IsNull())
	})

	t.Run("returns caller default for missing path", func(t *testing.T) {
		t.Parallel()

		idx := urlx.NewIndex(mustParse(t, `{"data":{"type":"A"}}`))

		assert.Equal(t, urlx.String("x"), idx.Get("/data/type/name", urlx.String("x")))
	})

	t.Run("returns inner nodes", func(t *testing.T) {
		t.Parallel()

		idx := urlx.NewIndex(mustParse(t, articleData))

		got := idx.Get("/data/list/1", urlx.Null())

		require.Equal(t, urlx.KindMapping, got.Kind())
		id, _ := got.Lookup("id")
		assert.Equal(t, urlx.String("#A2"), id)
	})

	t.Run("returns root for empty path", func(t *testing.T) {
		t.Parallel()

		root := mustParse(t, articleData)
		idx := urlx.NewIndex(root)

		assert.True(t, root.Equal(idx.Get("", urlx.Null())))
	})

	t.Run("resolves non-canonical index spelling by descent", func(t *testing.T) {
		t.Parallel()

		idx := urlx.NewIndex(mustParse(t, articleData))

		assert.Equal(t, urlx.String("#A2"), idx.Get("/data/list/01/id", urlx.Null()))
	})

	t.Run("returns default on type mismatch and out of range", func(t *testing.T) {
		t.Parallel()

		idx := urlx.NewIndex(mustParse(t, articleData))
		def := urlx.String("d")

		assert.Equal(t, def, idx.Get("/data/list/id", def))
		assert.Equal(t, def, idx.Get("/data/list/3", def))
		assert.Equal(t, def, idx.Get("/data/list/-1", def))
		assert.Equal(t, def, idx.Get("/data/count/x", def))
		assert.Equal(t, def, idx.Get("/nope", def))
	})
}

func TestIndex_Find(t *testing.T) {
	t.Parallel()

	t.Run("returns matches in construction order", func(t *testing.T) {
		t.Parallel()

		idx := urlx.NewIndex(mustParse(t, `{"data":{"list":[{"id":"#A1"},{"id":"#A2"},{"id":"#A3"}]}}`))

		got, err := idx.Find(`/data/list/\d+/id`, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"#A1", "#A2", "#A3"}, texts(got))
	})

	t.Run("matches nested urls", func(t *testing.T) {
		t.Parallel()

		idx := urlx.NewIndex(mustParse(t, articleData))

		got, err := idx.Find(`/data/list/\d+/source/url`, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"http://www.test.com/data/A1",
			"http://www.test.com/data/A2",
			"http://www.test.com/data/A3",
		}, texts(got))
	})

	t.Run("returns empty list when nothing matches", func(t *testing.T) {
		t.Parallel()

		idx := urlx.NewIndex(mustParse(t, articleData))

		got, err := idx.Find(`/data/list/\d+/source/name`, nil)

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("returns non-empty default when nothing matches", func(t *testing.T) {
		t.Parallel()

		idx := urlx.NewIndex(mustParse(t, articleData))

		got, err := idx.Find(`/missing`, []urlx.Node{urlx.Int(1)})

		require.NoError(t, err)
		assert.Equal(t, []urlx.Node{urlx.Int(1)}, got)
	})

	t.Run("is anchored at start but not at end", func(t *testing.T) {
		t.Parallel()

		idx := urlx.NewIndex(mustParse(t, `{"a":{"b":1},"x":{"a":{"b":2}}}`))

		got, err := idx.Find(`/a`, nil)

		require.NoError(t, err)
		// "/a" and "/a/b" match, "/x/a" does not.
		assert.Len(t, got, 2)
	})

	t.Run("rejects invalid pattern", func(t *testing.T) {
		t.Parallel()

		idx := urlx.NewIndex(mustParse(t, articleData))

		_, err := idx.Find(`/data/(`, nil)

		assert.Equal(t, urlx.EINVALID, urlx.ErrorCode(err))
	})
}

func TestIndex_FindRegexp(t *testing.T) {
	t.Parallel()

	idx := urlx.NewIndex(mustParse(t, articleData))

	got := idx.FindRegexp(regexp.MustCompile(`/data/list/\d+/id`), nil)
	none := idx.FindRegexp(regexp.MustCompile(`id$`), nil)

	assert.Equal(t, []string{"#A1", "#A2", "#A3"}, texts(got))
	assert.Empty(t, none)
}

func TestIndex_Map(t *testing.T) {
	t.Parallel()

	t.Run("resolves each field", func(t *testing.T) {
		t.Parallel()

		idx := urlx.NewIndex(mustParse(t, articleData))

		got, err := idx.Map(urlx.FieldMap{
			"pn":    {Op: urlx.OpGet, Path: "/page/info/page_num"},
			"isEnd": {Op: urlx.OpGet, Path: "/page/info/end?", Default: urlx.Bool(false)},
			"urls":  {Op: urlx.OpFind, Path: `/data/list/\d+/source/url`},
		})

		require.NoError(t, err)
		assert.True(t, urlx.Int(1).Equal(got["pn"]))
		assert.Equal(t, urlx.Bool(false), got["isEnd"])
		assert.Equal(t, []string{
			"http://www.test.com/data/A1",
			"http://www.test.com/data/A2",
			"http://www.test.com/data/A3",
		}, texts(got["urls"].Items()))
	})

	t.Run("find field falls back to truthy default", func(t *testing.T) {
		t.Parallel()

		idx := urlx.NewIndex(mustParse(t, articleData))

		got, err := idx.Map(urlx.FieldMap{
			"none":     {Op: "FIND", Path: `/nothing`},
			"fallback": {Op: urlx.OpFind, Path: `/nothing`, Default: urlx.String("n/a")},
		})

		require.NoError(t, err)
		assert.Equal(t, urlx.KindSequence, got["none"].Kind())
		assert.Equal(t, 0, got["none"].Len())
		assert.Equal(t, urlx.String("n/a"), got["fallback"])
	})

	t.Run("rejects unknown op", func(t *testing.T) {
		t.Parallel()

		idx := urlx.NewIndex(mustParse(t, articleData))

		_, err := idx.Map(urlx.FieldMap{"x": {Op: "pick", Path: "/status"}})

		assert.Equal(t, urlx.EINVALID, urlx.ErrorCode(err))
	})
}

func TestIndex_RoundTrip(t *testing.T) {
	t.Parallel()

	root := mustParse(t, articleData)
	idx := urlx.NewIndex(root)
	sentinel := urlx.String("\x00missing")

	for _, path := range idx.Paths() {
		got := idx.Get(path, sentinel)
		assert.False(t, got.Equal(sentinel), "path %q did not resolve", path)
		assert.True(t, got.Equal(urlx.Extract(root, path, sentinel)), "path %q", path)
	}
}

func TestIndex_Paths(t *testing.T) {
	t.Parallel()

	t.Run("lists root first then depth-first", func(t *testing.T) {
		t.Parallel()

		idx := urlx.NewIndex(mustParse(t, `{"b":[1,{"c":2}],"a":3}`))

		assert.Equal(t, []string{"", "/b", "/b/0", "/b/1", "/b/1/c", "/a"}, idx.Paths())
		assert.Equal(t, 6, idx.Len())
	})

	t.Run("indexes scalar root", func(t *testing.T) {
		t.Parallel()

		idx := urlx.NewIndex(urlx.String("only"))

		assert.Equal(t, []string{""}, idx.Paths())
	})

	t.Run("indexes empty container root", func(t *testing.T) {
		t.Parallel()

		idx := urlx.NewIndex(urlx.Sequence())

		assert.Equal(t, 1, idx.Len())
	})
}

func TestExtract(t *testing.T) {
	t.Parallel()

	data := mustParse(t, articleData)

	assert.Equal(t, urlx.String("A"), urlx.Extract(data, "/data/type", urlx.Null()))
	assert.True(t, urlx.Extract(data, "/data/type/name", urlx.Null()).IsNull())
	assert.Equal(t, urlx.String("test"), urlx.Extract(data, "/data/type/name", urlx.String("test")))
	assert.Equal(t, urlx.String("./A3.png"), urlx.Extract(data, "/data/list/2/source/logo", urlx.Null()))
	assert.True(t, data.Equal(urlx.Extract(data, "", urlx.Null())))
}
