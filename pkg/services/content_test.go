package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeContent(t *testing.T, root, rel, content string) string {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	return full
}

func touch(t *testing.T, path string, modified time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, modified, modified))
}

func TestNewContentManagerCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "content")

	m := NewContentManager(root, nil)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, root, m.Root())
	assert.Empty(t, m.ListTabs())
}

func TestListTabs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "event-schedule"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "venue"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0755))
	writeContent(t, root, "README.md", "not a tab")

	tabs := NewContentManager(root, nil).ListTabs()

	require.Len(t, tabs, 2)
	assert.Equal(t, "event-schedule", tabs[0].ID)
	assert.Equal(t, "Event Schedule", tabs[0].Title)
	assert.Equal(t, "venue", tabs[1].ID)
	assert.Equal(t, "Venue", tabs[1].Title)
}

func TestListTabsRootIsFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "content")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0644))

	m := NewContentManager(root, nil)

	assert.NotNil(t, m.ListTabs())
	assert.Empty(t, m.ListTabs())
}

func TestGetTab(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "event-schedule"), 0755))
	m := NewContentManager(root, nil)

	tab, err := m.GetTab("event-schedule")
	require.NoError(t, err)
	assert.Equal(t, "Event Schedule", tab.Title)

	_, err = m.GetTab("missing")
	assert.ErrorIs(t, err, ErrTabNotFound)

	_, err = m.GetTab("..")
	assert.ErrorIs(t, err, ErrTabNotFound)
}

func TestGetArticleDerivedTitle(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "event-schedule/day-one.md", "Doors open at nine.\n")

	article, err := NewContentManager(root, nil).GetArticle("event-schedule", "day-one.md")

	require.NoError(t, err)
	assert.Equal(t, "day-one", article.ID)
	assert.Equal(t, "event-schedule", article.Tab)
	assert.Equal(t, "Day One", article.Title)
	assert.Contains(t, article.Content, "<p>Doors open at nine.</p>")
	assert.Empty(t, article.Metadata)
}

func TestGetArticleExplicitTitle(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "event-schedule/day-one.md", "---\ntitle: Opening Ceremony\nspeaker: Ada\n---\nWelcome.\n")

	article, err := NewContentManager(root, nil).GetArticle("event-schedule", "day-one")

	require.NoError(t, err)
	assert.Equal(t, "Opening Ceremony", article.Title)
	assert.Equal(t, "Opening Ceremony", article.Metadata["title"])
	assert.Equal(t, "Ada", article.Metadata["speaker"])
}

func TestGetArticleRendersMarkdown(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "news/hello.md", "# Hello\n")

	article, err := NewContentManager(root, nil).GetArticle("news", "hello.md")

	require.NoError(t, err)
	assert.Contains(t, article.Content, "<h1>Hello</h1>")
}

func TestGetArticleNotFound(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "news/hello.md", "# Hello\n")
	writeContent(t, t.TempDir(), "secret.md", "outside")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "news", "folder.md"), 0755))
	m := NewContentManager(root, nil)

	cases := [][2]string{
		{"missing", "hello.md"},
		{"news", "missing.md"},
		{"news", "folder.md"},
		{"..", "secret.md"},
		{"news", "../../secret.md"},
		{"", "hello.md"},
		{"news", ""},
	}
	for _, c := range cases {
		_, err := m.GetArticle(c[0], c[1])
		assert.ErrorIs(t, err, ErrArticleNotFound, "%s/%s", c[0], c[1])
		assert.True(t, IsNotFound(err))
	}
}

func TestGetArticleMalformedFrontMatter(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "news/broken.md", "---\ntitle: [unclosed\n---\nbody\n")

	_, err := NewContentManager(root, nil).GetArticle("news", "broken.md")

	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "news/broken.md")
}

func TestGetArticleIdempotent(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "news/hello.md", "---\ntitle: Hi\ntags: [a, b]\ndate: 2024-05-01T10:00:00Z\n---\n# Hello\n")
	m := NewContentManager(root, nil)

	first, err := m.GetArticle("news", "hello.md")
	require.NoError(t, err)
	second, err := m.GetArticle("news", "hello.md")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "2024-05-01T10:00:00Z", first.Metadata["date"])
}

func TestListArticles(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "news/b-post.md", "B")
	writeContent(t, root, "news/a-post.md", "---\ntitle: First\n---\nA")
	writeContent(t, root, "news/photo.png", "png")
	writeContent(t, root, "news/.draft.md", "hidden")
	writeContent(t, root, "news/sub/nested.md", "nested")
	m := NewContentManager(root, nil)

	articles, err := m.ListArticles("news")

	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "a-post", articles[0].ID)
	assert.Equal(t, "First", articles[0].Title)
	assert.Equal(t, "b-post", articles[1].ID)
	assert.Equal(t, "B Post", articles[1].Title)
	assert.Equal(t, 2, m.CountArticles("news"))
}

func TestListArticlesMissingTab(t *testing.T) {
	articles, err := NewContentManager(t.TempDir(), nil).ListArticles("missing")

	require.NoError(t, err)
	assert.NotNil(t, articles)
	assert.Empty(t, articles)
}

func TestListArticlesPropagatesParseErrors(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "news/ok.md", "fine")
	writeContent(t, root, "news/bad.md", "+++\ntitle = \n+++\n")

	_, err := NewContentManager(root, nil).ListArticles("news")

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrArticleNotFound))
}

func TestArticleNamesWithDoubleDots(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "news/what..next.md", "# Next\n")
	writeContent(t, root, "news/a..b.md", "# AB\n")
	m := NewContentManager(root, nil)

	articles, err := m.ListArticles("news")
	require.NoError(t, err)
	assert.Len(t, articles, m.CountArticles("news"))
	require.Len(t, articles, 2)
	assert.Equal(t, "a..b", articles[0].ID)
	assert.Equal(t, "what..next", articles[1].ID)

	article, err := m.GetArticle("news", "what..next")
	require.NoError(t, err)
	assert.Contains(t, article.Content, "<h1>Next</h1>")
}

func TestHiddenEntriesAreNotServed(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, ".private/secret.md", "# Secret\n")
	writeContent(t, root, ".private/map.png", "png")
	writeContent(t, root, "news/.draft.md", "# Draft\n")
	writeContent(t, root, "news/published.md", "# Published\n")
	m := NewContentManager(root, nil)

	_, err := m.GetTab(".private")
	assert.ErrorIs(t, err, ErrTabNotFound)

	for _, key := range [][2]string{{".private", "secret"}, {"news", ".draft"}, {"news", ".draft.md"}} {
		_, err := m.GetArticle(key[0], key[1])
		assert.ErrorIs(t, err, ErrArticleNotFound, "%s/%s", key[0], key[1])
	}

	_, err = m.ListMedia(".private")
	assert.ErrorIs(t, err, ErrTabNotFound)
	_, err = m.MediaPath(".private", "map.png")
	assert.ErrorIs(t, err, ErrMediaNotFound)

	articles, err := m.ListArticles("news")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "published", articles[0].ID)
}
