package services

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"event-site/pkg/models"
)

// ContentManager maps the content directory to tabs and articles. It holds no
// mutable state; every call reads the filesystem afresh, so a single instance
// can serve concurrent requests.
type ContentManager struct {
	root     string
	renderer *MarkdownRenderer
}

// NewContentManager binds a manager to root, creating the directory when it is
// missing. A nil renderer gets the default Markdown options.
func NewContentManager(root string, renderer *MarkdownRenderer) *ContentManager {
	if renderer == nil {
		renderer = NewMarkdownRenderer(MarkdownOptions{})
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		slog.Warn("content directory unavailable", "path", root, "error", err)
	}
	return &ContentManager{
		root:     filepath.Clean(root),
		renderer: renderer,
	}
}

// Root returns the content directory.
func (m *ContentManager) Root() string {
	return m.root
}

// ListTabs returns one Tab per immediate subdirectory of the root, in name
// order. A missing root yields an empty list.
func (m *ContentManager) ListTabs() []models.Tab {
	tabs := []models.Tab{}
	entries, err := os.ReadDir(m.root)
	if err != nil {
		return tabs
	}
	for _, entry := range entries {
		if isHidden(entry.Name()) || !m.isDir(filepath.Join(m.root, entry.Name())) {
			continue
		}
		tabs = append(tabs, newTab(entry.Name()))
	}
	return tabs
}

// GetTab returns the tab record, or ErrTabNotFound.
func (m *ContentManager) GetTab(tab string) (*models.Tab, error) {
	if _, ok := m.tabDir(tab); !ok {
		return nil, fmt.Errorf("%w: %s", ErrTabNotFound, tab)
	}
	t := newTab(tab)
	return &t, nil
}

// ListArticles returns every Markdown article directly inside the tab, in
// filename order. Unknown tabs yield an empty list.
func (m *ContentManager) ListArticles(tab string) ([]models.Article, error) {
	articles := []models.Article{}
	for _, name := range m.articleFiles(tab) {
		article, err := m.GetArticle(tab, name)
		if errors.Is(err, ErrArticleNotFound) {
			// removed between listing and reading
			continue
		}
		if err != nil {
			return nil, err
		}
		articles = append(articles, *article)
	}
	return articles, nil
}

// CountArticles returns the number of Markdown files in the tab.
func (m *ContentManager) CountArticles(tab string) int {
	return len(m.articleFiles(tab))
}

// GetArticle loads tab/name, where name may omit the .md extension. It returns
// ErrArticleNotFound when the file does not exist, is hidden, or the key
// escapes the root.
func (m *ContentManager) GetArticle(tab, name string) (*models.Article, error) {
	if !isSegment(tab) || !isSegment(name) || isHidden(tab) || isHidden(name) {
		return nil, fmt.Errorf("%w: %s/%s", ErrArticleNotFound, tab, name)
	}
	filename := ArticleFilename(name)
	path := SafeJoin(m.root, tab, filename)
	if path == "" {
		return nil, fmt.Errorf("%w: %s/%s", ErrArticleNotFound, tab, name)
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s/%s", ErrArticleNotFound, tab, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("stat article %s/%s: %w", tab, filename, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s/%s", ErrArticleNotFound, tab, filename)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read article %s/%s: %w", tab, filename, err)
	}

	return m.buildArticle(tab, filename, content, info.ModTime())
}

func (m *ContentManager) buildArticle(tab, filename string, content []byte, modified time.Time) (*models.Article, error) {
	fm, body, _, err := ParseFrontMatter(content)
	if err != nil {
		return nil, fmt.Errorf("article %s/%s: %w", tab, filename, err)
	}

	html, err := m.renderer.Render([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("article %s/%s: %w", tab, filename, err)
	}

	id := ArticleID(filename)
	title, ok := titleFromFrontMatter(fm)
	if !ok {
		title = TitleFromSlug(id)
	}

	return &models.Article{
		ID:         id,
		Tab:        tab,
		Title:      title,
		Content:    html,
		Metadata:   canonicalizeFrontMatterForJSON(fm),
		ModifiedAt: modified.UTC(),
	}, nil
}

// articleFiles lists the Markdown filenames of a tab in name order.
func (m *ContentManager) articleFiles(tab string) []string {
	dir, ok := m.tabDir(tab)
	if !ok {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Warn("read tab directory", "tab", tab, "error", err)
		return nil
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || isHidden(name) || !strings.HasSuffix(name, MarkdownExt) {
			continue
		}
		names = append(names, name)
	}
	return names
}

// tabDir resolves the directory of a tab and reports whether it exists.
// Hidden directories are never tabs.
func (m *ContentManager) tabDir(tab string) (string, bool) {
	if !isSegment(tab) || isHidden(tab) {
		return "", false
	}
	dir := filepath.Join(m.root, tab)
	return dir, m.isDir(dir)
}

// isDir follows symlinks, so linked tab directories count as tabs.
func (m *ContentManager) isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func newTab(id string) models.Tab {
	return models.Tab{ID: id, Title: TitleFromSlug(id)}
}
