package services

import (
	"errors"
	"log/slog"
	"sort"
	"time"

	"event-site/pkg/models"
)

type articleStamp struct {
	tab      string
	filename string
	modified time.Time
}

// RecentArticles returns up to limit articles across all tabs, most recently
// modified first. Equal timestamps are ordered by tab, then filename. Articles
// that fail to load are logged and skipped so one bad file cannot hide the rest.
func (m *ContentManager) RecentArticles(limit int) ([]models.Article, error) {
	articles := []models.Article{}
	if limit <= 0 {
		return articles, nil
	}

	var stamps []articleStamp
	for _, tab := range m.ListTabs() {
		dir, _ := m.tabDir(tab.ID)
		for _, name := range m.articleFiles(tab.ID) {
			info, err := statFile(dir, name)
			if err != nil {
				continue
			}
			stamps = append(stamps, articleStamp{tab: tab.ID, filename: name, modified: info.ModTime()})
		}
	}

	sort.Slice(stamps, func(i, j int) bool {
		a, b := stamps[i], stamps[j]
		if !a.modified.Equal(b.modified) {
			return a.modified.After(b.modified)
		}
		if a.tab != b.tab {
			return a.tab < b.tab
		}
		return a.filename < b.filename
	})

	for _, stamp := range stamps {
		if len(articles) == limit {
			break
		}
		article, err := m.GetArticle(stamp.tab, stamp.filename)
		if errors.Is(err, ErrArticleNotFound) {
			continue
		}
		if err != nil {
			slog.Warn("skip recent article", "tab", stamp.tab, "file", stamp.filename, "error", err)
			continue
		}
		articles = append(articles, *article)
	}
	return articles, nil
}
