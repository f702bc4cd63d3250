package services

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"event-site/pkg/models"
)

// MediaURLPrefix is where tab media is served.
const MediaURLPrefix = "/media/"

// ListMedia returns the non-Markdown files stored in a tab directory.
func (m *ContentManager) ListMedia(tab string) ([]models.MediaFile, error) {
	dir, ok := m.tabDir(tab)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTabNotFound, tab)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read tab %s: %w", tab, err)
	}

	files := []models.MediaFile{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || isHidden(name) || strings.HasSuffix(name, MarkdownExt) {
			continue
		}

		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		files = append(files, models.MediaFile{
			Name: name,
			Path: path.Join(tab, name),
			Size: info.Size(),
			URL:  MediaURL(tab, name),
		})
	}
	return files, nil
}

// MediaPath resolves a servable media file inside a tab. Markdown sources are
// not media.
func (m *ContentManager) MediaPath(tab, name string) (string, error) {
	if !isSegment(tab) || !isSegment(name) || isHidden(tab) || isHidden(name) || strings.HasSuffix(name, MarkdownExt) {
		return "", fmt.Errorf("%w: %s/%s", ErrMediaNotFound, tab, name)
	}

	fullPath := SafeJoin(m.root, tab, name)
	if fullPath == "" {
		return "", fmt.Errorf("%w: %s/%s", ErrMediaNotFound, tab, name)
	}

	info, err := os.Stat(fullPath)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s/%s", ErrMediaNotFound, tab, name)
	}
	return fullPath, nil
}

// MediaURL is the public URL of a media file.
func MediaURL(tab, name string) string {
	return MediaURLPrefix + url.PathEscape(tab) + "/" + url.PathEscape(name)
}
