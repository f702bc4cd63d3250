package services

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MarkdownExt is the extension of article files.
const MarkdownExt = ".md"

// SafeJoin joins root, sub and target. It returns "" when sub or target would
// escape root. Names that merely contain ".." (like "what..next.md") are fine.
func SafeJoin(root, sub, target string) string {
	if filepath.IsAbs(sub) || filepath.IsAbs(target) {
		return ""
	}
	joined := filepath.Join(root, sub, target)
	rel, err := filepath.Rel(filepath.Clean(root), joined)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return joined
}

// TitleFromSlug turns "event-schedule" into "Event Schedule".
func TitleFromSlug(slug string) string {
	// Casers keep state, one per call.
	return cases.Title(language.Und).String(strings.ReplaceAll(slug, "-", " "))
}

// ArticleFilename appends the Markdown extension when it is missing.
func ArticleFilename(name string) string {
	if strings.HasSuffix(name, MarkdownExt) {
		return name
	}
	return name + MarkdownExt
}

// ArticleID strips the Markdown extension from a filename.
func ArticleID(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// isSegment reports whether name is usable as a single path element.
func isSegment(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func statFile(dir, name string) (os.FileInfo, error) {
	return os.Stat(filepath.Join(dir, name))
}
