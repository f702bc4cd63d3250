package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentArticles(t *testing.T) {
	root := t.TempDir()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	files := []struct {
		rel string
		age time.Duration
	}{
		{"schedule/day-one.md", 6 * time.Hour},
		{"schedule/day-two.md", 1 * time.Hour},
		{"venue/parking.md", 3 * time.Hour},
		{"venue/map.md", 5 * time.Hour},
		{"news/launch.md", 2 * time.Hour},
		{"news/recap.md", 4 * time.Hour},
		{"news/old.md", 48 * time.Hour},
	}
	for _, f := range files {
		path := writeContent(t, root, f.rel, "# "+f.rel)
		touch(t, path, base.Add(-f.age))
	}
	writeContent(t, root, "venue/floor.png", "png")

	recent, err := NewContentManager(root, nil).RecentArticles(5)

	require.NoError(t, err)
	require.Len(t, recent, 5)

	var keys []string
	for _, a := range recent {
		keys = append(keys, a.Tab+"/"+a.ID)
	}
	assert.Equal(t, []string{
		"schedule/day-two",
		"news/launch",
		"venue/parking",
		"news/recap",
		"venue/map",
	}, keys)

	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i].ModifiedAt.After(recent[i-1].ModifiedAt))
	}
}

func TestRecentArticlesTiesAndLimits(t *testing.T) {
	root := t.TempDir()
	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for _, rel := range []string{"b/two.md", "a/two.md", "a/one.md"} {
		touch(t, writeContent(t, root, rel, "x"), stamp)
	}
	m := NewContentManager(root, nil)

	all, err := m.RecentArticles(10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Tab)
	assert.Equal(t, "one", all[0].ID)
	assert.Equal(t, "a", all[1].Tab)
	assert.Equal(t, "two", all[1].ID)
	assert.Equal(t, "b", all[2].Tab)

	none, err := m.RecentArticles(0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRecentArticlesEmptyStore(t *testing.T) {
	recent, err := NewContentManager(t.TempDir(), nil).RecentArticles(5)

	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestRecentArticlesSkipsBrokenFiles(t *testing.T) {
	root := t.TempDir()
	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	touch(t, writeContent(t, root, "a/bad.md", "---\ntitle: [oops\n---\n"), stamp.Add(time.Hour))
	touch(t, writeContent(t, root, "a/good.md", "# Good"), stamp)

	recent, err := NewContentManager(root, nil).RecentArticles(1)

	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "good", recent[0].ID)
}
