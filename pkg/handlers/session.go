package handlers

import (
	"log/slog"

	"event-site/pkg/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionLastTab     = "last_tab"
	sessionLastArticle = "last_article"
	sessionLastTitle   = "last_title"
)

// LastViewed is the article offered as "continue reading" on the home page.
type LastViewed struct {
	Tab   string
	ID    string
	Title string
}

func rememberArticle(c *gin.Context, article *models.Article) {
	session := sessions.Default(c)
	session.Set(sessionLastTab, article.Tab)
	session.Set(sessionLastArticle, article.ID)
	session.Set(sessionLastTitle, article.Title)
	if err := session.Save(); err != nil {
		slog.Warn("save session", "error", err, "request_id", RequestID(c))
	}
}

func lastViewedArticle(c *gin.Context) *LastViewed {
	session := sessions.Default(c)
	tab, _ := session.Get(sessionLastTab).(string)
	id, _ := session.Get(sessionLastArticle).(string)
	title, _ := session.Get(sessionLastTitle).(string)
	if tab == "" || id == "" {
		return nil
	}
	return &LastViewed{Tab: tab, ID: id, Title: title}
}
