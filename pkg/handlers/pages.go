package handlers

import (
	"net/http"

	"event-site/pkg/config"
	"event-site/pkg/models"

	"github.com/gin-gonic/gin"
)

// pageData adds the navigation and footer values every page needs.
func (h *Handler) pageData(data gin.H) gin.H {
	page := gin.H{
		"Tabs":    h.content.ListTabs(),
		"Version": config.Version,
	}
	for k, v := range data {
		page[k] = v
	}
	return page
}

// RootHealth is the root-level health check kept for older monitors.
func (h *Handler) RootHealth(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthStatus{
		Status:  "healthy",
		Message: "Event Information Website API is running",
		Version: config.Version,
	})
}

// Index renders the home page.
func (h *Handler) Index(c *gin.Context) {
	recent, err := h.content.RecentArticles(h.cfg.RecentLimit)
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.HTML(http.StatusOK, "index.html", h.pageData(gin.H{
		"Recent":     recent,
		"LastViewed": lastViewedArticle(c),
	}))
}

// ViewTab renders the article list of a tab.
func (h *Handler) ViewTab(c *gin.Context) {
	tab, err := h.content.GetTab(c.Param("tab"))
	if err != nil {
		h.fail(c, err, "")
		return
	}

	articles, err := h.content.ListArticles(tab.ID)
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.HTML(http.StatusOK, "tab.html", h.pageData(gin.H{
		"Title":    tab.Title,
		"Tab":      tab,
		"Articles": articles,
	}))
}

// ViewArticle renders one article.
func (h *Handler) ViewArticle(c *gin.Context) {
	article, err := h.content.GetArticle(c.Param("tab"), c.Param("articleId"))
	if err != nil {
		h.fail(c, err, "")
		return
	}
	h.metrics.ArticlesRendered(article.Tab, 1)
	rememberArticle(c, article)

	tab, err := h.content.GetTab(article.Tab)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	c.HTML(http.StatusOK, "article.html", h.pageData(gin.H{
		"Title":   article.Title,
		"Tab":     tab,
		"Article": article,
	}))
}
