package handlers

import (
	"net/http"
	"strconv"

	"event-site/pkg/config"
	"event-site/pkg/models"

	"github.com/gin-gonic/gin"
)

// Health is the API health check.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthStatus{
		Status:  "healthy",
		Message: "API is running",
	})
}

// Info describes the API.
func (h *Handler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, models.APIInfo{
		Version:     config.Version,
		Description: config.Description,
	})
}

func (h *Handler) ListTabs(c *gin.Context) {
	c.JSON(http.StatusOK, h.content.ListTabs())
}

func (h *Handler) GetTab(c *gin.Context) {
	tab, err := h.content.GetTab(c.Param("tab"))
	if err != nil {
		h.fail(c, err, "Tab not found")
		return
	}
	c.JSON(http.StatusOK, tab)
}

func (h *Handler) ListArticles(c *gin.Context) {
	tab := c.Param("tab")
	articles, err := h.content.ListArticles(tab)
	if err != nil {
		h.fail(c, err, "Tab not found")
		return
	}
	h.metrics.ArticlesRendered(tab, len(articles))
	c.JSON(http.StatusOK, articles)
}

func (h *Handler) GetArticle(c *gin.Context) {
	article, err := h.content.GetArticle(c.Param("tab"), c.Param("articleId"))
	if err != nil {
		h.fail(c, err, "Article not found")
		return
	}
	h.metrics.ArticlesRendered(article.Tab, 1)
	c.JSON(http.StatusOK, article)
}

// RecentArticles serves /api/recent?limit=N.
func (h *Handler) RecentArticles(c *gin.Context) {
	limit := h.cfg.RecentLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = min(n, config.MaxRecentLimit)
	}

	articles, err := h.content.RecentArticles(limit)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	for _, a := range articles {
		h.metrics.ArticlesRendered(a.Tab, 1)
	}
	c.JSON(http.StatusOK, articles)
}
