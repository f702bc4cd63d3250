package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"event-site/pkg/config"
	"event-site/pkg/models"
	"event-site/pkg/services"

	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/"

// isAPIRequest decides between JSON and HTML error bodies.
func isAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, apiPrefix)
}

// fail maps a content error to a 404 or a 500 response.
func (h *Handler) fail(c *gin.Context, err error, notFoundMessage string) {
	if services.IsNotFound(err) {
		h.notFound(c, notFoundMessage)
		return
	}
	h.internalError(c, err)
}

func (h *Handler) notFound(c *gin.Context, message string) {
	if isAPIRequest(c) {
		c.AbortWithStatusJSON(http.StatusNotFound, models.ErrorResponse{Error: message})
		return
	}
	c.HTML(http.StatusNotFound, "404.html", h.pageData(gin.H{"Title": "Page not found"}))
	c.Abort()
}

func (h *Handler) internalError(c *gin.Context, err error) {
	h.metrics.RenderError()
	slog.Error("internal error",
		"error", err,
		"path", c.Request.URL.Path,
		"request_id", RequestID(c),
	)
	_ = c.Error(err)

	if isAPIRequest(c) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}
	// No navigation here: listing tabs may be what failed.
	c.HTML(http.StatusInternalServerError, "500.html", gin.H{"Title": "Error", "Version": config.Version})
	c.Abort()
}

// NotFound handles requests that match no route.
func (h *Handler) NotFound(c *gin.Context) {
	h.notFound(c, "Endpoint not found")
}

// Recover is the gin.CustomRecovery callback.
func (h *Handler) Recover(c *gin.Context, recovered any) {
	h.internalError(c, fmt.Errorf("panic: %v", recovered))
}
