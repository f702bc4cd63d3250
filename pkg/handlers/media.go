package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListMedia returns the assets stored in a tab directory.
func (h *Handler) ListMedia(c *gin.Context) {
	files, err := h.content.ListMedia(c.Param("tab"))
	if err != nil {
		h.fail(c, err, "Tab not found")
		return
	}
	c.JSON(http.StatusOK, files)
}

// ServeMedia streams a file stored next to a tab's articles.
func (h *Handler) ServeMedia(c *gin.Context) {
	path, err := h.content.MediaPath(c.Param("tab"), c.Param("file"))
	if err != nil {
		h.fail(c, err, "Media not found")
		return
	}
	c.File(path)
}
