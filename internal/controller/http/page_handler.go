package http

import (
	"errors"
	"fmt"
	"net/http"

	"blogicum/internal/entity"
	"blogicum/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	logger *logger.Logger
}

func NewPageHandler(logger *logger.Logger) *PageHandler {
	return &PageHandler{logger: logger}
}

func (h *PageHandler) About(c *gin.Context) {
	renderPage(c, http.StatusOK, "pages/about.html", nil)
}

func (h *PageHandler) Rules(c *gin.Context) {
	renderPage(c, http.StatusOK, "pages/rules.html", nil)
}

func (h *PageHandler) NotFound(c *gin.Context) {
	renderNotFound(c)
}

func (h *PageHandler) CSRFFailure(c *gin.Context) {
	renderPage(c, http.StatusForbidden, "pages/403csrf.html", nil)
	c.Abort()
}

// Recovery logs the panic and answers with the 500 page.
func (h *PageHandler) Recovery(c *gin.Context, recovered any) {
	h.logger.Error("Panic while serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
	renderServerError(c)
	c.Abort()
}

func renderNotFound(c *gin.Context) {
	renderPage(c, http.StatusNotFound, "pages/404.html", nil)
}

func renderServerError(c *gin.Context) {
	renderPage(c, http.StatusInternalServerError, "pages/500.html", nil)
}

// renderError answers not-found errors with the 404 page and logs anything else.
func renderError(c *gin.Context, log *logger.Logger, action string, err error) {
	if errors.Is(err, entity.ErrNotFound) {
		renderNotFound(c)
		return
	}
	log.Error("Failed to %s: %v", action, err)
	renderServerError(c)
}

func postURL(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}
