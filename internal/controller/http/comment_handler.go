package http

import (
	"errors"
	"net/http"

	"blogicum/internal/usecase"
	"blogicum/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
	logger         *logger.Logger
}

func NewCommentHandler(commentUseCase usecase.CommentUseCase, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{
		commentUseCase: commentUseCase,
		logger:         logger,
	}
}

// AddComment accepts POST only; any other method lands on the post.
func (h *CommentHandler) AddComment(c *gin.Context) {
	postID, ok := parseID(c.Param("id"))
	if !ok {
		renderNotFound(c)
		return
	}

	if c.Request.Method == http.MethodPost {
		var form CommentForm
		if errs := bindForm(c, &form); errs.Empty() {
			if _, err := h.commentUseCase.AddComment(postID, currentUser(c), form.Text); err != nil {
				renderError(c, h.logger, "add comment", err)
				return
			}
		}
	}

	c.Redirect(http.StatusFound, postURL(postID))
}

func (h *CommentHandler) EditComment(c *gin.Context) {
	postID, commentID, ok := commentParams(c)
	if !ok {
		renderNotFound(c)
		return
	}
	user := currentUser(c)

	comment, err := h.commentUseCase.GetOwnedComment(postID, commentID, user)
	if errors.Is(err, usecase.ErrNotOwner) {
		c.Redirect(http.StatusFound, postURL(postID))
		return
	}
	if err != nil {
		renderError(c, h.logger, "get comment", err)
		return
	}

	form := CommentForm{Text: comment.Text}
	errs := FormErrors{}

	if c.Request.Method == http.MethodPost {
		form = CommentForm{}
		if errs = bindForm(c, &form); errs.Empty() {
			if _, err := h.commentUseCase.UpdateComment(postID, commentID, user, form.Text); err != nil {
				renderError(c, h.logger, "update comment", err)
				return
			}
			c.Redirect(http.StatusFound, postURL(postID))
			return
		}
	}

	renderPage(c, http.StatusOK, "blog/comment.html", gin.H{
		"comment": comment,
		"form":    form,
		"errors":  errs,
	})
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	postID, commentID, ok := commentParams(c)
	if !ok {
		renderNotFound(c)
		return
	}
	user := currentUser(c)

	comment, err := h.commentUseCase.GetOwnedComment(postID, commentID, user)
	if errors.Is(err, usecase.ErrNotOwner) {
		c.Redirect(http.StatusFound, postURL(postID))
		return
	}
	if err != nil {
		renderError(c, h.logger, "get comment", err)
		return
	}

	if c.Request.Method == http.MethodPost {
		if err := h.commentUseCase.DeleteComment(postID, commentID, user); err != nil {
			renderError(c, h.logger, "delete comment", err)
			return
		}
		c.Redirect(http.StatusFound, postURL(postID))
		return
	}

	renderPage(c, http.StatusOK, "blog/comment.html", gin.H{
		"comment":   comment,
		"is_delete": true,
	})
}

func commentParams(c *gin.Context) (uint, uint, bool) {
	postID, ok := parseID(c.Param("id"))
	if !ok {
		return 0, 0, false
	}
	commentID, ok := parseID(c.Param("cid"))
	if !ok {
		return 0, 0, false
	}
	return postID, commentID, true
}
