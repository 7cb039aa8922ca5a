package http

import (
	"errors"
	"mime/multipart"
	"net/http"

	"blogicum/internal/authz"
	"blogicum/internal/entity"
	"blogicum/internal/usecase"
	"blogicum/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase    usecase.PostUseCase
	commentUseCase usecase.CommentUseCase
	logger         *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, commentUseCase usecase.CommentUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase:    postUseCase,
		commentUseCase: commentUseCase,
		logger:         logger,
	}
}

func (h *PostHandler) Index(c *gin.Context) {
	result, err := h.postUseCase.Feed(c.Query("page"))
	if err != nil {
		renderError(c, h.logger, "list posts", err)
		return
	}

	renderPage(c, http.StatusOK, "blog/index.html", gin.H{
		"posts":    result.Posts,
		"page_obj": result.Page,
	})
}

func (h *PostHandler) CategoryPosts(c *gin.Context) {
	category, result, err := h.postUseCase.CategoryFeed(c.Param("slug"), c.Query("page"))
	if err != nil {
		renderError(c, h.logger, "list category posts", err)
		return
	}

	renderPage(c, http.StatusOK, "blog/category.html", gin.H{
		"category": category,
		"posts":    result.Posts,
		"page_obj": result.Page,
	})
}

// PostDetail shows a post with its comments. POST adds a comment.
func (h *PostHandler) PostDetail(c *gin.Context) {
	postID, ok := parseID(c.Param("id"))
	if !ok {
		renderNotFound(c)
		return
	}

	user := currentUser(c)
	form := CommentForm{}
	errs := FormErrors{}

	if c.Request.Method == http.MethodPost {
		if user == nil {
			redirectToLogin(c)
			return
		}
		if errs = bindForm(c, &form); errs.Empty() {
			if _, err := h.commentUseCase.AddComment(postID, user, form.Text); err != nil {
				renderError(c, h.logger, "add comment", err)
				return
			}
			c.Redirect(http.StatusFound, postURL(postID))
			return
		}
	}

	h.renderDetail(c, postID, user, form, errs)
}

func (h *PostHandler) renderDetail(c *gin.Context, postID uint, user *entity.User, form CommentForm, errs FormErrors) {
	post, comments, err := h.postUseCase.GetPost(postID, user)
	if err != nil {
		renderError(c, h.logger, "get post", err)
		return
	}

	renderPage(c, http.StatusOK, "blog/detail.html", gin.H{
		"post":     post,
		"comments": comments,
		"is_owner": authz.IsOwner(user, post),
		"form":     form,
		"errors":   errs,
	})
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	user := currentUser(c)
	form := PostForm{IsPublished: true}
	errs := FormErrors{}

	if c.Request.Method == http.MethodPost {
		form = PostForm{}
		errs = bindForm(c, &form)
		input := form.input(errs)
		input.Image = uploadedImage(c, errs)
		if errs.Empty() {
			_, err := h.postUseCase.CreatePost(user, input)
			if err == nil {
				c.Redirect(http.StatusFound, profileURL(user))
				return
			}
			if !addUseCaseError(errs, err) {
				renderError(c, h.logger, "create post", err)
				return
			}
		}
	}

	h.renderPostForm(c, nil, form, errs)
}

func (h *PostHandler) EditPost(c *gin.Context) {
	postID, ok := parseID(c.Param("id"))
	if !ok {
		renderNotFound(c)
		return
	}
	user := currentUser(c)

	post, err := h.postUseCase.GetOwnedPost(postID, user)
	if errors.Is(err, usecase.ErrNotOwner) {
		c.Redirect(http.StatusFound, postURL(postID))
		return
	}
	if err != nil {
		renderError(c, h.logger, "get post", err)
		return
	}

	form := postFormFrom(post)
	errs := FormErrors{}

	if c.Request.Method == http.MethodPost {
		form = PostForm{}
		errs = bindForm(c, &form)
		input := form.input(errs)
		input.Image = uploadedImage(c, errs)
		if errs.Empty() {
			_, err := h.postUseCase.UpdatePost(postID, user, input)
			if err == nil {
				c.Redirect(http.StatusFound, postURL(postID))
				return
			}
			if errors.Is(err, usecase.ErrNotOwner) {
				c.Redirect(http.StatusFound, postURL(postID))
				return
			}
			if !addUseCaseError(errs, err) {
				renderError(c, h.logger, "update post", err)
				return
			}
		}
	}

	h.renderPostForm(c, post, form, errs)
}

func (h *PostHandler) renderPostForm(c *gin.Context, post *entity.Post, form PostForm, errs FormErrors) {
	categories, locations, err := h.postUseCase.FormChoices()
	if err != nil {
		renderError(c, h.logger, "load form choices", err)
		return
	}

	renderPage(c, http.StatusOK, "blog/create.html", gin.H{
		"post":       post,
		"form":       form,
		"errors":     errs,
		"categories": categories,
		"locations":  locations,
	})
}

// DeletePost asks for confirmation on GET and deletes on POST.
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, ok := parseID(c.Param("id"))
	if !ok {
		renderNotFound(c)
		return
	}
	user := currentUser(c)

	if c.Request.Method == http.MethodPost {
		_, err := h.postUseCase.DeletePost(postID, user)
		switch {
		case err == nil:
			c.Redirect(http.StatusFound, profileURL(user))
		case errors.Is(err, usecase.ErrNotOwner):
			c.Redirect(http.StatusFound, postURL(postID))
		default:
			renderError(c, h.logger, "delete post", err)
		}
		return
	}

	post, err := h.postUseCase.GetOwnedPost(postID, user)
	if errors.Is(err, usecase.ErrNotOwner) {
		c.Redirect(http.StatusFound, postURL(postID))
		return
	}
	if err != nil {
		renderError(c, h.logger, "get post", err)
		return
	}

	renderPage(c, http.StatusOK, "blog/create.html", gin.H{
		"post":      post,
		"is_delete": true,
	})
}

func uploadedImage(c *gin.Context, errs FormErrors) *multipart.FileHeader {
	file, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	if err != nil {
		errs.Add("image", "Загрузите правильное изображение.")
		return nil
	}
	return file
}
