package http

import (
	"errors"
	"net/http"
	"strconv"

	"blogicum/internal/entity"
	"blogicum/internal/repo/persistent"
	"blogicum/internal/usecase"
	"blogicum/pkg/logger"
	"blogicum/pkg/paginator"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUseCase usecase.AdminUseCase
	logger       *logger.Logger
}

func NewAdminHandler(adminUseCase usecase.AdminUseCase, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
		logger:       logger,
	}
}

type CategoryRequest struct {
	Title       string `json:"title" binding:"required,max=256"`
	Description string `json:"description"`
	Slug        string `json:"slug" binding:"max=64"`
	IsPublished *bool  `json:"is_published"`
}

type LocationRequest struct {
	Name        string `json:"name" binding:"required,max=256"`
	IsPublished *bool  `json:"is_published"`
}

type PublishRequest struct {
	IsPublished *bool `json:"is_published" binding:"required"`
}

type ListResponse struct {
	Count    int64       `json:"count"`
	Page     int         `json:"page"`
	NumPages int         `json:"num_pages"`
	Results  interface{} `json:"results"`
}

func listResponse(page paginator.Page, results interface{}) ListResponse {
	return ListResponse{
		Count:    page.Total,
		Page:     page.Number,
		NumPages: page.NumPages,
		Results:  results,
	}
}

// ListCategories godoc
// @Summary      List categories
// @Description  Search by title or slug, filter by publication, newest first
// @Tags         admin
// @Produce      json
// @Param        search query string false "Search in title and slug"
// @Param        is_published query bool false "Filter by publication"
// @Param        page query int false "Page number"
// @Success      200  {object}  ListResponse
// @Failure      403  {object}  map[string]string
// @Router       /categories [get]
func (h *AdminHandler) ListCategories(c *gin.Context) {
	filter := persistent.CatalogFilter{
		Search:      c.Query("search"),
		IsPublished: queryBool(c, "is_published"),
	}

	result, err := h.adminUseCase.ListCategories(filter, c.Query("page"))
	if err != nil {
		h.logger.Error("Failed to list categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, listResponse(result.Page, result.Items))
}

// CreateCategory godoc
// @Summary      Create a category
// @Description  The slug is generated from the title when omitted
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        category body CategoryRequest true "Category"
// @Success      201  {object}  entity.Category
// @Failure      400  {object}  map[string]string
// @Router       /categories [post]
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.adminUseCase.CreateCategory(usecase.CategoryInput{
		Title:       req.Title,
		Description: req.Description,
		Slug:        req.Slug,
		IsPublished: req.IsPublished == nil || *req.IsPublished,
	})
	if err != nil {
		h.writeError(c, "create category", err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary      Publish or hide a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path int true "Category ID"
// @Param        body body PublishRequest true "Publication flag"
// @Success      200  {object}  entity.Category
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /categories/{id} [patch]
func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	id, published, ok := h.bindPublish(c)
	if !ok {
		return
	}

	category, err := h.adminUseCase.SetCategoryPublished(id, published)
	if err != nil {
		h.writeError(c, "update category", err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// ListLocations godoc
// @Summary      List locations
// @Tags         admin
// @Produce      json
// @Param        search query string false "Search in name"
// @Param        is_published query bool false "Filter by publication"
// @Param        page query int false "Page number"
// @Success      200  {object}  ListResponse
// @Router       /locations [get]
func (h *AdminHandler) ListLocations(c *gin.Context) {
	filter := persistent.CatalogFilter{
		Search:      c.Query("search"),
		IsPublished: queryBool(c, "is_published"),
	}

	result, err := h.adminUseCase.ListLocations(filter, c.Query("page"))
	if err != nil {
		h.logger.Error("Failed to list locations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch locations"})
		return
	}

	c.JSON(http.StatusOK, listResponse(result.Page, result.Items))
}

// CreateLocation godoc
// @Summary      Create a location
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        location body LocationRequest true "Location"
// @Success      201  {object}  entity.Location
// @Failure      400  {object}  map[string]string
// @Router       /locations [post]
func (h *AdminHandler) CreateLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location, err := h.adminUseCase.CreateLocation(usecase.LocationInput{
		Name:        req.Name,
		IsPublished: req.IsPublished == nil || *req.IsPublished,
	})
	if err != nil {
		h.writeError(c, "create location", err)
		return
	}

	c.JSON(http.StatusCreated, location)
}

// UpdateLocation godoc
// @Summary      Publish or hide a location
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path int true "Location ID"
// @Param        body body PublishRequest true "Publication flag"
// @Success      200  {object}  entity.Location
// @Failure      404  {object}  map[string]string
// @Router       /locations/{id} [patch]
func (h *AdminHandler) UpdateLocation(c *gin.Context) {
	id, published, ok := h.bindPublish(c)
	if !ok {
		return
	}

	location, err := h.adminUseCase.SetLocationPublished(id, published)
	if err != nil {
		h.writeError(c, "update location", err)
		return
	}
	c.JSON(http.StatusOK, location)
}

// ListPosts godoc
// @Summary      List posts
// @Description  Search by title or text, filter by publication and category, newest first
// @Tags         admin
// @Produce      json
// @Param        search query string false "Search in title and text"
// @Param        is_published query bool false "Filter by publication"
// @Param        category query int false "Filter by category ID"
// @Param        page query int false "Page number"
// @Success      200  {object}  ListResponse
// @Router       /posts [get]
func (h *AdminHandler) ListPosts(c *gin.Context) {
	filter := persistent.PostFilter{
		Search:      c.Query("search"),
		IsPublished: queryBool(c, "is_published"),
	}
	if id, ok := parseID(c.Query("category")); ok {
		filter.CategoryID = &id
	}

	result, err := h.adminUseCase.ListPosts(filter, c.Query("page"))
	if err != nil {
		h.logger.Error("Failed to list posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, listResponse(result.Page, result.Posts))
}

// UpdatePost godoc
// @Summary      Publish or hide a post
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path int true "Post ID"
// @Param        body body PublishRequest true "Publication flag"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [patch]
func (h *AdminHandler) UpdatePost(c *gin.Context) {
	id, published, ok := h.bindPublish(c)
	if !ok {
		return
	}

	post, err := h.adminUseCase.SetPostPublished(id, published)
	if err != nil {
		h.writeError(c, "update post", err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *AdminHandler) bindPublish(c *gin.Context) (uint, bool, bool) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false, false
	}

	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, false, false
	}
	return id, *req.IsPublished, true
}

func (h *AdminHandler) writeError(c *gin.Context, action string, err error) {
	var verr *usecase.ValidationError
	switch {
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Err.Error(), "field": verr.Field})
	default:
		h.logger.Error("Failed to %s: %v", action, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func queryBool(c *gin.Context, key string) *bool {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
