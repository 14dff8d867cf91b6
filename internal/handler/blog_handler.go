package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
	"github.com/inkwell/inkwell-backend/internal/middleware"
	"github.com/inkwell/inkwell-backend/internal/service"
)

// BlogHandler blog CRUD endpoints
type BlogHandler struct {
	blogService service.BlogService
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blogService service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// List godoc
// @Summary List blogs
// @Tags blogs
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param published query bool false "Filter by published state"
// @Param author_id query string false "Filter by author"
// @Param search query string false "Search title and content"
// @Success 200 {object} common.APIResponse{data=[]domain.Blog}
// @Router /blogs [get]
func (h *BlogHandler) List(c *gin.Context) {
	opts := domain.BlogListOptions{
		AuthorID: c.Query("author_id"),
		Search:   c.Query("search"),
	}
	opts.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	opts.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	if raw, ok := c.GetQuery("published"); ok {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "published must be a boolean", err)
			return
		}
		opts.Published = &published
	}

	// Anonymous callers only see published blogs regardless of the filter
	if middleware.GetUserID(c) == "" {
		published := true
		opts.Published = &published
	}

	blogs, total, err := h.blogService.ListBlogs(opts)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list blogs", err)
		return
	}

	common.SuccessResponse(c, blogs, &common.Meta{
		Page:  opts.Page,
		Limit: opts.Limit,
		Total: total,
	})
}

// Get godoc
// @Summary Get a blog by id
// @Tags blogs
// @Produce json
// @Param id path string true "Blog ID"
// @Success 200 {object} common.APIResponse{data=domain.Blog}
// @Failure 404 {object} common.APIResponse
// @Router /blogs/{id} [get]
func (h *BlogHandler) Get(c *gin.Context) {
	blog, err := h.blogService.GetBlog(c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrBlogNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "blog not found", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to load blog", err)
		return
	}

	common.SuccessResponse(c, blog, nil)
}

// GetBySlug godoc
// @Summary Get a blog by slug
// @Tags blogs
// @Produce json
// @Param slug path string true "Blog slug"
// @Success 200 {object} common.APIResponse{data=domain.Blog}
// @Failure 404 {object} common.APIResponse
// @Router /blogs/slug/{slug} [get]
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	blog, err := h.blogService.GetBlogBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, common.ErrBlogNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "blog not found", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to load blog", err)
		return
	}

	common.SuccessResponse(c, blog, nil)
}

// Create godoc
// @Summary Create a blog
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.CreateBlogRequest true "Blog payload"
// @Success 201 {object} common.APIResponse{data=domain.Blog}
// @Failure 409 {object} common.APIResponse
// @Router /blogs [post]
func (h *BlogHandler) Create(c *gin.Context) {
	var req domain.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	blog, err := h.blogService.CreateBlog(&req, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, common.ErrSlugTaken) {
			common.ErrorResponse(c, http.StatusConflict, "slug already in use", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to create blog", err)
		return
	}

	common.CreatedResponse(c, blog)
}

// Update godoc
// @Summary Update a blog
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Param request body domain.UpdateBlogRequest true "Fields to update"
// @Success 200 {object} common.APIResponse{data=domain.Blog}
// @Failure 404 {object} common.APIResponse
// @Router /blogs/{id} [put]
func (h *BlogHandler) Update(c *gin.Context) {
	var req domain.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	blog, err := h.blogService.UpdateBlog(c.Param("id"), &req, middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrBlogNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "blog not found", nil)
		case errors.Is(err, common.ErrSlugTaken):
			common.ErrorResponse(c, http.StatusConflict, "slug already in use", nil)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "failed to update blog", err)
		}
		return
	}

	common.SuccessResponse(c, blog, nil)
}

// Delete godoc
// @Summary Delete a blog
// @Tags blogs
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Success 200 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Router /blogs/{id} [delete]
func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.blogService.DeleteBlog(c.Param("id")); err != nil {
		if errors.Is(err, common.ErrBlogNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "blog not found", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to delete blog", err)
		return
	}

	common.SuccessResponse(c, gin.H{"message": "blog deleted"}, nil)
}
