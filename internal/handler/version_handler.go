package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
	"github.com/inkwell/inkwell-backend/internal/middleware"
	"github.com/inkwell/inkwell-backend/internal/service"
)

// VersionHandler blog version history endpoints
type VersionHandler struct {
	versionService service.VersionService
}

// NewVersionHandler creates a new VersionHandler
func NewVersionHandler(versionService service.VersionService) *VersionHandler {
	return &VersionHandler{versionService: versionService}
}

// List godoc
// @Summary List a blog's version history, newest first
// @Tags versions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Success 200 {object} common.APIResponse{data=[]domain.BlogVersion}
// @Router /blogs/{id}/versions [get]
func (h *VersionHandler) List(c *gin.Context) {
	versions, err := h.versionService.GetVersions(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list versions", err)
		return
	}

	common.SuccessResponse(c, versions, nil)
}

// Create godoc
// @Summary Snapshot the blog's current content as a new version
// @Tags versions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Param request body domain.CreateVersionRequest false "Optional change note"
// @Success 201 {object} common.APIResponse{data=domain.BlogVersion}
// @Failure 404 {object} common.APIResponse
// @Router /blogs/{id}/versions [post]
func (h *VersionHandler) Create(c *gin.Context) {
	var req domain.CreateVersionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
			return
		}
	}

	version, err := h.versionService.CreateVersion(c.Param("id"), middleware.GetUserID(c), req.ChangeNote)
	if err != nil {
		if errors.Is(err, common.ErrBlogNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "blog not found", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to create version", err)
		return
	}

	middleware.CountSnapshot("manual")
	common.CreatedResponse(c, version)
}

// Get godoc
// @Summary Get a single version snapshot
// @Tags versions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Param version_id path string true "Version ID"
// @Success 200 {object} common.APIResponse{data=domain.BlogVersion}
// @Failure 404 {object} common.APIResponse
// @Router /blogs/{id}/versions/{version_id} [get]
func (h *VersionHandler) Get(c *gin.Context) {
	version, err := h.versionService.GetVersion(c.Param("version_id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to load version", err)
		return
	}
	if version == nil || version.BlogID != c.Param("id") {
		common.ErrorResponse(c, http.StatusNotFound, "version not found", nil)
		return
	}

	common.SuccessResponse(c, version, nil)
}

// Diff godoc
// @Summary Compare two version snapshots of the same blog
// @Tags versions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Param version_id path string true "Older version ID"
// @Param other_id path string true "Newer version ID"
// @Success 200 {object} common.APIResponse{data=domain.VersionComparison}
// @Failure 404 {object} common.APIResponse
// @Router /blogs/{id}/versions/{version_id}/diff/{other_id} [get]
func (h *VersionHandler) Diff(c *gin.Context) {
	comparison, err := h.versionService.CompareVersions(c.Param("version_id"), c.Param("other_id"))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrVersionNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "version not found", nil)
		case errors.Is(err, common.ErrVersionMismatch):
			common.ErrorResponse(c, http.StatusBadRequest, "versions belong to different blogs", nil)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "failed to compare versions", err)
		}
		return
	}

	common.SuccessResponse(c, comparison, nil)
}

// Restore godoc
// @Summary Restore the blog to a previous version
// @Description Saves the current state as a new version, overwrites the blog
// @Description with the target version's content, then records the restored
// @Description state as another version.
// @Tags versions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Param version_id path string true "Version ID to restore"
// @Success 200 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Router /blogs/{id}/versions/{version_id}/restore [post]
func (h *VersionHandler) Restore(c *gin.Context) {
	err := h.versionService.RestoreVersion(c.Param("id"), c.Param("version_id"), middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrBlogNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "blog not found", nil)
		case errors.Is(err, common.ErrVersionNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "version not found", nil)
		case errors.Is(err, common.ErrVersionMismatch):
			common.ErrorResponse(c, http.StatusBadRequest, "version does not belong to this blog", nil)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "failed to restore version", err)
		}
		return
	}

	middleware.CountSnapshot("restore")
	common.SuccessResponse(c, gin.H{"message": "version restored"}, nil)
}
