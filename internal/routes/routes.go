package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwell/inkwell-backend/internal/domain"
	"github.com/inkwell/inkwell-backend/internal/handler"
	"github.com/inkwell/inkwell-backend/internal/middleware"
	"github.com/inkwell/inkwell-backend/pkg/jwt"
)

// Handlers bundles the handler set wired by main
type Handlers struct {
	Auth     *handler.AuthHandler
	Blog     *handler.BlogHandler
	Version  *handler.VersionHandler
	Settings *handler.SettingsHandler
	Media    *handler.MediaHandler
}

// Setup registers all API routes under /api/v1
func Setup(router *gin.Engine, h Handlers, jwtManager *jwt.Manager) {
	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", middleware.JWTAuth(jwtManager), h.Auth.Me)
	}

	// Public read surface. The list endpoint recognizes a token when one is
	// sent so authors can see their drafts; anonymous callers only see
	// published blogs.
	api.GET("/blogs", middleware.OptionalJWTAuth(jwtManager), h.Blog.List)
	api.GET("/blogs/:id", h.Blog.Get)
	api.GET("/blogs/slug/:slug", h.Blog.GetBySlug)
	api.GET("/settings", h.Settings.List)
	api.GET("/settings/:key", h.Settings.Get)

	// Authoring surface
	authed := api.Group("", middleware.JWTAuth(jwtManager))
	{
		authed.POST("/blogs", h.Blog.Create)
		authed.PUT("/blogs/:id", h.Blog.Update)
		authed.DELETE("/blogs/:id", h.Blog.Delete)

		authed.GET("/blogs/:id/versions", h.Version.List)
		authed.POST("/blogs/:id/versions", h.Version.Create)
		authed.GET("/blogs/:id/versions/:version_id", h.Version.Get)
		authed.GET("/blogs/:id/versions/:version_id/diff/:other_id", h.Version.Diff)
		authed.POST("/blogs/:id/versions/:version_id/restore", h.Version.Restore)

		authed.POST("/media/upload", h.Media.Upload)

		admin := authed.Group("", middleware.RequireRole(domain.RoleAdmin))
		{
			admin.PUT("/settings/:key", h.Settings.Set)
			admin.DELETE("/settings/:key", h.Settings.Delete)
		}
	}
}
