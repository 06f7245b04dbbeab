package routes

import (
	"net/http"

	adminapi "zozikafe/internal/api/admin"
	authapi "zozikafe/internal/api/auth"
	siteapi "zozikafe/internal/api/site"
	"zozikafe/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

// Deps are the handlers and shared services the router mounts.
type Deps struct {
	Site    *siteapi.Handler
	Admin   *adminapi.Handler
	Auth    *authapi.Handler
	Prefs   middleware.SiteDefault
	Metrics http.Handler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middleware.RequestID(), middleware.Tracing("zozikafe"))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics))
	}

	lang := middleware.Language(d.Prefs)

	public := r.Group("/")
	public.Use(lang)
	public.GET("/", d.Site.Home)
	public.GET("/api/machines", d.Site.ListMachines)
	public.POST("/lang", d.Site.SetLanguage)

	// Gate pages take the raw password, so no sanitizing here
	gate := r.Group("/admin")
	gate.Use(lang)
	gate.GET("/login", d.Auth.LoginPage)
	gate.POST("/login", d.Auth.Login)
	gate.POST("/logout", d.Auth.Logout)

	guard := []gin.HandlerFunc{
		middleware.AuthMiddleware(d.Auth.Secret()),
		middleware.RequireRole(middleware.RoleAdmin),
		middleware.SanitizeAndCleanInputMiddleware(),
	}

	// Admin pages
	admin := r.Group("/admin")
	admin.Use(guard...)
	admin.Use(lang)
	admin.GET("", d.Admin.Dashboard)
	admin.POST("/machines", d.Admin.Save)
	admin.POST("/machines/cancel", d.Admin.Cancel)
	admin.POST("/machines/rows", d.Admin.Rows)
	admin.POST("/machines/:id/edit", d.Admin.Edit)
	admin.GET("/machines/:id/delete", d.Admin.ConfirmDelete)
	admin.POST("/machines/:id/delete", d.Admin.Delete)
	admin.POST("/machines/:id/toggle", d.Admin.Toggle)
	admin.POST("/language", d.Admin.SetSiteLanguage)

	// Admin JSON API
	api := r.Group("/api/admin")
	api.Use(guard...)
	api.GET("/machines", d.Admin.ListMachines)
	api.GET("/summary", d.Admin.GetSummary)
	api.POST("/machines", d.Admin.CreateMachine)
	api.PUT("/machines/:id", d.Admin.UpdateMachine)
	api.DELETE("/machines/:id", d.Admin.DeleteMachine)
	api.POST("/machines/:id/toggle", d.Admin.ToggleMachine)
}
