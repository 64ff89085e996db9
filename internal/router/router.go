package router

import (
	"github.com/giganoto/fast-beta/internal/auth"
	"github.com/giganoto/fast-beta/internal/config"
	"github.com/giganoto/fast-beta/internal/handler"
	"github.com/giganoto/fast-beta/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SetupRouter wires middlewares and the API route table.
// Blog/category/tag reads are public; every mutation and the auth
// probes sit behind RequireAuth.
func SetupRouter(cfg *config.Config, db *gorm.DB, issuer *auth.Issuer, store auth.RevocationStore, logger zerolog.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery())

	verifier := auth.NewVerifier(cfg.JWT.Secret, store, db)
	pageSize := cfg.App.PageSize

	api := r.Group("/api")

	// ====== auth ======
	authHandler := handler.NewAuthHandler(db, issuer, store, cfg.Google)
	authGroup := api.Group("/auth")
	authGroup.GET("/login", authHandler.Login)
	authGroup.GET("/login/callback", authHandler.Callback)

	authProtected := authGroup.Group("")
	authProtected.Use(middleware.RequireAuth(verifier))
	authProtected.POST("/logout", authHandler.Logout)
	authProtected.GET("/secure-ping", authHandler.SecurePing)
	authProtected.GET("/me", authHandler.Me)

	// ====== blog ======
	blogHandler := handler.NewBlogHandler(db, pageSize)
	categoryHandler := handler.NewCategoryHandler(db, pageSize)
	tagHandler := handler.NewTagHandler(db, pageSize)

	blog := api.Group("/blog")

	// public reads
	blog.GET("/all", blogHandler.ListBlogs)
	blog.GET("/all-by-category/:category_id", blogHandler.ListBlogsByCategory)
	blog.GET("/all-by-tag/:tag_id", blogHandler.ListBlogsByTag)
	blog.GET("/:blog_id", blogHandler.GetBlog)
	blog.GET("/category/all", categoryHandler.ListCategories)
	blog.GET("/tag/all", tagHandler.ListTags)

	// gated writes
	protected := blog.Group("")
	protected.Use(
		middleware.RequireAuth(verifier),
		middleware.AuditMiddleware(db),
	)
	protected.POST("", blogHandler.CreateBlog)
	protected.PUT("/:blog_id", blogHandler.UpdateBlog)
	protected.DELETE("/:blog_id", blogHandler.DeleteBlog)

	protected.POST("/category", categoryHandler.CreateCategory)
	protected.PATCH("/category/:category_id", categoryHandler.UpdateCategory)
	protected.DELETE("/category/:category_id", categoryHandler.DeleteCategory)

	protected.POST("/tag", tagHandler.CreateTag)
	protected.PATCH("/tag/:tag_id", tagHandler.UpdateTag)
	protected.DELETE("/tag/:tag_id", tagHandler.DeleteTag)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	// ====== admin ======
	logHandler := handler.NewLogHandler(db, pageSize)
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(verifier))
	admin.GET("/logs", logHandler.ListLogs)

	return r
}
