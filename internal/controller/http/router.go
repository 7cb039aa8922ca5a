package http

import (
	"net/http"
	"time"

	"blogicum/internal/usecase"
	"blogicum/pkg/logger"
	"blogicum/pkg/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Post    *PostHandler
	Comment *CommentHandler
	Profile *ProfileHandler
	Auth    *AuthHandler
	Admin   *AdminHandler
	Pages   *PageHandler
}

type RouterConfig struct {
	Cookies        SessionCookies
	RedisClient    *redis.Client
	AuthRateLimit  int
	AuthRateWindow time.Duration
	AdminOrigins   []string
}

func NewRouter(h Handlers, authUseCase usecase.AuthUseCase, cfg RouterConfig, log *logger.Logger) (*gin.Engine, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.HTMLRender = renderer
	r.MaxMultipartMemory = 8 << 20

	r.Use(gin.LoggerWithWriter(log.Writer()))
	r.Use(gin.CustomRecovery(h.Pages.Recovery))
	r.Use(SessionMiddleware(authUseCase, cfg.Cookies, log))
	r.Use(middleware.CSRFMiddleware(cfg.Cookies.Secure, h.Pages.CSRFFailure))

	r.NoRoute(h.Pages.NotFound)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.StaticFS("/static", StaticFiles())

	r.GET("/", h.Post.Index)
	r.GET("/category/:slug/", h.Post.CategoryPosts)
	r.GET("/posts/:id/", h.Post.PostDetail)
	r.POST("/posts/:id/", h.Post.PostDetail)

	r.GET("/pages/about/", h.Pages.About)
	r.GET("/pages/rules/", h.Pages.Rules)

	r.GET("/profile/:username/", h.Profile.Profile)

	authLimit := middleware.RateLimitMiddleware(cfg.RedisClient, cfg.AuthRateLimit, cfg.AuthRateWindow)
	r.GET("/auth/login/", h.Auth.Login)
	r.POST("/auth/login/", authLimit, h.Auth.Login)
	r.POST("/auth/logout/", h.Auth.Logout)
	r.GET("/reg/auth/registration/", h.Auth.Register)
	r.POST("/reg/auth/registration/", authLimit, h.Auth.Register)

	protected := r.Group("")
	protected.Use(RequireLogin())
	{
		protected.GET("/posts/create/", h.Post.CreatePost)
		protected.POST("/posts/create/", h.Post.CreatePost)
		protected.GET("/posts/:id/edit/", h.Post.EditPost)
		protected.POST("/posts/:id/edit/", h.Post.EditPost)
		protected.GET("/posts/:id/delete/", h.Post.DeletePost)
		protected.POST("/posts/:id/delete/", h.Post.DeletePost)

		protected.GET("/posts/:id/comment/", h.Comment.AddComment)
		protected.POST("/posts/:id/comment/", h.Comment.AddComment)
		protected.GET("/posts/:id/edit_comment/:cid/", h.Comment.EditComment)
		protected.POST("/posts/:id/edit_comment/:cid/", h.Comment.EditComment)
		protected.GET("/posts/:id/delete_comment/:cid/", h.Comment.DeleteComment)
		protected.POST("/posts/:id/delete_comment/:cid/", h.Comment.DeleteComment)

		protected.GET("/profile/:username/edit/", h.Profile.EditProfile)
		protected.POST("/profile/:username/edit/", h.Profile.EditProfile)
		protected.GET("/profile/:username/password/", h.Profile.ChangePassword)
		protected.POST("/profile/:username/password/", h.Profile.ChangePassword)
		protected.GET("/profile/:username/password/done/", h.Profile.PasswordChangeDone)
	}

	origins := cfg.AdminOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:8000"}
	}

	admin := r.Group("/admin")
	admin.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.CSRFHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	admin.Use(RequireStaff())
	{
		// Swagger documentation
		admin.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		api := admin.Group("/api")
		api.GET("/categories", h.Admin.ListCategories)
		api.POST("/categories", h.Admin.CreateCategory)
		api.PATCH("/categories/:id", h.Admin.UpdateCategory)
		api.GET("/locations", h.Admin.ListLocations)
		api.POST("/locations", h.Admin.CreateLocation)
		api.PATCH("/locations/:id", h.Admin.UpdateLocation)
		api.GET("/posts", h.Admin.ListPosts)
		api.PATCH("/posts/:id", h.Admin.UpdatePost)
	}

	return r, nil
}
