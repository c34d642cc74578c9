package router

import (
	"time"

	"github.com/davidsantoszx/gerenciadorsalario/internal/auth"
	"github.com/davidsantoszx/gerenciadorsalario/internal/config"
	"github.com/davidsantoszx/gerenciadorsalario/internal/handler"
	"github.com/davidsantoszx/gerenciadorsalario/internal/middleware"
	"github.com/davidsantoszx/gerenciadorsalario/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine, templates and static resources.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery(), middleware.Metrics())

	// static files and templates
	r.Static("/static", "./web/static")
	r.LoadHTMLGlob("web/templates/*")

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authService := auth.NewService(
		repository.NewUserRepository(db),
		repository.NewSessionRepository(db),
		auth.Options{
			Secret:     cfg.Session.Secret,
			TTL:        time.Duration(cfg.Session.ExpireHours) * time.Hour,
			BcryptCost: cfg.Security.BcryptCost,
		},
	)
	cookieName := cfg.Session.CookieName

	authHandler := handler.NewAuthHandler(authService, cookieName)
	pageHandler := handler.NewPageHandler(authService, cookieName)
	planHandler := handler.NewPlanHandler(repository.NewPlanRepository(db))

	// public pages
	r.GET("/", pageHandler.Home)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.GET("/cadastro", authHandler.CadastroPage)
	r.POST("/cadastro", authHandler.Cadastro)

	// everything below requires a session
	protected := r.Group("", middleware.RequireAuth(authService, cookieName))
	protected.GET("/logout", authHandler.Logout)
	protected.POST("/criarplano", planHandler.Create)

	api := protected.Group("/api")
	api.GET("/planos", planHandler.List)
	api.PUT("/planos/:id", planHandler.Update)
	api.DELETE("/planos/:id", planHandler.Delete)
	api.PATCH("/planos/:id/principal", planHandler.SetPrincipal)

	return r
}
