package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bratat/go-user-accounts/internal/container"
	"github.com/bratat/go-user-accounts/internal/interface/middleware"
	"github.com/bratat/go-user-accounts/internal/router/modules"
)

// New builds the gin engine with global middleware, the health probe and
// every feature module mounted under /api.
func New(c *container.Container) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestIDMiddleware())
	if c.Cfg.HTTPLogEnabled {
		engine.Use(middleware.AccessLog(c.Logger))
	}
	engine.Use(cors.New(corsConfig(c)))

	engine.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	reg := NewRegistry(engine, "/api")
	InitModules(reg, c)
	reg.RegisterAll(c.Logger)
	return engine
}

// InitModules registers all feature modules with the registry.
func InitModules(r *Registry, c *container.Container) {
	r.Add(
		modules.NewAuthModule(c.AuthHandler),
		modules.NewUserModule(c.UserHandler, c.JWT, c.Cfg.TokenHeader),
	)
}

func corsConfig(c *container.Container) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", c.Cfg.TokenHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{c.Cfg.TokenHeader, middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if origins := c.Cfg.CORSOrigins(); len(origins) > 0 {
		cfg.AllowOrigins = origins
	} else {
		cfg.AllowAllOrigins = true
	}
	return cfg
}
