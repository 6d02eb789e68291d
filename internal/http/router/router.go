// Package router assembles the gin engine from the application modules.
package router

import (
	"net/http"

	apphttp "oppscore_backend/internal/http"
	"oppscore_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// serviceInfo is what GET / returns in place of a landing page.
var serviceInfo = gin.H{
	"name":        "business-opportunity-score",
	"description": "Business opportunity scores from US Census Bureau County Business Patterns data",
	"endpoints": gin.H{
		"health": "/api/health",
		"api":    "/api/v1/scores",
		"mcp":    "/mcp",
	},
	"tools": []string{
		"get_opportunity_score",
		"list_states",
		"list_corp_types",
		"list_emp_sizes",
		"compare_states",
		"top_states",
	},
}

// New builds the HTTP engine: shared middleware, health endpoints, and the
// routes of every registered module.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(app))

	limiter := httpkit.NewIPRateLimiter(
		rate.Limit(app.Config.GetRateLimitRPS()),
		app.Config.GetRateLimitBurst(),
		app.Logger,
	)
	engine.Use(limiter.RateLimit())

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, serviceInfo)
	})

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"table_loaded": app.Table.Loaded(),
			"rows":         app.Table.Len(),
		})
	})

	ctx := &apphttp.RouterContext{
		Engine: engine,
		V1:     engine.Group("/api/v1"),
	}

	for _, module := range app.Modules {
		module.RegisterRoutes(ctx)
		app.Logger.Info("module routes registered", "module", module.Name())
	}

	return engine
}

func corsMiddleware(app *apphttp.App) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", httpkit.RequestIDHeader},
		ExposeHeaders:    []string{httpkit.RequestIDHeader},
		AllowCredentials: app.Config.GetCORSAllowCreds(),
	}
	if app.Config.GetCORSAllowAll() {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = app.Config.GetCORSOrigins()
	}
	return cors.New(corsCfg)
}
