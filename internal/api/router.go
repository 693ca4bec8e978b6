package api

import (
	"net/http"
	"time"

	"github.com/Marga-Ghale/ora-group-views/internal/api/handlers"
	"github.com/Marga-Ghale/ora-group-views/internal/api/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterConfig holds the settings the HTTP surface needs
type RouterConfig struct {
	AllowedOrigins []string
	JWTSecret      string
	// Health reports dependency state for /health; nil reports only liveness.
	Health func() gin.H
}

// NewRouter builds the gin engine serving the views API
func NewRouter(cfg RouterConfig, h *handlers.Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		body := gin.H{"status": "healthy", "timestamp": time.Now()}
		if cfg.Health != nil {
			for k, v := range cfg.Health() {
				body[k] = v
			}
		}
		c.JSON(http.StatusOK, body)
	})

	views := r.Group("/views")
	views.Use(cors.New(viewsCORS(cfg.AllowedOrigins)), middleware.ScopeMiddleware(cfg.JWTSecret))
	{
		views.GET("/:group_name/details", h.GroupDetails.Get)
		// preflight requests are answered by the cors middleware
		views.OPTIONS("/:group_name/details", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}

	return r
}

func viewsCORS(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods: []string{"GET", "PUT", "POST"},
		AllowHeaders: []string{"Authorization", "Accept", "Content-Type"},
		MaxAge:       time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}
