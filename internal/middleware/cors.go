package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows every origin when origins is empty or contains "*",
// otherwise only the listed ones.
func CORS(origins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:  []string{"Accept", "Content-Type", "X-Requested-With", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	config.AllowAllOrigins = len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			config.AllowAllOrigins = true
		}
	}
	if !config.AllowAllOrigins {
		config.AllowOrigins = origins
	}

	return cors.New(config)
}
