package middleware

import (
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/temcen/songmatch/internal/config"
)

// CORS builds the CORS handler. An empty origin list or "*" allows every
// origin.
func CORS(cfg *config.Config) gin.HandlerFunc {
	origins := cfg.Security.CORS.AllowedOrigins
	config := cors.Config{
		AllowMethods:  cfg.Security.CORS.AllowedMethods,
		AllowHeaders:  cfg.Security.CORS.AllowedHeaders,
		ExposeHeaders: []string{RequestIDHeader},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}

	return cors.New(config)
}
