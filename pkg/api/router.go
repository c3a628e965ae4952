package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter registers the HTTP routes on a new gin engine
func NewRouter(h *Handler, allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if len(allowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     allowOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", h.Health)
	r.GET("/recipes", h.GetRecipes)

	users := r.Group("/users/:username")
	{
		users.GET("/pantry", h.GetPantry)
		users.POST("/pantry", h.AddProduct)
		users.PUT("/pantry", h.SavePantry)
		users.GET("/pantry/export", h.ExportPantry)
		users.POST("/pantry/import", h.ImportPantry)
		users.GET("/recommendations", h.GetRecommendations)
	}

	return r
}
