package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handler holds shared dependencies for all route handlers. Everything in it
// is read-only after startup.
type Handler struct {
	predictor *dietPredictor
	renderer  reportRenderer
	reports   reportStore
	log       *appLogger
	now       func() time.Time // overridable for tests
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// newRouter builds the engine with CORS for the browser form and all routes.
func newRouter(cfg config, h *Handler) *gin.Engine {
	useJSONFieldNames()

	router := gin.New()
	router.Use(gin.Recovery())
	router.SetTrustedProxies(nil)

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	corsCfg.ExposeHeaders = []string{"Content-Disposition"}
	router.Use(cors.New(corsCfg))

	h.registerRoutes(router)
	return router
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.GET("/options", h.getOptions)
	api.POST("/recommendations", h.createRecommendation)
	api.GET("/reports/:id", h.getReport)
	api.POST("/reminders", h.setReminder)
	api.POST("/reminders/trigger", h.triggerReminder)
}

// getOptions returns the vocabularies and bounds a form needs.
// GET /api/options.
func (h *Handler) getOptions(c *gin.Context) {
	c.JSON(http.StatusOK, optionsResponse{
		Genders:       h.predictor.gender.Classes(),
		Diseases:      h.predictor.disease.Classes(),
		DietTypes:     h.predictor.target.Classes(),
		ReminderMeals: reminderMeals,
		Bounds: map[string]bounds{
			"age":       {Min: 18, Max: 90},
			"weight_kg": {Min: 30, Max: 150},
			"height_cm": {Min: 100, Max: 220},
		},
	})
}
