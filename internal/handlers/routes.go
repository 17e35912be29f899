package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/greenleaf/garden-api/internal/middleware"
	"github.com/greenleaf/garden-api/internal/models"
)

type RouterOptions struct {
	CORSOrigins  []string
	LoginLimiter *middleware.IPRateLimiter
}

// NewRouter builds the gin engine with every public and admin route.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	r.Use(middleware.RequestLogger(h.Logger))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		h.Logger.ErrorContext(c.Request.Context(), "panic recovered", "panic", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}))
	corsConfig := cors.Config{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(opts.CORSOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)

		api.GET("/services", h.ListServices)
		api.GET("/services/:id", h.GetService)
		api.GET("/portfolio", h.ListPortfolio)
		api.GET("/portfolio/:id", h.GetPortfolioItem)
		api.GET("/portfolio/service/:serviceId", h.ListPortfolioByService)
		api.GET("/blog", h.ListPosts)
		api.GET("/blog/:slug", h.GetPost)
		api.GET("/testimonials", h.ListTestimonials)
		api.GET("/carousel-images", h.ListCarouselImages)
		api.GET("/feature-cards", h.ListFeatureCards)
		api.GET("/subscriptions", h.ListSubscriptions)

		api.POST("/contact", h.SubmitContact)
		api.POST("/appointments", h.BookAppointment)
	}

	auth := api.Group("/admin")
	{
		login := []gin.HandlerFunc{h.Login}
		register := []gin.HandlerFunc{h.Register}
		if opts.LoginLimiter != nil {
			login = append([]gin.HandlerFunc{opts.LoginLimiter.Middleware()}, login...)
			register = append([]gin.HandlerFunc{opts.LoginLimiter.Middleware()}, register...)
		}
		auth.POST("/login", login...)
		auth.POST("/register", register...)
		auth.GET("/validate-session", h.ValidateSession)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.RequireRole(h.Tokens, models.RoleAdmin))
	{
		admin.GET("/me", h.GetCurrentUser)
		admin.PUT("/me", h.UpdateCurrentUser)

		h.services().mount(admin, "/services")
		h.portfolio().mount(admin, "/portfolio")
		h.blog().mount(admin, "/blog")
		h.testimonials().mount(admin, "/testimonials")
		h.inquiries().mount(admin, "/inquiries")
		h.subscriptions().mount(admin, "/subscriptions")
		h.carouselImages().mount(admin, "/carousel-images")
		h.featureCards().mount(admin, "/feature-cards")

		apts := h.appointments()
		admin.GET("/appointments", apts.list)
		admin.GET("/appointments/:id", apts.get)
		admin.POST("/appointments", h.CreateAppointment)
		admin.PUT("/appointments/:id", h.UpdateAppointment)
		admin.PATCH("/appointments/:id", h.UpdateAppointment)
		admin.PATCH("/appointments/:id/cancel", h.CancelAppointment)
		admin.DELETE("/appointments/:id", apts.remove)
	}

	return r
}

// Health pings the database.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.Store.Ping(ctx); err != nil {
		h.Logger.WarnContext(ctx, "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
