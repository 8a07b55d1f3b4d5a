package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"fleet-ops-backend/config"
	"fleet-ops-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/products", caching, h.ListProducts)
		api.POST("/products", caching, h.CreateProduct)
		api.PUT("/products/:id", caching, h.UpdateProduct)
		api.DELETE("/products/:id", caching, h.DeleteProduct)

		api.GET("/drivers", caching, h.ListDrivers)
		api.POST("/drivers", caching, h.CreateDriver)
		api.PUT("/drivers/:id", caching, h.UpdateDriver)
		api.DELETE("/drivers/:id", caching, h.DeleteDriver)

		api.GET("/locations", caching, h.ListLocations)
		api.POST("/locations", caching, h.CreateLocation)
		api.PUT("/locations/:id", caching, h.UpdateLocation)
		api.DELETE("/locations/:id", caching, h.DeleteLocation)

		api.GET("/sales", caching, h.ListSales)
		api.POST("/sales", caching, h.CreateSale)
		api.DELETE("/sales/:id", caching, h.DeleteSale)
		api.GET("/sales/summary", caching, h.GetSalesSummary)

		api.GET("/payments", caching, h.ListPayments)
		api.POST("/payments", caching, h.CreatePayment)
		api.PUT("/payments/:id", caching, h.UpdatePayment)
		api.DELETE("/payments/:id", caching, h.DeletePayment)

		api.GET("/schedule", caching, h.GetSchedule)
		api.POST("/schedule/generate", caching, h.GenerateSchedule)
		api.PUT("/schedule/today", caching, h.UpdateScheduleToday)
		api.DELETE("/schedule", caching, h.ClearSchedule)

		api.GET("/settings", h.GetSettings)
		api.PUT("/settings", h.PutSettings)

		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)
	}

	return r
}
