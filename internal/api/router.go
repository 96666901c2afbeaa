package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"studyseat-dashboard/config"
	"studyseat-dashboard/internal/backend"
	"studyseat-dashboard/internal/mw"
	"studyseat-dashboard/internal/state"
	"studyseat-dashboard/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, c *state.Cache, client *backend.Client, refresher Refresher, s store.Store, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	rps := cfg.Server.RateLimitPerSec
	if rps <= 0 {
		rps = 10
	}
	rateLimiter := mw.RateLimiter(rate.Limit(rps), 5, cfg.Server.RequestIPHeader)

	ttl := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	respCache := cache.New(ttl, 10*time.Minute)
	caching := mw.Cache(respCache, ttl)

	handler := NewHandler(c, client, refresher, s, respCache, webpushOptions)

	r.Use(rateLimiter)

	// Views
	r.GET("/", caching, handler.GetDashboard)
	r.GET("/tables/:id", caching, handler.GetTableDetail)
	r.GET("/rooms/:room/vacant", caching, handler.GetVacantTables)
	r.GET("/rooms/:room/stats", caching, handler.GetRoomStats)
	r.GET("/students/:id/fee", handler.GetFeeForm)

	// Commands
	commands := r.Group("/commands")
	{
		commands.POST("/assign", handler.PostAssign)
		commands.POST("/students/:id/payment", handler.PostPayment)
		commands.POST("/students/:id/delete", handler.PostDelete)
		commands.POST("/clear-all", handler.PostClearAll)
	}

	// API
	api := r.Group("/api")
	{
		api.GET("/activity", handler.GetActivity)
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
