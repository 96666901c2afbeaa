package api

import (
	"context"
	"sync/atomic"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/patrickmn/go-cache"

	"studyseat-dashboard/internal/backend"
	"studyseat-dashboard/internal/state"
	"studyseat-dashboard/internal/store"
)

// Refresher triggers a full re-sync of the room/table model from the backend.
type Refresher interface {
	RefreshOnce(ctx context.Context) error
}

// Handler holds shared dependencies for the dashboard handlers.
type Handler struct {
	cache     *state.Cache
	client    *backend.Client
	refresher Refresher
	store     store.Store
	respCache *cache.Cache
	webpush   *webpush.Options

	// Guards the destructive clear-all command against duplicate submission;
	// the only concurrency guard in the system.
	clearing atomic.Bool
}

// NewHandler creates a new dashboard handler.
func NewHandler(c *state.Cache, client *backend.Client, refresher Refresher, s store.Store, respCache *cache.Cache, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		cache:     c,
		client:    client,
		refresher: refresher,
		store:     s,
		respCache: respCache,
		webpush:   webpushOptions,
	}
}
