package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenleaf/garden-api/internal/cache"
)

// Cache keys for public list responses.
const (
	keyServices       = "public:services"
	keyPortfolio      = "public:portfolio"
	keyBlog           = "public:blog"
	keyTestimonials   = "public:testimonials"
	keySubscriptions  = "public:subscriptions"
	keyCarouselImages = "public:carousel-images"
	keyFeatureCards   = "public:feature-cards"
)

// cachedJSON serves key from the cache, or calls load, caches its JSON and
// serves that. Cache failures only cost a database read.
func (h *Handler) cachedJSON(c *gin.Context, key, label string, load func(ctx context.Context) (any, error)) {
	ctx := c.Request.Context()

	body, err := h.Cache.Get(ctx, key)
	if err == nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		h.Logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
	}

	v, err := load(ctx)
	if err != nil {
		h.respondError(c, label, err)
		return
	}
	body, err = json.Marshal(v)
	if err != nil {
		h.respondError(c, label, err)
		return
	}
	if err := h.Cache.Set(ctx, key, body, 0); err != nil {
		h.Logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// invalidate drops cached public responses after an admin write.
func (h *Handler) invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := h.Cache.Delete(ctx, keys...); err != nil {
		h.Logger.WarnContext(ctx, "cache invalidation failed", "keys", keys, "error", err)
	}
}
