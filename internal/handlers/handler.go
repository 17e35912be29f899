// Package handlers holds the gin route handlers for the public site API and
// the admin area.
package handlers

import (
	"log/slog"
	"sync"

	"github.com/greenleaf/garden-api/internal/cache"
	"github.com/greenleaf/garden-api/internal/services"
	"github.com/greenleaf/garden-api/internal/storage"
	"github.com/greenleaf/garden-api/internal/utils"
)

// Handler carries the dependencies every route handler needs.
type Handler struct {
	Store         *storage.Store
	Tokens        *utils.TokenIssuer
	Cache         cache.Cache
	Notifications *services.NotificationService
	Logger        *slog.Logger

	// registerMu serialises the admin check and insert in Register.
	registerMu sync.Mutex
}

func NewHandler(store *storage.Store, tokens *utils.TokenIssuer, c cache.Cache, notifications *services.NotificationService, logger *slog.Logger) *Handler {
	return &Handler{
		Store:         store,
		Tokens:        tokens,
		Cache:         c,
		Notifications: notifications,
		Logger:        logger.With("component", "http"),
	}
}
