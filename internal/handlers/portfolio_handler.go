package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenleaf/garden-api/internal/models"
)

func (h *Handler) portfolio() *resource[models.PortfolioItem, models.PortfolioItemPatch] {
	return &resource[models.PortfolioItem, models.PortfolioItemPatch]{
		h:           h,
		repo:        h.Store.Portfolio,
		label:       "Portfolio item",
		invalidates: []string{keyPortfolio},
		decorate:    h.withServiceNames,
	}
}

// serviceNames returns a lookup from service id to title for decorating a
// list. Unknown or empty ids read as the general service.
func (h *Handler) serviceNames(ctx context.Context) func(models.ID) string {
	names, err := h.Store.ServiceNames(ctx)
	if err != nil {
		h.Logger.WarnContext(ctx, "could not load service names", "error", err)
	}
	return func(id models.ID) string {
		if name, ok := names[id]; ok {
			return name
		}
		return models.GeneralServiceName
	}
}

func (h *Handler) withServiceNames(ctx context.Context, items []models.PortfolioItem) {
	name := h.serviceNames(ctx)
	for i := range items {
		items[i].ServiceName = name(items[i].ServiceID)
	}
}

func (h *Handler) ListPortfolio(c *gin.Context) {
	h.cachedJSON(c, keyPortfolio, "Portfolio item", func(ctx context.Context) (any, error) {
		items, err := h.Store.Portfolio.List(ctx)
		if err != nil {
			return nil, err
		}
		h.withServiceNames(ctx, items)
		return items, nil
	})
}

func (h *Handler) GetPortfolioItem(c *gin.Context) {
	ctx := c.Request.Context()
	item, err := h.Store.Portfolio.Get(ctx, models.ID(c.Param("id")))
	if err != nil {
		h.respondError(c, "Portfolio item", err)
		return
	}
	item.ServiceName = h.Store.ServiceName(ctx, item.ServiceID)
	c.JSON(http.StatusOK, item)
}

func (h *Handler) ListPortfolioByService(c *gin.Context) {
	ctx := c.Request.Context()
	items, err := h.Store.PortfolioItemsByService(ctx, models.ID(c.Param("serviceId")))
	if err != nil {
		h.respondError(c, "Portfolio item", err)
		return
	}
	h.withServiceNames(ctx, items)
	c.JSON(http.StatusOK, items)
}
