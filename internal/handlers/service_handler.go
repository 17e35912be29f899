package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenleaf/garden-api/internal/content"
	"github.com/greenleaf/garden-api/internal/models"
)

func (h *Handler) services() *resource[models.Service, models.ServicePatch] {
	return &resource[models.Service, models.ServicePatch]{
		h:           h,
		repo:        h.Store.Services,
		label:       "Service",
		invalidates: []string{keyServices, keyPortfolio},
		beforeCreate: func(c *gin.Context, doc *models.Service) bool {
			doc.Slug = slugFor(doc.Slug, doc.Title)
			if doc.Slug == "" {
				fieldError(c, "title", "must contain letters or digits")
				return false
			}
			return true
		},
		beforeUpdate: func(c *gin.Context, _ models.ID, patch *models.ServicePatch) bool {
			return normalizeSlugPatch(c, patch.Slug, patch.Title, func(s string) { patch.Slug = &s })
		},
		// portfolio items go with their service
		del: h.Store.DeleteService,
	}
}

func (h *Handler) ListServices(c *gin.Context) {
	h.cachedJSON(c, keyServices, "Service", func(ctx context.Context) (any, error) {
		return h.Store.Services.List(ctx)
	})
}

// GetService looks a service up by id, or by slug when the parameter is not
// an id.
func (h *Handler) GetService(c *gin.Context) {
	ctx := c.Request.Context()
	key := models.ID(c.Param("id"))

	var (
		svc *models.Service
		err error
	)
	if key.Valid() {
		svc, err = h.Store.Services.Get(ctx, key)
	} else {
		svc, err = h.Store.ServiceBySlug(ctx, key.String())
	}
	if err != nil {
		h.respondError(c, "Service", err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// slugFor returns the slugified explicit slug, or one derived from title.
func slugFor(slug, title string) string {
	if slug != "" {
		return content.Slugify(slug)
	}
	return content.Slugify(title)
}

// normalizeSlugPatch slugifies a slug supplied in a patch. A patch that
// renames without a slug keeps the old slug so links stay stable.
func normalizeSlugPatch(c *gin.Context, slug, title *string, set func(string)) bool {
	if slug == nil {
		return true
	}
	s := content.Slugify(*slug)
	if s == "" && title != nil {
		s = content.Slugify(*title)
	}
	if s == "" {
		fieldError(c, "slug", "must contain letters or digits")
		return false
	}
	set(s)
	return true
}
