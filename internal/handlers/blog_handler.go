package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/greenleaf/garden-api/internal/content"
	"github.com/greenleaf/garden-api/internal/models"
)

func (h *Handler) blog() *resource[models.BlogPost, models.BlogPostPatch] {
	return &resource[models.BlogPost, models.BlogPostPatch]{
		h:           h,
		repo:        h.Store.Blog,
		label:       "Blog post",
		invalidates: []string{keyBlog},
		beforeCreate: func(c *gin.Context, doc *models.BlogPost) bool {
			doc.Slug = slugFor(doc.Slug, doc.Title)
			if doc.Slug == "" {
				fieldError(c, "title", "must contain letters or digits")
				return false
			}
			doc.ViewCount = 0
			return true
		},
		beforeUpdate: func(c *gin.Context, id models.ID, patch *models.BlogPostPatch) bool {
			if !normalizeSlugPatch(c, patch.Slug, patch.Title, func(s string) { patch.Slug = &s }) {
				return false
			}
			h.stampPublished(c.Request.Context(), id, patch)
			return true
		},
	}
}

// stampPublished sets publishedAt the first time a post is published.
func (h *Handler) stampPublished(ctx context.Context, id models.ID, patch *models.BlogPostPatch) {
	if patch.Status == nil || *patch.Status != models.PostStatusPublished || patch.PublishedAt != nil {
		return
	}
	current, err := h.Store.Blog.Get(ctx, id)
	if err != nil || current.PublishedAt != nil {
		return
	}
	now := time.Now().UTC()
	patch.PublishedAt = &now
}

// ListPosts returns published posts, newest first.
func (h *Handler) ListPosts(c *gin.Context) {
	h.cachedJSON(c, keyBlog, "Blog post", func(ctx context.Context) (any, error) {
		return h.Store.PublishedPosts(ctx)
	})
}

// GetPost serves a published post by slug with its markdown rendered, and
// counts the view.
func (h *Handler) GetPost(c *gin.Context) {
	ctx := c.Request.Context()

	post, err := h.Store.BlogPostBySlug(ctx, c.Param("slug"))
	if err != nil {
		h.respondError(c, "Blog post", err)
		return
	}
	if post.Status != models.PostStatusPublished {
		notFound(c, "Blog post")
		return
	}

	if err := h.Store.Blog.Increment(ctx, post.ID, "viewCount", 1); err != nil {
		h.Logger.WarnContext(ctx, "could not count blog view", "id", post.ID, "error", err)
	} else {
		post.ViewCount++
	}

	html, err := content.RenderMarkdown(post.Content)
	if err != nil {
		h.respondError(c, "Blog post", err)
		return
	}
	post.ContentHTML = html

	c.JSON(http.StatusOK, post)
}
