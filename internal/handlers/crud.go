package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/greenleaf/garden-api/internal/models"
	"github.com/greenleaf/garden-api/internal/storage"
)

// resource is the admin CRUD surface for one entity kind. T is the stored
// document and P its merge-patch type.
type resource[T any, P any] struct {
	h     *Handler
	repo  *storage.Repository[T]
	label string
	// cache keys whose public responses change when this resource does
	invalidates []string

	// optional hooks
	filter       func(c *gin.Context) (bson.M, bool)
	beforeCreate func(c *gin.Context, doc *T) bool
	beforeUpdate func(c *gin.Context, id models.ID, patch *P) bool
	decorate     func(ctx context.Context, docs []T)
	del          func(ctx context.Context, id models.ID) (bool, error)
}

func (r *resource[T, P]) mount(g *gin.RouterGroup, path string) {
	g.GET(path, r.list)
	g.GET(path+"/:id", r.get)
	g.POST(path, r.create)
	g.PUT(path+"/:id", r.update)
	g.PATCH(path+"/:id", r.update)
	g.DELETE(path+"/:id", r.remove)
}

func (r *resource[T, P]) list(c *gin.Context) {
	var filter bson.M
	if r.filter != nil {
		var ok bool
		if filter, ok = r.filter(c); !ok {
			return
		}
	}

	docs, err := r.repo.Find(c.Request.Context(), filter)
	if err != nil {
		r.h.respondError(c, r.label, err)
		return
	}
	if r.decorate != nil {
		r.decorate(c.Request.Context(), docs)
	}
	c.JSON(http.StatusOK, docs)
}

func (r *resource[T, P]) get(c *gin.Context) {
	doc, err := r.repo.Get(c.Request.Context(), models.ID(c.Param("id")))
	if err != nil {
		r.h.respondError(c, r.label, err)
		return
	}
	r.respond(c, http.StatusOK, doc)
}

func (r *resource[T, P]) create(c *gin.Context) {
	var doc T
	if !bindJSON(c, &doc) {
		return
	}
	if r.beforeCreate != nil && !r.beforeCreate(c, &doc) {
		return
	}

	created, err := r.repo.Create(c.Request.Context(), &doc)
	if err != nil {
		r.h.respondError(c, r.label, err)
		return
	}
	r.h.invalidate(c.Request.Context(), r.invalidates...)
	r.respond(c, http.StatusCreated, created)
}

func (r *resource[T, P]) update(c *gin.Context) {
	id := models.ID(c.Param("id"))

	var patch P
	if !bindJSON(c, &patch) {
		return
	}
	if r.beforeUpdate != nil && !r.beforeUpdate(c, id, &patch) {
		return
	}

	updated, err := r.repo.Update(c.Request.Context(), id, &patch)
	if err != nil {
		r.h.respondError(c, r.label, err)
		return
	}
	r.h.invalidate(c.Request.Context(), r.invalidates...)
	r.respond(c, http.StatusOK, updated)
}

func (r *resource[T, P]) remove(c *gin.Context) {
	del := r.repo.Delete
	if r.del != nil {
		del = r.del
	}
	deleted, err := del(c.Request.Context(), models.ID(c.Param("id")))
	if err != nil {
		r.h.respondError(c, r.label, err)
		return
	}
	if !deleted {
		notFound(c, r.label)
		return
	}
	r.h.invalidate(c.Request.Context(), r.invalidates...)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": r.label + " deleted"})
}

func (r *resource[T, P]) respond(c *gin.Context, status int, doc *T) {
	if r.decorate != nil {
		one := []T{*doc}
		r.decorate(c.Request.Context(), one)
		doc = &one[0]
	}
	c.JSON(status, doc)
}
