package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/greenleaf/garden-api/internal/storage"
)

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors report the JSON name of a field
// rather than its Go name.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
}

// bindJSON decodes and validates the request body into obj. On failure it
// writes the 400 response and returns false.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = describe(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": fields})
		return false
	}

	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "errors": gin.H{"body": err.Error()}})
	return false
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "datetime":
		return fmt.Sprintf("must match the format %s", fe.Param())
	default:
		return fmt.Sprintf("failed the %q check", fe.Tag())
	}
}

// fieldError writes a 400 for a single field that passed binding but failed
// a later check.
func fieldError(c *gin.Context, field, reason string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": gin.H{field: reason}})
}

func notFound(c *gin.Context, label string) {
	c.JSON(http.StatusNotFound, gin.H{"message": label + " not found"})
}

// respondError maps storage errors to HTTP responses. label names the
// resource in not-found messages.
func (h *Handler) respondError(c *gin.Context, label string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		notFound(c, label)
	case errors.Is(err, storage.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id format"})
	case errors.Is(err, storage.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"message": label + " already exists"})
	default:
		_ = c.Error(err)
		h.Logger.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
