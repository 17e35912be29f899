package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/greenleaf/garden-api/internal/models"
)

// Testimonials, subscription plans, carousel slides and feature cards are
// plain admin-managed lists shown on the public pages.

func (h *Handler) testimonials() *resource[models.Testimonial, models.TestimonialPatch] {
	return &resource[models.Testimonial, models.TestimonialPatch]{
		h:           h,
		repo:        h.Store.Testimonials,
		label:       "Testimonial",
		invalidates: []string{keyTestimonials},
	}
}

func (h *Handler) subscriptions() *resource[models.Subscription, models.SubscriptionPatch] {
	return &resource[models.Subscription, models.SubscriptionPatch]{
		h:           h,
		repo:        h.Store.Subscriptions,
		label:       "Subscription",
		invalidates: []string{keySubscriptions},
	}
}

func (h *Handler) carouselImages() *resource[models.CarouselImage, models.CarouselImagePatch] {
	return &resource[models.CarouselImage, models.CarouselImagePatch]{
		h:           h,
		repo:        h.Store.CarouselImages,
		label:       "Carousel image",
		invalidates: []string{keyCarouselImages},
	}
}

func (h *Handler) featureCards() *resource[models.FeatureCard, models.FeatureCardPatch] {
	return &resource[models.FeatureCard, models.FeatureCardPatch]{
		h:           h,
		repo:        h.Store.FeatureCards,
		label:       "Feature card",
		invalidates: []string{keyFeatureCards},
	}
}

func (h *Handler) ListTestimonials(c *gin.Context) {
	h.cachedJSON(c, keyTestimonials, "Testimonial", func(ctx context.Context) (any, error) {
		return h.Store.Testimonials.List(ctx)
	})
}

func (h *Handler) ListSubscriptions(c *gin.Context) {
	h.cachedJSON(c, keySubscriptions, "Subscription", func(ctx context.Context) (any, error) {
		return h.Store.Subscriptions.List(ctx)
	})
}

func (h *Handler) ListCarouselImages(c *gin.Context) {
	h.cachedJSON(c, keyCarouselImages, "Carousel image", func(ctx context.Context) (any, error) {
		return h.Store.CarouselImages.List(ctx)
	})
}

func (h *Handler) ListFeatureCards(c *gin.Context) {
	h.cachedJSON(c, keyFeatureCards, "Feature card", func(ctx context.Context) (any, error) {
		return h.Store.FeatureCards.List(ctx)
	})
}
