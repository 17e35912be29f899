// Package seed fills an empty database with an admin account and starter
// content so a fresh install has something to log into and show.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/greenleaf/garden-api/internal/content"
	"github.com/greenleaf/garden-api/internal/models"
	"github.com/greenleaf/garden-api/internal/storage"
	"github.com/greenleaf/garden-api/internal/utils"
)

type Options struct {
	AdminEmail    string
	AdminPassword string
}

// Run seeds the admin account and, when the services collection is empty,
// a set of sample services. It is safe to call on every start.
func Run(ctx context.Context, store *storage.Store, opts Options, logger *slog.Logger) error {
	logger = logger.With("component", "seed")

	if err := EnsureAdmin(ctx, store, opts.AdminEmail, opts.AdminPassword, logger); err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}
	if err := seedServices(ctx, store, logger); err != nil {
		return fmt.Errorf("seeding services: %w", err)
	}
	return nil
}

// EnsureAdmin creates an admin user with the given credentials unless an
// account with that email already exists.
func EnsureAdmin(ctx context.Context, store *storage.Store, email, password string, logger *slog.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return errors.New("admin email and password are required")
	}

	_, err := store.UserByLogin(ctx, email)
	if err == nil {
		logger.Info("admin user already exists, skipping", "email", email)
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	username, _, _ := strings.Cut(email, "@")
	if _, err := store.Users.Create(ctx, &models.User{
		Name:     "Administrator",
		Email:    email,
		Username: username,
		Password: hash,
		Role:     models.RoleAdmin,
	}); err != nil {
		return err
	}

	logger.Info("created admin user", "email", email)
	return nil
}

var sampleServices = []models.Service{
	{
		Title:            "Lawn Care & Maintenance",
		ShortDescription: "Regular mowing, edging and feeding for a healthy lawn.",
		Description:      "Weekly or fortnightly visits covering mowing, edging, weed control and seasonal feeding.",
		Price:            "From $45",
		Duration:         "1-2 hours",
		Category:         "Maintenance",
		Features: []models.Feature{
			{Name: "Mowing"},
			{Name: "Edging"},
			{Name: "Weed control"},
		},
		Featured: true,
		Order:    1,
	},
	{
		Title:            "Garden Design",
		ShortDescription: "Planting plans and layouts built around how you use your garden.",
		Description:      "A site visit, a scaled planting plan and a materials list, with optional installation.",
		Price:            "From $350",
		Category:         "Design",
		Features: []models.Feature{
			{Name: "Site survey"},
			{Name: "Planting plan"},
			{Name: "Revisions", Value: "2"},
		},
		Featured: true,
		Order:    2,
	},
	{
		Title:            "Hedge Trimming",
		ShortDescription: "Neat, even hedges shaped and cleared away.",
		Description:      "Trimming and shaping of hedges of any length, with all green waste removed.",
		Price:            "From $60",
		Duration:         "Half day",
		Category:         "Maintenance",
		Features:         []models.Feature{{Name: "Green waste removal"}},
		Order:            3,
	},
}

func seedServices(ctx context.Context, store *storage.Store, logger *slog.Logger) error {
	existing, err := store.Services.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("services already present, skipping", "count", len(existing))
		return nil
	}

	for _, svc := range sampleServices {
		svc.Slug = content.Slugify(svc.Title)
		if _, err := store.Services.Create(ctx, &svc); err != nil {
			return err
		}
	}
	logger.Info("created sample services", "count", len(sampleServices))
	return nil
}
