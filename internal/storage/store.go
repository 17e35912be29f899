package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/greenleaf/garden-api/internal/models"
)

const (
	CollectionUsers          = "users"
	CollectionServices       = "services"
	CollectionPortfolio      = "portfolio"
	CollectionBlog           = "blogPosts"
	CollectionInquiries      = "inquiries"
	CollectionAppointments   = "appointments"
	CollectionTestimonials   = "testimonials"
	CollectionSubscriptions  = "subscriptions"
	CollectionCarouselImages = "carouselImages"
	CollectionFeatureCards   = "featureCards"
)

var (
	byOrder       = bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: 1}}
	newestFirst   = bson.D{{Key: "createdAt", Value: -1}}
	oldestFirst   = bson.D{{Key: "createdAt", Value: 1}}
	bySchedule    = bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}
	byDisplayRank = bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: -1}}
)

// Store is the storage layer handed to the HTTP handlers.
type Store struct {
	driver Driver
	logger *slog.Logger

	Users          *Repository[models.User]
	Services       *Repository[models.Service]
	Portfolio      *Repository[models.PortfolioItem]
	Blog           *Repository[models.BlogPost]
	Inquiries      *Repository[models.Inquiry]
	Appointments   *Repository[models.Appointment]
	Testimonials   *Repository[models.Testimonial]
	Subscriptions  *Repository[models.Subscription]
	CarouselImages *Repository[models.CarouselImage]
	FeatureCards   *Repository[models.FeatureCard]
}

func New(driver Driver, logger *slog.Logger) *Store {
	logger = logger.With("component", "storage")
	return &Store{
		driver:         driver,
		logger:         logger,
		Users:          NewRepository[models.User](driver, CollectionUsers, oldestFirst, logger),
		Services:       NewRepository[models.Service](driver, CollectionServices, byOrder, logger),
		Portfolio:      NewRepository[models.PortfolioItem](driver, CollectionPortfolio, newestFirst, logger),
		Blog:           NewRepository[models.BlogPost](driver, CollectionBlog, newestFirst, logger),
		Inquiries:      NewRepository[models.Inquiry](driver, CollectionInquiries, newestFirst, logger),
		Appointments:   NewRepository[models.Appointment](driver, CollectionAppointments, bySchedule, logger),
		Testimonials:   NewRepository[models.Testimonial](driver, CollectionTestimonials, byDisplayRank, logger),
		Subscriptions:  NewRepository[models.Subscription](driver, CollectionSubscriptions, byOrder, logger),
		CarouselImages: NewRepository[models.CarouselImage](driver, CollectionCarouselImages, byOrder, logger),
		FeatureCards:   NewRepository[models.FeatureCard](driver, CollectionFeatureCards, byOrder, logger),
	}
}

func (s *Store) Connect(ctx context.Context) error {
	return s.driver.Connect(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.driver.Ping(ctx)
}

// EnsureIndexes creates the unique constraints the application relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := []struct{ collection, field string }{
		{CollectionUsers, "email"},
		{CollectionUsers, "username"},
		{CollectionBlog, "slug"},
	}
	for _, u := range unique {
		if err := s.driver.Collection(u.collection).EnsureUnique(ctx, u.field); err != nil {
			return err
		}
	}
	return nil
}

// DeleteService removes a service and then, best effort, every portfolio item
// that references it. A failure in the second step is logged and does not
// undo the first.
func (s *Store) DeleteService(ctx context.Context, id models.ID) (bool, error) {
	deleted, err := s.Services.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	n, err := s.Portfolio.DeleteWhere(ctx, referencing(id))
	if err != nil {
		s.logger.ErrorContext(ctx, "cascade delete of portfolio items failed", "serviceId", id, "error", err)
		return true, nil
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "cascade deleted portfolio items", "serviceId", id, "count", n)
	}
	return true, nil
}

// PortfolioItemsByService lists the portfolio items that reference a service.
func (s *Store) PortfolioItemsByService(ctx context.Context, serviceID models.ID) ([]models.PortfolioItem, error) {
	if !serviceID.Valid() {
		s.logger.WarnContext(ctx, "invalid service id", "serviceId", serviceID)
		return []models.PortfolioItem{}, nil
	}
	return s.Portfolio.Find(ctx, referencing(serviceID))
}

// referencing matches serviceId stored either as an ObjectID or, in documents
// written by older tooling, as its hex string.
func referencing(serviceID models.ID) bson.M {
	return bson.M{"serviceId": bson.M{"$in": bson.A{serviceID, serviceID.String()}}}
}

// ServiceName resolves a weak service reference for display. Dangling or
// empty references read as the general service.
func (s *Store) ServiceName(ctx context.Context, id models.ID) string {
	if id == "" {
		return models.GeneralServiceName
	}
	svc, err := s.Services.Get(ctx, id)
	if err != nil {
		return models.GeneralServiceName
	}
	return svc.Title
}

// ServiceNames returns a title lookup over every service, for decorating lists.
func (s *Store) ServiceNames(ctx context.Context) (map[models.ID]string, error) {
	services, err := s.Services.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[models.ID]string, len(services))
	for _, svc := range services {
		names[svc.ID] = svc.Title
	}
	return names, nil
}

// UserByLogin finds a user by email, falling back to username.
func (s *Store) UserByLogin(ctx context.Context, login string) (*models.User, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, ErrNotFound
	}
	user, err := s.Users.FindOne(ctx, bson.M{"email": strings.ToLower(login)})
	if err == nil || !errors.Is(err, ErrNotFound) {
		return user, err
	}
	return s.Users.FindOne(ctx, bson.M{"username": login})
}

func (s *Store) ServiceBySlug(ctx context.Context, slug string) (*models.Service, error) {
	return s.Services.FindOne(ctx, bson.M{"slug": slug})
}

func (s *Store) BlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return s.Blog.FindOne(ctx, bson.M{"slug": slug})
}

func (s *Store) PublishedPosts(ctx context.Context) ([]models.BlogPost, error) {
	return s.Blog.Find(ctx, bson.M{"status": models.PostStatusPublished})
}

// CountUsers reports how many accounts exist.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	n, err := s.Users.Count(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}

// HasAdmin reports whether any account holds the admin role.
func (s *Store) HasAdmin(ctx context.Context) (bool, error) {
	n, err := s.Users.Count(ctx, bson.M{"role": models.RoleAdmin})
	if err != nil {
		return false, fmt.Errorf("counting admins: %w", err)
	}
	return n > 0, nil
}
