package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/greenleaf/garden-api/internal/cache"
	"github.com/greenleaf/garden-api/internal/middleware"
	"github.com/greenleaf/garden-api/internal/models"
	"github.com/greenleaf/garden-api/internal/seed"
	"github.com/greenleaf/garden-api/internal/services"
	"github.com/greenleaf/garden-api/internal/storage"
	"github.com/greenleaf/garden-api/internal/utils"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "password123"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	store  *storage.Store
}

func newTestServer(t *testing.T, opts RouterOptions) *testServer {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := storage.New(storage.NewMemoryDriver(), logger)
	require.NoError(t, store.EnsureIndexes(ctx))
	require.NoError(t, seed.EnsureAdmin(ctx, store, adminEmail, adminPassword, logger))

	tokens, err := utils.NewTokenIssuer("test-secret-that-is-long-enough", time.Hour, logger)
	require.NoError(t, err)

	h := NewHandler(store, tokens, cache.NewMemoryCache(time.Minute), services.NewNotificationService("", "", logger), logger)
	if opts.CORSOrigins == nil {
		opts.CORSOrigins = []string{"http://localhost:5173"}
	}
	return &testServer{router: NewRouter(h, opts), store: store}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/admin/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := object(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func object(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var v map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func array(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var v []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func fieldErrors(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	errs, ok := object(t, w)["errors"].(map[string]any)
	require.True(t, ok, w.Body.String())
	return errs
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, RouterOptions{})

	w := s.do(t, http.MethodPost, "/api/admin/login", "", gin.H{"email": adminEmail, "password": adminPassword})
	require.Equal(t, http.StatusOK, w.Code)
	body := object(t, w)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]any)
	assert.Equal(t, models.RoleAdmin, user["role"])
	assert.Equal(t, adminEmail, user["email"])
	assert.NotContains(t, user, "password")

	// username works too
	w = s.do(t, http.MethodPost, "/api/admin/login", "", gin.H{"username": "admin", "password": adminPassword})
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/admin/login", "", gin.H{"email": adminEmail, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, object(t, w)["success"])

	w = s.do(t, http.MethodPost, "/api/admin/login", "", gin.H{"email": "nobody@example.com", "password": adminPassword})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	errs := fieldErrors(t, s.do(t, http.MethodPost, "/api/admin/login", "", gin.H{"email": adminEmail}))
	assert.Contains(t, errs, "password")
}

func TestLogin_RateLimited(t *testing.T) {
	s := newTestServer(t, RouterOptions{
		LoginLimiter: middleware.NewIPRateLimiter(0.001, 2, slog.New(slog.NewTextHandler(io.Discard, nil))),
	})
	creds := gin.H{"email": adminEmail, "password": "wrong"}

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/api/admin/login", "", creds).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/api/admin/login", "", creds).Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(t, http.MethodPost, "/api/admin/login", "", creds).Code)
}

func TestRegister(t *testing.T) {
	s := newTestServer(t, RouterOptions{})

	w := s.do(t, http.MethodPost, "/api/admin/register", "", gin.H{"email": "Gardener@Example.com", "password": "longenough"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, true, object(t, w)["success"])

	user, err := s.store.UserByLogin(context.Background(), "gardener@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "gardener@example.com", user.Username)

	w = s.do(t, http.MethodPost, "/api/admin/register", "", gin.H{"email": "gardener@example.com", "password": "longenough"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, object(t, w)["success"])

	errs := fieldErrors(t, s.do(t, http.MethodPost, "/api/admin/register", "", gin.H{"email": "not-an-email", "password": "short"}))
	assert.Equal(t, "must be a valid email address", errs["email"])
	assert.Equal(t, "must be at least 8", errs["password"])
}

func TestRegister_FirstAccountIsAdmin(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.New(storage.NewMemoryDriver(), logger)
	require.NoError(t, store.EnsureIndexes(ctx))
	tokens, err := utils.NewTokenIssuer("test-secret-that-is-long-enough", time.Hour, logger)
	require.NoError(t, err)
	s := &testServer{
		router: NewRouter(NewHandler(store, tokens, cache.NewMemoryCache(time.Minute), nil, logger), RouterOptions{}),
		store:  store,
	}

	w := s.do(t, http.MethodPost, "/api/admin/register", "", gin.H{"email": "owner@example.com", "password": "longenough"})
	require.Equal(t, http.StatusCreated, w.Code)

	token := s.login(t, "owner@example.com", "longenough")
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/admin/services", token, nil).Code)
}

func TestRegister_ConcurrentSignupsYieldOneAdmin(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.New(storage.NewMemoryDriver(), logger)
	require.NoError(t, store.EnsureIndexes(ctx))
	tokens, err := utils.NewTokenIssuer("test-secret-that-is-long-enough", time.Hour, logger)
	require.NoError(t, err)
	router := NewRouter(NewHandler(store, tokens, cache.NewMemoryCache(time.Minute), nil, logger), RouterOptions{})

	const signups = 8
	codes := make([]int, signups)
	var wg sync.WaitGroup
	for i := 0; i < signups; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body, _ := json.Marshal(gin.H{"email": fmt.Sprintf("user%d@example.com", i), "password": "longenough"})
			req := httptest.NewRequest(http.MethodPost, "/api/admin/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		assert.Equal(t, http.StatusCreated, code, "signup %d", i)
	}
	admins, err := store.Users.Count(ctx, bson.M{"role": models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, int64(1), admins)
	total, err := store.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(signups), total)
}

func TestAdminGate(t *testing.T) {
	s := newTestServer(t, RouterOptions{})

	w := s.do(t, http.MethodGet, "/api/admin/services", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, true, object(t, w)["requiresAuth"])

	w = s.do(t, http.MethodGet, "/api/admin/services", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	require.Equal(t, http.StatusCreated,
		s.do(t, http.MethodPost, "/api/admin/register", "", gin.H{"email": "user@example.com", "password": "longenough"}).Code)
	userToken := s.login(t, "user@example.com", "longenough")

	for _, path := range []string{
		"/api/admin/services", "/api/admin/portfolio", "/api/admin/blog", "/api/admin/testimonials",
		"/api/admin/inquiries", "/api/admin/appointments", "/api/admin/subscriptions",
		"/api/admin/carousel-images", "/api/admin/feature-cards",
	} {
		w = s.do(t, http.MethodGet, path, userToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
		assert.Equal(t, true, object(t, w)["requiresAuth"], path)
	}

	adminToken := s.login(t, adminEmail, adminPassword)
	w = s.do(t, http.MethodGet, "/api/admin/services", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, array(t, w))
}

func TestValidateSession(t *testing.T) {
	s := newTestServer(t, RouterOptions{})

	w := s.do(t, http.MethodGet, "/api/admin/validate-session", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, object(t, w)["valid"])

	w = s.do(t, http.MethodGet, "/api/admin/validate-session", "not.a.token", nil)
	assert.Equal(t, false, object(t, w)["valid"])

	token := s.login(t, adminEmail, adminPassword)
	w = s.do(t, http.MethodGet, "/api/admin/validate-session", token, nil)
	body := object(t, w)
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, adminEmail, body["user"].(map[string]any)["email"])
}

func TestCurrentUser(t *testing.T) {
	s := newTestServer(t, RouterOptions{})
	token := s.login(t, adminEmail, adminPassword)

	w := s.do(t, http.MethodGet, "/api/admin/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", object(t, w)["username"])

	w = s.do(t, http.MethodPut, "/api/admin/me", token, gin.H{"name": "Head Gardener"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Head Gardener", object(t, w)["name"])

	errs := fieldErrors(t, s.do(t, http.MethodPut, "/api/admin/me", token, gin.H{"currentPassword": "wrong", "newPassword": "newpassword1"}))
	assert.Contains(t, errs, "currentPassword")

	w = s.do(t, http.MethodPut, "/api/admin/me", token, gin.H{"currentPassword": adminPassword, "newPassword": "newpassword1"})
	require.Equal(t, http.StatusOK, w.Code)
	s.login(t, adminEmail, "newpassword1")
}

func TestServices_CRUD(t *testing.T) {
	s := newTestServer(t, RouterOptions{})
	token := s.login(t, adminEmail, adminPassword)

	errs := fieldErrors(t, s.do(t, http.MethodPost, "/api/admin/services", token, gin.H{"description": "no title"}))
	assert.Equal(t, "is required", errs["title"])

	// features arrive as a mix of strings and objects
	w := s.do(t, http.MethodPost, "/api/admin/services", token,
		`{"title":"Lawn Mowing","description":"Weekly cuts","features":["Edging",{"name":"Visits","value":"weekly"}]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := object(t, w)
	id := created["id"].(string)
	assert.Len(t, id, 24)
	assert.Equal(t, "lawn-mowing", created["slug"])
	assert.Equal(t, []any{
		map[string]any{"name": "Edging"},
		map[string]any{"name": "Visits", "value": "weekly"},
	}, created["features"])

	w = s.do(t, http.MethodPatch, "/api/admin/services/"+id, token, gin.H{"price": "$40"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := object(t, w)
	assert.Equal(t, "$40", updated["price"])
	assert.Equal(t, "Lawn Mowing", updated["title"])
	assert.Equal(t, "Weekly cuts", updated["description"])

	w = s.do(t, http.MethodPut, "/api/admin/services/"+id, token, gin.H{"slug": "Mowing Service"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mowing-service", object(t, w)["slug"])

	// public by id and by slug
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/services/"+id, "", nil).Code)
	w = s.do(t, http.MethodGet, "/api/services/mowing-service", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, object(t, w)["id"])

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/admin/services/not-an-id", token, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPatch, "/api/admin/services/"+string(models.NewID()), token, gin.H{"price": "1"}).Code)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/admin/services/"+id, token, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/admin/services/"+id, token, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/admin/services/garbage", token, nil).Code)
}

func TestPublicListsAreInvalidatedByAdminWrites(t *testing.T) {
	s := newTestServer(t, RouterOptions{})
	token := s.login(t, adminEmail, adminPassword)

	w := s.do(t, http.MethodGet, "/api/feature-cards", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, array(t, w))

	require.Equal(t, http.StatusCreated,
		s.do(t, http.MethodPost, "/api/admin/feature-cards", token, gin.H{"title": "Local", "description": "Family run", "order": 2}).Code)
	require.Equal(t, http.StatusCreated,
		s.do(t, http.MethodPost, "/api/admin/feature-cards", token, gin.H{"title": "Insured", "description": "Fully covered", "order": 1}).Code)

	cards := array(t, s.do(t, http.MethodGet, "/api/feature-cards", "", nil))
	require.Len(t, cards, 2)
	assert.Equal(t, "Insured", cards[0]["title"])
	assert.Equal(t, "Local", cards[1]["title"])
}

func TestPortfolio_ServiceNamesAndCascade(t *testing.T) {
	s := newTestServer(t, RouterOptions{})
	token := s.login(t, adminEmail, adminPassword)

	w := s.do(t, http.MethodPost, "/api/admin/services", token, gin.H{"title": "Hedges", "description": "Trim"})
	require.Equal(t, http.StatusCreated, w.Code)
	serviceID := object(t, w)["id"].(string)

	w = s.do(t, http.MethodPost, "/api/admin/portfolio", token, gin.H{"title": "Village hedge", "serviceId": serviceID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	itemID := object(t, w)["id"].(string)
	require.Equal(t, http.StatusCreated,
		s.do(t, http.MethodPost, "/api/admin/portfolio", token, gin.H{"title": "Unlinked patio"}).Code)

	w = s.do(t, http.MethodPost, "/api/admin/portfolio", token, gin.H{"title": "Bad ref", "serviceId": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	items := array(t, s.do(t, http.MethodGet, "/api/portfolio", "", nil))
	require.Len(t, items, 2)
	names := map[string]any{}
	for _, item := range items {
		names[item["title"].(string)] = item["serviceName"]
	}
	assert.Equal(t, "Hedges", names["Village hedge"])
	assert.Equal(t, models.GeneralServiceName, names["Unlinked patio"])

	byService := array(t, s.do(t, http.MethodGet, "/api/portfolio/service/"+serviceID, "", nil))
	require.Len(t, byService, 1)
	assert.Equal(t, itemID, byService[0]["id"])

	require.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/admin/services/"+serviceID, token, nil).Code)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/portfolio/"+itemID, "", nil).Code)
	items = array(t, s.do(t, http.MethodGet, "/api/portfolio", "", nil))
	require.Len(t, items, 1)
	assert.Equal(t, "Unlinked patio", items[0]["title"])
}

func TestPatchClearsServiceReference(t *testing.T) {
	s := newTestServer(t, RouterOptions{})
	token := s.login(t, adminEmail, adminPassword)

	w := s.do(t, http.MethodPost, "/api/admin/services", token, gin.H{"title": "Hedges", "description": "Trim"})
	require.Equal(t, http.StatusCreated, w.Code)
	serviceID := object(t, w)["id"].(string)

	w = s.do(t, http.MethodPost, "/api/admin/portfolio", token, gin.H{"title": "Village hedge", "serviceId": serviceID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	itemID := object(t, w)["id"].(string)

	w = s.do(t, http.MethodPatch, "/api/admin/portfolio/"+itemID, token, gin.H{"serviceId": ""})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	item := object(t, w)
	assert.Nil(t, item["serviceId"])
	assert.Equal(t, models.GeneralServiceName, item["serviceName"])

	w = s.do(t, http.MethodGet, "/api/portfolio/"+itemID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.GeneralServiceName, object(t, w)["serviceName"])
	assert.Empty(t, array(t, s.do(t, http.MethodGet, "/api/portfolio/service/"+serviceID, "", nil)))

	w = s.do(t, http.MethodPost, "/api/admin/appointments", token, gin.H{
		"name": "Ann", "email": "ann@example.com", "serviceId": serviceID,
		"date": "2030-06-01", "time": "09:30",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	aptID := object(t, w)["id"].(string)

	w = s.do(t, http.MethodPatch, "/api/admin/appointments/"+aptID, token, gin.H{"serviceId": ""})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	apt := object(t, w)
	assert.Nil(t, apt["serviceId"])
	assert.Equal(t, models.GeneralServiceName, apt["serviceName"])
}

func TestBlog_PublishAndRead(t *testing.T) {
	s := newTestServer(t, RouterOptions{})
	token := s.login(t, adminEmail, adminPassword)

	w := s.do(t, http.MethodPost, "/api/admin/blog", token, gin.H{
		"title":   "Winter Pruning Guide",
		"content": "Prune **before** the sap rises.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	post := object(t, w)
	id := post["id"].(string)
	assert.Equal(t, models.PostStatusDraft, post["status"])
	assert.Equal(t, "winter-pruning-guide", post["slug"])
	assert.EqualValues(t, 0, post["viewCount"])

	assert.Empty(t, array(t, s.do(t, http.MethodGet, "/api/blog", "", nil)))
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/blog/winter-pruning-guide", "", nil).Code)

	errs := fieldErrors(t, s.do(t, http.MethodPatch, "/api/admin/blog/"+id, token, gin.H{"status": "Live"}))
	assert.Contains(t, errs, "status")

	w = s.do(t, http.MethodPatch, "/api/admin/blog/"+id, token, gin.H{"status": models.PostStatusPublished})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, object(t, w)["publishedAt"])

	posts := array(t, s.do(t, http.MethodGet, "/api/blog", "", nil))
	require.Len(t, posts, 1)

	w = s.do(t, http.MethodGet, "/api/blog/winter-pruning-guide", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	read := object(t, w)
	assert.Contains(t, read["contentHtml"], "<strong>before</strong>")
	assert.EqualValues(t, 1, read["viewCount"])

	w = s.do(t, http.MethodGet, "/api/blog/winter-pruning-guide", "", nil)
	assert.EqualValues(t, 2, object(t, w)["viewCount"])

	w = s.do(t, http.MethodPost, "/api/admin/blog", token, gin.H{"title": "Winter pruning guide!", "content": "dup"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestContact(t *testing.T) {
	s := newTestServer(t, RouterOptions{})

	errs := fieldErrors(t, s.do(t, http.MethodPost, "/api/contact", "", gin.H{"name": "Ann", "message": "Hi"}))
	assert.Equal(t, "is required", errs["email"])

	w := s.do(t, http.MethodPost, "/api/contact", "", gin.H{
		"name": "Ann", "email": "ann@example.com", "message": "Quote for a patio?", "status": "Archived",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	inquiry := object(t, w)["inquiry"].(map[string]any)
	assert.Equal(t, models.InquiryStatusNew, inquiry["status"])

	token := s.login(t, adminEmail, adminPassword)
	assert.Len(t, array(t, s.do(t, http.MethodGet, "/api/admin/inquiries?status=New", token, nil)), 1)
	assert.Empty(t, array(t, s.do(t, http.MethodGet, "/api/admin/inquiries?status=Read", token, nil)))
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/admin/inquiries?status=Bogus", token, nil).Code)

	w = s.do(t, http.MethodPatch, "/api/admin/inquiries/"+inquiry["id"].(string), token, gin.H{"status": models.InquiryStatusRead})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.InquiryStatusRead, object(t, w)["status"])
	assert.Equal(t, "Quote for a patio?", object(t, w)["message"])
}

func TestAppointments(t *testing.T) {
	s := newTestServer(t, RouterOptions{})
	token := s.login(t, adminEmail, adminPassword)

	w := s.do(t, http.MethodPost, "/api/admin/services", token, gin.H{"title": "Lawn care", "description": "Mow"})
	require.Equal(t, http.StatusCreated, w.Code)
	serviceID := object(t, w)["id"].(string)

	booking := func(date, tm string, serviceID string) gin.H {
		return gin.H{"name": "Bo", "email": "bo@example.com", "date": date, "time": tm, "serviceId": serviceID, "status": "Confirmed"}
	}

	errs := fieldErrors(t, s.do(t, http.MethodPost, "/api/appointments", "", booking("2030-05-01", "25:00", "")))
	assert.Contains(t, errs, "time")
	errs = fieldErrors(t, s.do(t, http.MethodPost, "/api/appointments", "", booking("May 1st", "10:00", "")))
	assert.Contains(t, errs, "date")
	errs = fieldErrors(t, s.do(t, http.MethodPost, "/api/appointments", "", booking("2000-05-01", "10:00", "")))
	assert.Equal(t, "cannot be in the past", errs["date"])
	errs = fieldErrors(t, s.do(t, http.MethodPost, "/api/appointments", "", booking("2030-05-01", "10:00", string(models.NewID()))))
	assert.Equal(t, "does not match any service", errs["serviceId"])
	errs = fieldErrors(t, s.do(t, http.MethodPost, "/api/appointments", "", booking("2030-05-01", "10:00", "xyz")))
	assert.Equal(t, "is not a valid id", errs["serviceId"])

	w = s.do(t, http.MethodPost, "/api/appointments", "", booking("2030-05-02", "09:00", serviceID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	apt := object(t, w)["appointment"].(map[string]any)
	assert.Equal(t, models.AppointmentPending, apt["status"])
	assert.Equal(t, "Lawn care", apt["serviceName"])
	aptID := apt["id"].(string)

	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/appointments", "", booking("2030-05-01", "14:00", "")).Code)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/appointments", "", booking("2030-05-01", "08:30", "")).Code)

	all := array(t, s.do(t, http.MethodGet, "/api/admin/appointments", token, nil))
	require.Len(t, all, 3)
	assert.Equal(t, "08:30", all[0]["time"])
	assert.Equal(t, "14:00", all[1]["time"])
	assert.Equal(t, "09:00", all[2]["time"])
	assert.Equal(t, models.GeneralServiceName, all[0]["serviceName"])

	ranged := array(t, s.do(t, http.MethodGet, "/api/admin/appointments?startDate=2030-05-02&endDate=2030-05-02", token, nil))
	require.Len(t, ranged, 1)
	assert.Equal(t, aptID, ranged[0]["id"])
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/admin/appointments?startDate=tomorrow", token, nil).Code)

	w = s.do(t, http.MethodPatch, "/api/admin/appointments/"+aptID, token, gin.H{"date": "2030-06-01", "notes": "gate code 1234"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "gate code 1234", object(t, w)["notes"])
	assert.Equal(t, "09:00", object(t, w)["time"])

	w = s.do(t, http.MethodPatch, "/api/admin/appointments/"+aptID+"/cancel", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.AppointmentCancelled, object(t, w)["appointment"].(map[string]any)["status"])

	assert.Len(t, array(t, s.do(t, http.MethodGet, "/api/admin/appointments?status=Cancelled", token, nil)), 1)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPatch, "/api/admin/appointments/"+string(models.NewID())+"/cancel", token, nil).Code)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/admin/appointments/"+aptID, token, nil).Code)
	assert.Len(t, array(t, s.do(t, http.MethodGet, "/api/admin/appointments", token, nil)), 2)
}

func TestShowcaseResources(t *testing.T) {
	s := newTestServer(t, RouterOptions{})
	token := s.login(t, adminEmail, adminPassword)

	w := s.do(t, http.MethodPost, "/api/admin/testimonials", token, gin.H{"name": "Cy", "content": "Lovely work"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 5, object(t, w)["rating"])

	errs := fieldErrors(t, s.do(t, http.MethodPost, "/api/admin/testimonials", token, gin.H{"name": "Cy", "content": "x", "rating": 9}))
	assert.Contains(t, errs, "rating")

	w = s.do(t, http.MethodPost, "/api/admin/subscriptions", token, gin.H{"name": "Basic", "price": 30, "features": []string{"Mowing"}})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "monthly", object(t, w)["interval"])

	errs = fieldErrors(t, s.do(t, http.MethodPost, "/api/admin/carousel-images", token, gin.H{"title": "Hero"}))
	assert.Contains(t, errs, "imageUrl")

	assert.Len(t, array(t, s.do(t, http.MethodGet, "/api/testimonials", "", nil)), 1)
	assert.Len(t, array(t, s.do(t, http.MethodGet, "/api/subscriptions", "", nil)), 1)
	assert.Empty(t, array(t, s.do(t, http.MethodGet, "/api/carousel-images", "", nil)))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, RouterOptions{})
	w := s.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", object(t, w)["status"])
}

func TestMalformedBody(t *testing.T) {
	s := newTestServer(t, RouterOptions{})
	w := s.do(t, http.MethodPost, "/api/contact", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", object(t, w)["message"])
}
