package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/OtlotlengMajuja/storefront/internal/auth"
	"github.com/OtlotlengMajuja/storefront/internal/domain"
	"github.com/OtlotlengMajuja/storefront/internal/event"
	"github.com/OtlotlengMajuja/storefront/internal/repository"
	"github.com/OtlotlengMajuja/storefront/internal/service"
	"github.com/OtlotlengMajuja/storefront/pkg/health"
	"github.com/OtlotlengMajuja/storefront/pkg/httputil"
	pkgkafka "github.com/OtlotlengMajuja/storefront/pkg/kafka"
	"github.com/OtlotlengMajuja/storefront/pkg/middleware"
)

// ============================================================================
// Mock repositories
// ============================================================================

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) ListAll(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) GetByID(ctx context.Context, productID, reviewID string) (*domain.Review, error) {
	args := m.Called(ctx, productID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepository) ListByProductID(ctx context.Context, productID string, page, perPage int) ([]domain.Review, int, error) {
	args := m.Called(ctx, productID, page, perPage)
	return args.Get(0).([]domain.Review), args.Int(1), args.Error(2)
}

func (m *mockReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) Delete(ctx context.Context, productID, reviewID string) error {
	args := m.Called(ctx, productID, reviewID)
	return args.Error(0)
}

func (m *mockReviewRepository) GetSummary(ctx context.Context, productID string) (*domain.ReviewSummary, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewSummary), args.Error(1)
}

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testEventProducer() *event.Producer {
	logger := testLogger()
	// Points at no live broker; publish failures are logged, not fatal.
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	return event.NewProducer(kafkaProducer, logger)
}

// testEnv wires the full router against mocked repositories.
type testEnv struct {
	products   *mockProductRepository
	categories *mockCategoryRepository
	reviews    *mockReviewRepository
	jwt        *auth.JWTManager
	router     http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := testLogger()

	env := &testEnv{
		products:   new(mockProductRepository),
		categories: new(mockCategoryRepository),
		reviews:    new(mockReviewRepository),
		jwt:        auth.NewJWTManager("test-secret", time.Hour),
	}

	env.router = NewRouter(RouterConfig{
		Catalog:       service.NewCatalogService(env.products, logger),
		Categories:    service.NewCategoryService(env.categories, nil, logger),
		Reviews:       service.NewReviewService(env.reviews, env.products, testEventProducer(), logger),
		JWT:           env.jwt,
		Health:        health.NewHandler(),
		CORS:          middleware.DefaultCORSConfig(),
		SecureCookies: false,
		CategoryTTL:   300,
	}, logger)

	return env
}

// bearerFor issues a valid session token for the given identity.
func (e *testEnv) bearerFor(t *testing.T, email, name string) string {
	t.Helper()
	token, err := e.jwt.GenerateSessionToken(email, name)
	require.NoError(t, err)
	return "Bearer " + token
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(rec *httptest.ResponseRecorder, v any) error {
	return json.NewDecoder(rec.Body).Decode(v)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}

func sampleProduct() *domain.Product {
	return &domain.Product{
		ID:          "00001",
		Title:       "USB Hub",
		Description: "4-port USB-C hub",
		Price:       12999,
		Category:    "electronics",
		Tags:        []string{"usb", "hub"},
		Rating:      4.5,
		Stock:       10,
		Images:      []string{"https://img.example.com/hub.jpg"},
		CreatedAt:   time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func sampleReview() *domain.Review {
	return &domain.Review{
		ID:            "550e8400-e29b-41d4-a716-446655440001",
		ProductID:     "00001",
		Rating:        5,
		Comment:       "Great product",
		ReviewerEmail: "a@x.com",
		ReviewerName:  "Alice",
		Date:          time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}
