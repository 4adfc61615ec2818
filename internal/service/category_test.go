package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/OtlotlengMajuja/storefront/internal/domain"
)

// --- Mocks ---

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) ListAll(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

type mockCategoryCache struct {
	mock.Mock
}

func (m *mockCategoryCache) Get(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockCategoryCache) Set(ctx context.Context, categories []domain.Category) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

func (m *mockCategoryCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func storedCategories() []domain.Category {
	return []domain.Category{
		{Name: "books", ProductCount: 12},
		{Name: "electronics", ProductCount: 5},
	}
}

// --- ListCategories ---

func TestListCategories_CacheHit(t *testing.T) {
	repo := new(mockCategoryRepository)
	cache := new(mockCategoryCache)
	svc := NewCategoryService(repo, cache, newTestLogger())

	cache.On("Get", mock.Anything).Return(storedCategories(), nil)

	got, err := svc.ListCategories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, storedCategories(), got)
	repo.AssertNotCalled(t, "ListAll", mock.Anything)
}

func TestListCategories_CacheMissFillsCache(t *testing.T) {
	repo := new(mockCategoryRepository)
	cache := new(mockCategoryCache)
	svc := NewCategoryService(repo, cache, newTestLogger())

	cache.On("Get", mock.Anything).Return(nil, assert.AnError)
	repo.On("ListAll", mock.Anything).Return(storedCategories(), nil)
	cache.On("Set", mock.Anything, storedCategories()).Return(nil)

	got, err := svc.ListCategories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, storedCategories(), got)
	cache.AssertExpectations(t)
}

func TestListCategories_CacheSetFailureIsNonFatal(t *testing.T) {
	repo := new(mockCategoryRepository)
	cache := new(mockCategoryCache)
	svc := NewCategoryService(repo, cache, newTestLogger())

	cache.On("Get", mock.Anything).Return(nil, assert.AnError)
	repo.On("ListAll", mock.Anything).Return(storedCategories(), nil)
	cache.On("Set", mock.Anything, mock.Anything).Return(assert.AnError)

	got, err := svc.ListCategories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, storedCategories(), got)
}

func TestListCategories_NoCache(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := NewCategoryService(repo, nil, newTestLogger())

	repo.On("ListAll", mock.Anything).Return(storedCategories(), nil)

	got, err := svc.ListCategories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, storedCategories(), got)
}

func TestListCategories_StoreError(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := NewCategoryService(repo, nil, newTestLogger())

	repo.On("ListAll", mock.Anything).Return([]domain.Category(nil), assert.AnError)

	_, err := svc.ListCategories(context.Background())

	assert.Error(t, err)
}

// --- InvalidateCache ---

func TestInvalidateCache(t *testing.T) {
	repo := new(mockCategoryRepository)
	cache := new(mockCategoryCache)
	svc := NewCategoryService(repo, cache, newTestLogger())

	cache.On("Invalidate", mock.Anything).Return(nil)

	require.NoError(t, svc.InvalidateCache(context.Background()))
	cache.AssertExpectations(t)
}

func TestInvalidateCache_NoCache(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := NewCategoryService(repo, nil, newTestLogger())

	assert.NoError(t, svc.InvalidateCache(context.Background()))
}
