package postgres

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OtlotlengMajuja/storefront/internal/domain"
	apperrors "github.com/OtlotlengMajuja/storefront/pkg/errors"
)

var reviewCols = []string{
	"id", "product_id", "rating", "comment", "reviewer_email", "reviewer_name", "date",
}

var reviewColsWithCount = append(append([]string{}, reviewCols...), "total_count")

func sampleReview() domain.Review {
	return domain.Review{
		ID:            "550e8400-e29b-41d4-a716-446655440001",
		ProductID:     "00001",
		Rating:        5,
		Comment:       "Excellent sound quality.",
		ReviewerEmail: "a@x.com",
		ReviewerName:  "Alice",
		Date:          now,
	}
}

func reviewRow(r domain.Review) []any {
	return []any{
		r.ID, r.ProductID, r.Rating, r.Comment,
		r.ReviewerEmail, r.ReviewerName, r.Date,
	}
}

func TestReviewRepository_Create_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	rv := sampleReview()
	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(rv.ID, rv.ProductID, rv.Rating, rv.Comment, rv.ReviewerEmail, rv.ReviewerName, rv.Date).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), &rv)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Create_StoreError(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	rv := sampleReview()
	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(rv.ID, rv.ProductID, rv.Rating, rv.Comment, rv.ReviewerEmail, rv.ReviewerName, rv.Date).
		WillReturnError(errors.New("connection refused"))

	err := repo.Create(context.Background(), &rv)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_GetByID_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	rv := sampleReview()
	mock.ExpectQuery("SELECT .+ FROM reviews WHERE id = .+ AND product_id").
		WithArgs(rv.ID, rv.ProductID).
		WillReturnRows(pgxmock.NewRows(reviewCols).AddRow(reviewRow(rv)...))

	result, err := repo.GetByID(context.Background(), rv.ProductID, rv.ID)
	require.NoError(t, err)
	assert.Equal(t, rv.ID, result.ID)
	assert.Equal(t, rv.ReviewerEmail, result.ReviewerEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM reviews WHERE id").
		WithArgs("missing-id", "00001").
		WillReturnRows(pgxmock.NewRows(reviewCols))

	_, err := repo.GetByID(context.Background(), "00001", "missing-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ListByProductID(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	rv := sampleReview()
	mock.ExpectQuery("SELECT .+ FROM reviews WHERE product_id").
		WithArgs("00001", 20, 0).
		WillReturnRows(pgxmock.NewRows(reviewColsWithCount).
			AddRow(append(reviewRow(rv), 1)...))

	reviews, total, err := repo.ListByProductID(context.Background(), "00001", 1, 20)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ListByProductID_Empty(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM reviews WHERE product_id").
		WithArgs("00001", 20, 0).
		WillReturnRows(pgxmock.NewRows(reviewColsWithCount))

	reviews, total, err := repo.ListByProductID(context.Background(), "00001", 1, 20)
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Update_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	rv := sampleReview()
	mock.ExpectExec("UPDATE reviews SET rating").
		WithArgs(rv.Rating, rv.Comment, rv.Date, rv.ID, rv.ProductID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Update(context.Background(), &rv)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Update_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	rv := sampleReview()
	mock.ExpectExec("UPDATE reviews SET rating").
		WithArgs(rv.Rating, rv.Comment, rv.Date, rv.ID, rv.ProductID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &rv)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Delete_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	mock.ExpectExec("DELETE FROM reviews WHERE id").
		WithArgs("rev-1", "00001").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), "00001", "rev-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Delete_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	mock.ExpectExec("DELETE FROM reviews WHERE id").
		WithArgs("rev-404", "00001").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "00001", "rev-404")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_GetSummary(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	mock.ExpectQuery("SELECT COALESCE\\(AVG\\(rating\\), 0\\), COUNT\\(\\*\\) FROM reviews").
		WithArgs("00001").
		WillReturnRows(pgxmock.NewRows([]string{"avg", "count"}).AddRow(4.333, 3))

	summary, err := repo.GetSummary(context.Background(), "00001")
	require.NoError(t, err)
	assert.Equal(t, 4.3, summary.AverageRating)
	assert.Equal(t, 3, summary.TotalCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
