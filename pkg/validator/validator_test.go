package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testReview struct {
	Rating  int    `validate:"required,min=1,max=5"`
	Comment string `validate:"required"`
	Email   string `validate:"omitempty,email"`
}

func TestValidate_Success(t *testing.T) {
	s := testReview{Rating: 4, Comment: "solid", Email: "alice@example.com"}
	err := Validate(s)
	assert.NoError(t, err)
}

func TestValidate_MissingRequired(t *testing.T) {
	s := testReview{Rating: 4}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "Comment")
	assert.Equal(t, "is required", fields["Comment"])
}

func TestValidate_RatingOutOfRange(t *testing.T) {
	s := testReview{Rating: 6, Comment: "too good"}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "Rating")
	assert.Contains(t, fields["Rating"], "5")
}

func TestValidate_InvalidEmail(t *testing.T) {
	s := testReview{Rating: 3, Comment: "ok", Email: "not-an-email"}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "Email")
	assert.Equal(t, "must be a valid email address", fields["Email"])
}

func TestValidationError_ErrorString(t *testing.T) {
	s := testReview{}
	err := Validate(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Rating")
	assert.Contains(t, err.Error(), "Comment")
}
