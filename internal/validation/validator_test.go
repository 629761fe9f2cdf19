package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readquest/readquest-server/internal/domain"
	domainerrors "github.com/readquest/readquest-server/internal/errors"
)

func TestValidate_AcceptsValidRequest(t *testing.T) {
	v := New()

	err := v.Validate(domain.RecommendationRequest{
		Grade: "3rd Grade",
		Month: "March",
		Theme: domain.AllThemes,
		Count: 11,
	})
	assert.NoError(t, err)
}

func TestValidate_RejectsMissingFields(t *testing.T) {
	v := New()

	err := v.Validate(domain.RecommendationRequest{Count: 10})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	var domainErr *domainerrors.Error
	require.True(t, domainerrors.As(err, &domainErr))

	// Field names come from JSON tags.
	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "grade")
	assert.Contains(t, details, "month")
	assert.Contains(t, details, "theme")
}

func TestValidate_RejectsOutOfRangeCount(t *testing.T) {
	v := New()

	err := v.Validate(domain.RecommendationRequest{
		Grade: "3rd Grade",
		Month: "March",
		Theme: domain.AllThemes,
		Count: 51,
	})
	assert.Error(t, err)
}
