package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDetails_DoesNotMutatePredefined(t *testing.T) {
	withDetails := ErrProfileRequired.WithDetails(gin.H{"role": "donor"})

	assert.Nil(t, ErrProfileRequired.Details)
	assert.Equal(t, gin.H{"role": "donor"}, withDetails.Details)
	assert.Equal(t, ErrProfileRequired.Code, withDetails.Code)
}

func TestWrap_UnwrapsUnderlying(t *testing.T) {
	cause := errors.New("boom")
	err := ErrNotFound(cause, "blood_request", "Blood request not found")

	assert.True(t, Is(err, cause))
	assert.Equal(t, http.StatusNotFound, err.HTTPCode)
	assert.Contains(t, err.Error(), "boom")
}

func TestHandleError_UnknownErrorBecomes500(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleError(c, errors.New("db exploded"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["error"]["message"])
	assert.NotContains(t, w.Body.String(), "db exploded")
}

func TestHandleError_AppErrorKeepsStatus(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleError(c, ErrDonorNotEligible)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), string(CodeDonorNotEligible))
}

func TestIs_MatchesSentinelAfterWithDetails(t *testing.T) {
	detailed := ErrDonorNotEligible.WithDetails(gin.H{"next_eligible_date": "2024-03-15"})

	assert.ErrorIs(t, detailed, ErrDonorNotEligible)
	assert.NotErrorIs(t, detailed, ErrProfileRequired)
}
