package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wonderlust/models"
)

func postJSON(t *testing.T, handler gin.HandlerFunc, body string) (*httptest.ResponseRecorder, *bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reached := false
	r := gin.New()
	r.POST("/", handler, func(c *gin.Context) {
		reached = true
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w, &reached
}

func TestValidateListingMissingTitle(t *testing.T) {
	w, reached := postJSON(t, ValidateListing(),
		`{"description":"Cozy","price":150,"country":"NO","location":"Oslo"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, *reached, "handler must not run on invalid payload")
	assert.Contains(t, w.Body.String(), "Title is required")
}

func TestValidateListingPriceBelowMinimum(t *testing.T) {
	w, reached := postJSON(t, ValidateListing(),
		`{"title":"Cabin","description":"Cozy","price":50,"country":"NO","location":"Oslo"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, *reached)
	assert.Contains(t, w.Body.String(), "Price must be at least 100")
}

func TestValidateListingPriceOptional(t *testing.T) {
	w, reached := postJSON(t, ValidateListing(),
		`{"title":"Cabin","description":"Cozy","country":"NO","location":"Oslo"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *reached)
}

func TestValidateListingStoresInput(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got models.ListingInput
	r := gin.New()
	r.POST("/", ValidateListing(), func(c *gin.Context) {
		got = c.MustGet(ListingInputKey).(models.ListingInput)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"title":"Cabin","description":"Cozy","price":150,"country":"NO","location":"Oslo"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cabin", got.Title)
	assert.Equal(t, float64(150), got.Price)
	assert.Equal(t, "NO", got.Country)
}

func TestValidateListingAcceptsFormEncoding(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/", ValidateListing(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader("title=Cabin&description=Cozy&price=150&country=NO&location=Oslo"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidateReviewMissingComment(t *testing.T) {
	w, reached := postJSON(t, ValidateReview(), `{"rating":5}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, *reached)
	assert.Contains(t, w.Body.String(), "Comment is required")
}

func TestValidateReviewRatingOutOfRange(t *testing.T) {
	w, reached := postJSON(t, ValidateReview(), `{"rating":9,"comment":"Great"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, *reached)
}

func TestValidateReviewValid(t *testing.T) {
	w, reached := postJSON(t, ValidateReview(), `{"rating":5,"comment":"Great"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *reached)
}
