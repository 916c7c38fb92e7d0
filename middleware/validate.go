package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"wonderlust/models"
)

// Context keys for payloads parsed by the validation middleware.
const (
	ListingInputKey = "listingInput"
	ReviewInputKey  = "reviewInput"
)

// ValidateListing binds the listing payload (JSON or form) and rejects the
// request before anything downstream runs when a required field is missing
// or price is below 100. The parsed input lands in the context.
func ValidateListing() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.ListingInput
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Required data missing", "details": validationDetails(err)})
			c.Abort()
			return
		}
		c.Set(ListingInputKey, input)
		c.Next()
	}
}

// ValidateReview does the same for review payloads.
func ValidateReview() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.ReviewInput
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Required data missing", "details": validationDetails(err)})
			c.Abort()
			return
		}
		c.Set(ReviewInputKey, input)
		c.Next()
	}
}

// validationDetails turns validator errors into per-field messages; other
// bind errors (malformed body) come back as-is.
func validationDetails(err error) []string {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	details := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		switch fieldErr.Tag() {
		case "required":
			details = append(details, fieldErr.Field()+" is required")
		case "min":
			details = append(details, fieldErr.Field()+" must be at least "+fieldErr.Param())
		case "max":
			details = append(details, fieldErr.Field()+" must be at most "+fieldErr.Param())
		default:
			details = append(details, fieldErr.Field()+" is invalid")
		}
	}
	return details
}
