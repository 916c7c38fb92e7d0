package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"wonderlust/models"
)

// RequireListingOwner loads the listing at :id and rejects the request
// unless the logged-in user owns it. Runs after AuthMiddleware. A missing
// listing is a clean 404, never a fault. The loaded listing is stored in
// the context so handlers do not refetch it.
func RequireListingOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		listing, err := models.GetListingByID(c.Param("id"))
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			c.Abort()
			return
		}

		if listing.Owner.Hex() != c.GetString("user_id") {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to modify this listing."})
			c.Abort()
			return
		}

		c.Set("listing", listing)
		c.Next()
	}
}

// RequireReviewAuthor loads the review at :reviewId and rejects the request
// unless the logged-in user wrote it.
func RequireReviewAuthor() gin.HandlerFunc {
	return func(c *gin.Context) {
		review, err := models.GetReviewByID(c.Param("reviewId"))
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			c.Abort()
			return
		}

		if review.Author.Hex() != c.GetString("user_id") {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to delete this review."})
			c.Abort()
			return
		}

		c.Next()
	}
}
