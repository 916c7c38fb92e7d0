package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	middlewares "wonderlust/middleware"
	"wonderlust/models"
)

// AddReview attaches a validated review to the listing at :id, authored by
// the logged-in user.
func AddReview(c *gin.Context) {
	input := c.MustGet(middlewares.ReviewInputKey).(models.ReviewInput)

	author, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required!", "redirect": "/login"})
		return
	}

	listingID := c.Param("id")
	review, err := models.AddReview(listingID, models.Review{
		Rating:  input.Rating,
		Comment: input.Comment,
		Author:  author,
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unable to get listing!", "redirect": "/wonderlust"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Review added successfully!", "redirect": "/wonderlust/" + listingID, "review": review})
}

// DeleteReview removes the review at :reviewId from the listing at :id and
// deletes the record. Authorship was checked by the middleware chain.
func DeleteReview(c *gin.Context) {
	listingID := c.Param("id")
	if err := models.DeleteReview(listingID, c.Param("reviewId")); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found", "redirect": "/wonderlust/" + listingID})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully!", "redirect": "/wonderlust/" + listingID})
}
