package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	middlewares "wonderlust/middleware"
	"wonderlust/models"
)

// formImage pulls an optional uploaded image out of the request and stores
// it. Returns nil when the request carries no file.
func formImage(c *gin.Context) (*models.Image, error) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		return nil, nil
	}
	defer file.Close()

	image, err := uploadListingImage(file, header.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// ListListings returns every listing, flat.
func ListListings(c *gin.Context) {
	listings, err := models.GetAllListings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, listings)
}

// ShowListing returns one listing with owner and reviews (authors included).
func ShowListing(c *gin.Context) {
	listing, err := models.GetExpandedListing(c.Param("id"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unable to get listing!", "redirect": "/wonderlust"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, listing)
}

// NewListingForm backs the creation page.
func NewListingForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": gin.H{
		"action": "/wonderlust/new",
		"method": "POST",
		"fields": []string{"title", "description", "price", "location", "country", "image"},
	}})
}

// CreateListing persists a new listing owned by the logged-in user. The
// payload was already validated by the middleware chain.
func CreateListing(c *gin.Context) {
	input := c.MustGet(middlewares.ListingInputKey).(models.ListingInput)

	owner, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required!", "redirect": "/login"})
		return
	}

	image, err := formImage(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	listing := models.Listing{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Location:    input.Location,
		Country:     input.Country,
		Owner:       owner,
	}
	if image != nil {
		listing.Image = *image
	}

	created, err := models.AddListing(listing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "New listing created successfully!", "redirect": "/wonderlust", "listing": created})
}

// EditListingForm backs the edit page with the current listing values.
// The ownership middleware already loaded and checked the listing.
func EditListingForm(c *gin.Context) {
	listing := c.MustGet("listing").(models.Listing)
	c.JSON(http.StatusOK, gin.H{"listing": listing, "form": gin.H{
		"action": "/wonderlust/edit/" + listing.ID.Hex(),
		"method": "PATCH",
	}})
}

// UpdateListing applies a validated edit, replacing the image when a new
// one was uploaded.
func UpdateListing(c *gin.Context) {
	input := c.MustGet(middlewares.ListingInputKey).(models.ListingInput)

	image, err := formImage(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	listing, err := models.UpdateListing(c.Param("id"), input, image)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unable to get listing!", "redirect": "/wonderlust"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing altered successfully!", "redirect": "/wonderlust", "listing": listing})
}

// DeleteListing removes the listing and every review it referenced.
func DeleteListing(c *gin.Context) {
	if err := models.DeleteListing(c.Param("id")); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unable to delete listing.", "redirect": "/wonderlust"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted successfully!", "redirect": "/wonderlust"})
}
