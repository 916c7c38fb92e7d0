package routes

import (
	"github.com/gin-gonic/gin"

	"wonderlust/controllers"
	middlewares "wonderlust/middleware"
)

// SetupListingRoutes registers the listing and review routes. Guarded
// routes always run validate, then authenticate, then authorize, then the
// handler.
func SetupListingRoutes(r *gin.Engine) {
	r.GET("/wonderlust", controllers.ListListings)
	r.GET("/wonderlust/new",
		middlewares.AuthMiddleware(),
		controllers.NewListingForm)
	r.POST("/wonderlust/new",
		middlewares.ValidateListing(),
		middlewares.AuthMiddleware(),
		controllers.CreateListing)
	r.GET("/wonderlust/:id", controllers.ShowListing)
	r.GET("/wonderlust/edit/:id",
		middlewares.AuthMiddleware(),
		middlewares.RequireListingOwner(),
		controllers.EditListingForm)
	r.PATCH("/wonderlust/edit/:id",
		middlewares.ValidateListing(),
		middlewares.AuthMiddleware(),
		middlewares.RequireListingOwner(),
		controllers.UpdateListing)
	r.DELETE("/wonderlust/:id",
		middlewares.AuthMiddleware(),
		middlewares.RequireListingOwner(),
		controllers.DeleteListing)

	r.POST("/listings/:id/review",
		middlewares.ValidateReview(),
		middlewares.AuthMiddleware(),
		controllers.AddReview)
	r.DELETE("/wonderlust/:id/review/:reviewId",
		middlewares.AuthMiddleware(),
		middlewares.RequireReviewAuthor(),
		controllers.DeleteReview)
}
