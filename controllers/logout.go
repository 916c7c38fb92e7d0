package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"wonderlust/services"
)

// Logout deletes the server-side session record and expires the cookie.
func Logout(c *gin.Context) {
	if sessionID, err := primitive.ObjectIDFromHex(c.GetString("session_id")); err == nil {
		if err := services.DeleteSession(sessionID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
			return
		}
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Logout Successfully!", "redirect": "/wonderlust"})
}
