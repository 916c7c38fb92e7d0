package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"wonderlust/models"
	"wonderlust/services"
	"wonderlust/utils"
)

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// startSession records a server-side session and sets the signed cookie.
func startSession(c *gin.Context, userID primitive.ObjectID) error {
	session, err := services.CreateSession(userID)
	if err != nil {
		return err
	}

	token, err := utils.SignSessionToken(session.ID, session.ExpiresAt)
	if err != nil {
		return err
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
	return nil
}

// LoginForm backs the login page, same deal as SignupForm.
func LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": gin.H{"action": "/login", "method": "POST", "fields": []string{"username", "password"}}})
}

// Login checks credentials and starts a session.
func Login(c *gin.Context) {
	type LoginInput struct {
		Username string `json:"username" form:"username" binding:"required"`
		Password string `json:"password" form:"password" binding:"required"`
	}

	var input LoginInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "redirect": "/login"})
		return
	}

	user, err := models.GetUserByUsername(input.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password", "redirect": "/login"})
		return
	}

	if !checkPasswordHash(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password", "redirect": "/login"})
		return
	}

	if err := startSession(c, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successfully!", "redirect": "/wonderlust"})
}
