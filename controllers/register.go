package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"wonderlust/models"
)

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	return string(bytes), err
}

// SignupForm backs the signup page; the template layer is external, so
// this just tells the renderer where to post.
func SignupForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": gin.H{"action": "/signup", "method": "POST", "fields": []string{"username", "email", "password"}}})
}

// Signup creates the account and logs the new user straight in.
func Signup(c *gin.Context) {
	type SignupInput struct {
		Username string `json:"username" form:"username" binding:"required"`
		Email    string `json:"email" form:"email" binding:"required,email"`
		Password string `json:"password" form:"password" binding:"required,min=8"`
	}

	var input SignupInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "redirect": "/signup"})
		return
	}

	if _, err := models.GetUserByUsername(input.Username); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists", "redirect": "/signup"})
		return
	}
	if _, err := models.GetUserByEmail(input.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists", "redirect": "/signup"})
		return
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	user, err := models.AddUser(models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hashed,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	if err := startSession(c, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Welcome to wonderlust!", "redirect": "/wonderlust", "user": user})
}
