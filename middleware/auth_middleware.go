package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wonderlust/services"
	"wonderlust/utils"
)

// AuthMiddleware requires a live login. It verifies the cookie token, checks
// the server-side session record still exists and has not expired, then puts
// user_id and session_id in the context for downstream handlers. Anonymous
// requests get a 401 pointing at /login and the chain stops.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("token")
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required!", "redirect": "/login"})
			c.Abort()
			return
		}

		sessionID, err := utils.ParseSessionToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required!", "redirect": "/login"})
			c.Abort()
			return
		}

		session, err := services.GetSession(sessionID)
		if err != nil || session.Expired(time.Now()) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required!", "redirect": "/login"})
			c.Abort()
			return
		}

		c.Set("user_id", session.UserID.Hex())
		c.Set("session_id", session.ID.Hex())
		c.Next()
	}
}
