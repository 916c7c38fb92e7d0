package routes

import (
	"github.com/gin-gonic/gin"

	"wonderlust/controllers"
	middlewares "wonderlust/middleware"
)

func SetupAuthRoutes(r *gin.Engine) {
	r.GET("/signUp", controllers.SignupForm)
	r.POST("/signup", controllers.Signup)
	r.GET("/login", controllers.LoginForm)
	r.POST("/login", controllers.Login)
	r.GET("/logout", middlewares.AuthMiddleware(), controllers.Logout)
}
