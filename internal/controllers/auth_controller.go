package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todo-be/internal/models"
	"todo-be/internal/sanitize"
	"todo-be/internal/service"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Signup handles POST /api/auth/signup
func (ac *AuthController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	message, err := ac.authService.Register(c.Request.Context(), sanitize.Strip(req.Email), req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: message})
}

// Signin handles POST /api/auth/signin
func (ac *AuthController) Signin(c *gin.Context) {
	var req models.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	token, err := ac.authService.Login(c.Request.Context(), sanitize.Strip(req.Email), req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.SigninResponse{Message: service.MsgLoggedIn, Token: token})
}
