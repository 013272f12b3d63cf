package controllers

import (
	"net/http"

	"github.com/MiiguelHG/escolar-api/internal/app/models/dto"
	"github.com/MiiguelHG/escolar-api/internal/app/services"
	"github.com/MiiguelHG/escolar-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AuthController handles authentication operations
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Token handles the form-encoded login and returns a bearer token. The
// response body is the bare token object, not the standard envelope, so
// password-flow clients can read access_token at the top level.
func (c *AuthController) Token(ctx *gin.Context) {
	var req dto.TokenRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid credentials payload")
		errorDetail = errorDetail.WithDetails(middleware.ValidationDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	token, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, token)
}

// Root answers the authenticated liveness probe
func (c *AuthController) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Hello World"})
}
