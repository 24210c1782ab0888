package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emirkaya/schoolhub/internal/app/models/dto"
	"github.com/emirkaya/schoolhub/internal/app/services"
	"github.com/emirkaya/schoolhub/internal/middleware"
	"github.com/emirkaya/schoolhub/internal/pkg/auth"
)

// AuthController handles authentication operations
type AuthController struct {
	accountService *services.AccountService
	sessionService *services.SessionService
}

// NewAuthController creates a new AuthController
func NewAuthController(accountService *services.AccountService, sessionService *services.SessionService) *AuthController {
	return &AuthController{
		accountService: accountService,
		sessionService: sessionService,
	}
}

// Login authenticates a user and opens a session
// @Summary Log in
// @Description Verifies credentials and returns a fresh session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse "Authenticated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials or disabled account"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindingError(ctx, err)
		return
	}

	resp, err := c.accountService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Logout revokes the presented session
// @Summary Log out
// @Description Revokes the session token used for this request
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse "Session revoked"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	token, err := auth.ExtractBearerToken(ctx.GetHeader("Authorization"))
	if err != nil {
		ctx.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "Authentication required"))
		return
	}

	if err := c.sessionService.Revoke(ctx, token); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Logged out"})
}

// LogoutAll revokes every session of the calling user
// @Summary Log out everywhere
// @Description Revokes all sessions belonging to the calling user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse "Sessions revoked"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/logout-all [post]
func (c *AuthController) LogoutAll(ctx *gin.Context) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "Authentication required"))
		return
	}

	if err := c.sessionService.RevokeAll(ctx, actor.UserID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "All sessions revoked"})
}

// Me returns the calling user's account
// @Summary Current account
// @Description Returns the account behind the presented session token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse "Current account"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "Authentication required"))
		return
	}

	resp, err := c.accountService.GetUser(ctx, actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
