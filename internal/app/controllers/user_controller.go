package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/emirkaya/schoolhub/internal/app/auth"
	"github.com/emirkaya/schoolhub/internal/app/models/dto"
	"github.com/emirkaya/schoolhub/internal/app/services"
	"github.com/emirkaya/schoolhub/internal/middleware"
	"github.com/emirkaya/schoolhub/internal/pkg/apperrors"
)

// UserController handles account management operations
type UserController struct {
	accountService *services.AccountService
}

// NewUserController creates a new UserController
func NewUserController(accountService *services.AccountService) *UserController {
	return &UserController{accountService: accountService}
}

// CreateUser creates a new account together with its role profile
// @Summary Create account
// @Description Creates a user account; student and teacher roles also get their profile row
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterRequest true "Account information"
// @Success 201 {object} dto.UserResponse "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindingError(ctx, err)
		return
	}

	resp, err := c.accountService.Register(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// ListUsers lists all accounts
// @Summary List accounts
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserListResponse "Accounts"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	resp, err := c.accountService.ListUsers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetUser retrieves one account
// @Summary Get account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID" minimum(1)
// @Success 200 {object} dto.UserResponse "Account"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	if !appauth.CanAccess(actor, appauth.ActionAccountRead, appauth.AccountResource(id)) {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	resp, err := c.accountService.GetUser(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UpdateUser partially updates an account
// @Summary Update account
// @Description Updates name, password or active flag; role never changes
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID" minimum(1)
// @Param request body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse "Updated account"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindingError(ctx, err)
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	if !appauth.CanAccess(actor, appauth.ActionAccountUpdate, appauth.AccountResource(id)) {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}
	// Only admins may flip the active flag.
	if req.IsActive != nil && !actor.IsAdmin() {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	resp, err := c.accountService.UpdateUser(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// DeleteUser removes an account
// @Summary Delete account
// @Description Deletes an account; sessions and role profile go with it. Teachers owning classes are rejected.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID" minimum(1)
// @Success 200 {object} dto.SuccessResponse "Account deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 409 {object} dto.ErrorResponse "Teacher still owns classes"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.accountService.DeleteUser(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Account deleted"})
}
