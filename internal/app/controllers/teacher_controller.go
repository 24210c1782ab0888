package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emirkaya/schoolhub/internal/app/models/dto"
	"github.com/emirkaya/schoolhub/internal/app/services"
	"github.com/emirkaya/schoolhub/internal/middleware"
)

// TeacherController handles teacher profile reads
type TeacherController struct {
	accountService *services.AccountService
	classService   *services.ClassService
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(accountService *services.AccountService, classService *services.ClassService) *TeacherController {
	return &TeacherController{
		accountService: accountService,
		classService:   classService,
	}
}

// ListTeachers lists all teacher profiles
// @Summary List teachers
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TeacherResponse "Teachers"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teachers [get]
func (c *TeacherController) ListTeachers(ctx *gin.Context) {
	resp, err := c.accountService.ListTeachers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetTeacher retrieves one teacher profile with the classes it owns
// @Summary Get teacher
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID" minimum(1)
// @Success 200 {object} dto.TeacherDetailResponse "Teacher"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teachers/{id} [get]
func (c *TeacherController) GetTeacher(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	teacher, err := c.accountService.GetTeacher(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	classes, err := c.classService.ListClassesByTeacher(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TeacherDetailResponse{
		TeacherResponse: *teacher,
		Classes:         classes,
	})
}
