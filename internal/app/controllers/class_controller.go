package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emirkaya/schoolhub/internal/app/models/dto"
	"github.com/emirkaya/schoolhub/internal/app/services"
	"github.com/emirkaya/schoolhub/internal/middleware"
)

// ClassController handles class management operations
type ClassController struct {
	classService      *services.ClassService
	enrollmentService *services.EnrollmentService
}

// NewClassController creates a new ClassController
func NewClassController(classService *services.ClassService, enrollmentService *services.EnrollmentService) *ClassController {
	return &ClassController{
		classService:      classService,
		enrollmentService: enrollmentService,
	}
}

// CreateClass creates a class
// @Summary Create class
// @Description Teachers create classes for themselves; admins must name the owning teacher
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClassRequest true "Class information"
// @Success 201 {object} dto.ClassResponse "Class created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Failure 409 {object} dto.ErrorResponse "Class name already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindingError(ctx, err)
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	resp, err := c.classService.CreateClass(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// ListClasses lists classes visible to the caller
// @Summary List classes
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ClassListResponse "Classes"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes [get]
func (c *ClassController) ListClasses(ctx *gin.Context) {
	actor, _ := middleware.ActorFromContext(ctx)
	resp, err := c.classService.ListClasses(ctx, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetClass retrieves one class
// @Summary Get class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" minimum(1)
// @Success 200 {object} dto.ClassResponse "Class"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id} [get]
func (c *ClassController) GetClass(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	resp, err := c.classService.GetClass(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UpdateClass partially updates a class
// @Summary Update class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" minimum(1)
// @Param request body dto.UpdateClassRequest true "Fields to update"
// @Success 200 {object} dto.ClassResponse "Updated class"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 409 {object} dto.ErrorResponse "Class name already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id} [put]
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindingError(ctx, err)
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	resp, err := c.classService.UpdateClass(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// DeleteClass removes a class
// @Summary Delete class
// @Description Deletes a class; its enrollments and their grades go with it
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" minimum(1)
// @Success 200 {object} dto.SuccessResponse "Class deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id} [delete]
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	if err := c.classService.DeleteClass(ctx, actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Class deleted"})
}

// ListClassEnrollments lists a class's enrollments
// @Summary List class enrollments
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" minimum(1)
// @Success 200 {object} dto.EnrollmentListResponse "Enrollments"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id}/enrollments [get]
func (c *ClassController) ListClassEnrollments(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	resp, err := c.enrollmentService.ListEnrollmentsByClass(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
