package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emirkaya/schoolhub/internal/app/models/dto"
	"github.com/emirkaya/schoolhub/internal/app/services"
	"github.com/emirkaya/schoolhub/internal/middleware"
)

// GradeController handles grade operations
type GradeController struct {
	gradeService *services.GradeService
}

// NewGradeController creates a new GradeController
func NewGradeController(gradeService *services.GradeService) *GradeController {
	return &GradeController{gradeService: gradeService}
}

// CreateGrade records a grade on an enrollment
// @Summary Record grade
// @Description Records a grade; the value must fall inside the configured bounds
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGradeRequest true "Grade information"
// @Success 201 {object} dto.GradeResponse "Grade recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or grade out of bounds"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades [post]
func (c *GradeController) CreateGrade(ctx *gin.Context) {
	var req dto.CreateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindingError(ctx, err)
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	resp, err := c.gradeService.CreateGrade(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// GetGrade retrieves one grade
// @Summary Get grade
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade ID" minimum(1)
// @Success 200 {object} dto.GradeResponse "Grade"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades/{id} [get]
func (c *GradeController) GetGrade(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	resp, err := c.gradeService.GetGrade(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// ListStudentGrades lists a student's grades across all classes
// @Summary List student grades
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID" minimum(1)
// @Success 200 {object} dto.GradeListResponse "Grades"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades/student/{studentId} [get]
func (c *GradeController) ListStudentGrades(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	resp, err := c.gradeService.ListGradesByStudent(ctx, actor, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// ListClassGrades lists every grade recorded in a class
// @Summary List class grades
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param classId path int true "Class ID" minimum(1)
// @Success 200 {object} dto.GradeListResponse "Grades"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades/class/{classId} [get]
func (c *GradeController) ListClassGrades(ctx *gin.Context) {
	classID, ok := parseIDParam(ctx, "classId")
	if !ok {
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	resp, err := c.gradeService.ListGradesByClass(ctx, actor, classID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UpdateGrade partially updates a grade
// @Summary Update grade
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade ID" minimum(1)
// @Param request body dto.UpdateGradeRequest true "Fields to update"
// @Success 200 {object} dto.GradeResponse "Updated grade"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or grade out of bounds"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades/{id} [put]
func (c *GradeController) UpdateGrade(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindingError(ctx, err)
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	resp, err := c.gradeService.UpdateGrade(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// DeleteGrade removes a grade
// @Summary Delete grade
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade ID" minimum(1)
// @Success 200 {object} dto.SuccessResponse "Grade deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades/{id} [delete]
func (c *GradeController) DeleteGrade(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	if err := c.gradeService.DeleteGrade(ctx, actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Grade deleted"})
}

// ListEnrollmentGrades lists the grades recorded for a single enrollment
// @Summary List enrollment grades
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID" minimum(1)
// @Success 200 {object} dto.GradeListResponse "Grades"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id}/grades [get]
func (c *GradeController) ListEnrollmentGrades(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	resp, err := c.gradeService.ListGradesByEnrollment(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
