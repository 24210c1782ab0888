package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emirkaya/schoolhub/internal/app/models/dto"
	"github.com/emirkaya/schoolhub/internal/app/services"
	"github.com/emirkaya/schoolhub/internal/middleware"
)

// EnrollmentController handles enrollment operations
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollmentService: enrollmentService}
}

// CreateEnrollment enrolls a student into a class
// @Summary Enroll student
// @Description Enrolls a student into an active class; a withdrawn enrollment is reactivated
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEnrollmentRequest true "Enrollment information"
// @Success 201 {object} dto.EnrollmentResponse "Enrollment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student or class not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled or class inactive"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [post]
func (c *EnrollmentController) CreateEnrollment(ctx *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindingError(ctx, err)
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	resp, err := c.enrollmentService.Enroll(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// BulkEnroll enrolls many students into one class
// @Summary Bulk enroll students
// @Description Enrolls a batch of students into one class, classifying every student id by outcome
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkEnrollmentRequest true "Bulk enrollment information"
// @Success 200 {object} dto.BulkEnrollmentResponse "Per-student outcomes"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 409 {object} dto.ErrorResponse "Class inactive"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/bulk [post]
func (c *EnrollmentController) BulkEnroll(ctx *gin.Context) {
	var req dto.BulkEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindingError(ctx, err)
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	resp, err := c.enrollmentService.BulkEnroll(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// ListEnrollments lists every enrollment
// @Summary List enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.EnrollmentListResponse "Enrollments"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [get]
func (c *EnrollmentController) ListEnrollments(ctx *gin.Context) {
	actor, _ := middleware.ActorFromContext(ctx)
	resp, err := c.enrollmentService.ListEnrollments(ctx, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetEnrollment retrieves one enrollment
// @Summary Get enrollment
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID" minimum(1)
// @Success 200 {object} dto.EnrollmentResponse "Enrollment"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id} [get]
func (c *EnrollmentController) GetEnrollment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	resp, err := c.enrollmentService.GetEnrollment(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// ListStudentEnrollments lists a student's enrollments
// @Summary List student enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID" minimum(1)
// @Success 200 {object} dto.EnrollmentListResponse "Enrollments"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/student/{studentId} [get]
func (c *EnrollmentController) ListStudentEnrollments(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	resp, err := c.enrollmentService.ListEnrollmentsByStudent(ctx, actor, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// DeactivateEnrollment withdraws a student from a class
// @Summary Withdraw enrollment
// @Description Marks the enrollment inactive while keeping its history and grades
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID" minimum(1)
// @Success 200 {object} dto.SuccessResponse "Enrollment withdrawn"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id}/deactivate [put]
func (c *EnrollmentController) DeactivateEnrollment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	if err := c.enrollmentService.Deactivate(ctx, actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Enrollment withdrawn"})
}

// DeleteEnrollment hard-deletes an enrollment
// @Summary Delete enrollment
// @Description Removes the enrollment row entirely; rejected while grades reference it
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID" minimum(1)
// @Success 200 {object} dto.SuccessResponse "Enrollment deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 409 {object} dto.ErrorResponse "Enrollment has grades"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id} [delete]
func (c *EnrollmentController) DeleteEnrollment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	if err := c.enrollmentService.Delete(ctx, actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Enrollment deleted"})
}
