package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emirkaya/schoolhub/internal/app/models"
	"github.com/emirkaya/schoolhub/internal/app/models/dto"
	"github.com/emirkaya/schoolhub/internal/app/services"
	"github.com/emirkaya/schoolhub/internal/middleware"
	"github.com/emirkaya/schoolhub/internal/pkg/apperrors"
)

// StudentController handles student profile reads
type StudentController struct {
	accountService    *services.AccountService
	enrollmentService *services.EnrollmentService
	gradeService      *services.GradeService
}

// NewStudentController creates a new StudentController
func NewStudentController(
	accountService *services.AccountService,
	enrollmentService *services.EnrollmentService,
	gradeService *services.GradeService,
) *StudentController {
	return &StudentController{
		accountService:    accountService,
		enrollmentService: enrollmentService,
		gradeService:      gradeService,
	}
}

// ListStudents lists all student profiles
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.StudentResponse "Students"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	resp, err := c.accountService.ListStudents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetStudent retrieves one student profile with the enrollments and grades
// the caller is allowed to see
// @Summary Get student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" minimum(1)
// @Success 200 {object} dto.StudentDetailResponse "Student"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor, _ := middleware.ActorFromContext(ctx)
	allowed := actor.IsAdmin() || actor.Role == models.RoleTeacher || actor.OwnsStudentID(id)
	if !allowed {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	student, err := c.accountService.GetStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.StudentDetailResponse{StudentResponse: *student}

	// Related slices are included only where the actor's own read rights
	// reach; a teacher without the relevant classes still gets the profile.
	if enrollments, err := c.enrollmentService.ListEnrollmentsByStudent(ctx, actor, id); err == nil {
		resp.Enrollments = enrollments.Enrollments
	} else if !errors.Is(err, apperrors.ErrPermissionDenied) {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if grades, err := c.gradeService.ListGradesByStudent(ctx, actor, id); err == nil {
		resp.Grades = grades.Grades
	} else if !errors.Is(err, apperrors.ErrPermissionDenied) {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
