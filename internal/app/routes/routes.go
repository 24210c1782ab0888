package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emirkaya/schoolhub/internal/app/controllers"
	"github.com/emirkaya/schoolhub/internal/app/models"
	"github.com/emirkaya/schoolhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	studentController *controllers.StudentController,
	teacherController *controllers.TeacherController,
	classController *controllers.ClassController,
	enrollmentController *controllers.EnrollmentController,
	gradeController *controllers.GradeController,
	subjectController *controllers.SubjectController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.SessionAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.POST("/auth/logout-all", authController.LogoutAll)
		authenticated.GET("/auth/me", authController.Me)

		// Account management is admin territory except self reads/updates,
		// which the controller checks per request.
		users := authenticated.Group("/users")
		{
			users.GET("/:id", userController.GetUser)
			users.PUT("/:id", userController.UpdateUser)

			usersAdmin := users.Group("")
			usersAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				usersAdmin.POST("", userController.CreateUser)
				usersAdmin.GET("", userController.ListUsers)
				usersAdmin.DELETE("/:id", userController.DeleteUser)
			}
		}

		students := authenticated.Group("/students")
		{
			studentsStaff := students.Group("")
			studentsStaff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleTeacher))
			{
				studentsStaff.GET("", studentController.ListStudents)
			}
			// Detail is also open to the student themselves; the controller
			// checks ownership.
			students.GET("/:id", studentController.GetStudent)
		}

		teachers := authenticated.Group("/teachers")
		teachers.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleTeacher))
		{
			teachers.GET("", teacherController.ListTeachers)
			teachers.GET("/:id", teacherController.GetTeacher)
		}

		classes := authenticated.Group("/classes")
		{
			classes.GET("", classController.ListClasses)
			classes.GET("/:id", classController.GetClass)
			classes.GET("/:id/enrollments", classController.ListClassEnrollments)
			classes.POST("", classController.CreateClass)
			classes.PUT("/:id", classController.UpdateClass)
			classes.DELETE("/:id", classController.DeleteClass)
		}

		enrollments := authenticated.Group("/enrollments")
		{
			enrollments.GET("/:id", enrollmentController.GetEnrollment)
			enrollments.GET("/:id/grades", gradeController.ListEnrollmentGrades)
			enrollments.GET("/student/:studentId", enrollmentController.ListStudentEnrollments)

			enrollmentsAdmin := enrollments.Group("")
			enrollmentsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				enrollmentsAdmin.GET("", enrollmentController.ListEnrollments)
				enrollmentsAdmin.POST("", enrollmentController.CreateEnrollment)
				enrollmentsAdmin.POST("/bulk", enrollmentController.BulkEnroll)
				enrollmentsAdmin.PUT("/:id/deactivate", enrollmentController.DeactivateEnrollment)
				enrollmentsAdmin.DELETE("/:id", enrollmentController.DeleteEnrollment)
			}
		}

		grades := authenticated.Group("/grades")
		{
			grades.GET("/:id", gradeController.GetGrade)
			grades.GET("/student/:studentId", gradeController.ListStudentGrades)
			grades.GET("/class/:classId", gradeController.ListClassGrades)

			gradesStaff := grades.Group("")
			gradesStaff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleTeacher))
			{
				gradesStaff.POST("", gradeController.CreateGrade)
				gradesStaff.PUT("/:id", gradeController.UpdateGrade)
				gradesStaff.DELETE("/:id", gradeController.DeleteGrade)
			}
		}

		subjects := authenticated.Group("/subjects")
		{
			subjects.GET("", subjectController.ListSubjects)
			subjects.GET("/:id", subjectController.GetSubject)

			subjectsAdmin := subjects.Group("")
			subjectsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				subjectsAdmin.POST("", subjectController.CreateSubject)
				subjectsAdmin.PUT("/:id", subjectController.UpdateSubject)
				subjectsAdmin.DELETE("/:id", subjectController.DeleteSubject)
			}
		}
	}
}
