package models

import "time"

// Grade belongs to exactly one enrollment and is authored by a teacher.
type Grade struct {
	ID             int64     `json:"id" db:"id"`
	EnrollmentID   int64     `json:"enrollmentId" db:"enrollment_id"`
	AssignmentName string    `json:"assignmentName" db:"assignment_name"`
	GradeValue     int       `json:"gradeValue" db:"grade_value"`
	Weight         float64   `json:"weight" db:"weight"`
	Comments       *string   `json:"comments,omitempty" db:"comments"`
	GradedBy       int64     `json:"gradedBy" db:"graded_by"`
	GradedAt       time.Time `json:"gradedAt" db:"graded_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// GradeDetail joins a grade to its enrollment's student and class, used by
// the per-student and per-class listings.
type GradeDetail struct {
	Grade
	StudentID      int64  `json:"studentId" db:"student_id"`
	ClassID        int64  `json:"classId" db:"class_id"`
	ClassName      string `json:"className" db:"class_name"`
	ClassTeacherID int64  `json:"classTeacherId" db:"class_teacher_id"`
}
