package models

import "time"

// Enrollment links one student to one class. The (studentId, classId) pair
// is unique; a soft-deleted enrollment is reactivated instead of duplicated.
type Enrollment struct {
	ID             int64     `json:"id" db:"id"`
	StudentID      int64     `json:"studentId" db:"student_id"`
	ClassID        int64     `json:"classId" db:"class_id"`
	EnrollmentDate time.Time `json:"enrollmentDate" db:"enrollment_date"`
	IsActive       bool      `json:"isActive" db:"is_active"`
}

// EnrollmentDetail enriches an enrollment with its class ownership, used by
// authorization checks and list endpoints.
type EnrollmentDetail struct {
	Enrollment
	ClassName      string `json:"className" db:"class_name"`
	ClassTeacherID int64  `json:"classTeacherId" db:"class_teacher_id"`
}
