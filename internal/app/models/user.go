package models

import (
	"time"
)

// User defines the account model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email     string    `json:"email" db:"email" example:"user@school.example"`           // User's email address, unique
	Password  string    `json:"-" db:"password"`                                          // Bcrypt digest (excluded from JSON)
	FirstName string    `json:"firstName" db:"first_name" example:"John"`                 // User's first name
	LastName  string    `json:"lastName" db:"last_name" example:"Doe"`                    // User's last name
	Role      RoleType  `json:"role" db:"role" example:"student"`                         // Role, immutable once set
	IsActive  bool      `json:"isActive" db:"is_active" example:"true"`                   // Whether the account is active
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
}

// Student defines the student profile based on the 'students' table.
// A row exists iff the owning account's role is 'student'.
type Student struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"userId" db:"user_id"`
	EnrollmentDate time.Time `json:"enrollmentDate" db:"enrollment_date"`
	User           *User     `json:"user,omitempty"` // Relation, no db tag
}

// Teacher defines the teacher profile based on the 'teachers' table.
type Teacher struct {
	ID       int64     `json:"id" db:"id"`
	UserID   int64     `json:"userId" db:"user_id"`
	HireDate time.Time `json:"hireDate" db:"hire_date"`
	User     *User     `json:"user,omitempty"` // Relation, no db tag
}
