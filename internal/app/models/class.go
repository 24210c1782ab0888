package models

// Class defines the class model based on the 'classes' table
type Class struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	TeacherID int64  `json:"teacherId" db:"teacher_id"`
	IsActive  bool   `json:"isActive" db:"is_active"`
}

// Subject defines the subject model based on the 'subjects' table
type Subject struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
