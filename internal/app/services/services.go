package services

// Services defined in this package:
// - SessionService: Issues, validates and revokes opaque session tokens
// - AccountService: Handles account lifecycle and authentication
// - ClassService: Handles class management
// - EnrollmentService: Handles enrollment lifecycle
// - GradeService: Handles grade recording and retrieval
// - SubjectService: Handles the subject catalogue
