package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emirkaya/schoolhub/internal/app/models"
	"github.com/emirkaya/schoolhub/internal/app/models/dto"
	"github.com/emirkaya/schoolhub/internal/pkg/apperrors"
)

type fakeGradeStore struct {
	rows    map[int64]*models.GradeDetail
	nextID  int64
	deleted []int64
}

func newFakeGradeStore() *fakeGradeStore {
	return &fakeGradeStore{rows: make(map[int64]*models.GradeDetail), nextID: 1}
}

// seed plants a grade together with its enrollment context.
func (f *fakeGradeStore) seed(enrollmentID, studentID, classID, classTeacherID int64, value int) *models.GradeDetail {
	detail := &models.GradeDetail{
		Grade: models.Grade{
			ID:             f.nextID,
			EnrollmentID:   enrollmentID,
			AssignmentName: "Assignment",
			GradeValue:     value,
			Weight:         1,
			GradedBy:       classTeacherID,
		},
		StudentID:      studentID,
		ClassID:        classID,
		ClassName:      "Class",
		ClassTeacherID: classTeacherID,
	}
	f.rows[detail.ID] = detail
	f.nextID++
	return detail
}

func (f *fakeGradeStore) CreateGrade(_ context.Context, grade *models.Grade) (*models.Grade, error) {
	stored := *grade
	stored.ID = f.nextID
	f.rows[stored.ID] = &models.GradeDetail{Grade: stored}
	f.nextID++
	return &stored, nil
}

func (f *fakeGradeStore) GetGradeByID(_ context.Context, id int64) (*models.GradeDetail, error) {
	detail, ok := f.rows[id]
	if !ok {
		return nil, apperrors.ErrGradeNotFound
	}
	return detail, nil
}

func (f *fakeGradeStore) ListGradesByStudent(_ context.Context, studentID int64) ([]*models.GradeDetail, error) {
	var out []*models.GradeDetail
	for _, detail := range f.rows {
		if detail.StudentID == studentID {
			out = append(out, detail)
		}
	}
	return out, nil
}

func (f *fakeGradeStore) ListGradesByClass(_ context.Context, classID int64) ([]*models.GradeDetail, error) {
	var out []*models.GradeDetail
	for _, detail := range f.rows {
		if detail.ClassID == classID {
			out = append(out, detail)
		}
	}
	return out, nil
}

func (f *fakeGradeStore) ListGradesByEnrollment(_ context.Context, enrollmentID int64) ([]*models.GradeDetail, error) {
	var out []*models.GradeDetail
	for _, detail := range f.rows {
		if detail.EnrollmentID == enrollmentID {
			out = append(out, detail)
		}
	}
	return out, nil
}

func (f *fakeGradeStore) UpdateGrade(_ context.Context, id int64, assignmentName *string, gradeValue *int, weight *float64, comments *string) (*models.Grade, error) {
	detail, ok := f.rows[id]
	if !ok {
		return nil, apperrors.ErrGradeNotFound
	}
	if assignmentName != nil {
		detail.AssignmentName = *assignmentName
	}
	if gradeValue != nil {
		detail.GradeValue = *gradeValue
	}
	if weight != nil {
		detail.Weight = *weight
	}
	if comments != nil {
		detail.Comments = comments
	}
	return &detail.Grade, nil
}

func (f *fakeGradeStore) DeleteGrade(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return apperrors.ErrGradeNotFound
	}
	delete(f.rows, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type gradeFixture struct {
	grades      *fakeGradeStore
	enrollments *fakeEnrollmentStore
	classes     *fakeClassGetter
	svc         *GradeService
}

func newGradeFixture(studentIDs ...int64) *gradeFixture {
	grades := newFakeGradeStore()
	enrollments := newFakeEnrollmentStore()
	classes := newFakeClassGetter()
	students := newFakeStudentDirectory(studentIDs...)
	return &gradeFixture{
		grades:      grades,
		enrollments: enrollments,
		classes:     classes,
		svc:         NewGradeService(grades, enrollments, classes, students, GradeBounds{Min: 1, Max: 6}, zerolog.Nop()),
	}
}

func TestCreateGrade(t *testing.T) {
	ctx := context.Background()

	seed := func(fx *gradeFixture) *models.Enrollment {
		fx.enrollments.classOwner[5] = 10
		return fx.enrollments.seed(20, 5, true)
	}

	t.Run("class owner records a grade", func(t *testing.T) {
		fx := newGradeFixture(20)
		row := seed(fx)

		resp, err := fx.svc.CreateGrade(ctx, teacherActor(10), &dto.CreateGradeRequest{
			EnrollmentID:   row.ID,
			AssignmentName: "Midterm",
			GradeValue:     5,
		})
		require.NoError(t, err)
		assert.Equal(t, 5, resp.GradeValue)
		assert.Equal(t, 1.0, resp.Weight)
		assert.Equal(t, int64(10), resp.GradedBy)
	})

	t.Run("admin-entered grades credit the class owner", func(t *testing.T) {
		fx := newGradeFixture(20)
		row := seed(fx)

		resp, err := fx.svc.CreateGrade(ctx, adminActor(), &dto.CreateGradeRequest{
			EnrollmentID:   row.ID,
			AssignmentName: "Midterm",
			GradeValue:     4,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.GradedBy)
	})

	t.Run("value outside the bounds is rejected", func(t *testing.T) {
		fx := newGradeFixture(20)
		row := seed(fx)

		_, err := fx.svc.CreateGrade(ctx, teacherActor(10), &dto.CreateGradeRequest{
			EnrollmentID:   row.ID,
			AssignmentName: "Midterm",
			GradeValue:     7,
		})
		require.ErrorIs(t, err, apperrors.ErrGradeOutOfBounds)
		assert.Contains(t, err.Error(), "1..6")
		assert.Empty(t, fx.grades.rows)
	})

	t.Run("another teacher may not grade", func(t *testing.T) {
		fx := newGradeFixture(20)
		row := seed(fx)

		_, err := fx.svc.CreateGrade(ctx, teacherActor(11), &dto.CreateGradeRequest{
			EnrollmentID:   row.ID,
			AssignmentName: "Midterm",
			GradeValue:     5,
		})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("unknown enrollment is not found", func(t *testing.T) {
		fx := newGradeFixture(20)

		_, err := fx.svc.CreateGrade(ctx, teacherActor(10), &dto.CreateGradeRequest{
			EnrollmentID:   99,
			AssignmentName: "Midterm",
			GradeValue:     5,
		})
		assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
	})
}

func TestUpdateGradeBounds(t *testing.T) {
	ctx := context.Background()

	fx := newGradeFixture(20)
	detail := fx.grades.seed(1, 20, 5, 10, 4)

	zero := 0
	_, err := fx.svc.UpdateGrade(ctx, teacherActor(10), detail.ID, &dto.UpdateGradeRequest{GradeValue: &zero})
	require.ErrorIs(t, err, apperrors.ErrGradeOutOfBounds)
	assert.Equal(t, 4, fx.grades.rows[detail.ID].GradeValue)

	six := 6
	resp, err := fx.svc.UpdateGrade(ctx, teacherActor(10), detail.ID, &dto.UpdateGradeRequest{GradeValue: &six})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.GradeValue)
}

func TestGradeReadVisibility(t *testing.T) {
	ctx := context.Background()

	fx := newGradeFixture(20, 21)
	fx.grades.seed(1, 20, 5, 10, 4)

	t.Run("student reads their own grades", func(t *testing.T) {
		resp, err := fx.svc.ListGradesByStudent(ctx, studentActor(20), 20)
		require.NoError(t, err)
		assert.Len(t, resp.Grades, 1)
	})

	t.Run("student may not read another student's grades", func(t *testing.T) {
		_, err := fx.svc.ListGradesByStudent(ctx, studentActor(21), 20)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("class grades are scoped to the owning teacher", func(t *testing.T) {
		fx.classes.seed(5, 10, true)

		resp, err := fx.svc.ListGradesByClass(ctx, teacherActor(10), 5)
		require.NoError(t, err)
		assert.Len(t, resp.Grades, 1)

		_, err = fx.svc.ListGradesByClass(ctx, teacherActor(11), 5)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}
