package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/emirkaya/schoolhub/internal/app/auth"
	"github.com/emirkaya/schoolhub/internal/app/models"
	"github.com/emirkaya/schoolhub/internal/app/models/dto"
	"github.com/emirkaya/schoolhub/internal/pkg/apperrors"
)

func adminActor() appauth.Actor {
	return appauth.Actor{UserID: 1, Role: models.RoleAdmin}
}

func teacherActor(teacherID int64) appauth.Actor {
	return appauth.Actor{UserID: 100 + teacherID, Role: models.RoleTeacher, TeacherID: &teacherID}
}

func studentActor(studentID int64) appauth.Actor {
	return appauth.Actor{UserID: 200 + studentID, Role: models.RoleStudent, StudentID: &studentID}
}

// fakeEnrollmentStore keeps enrollments in memory, keyed by id, with a
// per-enrollment grade count so the delete guard can be exercised.
type fakeEnrollmentStore struct {
	rows       map[int64]*models.Enrollment
	gradeCount map[int64]int64
	classOwner map[int64]int64 // class id -> owning teacher id
	nextID     int64
	deleted    []int64
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{
		rows:       make(map[int64]*models.Enrollment),
		gradeCount: make(map[int64]int64),
		classOwner: make(map[int64]int64),
		nextID:     1,
	}
}

func (f *fakeEnrollmentStore) seed(studentID, classID int64, active bool) *models.Enrollment {
	row := &models.Enrollment{
		ID:             f.nextID,
		StudentID:      studentID,
		ClassID:        classID,
		EnrollmentDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		IsActive:       active,
	}
	f.rows[row.ID] = row
	f.nextID++
	return row
}

func (f *fakeEnrollmentStore) CreateEnrollment(_ context.Context, studentID, classID int64) (*models.Enrollment, error) {
	for _, row := range f.rows {
		if row.StudentID == studentID && row.ClassID == classID {
			return nil, apperrors.ErrAlreadyEnrolled
		}
	}
	row := f.seed(studentID, classID, true)
	return row, nil
}

func (f *fakeEnrollmentStore) GetEnrollmentByID(_ context.Context, id int64) (*models.Enrollment, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	return row, nil
}

func (f *fakeEnrollmentStore) GetEnrollmentDetail(_ context.Context, id int64) (*models.EnrollmentDetail, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	return &models.EnrollmentDetail{
		Enrollment:     *row,
		ClassName:      "Class",
		ClassTeacherID: f.classOwner[row.ClassID],
	}, nil
}

func (f *fakeEnrollmentStore) GetEnrollmentByStudentAndClass(_ context.Context, studentID, classID int64) (*models.Enrollment, error) {
	for _, row := range f.rows {
		if row.StudentID == studentID && row.ClassID == classID {
			return row, nil
		}
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (f *fakeEnrollmentStore) ListEnrollments(_ context.Context) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, row := range f.rows {
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeEnrollmentStore) ListEnrollmentsByStudent(_ context.Context, studentID int64) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, row := range f.rows {
		if row.StudentID == studentID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) ListEnrollmentsByClass(_ context.Context, classID int64) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, row := range f.rows {
		if row.ClassID == classID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) Reactivate(_ context.Context, id int64) (*models.Enrollment, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	row.IsActive = true
	return row, nil
}

func (f *fakeEnrollmentStore) Deactivate(_ context.Context, id int64) error {
	row, ok := f.rows[id]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	row.IsActive = false
	return nil
}

func (f *fakeEnrollmentStore) DeleteEnrollment(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(f.rows, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeEnrollmentStore) CountGrades(_ context.Context, enrollmentID int64) (int64, error) {
	return f.gradeCount[enrollmentID], nil
}

type fakeClassGetter struct {
	classes map[int64]*models.Class
}

func newFakeClassGetter() *fakeClassGetter {
	return &fakeClassGetter{classes: make(map[int64]*models.Class)}
}

func (f *fakeClassGetter) seed(id, teacherID int64, active bool) {
	f.classes[id] = &models.Class{ID: id, Name: "Class", TeacherID: teacherID, IsActive: active}
}

func (f *fakeClassGetter) GetClassByID(_ context.Context, id int64) (*models.Class, error) {
	class, ok := f.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	return class, nil
}

type fakeStudentDirectory struct {
	students map[int64]bool
}

func newFakeStudentDirectory(ids ...int64) *fakeStudentDirectory {
	f := &fakeStudentDirectory{students: make(map[int64]bool)}
	for _, id := range ids {
		f.students[id] = true
	}
	return f
}

func (f *fakeStudentDirectory) StudentExists(_ context.Context, id int64) (bool, error) {
	return f.students[id], nil
}

type enrollmentFixture struct {
	store    *fakeEnrollmentStore
	classes  *fakeClassGetter
	students *fakeStudentDirectory
	svc      *EnrollmentService
}

func newEnrollmentFixture(studentIDs ...int64) *enrollmentFixture {
	store := newFakeEnrollmentStore()
	classes := newFakeClassGetter()
	students := newFakeStudentDirectory(studentIDs...)
	return &enrollmentFixture{
		store:    store,
		classes:  classes,
		students: students,
		svc:      NewEnrollmentService(store, classes, students, zerolog.Nop()),
	}
}

func TestEnroll(t *testing.T) {
	ctx := context.Background()

	t.Run("new pair creates an active enrollment", func(t *testing.T) {
		fx := newEnrollmentFixture(20)
		fx.classes.seed(5, 10, true)

		resp, err := fx.svc.Enroll(ctx, adminActor(), &dto.CreateEnrollmentRequest{StudentID: 20, ClassID: 5})
		require.NoError(t, err)
		assert.True(t, resp.IsActive)
		assert.Equal(t, int64(20), resp.StudentID)
		assert.Equal(t, int64(5), resp.ClassID)
	})

	t.Run("active pair is a conflict", func(t *testing.T) {
		fx := newEnrollmentFixture(20)
		fx.classes.seed(5, 10, true)
		fx.store.seed(20, 5, true)

		_, err := fx.svc.Enroll(ctx, adminActor(), &dto.CreateEnrollmentRequest{StudentID: 20, ClassID: 5})
		assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
	})

	t.Run("withdrawn pair reactivates the same row", func(t *testing.T) {
		fx := newEnrollmentFixture(20)
		fx.classes.seed(5, 10, true)
		withdrawn := fx.store.seed(20, 5, false)

		resp, err := fx.svc.Enroll(ctx, adminActor(), &dto.CreateEnrollmentRequest{StudentID: 20, ClassID: 5})
		require.NoError(t, err)
		assert.Equal(t, withdrawn.ID, resp.ID)
		assert.True(t, resp.IsActive)
		assert.Len(t, fx.store.rows, 1)
	})

	t.Run("inactive class refuses enrollments", func(t *testing.T) {
		fx := newEnrollmentFixture(20)
		fx.classes.seed(5, 10, false)

		_, err := fx.svc.Enroll(ctx, adminActor(), &dto.CreateEnrollmentRequest{StudentID: 20, ClassID: 5})
		assert.ErrorIs(t, err, apperrors.ErrClassNotActive)
	})

	t.Run("unknown class is not found", func(t *testing.T) {
		fx := newEnrollmentFixture(20)

		_, err := fx.svc.Enroll(ctx, adminActor(), &dto.CreateEnrollmentRequest{StudentID: 20, ClassID: 99})
		assert.ErrorIs(t, err, apperrors.ErrClassNotFound)
	})

	t.Run("unknown student is not found", func(t *testing.T) {
		fx := newEnrollmentFixture()
		fx.classes.seed(5, 10, true)

		_, err := fx.svc.Enroll(ctx, adminActor(), &dto.CreateEnrollmentRequest{StudentID: 20, ClassID: 5})
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})

	t.Run("non-admins may not enroll", func(t *testing.T) {
		fx := newEnrollmentFixture(20)
		fx.classes.seed(5, 10, true)

		_, err := fx.svc.Enroll(ctx, teacherActor(10), &dto.CreateEnrollmentRequest{StudentID: 20, ClassID: 5})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestBulkEnroll(t *testing.T) {
	ctx := context.Background()

	fx := newEnrollmentFixture(20, 21, 22)
	fx.classes.seed(5, 10, true)
	fx.store.seed(21, 5, true)

	resp, err := fx.svc.BulkEnroll(ctx, adminActor(), &dto.BulkEnrollmentRequest{
		ClassID:    5,
		StudentIDs: []int64{20, 21, 23},
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{20}, resp.Successful)
	assert.Equal(t, []int64{21}, resp.AlreadyEnrolled)
	assert.Equal(t, []int64{23}, resp.Failed)
}

func TestEnrollmentDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("grades block deletion", func(t *testing.T) {
		fx := newEnrollmentFixture(20)
		row := fx.store.seed(20, 5, true)
		fx.store.gradeCount[row.ID] = 3

		err := fx.svc.Delete(ctx, adminActor(), row.ID)
		assert.ErrorIs(t, err, apperrors.ErrEnrollmentHasGrades)
		assert.Contains(t, fx.store.rows, row.ID)
		assert.Empty(t, fx.store.deleted)
	})

	t.Run("ungraded enrollment deletes", func(t *testing.T) {
		fx := newEnrollmentFixture(20)
		row := fx.store.seed(20, 5, true)

		err := fx.svc.Delete(ctx, adminActor(), row.ID)
		require.NoError(t, err)
		assert.NotContains(t, fx.store.rows, row.ID)
	})

	t.Run("unknown enrollment is not found", func(t *testing.T) {
		fx := newEnrollmentFixture(20)

		err := fx.svc.Delete(ctx, adminActor(), 99)
		assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
	})

	t.Run("non-admins may not delete", func(t *testing.T) {
		fx := newEnrollmentFixture(20)
		row := fx.store.seed(20, 5, true)

		err := fx.svc.Delete(ctx, studentActor(20), row.ID)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestEnrollmentDeactivate(t *testing.T) {
	ctx := context.Background()

	fx := newEnrollmentFixture(20)
	row := fx.store.seed(20, 5, true)
	fx.store.gradeCount[row.ID] = 2

	// Withdrawal keeps the row and its grade history.
	err := fx.svc.Deactivate(ctx, adminActor(), row.ID)
	require.NoError(t, err)
	assert.False(t, fx.store.rows[row.ID].IsActive)
}

func TestGetEnrollmentVisibility(t *testing.T) {
	ctx := context.Background()

	fx := newEnrollmentFixture(20)
	fx.store.classOwner[5] = 10
	row := fx.store.seed(20, 5, true)

	t.Run("the student sees their own enrollment", func(t *testing.T) {
		resp, err := fx.svc.GetEnrollment(ctx, studentActor(20), row.ID)
		require.NoError(t, err)
		assert.Equal(t, row.ID, resp.ID)
	})

	t.Run("the class owner sees it", func(t *testing.T) {
		_, err := fx.svc.GetEnrollment(ctx, teacherActor(10), row.ID)
		assert.NoError(t, err)
	})

	t.Run("another student is denied", func(t *testing.T) {
		_, err := fx.svc.GetEnrollment(ctx, studentActor(21), row.ID)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("another teacher is denied", func(t *testing.T) {
		_, err := fx.svc.GetEnrollment(ctx, teacherActor(11), row.ID)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}
