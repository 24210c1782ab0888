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

type fakeClassStore struct {
	classes map[int64]*models.Class
	nextID  int64
}

func newFakeClassStore() *fakeClassStore {
	return &fakeClassStore{classes: make(map[int64]*models.Class), nextID: 1}
}

func (f *fakeClassStore) seed(teacherID int64, name string) *models.Class {
	class := &models.Class{ID: f.nextID, Name: name, TeacherID: teacherID, IsActive: true}
	f.classes[class.ID] = class
	f.nextID++
	return class
}

func (f *fakeClassStore) CreateClass(_ context.Context, class *models.Class) (int64, error) {
	stored := *class
	stored.ID = f.nextID
	f.classes[stored.ID] = &stored
	f.nextID++
	return stored.ID, nil
}

func (f *fakeClassStore) GetClassByID(_ context.Context, id int64) (*models.Class, error) {
	class, ok := f.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	return class, nil
}

func (f *fakeClassStore) ListClasses(_ context.Context, teacherID *int64) ([]*models.Class, error) {
	var out []*models.Class
	for _, class := range f.classes {
		if teacherID == nil || class.TeacherID == *teacherID {
			out = append(out, class)
		}
	}
	return out, nil
}

func (f *fakeClassStore) UpdateClass(_ context.Context, id int64, name *string, isActive *bool) (*models.Class, error) {
	class, ok := f.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	if name != nil {
		class.Name = *name
	}
	if isActive != nil {
		class.IsActive = *isActive
	}
	return class, nil
}

func (f *fakeClassStore) DeleteClass(_ context.Context, id int64) error {
	if _, ok := f.classes[id]; !ok {
		return apperrors.ErrClassNotFound
	}
	delete(f.classes, id)
	return nil
}

func TestListClassesScoping(t *testing.T) {
	ctx := context.Background()

	store := newFakeClassStore()
	store.seed(10, "Math")
	store.seed(11, "History")
	svc := NewClassService(store, zerolog.Nop())

	t.Run("students see the whole catalogue", func(t *testing.T) {
		resp, err := svc.ListClasses(ctx, studentActor(20))
		require.NoError(t, err)
		assert.Len(t, resp.Classes, 2)
	})

	t.Run("admins see the whole catalogue", func(t *testing.T) {
		resp, err := svc.ListClasses(ctx, adminActor())
		require.NoError(t, err)
		assert.Len(t, resp.Classes, 2)
	})

	t.Run("teachers see only their own classes", func(t *testing.T) {
		resp, err := svc.ListClasses(ctx, teacherActor(10))
		require.NoError(t, err)
		require.Len(t, resp.Classes, 1)
		assert.Equal(t, "Math", resp.Classes[0].Name)
	})
}

func TestGetClassVisibility(t *testing.T) {
	ctx := context.Background()

	store := newFakeClassStore()
	class := store.seed(10, "Math")
	svc := NewClassService(store, zerolog.Nop())

	t.Run("any student reads any class", func(t *testing.T) {
		resp, err := svc.GetClass(ctx, studentActor(20), class.ID)
		require.NoError(t, err)
		assert.Equal(t, class.ID, resp.ID)
	})

	t.Run("the owning teacher reads it", func(t *testing.T) {
		_, err := svc.GetClass(ctx, teacherActor(10), class.ID)
		assert.NoError(t, err)
	})

	t.Run("another teacher is denied", func(t *testing.T) {
		_, err := svc.GetClass(ctx, teacherActor(11), class.ID)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestCreateClassOwnership(t *testing.T) {
	ctx := context.Background()

	store := newFakeClassStore()
	svc := NewClassService(store, zerolog.Nop())

	t.Run("a teacher creates a class for themselves", func(t *testing.T) {
		resp, err := svc.CreateClass(ctx, teacherActor(10), &dto.CreateClassRequest{Name: "Math"})
		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.TeacherID)
	})

	t.Run("a teacher may not create for another teacher", func(t *testing.T) {
		other := int64(11)
		_, err := svc.CreateClass(ctx, teacherActor(10), &dto.CreateClassRequest{Name: "Chem", TeacherID: &other})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}
