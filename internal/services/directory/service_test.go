package directory

import (
	"context"
	"errors"
	"testing"

	"rishta/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(p *models.Profile) error { return m.Called(p).Error(0) }

func (m *MockProfileRepo) GetByID(id uint) (*models.Profile, error) {
	args := m.Called(id)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepo) GetByUserID(userID uint) (*models.Profile, error) {
	args := m.Called(userID)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepo) Update(p *models.Profile) error { return m.Called(p).Error(0) }

func (m *MockProfileRepo) UpdateModeration(profileID uint, field string, value bool) error {
	return m.Called(profileID, field, value).Error(0)
}

func (m *MockProfileRepo) ListPublic(ctx context.Context, excludeUserID uint, offset, limit int) ([]models.PublicProfile, int64, error) {
	args := m.Called(ctx, excludeUserID, offset, limit)
	if ps, ok := args.Get(0).([]models.PublicProfile); ok {
		return ps, args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *MockProfileRepo) ListAll(offset, limit int) ([]*models.Profile, int64, error) {
	args := m.Called(offset, limit)
	if ps, ok := args.Get(0).([]*models.Profile); ok {
		return ps, args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func TestDirectoryService_Browse(t *testing.T) {
	t.Run("excludes the viewer and passes paging through", func(t *testing.T) {
		repo := new(MockProfileRepo)
		repo.On("ListPublic", mock.Anything, uint(7), 20, 20).Return([]models.PublicProfile{
			{UserID: 1, FullName: "Ayesha K"},
			{UserID: 2, FullName: "Bilal A"},
		}, int64(42), nil)

		s := NewService(repo, nil)
		profiles, total, err := s.Browse(context.Background(), 7, 2, 20)

		assert.NoError(t, err)
		assert.Len(t, profiles, 2)
		assert.Equal(t, int64(42), total)
		repo.AssertExpectations(t)
	})

	t.Run("clamps invalid paging", func(t *testing.T) {
		repo := new(MockProfileRepo)
		repo.On("ListPublic", mock.Anything, uint(7), 0, 20).Return([]models.PublicProfile{}, int64(0), nil)

		s := NewService(repo, nil)
		_, _, err := s.Browse(context.Background(), 7, -3, 5000)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := new(MockProfileRepo)
		repo.On("ListPublic", mock.Anything, uint(7), 0, 20).Return(nil, int64(0), errors.New("db down"))

		s := NewService(repo, nil)
		_, _, err := s.Browse(context.Background(), 7, 1, 20)

		assert.Error(t, err)
	})
}
