package moderation

import (
	"context"
	"testing"

	"rishta/internal/models"
	"rishta/internal/repositories"

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

func TestModerationService_FlagFlips(t *testing.T) {
	tests := []struct {
		name      string
		call      func(Service) error
		wantField string
		wantValue bool
	}{
		{
			name:      "approve",
			call:      func(s Service) error { return s.ApproveProfile(context.Background(), 7) },
			wantField: "is_approved",
			wantValue: true,
		},
		{
			name:      "block",
			call:      func(s Service) error { return s.SetBlocked(context.Background(), 7, true) },
			wantField: "is_blocked",
			wantValue: true,
		},
		{
			name:      "unblock",
			call:      func(s Service) error { return s.SetBlocked(context.Background(), 7, false) },
			wantField: "is_blocked",
			wantValue: false,
		},
		{
			name:      "verify",
			call:      func(s Service) error { return s.SetVerified(context.Background(), 7, true) },
			wantField: "is_verified",
			wantValue: true,
		},
		{
			name:      "feature",
			call:      func(s Service) error { return s.SetFeatured(context.Background(), 7, true) },
			wantField: "is_featured",
			wantValue: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockProfileRepo)
			repo.On("UpdateModeration", uint(7), tt.wantField, tt.wantValue).Return(nil)

			s := NewService(repo, nil)
			assert.NoError(t, tt.call(s))
			repo.AssertExpectations(t)
		})
	}
}

func TestModerationService_UnknownProfile(t *testing.T) {
	repo := new(MockProfileRepo)
	repo.On("UpdateModeration", uint(7), "is_approved", true).Return(repositories.ErrProfileNotFound)

	s := NewService(repo, nil)
	assert.ErrorIs(t, s.ApproveProfile(context.Background(), 7), ErrProfileNotFound)
}
