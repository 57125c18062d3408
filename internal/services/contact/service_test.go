package contact

import (
	"context"
	"testing"

	"rishta/internal/models"
	"rishta/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockProposalRepo struct {
	mock.Mock
}

func (m *MockProposalRepo) CreateWithQuota(ctx context.Context, p *models.Proposal) (int, error) {
	args := m.Called(ctx, p)
	return args.Int(0), args.Error(1)
}

func (m *MockProposalRepo) GetByPair(ctx context.Context, a, b uint) (*models.Proposal, error) {
	args := m.Called(ctx, a, b)
	if p, ok := args.Get(0).(*models.Proposal); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProposalRepo) ResolvePending(ctx context.Context, pairLow, pairHigh, receiverID uint, status string) (int64, error) {
	args := m.Called(ctx, pairLow, pairHigh, receiverID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProposalRepo) ListForUser(ctx context.Context, userID uint) ([]*models.Proposal, error) {
	args := m.Called(ctx, userID)
	if ps, ok := args.Get(0).([]*models.Proposal); ok {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}

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

func acceptedBetween(a, b uint) *models.Proposal {
	low, high := models.NormalizePair(a, b)
	return &models.Proposal{
		SenderID:   a,
		ReceiverID: b,
		PairLow:    low,
		PairHigh:   high,
		Status:     models.ProposalStatusAccepted,
	}
}

func TestContactService_ContactIfAccepted(t *testing.T) {
	tests := []struct {
		name      string
		viewerID  uint
		targetID  uint
		setupMock func(*MockProposalRepo, *MockProfileRepo)
		wantErr   error
		wantPhone string
	}{
		{
			name:     "accepted proposal discloses contact",
			viewerID: 1,
			targetID: 2,
			setupMock: func(proposals *MockProposalRepo, profiles *MockProfileRepo) {
				proposals.On("GetByPair", mock.Anything, uint(1), uint(2)).Return(acceptedBetween(1, 2), nil)
				profiles.On("GetByUserID", uint(2)).Return(&models.Profile{
					UserID:   2,
					Phone:    "+923001234567",
					Whatsapp: "+923001234567",
				}, nil)
			},
			wantPhone: "+923001234567",
		},
		{
			name:     "acceptance works in either direction",
			viewerID: 2,
			targetID: 1,
			setupMock: func(proposals *MockProposalRepo, profiles *MockProfileRepo) {
				proposals.On("GetByPair", mock.Anything, uint(2), uint(1)).Return(acceptedBetween(1, 2), nil)
				profiles.On("GetByUserID", uint(1)).Return(&models.Profile{
					UserID: 1,
					Phone:  "+923009999999",
				}, nil)
			},
			wantPhone: "+923009999999",
		},
		{
			name:      "own contact is not served through the gate",
			viewerID:  1,
			targetID:  1,
			setupMock: func(proposals *MockProposalRepo, profiles *MockProfileRepo) {},
			wantErr:   ErrNotDisclosed,
		},
		{
			name:     "no proposal between the pair",
			viewerID: 1,
			targetID: 2,
			setupMock: func(proposals *MockProposalRepo, profiles *MockProfileRepo) {
				proposals.On("GetByPair", mock.Anything, uint(1), uint(2)).Return(nil, repositories.ErrProposalNotFound)
			},
			wantErr: ErrNotDisclosed,
		},
		{
			name:     "pending proposal does not disclose",
			viewerID: 1,
			targetID: 2,
			setupMock: func(proposals *MockProposalRepo, profiles *MockProfileRepo) {
				p := acceptedBetween(1, 2)
				p.Status = models.ProposalStatusPending
				proposals.On("GetByPair", mock.Anything, uint(1), uint(2)).Return(p, nil)
			},
			wantErr: ErrNotDisclosed,
		},
		{
			name:     "rejected proposal does not disclose",
			viewerID: 1,
			targetID: 2,
			setupMock: func(proposals *MockProposalRepo, profiles *MockProfileRepo) {
				p := acceptedBetween(1, 2)
				p.Status = models.ProposalStatusRejected
				proposals.On("GetByPair", mock.Anything, uint(1), uint(2)).Return(p, nil)
			},
			wantErr: ErrNotDisclosed,
		},
		{
			name:     "viewer not a party to the proposal",
			viewerID: 3,
			targetID: 2,
			setupMock: func(proposals *MockProposalRepo, profiles *MockProfileRepo) {
				// Pair lookup somehow matched a row the viewer is no side of.
				proposals.On("GetByPair", mock.Anything, uint(3), uint(2)).Return(acceptedBetween(1, 2), nil)
			},
			wantErr: ErrNotDisclosed,
		},
		{
			name:     "blocked target cuts off disclosure",
			viewerID: 1,
			targetID: 2,
			setupMock: func(proposals *MockProposalRepo, profiles *MockProfileRepo) {
				proposals.On("GetByPair", mock.Anything, uint(1), uint(2)).Return(acceptedBetween(1, 2), nil)
				profiles.On("GetByUserID", uint(2)).Return(&models.Profile{
					UserID:    2,
					Phone:     "+923001234567",
					IsBlocked: true,
				}, nil)
			},
			wantErr: ErrNotDisclosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proposals := new(MockProposalRepo)
			profiles := new(MockProfileRepo)
			tt.setupMock(proposals, profiles)

			s := NewService(proposals, profiles)
			info, err := s.ContactIfAccepted(context.Background(), tt.viewerID, tt.targetID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, info)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantPhone, info.Phone)
			}
			proposals.AssertExpectations(t)
			profiles.AssertExpectations(t)
		})
	}
}
