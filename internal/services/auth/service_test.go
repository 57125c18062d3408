package auth

import (
	"context"
	"testing"

	"rishta/internal/models"
	"rishta/internal/repositories"
	"rishta/internal/services/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *models.User) error {
	args := m.Called(user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) Update(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepo) IncrementTokenVersion(userID uint) error {
	return m.Called(userID).Error(0)
}

func (m *MockUserRepo) List(offset, limit int) ([]*models.User, int64, error) {
	args := m.Called(offset, limit)
	if us, ok := args.Get(0).([]*models.User); ok {
		return us, args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepo) UpdatePassword(userID uint, hashedPassword string) error {
	return m.Called(userID, hashedPassword).Error(0)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Create(ctx context.Context, userID uint, fullName, gender string) (*models.Profile, error) {
	args := m.Called(ctx, userID, fullName, gender)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileService) Update(ctx context.Context, userID uint, input profile.UpdateInput) (*models.Profile, error) {
	args := m.Called(ctx, userID, input)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileService) AttachDocument(ctx context.Context, userID uint, kind, url string) (*models.Profile, error) {
	args := m.Called(ctx, userID, kind, url)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Register(t *testing.T) {
	input := RegisterInput{
		Email:    "ayesha@example.com",
		Password: "longenough",
		FullName: "Ayesha Khan",
		Gender:   "female",
	}

	t.Run("creates user and minimal profile", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		profileSvc := new(MockProfileService)
		userRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
			return u.Email == input.Email && u.Role == models.RoleUser && u.Password != input.Password
		})).Return(nil)
		profileSvc.On("Create", mock.Anything, uint(1), "Ayesha Khan", "female").
			Return(&models.Profile{UserID: 1}, nil)

		s := NewService(userRepo, profileSvc)
		user, err := s.Register(input)

		require.NoError(t, err)
		assert.Empty(t, user.Password)
		userRepo.AssertExpectations(t)
		profileSvc.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("Create", mock.Anything).Return(repositories.ErrEmailTaken)

		s := NewService(userRepo, new(MockProfileService))
		_, err := s.Register(input)

		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	activeUser := func() *models.User {
		u := &models.User{
			Email:        "ayesha@example.com",
			Password:     hashOf(t, "correct-password"),
			Role:         models.RoleUser,
			Status:       "active",
			TokenVersion: 1,
		}
		u.ID = 1
		return u
	}

	t.Run("valid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByEmail", "ayesha@example.com").Return(activeUser(), nil)
		userRepo.On("Update", mock.Anything).Return(nil)

		s := NewService(userRepo, new(MockProfileService))
		user, access, refresh, err := s.Login("ayesha@example.com", "correct-password")

		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByEmail", "ayesha@example.com").Return(activeUser(), nil)

		s := NewService(userRepo, new(MockProfileService))
		_, _, _, err := s.Login("ayesha@example.com", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByEmail", "nobody@example.com").Return(nil, repositories.ErrUserNotFound)

		s := NewService(userRepo, new(MockProfileService))
		_, _, _, err := s.Login("nobody@example.com", "whatever")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		u := activeUser()
		u.Status = "disabled"
		userRepo := new(MockUserRepo)
		userRepo.On("GetByEmail", "ayesha@example.com").Return(u, nil)

		s := NewService(userRepo, new(MockProfileService))
		_, _, _, err := s.Login("ayesha@example.com", "correct-password")

		assert.ErrorIs(t, err, ErrAccountDisabled)
	})
}

func TestAuthService_Logout_BumpsTokenVersion(t *testing.T) {
	userRepo := new(MockUserRepo)
	userRepo.On("IncrementTokenVersion", uint(1)).Return(nil)

	s := NewService(userRepo, new(MockProfileService))
	assert.NoError(t, s.Logout(1))
	userRepo.AssertExpectations(t)
}

func TestAuthService_IsAdmin(t *testing.T) {
	t.Run("admin role", func(t *testing.T) {
		u := &models.User{Role: models.RoleAdmin}
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", uint(1)).Return(u, nil)

		s := NewService(userRepo, new(MockProfileService))
		isAdmin, err := s.IsAdmin(1)

		assert.NoError(t, err)
		assert.True(t, isAdmin)
	})

	t.Run("regular user", func(t *testing.T) {
		u := &models.User{Role: models.RoleUser}
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", uint(1)).Return(u, nil)

		s := NewService(userRepo, new(MockProfileService))
		isAdmin, err := s.IsAdmin(1)

		assert.NoError(t, err)
		assert.False(t, isAdmin)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("bumps token version with the new hash", func(t *testing.T) {
		u := &models.User{Password: hashOf(t, "old-password"), TokenVersion: 1}
		u.ID = 1
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", uint(1)).Return(u, nil)
		userRepo.On("Update", mock.MatchedBy(func(updated *models.User) bool {
			return updated.TokenVersion == 2 &&
				bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("new-password")) == nil
		})).Return(nil)

		s := NewService(userRepo, new(MockProfileService))
		assert.NoError(t, s.ChangePassword(1, "old-password", "new-password"))
		userRepo.AssertExpectations(t)
	})

	t.Run("wrong old password", func(t *testing.T) {
		u := &models.User{Password: hashOf(t, "old-password")}
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", uint(1)).Return(u, nil)

		s := NewService(userRepo, new(MockProfileService))
		assert.Error(t, s.ChangePassword(1, "not-the-old-one", "new-password"))
	})
}
