package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillswap/skillswap-backend/internal/domain/entity"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
)

// mockAuthRepository реализует AuthRepository на картах.
type mockAuthRepository struct {
	usersByEmail map[string]*entity.User
	usersByID    map[uuid.UUID]*entity.User
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		usersByEmail: make(map[string]*entity.User),
		usersByID:    make(map[uuid.UUID]*entity.User),
	}
}

func (m *mockAuthRepository) Create(ctx context.Context, user *entity.User) error {
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
	return nil
}

func (m *mockAuthRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if user, ok := m.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, apperror.ErrUserNotFound
}

func (m *mockAuthRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if user, ok := m.usersByID[id]; ok {
		return user, nil
	}
	return nil, apperror.ErrUserNotFound
}

// failingAuthRepo эмулирует недоступную базу.
type failingAuthRepo struct {
	mock.Mock
}

func (m *failingAuthRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *failingAuthRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *failingAuthRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("secret", time.Hour)
	service := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	res, err := service.Register(ctx, RegisterInput{
		Name:            " Jane ",
		Email:           "Jane@Example.com",
		Password:        "secret1",
		LinkedInProfile: "https://linkedin.com/in/jane",
	})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if res.User.Email != "jane@example.com" || res.User.Name != "Jane" {
		t.Fatalf("email и имя должны быть нормализованы: %q %q", res.User.Email, res.User.Name)
	}

	userID, err := tokenManager.ParseAccess(res.Token)
	if err != nil || userID != res.User.ID {
		t.Fatalf("токен должен содержать id пользователя: %v", err)
	}

	loginRes, err := service.Login(ctx, LoginInput{Email: "jane@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if loginRes.Token == "" {
		t.Fatalf("ожидался токен")
	}

	_, err = service.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "secret1"})
	if !apperror.IsConflict(err) {
		t.Fatalf("ожидался конфликт, получили %v", err)
	}
}

func TestAuthService_LoginFailures(t *testing.T) {
	repo := newMockAuthRepository()
	service := NewAuthService(repo, NewTokenManager("secret", time.Hour))
	hash, _ := bcrypt.GenerateFromPassword([]byte("right-pass"), bcrypt.MinCost)

	active := &entity.User{ID: uuid.New(), Email: "a@example.com", PasswordHash: string(hash), IsActive: true}
	inactive := &entity.User{ID: uuid.New(), Email: "b@example.com", PasswordHash: string(hash), IsActive: false}
	repo.Create(context.Background(), active)
	repo.Create(context.Background(), inactive)

	ctx := context.Background()

	_, err := service.Login(ctx, LoginInput{Email: "a@example.com", Password: "wrong-pass"})
	assert.Equal(t, apperror.ErrInvalidCredentials, err)

	_, err = service.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "right-pass"})
	assert.Equal(t, apperror.ErrInvalidCredentials, err)

	_, err = service.Login(ctx, LoginInput{Email: "b@example.com", Password: "right-pass"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Account is deactivated")
}

func TestAuthService_RegisterValidation(t *testing.T) {
	service := NewAuthService(newMockAuthRepository(), NewTokenManager("secret", time.Hour))
	ctx := context.Background()

	cases := []RegisterInput{
		{Name: "J", Email: "j@example.com", Password: "secret1"},
		{Name: "Jane", Email: "not-an-email", Password: "secret1"},
		{Name: "Jane", Email: "j@example.com", Password: "123"},
		{Name: "Jane", Email: "j@example.com", Password: "secret1", LinkedInProfile: "https://example.com/jane"},
	}
	for _, in := range cases {
		_, err := service.Register(ctx, in)
		assert.True(t, apperror.IsValidation(err), "%+v", in)
	}
}

func TestAuthService_RegisterPropagatesStoreErrors(t *testing.T) {
	repo := new(failingAuthRepo)
	dbErr := apperror.Wrap(errors.New("connection refused"), apperror.ErrCodeDatabaseError, "Failed to load user")
	repo.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, dbErr)

	service := NewAuthService(repo, NewTokenManager("secret", time.Hour))
	_, err := service.Register(context.Background(), RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "secret1"})

	assert.Equal(t, dbErr, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestAuthService_Authenticate(t *testing.T) {
	repo := newMockAuthRepository()
	tm := NewTokenManager("secret", time.Hour)
	service := NewAuthService(repo, tm)

	user := &entity.User{ID: uuid.New(), Email: "a@example.com", IsActive: true}
	repo.Create(context.Background(), user)
	token, err := tm.Generate(user.ID)
	require.NoError(t, err)

	id, err := service.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	user.IsActive = false
	_, err = service.Authenticate(context.Background(), token)
	assert.Error(t, err)

	_, err = service.Authenticate(context.Background(), "garbage")
	assert.Error(t, err)
}

func TestTokenManager_Expiry(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute)
	issued := time.Now()
	tm.now = func() time.Time { return issued }

	token, err := tm.Generate(uuid.New())
	require.NoError(t, err)

	tm.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = tm.ParseAccess(token)
	assert.Error(t, err)

	other := NewTokenManager("other-secret", time.Minute)
	_, err = other.ParseAccess(token)
	assert.Error(t, err)
}
