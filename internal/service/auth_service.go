package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillswap/skillswap-backend/internal/domain/entity"
	"github.com/skillswap/skillswap-backend/internal/logger"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
	"github.com/skillswap/skillswap-backend/internal/validation"
)

// AuthRepository описывает зависимости AuthService от слоя хранилища.
type AuthRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// AuthService инкапсулирует бизнес-логику регистрации и аутентификации.
type AuthService struct {
	repo         AuthRepository
	tokenManager *TokenManager
}

// RegisterInput содержит данные пользователя при регистрации.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	LinkedInProfile string
}

// LoginInput содержит данные для входа.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult возвращает итог регистрации или авторизации.
type AuthResult struct {
	User  *entity.User
	Token string
}

var errAccountDeactivated = apperror.New(apperror.ErrCodeBadRequest, "Account is deactivated")

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(repo AuthRepository, tokenManager *TokenManager) *AuthService {
	return &AuthService{
		repo:         repo,
		tokenManager: tokenManager,
	}
}

// Register создаёт нового пользователя и выпускает токен.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := validation.NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	link := strings.TrimSpace(in.LinkedInProfile)

	for _, err := range []error{
		validation.ValidateName(name),
		validation.ValidateEmail(email),
		validation.ValidatePassword(in.Password),
		validation.ValidateLinkedIn(&link),
	} {
		if err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, apperror.New(apperror.ErrCodeConflict, "User already exists with this email")
	} else if !apperror.IsNotFound(err) {
		return nil, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "Server error during registration")
	}

	now := time.Now()
	user := &entity.User{
		ID:              uuid.New(),
		Name:            name,
		Email:           email,
		PasswordHash:    string(passHash),
		LinkedInProfile: link,
		SkillsOffered:   []string{},
		SkillsWanted:    []string{},
		Matches:         []uuid.UUID{},
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokenManager.Generate(user.ID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "Server error during registration")
	}

	logger.Log.WithField("user_id", user.ID).Info("auth service: пользователь зарегистрирован")
	return &AuthResult{User: user, Token: token}, nil
}

// Login проверяет учётные данные и возвращает токен.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email := validation.NormalizeEmail(in.Email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if in.Password == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "Password is required")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, errAccountDeactivated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.tokenManager.Generate(user.ID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "Server error during login")
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Me возвращает профиль текущего пользователя.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// Authenticate проверяет токен и что пользователь существует и активен.
func (s *AuthService) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	userID, err := s.tokenManager.ParseAccess(token)
	if err != nil {
		return uuid.Nil, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "Token is not valid")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return uuid.Nil, apperror.New(apperror.ErrCodeUnauthorized, "Token is not valid")
		}
		return uuid.Nil, err
	}
	if !user.IsActive {
		return uuid.Nil, apperror.New(apperror.ErrCodeUnauthorized, "Token is not valid")
	}
	return user.ID, nil
}
