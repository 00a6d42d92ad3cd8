package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-backend/internal/domain/entity"
)

type RegisterRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=100"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	LinkedInProfile string `json:"linkedinProfile" binding:"omitempty,linkedin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest частичное обновление: отсутствующие поля не меняются.
type UpdateProfileRequest struct {
	Name            *string   `json:"name" binding:"omitempty,min=2,max=100"`
	Bio             *string   `json:"bio" binding:"omitempty,max=500"`
	Location        *string   `json:"location" binding:"omitempty,max=100"`
	LinkedInProfile *string   `json:"linkedinProfile" binding:"omitempty,linkedin"`
	Avatar          *string   `json:"avatar"`
	SkillsOffered   *[]string `json:"skillsOffered" binding:"omitempty,max=50"`
	SkillsWanted    *[]string `json:"skillsWanted" binding:"omitempty,max=50"`
}

func (r UpdateProfileRequest) ToUpdate() entity.ProfileUpdate {
	return entity.ProfileUpdate{
		Name:            r.Name,
		Bio:             r.Bio,
		Location:        r.Location,
		LinkedInProfile: r.LinkedInProfile,
		Avatar:          r.Avatar,
		SkillsOffered:   r.SkillsOffered,
		SkillsWanted:    r.SkillsWanted,
	}
}

// UserResponse публичный профиль: без пароля и списка матчей.
type UserResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Bio                string    `json:"bio"`
	Location           string    `json:"location"`
	LinkedInProfile    string    `json:"linkedinProfile"`
	Avatar             string    `json:"avatar"`
	SkillsOffered      []string  `json:"skillsOffered"`
	SkillsWanted       []string  `json:"skillsWanted"`
	Rating             float64   `json:"rating"`
	CompletedExchanges int       `json:"completedExchanges"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ProfileResponse профиль владельца, включает матчи.
type ProfileResponse struct {
	UserResponse
	Matches []uuid.UUID `json:"matches"`
}

type UserSummaryResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Avatar             string    `json:"avatar"`
	Location           string    `json:"location,omitempty"`
	Rating             float64   `json:"rating"`
	CompletedExchanges int       `json:"completedExchanges"`
	SkillsOffered      []string  `json:"skillsOffered"`
	SkillsWanted       []string  `json:"skillsWanted"`
}

func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Bio:                u.Bio,
		Location:           u.Location,
		LinkedInProfile:    u.LinkedInProfile,
		Avatar:             u.Avatar,
		SkillsOffered:      nonNil(u.SkillsOffered),
		SkillsWanted:       nonNil(u.SkillsWanted),
		Rating:             u.Rating,
		CompletedExchanges: u.CompletedExchanges,
		IsActive:           u.IsActive,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func ToProfileResponse(u *entity.User) ProfileResponse {
	matches := u.Matches
	if matches == nil {
		matches = []uuid.UUID{}
	}
	return ProfileResponse{UserResponse: ToUserResponse(u), Matches: matches}
}

func ToUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}

// ToUserSummary возвращает nil, если сводка не загружена.
func ToUserSummary(s *entity.UserSummary) *UserSummaryResponse {
	if s == nil {
		return nil
	}
	return &UserSummaryResponse{
		ID:                 s.ID,
		Name:               s.Name,
		Email:              s.Email,
		Avatar:             s.Avatar,
		Location:           s.Location,
		Rating:             s.Rating,
		CompletedExchanges: s.CompletedExchanges,
		SkillsOffered:      nonNil(s.SkillsOffered),
		SkillsWanted:       nonNil(s.SkillsWanted),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
