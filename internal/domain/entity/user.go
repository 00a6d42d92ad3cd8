package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                 uuid.UUID
	Name               string
	Email              string
	PasswordHash       string
	Bio                string
	Location           string
	LinkedInProfile    string
	Avatar             string
	SkillsOffered      []string
	SkillsWanted       []string
	Rating             float64
	CompletedExchanges int
	Matches            []uuid.UUID
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// UserSummary публичные поля пользователя для вложения в запросы, матчи и объявления.
type UserSummary struct {
	ID                 uuid.UUID
	Name               string
	Email              string
	Avatar             string
	Location           string
	Rating             float64
	CompletedExchanges int
	SkillsOffered      []string
	SkillsWanted       []string
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Avatar:             u.Avatar,
		Location:           u.Location,
		Rating:             u.Rating,
		CompletedExchanges: u.CompletedExchanges,
		SkillsOffered:      u.SkillsOffered,
		SkillsWanted:       u.SkillsWanted,
	}
}

func (u *User) HasMatch(userID uuid.UUID) bool {
	for _, id := range u.Matches {
		if id == userID {
			return true
		}
	}
	return false
}

// ProfileUpdate частичное обновление профиля: nil означает "не менять".
type ProfileUpdate struct {
	Name            *string
	Bio             *string
	Location        *string
	LinkedInProfile *string
	Avatar          *string
	SkillsOffered   *[]string
	SkillsWanted    *[]string
}

func (p ProfileUpdate) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.LinkedInProfile != nil {
		u.LinkedInProfile = *p.LinkedInProfile
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.SkillsOffered != nil {
		u.SkillsOffered = *p.SkillsOffered
	}
	if p.SkillsWanted != nil {
		u.SkillsWanted = *p.SkillsWanted
	}
	u.UpdatedAt = time.Now()
}
