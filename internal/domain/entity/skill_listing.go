package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/skillswap/skillswap-backend/internal/domain/valueobject"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
)

const (
	ListingTitleMin       = 5
	ListingTitleMax       = 100
	ListingDescriptionMin = 20
	ListingDescriptionMax = 1000
)

type SkillListing struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Owner          *UserSummary
	Title          string
	Description    string
	Category       valueobject.Category
	Level          valueobject.Level
	TimeCommitment string
	Availability   string
	Location       string
	SkillsWanted   []string
	IsActive       bool
	Views          int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type SkillListingFields struct {
	Title          string
	Description    string
	Category       string
	Level          string
	TimeCommitment string
	Availability   string
	Location       string
	SkillsWanted   []string
}

func NewSkillListing(ownerID uuid.UUID, f SkillListingFields) (*SkillListing, error) {
	l := &SkillListing{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		IsActive: true,
	}
	if err := l.assign(f); err != nil {
		return nil, err
	}
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now
	return l, nil
}

func (l *SkillListing) assign(f SkillListingFields) error {
	title := strings.TrimSpace(f.Title)
	if n := utf8.RuneCountInString(title); n < ListingTitleMin || n > ListingTitleMax {
		return apperror.New(apperror.ErrCodeValidation, "Title must be between 5 and 100 characters")
	}
	description := strings.TrimSpace(f.Description)
	if n := utf8.RuneCountInString(description); n < ListingDescriptionMin || n > ListingDescriptionMax {
		return apperror.New(apperror.ErrCodeValidation, "Description must be between 20 and 1000 characters")
	}
	category, err := valueobject.NewCategory(f.Category)
	if err != nil {
		return err
	}
	level, err := valueobject.NewLevel(f.Level)
	if err != nil {
		return err
	}
	if strings.TrimSpace(f.TimeCommitment) == "" {
		return apperror.New(apperror.ErrCodeValidation, "Time commitment is required")
	}
	if strings.TrimSpace(f.Availability) == "" {
		return apperror.New(apperror.ErrCodeValidation, "Availability is required")
	}
	if strings.TrimSpace(f.Location) == "" {
		return apperror.New(apperror.ErrCodeValidation, "Location is required")
	}

	l.Title = title
	l.Description = description
	l.Category = category
	l.Level = level
	l.TimeCommitment = strings.TrimSpace(f.TimeCommitment)
	l.Availability = strings.TrimSpace(f.Availability)
	l.Location = strings.TrimSpace(f.Location)
	l.SkillsWanted = cleanSkills(f.SkillsWanted)
	return nil
}

// SkillListingUpdate частичное обновление объявления.
type SkillListingUpdate struct {
	Title          *string
	Description    *string
	Category       *string
	Level          *string
	TimeCommitment *string
	Availability   *string
	Location       *string
	SkillsWanted   *[]string
}

// Apply применяет изменения и повторно валидирует итоговое состояние.
func (l *SkillListing) Apply(u SkillListingUpdate) error {
	f := SkillListingFields{
		Title:          l.Title,
		Description:    l.Description,
		Category:       string(l.Category),
		Level:          string(l.Level),
		TimeCommitment: l.TimeCommitment,
		Availability:   l.Availability,
		Location:       l.Location,
		SkillsWanted:   l.SkillsWanted,
	}
	if u.Title != nil {
		f.Title = *u.Title
	}
	if u.Description != nil {
		f.Description = *u.Description
	}
	if u.Category != nil {
		f.Category = *u.Category
	}
	if u.Level != nil {
		f.Level = *u.Level
	}
	if u.TimeCommitment != nil {
		f.TimeCommitment = *u.TimeCommitment
	}
	if u.Availability != nil {
		f.Availability = *u.Availability
	}
	if u.Location != nil {
		f.Location = *u.Location
	}
	if u.SkillsWanted != nil {
		f.SkillsWanted = *u.SkillsWanted
	}
	if err := l.assign(f); err != nil {
		return err
	}
	l.UpdatedAt = time.Now()
	return nil
}

func (l *SkillListing) IsOwnedBy(userID uuid.UUID) bool {
	return l.OwnerID == userID
}

func (l *SkillListing) Deactivate() {
	l.IsActive = false
	l.UpdatedAt = time.Now()
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
