package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-backend/internal/domain/entity"
	"github.com/skillswap/skillswap-backend/internal/usecase/listing"
)

type CreateListingRequest struct {
	Title          string   `json:"title" binding:"required,min=5,max=100"`
	Description    string   `json:"description" binding:"required,min=20,max=1000"`
	Category       string   `json:"category" binding:"required,skillcategory"`
	Level          string   `json:"level" binding:"required,skilllevel"`
	TimeCommitment string   `json:"timeCommitment" binding:"required"`
	Availability   string   `json:"availability" binding:"required"`
	Location       string   `json:"location" binding:"required"`
	SkillsWanted   []string `json:"skillsWanted"`
}

func (r CreateListingRequest) ToFields() entity.SkillListingFields {
	return entity.SkillListingFields{
		Title:          r.Title,
		Description:    r.Description,
		Category:       r.Category,
		Level:          r.Level,
		TimeCommitment: r.TimeCommitment,
		Availability:   r.Availability,
		Location:       r.Location,
		SkillsWanted:   r.SkillsWanted,
	}
}

type UpdateListingRequest struct {
	Title          *string   `json:"title" binding:"omitempty,min=5,max=100"`
	Description    *string   `json:"description" binding:"omitempty,min=20,max=1000"`
	Category       *string   `json:"category" binding:"omitempty,skillcategory"`
	Level          *string   `json:"level" binding:"omitempty,skilllevel"`
	TimeCommitment *string   `json:"timeCommitment"`
	Availability   *string   `json:"availability"`
	Location       *string   `json:"location"`
	SkillsWanted   *[]string `json:"skillsWanted"`
}

func (r UpdateListingRequest) ToUpdate() entity.SkillListingUpdate {
	return entity.SkillListingUpdate{
		Title:          r.Title,
		Description:    r.Description,
		Category:       r.Category,
		Level:          r.Level,
		TimeCommitment: r.TimeCommitment,
		Availability:   r.Availability,
		Location:       r.Location,
		SkillsWanted:   r.SkillsWanted,
	}
}

type ListingResponse struct {
	ID             uuid.UUID            `json:"id"`
	User           *UserSummaryResponse `json:"user,omitempty"`
	UserID         uuid.UUID            `json:"userId"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Category       string               `json:"category"`
	Level          string               `json:"level"`
	TimeCommitment string               `json:"timeCommitment"`
	Availability   string               `json:"availability"`
	Location       string               `json:"location"`
	SkillsWanted   []string             `json:"skillsWanted"`
	IsActive       bool                 `json:"isActive"`
	Views          int                  `json:"views"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

// ListingListItem элемент каталога с отметкой потенциального совпадения.
type ListingListItem struct {
	ListingResponse
	IsMatch bool `json:"isMatch"`
}

func ToListingResponse(l *entity.SkillListing) ListingResponse {
	return ListingResponse{
		ID:             l.ID,
		User:           ToUserSummary(l.Owner),
		UserID:         l.OwnerID,
		Title:          l.Title,
		Description:    l.Description,
		Category:       string(l.Category),
		Level:          string(l.Level),
		TimeCommitment: l.TimeCommitment,
		Availability:   l.Availability,
		Location:       l.Location,
		SkillsWanted:   nonNil(l.SkillsWanted),
		IsActive:       l.IsActive,
		Views:          l.Views,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func ToListingListItems(items []listing.ListItem) []ListingListItem {
	out := make([]ListingListItem, 0, len(items))
	for _, it := range items {
		out = append(out, ListingListItem{ListingResponse: ToListingResponse(it.Listing), IsMatch: it.IsMatch})
	}
	return out
}
