package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-backend/internal/domain/entity"
)

type SendMatchRequestRequest struct {
	ReceiverID   string `json:"receiverId" binding:"required,uuid"`
	SkillOffered string `json:"skillOffered" binding:"required,max=100"`
	SkillWanted  string `json:"skillWanted" binding:"required,max=100"`
	Message      string `json:"message" binding:"max=500"`
}

type CreateMatchRequest struct {
	SkillListingID string `json:"skillListingId" binding:"required,uuid"`
	Notes          string `json:"notes" binding:"max=500"`
}

type UpdateMatchStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending accepted declined completed"`
}

type MatchRequestResponse struct {
	ID           uuid.UUID            `json:"id"`
	Sender       *UserSummaryResponse `json:"sender,omitempty"`
	Receiver     *UserSummaryResponse `json:"receiver,omitempty"`
	SenderID     uuid.UUID            `json:"senderId"`
	ReceiverID   uuid.UUID            `json:"receiverId"`
	SkillOffered string               `json:"skillOffered"`
	SkillWanted  string               `json:"skillWanted"`
	Message      string               `json:"message"`
	Status       string               `json:"status"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

type ListingRef struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Level    string    `json:"level"`
}

type MatchResponse struct {
	ID           uuid.UUID            `json:"id"`
	User1        *UserSummaryResponse `json:"user1,omitempty"`
	User2        *UserSummaryResponse `json:"user2,omitempty"`
	OtherUser    *UserSummaryResponse `json:"otherUser,omitempty"`
	SkillListing *ListingRef          `json:"skillListing,omitempty"`
	Status       string               `json:"status"`
	InitiatedBy  uuid.UUID            `json:"initiatedBy"`
	Notes        string               `json:"notes"`
	SkillOffered string               `json:"skillOffered"`
	SkillWanted  string               `json:"skillWanted"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

func ToMatchRequestResponse(r *entity.MatchRequest) MatchRequestResponse {
	return MatchRequestResponse{
		ID:           r.ID,
		Sender:       ToUserSummary(r.Sender),
		Receiver:     ToUserSummary(r.Receiver),
		SenderID:     r.SenderID,
		ReceiverID:   r.ReceiverID,
		SkillOffered: r.SkillOffered,
		SkillWanted:  r.SkillWanted,
		Message:      r.Message,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func ToMatchRequestResponses(items []*entity.MatchRequest) []MatchRequestResponse {
	out := make([]MatchRequestResponse, 0, len(items))
	for _, r := range items {
		out = append(out, ToMatchRequestResponse(r))
	}
	return out
}

// ToMatchResponse заполняет otherUser относительно viewerID.
func ToMatchResponse(m *entity.Match, viewerID uuid.UUID) MatchResponse {
	resp := MatchResponse{
		ID:           m.ID,
		User1:        ToUserSummary(m.User1),
		User2:        ToUserSummary(m.User2),
		Status:       string(m.Status),
		InitiatedBy:  m.InitiatedBy,
		Notes:        m.Notes,
		SkillOffered: m.SkillOffered,
		SkillWanted:  m.SkillWanted,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Involves(viewerID) {
		resp.OtherUser = ToUserSummary(m.OtherUser(viewerID))
	}
	if m.SkillListingID != nil {
		ref := &ListingRef{ID: *m.SkillListingID}
		if m.SkillListing != nil {
			ref.Title = m.SkillListing.Title
			ref.Category = string(m.SkillListing.Category)
			ref.Level = string(m.SkillListing.Level)
		}
		resp.SkillListing = ref
	}
	return resp
}

func ToMatchResponses(items []*entity.Match, viewerID uuid.UUID) []MatchResponse {
	out := make([]MatchResponse, 0, len(items))
	for _, m := range items {
		out = append(out, ToMatchResponse(m, viewerID))
	}
	return out
}
