package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/skillswap/skillswap-backend/internal/domain/valueobject"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
)

const MatchRequestMessageMax = 500

type MatchRequest struct {
	ID           uuid.UUID
	SenderID     uuid.UUID
	ReceiverID   uuid.UUID
	Sender       *UserSummary
	Receiver     *UserSummary
	SkillOffered string
	SkillWanted  string
	Message      string
	Status       valueobject.MatchRequestStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewMatchRequest(senderID, receiverID uuid.UUID, skillOffered, skillWanted, message string) (*MatchRequest, error) {
	if senderID == receiverID {
		return nil, apperror.New(apperror.ErrCodeBadRequest, "Cannot send request to yourself")
	}
	skillOffered = strings.TrimSpace(skillOffered)
	skillWanted = strings.TrimSpace(skillWanted)
	if skillOffered == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "Skill offered is required")
	}
	if skillWanted == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "Skill wanted is required")
	}
	message = strings.TrimSpace(message)
	if utf8.RuneCountInString(message) > MatchRequestMessageMax {
		return nil, apperror.New(apperror.ErrCodeValidation, "Message cannot exceed 500 characters")
	}

	now := time.Now()
	return &MatchRequest{
		ID:           uuid.New(),
		SenderID:     senderID,
		ReceiverID:   receiverID,
		SkillOffered: skillOffered,
		SkillWanted:  skillWanted,
		Message:      message,
		Status:       valueobject.MatchRequestStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (r *MatchRequest) Accept() error {
	return r.transition(valueobject.MatchRequestStatusAccepted)
}

func (r *MatchRequest) Decline() error {
	return r.transition(valueobject.MatchRequestStatusDeclined)
}

func (r *MatchRequest) transition(to valueobject.MatchRequestStatus) error {
	if !r.Status.CanTransitionTo(to) {
		return ErrAlreadyProcessed(r.Status)
	}
	r.Status = to
	r.UpdatedAt = time.Now()
	return nil
}

func (r *MatchRequest) IsPending() bool {
	return r.Status == valueobject.MatchRequestStatusPending
}

func (r *MatchRequest) IsReceivedBy(userID uuid.UUID) bool {
	return r.ReceiverID == userID
}

// ExchangeNotes текст заметки для матча, созданного из запроса.
func (r *MatchRequest) ExchangeNotes() string {
	return fmt.Sprintf("Skill exchange: %s for %s", r.SkillOffered, r.SkillWanted)
}

// ErrAlreadyProcessed ошибка повторной обработки запроса с указанием текущего статуса.
func ErrAlreadyProcessed(current valueobject.MatchRequestStatus) *apperror.AppError {
	return apperror.New(apperror.ErrCodeAlreadyProcessed, fmt.Sprintf("Request already %s", current))
}
