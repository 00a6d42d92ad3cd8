package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/skillswap/skillswap-backend/internal/domain/valueobject"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
)

const MatchNotesMax = 500

type Match struct {
	ID             uuid.UUID
	User1ID        uuid.UUID
	User2ID        uuid.UUID
	User1          *UserSummary
	User2          *UserSummary
	SkillListingID *uuid.UUID
	SkillListing   *SkillListing
	Status         valueobject.MatchStatus
	InitiatedBy    uuid.UUID
	Notes          string
	SkillOffered   string
	SkillWanted    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type NewMatchParams struct {
	User1ID        uuid.UUID
	User2ID        uuid.UUID
	InitiatedBy    uuid.UUID
	SkillListingID *uuid.UUID
	Notes          string
	SkillOffered   string
	SkillWanted    string
}

func NewMatch(p NewMatchParams) (*Match, error) {
	if p.User1ID == p.User2ID {
		return nil, apperror.New(apperror.ErrCodeMatchValidation, "Users cannot match with themselves")
	}
	notes := strings.TrimSpace(p.Notes)
	if utf8.RuneCountInString(notes) > MatchNotesMax {
		return nil, apperror.New(apperror.ErrCodeMatchValidation, "Notes cannot exceed 500 characters")
	}

	now := time.Now()
	return &Match{
		ID:             uuid.New(),
		User1ID:        p.User1ID,
		User2ID:        p.User2ID,
		SkillListingID: p.SkillListingID,
		Status:         valueobject.MatchStatusAccepted,
		InitiatedBy:    p.InitiatedBy,
		Notes:          notes,
		SkillOffered:   p.SkillOffered,
		SkillWanted:    p.SkillWanted,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (m *Match) Involves(userID uuid.UUID) bool {
	return m.User1ID == userID || m.User2ID == userID
}

// OtherUserID возвращает участника, который не является userID.
func (m *Match) OtherUserID(userID uuid.UUID) uuid.UUID {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}

// OtherUser возвращает сводку второго участника, если она загружена.
func (m *Match) OtherUser(userID uuid.UUID) *UserSummary {
	if m.User1ID == userID {
		return m.User2
	}
	return m.User1
}

// ChangeStatus меняет статус и сообщает, произошёл ли переход в completed.
// Повторная установка completed не считается новым завершением.
func (m *Match) ChangeStatus(status valueobject.MatchStatus) (completedNow bool) {
	completedNow = status == valueobject.MatchStatusCompleted && m.Status != valueobject.MatchStatusCompleted
	m.Status = status
	m.UpdatedAt = time.Now()
	return completedNow
}
