package valueobject

import "github.com/skillswap/skillswap-backend/internal/pkg/apperror"

type MatchRequestStatus string

const (
	MatchRequestStatusPending  MatchRequestStatus = "pending"
	MatchRequestStatusAccepted MatchRequestStatus = "accepted"
	MatchRequestStatusDeclined MatchRequestStatus = "declined"
)

func (s MatchRequestStatus) IsValid() bool {
	switch s {
	case MatchRequestStatusPending, MatchRequestStatusAccepted, MatchRequestStatusDeclined:
		return true
	}
	return false
}

// IsTerminal сообщает, что из статуса больше нет переходов.
func (s MatchRequestStatus) IsTerminal() bool {
	return s == MatchRequestStatusAccepted || s == MatchRequestStatusDeclined
}

func (s MatchRequestStatus) CanTransitionTo(newStatus MatchRequestStatus) bool {
	return s == MatchRequestStatusPending && newStatus.IsTerminal()
}

func NewMatchRequestStatus(status string) (MatchRequestStatus, error) {
	s := MatchRequestStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "Invalid match request status")
	}
	return s, nil
}

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusAccepted  MatchStatus = "accepted"
	MatchStatusDeclined  MatchStatus = "declined"
	MatchStatusCompleted MatchStatus = "completed"
)

func (s MatchStatus) IsValid() bool {
	switch s {
	case MatchStatusPending, MatchStatusAccepted, MatchStatusDeclined, MatchStatusCompleted:
		return true
	}
	return false
}

func NewMatchStatus(status string) (MatchStatus, error) {
	s := MatchStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "Invalid status")
	}
	return s, nil
}
