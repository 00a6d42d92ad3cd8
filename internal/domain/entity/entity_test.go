package entity

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap-backend/internal/domain/valueobject"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
)

func TestNewMatchRequest_RejectsSelf(t *testing.T) {
	id := uuid.New()
	inputs := []struct{ offered, wanted, message string }{
		{"Guitar", "Spanish", ""},
		{"", "", ""},
		{"Go", "Rust", strings.Repeat("x", 600)},
	}

	for _, in := range inputs {
		_, err := NewMatchRequest(id, id, in.offered, in.wanted, in.message)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot send request to yourself")
	}
}

func TestNewMatchRequest_Validation(t *testing.T) {
	_, err := NewMatchRequest(uuid.New(), uuid.New(), " ", "Spanish", "")
	assert.True(t, apperror.IsValidation(err))

	_, err = NewMatchRequest(uuid.New(), uuid.New(), "Guitar", "Spanish", strings.Repeat("a", 501))
	assert.True(t, apperror.IsValidation(err))

	req, err := NewMatchRequest(uuid.New(), uuid.New(), " Guitar ", "Spanish", "hola")
	require.NoError(t, err)
	assert.Equal(t, "Guitar", req.SkillOffered)
	assert.True(t, req.IsPending())
}

func TestMatchRequest_TerminalStates(t *testing.T) {
	req, err := NewMatchRequest(uuid.New(), uuid.New(), "Guitar", "Spanish", "")
	require.NoError(t, err)

	require.NoError(t, req.Accept())
	assert.Equal(t, valueobject.MatchRequestStatusAccepted, req.Status)

	err = req.Decline()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Request already accepted")
	assert.Equal(t, valueobject.MatchRequestStatusAccepted, req.Status)
}

func TestMatchRequest_ExchangeNotes(t *testing.T) {
	req, _ := NewMatchRequest(uuid.New(), uuid.New(), "Guitar", "Spanish", "")
	assert.Equal(t, "Skill exchange: Guitar for Spanish", req.ExchangeNotes())
}

func TestNewMatch_DistinctUsers(t *testing.T) {
	id := uuid.New()
	_, err := NewMatch(NewMatchParams{User1ID: id, User2ID: id, InitiatedBy: id})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	m, err := NewMatch(NewMatchParams{User1ID: id, User2ID: uuid.New(), InitiatedBy: id})
	require.NoError(t, err)
	assert.Equal(t, valueobject.MatchStatusAccepted, m.Status)
}

func TestMatch_ChangeStatus_CompletedOnce(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	m, _ := NewMatch(NewMatchParams{User1ID: a, User2ID: b, InitiatedBy: a})

	assert.True(t, m.ChangeStatus(valueobject.MatchStatusCompleted))
	assert.False(t, m.ChangeStatus(valueobject.MatchStatusCompleted))
	assert.False(t, m.ChangeStatus(valueobject.MatchStatusAccepted))
	assert.True(t, m.ChangeStatus(valueobject.MatchStatusCompleted))
}

func TestMatch_OtherUser(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	m, _ := NewMatch(NewMatchParams{User1ID: a, User2ID: b, InitiatedBy: a})
	m.User1 = &UserSummary{ID: a, Name: "A"}
	m.User2 = &UserSummary{ID: b, Name: "B"}

	assert.Equal(t, b, m.OtherUserID(a))
	assert.Equal(t, "A", m.OtherUser(b).Name)
	assert.True(t, m.Involves(b))
	assert.False(t, m.Involves(uuid.New()))
}

func TestNewSkillListing_Validation(t *testing.T) {
	valid := SkillListingFields{
		Title:          "Guitar lessons",
		Description:    "Acoustic guitar for complete beginners",
		Category:       "Music",
		Level:          "Beginner",
		TimeCommitment: "2h/week",
		Availability:   "Evenings",
		Location:       "Remote",
		SkillsWanted:   []string{" Spanish ", ""},
	}

	l, err := NewSkillListing(uuid.New(), valid)
	require.NoError(t, err)
	assert.Equal(t, []string{"Spanish"}, l.SkillsWanted)
	assert.True(t, l.IsActive)

	short := valid
	short.Title = "Gtr"
	_, err = NewSkillListing(uuid.New(), short)
	assert.True(t, apperror.IsValidation(err))

	badCategory := valid
	badCategory.Category = "Gardening"
	_, err = NewSkillListing(uuid.New(), badCategory)
	assert.True(t, apperror.IsValidation(err))
}

func TestSkillListing_ApplyRevalidates(t *testing.T) {
	l, err := NewSkillListing(uuid.New(), SkillListingFields{
		Title:          "Guitar lessons",
		Description:    "Acoustic guitar for complete beginners",
		Category:       "Music",
		Level:          "Beginner",
		TimeCommitment: "2h/week",
		Availability:   "Evenings",
		Location:       "Remote",
	})
	require.NoError(t, err)

	level := "Advanced"
	require.NoError(t, l.Apply(SkillListingUpdate{Level: &level}))
	assert.Equal(t, valueobject.LevelAdvanced, l.Level)

	tooShort := "short"
	assert.Error(t, l.Apply(SkillListingUpdate{Description: &tooShort}))
	assert.Equal(t, "Acoustic guitar for complete beginners", l.Description)
}
