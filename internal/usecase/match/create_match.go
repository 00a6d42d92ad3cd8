package match

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skillswap/skillswap-backend/internal/domain/entity"
	"github.com/skillswap/skillswap-backend/internal/domain/repository"
	"github.com/skillswap/skillswap-backend/internal/logger"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
)

type CreateInput struct {
	UserID         uuid.UUID
	SkillListingID uuid.UUID
	Notes          string
}

// CreateUseCase создаёт матч по объявлению другого пользователя.
type CreateUseCase struct {
	matches  repository.MatchRepository
	listings repository.SkillListingRepository
	users    repository.UserRepository
}

func NewCreateUseCase(matches repository.MatchRepository, listings repository.SkillListingRepository, users repository.UserRepository) *CreateUseCase {
	return &CreateUseCase{matches: matches, listings: listings, users: users}
}

func (uc *CreateUseCase) Execute(ctx context.Context, input CreateInput) (*entity.Match, error) {
	listing, err := uc.listings.FindByID(ctx, input.SkillListingID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrListingNotFound
		}
		return nil, err
	}
	if !listing.IsActive {
		return nil, apperror.ErrListingNotFound
	}
	if listing.IsOwnedBy(input.UserID) {
		return nil, apperror.New(apperror.ErrCodeBadRequest, "Cannot match with your own listing")
	}

	exists, err := uc.matches.ExistsForListing(ctx, input.UserID, listing.OwnerID, listing.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.New(apperror.ErrCodeConflict, "Match already exists for this skill listing")
	}

	listingID := listing.ID
	m, err := entity.NewMatch(entity.NewMatchParams{
		User1ID:        input.UserID,
		User2ID:        listing.OwnerID,
		InitiatedBy:    input.UserID,
		SkillListingID: &listingID,
		Notes:          input.Notes,
		SkillOffered:   listing.Title,
		SkillWanted:    strings.Join(listing.SkillsWanted, ", "),
	})
	if err != nil {
		return nil, err
	}
	if err := uc.matches.Create(ctx, m); err != nil {
		return nil, err
	}

	if err := LinkUsers(ctx, uc.users, m); err != nil {
		discard(ctx, uc.matches, m)
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"match_id":   m.ID,
		"listing_id": listing.ID,
		"user_id":    input.UserID,
	}).Info("match: матч создан по объявлению")

	if loaded, err := uc.matches.FindByID(ctx, m.ID); err == nil {
		return loaded, nil
	}
	return m, nil
}
