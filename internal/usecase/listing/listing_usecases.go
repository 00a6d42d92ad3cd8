package listing

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skillswap/skillswap-backend/internal/domain/entity"
	"github.com/skillswap/skillswap-backend/internal/domain/repository"
	"github.com/skillswap/skillswap-backend/internal/logger"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
	"github.com/skillswap/skillswap-backend/internal/pkg/pagination"
)

const DefaultPageSize = 12

var errNotOwner = apperror.New(apperror.ErrCodeNotFound, "Skill listing not found or unauthorized")

type CreateUseCase struct {
	listings repository.SkillListingRepository
}

func NewCreateUseCase(listings repository.SkillListingRepository) *CreateUseCase {
	return &CreateUseCase{listings: listings}
}

func (uc *CreateUseCase) Execute(ctx context.Context, ownerID uuid.UUID, fields entity.SkillListingFields) (*entity.SkillListing, error) {
	l, err := entity.NewSkillListing(ownerID, fields)
	if err != nil {
		return nil, err
	}
	if err := uc.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	logger.Log.WithFields(logrus.Fields{"listing_id": l.ID, "owner_id": ownerID}).Info("listing: объявление создано")

	if loaded, err := uc.listings.FindByID(ctx, l.ID); err == nil {
		return loaded, nil
	}
	return l, nil
}

type GetUseCase struct {
	listings repository.SkillListingRepository
}

func NewGetUseCase(listings repository.SkillListingRepository) *GetUseCase {
	return &GetUseCase{listings: listings}
}

// Execute возвращает активное объявление, увеличив счётчик просмотров.
func (uc *GetUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.SkillListing, error) {
	l, err := uc.listings.IncrementViews(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrListingNotFound
		}
		return nil, err
	}
	return l, nil
}

type UpdateUseCase struct {
	listings repository.SkillListingRepository
}

func NewUpdateUseCase(listings repository.SkillListingRepository) *UpdateUseCase {
	return &UpdateUseCase{listings: listings}
}

func (uc *UpdateUseCase) Execute(ctx context.Context, id, ownerID uuid.UUID, update entity.SkillListingUpdate) (*entity.SkillListing, error) {
	l, err := findOwned(ctx, uc.listings, id, ownerID)
	if err != nil {
		return nil, err
	}
	if err := l.Apply(update); err != nil {
		return nil, err
	}
	if err := uc.listings.Update(ctx, l); err != nil {
		return nil, err
	}
	if loaded, err := uc.listings.FindByID(ctx, l.ID); err == nil {
		return loaded, nil
	}
	return l, nil
}

type DeleteUseCase struct {
	listings repository.SkillListingRepository
}

func NewDeleteUseCase(listings repository.SkillListingRepository) *DeleteUseCase {
	return &DeleteUseCase{listings: listings}
}

// Execute мягко удаляет объявление (is_active=false).
func (uc *DeleteUseCase) Execute(ctx context.Context, id, ownerID uuid.UUID) error {
	l, err := findOwned(ctx, uc.listings, id, ownerID)
	if err != nil {
		return err
	}
	l.Deactivate()
	return uc.listings.Update(ctx, l)
}

func findOwned(ctx context.Context, listings repository.SkillListingRepository, id, ownerID uuid.UUID) (*entity.SkillListing, error) {
	l, err := listings.FindByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, errNotOwner
		}
		return nil, err
	}
	if !l.IsActive || !l.IsOwnedBy(ownerID) {
		return nil, errNotOwner
	}
	return l, nil
}

type ListInput struct {
	Search   string
	Category string
	Level    string
	Location string
	OwnerID  *uuid.UUID
	Page     int
	Limit    int
	// Viewer при наличии включает разметку IsMatch.
	Viewer *uuid.UUID
}

type ListItem struct {
	Listing *entity.SkillListing
	IsMatch bool
}

type ListResult struct {
	Items []ListItem
	Total int
	Page  pagination.Page
}

type ListUseCase struct {
	listings repository.SkillListingRepository
	users    repository.UserRepository
}

func NewListUseCase(listings repository.SkillListingRepository, users repository.UserRepository) *ListUseCase {
	return &ListUseCase{listings: listings, users: users}
}

func (uc *ListUseCase) Execute(ctx context.Context, input ListInput) (*ListResult, error) {
	page := pagination.New(input.Page, input.Limit, DefaultPageSize)
	items, total, err := uc.listings.List(ctx, repository.ListingFilter{
		Search:   input.Search,
		Category: input.Category,
		Level:    input.Level,
		Location: input.Location,
		OwnerID:  input.OwnerID,
		Limit:    page.Limit,
		Offset:   page.Offset(),
	})
	if err != nil {
		return nil, err
	}

	var viewer *entity.User
	if input.Viewer != nil {
		viewer, err = uc.users.FindByID(ctx, *input.Viewer)
		if err != nil {
			// без профиля зрителя список отдаётся без разметки
			logger.Log.WithError(err).WithField("viewer_id", *input.Viewer).Warn("listing: не удалось загрузить зрителя")
			viewer = nil
		}
	}

	result := &ListResult{Items: make([]ListItem, 0, len(items)), Total: total, Page: page}
	for _, l := range items {
		result.Items = append(result.Items, ListItem{Listing: l, IsMatch: IsPotentialMatch(viewer, l)})
	}
	return result, nil
}
