package user

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-backend/internal/domain/entity"
	"github.com/skillswap/skillswap-backend/internal/domain/repository"
	"github.com/skillswap/skillswap-backend/internal/logger"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
	"github.com/skillswap/skillswap-backend/internal/pkg/pagination"
	"github.com/skillswap/skillswap-backend/internal/validation"
)

const DefaultPageSize = 10

type GetUseCase struct {
	users repository.UserRepository
}

func NewGetUseCase(users repository.UserRepository) *GetUseCase {
	return &GetUseCase{users: users}
}

// Execute возвращает активного пользователя; деактивированные неотличимы от отсутствующих.
func (uc *GetUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, err := uc.users.FindByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, apperror.ErrUserNotFound
	}
	return u, nil
}

type SearchInput struct {
	Search   string
	Skills   string
	Location string
	Page     int
	Limit    int
}

type SearchResult struct {
	Items []*entity.User
	Total int
	Page  pagination.Page
}

type SearchUseCase struct {
	users repository.UserRepository
}

func NewSearchUseCase(users repository.UserRepository) *SearchUseCase {
	return &SearchUseCase{users: users}
}

func (uc *SearchUseCase) Execute(ctx context.Context, input SearchInput) (*SearchResult, error) {
	page := pagination.New(input.Page, input.Limit, DefaultPageSize)

	var skills []string
	if input.Skills != "" {
		skills = validation.NormalizeSkills(strings.Split(input.Skills, ","))
	}

	items, total, err := uc.users.Search(ctx, repository.UserFilter{
		Search:   strings.TrimSpace(input.Search),
		Skills:   skills,
		Location: strings.TrimSpace(input.Location),
		Limit:    page.Limit,
		Offset:   page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	return &SearchResult{Items: items, Total: total, Page: page}, nil
}

type UpdateProfileUseCase struct {
	users repository.UserRepository
}

func NewUpdateProfileUseCase(users repository.UserRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{users: users}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, userID uuid.UUID, update entity.ProfileUpdate) (*entity.User, error) {
	if err := normalizeProfile(&update); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	u, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	update.Apply(u)

	if err := uc.users.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	logger.Log.WithField("user_id", u.ID).Info("user: профиль обновлён")
	return u, nil
}

func normalizeProfile(p *entity.ProfileUpdate) error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if err := validation.ValidateName(name); err != nil {
			return err
		}
		p.Name = &name
	}
	if err := validation.ValidateBio(p.Bio); err != nil {
		return err
	}
	if err := validation.ValidateLocation(p.Location); err != nil {
		return err
	}
	if err := validation.ValidateLinkedIn(p.LinkedInProfile); err != nil {
		return err
	}
	if p.LinkedInProfile != nil {
		link := strings.TrimSpace(*p.LinkedInProfile)
		p.LinkedInProfile = &link
	}
	if p.SkillsOffered != nil {
		skills := validation.NormalizeSkills(*p.SkillsOffered)
		if err := validation.ValidateSkills("Skills offered", skills); err != nil {
			return err
		}
		p.SkillsOffered = &skills
	}
	if p.SkillsWanted != nil {
		skills := validation.NormalizeSkills(*p.SkillsWanted)
		if err := validation.ValidateSkills("Skills wanted", skills); err != nil {
			return err
		}
		p.SkillsWanted = &skills
	}
	return nil
}

// SetAvatarUseCase заменяет аватар и возвращает предыдущее значение,
// чтобы вызывающий мог удалить старый файл.
type SetAvatarUseCase struct {
	users repository.UserRepository
}

func NewSetAvatarUseCase(users repository.UserRepository) *SetAvatarUseCase {
	return &SetAvatarUseCase{users: users}
}

func (uc *SetAvatarUseCase) Execute(ctx context.Context, userID uuid.UUID, avatarURL string) (*entity.User, string, error) {
	u, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	previous := u.Avatar
	entity.ProfileUpdate{Avatar: &avatarURL}.Apply(u)

	if err := uc.users.UpdateProfile(ctx, u); err != nil {
		return nil, "", err
	}
	return u, previous, nil
}
