package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/skillswap/skillswap-backend/internal/domain/entity"
	"github.com/skillswap/skillswap-backend/internal/domain/repository"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
)

const userColumns = `id, name, email, password_hash, bio, location, linkedin_profile, avatar,
	skills_offered, skills_wanted, rating, completed_exchanges, matches, is_active, created_at, updated_at`

type userRow struct {
	ID                 uuid.UUID      `db:"id"`
	Name               string         `db:"name"`
	Email              string         `db:"email"`
	PasswordHash       string         `db:"password_hash"`
	Bio                string         `db:"bio"`
	Location           string         `db:"location"`
	LinkedInProfile    string         `db:"linkedin_profile"`
	Avatar             string         `db:"avatar"`
	SkillsOffered      pq.StringArray `db:"skills_offered"`
	SkillsWanted       pq.StringArray `db:"skills_wanted"`
	Rating             float64        `db:"rating"`
	CompletedExchanges int            `db:"completed_exchanges"`
	Matches            pq.StringArray `db:"matches"`
	IsActive           bool           `db:"is_active"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

func (r userRow) toEntity() *entity.User {
	matches := make([]uuid.UUID, 0, len(r.Matches))
	for _, raw := range r.Matches {
		if id, err := uuid.Parse(raw); err == nil {
			matches = append(matches, id)
		}
	}
	return &entity.User{
		ID:                 r.ID,
		Name:               r.Name,
		Email:              r.Email,
		PasswordHash:       r.PasswordHash,
		Bio:                r.Bio,
		Location:           r.Location,
		LinkedInProfile:    r.LinkedInProfile,
		Avatar:             r.Avatar,
		SkillsOffered:      []string(r.SkillsOffered),
		SkillsWanted:       []string(r.SkillsWanted),
		Rating:             r.Rating,
		CompletedExchanges: r.CompletedExchanges,
		Matches:            matches,
		IsActive:           r.IsActive,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

type UserRepositoryAdapter struct {
	db *sqlx.DB
}

func NewUserRepositoryAdapter(db *sqlx.DB) *UserRepositoryAdapter {
	return &UserRepositoryAdapter{db: db}
}

func (r *UserRepositoryAdapter) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, bio, location, linkedin_profile, avatar,
		                   skills_offered, skills_wanted, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Bio, u.Location, u.LinkedInProfile, u.Avatar,
		stringArray(u.SkillsOffered), stringArray(u.SkillsWanted), u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Wrap(err, apperror.ErrCodeConflict, "User already exists with this email")
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to create user")
	}
	return nil
}

func (r *UserRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepositoryAdapter) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepositoryAdapter) findOne(ctx context.Context, query string, arg interface{}) (*entity.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to load user")
	}
	return row.toEntity(), nil
}

func (r *UserRepositoryAdapter) UpdateProfile(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, bio = $3, location = $4, linkedin_profile = $5, avatar = $6,
		    skills_offered = $7, skills_wanted = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		u.ID, u.Name, u.Bio, u.Location, u.LinkedInProfile, u.Avatar,
		stringArray(u.SkillsOffered), stringArray(u.SkillsWanted), u.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to update profile")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryAdapter) Search(ctx context.Context, filter repository.UserFilter) ([]*entity.User, int, error) {
	b := &queryBuilder{}
	b.where("is_active = TRUE")

	if filter.Search != "" {
		p := b.arg(likePattern(filter.Search))
		b.where("(name ILIKE " + p + " OR bio ILIKE " + p +
			" OR EXISTS (SELECT 1 FROM unnest(skills_offered) s WHERE s ILIKE " + p + ")" +
			" OR EXISTS (SELECT 1 FROM unnest(skills_wanted) s WHERE s ILIKE " + p + "))")
	}
	if len(filter.Skills) > 0 {
		patterns := make([]string, len(filter.Skills))
		for i, s := range filter.Skills {
			patterns[i] = likePattern(s)
		}
		b.where("EXISTS (SELECT 1 FROM unnest(skills_offered) s WHERE s ILIKE ANY(" + b.arg(pq.Array(patterns)) + "))")
	}
	if filter.Location != "" {
		b.where("location ILIKE " + b.arg(likePattern(filter.Location)))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`+b.whereSQL(), b.args...); err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to count users")
	}

	query := `SELECT ` + userColumns + ` FROM users` + b.whereSQL() +
		` ORDER BY created_at DESC LIMIT ` + b.arg(filter.Limit) + ` OFFSET ` + b.arg(filter.Offset)

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query, b.args...); err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to search users")
	}

	users := make([]*entity.User, len(rows))
	for i, row := range rows {
		users[i] = row.toEntity()
	}
	return users, total, nil
}

// AddMatch добавляет matchedUserID в users.matches, если его там ещё нет.
func (r *UserRepositoryAdapter) AddMatch(ctx context.Context, userID, matchedUserID uuid.UUID) error {
	query := `
		UPDATE users
		SET matches = array_append(matches, $2::uuid), updated_at = NOW()
		WHERE id = $1 AND NOT ($2::uuid = ANY(matches))
	`
	if _, err := r.db.ExecContext(ctx, query, userID, matchedUserID); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to update user matches")
	}
	return nil
}

func (r *UserRepositoryAdapter) RemoveMatch(ctx context.Context, userID, matchedUserID uuid.UUID) error {
	query := `UPDATE users SET matches = array_remove(matches, $2::uuid), updated_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID, matchedUserID); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to update user matches")
	}
	return nil
}
