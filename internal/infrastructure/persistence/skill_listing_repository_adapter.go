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
	"github.com/skillswap/skillswap-backend/internal/domain/valueobject"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
)

var listingSelect = `
	SELECT l.id, l.owner_id, l.title, l.description, l.category, l.level, l.time_commitment,
	       l.availability, l.location, l.skills_wanted, l.is_active, l.views, l.created_at, l.updated_at,
	       ` + summaryColumns("u", "owner") + `
	FROM skill_listings l
	JOIN users u ON u.id = l.owner_id`

type listingRow struct {
	ID             uuid.UUID      `db:"id"`
	OwnerID        uuid.UUID      `db:"owner_id"`
	Title          string         `db:"title"`
	Description    string         `db:"description"`
	Category       string         `db:"category"`
	Level          string         `db:"level"`
	TimeCommitment string         `db:"time_commitment"`
	Availability   string         `db:"availability"`
	Location       string         `db:"location"`
	SkillsWanted   pq.StringArray `db:"skills_wanted"`
	IsActive       bool           `db:"is_active"`
	Views          int            `db:"views"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	Owner          summaryRow     `db:"owner"`
}

func (r listingRow) toEntity() *entity.SkillListing {
	return &entity.SkillListing{
		ID:             r.ID,
		OwnerID:        r.OwnerID,
		Owner:          r.Owner.toEntity(),
		Title:          r.Title,
		Description:    r.Description,
		Category:       valueobject.Category(r.Category),
		Level:          valueobject.Level(r.Level),
		TimeCommitment: r.TimeCommitment,
		Availability:   r.Availability,
		Location:       r.Location,
		SkillsWanted:   []string(r.SkillsWanted),
		IsActive:       r.IsActive,
		Views:          r.Views,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

type SkillListingRepositoryAdapter struct {
	db *sqlx.DB
}

func NewSkillListingRepositoryAdapter(db *sqlx.DB) *SkillListingRepositoryAdapter {
	return &SkillListingRepositoryAdapter{db: db}
}

func (r *SkillListingRepositoryAdapter) Create(ctx context.Context, l *entity.SkillListing) error {
	query := `
		INSERT INTO skill_listings (id, owner_id, title, description, category, level, time_commitment,
		                            availability, location, skills_wanted, is_active, views, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.OwnerID, l.Title, l.Description, string(l.Category), string(l.Level), l.TimeCommitment,
		l.Availability, l.Location, stringArray(l.SkillsWanted), l.IsActive, l.Views, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to create skill listing")
	}
	return nil
}

func (r *SkillListingRepositoryAdapter) Update(ctx context.Context, l *entity.SkillListing) error {
	query := `
		UPDATE skill_listings
		SET title = $2, description = $3, category = $4, level = $5, time_commitment = $6,
		    availability = $7, location = $8, skills_wanted = $9, is_active = $10, updated_at = $11
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		l.ID, l.Title, l.Description, string(l.Category), string(l.Level), l.TimeCommitment,
		l.Availability, l.Location, stringArray(l.SkillsWanted), l.IsActive, l.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to update skill listing")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrListingNotFound
	}
	return nil
}

func (r *SkillListingRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.SkillListing, error) {
	var row listingRow
	if err := r.db.GetContext(ctx, &row, listingSelect+` WHERE l.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrListingNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to load skill listing")
	}
	return row.toEntity(), nil
}

// IncrementViews атомарно увеличивает счётчик просмотров активного объявления.
func (r *SkillListingRepositoryAdapter) IncrementViews(ctx context.Context, id uuid.UUID) (*entity.SkillListing, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE skill_listings SET views = views + 1 WHERE id = $1 AND is_active = TRUE`, id)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to update skill listing")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperror.ErrListingNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *SkillListingRepositoryAdapter) List(ctx context.Context, filter repository.ListingFilter) ([]*entity.SkillListing, int, error) {
	b := &queryBuilder{}
	b.where("l.is_active = TRUE")

	if filter.Search != "" {
		p := b.arg(likePattern(filter.Search))
		b.where("(l.title ILIKE " + p + " OR l.description ILIKE " + p + " OR l.category ILIKE " + p + ")")
	}
	if filter.Category != "" {
		b.where("l.category = " + b.arg(filter.Category))
	}
	if filter.Level != "" {
		b.where("l.level = " + b.arg(filter.Level))
	}
	if filter.Location != "" {
		b.where("l.location ILIKE " + b.arg(likePattern(filter.Location)))
	}
	if filter.OwnerID != nil {
		b.where("l.owner_id = " + b.arg(*filter.OwnerID))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM skill_listings l`+b.whereSQL(), b.args...); err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to count skill listings")
	}

	query := listingSelect + b.whereSQL() +
		` ORDER BY l.created_at DESC LIMIT ` + b.arg(filter.Limit) + ` OFFSET ` + b.arg(filter.Offset)

	var rows []listingRow
	if err := r.db.SelectContext(ctx, &rows, query, b.args...); err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to list skill listings")
	}

	listings := make([]*entity.SkillListing, len(rows))
	for i, row := range rows {
		listings[i] = row.toEntity()
	}
	return listings, total, nil
}
