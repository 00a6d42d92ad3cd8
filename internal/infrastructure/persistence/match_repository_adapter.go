package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skillswap/skillswap-backend/internal/domain/entity"
	"github.com/skillswap/skillswap-backend/internal/domain/repository"
	"github.com/skillswap/skillswap-backend/internal/domain/valueobject"
	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
)

var matchSelect = `
	SELECT m.id, m.user1_id, m.user2_id, m.skill_listing_id, m.status, m.initiated_by, m.notes,
	       m.skill_offered, m.skill_wanted, m.created_at, m.updated_at,
	       l.title AS listing_title, l.category AS listing_category, l.level AS listing_level,
	       ` + summaryColumns("u1", "user1") + `,
	       ` + summaryColumns("u2", "user2") + `
	FROM matches m
	JOIN users u1 ON u1.id = m.user1_id
	JOIN users u2 ON u2.id = m.user2_id
	LEFT JOIN skill_listings l ON l.id = m.skill_listing_id`

type matchRow struct {
	ID              uuid.UUID      `db:"id"`
	User1ID         uuid.UUID      `db:"user1_id"`
	User2ID         uuid.UUID      `db:"user2_id"`
	SkillListingID  uuid.NullUUID  `db:"skill_listing_id"`
	Status          string         `db:"status"`
	InitiatedBy     uuid.UUID      `db:"initiated_by"`
	Notes           string         `db:"notes"`
	SkillOffered    string         `db:"skill_offered"`
	SkillWanted     string         `db:"skill_wanted"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	ListingTitle    sql.NullString `db:"listing_title"`
	ListingCategory sql.NullString `db:"listing_category"`
	ListingLevel    sql.NullString `db:"listing_level"`
	User1           summaryRow     `db:"user1"`
	User2           summaryRow     `db:"user2"`
}

func (r matchRow) toEntity() *entity.Match {
	m := &entity.Match{
		ID:           r.ID,
		User1ID:      r.User1ID,
		User2ID:      r.User2ID,
		User1:        r.User1.toEntity(),
		User2:        r.User2.toEntity(),
		Status:       valueobject.MatchStatus(r.Status),
		InitiatedBy:  r.InitiatedBy,
		Notes:        r.Notes,
		SkillOffered: r.SkillOffered,
		SkillWanted:  r.SkillWanted,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.SkillListingID.Valid {
		id := r.SkillListingID.UUID
		m.SkillListingID = &id
		if r.ListingTitle.Valid {
			m.SkillListing = &entity.SkillListing{
				ID:       id,
				Title:    r.ListingTitle.String,
				Category: valueobject.Category(r.ListingCategory.String),
				Level:    valueobject.Level(r.ListingLevel.String),
			}
		}
	}
	return m
}

type MatchRepositoryAdapter struct {
	db *sqlx.DB
}

func NewMatchRepositoryAdapter(db *sqlx.DB) *MatchRepositoryAdapter {
	return &MatchRepositoryAdapter{db: db}
}

func (r *MatchRepositoryAdapter) Create(ctx context.Context, m *entity.Match) error {
	query := `
		INSERT INTO matches (id, user1_id, user2_id, skill_listing_id, status, initiated_by, notes,
		                     skill_offered, skill_wanted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	var listingID uuid.NullUUID
	if m.SkillListingID != nil {
		listingID = uuid.NullUUID{UUID: *m.SkillListingID, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.User1ID, m.User2ID, listingID, string(m.Status), m.InitiatedBy, m.Notes,
		m.SkillOffered, m.SkillWanted, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to create match")
	}
	return nil
}

func (r *MatchRepositoryAdapter) UpdateStatus(ctx context.Context, m *entity.Match) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE matches SET status = $2, updated_at = $3 WHERE id = $1`,
		m.ID, string(m.Status), m.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to update match")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrMatchNotFound
	}
	return nil
}

func (r *MatchRepositoryAdapter) Complete(ctx context.Context, m *entity.Match) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to update match")
	}
	defer tx.Rollback()

	// условие по статусу делает завершение однократным и при конкурентных вызовах:
	// второй UPDATE дождётся блокировки строки и не найдёт её
	res, err := tx.ExecContext(ctx,
		`UPDATE matches SET status = $2, updated_at = $3 WHERE id = $1 AND status <> $2`,
		m.ID, string(valueobject.MatchStatusCompleted), m.UpdatedAt,
	)
	if err != nil {
		return false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to update match")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to update match")
	}
	if n == 0 {
		var exists bool
		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM matches WHERE id = $1)`, m.ID); err != nil {
			return false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to update match")
		}
		if !exists {
			return false, apperror.ErrMatchNotFound
		}
		return false, nil
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET completed_exchanges = completed_exchanges + 1, updated_at = NOW() WHERE id IN ($1, $2)`,
		m.User1ID, m.User2ID,
	); err != nil {
		return false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to update completed exchanges")
	}
	if err := tx.Commit(); err != nil {
		return false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to update match")
	}
	return true, nil
}

func (r *MatchRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to delete match")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.ErrMatchNotFound
	}
	return nil
}

func (r *MatchRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Match, error) {
	var row matchRow
	if err := r.db.GetContext(ctx, &row, matchSelect+` WHERE m.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrMatchNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to load match")
	}
	return row.toEntity(), nil
}

func (r *MatchRepositoryAdapter) FindBetween(ctx context.Context, userA, userB uuid.UUID) (*entity.Match, error) {
	var row matchRow
	query := matchSelect + `
		WHERE (m.user1_id = $1 AND m.user2_id = $2) OR (m.user1_id = $2 AND m.user2_id = $1)
		ORDER BY m.created_at DESC
		LIMIT 1`
	if err := r.db.GetContext(ctx, &row, query, userA, userB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to check existing matches")
	}
	return row.toEntity(), nil
}

func (r *MatchRepositoryAdapter) ExistsForListing(ctx context.Context, userA, userB, listingID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM matches
			WHERE skill_listing_id = $3
			  AND ((user1_id = $1 AND user2_id = $2) OR (user1_id = $2 AND user2_id = $1))
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userA, userB, listingID); err != nil {
		return false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to check existing matches")
	}
	return exists, nil
}

func (r *MatchRepositoryAdapter) List(ctx context.Context, filter repository.MatchFilter) ([]*entity.Match, int, error) {
	b := &queryBuilder{}
	p := b.arg(filter.UserID)
	b.where("(m.user1_id = " + p + " OR m.user2_id = " + p + ")")
	if filter.Status != "" {
		b.where("m.status = " + b.arg(string(filter.Status)))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM matches m`+b.whereSQL(), b.args...); err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to count matches")
	}

	query := matchSelect + b.whereSQL() +
		` ORDER BY m.created_at DESC LIMIT ` + b.arg(filter.Limit) + ` OFFSET ` + b.arg(filter.Offset)

	var rows []matchRow
	if err := r.db.SelectContext(ctx, &rows, query, b.args...); err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to list matches")
	}

	items := make([]*entity.Match, len(rows))
	for i, row := range rows {
		items[i] = row.toEntity()
	}
	return items, total, nil
}
