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

var matchRequestSelect = `
	SELECT r.id, r.sender_id, r.receiver_id, r.skill_offered, r.skill_wanted, r.message, r.status,
	       r.created_at, r.updated_at,
	       ` + summaryColumns("s", "sender") + `,
	       ` + summaryColumns("v", "receiver") + `
	FROM match_requests r
	JOIN users s ON s.id = r.sender_id
	JOIN users v ON v.id = r.receiver_id`

type matchRequestRow struct {
	ID           uuid.UUID  `db:"id"`
	SenderID     uuid.UUID  `db:"sender_id"`
	ReceiverID   uuid.UUID  `db:"receiver_id"`
	SkillOffered string     `db:"skill_offered"`
	SkillWanted  string     `db:"skill_wanted"`
	Message      string     `db:"message"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	Sender       summaryRow `db:"sender"`
	Receiver     summaryRow `db:"receiver"`
}

func (r matchRequestRow) toEntity() *entity.MatchRequest {
	return &entity.MatchRequest{
		ID:           r.ID,
		SenderID:     r.SenderID,
		ReceiverID:   r.ReceiverID,
		Sender:       r.Sender.toEntity(),
		Receiver:     r.Receiver.toEntity(),
		SkillOffered: r.SkillOffered,
		SkillWanted:  r.SkillWanted,
		Message:      r.Message,
		Status:       valueobject.MatchRequestStatus(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type MatchRequestRepositoryAdapter struct {
	db *sqlx.DB
}

func NewMatchRequestRepositoryAdapter(db *sqlx.DB) *MatchRequestRepositoryAdapter {
	return &MatchRequestRepositoryAdapter{db: db}
}

func (r *MatchRequestRepositoryAdapter) Create(ctx context.Context, req *entity.MatchRequest) error {
	query := `
		INSERT INTO match_requests (id, sender_id, receiver_id, skill_offered, skill_wanted, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.SenderID, req.ReceiverID, req.SkillOffered, req.SkillWanted, req.Message,
		string(req.Status), req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		// гонка двух одинаковых запросов ловится частичным уникальным индексом
		if isUniqueViolation(err) {
			return apperror.Wrap(err, apperror.ErrCodeConflict, "Duplicate request detected")
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to create match request")
	}
	return nil
}

func (r *MatchRequestRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.MatchRequest, error) {
	var row matchRequestRow
	if err := r.db.GetContext(ctx, &row, matchRequestSelect+` WHERE r.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrMatchRequestMissing
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to load match request")
	}
	return row.toEntity(), nil
}

func (r *MatchRequestRepositoryAdapter) ExistsPending(ctx context.Context, senderID, receiverID uuid.UUID, skillOffered, skillWanted string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM match_requests
			WHERE sender_id = $1 AND receiver_id = $2 AND skill_offered = $3 AND skill_wanted = $4 AND status = 'pending'
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, senderID, receiverID, skillOffered, skillWanted); err != nil {
		return false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to check existing requests")
	}
	return exists, nil
}

func (r *MatchRequestRepositoryAdapter) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to valueobject.MatchRequestStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE match_requests SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`,
		id, string(from), string(to),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, apperror.Wrap(err, apperror.ErrCodeConflict, "Duplicate request detected")
		}
		return false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to update match request")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to update match request")
	}
	return n == 1, nil
}

func (r *MatchRequestRepositoryAdapter) List(ctx context.Context, filter repository.MatchRequestFilter) ([]*entity.MatchRequest, int, error) {
	b := &queryBuilder{}
	if filter.SenderID != nil {
		b.where("r.sender_id = " + b.arg(*filter.SenderID))
	}
	if filter.ReceiverID != nil {
		b.where("r.receiver_id = " + b.arg(*filter.ReceiverID))
	}
	if filter.Status != "" {
		b.where("r.status = " + b.arg(string(filter.Status)))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM match_requests r`+b.whereSQL(), b.args...); err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to count match requests")
	}

	query := matchRequestSelect + b.whereSQL() +
		` ORDER BY r.created_at DESC LIMIT ` + b.arg(filter.Limit) + ` OFFSET ` + b.arg(filter.Offset)

	var rows []matchRequestRow
	if err := r.db.SelectContext(ctx, &rows, query, b.args...); err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to list match requests")
	}

	items := make([]*entity.MatchRequest, len(rows))
	for i, row := range rows {
		items[i] = row.toEntity()
	}
	return items, total, nil
}

func (r *MatchRequestRepositoryAdapter) CountByReceiver(ctx context.Context, receiverID uuid.UUID, status valueobject.MatchRequestStatus) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM match_requests WHERE receiver_id = $1 AND status = $2`, receiverID, string(status))
	if err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Failed to count match requests")
	}
	return count, nil
}
