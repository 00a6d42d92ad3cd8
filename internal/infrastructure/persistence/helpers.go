package persistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/skillswap/skillswap-backend/internal/domain/entity"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern строит шаблон ILIKE для поиска подстроки.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// queryBuilder накапливает условия WHERE с позиционными параметрами.
type queryBuilder struct {
	conds []string
	args  []interface{}
}

func (b *queryBuilder) arg(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *queryBuilder) where(cond string) {
	b.conds = append(b.conds, cond)
}

func (b *queryBuilder) whereSQL() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// summaryRow публичные поля пользователя из JOIN.
type summaryRow struct {
	ID                 uuid.UUID      `db:"id"`
	Name               string         `db:"name"`
	Email              string         `db:"email"`
	Avatar             string         `db:"avatar"`
	Location           string         `db:"location"`
	Rating             float64        `db:"rating"`
	CompletedExchanges int            `db:"completed_exchanges"`
	SkillsOffered      pq.StringArray `db:"skills_offered"`
	SkillsWanted       pq.StringArray `db:"skills_wanted"`
}

func (r summaryRow) toEntity() *entity.UserSummary {
	return &entity.UserSummary{
		ID:                 r.ID,
		Name:               r.Name,
		Email:              r.Email,
		Avatar:             r.Avatar,
		Location:           r.Location,
		Rating:             r.Rating,
		CompletedExchanges: r.CompletedExchanges,
		SkillsOffered:      []string(r.SkillsOffered),
		SkillsWanted:       []string(r.SkillsWanted),
	}
}

// summaryColumns выбирает поля пользователя alias с префиксом prefix,
// который sqlx раскладывает во вложенную структуру с тегом db:"prefix".
func summaryColumns(alias, prefix string) string {
	cols := []string{"id", "name", "email", "avatar", "location", "rating", "completed_exchanges", "skills_offered", "skills_wanted"}
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf(`%s.%s AS "%s.%s"`, alias, c, prefix, c)
	}
	return strings.Join(parts, ", ")
}

func stringArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(values)
}
