package postgres

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
	"github.com/riskibarqy/lft-board/internal/domain/profile"
	"github.com/riskibarqy/lft-board/internal/domain/rank"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUniqueViolation reports a unique index hit. An empty constraint matches any.
func isUniqueViolation(err error, constraint string) bool {
	return isPQCode(err, pqUniqueViolation, constraint)
}

func isForeignKeyViolation(err error) bool {
	return isPQCode(err, pqForeignKeyViolation, "")
}

func isPQCode(err error, code, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if string(pqErr.Code) != code {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// rankColumns splits a rank into nullable tier and division columns.
func rankColumns(r rank.Rank) (*string, *int16) {
	r = r.Normalize()
	if !r.IsSet() {
		return nil, nil
	}
	tier := r.Tier.String()
	if !r.Division.IsSet() {
		return &tier, nil
	}
	division := int16(r.Division.Int())
	return &tier, &division
}

func rankFromColumns(tier sql.NullString, division sql.NullInt16) rank.Rank {
	if !tier.Valid {
		return rank.Rank{}
	}
	d := rank.DivisionUnset
	if division.Valid {
		d = rank.DivisionFromInt(int(division.Int16))
	}
	return rank.New(rank.NormalizeTier(tier.String), d)
}

func nullStat(v sql.NullInt64) profile.Stat {
	if !v.Valid {
		return profile.Stat{}
	}
	return profile.NewStat(v.Int64)
}
