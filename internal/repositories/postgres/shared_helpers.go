package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
)

// SQLSTATE unique_violation
const pgUniqueViolation = "23505"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// translateError maps driver and gorm errors onto the repository taxonomy
// while keeping the original error in the chain.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", repositories.ErrNotFound, err)
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %w", repositories.ErrDuplicateKey, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s: %w", repositories.ErrDuplicateKey, pgErr.ConstraintName, err)
	}

	return err
}

// applyPagination clamps limit and offset to sane bounds
func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return query.Limit(limit).Offset(offset)
}
