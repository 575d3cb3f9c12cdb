package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrForeignKey is returned when a write references a missing parent row.
	ErrForeignKey = errors.New("foreign key violation")
)

const pgForeignKeyViolation = "23503"

// txBeginner is satisfied by *pgxpool.Pool and *pgx.Conn.
type txBeginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

var readOnly = pgx.TxOptions{AccessMode: pgx.ReadOnly}

// inTx runs fn against queries bound to a fresh transaction. The transaction
// commits only when fn returns nil and is rolled back on every other path.
func inTx(ctx context.Context, db txBeginner, opts pgx.TxOptions, fn func(q *sqlcgen.Queries) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(sqlcgen.New(tx)); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// translate maps driver errors onto repository sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return fmt.Errorf("%w: %s", ErrForeignKey, pgErr.ConstraintName)
	}
	return err
}
