package infra

import (
	"errors"
	"log/slog"

	"consultation-booking/internal/pkg/errs"
	"consultation-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

// WrapRepoErr classifies err by its PostgreSQL error code or pgx sentinel.
// Unclassified errors are DB failures and are logged.
func WrapRepoErr(msg string, err error) error {
	kind := Classify(err)
	if kind == KindDBFailure {
		slog.Error("Repository error: "+msg, slog.String("kind", string(kind)), slog.Any("error", err))
	}
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return RepositoryError{Kind: kind, msg: msg, err: err}
}

// NewNotFound reports a missing row detected without a driver error, e.g. zero rows affected.
func NewNotFound(msg string) error {
	return RepositoryError{Kind: KindNotFound, msg: msg}
}

func Classify(err error) RepositoryErrorKind {
	if pgconv.IsNoRows(err) {
		return KindNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return KindDuplicateKey
		case pgErrCodeForeignKeyViolation:
			return KindForeignKeyViolated
		}
	}
	return KindDBFailure
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// ConstraintName returns the violated constraint, if err carries one.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
