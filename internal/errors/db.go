package errors

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapDBError maps storage database errors to AppError instances.
// It handles:
// - Context timeouts/cancellations → Timeout/Canceled
// - Missing table → Internal with a migration hint
// - Connection failures → Transport
//
// If the error is not a recognized database error, it returns the original error.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Storage request timed out.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Storage request was canceled.",
			Cause:   err,
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return &AppError{
			Code:    ErrCodeTransport,
			Message: "Storage database is unreachable.",
			Cause:   err,
		}
	}

	return err
}

func mapPgError(pgErr *pgconn.PgError) error {
	switch {
	case pgErr.Code == pgerrcode.UndefinedTable:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "Storage table is missing. Run migrations.",
			Cause:   pgErr,
		}
	case pgErr.Code == pgerrcode.StringDataRightTruncationDataException,
		pgErr.Code == pgerrcode.NotNullViolation,
		pgErr.Code == pgerrcode.CheckViolation:
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "Value cannot be stored.",
			Field:   pgErr.ColumnName,
			Cause:   pgErr,
		}
	case pgerrcode.IsConnectionException(pgErr.Code),
		pgerrcode.IsInsufficientResources(pgErr.Code):
		return &AppError{
			Code:    ErrCodeTransport,
			Message: "Storage database is unavailable.",
			Cause:   pgErr,
		}
	default:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "A database error occurred. Please try again.",
			Cause:   pgErr,
		}
	}
}
