package errs

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateKey  = errors.New("duplicate key")
	ErrDatabaseQuery = errors.New("database query failed")
)

// postgres SQLSTATE unique_violation
const pgUniqueViolation = "23505"

func NewNotFound(entity string) *ApiErr {
	return newSentinelErr(http.StatusNotFound, ErrNotFound, fmt.Sprintf("%s not found", entity))
}

func NewDuplicateKeyError(message string, cause error) *ApiErr {
	return newSentinelErr(http.StatusBadRequest, ErrDuplicateKey, message).WithCause(cause)
}

// NewStorageValidationError reports a record rejected by the storage-level
// constraints. The message is the full constraint report.
func NewStorageValidationError(cause error) *ApiErr {
	return newSentinelErr(http.StatusBadRequest, ErrValidationFailed, cause.Error()).WithCause(cause)
}

// NewDatabaseError wraps an unexpected persistence failure with the operation
// that caused it. Callers forward it to the fault handler.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	e := newSentinelErr(http.StatusInternalServerError, ErrDatabaseQuery,
		fmt.Sprintf("Failed to %s %s", operation, entity))
	return e.WithCause(cause)
}

// IsDuplicateKey reports whether err is a unique constraint violation, either
// translated by gorm or raw from the postgres driver.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

// ClassifyPersistence turns the write failures a client can fix into 400s:
// unique violations get duplicateMessage, storage validation failures keep
// their constraint report. Anything else yields nil and belongs to the fault
// handler.
func ClassifyPersistence(duplicateMessage string, err error) *ApiErr {
	switch {
	case err == nil:
		return nil
	case IsDuplicateKey(err):
		return NewDuplicateKeyError(duplicateMessage, err)
	case models.IsValidationError(err):
		var vErr *models.ValidationError
		errors.As(err, &vErr)
		return NewStorageValidationError(vErr)
	}
	return nil
}
