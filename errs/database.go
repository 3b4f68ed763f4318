package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// NewDatabaseError translates a persistence failure into an ApiErr. Known
// classes of failure keep their meaning (missing rows, duplicate keys);
// everything else surfaces as an internal error, untouched and unretried.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	if cause != nil {
		// ApiErr raised inside a gorm hook (schema validation) passes through.
		var apiErr *ApiErr
		if errors.As(cause, &apiErr) {
			return apiErr
		}

		if errors.Is(cause, gorm.ErrRecordNotFound) {
			return &ApiErr{
				StatusCode: http.StatusNotFound,
				err:        fmt.Errorf("%s %w", entity, ErrNotFound),
				Cause:      cause,
			}
		}

		errStr := cause.Error()
		switch {
		case strings.Contains(errStr, "duplicate key"), strings.Contains(errStr, "UNIQUE constraint"):
			return &ApiErr{
				StatusCode: http.StatusBadRequest,
				err:        fmt.Errorf("%s already exists", entity),
				Cause:      fmt.Errorf("%w: %v", ErrConflict, cause),
			}
		case strings.Contains(errStr, "connection"):
			return &ApiErr{
				StatusCode: http.StatusServiceUnavailable,
				err:        ErrDatabaseConnection,
				Cause:      cause,
			}
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        fmt.Errorf("failed to %s %s: %w", operation, entity, ErrDatabaseQuery),
		Cause:      cause,
	}
}
