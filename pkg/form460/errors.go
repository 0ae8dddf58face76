package form460

import "errors"

// Violations surface synchronously to the writer; the store never retries.
var (
	// ErrDuplicateFiling is returned when a filing id is registered twice.
	ErrDuplicateFiling = errors.New("form460: filing already registered")

	// ErrDuplicateVersion is returned when a (filing, amend_id) pair is
	// recorded twice.
	ErrDuplicateVersion = errors.New("form460: filing version already recorded")

	// ErrDuplicateLineItem is returned when a (parent, line_item) pair is
	// attached twice within one schedule table.
	ErrDuplicateLineItem = errors.New("form460: line item already attached")

	// ErrNotFound is returned by lookups and deletes that match no record.
	ErrNotFound = errors.New("form460: record not found")
)

// MissingFieldError rejects an insertion before persistence when a required
// field is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "form460: missing required field " + e.Field
}
