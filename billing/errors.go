package billing

import (
	"errors"
	"fmt"
)

// ErrAlreadyPaid rejects a second payment attempt on the same invoice. No
// new settlement is created and existing data stays untouched.
var ErrAlreadyPaid = errors.New("invoice is already paid")

// ValidationError rejects invoice creation before anything is persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
