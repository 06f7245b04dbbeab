package admin

import "errors"

var (
	ErrNoFeatures    = errors.New("admin: at least one feature is required")
	ErrNameRequired  = errors.New("admin: machine name is required")
	ErrTypeRequired  = errors.New("admin: machine type is required")
	ErrInvalidStatus = errors.New("admin: invalid status")
	ErrNotFound      = errors.New("admin: machine not found")
	ErrCancelled     = errors.New("admin: delete cancelled")
)

// IsValidation reports whether err rejects the submitted form.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNoFeatures) ||
		errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrTypeRequired) ||
		errors.Is(err, ErrInvalidStatus)
}
