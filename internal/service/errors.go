package service

import "errors"

var (
	ErrMissingFields       = errors.New("missing required fields")
	ErrPasswordTooShort    = errors.New("password too short")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrInvalidAge          = errors.New("age must be a positive number")
	ErrInvalidGender       = errors.New("invalid gender selection")
	ErrInvalidField        = errors.New("invalid field value")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrPendingApproval     = errors.New("account is pending admin approval")
	ErrInvalidSignupKey    = errors.New("invalid signup key")
	ErrInvalidDuration     = errors.New("invalid duration specified")
	ErrSlotConflict        = errors.New("this time slot is already booked")
	ErrLawyerNotFound      = errors.New("lawyer not found")
	ErrNotFoundOrForbidden = errors.New("not found")
	ErrInvalidStatus       = errors.New("invalid appointment status")
	ErrInvalidTransition   = errors.New("status change not allowed")
	ErrStorageUnavailable  = errors.New("service unavailable")
)

// StorageError wraps a driver failure. It matches ErrStorageUnavailable and the
// underlying error; only the former should reach callers.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() []error { return []error{ErrStorageUnavailable, e.Err} }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
