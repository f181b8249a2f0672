package services

import "errors"

// ErrForbidden is returned when the caller is authenticated but not
// permitted to act on the target record.
var ErrForbidden = errors.New("forbidden")

// ErrJobNotActive is returned when a student applies to a job whose
// status is not "active".
var ErrJobNotActive = errors.New("job is not active")
