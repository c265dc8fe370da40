package model

import "errors"

// Domain conditions surfaced to the request boundary as user-facing
// failures. Storage-level errors live in app/repo.
var (
	ErrNotEligible       = errors.New("award is not open for applications")
	ErrMissingDocument   = errors.New("required document has not been uploaded")
	ErrInvalidTransition = errors.New("transition not allowed from current status")
)
