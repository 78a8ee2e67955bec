package service

import "errors"

var (
	// ErrForbidden is returned when a viewer has no access to a private project.
	ErrForbidden = errors.New("project is private")

	// ErrProjectPrivate is returned when sharing is attempted on a private project.
	ErrProjectPrivate = errors.New("project must be public to share")
)
