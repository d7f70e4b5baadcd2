package taskstore

import "errors"

var (
	// ErrTaskNotFound is returned when an operation references a task id that
	// is absent from the cache. No remote call is made.
	ErrTaskNotFound = errors.New("task not found")

	// ErrProjectNotFound is the project equivalent of ErrTaskNotFound.
	ErrProjectNotFound = errors.New("project not found")

	// ErrNoOrganization is returned when the acting user has no resolvable
	// organization identity. The operation fails fast, before any remote call.
	ErrNoOrganization = errors.New("user has no organization")

	// ErrOrganizationMismatch is returned on an attempted cross-organization
	// mutation. Rejected before any remote call.
	ErrOrganizationMismatch = errors.New("record belongs to a different organization")
)
