package queue

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("queue: validation failed")

	ErrInvalidPriority   = fmt.Errorf("%w: priority out of range", ErrValidation)
	ErrInvalidStatus     = fmt.Errorf("%w: status out of range", ErrValidation)
	ErrUnknownDepartment = fmt.Errorf("%w: unknown department", ErrValidation)
	ErrMissingOwner      = fmt.Errorf("%w: owner id is required", ErrValidation)
	ErrMissingTicketID   = fmt.Errorf("%w: ticket id is required", ErrValidation)

	ErrPersistence    = errors.New("queue: ticket store rejected the operation")
	ErrTicketNotFound = errors.New("queue: ticket not found")
	ErrForbidden      = errors.New("queue: operation not allowed for this viewer")
)
