package domain

import "errors"

var (
	ErrRequestNotFound    = errors.New("emergency request not found")
	ErrMissingFields      = errors.New("all fields are required")
	ErrInvalidType        = errors.New("invalid emergency type")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidTransition  = errors.New("illegal status transition")
	ErrResponderRequired  = errors.New("responder_id is required to accept a request")
	ErrForbidden          = errors.New("caller may not perform this operation")
	ErrInvalidCoordinates = errors.New("location coordinates must be numeric")
)
