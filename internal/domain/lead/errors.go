package lead

import "errors"

var (
	ErrLeadNotFound            = errors.New("lead not found")
	ErrInvalidStatusTransition = errors.New("invalid lead status transition")
	ErrLeadAccessDenied        = errors.New("lead belongs to another sales rep")
)
