package chat

import "errors"

var (
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrEmptyMessage      = errors.New("message body cannot be empty")
	ErrSelfMessage       = errors.New("cannot send a message to yourself")
)
