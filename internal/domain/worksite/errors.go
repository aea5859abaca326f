package worksite

import "errors"

var (
	ErrWorkSiteNotFound = errors.New("work site not found")
	ErrWorkSiteInUse    = errors.New("work site still has assigned employees")
)
