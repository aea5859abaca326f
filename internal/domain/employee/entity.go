package employee

import "time"

type Employee struct {
	ID         string
	UserID     string
	FullName   string
	Position   *string
	Phone      *string
	AvatarURL  *string
	WorkSiteID *string // nil means no geofence is enforced for this employee
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO / Join
	Email        *string
	WorkSiteName *string
}
