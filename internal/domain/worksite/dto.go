package worksite

import (
	"regexp"

	"github.com/arketra-labs/workforce-backend-go/internal/pkg/validator"
)

var clockTimeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type UpsertWorkSiteRequest struct {
	ID           string  `json:"-"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	WorkStartsAt string  `json:"work_starts_at"`
	WorkEndsAt   string  `json:"work_ends_at"`
	GraceMinutes int     `json:"grace_minutes"`
}

func (r *UpsertWorkSiteRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be positive",
		})
	}

	if !clockTimeRegex.MatchString(r.WorkStartsAt) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_starts_at",
			Message: "work_starts_at must be HH:MM",
		})
	}

	if !clockTimeRegex.MatchString(r.WorkEndsAt) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_ends_at",
			Message: "work_ends_at must be HH:MM",
		})
	}

	if r.GraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes",
			Message: "grace_minutes cannot be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WorkSiteResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	WorkStartsAt string  `json:"work_starts_at"`
	WorkEndsAt   string  `json:"work_ends_at"`
	GraceMinutes int     `json:"grace_minutes"`
}

func ToResponse(s WorkSite) WorkSiteResponse {
	return WorkSiteResponse{
		ID:           s.ID,
		Name:         s.Name,
		Latitude:     s.Latitude,
		Longitude:    s.Longitude,
		RadiusMeters: s.RadiusMeters,
		WorkStartsAt: s.WorkStartsAt,
		WorkEndsAt:   s.WorkEndsAt,
		GraceMinutes: s.GraceMinutes,
	}
}
