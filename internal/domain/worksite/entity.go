package worksite

import (
	"time"

	"github.com/arketra-labs/workforce-backend-go/internal/pkg/geo"
)

// WorkSite is a named geofenced location employees clock in from. The fence
// itself (center + radius) is treated as immutable configuration: updates
// replace the whole site row rather than patching fields.
type WorkSite struct {
	ID           string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64

	// Schedule used by the nightly classification job. Times are local
	// "HH:MM" wall-clock strings; GraceMinutes is the late tolerance.
	WorkStartsAt string
	WorkEndsAt   string
	GraceMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Fence returns the geofence for this site.
func (s WorkSite) Fence() geo.Fence {
	return geo.Fence{
		Center:       geo.Coordinate{Latitude: s.Latitude, Longitude: s.Longitude},
		RadiusMeters: s.RadiusMeters,
	}
}
