package geo

import (
	"math"
	"sync"
)

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000

// Coordinate is a WGS-84 latitude/longitude pair in decimal degrees.
// The package performs no range validation here; callers that need strict
// input checking do it at the request boundary.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Fence is a circular boundary around a fixed center point. Being inside
// means distance-to-center <= RadiusMeters (boundary inclusive).
type Fence struct {
	Center       Coordinate
	RadiusMeters float64
}

// Verdict is the result of a geofence validation. Known is false when no
// location was available yet; callers must treat that as "awaiting location",
// not as outside the fence.
type Verdict struct {
	Known          bool
	WithinFence    bool
	DistanceMeters float64
}

// Distance returns the great-circle distance between two coordinates in
// meters using the haversine formula.
func Distance(a, b Coordinate) float64 {
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	lat1Rad := a.Latitude * (math.Pi / 180.0)
	lat2Rad := b.Latitude * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// Validate computes the fence verdict for a location. A nil location yields
// an unknown verdict.
func Validate(userLocation *Coordinate, fence Fence) Verdict {
	if userLocation == nil {
		return Verdict{}
	}

	distance := Distance(*userLocation, fence.Center)
	return Verdict{
		Known:          true,
		WithinFence:    distance <= fence.RadiusMeters,
		DistanceMeters: distance,
	}
}

// Watcher re-validates a fence every time the tracked location changes and
// reports each result to the observer. The observer is also called for nil
// locations so the caller can render an "awaiting location" state.
type Watcher struct {
	mu       sync.Mutex
	fence    Fence
	location *Coordinate
	verdict  Verdict
	observer func(Verdict)
}

// NewWatcher creates a watcher for the given fence. The observer may be nil.
func NewWatcher(fence Fence, observer func(Verdict)) *Watcher {
	return &Watcher{fence: fence, observer: observer}
}

// SetLocation updates the tracked location, recomputes the verdict and
// notifies the observer. Pass nil when the location is lost.
func (w *Watcher) SetLocation(location *Coordinate) Verdict {
	w.mu.Lock()
	if location != nil {
		loc := *location
		w.location = &loc
	} else {
		w.location = nil
	}
	w.verdict = Validate(w.location, w.fence)
	verdict := w.verdict
	observer := w.observer
	w.mu.Unlock()

	if observer != nil {
		observer(verdict)
	}
	return verdict
}

// Verdict returns the most recent verdict.
func (w *Watcher) Verdict() Verdict {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.verdict
}
