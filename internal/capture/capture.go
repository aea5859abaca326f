package capture

import (
	"context"
	"errors"
	"fmt"

	"github.com/arketra-labs/workforce-backend-go/internal/pkg/geo"
)

// Action identifies which attendance event a capture belongs to. It ends up
// in the selfie object key.
type Action string

const (
	ActionClockIn  Action = "clock_in"
	ActionClockOut Action = "clock_out"
)

// State of a capture flow. A flow walks Idle -> RequestingCamera ->
// LivePreview -> Captured -> Uploading -> Done; cancel returns it to Idle
// from anywhere.
type State int

const (
	StateIdle State = iota
	StateRequestingCamera
	StateLivePreview
	StateCaptured
	StateUploading
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequestingCamera:
		return "requesting_camera"
	case StateLivePreview:
		return "live_preview"
	case StateCaptured:
		return "captured"
	case StateUploading:
		return "uploading"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// ErrorKind classifies capture failures. Every kind is user-retryable.
type ErrorKind string

const (
	KindCameraUnavailable   ErrorKind = "camera_unavailable"
	KindLocationUnavailable ErrorKind = "location_unavailable"
	KindUploadFailed        ErrorKind = "upload_failed"
)

// Error wraps a device or upload failure with its kind.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("capture: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrFlowActive is returned when Start is called while another flow is in
// progress on the same orchestrator.
var ErrFlowActive = errors.New("capture flow already active")

// ErrFlowCancelled is returned when an operation completes after the flow
// was torn down; its result has been discarded.
var ErrFlowCancelled = errors.New("capture flow cancelled")

// ErrInvalidState is returned when an operation is requested from a state
// that does not allow it.
var ErrInvalidState = errors.New("operation not allowed in current capture state")

// Constraints describe the video stream requested from the camera.
type Constraints struct {
	Width       int
	Height      int
	FacingFront bool
}

// Stream is a live camera stream handle.
type Stream interface {
	// Frame rasterizes a still JPEG from the current video frame at the
	// given quality (0-100).
	Frame(quality int) ([]byte, error)

	// Stop releases the underlying device. Must be idempotent on the
	// caller's side; the orchestrator guarantees it calls Stop at most once
	// per acquired stream.
	Stop()
}

// Camera acquires a video stream from the device.
type Camera interface {
	Open(ctx context.Context, constraints Constraints) (Stream, error)
}

// Locator resolves the current device position. Implementations should honor
// the context deadline; the orchestrator bounds each request to
// LocationTimeout.
type Locator interface {
	Current(ctx context.Context) (geo.Coordinate, error)
}

// Uploader stores a captured selfie and returns its public URL.
// service/file.Service satisfies this.
type Uploader interface {
	UploadSelfie(ctx context.Context, employeeID string, action string, image []byte) (string, error)
}

// Result is delivered when a capture flow completes.
type Result struct {
	SelfieURL string
	Location  geo.Coordinate
}
