package capture

import (
	"context"
	"sync"
	"time"

	"github.com/arketra-labs/workforce-backend-go/internal/pkg/geo"
)

const (
	// LocationTimeout bounds the single-shot, high-accuracy position request
	// made right before a frame is taken.
	LocationTimeout = 10 * time.Second

	// FrameQuality is the JPEG quality used when rasterizing the still.
	FrameQuality = 80

	previewWidth  = 640
	previewHeight = 480
)

// Orchestrator sequences camera acquisition, photo capture, geolocation
// resolution and upload into a single verified artifact. One flow is active
// per instance at a time; location always resolves before the frame is
// taken, so the two are captured as an atomic pair.
type Orchestrator struct {
	camera   Camera
	locator  Locator
	uploader Uploader

	employeeID string
	action     Action
	onResult   func(Result)

	mu       sync.Mutex
	state    State
	stream   Stream
	image    []byte
	location *geo.Coordinate
	lastErr  *Error
	// epoch increments on every cancel so an in-flight upload that completes
	// after teardown can tell its session is gone.
	epoch uint64
}

// NewOrchestrator creates an orchestrator for one employee/action pair.
// onResult may be nil; it is invoked on successful completion in addition to
// Confirm's return value.
func NewOrchestrator(camera Camera, locator Locator, uploader Uploader, employeeID string, action Action, onResult func(Result)) *Orchestrator {
	return &Orchestrator{
		camera:     camera,
		locator:    locator,
		uploader:   uploader,
		employeeID: employeeID,
		action:     action,
		onResult:   onResult,
		state:      StateIdle,
	}
}

// State returns the current flow state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// LastError returns the most recent capture error, if any.
func (o *Orchestrator) LastError() *Error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// Start acquires the front camera at preview resolution and moves the flow
// to live preview. It is only valid from Idle; a failed acquisition returns
// a CameraUnavailable error and leaves the flow in Idle so the user can
// re-trigger it.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	if o.state != StateIdle {
		o.mu.Unlock()
		return ErrFlowActive
	}
	o.state = StateRequestingCamera
	epoch := o.epoch
	o.mu.Unlock()

	stream, err := o.camera.Open(ctx, Constraints{
		Width:       previewWidth,
		Height:      previewHeight,
		FacingFront: true,
	})

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.epoch != epoch {
		// Cancelled while the camera prompt was open.
		if err == nil {
			stream.Stop()
		}
		return ErrFlowCancelled
	}

	if err != nil {
		o.state = StateIdle
		o.lastErr = &Error{Kind: KindCameraUnavailable, Err: err}
		return o.lastErr
	}

	o.stream = stream
	o.state = StateLivePreview
	o.lastErr = nil
	return nil
}

// Capture resolves the current location and then rasterizes a still from the
// live stream. Location and image succeed or fail together: if the position
// cannot be resolved within LocationTimeout no frame is taken and the flow
// stays in live preview. On success the camera stream is released
// immediately.
func (o *Orchestrator) Capture(ctx context.Context) error {
	o.mu.Lock()
	if o.state != StateLivePreview {
		o.mu.Unlock()
		return ErrInvalidState
	}
	epoch := o.epoch
	o.mu.Unlock()

	locCtx, cancel := context.WithTimeout(ctx, LocationTimeout)
	defer cancel()

	location, err := o.locator.Current(locCtx)

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.epoch != epoch {
		return ErrFlowCancelled
	}

	if err != nil {
		// Photo is intentionally not taken; the pair is atomic.
		o.lastErr = &Error{Kind: KindLocationUnavailable, Err: err}
		return o.lastErr
	}

	frame, err := o.stream.Frame(FrameQuality)
	if err != nil {
		o.lastErr = &Error{Kind: KindCameraUnavailable, Err: err}
		return o.lastErr
	}

	o.stream.Stop()
	o.stream = nil
	o.image = frame
	o.location = &location
	o.state = StateCaptured
	o.lastErr = nil
	return nil
}

// Retake discards the captured image and coordinate and restarts camera
// acquisition, returning the flow to live preview.
func (o *Orchestrator) Retake(ctx context.Context) error {
	o.mu.Lock()
	if o.state != StateCaptured {
		o.mu.Unlock()
		return ErrInvalidState
	}
	o.image = nil
	o.location = nil
	o.state = StateIdle
	o.mu.Unlock()

	return o.Start(ctx)
}

// Confirm uploads the captured selfie and delivers the resulting URL plus
// the previously resolved coordinate. On upload failure the captured image
// and coordinate are preserved so Confirm can be retried without
// recapturing. If the flow was cancelled while the upload was in flight the
// completed upload is ignored and ErrFlowCancelled is returned.
func (o *Orchestrator) Confirm(ctx context.Context) (Result, error) {
	o.mu.Lock()
	if o.state != StateCaptured {
		o.mu.Unlock()
		return Result{}, ErrInvalidState
	}
	o.state = StateUploading
	image := o.image
	location := *o.location
	epoch := o.epoch
	o.mu.Unlock()

	// The lock is not held across the upload so Cancel stays responsive.
	url, err := o.uploader.UploadSelfie(ctx, o.employeeID, string(o.action), image)

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.epoch != epoch {
		return Result{}, ErrFlowCancelled
	}

	if err != nil {
		o.state = StateCaptured
		o.lastErr = &Error{Kind: KindUploadFailed, Err: err}
		return Result{}, o.lastErr
	}

	o.image = nil
	o.location = nil
	o.state = StateDone
	o.lastErr = nil

	result := Result{SelfieURL: url, Location: location}
	if o.onResult != nil {
		// Deliver outside the mutex would risk observing torn-down state;
		// observers must not call back into the orchestrator.
		o.onResult(result)
	}
	return result, nil
}

// Cancel tears the flow down from any state. An active camera stream is
// stopped synchronously before Cancel returns; an in-flight upload is not
// awaited, its late completion is discarded.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.stream != nil {
		o.stream.Stop()
		o.stream = nil
	}
	o.image = nil
	o.location = nil
	o.lastErr = nil
	o.state = StateIdle
	o.epoch++
}
