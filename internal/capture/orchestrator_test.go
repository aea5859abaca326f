package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/arketra-labs/workforce-backend-go/internal/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStream struct {
	mu        sync.Mutex
	frame     []byte
	frameErr  error
	stopCalls int
}

func (s *fakeStream) Frame(quality int) ([]byte, error) {
	if s.frameErr != nil {
		return nil, s.frameErr
	}
	return s.frame, nil
}

func (s *fakeStream) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopCalls++
}

func (s *fakeStream) stops() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopCalls
}

type fakeCamera struct {
	stream  *fakeStream
	openErr error
	opens   int
}

func (c *fakeCamera) Open(ctx context.Context, constraints Constraints) (Stream, error) {
	c.opens++
	if c.openErr != nil {
		return nil, c.openErr
	}
	return c.stream, nil
}

type fakeLocator struct {
	coord geo.Coordinate
	err   error
}

func (l *fakeLocator) Current(ctx context.Context) (geo.Coordinate, error) {
	if l.err != nil {
		return geo.Coordinate{}, l.err
	}
	return l.coord, nil
}

type fakeUploader struct {
	url     string
	err     error
	calls   int
	started chan struct{}
	release chan struct{}
}

func (u *fakeUploader) UploadSelfie(ctx context.Context, employeeID string, action string, image []byte) (string, error) {
	u.calls++
	if u.started != nil {
		close(u.started)
	}
	if u.release != nil {
		<-u.release
	}
	if u.err != nil {
		return "", u.err
	}
	if u.url != "" {
		return u.url, nil
	}
	return fmt.Sprintf("https://cdn.example.com/selfies/%s/%s.jpg", employeeID, action), nil
}

func newTestOrchestrator(camera *fakeCamera, locator *fakeLocator, uploader *fakeUploader) *Orchestrator {
	return NewOrchestrator(camera, locator, uploader, "emp-1", ActionClockIn, nil)
}

func TestStartMovesToLivePreview(t *testing.T) {
	camera := &fakeCamera{stream: &fakeStream{frame: []byte("jpeg")}}
	o := newTestOrchestrator(camera, &fakeLocator{}, &fakeUploader{})

	require.NoError(t, o.Start(context.Background()))
	assert.Equal(t, StateLivePreview, o.State())
	assert.Equal(t, 1, camera.opens)
}

func TestStartCameraUnavailable(t *testing.T) {
	camera := &fakeCamera{openErr: errors.New("permission denied")}
	o := newTestOrchestrator(camera, &fakeLocator{}, &fakeUploader{})

	err := o.Start(context.Background())
	var capErr *Error
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, KindCameraUnavailable, capErr.Kind)
	// No automatic retry; the user must re-trigger from idle.
	assert.Equal(t, StateIdle, o.State())
}

func TestStartRejectedWhileActive(t *testing.T) {
	camera := &fakeCamera{stream: &fakeStream{}}
	o := newTestOrchestrator(camera, &fakeLocator{}, &fakeUploader{})

	require.NoError(t, o.Start(context.Background()))
	assert.ErrorIs(t, o.Start(context.Background()), ErrFlowActive)
}

func TestCancelDuringPreviewStopsStreamOnce(t *testing.T) {
	stream := &fakeStream{frame: []byte("jpeg")}
	o := newTestOrchestrator(&fakeCamera{stream: stream}, &fakeLocator{}, &fakeUploader{})

	require.NoError(t, o.Start(context.Background()))
	o.Cancel()

	assert.Equal(t, StateIdle, o.State())
	assert.Equal(t, 1, stream.stops())

	// A second cancel must not touch the released stream again.
	o.Cancel()
	assert.Equal(t, 1, stream.stops())
}

func TestCaptureLocationFailureLeavesNoImage(t *testing.T) {
	stream := &fakeStream{frame: []byte("jpeg")}
	locator := &fakeLocator{err: errors.New("timeout")}
	o := newTestOrchestrator(&fakeCamera{stream: stream}, locator, &fakeUploader{})

	require.NoError(t, o.Start(context.Background()))
	err := o.Capture(context.Background())

	var capErr *Error
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, KindLocationUnavailable, capErr.Kind)
	// Pre-capture state: still previewing, stream still live, no frame taken.
	assert.Equal(t, StateLivePreview, o.State())
	assert.Equal(t, 0, stream.stops())
}

func TestCaptureReleasesStreamImmediately(t *testing.T) {
	stream := &fakeStream{frame: []byte("jpeg")}
	locator := &fakeLocator{coord: geo.Coordinate{Latitude: 40, Longitude: -74}}
	o := newTestOrchestrator(&fakeCamera{stream: stream}, locator, &fakeUploader{})

	require.NoError(t, o.Start(context.Background()))
	require.NoError(t, o.Capture(context.Background()))

	assert.Equal(t, StateCaptured, o.State())
	assert.Equal(t, 1, stream.stops())
}

func TestConfirmDeliversResult(t *testing.T) {
	stream := &fakeStream{frame: []byte("jpeg")}
	locator := &fakeLocator{coord: geo.Coordinate{Latitude: 40, Longitude: -74}}
	uploader := &fakeUploader{url: "https://cdn.example.com/selfies/emp-1/clock_in_x.jpg"}

	var delivered []Result
	o := NewOrchestrator(&fakeCamera{stream: stream}, locator, uploader, "emp-1", ActionClockIn, func(r Result) {
		delivered = append(delivered, r)
	})

	require.NoError(t, o.Start(context.Background()))
	require.NoError(t, o.Capture(context.Background()))

	result, err := o.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uploader.url, result.SelfieURL)
	assert.Equal(t, locator.coord, result.Location)
	assert.Equal(t, StateDone, o.State())

	if assert.Len(t, delivered, 1) {
		assert.Equal(t, result, delivered[0])
	}
}

func TestConfirmUploadFailurePreservesCapture(t *testing.T) {
	stream := &fakeStream{frame: []byte("jpeg")}
	locator := &fakeLocator{coord: geo.Coordinate{Latitude: 40, Longitude: -74}}
	uploader := &fakeUploader{err: errors.New("503")}
	o := newTestOrchestrator(&fakeCamera{stream: stream}, locator, uploader)

	require.NoError(t, o.Start(context.Background()))
	require.NoError(t, o.Capture(context.Background()))

	_, err := o.Confirm(context.Background())
	var capErr *Error
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, KindUploadFailed, capErr.Kind)
	// Retry confirmation without recapturing.
	assert.Equal(t, StateCaptured, o.State())

	uploader.err = nil
	result, err := o.Confirm(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, result.SelfieURL)
	assert.Equal(t, 2, uploader.calls)
}

func TestRetakeRestartsPreview(t *testing.T) {
	stream := &fakeStream{frame: []byte("jpeg")}
	camera := &fakeCamera{stream: stream}
	locator := &fakeLocator{coord: geo.Coordinate{Latitude: 40, Longitude: -74}}
	o := newTestOrchestrator(camera, locator, &fakeUploader{})

	require.NoError(t, o.Start(context.Background()))
	require.NoError(t, o.Capture(context.Background()))
	require.NoError(t, o.Retake(context.Background()))

	assert.Equal(t, StateLivePreview, o.State())
	assert.Equal(t, 2, camera.opens)
}

func TestCancelMidUploadDiscardsLateCompletion(t *testing.T) {
	stream := &fakeStream{frame: []byte("jpeg")}
	locator := &fakeLocator{coord: geo.Coordinate{Latitude: 40, Longitude: -74}}
	uploader := &fakeUploader{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	o := newTestOrchestrator(&fakeCamera{stream: stream}, locator, uploader)

	require.NoError(t, o.Start(context.Background()))
	require.NoError(t, o.Capture(context.Background()))

	errCh := make(chan error, 1)
	go func() {
		_, err := o.Confirm(context.Background())
		errCh <- err
	}()

	<-uploader.started
	o.Cancel()
	close(uploader.release)

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrFlowCancelled)
	case <-time.After(2 * time.Second):
		t.Fatal("confirm did not return after cancel")
	}
	assert.Equal(t, StateIdle, o.State())
}
