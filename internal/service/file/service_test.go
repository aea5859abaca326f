package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	keys         []string
	contentTypes []string
	sizes        []int
}

func (s *fakeStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	s.keys = append(s.keys, path)
	s.contentTypes = append(s.contentTypes, contentType)
	s.sizes = append(s.sizes, len(data))
	return "https://cdn.example.com/" + path, nil
}

func (s *fakeStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(nil)), nil
}

func (s *fakeStorage) Delete(ctx context.Context, path string) error {
	return nil
}

func (s *fakeStorage) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "https://cdn.example.com/" + path, nil
}

func (s *fakeStorage) Exists(ctx context.Context, path string) (bool, error) {
	return false, nil
}

func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{uint8(x * 7), uint8(y * 13), uint8((x + y) * 3), 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(buf, img, &jpeg.Options{Quality: 95}))
	return buf.Bytes()
}

func TestUploadSelfieKeyLayout(t *testing.T) {
	store := &fakeStorage{}
	svc := NewFileService(store)

	img := testJPEG(t, 200, 200)
	url, err := svc.UploadSelfie(context.Background(), "emp-1", "clock_in", bytes.NewReader(img), "selfie.jpg")
	require.NoError(t, err)
	assert.Contains(t, url, "selfies/emp-1/clock_in_")

	require.Len(t, store.keys, 1)
	// selfies/{employeeID}/{action}_{timestamp}.jpg with a filename-safe
	// timestamp (no colons or dots besides the extension).
	keyPattern := regexp.MustCompile(`^selfies/emp-1/clock_in_\d{4}-\d{2}-\d{2}T\d{2}-\d{2}-\d{2}Z\.jpg$`)
	assert.Regexp(t, keyPattern, store.keys[0])
	assert.Equal(t, "image/jpeg", store.contentTypes[0])
}

func TestUploadSelfieRejectsUnknownExtension(t *testing.T) {
	svc := NewFileService(&fakeStorage{})

	_, err := svc.UploadSelfie(context.Background(), "emp-1", "clock_in", bytes.NewReader(nil), "selfie.gif")
	assert.Error(t, err)
}

func TestCompressImagePassthrough(t *testing.T) {
	// Already within the target window, returned untouched.
	buffer := bytes.Repeat([]byte{0xAB}, 100*1024)

	result, err := compressImage(buffer, 150*1024, 50*1024)
	require.NoError(t, err)
	assert.Equal(t, buffer, result)
}

func TestCompressImageShrinksOversized(t *testing.T) {
	img := testJPEG(t, 1600, 1600)

	result, err := compressImage(img, 20*1024, 5*1024)
	require.NoError(t, err)
	assert.Less(t, len(result), len(img))

	// Still a decodable JPEG.
	_, _, err = image.Decode(bytes.NewReader(result))
	assert.NoError(t, err)
}

func TestSelfieKeyTimestamp(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 15, 30, 0, time.UTC)
	assert.Equal(t, "2026-03-02T09-15-30Z", selfieKeyTimestamp(at))
}

func TestUploadAvatarKeepsExtension(t *testing.T) {
	store := &fakeStorage{}
	svc := NewFileService(store)

	_, err := svc.UploadAvatar(context.Background(), "emp-1", bytes.NewReader([]byte("png-bytes")), "me.png")
	require.NoError(t, err)

	require.Len(t, store.keys, 1)
	assert.Regexp(t, `^avatars/emp-1/[0-9a-f-]{36}\.png$`, store.keys[0])
	assert.Equal(t, "image/png", store.contentTypes[0])
}
