package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding support
	"io"
	"math"
	"path"
	"strings"
	"time"

	"github.com/arketra-labs/workforce-backend-go/internal/pkg/observability"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

type FileService interface {
	// UploadSelfie stores a clock-in/clock-out selfie and returns its URL.
	// action is "clock_in" or "clock_out".
	UploadSelfie(ctx context.Context, employeeID string, action string, file io.Reader, filename string) (string, error)

	// UploadAvatar stores an employee profile photo.
	UploadAvatar(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

var allowedImageExts = []string{".jpg", ".jpeg", ".png"}

func validImageExt(filename string) (string, bool) {
	ext := strings.ToLower(path.Ext(filename))
	for _, allowed := range allowedImageExts {
		if ext == allowed {
			return ext, true
		}
	}
	return ext, false
}

// selfieKeyTimestamp renders an instant as a filename-safe ISO timestamp.
// Colons and dots are not safe in every object store key.
func selfieKeyTimestamp(t time.Time) string {
	s := t.UTC().Format(time.RFC3339)
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, ".", "-")
	return s
}

// UploadSelfie implements FileService. The image is recompressed to a
// 50KB-150KB JPEG before upload; key layout is
// selfies/{employeeID}/{action}_{timestamp}.jpg.
func (s *fileServiceImpl) UploadSelfie(ctx context.Context, employeeID string, action string, file io.Reader, filename string) (string, error) {
	if _, ok := validImageExt(filename); !ok {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	buffer, err := io.ReadAll(file)
	if err != nil {
		observability.SelfieUploads.WithLabelValues("error").Inc()
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	compressed, err := compressImage(buffer, 150*1024, 50*1024)
	if err != nil {
		observability.SelfieUploads.WithLabelValues("error").Inc()
		return "", fmt.Errorf("failed to compress image: %w", err)
	}

	key := path.Join("selfies", employeeID,
		fmt.Sprintf("%s_%s.jpg", action, selfieKeyTimestamp(time.Now())))

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(compressed), key, "image/jpeg")
	if err != nil {
		observability.SelfieUploads.WithLabelValues("error").Inc()
		return "", fmt.Errorf("failed to upload selfie: %w", err)
	}

	observability.SelfieUploads.WithLabelValues("ok").Inc()
	return uploadedPath, nil
}

// UploadAvatar implements FileService.
func (s *fileServiceImpl) UploadAvatar(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext, ok := validImageExt(filename)
	if !ok {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	contentType := "image/jpeg"
	if ext == ".png" {
		contentType = "image/png"
	}

	key := path.Join("avatars", employeeID, fmt.Sprintf("%s%s", uuid.New().String(), ext))

	uploadedPath, err := s.storage.Upload(ctx, file, key, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	return uploadedPath, nil
}

// DeleteFile implements FileService.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL implements FileService.
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

// compressImage re-encodes an image as JPEG targeting minSize..maxSize bytes.
// Quality is lowered first; if the result is still too large the image is
// scaled down and re-encoded.
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	if len(buffer) <= maxSize && len(buffer) >= minSize {
		return buffer, nil
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	quality := 85
	var compressed []byte

	for quality >= 50 {
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode jpeg: %w", err)
		}
		compressed = buf.Bytes()

		if len(compressed) <= maxSize {
			return compressed, nil
		}
		quality -= 5
	}

	// Quality floor reached, scale the image down instead.
	targetSize := (maxSize + minSize) / 2
	ratio := math.Sqrt(float64(targetSize) / float64(len(compressed)))
	newWidth := int(float64(originalWidth) * ratio)
	newHeight := int(float64(originalHeight) * ratio)
	if newWidth < 320 {
		newWidth = 320
	}
	if newHeight < 240 {
		newHeight = 240
	}

	resized := resizeImage(img, newWidth, newHeight)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 70}); err != nil {
		return nil, fmt.Errorf("failed to encode resized jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
