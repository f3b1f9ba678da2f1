package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Kích thước social preview (Open Graph)
const (
	PreviewWidth  = 1200
	PreviewHeight = 630
)

var (
	ErrImageTooLarge       = errors.New("image too large")
	ErrUnsupportedType     = errors.New("unsupported image type")
	ErrContentTypeMismatch = errors.New("file content does not match declared type")
)

// AllowedContentTypes: jpeg, png, webp
var AllowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type ImageProcessor struct {
	MaxSize int64 // bytes (default: 5MB)
}

func NewImageProcessor(maxSize int64) *ImageProcessor {
	if maxSize <= 0 {
		maxSize = 5 * 1024 * 1024
	}
	return &ImageProcessor{MaxSize: maxSize}
}

// ValidateImage kiểm tra size, declared type và nội dung thật của file.
// Trả về content type đã chuẩn hóa.
func (p *ImageProcessor) ValidateImage(data []byte, declaredType string) (string, error) {
	if int64(len(data)) > p.MaxSize {
		return "", fmt.Errorf("%w: max %dMB", ErrImageTooLarge, p.MaxSize/(1024*1024))
	}

	if _, ok := AllowedContentTypes[declaredType]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, declaredType)
	}

	// DetectContentType nhận diện được jpeg/png/webp từ magic bytes
	sniffed := http.DetectContentType(data)
	if sniffed != declaredType {
		return "", fmt.Errorf("%w: declared %s, detected %s", ErrContentTypeMismatch, declaredType, sniffed)
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("%w: not a decodable image: %v", ErrUnsupportedType, err)
	}

	return declaredType, nil
}

// SocialPreview crop ảnh về 1200x630 và encode JPEG chất lượng 85
func (p *ImageProcessor) SocialPreview(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	preview := imaging.Fill(img, PreviewWidth, PreviewHeight, imaging.Center, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, preview, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("cannot encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

// ExtensionFor trả về extension file theo content type
func ExtensionFor(contentType string) string {
	if ext, ok := AllowedContentTypes[contentType]; ok {
		return ext
	}
	return ".bin"
}
