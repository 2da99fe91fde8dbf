package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxDimension = 3840
	DefaultMaxBytes     = int64(5 * 1024 * 1024)
	DefaultMaxPixels    = int64(40_000_000)
	defaultJPEGQuality  = 85
)

var (
	ErrEmptyImage        = errors.New("media: empty image")
	ErrImageTooLarge     = errors.New("media: image exceeds size limit")
	ErrUnsupportedFormat = errors.New("media: unsupported image format")
)

type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type Result struct {
	Bytes       []byte
	ContentType string
	Width       int
	Height      int
	Resized     bool
}

type Processor interface {
	Process(ctx context.Context, upload Upload) (*Result, error)
}

// ImageProcessor validates uploaded images by decoding them and scales down
// anything larger than the configured dimension. JPEG input stays JPEG; the
// other formats are re-encoded as PNG when scaled. Images declaring more than
// maxPixels are rejected from their header, before any pixel data is decoded.
type ImageProcessor struct {
	maxBytes     int64
	maxDimension int
	maxPixels    int64
	jpegQuality  int
}

func NewImageProcessor(maxBytes int64, maxDimension int, maxPixels int64) *ImageProcessor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &ImageProcessor{
		maxBytes:     maxBytes,
		maxDimension: maxDimension,
		maxPixels:    maxPixels,
		jpegQuality:  defaultJPEGQuality,
	}
}

func (p *ImageProcessor) Process(ctx context.Context, upload Upload) (*Result, error) {
	if upload.Reader == nil {
		return nil, ErrEmptyImage
	}
	if upload.Size > p.maxBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrImageTooLarge, p.maxBytes)
	}
	data, err := io.ReadAll(io.LimitReader(upload.Reader, p.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("media: read image: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if int64(len(data)) > p.maxBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrImageTooLarge, p.maxBytes)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	contentType, ok := contentTypes[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrUnsupportedFormat, cfg.Width, cfg.Height)
	}
	if int64(cfg.Width)*int64(cfg.Height) > p.maxPixels {
		return nil, fmt.Errorf("%w (%dx%d exceeds %d pixels)", ErrImageTooLarge, cfg.Width, cfg.Height, p.maxPixels)
	}

	if cfg.Width <= p.maxDimension && cfg.Height <= p.maxDimension {
		return &Result{Bytes: data, ContentType: contentType, Width: cfg.Width, Height: cfg.Height}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	targetW, targetH := scaleToFit(cfg.Width, cfg.Height, p.maxDimension)
	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	encoded, contentType, err := p.encode(dst, format)
	if err != nil {
		return nil, err
	}
	return &Result{
		Bytes:       encoded,
		ContentType: contentType,
		Width:       targetW,
		Height:      targetH,
		Resized:     true,
	}, nil
}

var contentTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

func (p *ImageProcessor) encode(img image.Image, format string) ([]byte, string, error) {
	var buf bytes.Buffer
	if format == "jpeg" {
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.jpegQuality}); err != nil {
			return nil, "", fmt.Errorf("media: encode jpeg: %w", err)
		}
		return buf.Bytes(), "image/jpeg", nil
	}
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("media: encode png: %w", err)
	}
	return buf.Bytes(), "image/png", nil
}

func scaleToFit(width, height, maxDim int) (int, int) {
	if width >= height {
		newW := maxDim
		newH := int(math.Round(float64(height) * float64(maxDim) / float64(width)))
		return ensureMin(newW), ensureMin(newH)
	}
	newH := maxDim
	newW := int(math.Round(float64(width) * float64(maxDim) / float64(height)))
	return ensureMin(newW), ensureMin(newH)
}

func ensureMin(value int) int {
	if value < 2 {
		return 2
	}
	return value
}

// Extension returns the file extension used for objects of contentType.
func Extension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
