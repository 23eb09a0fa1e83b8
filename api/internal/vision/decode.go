package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"net/http"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/webp" // WEBP decoder
)

var ErrEmptyImage = errors.New("empty image")

// Frame is a decoded upload together with its original bytes.
type Frame struct {
	Data   []byte
	MIME   string
	Format string
	Image  image.Image
}

func (f Frame) Width() int  { return f.Image.Bounds().Dx() }
func (f Frame) Height() int { return f.Image.Bounds().Dy() }

// Decode decodes an uploaded image. Supported: PNG, JPEG, GIF, BMP, WEBP.
func Decode(data []byte) (Frame, error) {
	if len(data) == 0 {
		return Frame{}, ErrEmptyImage
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Frame{}, fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return Frame{}, ErrEmptyImage
	}
	return Frame{
		Data:   data,
		MIME:   http.DetectContentType(data),
		Format: format,
		Image:  img,
	}, nil
}

// FromImage wraps an in-memory image; Data stays empty.
func FromImage(img image.Image) Frame {
	return Frame{Image: img, MIME: "image/png", Format: "png"}
}

// Bytes returns the original upload, or a PNG encoding for in-memory frames.
func (f Frame) Bytes() ([]byte, string, error) {
	if len(f.Data) > 0 {
		return f.Data, f.MIME, nil
	}
	if f.Image == nil {
		return nil, "", ErrEmptyImage
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, f.Image); err != nil {
		return nil, "", fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), "image/png", nil
}
