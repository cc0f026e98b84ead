package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

const (
	DefaultMaxWidth    = 1920
	DefaultWebPQuality = 85
	WebPContentType    = "image/webp"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// ProcessedImage is an encoded WebP ready for storage.
type ProcessedImage struct {
	Data   []byte
	Width  int
	Height int
}

type Processor struct {
	MaxWidth int
	Quality  float32
}

func NewProcessor() *Processor {
	return &Processor{MaxWidth: DefaultMaxWidth, Quality: DefaultWebPQuality}
}

// Process decodes a JPEG, PNG, GIF or WebP image, downsizes it to MaxWidth
// keeping the aspect ratio and re-encodes it as lossy WebP.
func (p *Processor) Process(r io.Reader) (*ProcessedImage, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	img, err := decode(raw)
	if err != nil {
		return nil, err
	}

	if p.MaxWidth > 0 && img.Bounds().Dx() > p.MaxWidth {
		img = imaging.Resize(img, p.MaxWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: p.Quality}); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}

	bounds := img.Bounds()
	return &ProcessedImage{
		Data:   buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

func decode(raw []byte) (image.Image, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrUnsupportedFormat)
	}
	mtype := mimetype.Detect(raw)

	switch {
	case mtype.Is(WebPContentType):
		img, err := webp.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return img, nil
	case strings.HasPrefix(mtype.String(), "image/"):
		img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return img, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mtype.String())
	}
}
