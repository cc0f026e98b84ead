package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestProcess_DownscalesWideImages(t *testing.T) {
	p := &Processor{MaxWidth: 100, Quality: DefaultWebPQuality}

	out, err := p.Process(bytes.NewReader(pngBytes(t, 400, 200)))

	require.NoError(t, err)
	assert.Equal(t, 100, out.Width)
	assert.Equal(t, 50, out.Height)

	decoded, err := webp.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, 100, decoded.Bounds().Dx())
}

func TestProcess_KeepsSmallImages(t *testing.T) {
	out, err := NewProcessor().Process(bytes.NewReader(pngBytes(t, 64, 32)))

	require.NoError(t, err)
	assert.Equal(t, 64, out.Width)
	assert.Equal(t, 32, out.Height)
}

func TestProcess_RejectsNonImages(t *testing.T) {
	_, err := NewProcessor().Process(strings.NewReader("definitely not an image"))

	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
