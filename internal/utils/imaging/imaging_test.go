package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"beertrack/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.NRGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcess_DownsizesLongEdge(t *testing.T) {
	res, err := NewProcessor().Process(pngBytes(t, 3200, 800))
	require.NoError(t, err)
	assert.Equal(t, "jpg", res.Ext)
	assert.Equal(t, "image/jpeg", res.ContentType)
	assert.Equal(t, int64(len(res.Data)), res.Size())

	out, err := jpeg.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, 1600, out.Bounds().Dx())
	assert.Equal(t, 400, out.Bounds().Dy())
}

func TestProcess_KeepsSmallImages(t *testing.T) {
	res, err := NewProcessor().Process(pngBytes(t, 40, 30))
	require.NoError(t, err)

	out, err := jpeg.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, 40, out.Bounds().Dx())
	assert.Equal(t, 30, out.Bounds().Dy())
}

func TestProcess_Rejections(t *testing.T) {
	p := NewProcessor()

	_, err := p.Process(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = p.Process([]byte("definitely not an image"))
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	big := make([]byte, domain.MaxUploadBytes+1)
	_, err = p.Process(big)
	assert.ErrorIs(t, err, domain.ErrPayloadTooLarge)

	// PNG signature followed by garbage: sniffed as PNG, fails to decode.
	broken := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
	_, err = p.Process(broken)
	assert.ErrorIs(t, err, domain.ErrInvalidImage)
}

func TestProcess_FallsBackToSecondEncoder(t *testing.T) {
	p := &processor{
		maxBytes:  domain.MaxUploadBytes,
		maxEdge:   MaxEdge,
		maxPixels: MaxPixels,
		encoders: []encoder{
			{ext: "webp", contentType: "image/webp", encode: func(*bytes.Buffer, image.Image) error {
				return errors.New("unsupported")
			}},
			{ext: "png", contentType: "image/png", encode: encodePNG},
		},
	}

	res, err := p.Process(pngBytes(t, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, "png", res.Ext)
}

func TestFit_Portrait(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1000, 4000))
	out := Fit(img, 1600)
	assert.Equal(t, 400, out.Bounds().Dx())
	assert.Equal(t, 1600, out.Bounds().Dy())
}

func TestProcess_RejectsOversizedDimensions(t *testing.T) {
	p := NewProcessor().(*processor)
	p.maxPixels = 100 * 100

	// A blank 400x400 PNG compresses to a few hundred bytes.
	raw := pngBytes(t, 400, 400)
	require.Less(t, len(raw), 4096)

	_, err := p.Process(raw)
	assert.ErrorIs(t, err, domain.ErrInvalidImage)

	_, err = p.Process(pngBytes(t, 100, 100))
	assert.NoError(t, err)
}

func TestNewProcessor_PixelCap(t *testing.T) {
	p := NewProcessor().(*processor)
	assert.Equal(t, MaxPixels, p.maxPixels)
}
