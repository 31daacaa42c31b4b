// Package imaging validates uploaded photos, shrinks them and re-encodes
// them into a compact format.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"beertrack/domain"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	MaxEdge     = 1600
	JPEGQuality = 85
	// MaxPixels caps width*height before the full decode allocates.
	MaxPixels = 50_000_000
)

var allowed = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type Result struct {
	Data        []byte
	Ext         string
	ContentType string
}

func (r Result) Size() int64 { return int64(len(r.Data)) }

type Processor interface {
	Process(raw []byte) (Result, error)
}

type encoder struct {
	ext         string
	contentType string
	encode      func(*bytes.Buffer, image.Image) error
}

type processor struct {
	maxBytes  int
	maxEdge   int
	maxPixels int
	encoders []encoder
}

// NewProcessor returns the default pipeline: JPEG first, PNG when the JPEG
// encoder fails.
func NewProcessor() Processor {
	return &processor{
		maxBytes:  domain.MaxUploadBytes,
		maxEdge:   MaxEdge,
		maxPixels: MaxPixels,
		encoders: []encoder{
			{ext: "jpg", contentType: "image/jpeg", encode: encodeJPEG},
			{ext: "png", contentType: "image/png", encode: encodePNG},
		},
	}
}

func (p *processor) Process(raw []byte) (Result, error) {
	if len(raw) == 0 {
		return Result{}, domain.ErrEmptyFile
	}
	if len(raw) > p.maxBytes {
		return Result{}, domain.ErrFileTooLarge
	}

	mt := mimetype.Detect(raw)
	if !allowed[mt.String()] {
		return Result{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedImage, mt.String())
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return Result{}, domain.ErrInvalidImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > int64(p.maxPixels) {
		return Result{}, domain.ErrInvalidImage
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Result{}, domain.ErrInvalidImage
	}

	img = Fit(img, p.maxEdge)

	var lastErr error
	for _, enc := range p.encoders {
		var buf bytes.Buffer
		if err := enc.encode(&buf, img); err != nil {
			lastErr = err
			continue
		}
		return Result{Data: buf.Bytes(), Ext: enc.ext, ContentType: enc.contentType}, nil
	}
	return Result{}, fmt.Errorf("encode image: %w", lastErr)
}

// Fit scales img down so that its longer edge is at most maxEdge, keeping
// the aspect ratio. Smaller images are returned unchanged.
func Fit(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return img
	}

	var nw, nh int
	if w >= h {
		nw = maxEdge
		nh = h * maxEdge / w
	} else {
		nh = maxEdge
		nw = w * maxEdge / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// encodeJPEG flattens transparency onto white since JPEG has no alpha.
func encodeJPEG(buf *bytes.Buffer, img image.Image) error {
	b := img.Bounds()
	flat := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(flat, flat.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, b.Min, draw.Over)
	return jpeg.Encode(buf, flat, &jpeg.Options{Quality: JPEGQuality})
}

func encodePNG(buf *bytes.Buffer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(buf, img)
}
