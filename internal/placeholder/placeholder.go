// Package placeholder renders the fallback image served when a content slot
// has no real media yet: a dark gradient with a centred label.
package placeholder

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720

	MaxWidth  = 1920
	MaxHeight = 1080

	// cacheVersion is part of every cache key. Bump it when the rendering
	// changes so stale images are not served.
	cacheVersion = "ph-v1:"
)

var (
	gradientTop    = color.RGBA{R: 15, G: 23, B: 42, A: 255}
	gradientBottom = color.RGBA{R: 51, G: 65, B: 85, A: 255}
	labelColor     = color.RGBA{R: 203, G: 213, B: 225, A: 255}

	fontOnce   sync.Once
	fontErr    error
	regular    *opentype.Font
)

// Card describes one placeholder image.
type Card struct {
	Label  string
	Width  int
	Height int
}

func normalize(c Card) Card {
	c.Label = strings.Join(strings.Fields(c.Label), " ")
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Width > MaxWidth {
		c.Width = MaxWidth
	}
	if c.Height > MaxHeight {
		c.Height = MaxHeight
	}
	return c
}

// CacheKey identifies the rendered image for a card.
func CacheKey(c Card) [32]byte {
	c = normalize(c)
	payload := fmt.Sprintf("%s%s\x00%dx%d", cacheVersion, c.Label, c.Width, c.Height)
	return sha256.Sum256([]byte(payload))
}

// Generate renders the card as a PNG.
func Generate(c Card) ([]byte, error) {
	if err := ensureFontLoaded(); err != nil {
		return nil, err
	}
	c = normalize(c)

	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	drawGradient(img)

	if c.Label != "" {
		size := float64(c.Height) / 12
		if size < 18 {
			size = 18
		}
		face, err := opentype.NewFace(regular, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			return nil, fmt.Errorf("create label font face: %w", err)
		}
		defer closeFace(face)
		drawCenteredLabel(img, face, c.Label)
	}

	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return out.Bytes(), nil
}

func ensureFontLoaded() error {
	fontOnce.Do(func() {
		regular, fontErr = opentype.Parse(goregular.TTF)
		if fontErr != nil {
			fontErr = fmt.Errorf("parse embedded font: %w", fontErr)
		}
	})
	return fontErr
}

func closeFace(face font.Face) {
	if closer, ok := face.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}

func drawGradient(img *image.RGBA) {
	bounds := img.Bounds()
	height := bounds.Dy()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		t := float64(y-bounds.Min.Y) / float64(height-1)
		row := color.RGBA{
			R: lerp(gradientTop.R, gradientBottom.R, t),
			G: lerp(gradientTop.G, gradientBottom.G, t),
			B: lerp(gradientTop.B, gradientBottom.B, t),
			A: 255,
		}
		draw.Draw(img, image.Rect(bounds.Min.X, y, bounds.Max.X, y+1), &image.Uniform{C: row}, image.Point{}, draw.Src)
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func drawCenteredLabel(img *image.RGBA, face font.Face, label string) {
	bounds := img.Bounds()
	maxWidth := bounds.Dx() * 8 / 10
	label = fitWithEllipsis(face, label, maxWidth)
	if label == "" {
		return
	}

	width := font.MeasureString(face, label).Ceil()
	metrics := face.Metrics()
	x := bounds.Min.X + (bounds.Dx()-width)/2
	y := bounds.Min.Y + bounds.Dy()/2 + metrics.Ascent.Ceil()/2

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(label)
}

func fitWithEllipsis(face font.Face, text string, maxWidth int) string {
	const ellipsis = "..."
	if font.MeasureString(face, text).Ceil() <= maxWidth {
		return text
	}
	if font.MeasureString(face, ellipsis).Ceil() > maxWidth {
		return ""
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := strings.TrimRight(string(runes), " ") + ellipsis
		if font.MeasureString(face, candidate).Ceil() <= maxWidth {
			return candidate
		}
	}
	return ellipsis
}

// Cache memoizes rendered PNGs by cache key.
type Cache struct {
	mu     sync.Mutex
	images map[[32]byte][]byte
}

func NewCache() *Cache {
	return &Cache{images: make(map[[32]byte][]byte)}
}

// Get renders the card, reusing a previous rendering when available.
func (c *Cache) Get(card Card) ([]byte, error) {
	key := CacheKey(card)

	c.mu.Lock()
	cached, ok := c.images[key]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	img, err := Generate(card)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.images[key] = img
	c.mu.Unlock()
	return img, nil
}
