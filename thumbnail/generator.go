package thumbnail

import (
	"bytes"
	"fmt"
	"image/png"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
)

// Style defines the visual style of generated thumbnail cards
type Style struct {
	Width   int
	Height  int
	Padding int
}

// Generator renders fallback thumbnail cards for content that arrives from
// the generation pipeline without a thumbnail of its own
type Generator struct {
	style Style
}

// NewGenerator creates a generator with the default vertical-video style
func NewGenerator() *Generator {
	return &Generator{
		style: Style{
			Width:   360,
			Height:  640,
			Padding: 24,
		},
	}
}

// Generate renders a PNG card with the content title over a dark gradient
func (g *Generator) Generate(title string) ([]byte, error) {
	start := time.Now()
	defer func() {
		log.WithField("duration_ms", time.Since(start).Milliseconds()).
			Debug("Thumbnail generation completed")
	}()

	dc := gg.NewContext(g.style.Width, g.style.Height)
	dc.SetFillRule(gg.FillRuleWinding)

	// Vertical gradient background
	for y := 0; y < g.style.Height; y++ {
		t := float64(y) / float64(g.style.Height)
		dc.SetRGB(0.04+t*0.06, 0.03+t*0.04, 0.10+t*0.14)
		dc.DrawLine(0, float64(y), float64(g.style.Width), float64(y))
		dc.Stroke()
	}

	titleFace, err := loadFont(gobold.TTF, 28)
	if err != nil {
		return nil, fmt.Errorf("failed to load title font: %w", err)
	}
	dc.SetFontFace(titleFace)
	dc.SetRGB(1, 1, 1)

	if title == "" {
		title = "New video"
	}
	textWidth := float64(g.style.Width - 2*g.style.Padding)
	dc.DrawStringWrapped(title, float64(g.style.Width)/2, float64(g.style.Height)/2,
		0.5, 0.5, textWidth, 1.4, gg.AlignCenter)

	// Footer strip
	footerFace, err := loadFont(gomono.TTF, 13)
	if err != nil {
		return nil, fmt.Errorf("failed to load footer font: %w", err)
	}
	dc.SetFontFace(footerFace)
	dc.SetRGBA(1, 1, 1, 0.55)
	dc.DrawStringAnchored("viralcast", float64(g.style.Width)/2, float64(g.style.Height-g.style.Padding), 0.5, 0.5)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// loadFont loads a font from byte data
func loadFont(fontData []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:       size,
		DPI:        72,
		Hinting:    font.HintingFull,
		SubPixelsX: 4,
		SubPixelsY: 4,
	})
	return face, nil
}
