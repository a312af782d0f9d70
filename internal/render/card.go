// Package render rasterizes certificates into styled card images. This is
// the snapshot collaborator of the minting flow and the backend of the
// "export as PNG" action.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/dmitrijs2005/certmint/internal/models"
)

// Card geometry. The 2:1.4 ratio roughly matches a landscape diploma sheet.
const (
	cardWidth  = 1200
	cardHeight = 840
	margin     = 72.0
	lineSpace  = 1.5
)

var (
	borderColor = color.RGBA{R: 0x1e, G: 0x3a, B: 0x8a, A: 0xff}
	titleColor  = color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	bodyColor   = color.RGBA{R: 0x4b, G: 0x55, B: 0x63, A: 0xff}
	footerColor = color.RGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
)

var ErrNothingToRender = errors.New("nothing to render")

// CardRenderer draws a certificate card and encodes it as PNG.
//
// The truetype font is loaded lazily on the first Render call and cached;
// a missing or unparseable font file surfaces as a render error rather than
// a construction failure, so the rest of the application stays usable
// without a font.
type CardRenderer struct {
	fontPath      string
	titleFontSize float64
	bodyFontSize  float64

	once      sync.Once
	titleFace font.Face
	bodyFace  font.Face
	footFace  font.Face
	loadErr   error
}

func NewCardRenderer(fontPath string, titleFontSize, bodyFontSize float64) *CardRenderer {
	return &CardRenderer{
		fontPath:      fontPath,
		titleFontSize: titleFontSize,
		bodyFontSize:  bodyFontSize,
	}
}

func (r *CardRenderer) faces() (font.Face, font.Face, font.Face, error) {
	r.once.Do(func() {
		ttf, err := loadFont(r.fontPath)
		if err != nil {
			r.loadErr = err
			return
		}
		r.titleFace = newFace(ttf, r.titleFontSize)
		r.bodyFace = newFace(ttf, r.bodyFontSize)
		r.footFace = newFace(ttf, r.bodyFontSize*0.7)
	})
	return r.titleFace, r.bodyFace, r.footFace, r.loadErr
}

// Render draws the certificate onto a white card: centered title, word-
// wrapped body, and a footer carrying the issue/last-updated timestamp.
func (r *CardRenderer) Render(cert models.Certificate) ([]byte, error) {
	if cert.ID == "" || cert.Title == "" {
		return nil, ErrNothingToRender
	}

	titleFace, bodyFace, footFace, err := r.faces()
	if err != nil {
		return nil, fmt.Errorf("loading card font: %w", err)
	}

	dc := gg.NewContext(cardWidth, cardHeight)

	// White card with a double border.
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(borderColor)
	dc.SetLineWidth(6)
	dc.DrawRectangle(24, 24, cardWidth-48, cardHeight-48)
	dc.Stroke()
	dc.SetLineWidth(2)
	dc.DrawRectangle(40, 40, cardWidth-80, cardHeight-80)
	dc.Stroke()

	// Title, centered near the top.
	dc.SetFontFace(titleFace)
	dc.SetColor(titleColor)
	dc.DrawStringWrapped(cert.Title, cardWidth/2, margin+60, 0.5, 0.5,
		cardWidth-2*margin, lineSpace, gg.AlignCenter)

	// Body, wrapped inside the margins.
	dc.SetFontFace(bodyFace)
	dc.SetColor(bodyColor)
	dc.DrawStringWrapped(cert.Content, cardWidth/2, cardHeight/2, 0.5, 0.5,
		cardWidth-2*margin, lineSpace, gg.AlignCenter)

	// Footer with the displayed timestamp.
	dc.SetFontFace(footFace)
	dc.SetColor(footerColor)
	footer := fmt.Sprintf("%s: %s", cert.TimestampLabel(),
		cert.DisplayedAt().Format("02.01.2006 15:04"))
	dc.DrawStringAnchored(footer, cardWidth/2, cardHeight-margin, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func loadFont(fontPath string) (*truetype.Font, error) {
	if fontPath == "" {
		return nil, errors.New("no font file configured")
	}
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("reading font file: %w", err)
	}
	parsed, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing TTF: %w", err)
	}
	return parsed, nil
}

func newFace(ttf *truetype.Font, size float64) font.Face {
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
