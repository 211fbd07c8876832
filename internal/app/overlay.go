package app

import (
	"fmt"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/gogpu/motionmark"
)

const (
	overlayFontSize = 16
	overlayPadding  = 8
)

// Overlay draws the status line in the top-left corner of a frame.
type Overlay struct {
	face text.Face
	line string
}

// NewOverlay loads the embedded Go Regular font.
func NewOverlay() (*Overlay, error) {
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("app: load overlay font: %w", err)
	}
	return &Overlay{
		face: source.Face(overlayFontSize),
		line: "measuring...",
	}, nil
}

// Update replaces the status line with s.
func (o *Overlay) Update(s motionmark.FrameStats) {
	o.line = s.String()
}

// Text returns the current status line.
func (o *Overlay) Text() string {
	return o.line
}

// Draw paints a translucent panel with the status line.
func (o *Overlay) Draw(dc *gg.Context) {
	m := o.face.Metrics()
	w := o.face.Advance(o.line) + 2*overlayPadding
	h := m.Ascent + m.Descent + 2*overlayPadding

	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(0, 0, w, h)
	_ = dc.Fill()

	dc.SetFont(o.face)
	dc.SetRGB(1, 1, 1)
	dc.DrawString(o.line, overlayPadding, overlayPadding+m.Ascent)
}
