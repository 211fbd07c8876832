// Package svg provides an SVG backend for the gg recording system.
//
// Frames recorded with a recording.Recorder (for example through
// motionmark.RecorderCanvas) can be played back into this backend to obtain
// a resolution-independent snapshot of the scene:
//
//	import _ "github.com/gogpu/motionmark/backends/svg"
//
//	backend, _ := recording.NewBackend("svg")
//	rec.FinishRecording().Playback(backend)
//	backend.(recording.FileBackend).SaveToFile("frame.svg")
//
// # Limitations
//
// Paths arrive in world coordinates, so transforms are tracked but not
// emitted. Gradient brushes are flattened to their first stop colour.
// Text is written with the default SVG font.
package svg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strconv"
	"strings"

	svgo "github.com/ajstarks/svgo"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"
	"github.com/gogpu/gg/text"
)

func init() {
	recording.Register("svg", func() recording.Backend {
		return NewBackend()
	})
}

// Backend renders recordings as an SVG document.
// It implements recording.Backend, recording.WriterBackend and
// recording.FileBackend.
type Backend struct {
	buf    bytes.Buffer
	canvas *svgo.SVG
	width  int
	height int

	// title is written as the document <title> when non-empty.
	title string

	clipID    int
	openClips int
	saved     []int
	transform recording.Matrix
	paths     int
	ended     bool
}

var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
)

// NewBackend creates a new SVG backend.
// The backend must be initialized with Begin before use.
func NewBackend() *Backend {
	return &Backend{}
}

// SetTitle sets the document title written by the next Begin.
func (b *Backend) SetTitle(title string) {
	b.title = title
}

// Begin starts a new document of the given size, discarding any previous
// output.
func (b *Backend) Begin(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("svg: invalid dimensions %dx%d", width, height)
	}
	b.buf.Reset()
	b.canvas = svgo.New(&b.buf)
	b.width = width
	b.height = height
	b.clipID = 0
	b.openClips = 0
	b.saved = b.saved[:0]
	b.transform = recording.Identity()
	b.paths = 0
	b.ended = false

	b.canvas.Start(width, height)
	if b.title != "" {
		b.canvas.Title(b.title)
	}
	return nil
}

// End closes any open clip groups and the document.
func (b *Backend) End() error {
	if b.canvas == nil {
		return fmt.Errorf("svg: End called before Begin")
	}
	if b.ended {
		return nil
	}
	b.closeClips(0)
	b.canvas.End()
	b.ended = true
	return nil
}

// Save remembers the current clip depth.
func (b *Backend) Save() {
	b.saved = append(b.saved, b.openClips)
}

// Restore closes clip groups opened since the matching Save.
func (b *Backend) Restore() {
	if len(b.saved) == 0 {
		return
	}
	depth := b.saved[len(b.saved)-1]
	b.saved = b.saved[:len(b.saved)-1]
	b.closeClips(depth)
}

// SetTransform records the transform. Recorded paths are already in world
// space, so it does not affect output.
func (b *Backend) SetTransform(m recording.Matrix) {
	b.transform = m
}

// SetClip opens a group clipped to path. Nested clips intersect.
func (b *Backend) SetClip(path *gg.Path, rule recording.FillRule) {
	if path == nil {
		return
	}
	b.clipID++
	id := "clip" + strconv.Itoa(b.clipID)

	b.canvas.Def()
	b.canvas.ClipPath(`id="` + id + `"`)
	b.canvas.Path(pathData(path), "clip-rule:"+fillRuleName(rule))
	b.canvas.ClipEnd()
	b.canvas.DefEnd()

	b.canvas.Group(`clip-path="url(#` + id + `)"`)
	b.openClips++
}

// ClearClip closes every open clip group.
func (b *Backend) ClearClip() {
	b.closeClips(0)
}

// FillPath writes a filled <path>.
func (b *Backend) FillPath(path *gg.Path, brush recording.Brush, rule recording.FillRule) {
	if path == nil || len(path.Elements()) == 0 {
		return
	}
	col := brushColor(brush)
	b.canvas.Path(pathData(path),
		"fill:"+rgb(col)+";fill-opacity:"+num(col.A)+";fill-rule:"+fillRuleName(rule)+";stroke:none")
	b.paths++
}

// StrokePath writes a stroked <path>.
func (b *Backend) StrokePath(path *gg.Path, brush recording.Brush, stroke recording.Stroke) {
	if path == nil || len(path.Elements()) == 0 {
		return
	}
	col := brushColor(brush)

	var style strings.Builder
	style.WriteString("fill:none;stroke:")
	style.WriteString(rgb(col))
	style.WriteString(";stroke-opacity:")
	style.WriteString(num(col.A))
	style.WriteString(";stroke-width:")
	style.WriteString(num(stroke.Width))
	style.WriteString(";stroke-linecap:")
	style.WriteString(lineCapName(stroke.Cap))
	style.WriteString(";stroke-linejoin:")
	style.WriteString(lineJoinName(stroke.Join))
	if stroke.Join == recording.LineJoinMiter && stroke.MiterLimit > 0 {
		style.WriteString(";stroke-miterlimit:")
		style.WriteString(num(stroke.MiterLimit))
	}
	if len(stroke.DashPattern) > 0 {
		dashes := make([]string, len(stroke.DashPattern))
		for i, d := range stroke.DashPattern {
			dashes[i] = num(d)
		}
		style.WriteString(";stroke-dasharray:")
		style.WriteString(strings.Join(dashes, ","))
		style.WriteString(";stroke-dashoffset:")
		style.WriteString(num(stroke.DashOffset))
	}

	b.canvas.Path(pathData(path), style.String())
	b.paths++
}

// FillRect writes an axis-aligned filled rectangle.
func (b *Backend) FillRect(rect recording.Rect, brush recording.Brush) {
	col := brushColor(brush)
	d := "M" + num(rect.MinX) + " " + num(rect.MinY) +
		"H" + num(rect.MaxX) + "V" + num(rect.MaxY) + "H" + num(rect.MinX) + "Z"
	b.canvas.Path(d, "fill:"+rgb(col)+";fill-opacity:"+num(col.A)+";stroke:none")
	b.paths++
}

// DrawImage embeds img as a PNG data URI scaled into dst.
// The source rectangle is ignored; the full image is embedded.
func (b *Backend) DrawImage(img image.Image, _, dst recording.Rect, opts recording.ImageOptions) {
	if img == nil {
		return
	}
	var enc bytes.Buffer
	if err := png.Encode(&enc, img); err != nil {
		return
	}
	link := "data:image/png;base64," + base64.StdEncoding.EncodeToString(enc.Bytes())

	var style []string
	if opts.Alpha > 0 && opts.Alpha < 1 {
		style = append(style, "opacity:"+num(opts.Alpha))
	}
	b.canvas.Image(int(dst.MinX), int(dst.MinY), int(dst.Width()), int(dst.Height()), link, style...)
}

// DrawText writes s with its baseline origin at (x, y).
func (b *Backend) DrawText(s string, x, y float64, face text.Face, brush recording.Brush) {
	col := brushColor(brush)
	style := "fill:" + rgb(col) + ";fill-opacity:" + num(col.A)
	if face != nil {
		style += ";font-size:" + num(face.Size()) + "px"
	}
	b.canvas.Text(int(x), int(y), s, style)
}

// WriteTo writes the SVG document to w.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}

// SaveToFile writes the SVG document to path.
func (b *Backend) SaveToFile(path string) error {
	return os.WriteFile(path, b.buf.Bytes(), 0o644) //nolint:gosec // exported image
}

// Bytes returns the document written so far.
func (b *Backend) Bytes() []byte {
	return b.buf.Bytes()
}

// Paths returns the number of path and rect shapes written since Begin.
func (b *Backend) Paths() int {
	return b.paths
}

// Width returns the document width.
func (b *Backend) Width() int {
	return b.width
}

// Height returns the document height.
func (b *Backend) Height() int {
	return b.height
}

func (b *Backend) closeClips(depth int) {
	for b.openClips > depth {
		b.canvas.Gend()
		b.openClips--
	}
}

// pathData converts a gg path to SVG path data.
func pathData(path *gg.Path) string {
	var d strings.Builder
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case gg.MoveTo:
			d.WriteString("M" + num(e.Point.X) + " " + num(e.Point.Y))
		case gg.LineTo:
			d.WriteString("L" + num(e.Point.X) + " " + num(e.Point.Y))
		case gg.QuadTo:
			d.WriteString("Q" + num(e.Control.X) + " " + num(e.Control.Y) + " " +
				num(e.Point.X) + " " + num(e.Point.Y))
		case gg.CubicTo:
			d.WriteString("C" + num(e.Control1.X) + " " + num(e.Control1.Y) + " " +
				num(e.Control2.X) + " " + num(e.Control2.Y) + " " +
				num(e.Point.X) + " " + num(e.Point.Y))
		case gg.Close:
			d.WriteString("Z")
		}
	}
	return d.String()
}

// brushColor reduces a brush to a single colour.
func brushColor(brush recording.Brush) gg.RGBA {
	var stops []recording.GradientStop
	switch br := brush.(type) {
	case recording.SolidBrush:
		return br.Color
	case *recording.LinearGradientBrush:
		stops = br.Stops
	case *recording.RadialGradientBrush:
		stops = br.Stops
	case *recording.SweepGradientBrush:
		stops = br.Stops
	}
	if len(stops) > 0 {
		return stops[0].Color
	}
	return gg.Black
}

func rgb(c gg.RGBA) string {
	return "rgb(" + strconv.Itoa(channel(c.R)) + "," + strconv.Itoa(channel(c.G)) + "," +
		strconv.Itoa(channel(c.B)) + ")"
}

func channel(v float64) int {
	return int(min(max(v, 0), 1)*255 + 0.5)
}

// num formats v with at most three decimals and no trailing zeros.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func fillRuleName(rule recording.FillRule) string {
	if rule == recording.FillRuleEvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

func lineCapName(c recording.LineCap) string {
	switch c {
	case recording.LineCapRound:
		return "round"
	case recording.LineCapSquare:
		return "square"
	default:
		return "butt"
	}
}

func lineJoinName(j recording.LineJoin) string {
	switch j {
	case recording.LineJoinRound:
		return "round"
	case recording.LineJoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}
